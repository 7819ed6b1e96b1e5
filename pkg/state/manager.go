// Package state persists gate run history in a local SQLite database.
// Every pre- and post-commit run is recorded so operators can answer
// "why was commit X rejected" after the fact.
package state

import (
	"database/sql"
	"errors"
	"time"

	_ "modernc.org/sqlite"

	"github.com/repogate/repogate/internal/errx"
)

// Phase names for recorded runs.
const (
	PhasePreCommit  = "pre-commit"
	PhasePostCommit = "post-commit"
)

// Run is one recorded gate invocation.
type Run struct {
	ID         string    `json:"id"`
	Phase      string    `json:"phase"`
	Txn        string    `json:"txn"`
	Author     string    `json:"author,omitempty"`
	Verdict    string    `json:"verdict"`
	Violations int       `json:"violations"`
	Report     string    `json:"report,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Manager stores gate runs. Safe for concurrent use; database/sql
// serializes access to the underlying connection.
type Manager struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	phase      TEXT NOT NULL,
	txn        TEXT NOT NULL,
	author     TEXT NOT NULL DEFAULT '',
	verdict    TEXT NOT NULL,
	violations INTEGER NOT NULL DEFAULT 0,
	report     TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS runs_created_at ON runs(created_at);
`

// Open opens (creating if needed) the run database at path.
func Open(path string) (*Manager, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errx.Wrap(ErrOpenDatabase, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errx.Wrap(ErrOpenDatabase, err)
	}
	return &Manager{db: db}, nil
}

// Record inserts a run. A zero CreatedAt is stamped with the current time.
func (m *Manager) Record(run Run) error {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	_, err := m.db.Exec(
		`INSERT INTO runs (id, phase, txn, author, verdict, violations, report, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Phase, run.Txn, run.Author, run.Verdict, run.Violations, run.Report, run.CreatedAt,
	)
	if err != nil {
		return errx.Wrap(ErrRecordRun, err)
	}
	return nil
}

// Get returns one run by ID.
func (m *Manager) Get(id string) (*Run, error) {
	row := m.db.QueryRow(
		`SELECT id, phase, txn, author, verdict, violations, report, created_at
		 FROM runs WHERE id = ?`, id)
	var r Run
	err := row.Scan(&r.ID, &r.Phase, &r.Txn, &r.Author, &r.Verdict, &r.Violations, &r.Report, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errx.With(ErrRunNotFound, ": "+id)
	}
	if err != nil {
		return nil, errx.Wrap(ErrQueryRuns, err)
	}
	return &r, nil
}

// List returns the most recent runs, newest first. limit <= 0 means no limit.
func (m *Manager) List(limit int) ([]Run, error) {
	q := `SELECT id, phase, txn, author, verdict, violations, report, created_at
	      FROM runs ORDER BY created_at DESC, id DESC`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = m.db.Query(q+` LIMIT ?`, limit)
	} else {
		rows, err = m.db.Query(q)
	}
	if err != nil {
		return nil, errx.Wrap(ErrQueryRuns, err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Phase, &r.Txn, &r.Author, &r.Verdict, &r.Violations, &r.Report, &r.CreatedAt); err != nil {
			return nil, errx.Wrap(ErrQueryRuns, err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errx.Wrap(ErrQueryRuns, err)
	}
	return runs, nil
}

// Prune deletes runs older than the cutoff and returns how many were removed.
func (m *Manager) Prune(before time.Time) (int64, error) {
	res, err := m.db.Exec(`DELETE FROM runs WHERE created_at < ?`, before)
	if err != nil {
		return 0, errx.Wrap(ErrQueryRuns, err)
	}
	return res.RowsAffected()
}

// Close closes the underlying database.
func (m *Manager) Close() error {
	return m.db.Close()
}
