package api

import (
	"fmt"

	"github.com/repogate/repogate/internal/errx"
)

// ChangeOp is the kind of change applied to one path in a commit.
type ChangeOp string

const (
	OpAdd    ChangeOp = "add"
	OpUpdate ChangeOp = "update"
	OpDelete ChangeOp = "delete"
)

// PathChange is one changed path in an in-flight or finished commit.
// Directory paths end in a slash, file paths do not.
type PathChange struct {
	Path string   `json:"path"`
	Op   ChangeOp `json:"op"`
	// Props carries the versioned properties attached to the path, as
	// reported by the change-set provider.
	Props map[string]string `json:"props,omitempty"`
}

// Changeset is the change-set provider contract: everything the policy
// checks need to know about one commit, with no ties to any particular
// version-control system.
type Changeset struct {
	// Txn identifies the commit transaction (or revision, post-commit).
	Txn        string       `json:"txn,omitempty"`
	Author     string       `json:"author,omitempty"`
	LogMessage string       `json:"log_message,omitempty"`
	Changes    []PathChange `json:"changes"`
}

// AddedPaths returns the newly introduced paths, in change order. Structure
// checking applies only to these; modifications to existing allowed paths
// are not re-validated.
func (c *Changeset) AddedPaths() []string {
	var paths []string
	for _, ch := range c.Changes {
		if ch.Op == OpAdd {
			paths = append(paths, ch.Path)
		}
	}
	return paths
}

// PropOf returns a property value of a changed path, with ok reporting
// whether the path carries the property.
func (c *Changeset) PropOf(path, name string) (string, bool) {
	for _, ch := range c.Changes {
		if ch.Path == path {
			v, ok := ch.Props[name]
			return v, ok
		}
	}
	return "", false
}

// Validate checks the changeset for shape errors before any policy runs.
func (c *Changeset) Validate() error {
	for i, ch := range c.Changes {
		if ch.Path == "" {
			return errx.With(ErrInvalidChange, fmt.Sprintf(": empty path at index %d", i))
		}
		switch ch.Op {
		case OpAdd, OpUpdate, OpDelete:
		default:
			return errx.With(ErrInvalidChange, fmt.Sprintf(": unknown op %q for %s", ch.Op, ch.Path))
		}
	}
	return nil
}
