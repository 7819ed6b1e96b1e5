package logging

import (
	"encoding/json"
	"time"
)

// Event is the canonical structured audit event for the commit gate.
// Required fields: Timestamp, RunID, Repo, EventType, Summary.
// Optional fields use omitempty tags.
type Event struct {
	Timestamp time.Time       `json:"ts"`
	RunID     string          `json:"run_id"`
	Repo      string          `json:"repo"`
	EventType string          `json:"event_type"`
	Summary   string          `json:"summary"`
	Check     string          `json:"check,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// Event type constants.
const (
	EventPreCommitVerdict = "precommit_verdict"
	EventPostCommitHook   = "postcommit_hook"
	EventConfigLoaded     = "config_loaded"
)

// PreCommitVerdictData is the data payload for precommit_verdict events.
type PreCommitVerdictData struct {
	Txn        string `json:"txn,omitempty"`
	Author     string `json:"author,omitempty"`
	Allowed    bool   `json:"allowed"`
	Paths      int    `json:"paths"`
	Violations int    `json:"violations,omitempty"`
}

// PostCommitHookData is the data payload for postcommit_hook events.
type PostCommitHookData struct {
	Txn    string `json:"txn,omitempty"`
	Hook   string `json:"hook"`
	Failed bool   `json:"failed,omitempty"`
	Error  string `json:"error,omitempty"`
}
