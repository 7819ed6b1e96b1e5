package hooks

import "github.com/repogate/repogate/pkg/api"

// Plugin is the base interface all policy check plugins implement.
// A single plugin can implement multiple phase interfaces.
type Plugin interface {
	// Name returns the plugin's unique identifier (e.g., "structure").
	// Names are used for logging and conflict detection.
	Name() string
}

// PreCommitCheck decides whether an in-flight commit may proceed.
// Pre-commit checks run during the PreCommit phase.
//
// Semantics: every registered check runs over the whole changeset and all
// violations are collected; nothing short-circuits, so a committer sees
// every problem in one round trip. The commit is rejected if any check
// reports at least one violation.
type PreCommitCheck interface {
	Plugin
	// Check inspects the changeset and returns all violations it finds.
	// An empty result means the check passed.
	Check(change *api.Changeset) []Violation
}

// PostCommitHook runs after a commit has been accepted.
// Post-commit hooks run during the PostCommit phase, in registration order.
//
// Semantics: hook failures never undo the commit; errors are collected and
// reported to the operator.
type PostCommitHook interface {
	Plugin
	// AfterCommit reacts to a finished commit.
	AfterCommit(change *api.Changeset) error
}

// Violation is one policy failure found by a pre-commit check.
type Violation struct {
	// Check is the reporting check's name.
	Check string
	// Message is the committer-facing reason, already formatted as
	// "<reason>: <full-path>" where a path is involved.
	Message string
}

func (v Violation) String() string {
	return v.Message
}
