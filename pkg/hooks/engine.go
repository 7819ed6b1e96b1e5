package hooks

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/repogate/repogate/internal/errx"
	"github.com/repogate/repogate/pkg/api"
	"github.com/repogate/repogate/pkg/logging"
)

// Engine orchestrates commit policy plugins. It is immutable once
// constructed; a configuration reload builds a fresh engine, so concurrent
// validations never observe a partially updated spec.
type Engine struct {
	pre  []PreCommitCheck
	post []PostCommitHook

	repo    string
	logger  *slog.Logger
	emitter *logging.Emitter
}

// NewEngine creates a policy engine from a gate Config.
// It compiles flat config fields into built-in plugins and processes
// any explicit check entries from config.Checks. The provider feeds the
// confmirror hook and may be nil when no confmirror rules are configured.
//
// A malformed configuration is fatal here: a commit gate that silently
// drops a broken check would wave through the very commits the check was
// meant to stop.
func NewEngine(config *api.Config, provider ContentProvider, logger *slog.Logger, emitter *logging.Emitter) (*Engine, error) {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{
		repo:    config.Repo,
		logger:  logger.With("component", "hooks"),
		emitter: emitter,
	}

	// --- Step 1: Compile flat config fields into built-in plugins ---

	// Track which built-in types were created from flat fields.
	// Used for conflict detection in step 2.
	flatTypes := make(map[string]bool)

	if config.Structure != nil {
		c, err := NewStructureCheck(config.Structure, e.logger.With("check", "structure"))
		if err != nil {
			return nil, errx.Wrap(ErrStructureSpec, err)
		}
		e.addPlugin(c)
		flatTypes["structure"] = true
		e.logger.Debug("check registered from flat config", "check", "structure")
	}

	if config.MimeTypes != nil {
		e.addPlugin(NewMimeTypesCheck(*config.MimeTypes, e.logger.With("check", "mimetypes")))
		flatTypes["mimetypes"] = true
		e.logger.Debug("check registered from flat config", "check", "mimetypes")
	}

	if len(config.Properties) > 0 {
		c, err := NewPropertyCheck(config.Properties, e.logger.With("check", "property"))
		if err != nil {
			return nil, err
		}
		e.addPlugin(c)
		flatTypes["property"] = true
		e.logger.Debug("check registered from flat config", "check", "property")
	}

	if config.LogMessage != nil {
		c, err := NewLogMessageCheck(*config.LogMessage, e.logger.With("check", "logmsg"))
		if err != nil {
			return nil, err
		}
		e.addPlugin(c)
		flatTypes["logmsg"] = true
		e.logger.Debug("check registered from flat config", "check", "logmsg")
	}

	if config.Notify != nil {
		h, err := NewNotifyHook(*config.Notify, e.logger.With("check", "notify"))
		if err != nil {
			return nil, err
		}
		e.addPlugin(h)
		flatTypes["notify"] = true
		e.logger.Debug("hook registered from flat config", "check", "notify")
	}

	if len(config.ConfMirror) > 0 {
		h, err := NewConfMirrorHook(config.ConfMirror, provider, e.logger.With("check", "confmirror"))
		if err != nil {
			return nil, err
		}
		e.addPlugin(h)
		flatTypes["confmirror"] = true
		e.logger.Debug("hook registered from flat config", "check", "confmirror")
	}

	// --- Step 2: Add explicitly configured checks from config.Checks ---

	for _, checkCfg := range config.Checks {
		if !checkCfg.IsEnabled() {
			continue
		}

		// Conflict detection: merge, but warn
		if flatTypes[checkCfg.Type] {
			e.logger.Warn("duplicate check type in flat fields and checks array",
				"type", checkCfg.Type)
		}

		factory, ok := LookupFactory(checkCfg.Type)
		if !ok {
			e.logger.Warn("unknown check type, skipping", "type", checkCfg.Type)
			continue
		}

		raw, err := json.Marshal(checkCfg.Config)
		if err != nil {
			return nil, errx.Wrap(ErrCheckConfig, err)
		}
		p, err := factory(raw, e.logger.With("check", checkCfg.Type))
		if err != nil {
			return nil, errx.Wrap(ErrCheckConfig, err)
		}

		e.addPlugin(p)
		e.logger.Debug("check registered from config array", "check", checkCfg.Type)
	}

	e.logger.Info("engine ready",
		"pre_commit", len(e.pre),
		"post_commit", len(e.post),
	)

	return e, nil
}

// addPlugin sorts a plugin into the correct phase slices based on
// which interfaces it implements. A single plugin can appear in
// both slices.
func (e *Engine) addPlugin(p Plugin) {
	if c, ok := p.(PreCommitCheck); ok {
		e.pre = append(e.pre, c)
	}
	if h, ok := p.(PostCommitHook); ok {
		e.post = append(e.post, h)
	}
}

// PreCommitChecks returns the names of the active pre-commit checks, in run
// order.
func (e *Engine) PreCommitChecks() []string {
	names := make([]string, len(e.pre))
	for i, c := range e.pre {
		names[i] = c.Name()
	}
	return names
}

// PostCommitHooks returns the names of the active post-commit hooks, in run
// order.
func (e *Engine) PostCommitHooks() []string {
	names := make([]string, len(e.post))
	for i, h := range e.post {
		names[i] = h.Name()
	}
	return names
}

// Report is the aggregate verdict of one pre-commit gate run.
type Report struct {
	RunID      string
	Violations []Violation
}

// Ok reports whether the commit may proceed.
func (r *Report) Ok() bool {
	return len(r.Violations) == 0
}

// String returns "ok" or the newline-joined violation messages, suitable
// for surfacing verbatim to the committer.
func (r *Report) String() string {
	if r.Ok() {
		return "ok"
	}
	msgs := make([]string, len(r.Violations))
	for i, v := range r.Violations {
		msgs[i] = v.Message
	}
	return strings.Join(msgs, "\n")
}

// PreCommit runs every pre-commit check over the changeset and returns the
// aggregate report. Checks never short-circuit: a multi-file commit that
// violates policy in several independent places surfaces all of them at
// once.
func (e *Engine) PreCommit(change *api.Changeset) *Report {
	rep := &Report{RunID: "run-" + uuid.New().String()[:8]}

	for _, c := range e.pre {
		violations := c.Check(change)
		if len(violations) == 0 {
			e.logger.Debug("check passed", "check", c.Name(), "run", rep.RunID)
			continue
		}
		for _, v := range violations {
			e.logger.Warn("check failed",
				"check", c.Name(),
				"run", rep.RunID,
				"reason", v.Message,
			)
		}
		rep.Violations = append(rep.Violations, violations...)
	}

	if e.emitter != nil {
		summary := fmt.Sprintf("commit %s accepted", change.Txn)
		if !rep.Ok() {
			summary = fmt.Sprintf("commit %s rejected with %d violation(s)", change.Txn, len(rep.Violations))
		}
		_ = e.emitter.Emit(rep.RunID, logging.EventPreCommitVerdict, summary, "",
			&logging.PreCommitVerdictData{
				Txn:        change.Txn,
				Author:     change.Author,
				Allowed:    rep.Ok(),
				Paths:      len(change.Changes),
				Violations: len(rep.Violations),
			})
	}

	return rep
}

// PostCommit runs every post-commit hook in order and collects their
// errors. Hook failures never undo the commit.
func (e *Engine) PostCommit(change *api.Changeset) []error {
	runID := "run-" + uuid.New().String()[:8]

	var errs []error
	for _, h := range e.post {
		err := h.AfterCommit(change)
		if err != nil {
			e.logger.Warn("post-commit hook failed",
				"hook", h.Name(), "run", runID, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", h.Name(), err))
		} else {
			e.logger.Debug("post-commit hook ran", "hook", h.Name(), "run", runID)
		}
		if e.emitter != nil {
			data := &logging.PostCommitHookData{Txn: change.Txn, Hook: h.Name()}
			summary := fmt.Sprintf("hook %s ran for commit %s", h.Name(), change.Txn)
			if err != nil {
				data.Failed = true
				data.Error = err.Error()
				summary = fmt.Sprintf("hook %s failed for commit %s", h.Name(), change.Txn)
			}
			_ = e.emitter.Emit(runID, logging.EventPostCommitHook, summary, h.Name(), data)
		}
	}
	return errs
}
