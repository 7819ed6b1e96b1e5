package hooks

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/repogate/repogate/internal/errx"
	"github.com/repogate/repogate/pkg/api"
)

// logMessageCheck implements PreCommitCheck. It enforces a minimum commit
// log message and an optional pattern, e.g. a required issue reference.
type logMessageCheck struct {
	config api.LogMessageConfig
	match  *textMatcher
	logger *slog.Logger
}

var _ Plugin = (*logMessageCheck)(nil)
var _ PreCommitCheck = (*logMessageCheck)(nil)

// NewLogMessageCheck creates a logmsg check from typed config.
func NewLogMessageCheck(cfg api.LogMessageConfig, logger *slog.Logger) (*logMessageCheck, error) {
	if logger == nil {
		logger = slog.Default()
	}
	c := &logMessageCheck{config: cfg, logger: logger}
	if cfg.Match != "" {
		m, err := compileTextMatcher(cfg.Match)
		if err != nil {
			return nil, errx.Wrap(ErrInvalidRule, err)
		}
		if m.re == nil {
			// A plain string is still a pattern here, not an equality.
			m, err = compileTextMatcher("/" + cfg.Match + "/")
			if err != nil {
				return nil, errx.Wrap(ErrInvalidRule, err)
			}
		}
		c.match = &m
	}
	return c, nil
}

// NewLogMessageCheckFromConfig creates a logmsg check from JSON config.
// Called by the plugin registry factory.
func NewLogMessageCheckFromConfig(raw json.RawMessage, logger *slog.Logger) (Plugin, error) {
	var cfg api.LogMessageConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, err
	}
	return NewLogMessageCheck(cfg, logger)
}

func (c *logMessageCheck) Name() string {
	return "logmsg"
}

// Check implements PreCommitCheck.
func (c *logMessageCheck) Check(change *api.Changeset) []Violation {
	msg := strings.TrimSpace(change.LogMessage)
	if msg == "" {
		return []Violation{{Check: c.Name(), Message: "the commit log message must not be empty"}}
	}
	var violations []Violation
	if len(msg) < c.config.MinLength {
		violations = append(violations, Violation{
			Check:   c.Name(),
			Message: fmt.Sprintf("the commit log message must be at least %d characters", c.config.MinLength),
		})
	}
	if c.match != nil && !c.match.match(msg) {
		violations = append(violations, Violation{
			Check:   c.Name(),
			Message: fmt.Sprintf("the commit log message must match %s", c.config.Match),
		})
	}
	return violations
}
