package hooks

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/repogate/repogate/internal/errx"
	"github.com/repogate/repogate/pkg/api"
)

// propertyCheck implements PreCommitCheck. Each rule requires a property on
// every added or updated path whose name matches the rule's pattern.
type propertyCheck struct {
	rules  []compiledPropertyRule
	logger *slog.Logger
}

type compiledPropertyRule struct {
	source  api.PropertyRule
	pattern textMatcher
	// value is nil when the rule only requires the property to exist.
	value *textMatcher
}

var _ Plugin = (*propertyCheck)(nil)
var _ PreCommitCheck = (*propertyCheck)(nil)

// NewPropertyCheck compiles property rules into a check. Rule patterns and
// values are validated here; a malformed rule fails construction.
func NewPropertyCheck(rules []api.PropertyRule, logger *slog.Logger) (*propertyCheck, error) {
	if logger == nil {
		logger = slog.Default()
	}
	compiled := make([]compiledPropertyRule, 0, len(rules))
	for _, r := range rules {
		if r.Prop == "" {
			return nil, errx.With(ErrInvalidRule, fmt.Sprintf(": property rule for %q has no prop", r.Pattern))
		}
		cr := compiledPropertyRule{source: r}
		var err error
		cr.pattern, err = compileTextMatcher(r.Pattern)
		if err != nil {
			return nil, errx.Wrap(ErrInvalidRule, err)
		}
		if r.Value != "" {
			vm, err := compileTextMatcher(r.Value)
			if err != nil {
				return nil, errx.Wrap(ErrInvalidRule, err)
			}
			cr.value = &vm
		}
		compiled = append(compiled, cr)
	}
	return &propertyCheck{rules: compiled, logger: logger}, nil
}

// NewPropertyCheckFromConfig creates a property check from JSON config.
// Called by the plugin registry factory.
func NewPropertyCheckFromConfig(raw json.RawMessage, logger *slog.Logger) (Plugin, error) {
	var cfg struct {
		Rules []api.PropertyRule `json:"rules"`
	}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, err
	}
	return NewPropertyCheck(cfg.Rules, logger)
}

func (c *propertyCheck) Name() string {
	return "property"
}

// Check implements PreCommitCheck. Deleted paths carry no properties and
// are skipped.
func (c *propertyCheck) Check(change *api.Changeset) []Violation {
	var violations []Violation
	for _, ch := range change.Changes {
		if ch.Op == api.OpDelete {
			continue
		}
		for _, r := range c.rules {
			if !r.pattern.match(ch.Path) {
				continue
			}
			value, ok := ch.Props[r.source.Prop]
			if !ok {
				violations = append(violations, Violation{
					Check:   c.Name(),
					Message: fmt.Sprintf("the property %s must be set on: %s", r.source.Prop, ch.Path),
				})
				continue
			}
			if r.value != nil && !r.value.match(value) {
				violations = append(violations, Violation{
					Check: c.Name(),
					Message: fmt.Sprintf("the property %s must match %s but is (%s) on: %s",
						r.source.Prop, r.source.Value, value, ch.Path),
				})
			}
		}
	}
	return violations
}
