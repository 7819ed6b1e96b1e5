package hooks

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"mime"
	"path"
	"strings"

	"github.com/repogate/repogate/pkg/api"
)

// mimeTypesCheck implements PreCommitCheck. Every added file must carry the
// media-type property; an optional allowlist restricts the accepted types.
type mimeTypesCheck struct {
	config api.MimeTypesConfig
	logger *slog.Logger
}

var _ Plugin = (*mimeTypesCheck)(nil)
var _ PreCommitCheck = (*mimeTypesCheck)(nil)

// NewMimeTypesCheck creates a mimetypes check from typed config.
func NewMimeTypesCheck(cfg api.MimeTypesConfig, logger *slog.Logger) *mimeTypesCheck {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Property == "" {
		cfg.Property = api.DefaultMimeTypeProperty
	}
	return &mimeTypesCheck{config: cfg, logger: logger}
}

// NewMimeTypesCheckFromConfig creates a mimetypes check from JSON config.
// Called by the plugin registry factory.
func NewMimeTypesCheckFromConfig(raw json.RawMessage, logger *slog.Logger) (Plugin, error) {
	var cfg api.MimeTypesConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, err
	}
	return NewMimeTypesCheck(cfg, logger), nil
}

func (c *mimeTypesCheck) Name() string {
	return "mimetypes"
}

// Check implements PreCommitCheck. Directory additions carry no content and
// are skipped.
func (c *mimeTypesCheck) Check(change *api.Changeset) []Violation {
	var violations []Violation
	for _, ch := range change.Changes {
		if ch.Op != api.OpAdd || strings.HasSuffix(ch.Path, "/") {
			continue
		}
		value, ok := ch.Props[c.config.Property]
		if !ok || value == "" {
			reason := fmt.Sprintf("the added file (%s) has no %s property set", ch.Path, c.config.Property)
			if hint := mime.TypeByExtension(path.Ext(ch.Path)); hint != "" {
				reason += fmt.Sprintf(" (maybe %s)", hint)
			}
			violations = append(violations, Violation{Check: c.Name(), Message: reason})
			continue
		}
		if len(c.config.Allowed) > 0 && !c.typeAllowed(value) {
			violations = append(violations, Violation{
				Check:   c.Name(),
				Message: fmt.Sprintf("the media type (%s) of %s is not allowed", value, ch.Path),
			})
		}
	}
	return violations
}

func (c *mimeTypesCheck) typeAllowed(value string) bool {
	// Parameters like charset do not participate in the comparison.
	if i := strings.IndexByte(value, ';'); i >= 0 {
		value = strings.TrimSpace(value[:i])
	}
	for _, allowed := range c.config.Allowed {
		if family, ok := strings.CutSuffix(allowed, "/*"); ok {
			if strings.HasPrefix(value, family+"/") {
				return true
			}
			continue
		}
		if value == allowed {
			return true
		}
	}
	return false
}
