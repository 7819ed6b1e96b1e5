package hooks

import (
	"encoding/json"
	"log/slog"

	"github.com/repogate/repogate/pkg/api"
	"github.com/repogate/repogate/pkg/structure"
)

// structureCheck implements PreCommitCheck. It validates every added path
// against the compiled structure specification; modifications to existing
// paths pass through unchecked.
type structureCheck struct {
	spec   structure.Node
	logger *slog.Logger
}

var _ Plugin = (*structureCheck)(nil)
var _ PreCommitCheck = (*structureCheck)(nil)

// NewStructureCheck compiles a raw structure spec value into a check.
// A malformed spec is a configuration error and fails construction; it is
// never downgraded to an allow.
func NewStructureCheck(spec any, logger *slog.Logger) (*structureCheck, error) {
	if logger == nil {
		logger = slog.Default()
	}
	node, err := structure.Compile(spec)
	if err != nil {
		return nil, err
	}
	return &structureCheck{spec: node, logger: logger}, nil
}

// NewStructureCheckFromConfig creates a structure check from JSON config.
// Called by the plugin registry factory.
func NewStructureCheckFromConfig(raw json.RawMessage, logger *slog.Logger) (Plugin, error) {
	var cfg struct {
		Spec any `json:"spec"`
	}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, err
	}
	return NewStructureCheck(cfg.Spec, logger)
}

func (c *structureCheck) Name() string {
	return "structure"
}

// Check implements PreCommitCheck.
func (c *structureCheck) Check(change *api.Changeset) []Violation {
	added := change.AddedPaths()
	rep := structure.ValidateAll(c.spec, added)
	if rep.Ok() {
		c.logger.Debug("all added paths conform", "paths", len(added))
		return nil
	}
	violations := make([]Violation, 0, len(rep.Failures))
	for _, err := range rep.Failures {
		violations = append(violations, Violation{Check: c.Name(), Message: err.Error()})
	}
	return violations
}
