package hooks

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/repogate/repogate/internal/errx"
	"github.com/repogate/repogate/pkg/api"
)

// ContentProvider supplies the committed content of a repository path.
// The commit gate host wires one in; this package never talks to a real
// version-control backend.
type ContentProvider interface {
	Content(path string) ([]byte, error)
}

// DirProvider serves file contents from a checked-out working directory.
type DirProvider struct {
	Root string
}

// Content implements ContentProvider. Paths are interpreted relative to the
// root; traversal outside the root is rejected.
func (p DirProvider) Content(path string) ([]byte, error) {
	clean := filepath.Clean("/" + filepath.FromSlash(path))
	target := filepath.Join(p.Root, clean)
	rel, err := filepath.Rel(p.Root, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, errx.With(ErrOutsideRoot, ": "+path)
	}
	return os.ReadFile(target)
}

// confMirrorHook implements PostCommitHook. It mirrors configured repository
// files into server-side destinations whenever they change, optionally
// running a post-update command.
type confMirrorHook struct {
	rules    []api.ConfMirrorRule
	provider ContentProvider
	logger   *slog.Logger
	// run executes the post-update command; replaced in tests.
	run func(argv []string) error
}

var _ Plugin = (*confMirrorHook)(nil)
var _ PostCommitHook = (*confMirrorHook)(nil)

// NewConfMirrorHook creates a confmirror hook. The provider must be non-nil.
func NewConfMirrorHook(rules []api.ConfMirrorRule, provider ContentProvider, logger *slog.Logger) (*confMirrorHook, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if provider == nil {
		return nil, ErrNilProvider
	}
	for _, r := range rules {
		if r.Source == "" || r.Dest == "" {
			return nil, errx.With(ErrInvalidRule, ": confmirror rule needs source and dest")
		}
		if r.PostCommand != "" {
			if _, err := shellquote.Split(r.PostCommand); err != nil {
				return nil, errx.Wrap(ErrInvalidRule, err)
			}
		}
	}
	return &confMirrorHook{
		rules:    rules,
		provider: provider,
		logger:   logger,
		run:      runCommand,
	}, nil
}

func (h *confMirrorHook) Name() string {
	return "confmirror"
}

// AfterCommit implements PostCommitHook. Every matching rule is attempted
// even when an earlier one fails; the first error is returned.
func (h *confMirrorHook) AfterCommit(change *api.Changeset) error {
	var firstErr error
	for _, ch := range change.Changes {
		if ch.Op != api.OpAdd && ch.Op != api.OpUpdate {
			continue
		}
		for _, rule := range h.rules {
			if ch.Path != rule.Source {
				continue
			}
			if err := h.mirror(rule); err != nil {
				h.logger.Warn("mirror failed", "source", rule.Source, "error", err)
				if firstErr == nil {
					firstErr = err
				}
			}
		}
	}
	return firstErr
}

func (h *confMirrorHook) mirror(rule api.ConfMirrorRule) error {
	content, err := h.provider.Content(rule.Source)
	if err != nil {
		return errx.Wrap(ErrMirrorRead, err)
	}
	if err := os.MkdirAll(filepath.Dir(rule.Dest), 0755); err != nil {
		return errx.Wrap(ErrMirrorWrite, err)
	}
	if err := os.WriteFile(rule.Dest, content, 0644); err != nil {
		return errx.Wrap(ErrMirrorWrite, err)
	}
	h.logger.Info("mirrored", "source", rule.Source, "dest", rule.Dest)

	if rule.PostCommand == "" {
		return nil
	}
	argv, err := shellquote.Split(rule.PostCommand)
	if err != nil {
		return errx.Wrap(ErrPostCommand, err)
	}
	if err := h.run(argv); err != nil {
		return errx.Wrap(ErrPostCommand, err)
	}
	return nil
}

func runCommand(argv []string) error {
	cmd := exec.Command(argv[0], argv[1:]...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", argv[0], err, strings.TrimSpace(string(out)))
	}
	return nil
}
