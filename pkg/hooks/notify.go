package hooks

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/repogate/repogate/internal/errx"
	"github.com/repogate/repogate/pkg/api"
)

// notifyHook implements PostCommitHook. It formats one RFC 5322 style
// message per commit and drops it into an outbox directory; actual delivery
// belongs to whatever drains the outbox.
type notifyHook struct {
	config api.NotifyConfig
	logger *slog.Logger
	now    func() time.Time
}

var _ Plugin = (*notifyHook)(nil)
var _ PostCommitHook = (*notifyHook)(nil)

// NewNotifyHook creates a notify hook from typed config.
func NewNotifyHook(cfg api.NotifyConfig, logger *slog.Logger) (*notifyHook, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.From == "" || len(cfg.To) == 0 {
		return nil, errx.With(ErrNotifyConfig, ": from and to are required")
	}
	if cfg.OutboxDir == "" {
		return nil, errx.With(ErrNotifyConfig, ": outbox_dir is required")
	}
	if cfg.Subject == "" {
		cfg.Subject = api.DefaultNotifySubject
	}
	return &notifyHook{config: cfg, logger: logger, now: time.Now}, nil
}

// NewNotifyHookFromConfig creates a notify hook from JSON config.
// Called by the plugin registry factory.
func NewNotifyHookFromConfig(raw json.RawMessage, logger *slog.Logger) (Plugin, error) {
	var cfg api.NotifyConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, err
	}
	return NewNotifyHook(cfg, logger)
}

func (h *notifyHook) Name() string {
	return "notify"
}

// AfterCommit implements PostCommitHook.
func (h *notifyHook) AfterCommit(change *api.Changeset) error {
	msg := FormatNotification(h.config, change, h.now().UTC())

	name := change.Txn
	if name == "" {
		name = uuid.New().String()[:8]
	}
	name = strings.ReplaceAll(name, "/", "_") + ".eml"

	if err := os.MkdirAll(h.config.OutboxDir, 0755); err != nil {
		return errx.Wrap(ErrWriteOutbox, err)
	}
	target := filepath.Join(h.config.OutboxDir, name)
	if err := os.WriteFile(target, msg, 0644); err != nil {
		return errx.Wrap(ErrWriteOutbox, err)
	}
	h.logger.Debug("notification queued", "file", target)
	return nil
}

// opLetters is the conventional single-letter display for change ops.
var opLetters = map[api.ChangeOp]string{
	api.OpAdd:    "A",
	api.OpUpdate: "U",
	api.OpDelete: "D",
}

// FormatNotification renders the commit notification message. The result is
// a complete RFC 5322 message with a plain-text body listing the changed
// paths.
func FormatNotification(cfg api.NotifyConfig, change *api.Changeset, date time.Time) []byte {
	subject := cfg.Subject
	if subject == "" {
		subject = api.DefaultNotifySubject
	}
	if change.Txn != "" {
		subject += " " + change.Txn
	}
	if change.Author != "" {
		subject += " by " + change.Author
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "From: %s\r\n", cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(cfg.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	fmt.Fprintf(&b, "Date: %s\r\n", date.Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")

	if change.LogMessage != "" {
		b.WriteString(change.LogMessage)
		b.WriteString("\r\n\r\n")
	}
	b.WriteString("Changed paths:\r\n")
	for _, ch := range change.Changes {
		letter, ok := opLetters[ch.Op]
		if !ok {
			letter = "?"
		}
		fmt.Fprintf(&b, "  %s %s\r\n", letter, ch.Path)
	}
	return b.Bytes()
}
