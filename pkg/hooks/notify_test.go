package hooks

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repogate/repogate/pkg/api"
)

func TestFormatNotification(t *testing.T) {
	cfg := api.NotifyConfig{
		From:    "commits@example.org",
		To:      []string{"dev@example.org", "qa@example.org"},
		Subject: "[commit]",
	}
	change := &api.Changeset{
		Txn:        "1234-1",
		Author:     "alice",
		LogMessage: "Fix the build",
		Changes: []api.PathChange{
			{Path: "trunk/Makefile", Op: api.OpUpdate},
			{Path: "trunk/src/new.c", Op: api.OpAdd},
			{Path: "trunk/old.c", Op: api.OpDelete},
		},
	}
	date := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	msg := string(FormatNotification(cfg, change, date))

	assert.Contains(t, msg, "From: commits@example.org\r\n")
	assert.Contains(t, msg, "To: dev@example.org, qa@example.org\r\n")
	assert.Contains(t, msg, "Subject: [commit] 1234-1 by alice\r\n")
	assert.Contains(t, msg, "Date: Fri, 01 Mar 2024 12:00:00 +0000\r\n")
	assert.Contains(t, msg, "Fix the build\r\n")
	assert.Contains(t, msg, "  U trunk/Makefile\r\n")
	assert.Contains(t, msg, "  A trunk/src/new.c\r\n")
	assert.Contains(t, msg, "  D trunk/old.c\r\n")

	// Headers and body are separated by a blank line.
	assert.Contains(t, msg, "Content-Type: text/plain; charset=utf-8\r\n\r\n")
}

func TestNotifyHook_WritesOutbox(t *testing.T) {
	outbox := t.TempDir()
	h, err := NewNotifyHook(api.NotifyConfig{
		From:      "commits@example.org",
		To:        []string{"dev@example.org"},
		OutboxDir: outbox,
	}, nil)
	require.NoError(t, err)
	h.now = func() time.Time {
		return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	}

	change := &api.Changeset{
		Txn:        "77-a",
		LogMessage: "add docs",
		Changes:    []api.PathChange{{Path: "docs/index.md", Op: api.OpAdd}},
	}
	require.NoError(t, h.AfterCommit(change))

	data, err := os.ReadFile(filepath.Join(outbox, "77-a.eml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Subject: [commit] 77-a\r\n")
	assert.Contains(t, string(data), "  A docs/index.md\r\n")
}

func TestNotifyHook_TxnNameSanitized(t *testing.T) {
	outbox := t.TempDir()
	h, err := NewNotifyHook(api.NotifyConfig{
		From:      "commits@example.org",
		To:        []string{"dev@example.org"},
		OutboxDir: outbox,
	}, nil)
	require.NoError(t, err)

	change := &api.Changeset{Txn: "12/34"}
	require.NoError(t, h.AfterCommit(change))

	entries, err := os.ReadDir(outbox)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "12_34.eml", entries[0].Name())
	assert.False(t, strings.Contains(entries[0].Name(), "/"))
}

func TestNewNotifyHook_ConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  api.NotifyConfig
	}{
		{"missing from", api.NotifyConfig{To: []string{"a@b"}, OutboxDir: "/tmp/x"}},
		{"missing to", api.NotifyConfig{From: "a@b", OutboxDir: "/tmp/x"}},
		{"missing outbox", api.NotifyConfig{From: "a@b", To: []string{"c@d"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewNotifyHook(tt.cfg, nil)
			assert.ErrorIs(t, err, ErrNotifyConfig)
		})
	}
}
