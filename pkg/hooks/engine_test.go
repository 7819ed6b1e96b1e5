package hooks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repogate/repogate/pkg/api"
	"github.com/repogate/repogate/pkg/logging"
)

// captureSink records events in memory for assertions.
type captureSink struct {
	events []*logging.Event
}

func (s *captureSink) Write(e *logging.Event) error {
	s.events = append(s.events, e)
	return nil
}

func (s *captureSink) Close() error { return nil }

func gateConfig() *api.Config {
	return &api.Config{
		Repo: "test-repo",
		Structure: []any{
			map[string]any{"trunk": []any{
				map[string]any{"README": "file"},
				map[string]any{"src": true},
			}},
			map[string]any{"tags": []any{
				map[string]any{"else": map[string]any{"deny": "tags are frozen"}},
			}},
		},
		LogMessage: &api.LogMessageConfig{MinLength: 5},
	}
}

func TestNewEngine_FlatFields(t *testing.T) {
	e, err := NewEngine(gateConfig(), nil, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"structure", "logmsg"}, e.PreCommitChecks())
	assert.Empty(t, e.PostCommitHooks())
}

func TestNewEngine_ChecksArray(t *testing.T) {
	cfg := &api.Config{
		Checks: []api.CheckConfig{
			{Type: "logmsg", Config: map[string]any{"min_length": 10}},
			{Type: "mimetypes", Config: map[string]any{}},
		},
	}
	e, err := NewEngine(cfg, nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"logmsg", "mimetypes"}, e.PreCommitChecks())
}

func TestNewEngine_DisabledCheckSkipped(t *testing.T) {
	disabled := false
	cfg := &api.Config{
		Checks: []api.CheckConfig{
			{Type: "logmsg", Enabled: &disabled},
		},
	}
	e, err := NewEngine(cfg, nil, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, e.PreCommitChecks())
}

func TestNewEngine_UnknownTypeSkipped(t *testing.T) {
	cfg := &api.Config{
		Checks: []api.CheckConfig{
			{Type: "does-not-exist"},
			{Type: "logmsg"},
		},
	}
	e, err := NewEngine(cfg, nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"logmsg"}, e.PreCommitChecks())
}

func TestNewEngine_BadStructureFatal(t *testing.T) {
	cfg := &api.Config{Structure: []any{}}
	_, err := NewEngine(cfg, nil, nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStructureSpec)
}

func TestNewEngine_BadFactoryConfigFatal(t *testing.T) {
	cfg := &api.Config{
		Checks: []api.CheckConfig{
			{Type: "logmsg", Config: map[string]any{"match": "/([/"}},
		},
	}
	_, err := NewEngine(cfg, nil, nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCheckConfig)
}

func TestEngine_PreCommitAccept(t *testing.T) {
	e, err := NewEngine(gateConfig(), nil, nil, nil)
	require.NoError(t, err)

	rep := e.PreCommit(&api.Changeset{
		Txn:        "42-1",
		LogMessage: "add a source file",
		Changes: []api.PathChange{
			{Path: "trunk/src/main.go", Op: api.OpAdd},
		},
	})
	assert.True(t, rep.Ok())
	assert.Equal(t, "ok", rep.String())
	assert.NotEmpty(t, rep.RunID)
}

func TestEngine_PreCommitCollectsAcrossChecks(t *testing.T) {
	e, err := NewEngine(gateConfig(), nil, nil, nil)
	require.NoError(t, err)

	rep := e.PreCommit(&api.Changeset{
		Txn:        "42-2",
		LogMessage: "x",
		Changes: []api.PathChange{
			{Path: "tags/1.0/", Op: api.OpAdd},
		},
	})
	require.False(t, rep.Ok())
	// One violation from structure, one from logmsg: no short-circuit.
	require.Len(t, rep.Violations, 2)
	assert.Contains(t, rep.String(), "tags are frozen: /tags/1.0/")
	assert.Contains(t, rep.String(), "at least 5 characters")
}

func TestEngine_PreCommitEmitsVerdict(t *testing.T) {
	sink := &captureSink{}
	emitter := logging.NewEmitter(logging.EmitterConfig{Repo: "test-repo"}, sink)

	e, err := NewEngine(gateConfig(), nil, nil, emitter)
	require.NoError(t, err)

	e.PreCommit(&api.Changeset{
		Txn:        "7-1",
		Author:     "alice",
		LogMessage: "good message",
		Changes:    []api.PathChange{{Path: "trunk/README", Op: api.OpAdd}},
	})

	require.Len(t, sink.events, 1)
	ev := sink.events[0]
	assert.Equal(t, logging.EventPreCommitVerdict, ev.EventType)
	assert.Equal(t, "test-repo", ev.Repo)
	assert.Contains(t, ev.Summary, "accepted")
}

func TestEngine_PostCommitCollectsErrors(t *testing.T) {
	outbox := t.TempDir()
	cfg := &api.Config{
		Notify: &api.NotifyConfig{
			From:      "commits@example.org",
			To:        []string{"dev@example.org"},
			OutboxDir: outbox,
		},
		ConfMirror: []api.ConfMirrorRule{
			{Source: "conf/a", Dest: t.TempDir() + "/a"},
		},
	}
	e, err := NewEngine(cfg, mapProvider{}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"notify", "confmirror"}, e.PostCommitHooks())

	errs := e.PostCommit(&api.Changeset{
		Txn:     "9-1",
		Changes: []api.PathChange{{Path: "conf/a", Op: api.OpUpdate}},
	})
	// Notify succeeds, confmirror fails on the missing source.
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], ErrMirrorRead)
}
