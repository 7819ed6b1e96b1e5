package hooks

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repogate/repogate/pkg/api"
)

func TestPropertyCheck_Exists(t *testing.T) {
	c, err := NewPropertyCheck([]api.PropertyRule{
		{Pattern: `/\.sh$/`, Prop: "executable"},
	}, nil)
	require.NoError(t, err)

	cs := &api.Changeset{Changes: []api.PathChange{
		{Path: "bin/run.sh", Op: api.OpAdd, Props: map[string]string{"executable": "*"}},
		{Path: "bin/setup.sh", Op: api.OpAdd},
		{Path: "bin/readme.txt", Op: api.OpAdd},
	}}

	violations := c.Check(cs)
	require.Len(t, violations, 1)
	assert.Equal(t, "the property executable must be set on: bin/setup.sh", violations[0].Message)
}

func TestPropertyCheck_ValueForms(t *testing.T) {
	c, err := NewPropertyCheck([]api.PropertyRule{
		{Pattern: "CHANGES", Prop: "keywords", Value: "Id"},
		{Pattern: `/\.c$/`, Prop: "eol-style", Value: "/^(native|LF)$/"},
	}, nil)
	require.NoError(t, err)

	tests := []struct {
		name  string
		path  string
		props map[string]string
		ok    bool
	}{
		{"exact equal", "CHANGES", map[string]string{"keywords": "Id"}, true},
		{"exact differs", "CHANGES", map[string]string{"keywords": "Rev"}, false},
		{"regex matches", "src/main.c", map[string]string{"eol-style": "native"}, true},
		{"regex rejects", "src/main.c", map[string]string{"eol-style": "CRLF"}, false},
		{"pattern does not select", "README", map[string]string{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := &api.Changeset{Changes: []api.PathChange{
				{Path: tt.path, Op: api.OpUpdate, Props: tt.props},
			}}
			violations := c.Check(cs)
			if tt.ok {
				assert.Empty(t, violations)
			} else {
				assert.Len(t, violations, 1)
			}
		})
	}
}

func TestPropertyCheck_DeletesSkipped(t *testing.T) {
	c, err := NewPropertyCheck([]api.PropertyRule{
		{Pattern: "CHANGES", Prop: "keywords"},
	}, nil)
	require.NoError(t, err)

	cs := &api.Changeset{Changes: []api.PathChange{
		{Path: "CHANGES", Op: api.OpDelete},
	}}
	assert.Empty(t, c.Check(cs))
}

func TestPropertyCheck_InvalidRules(t *testing.T) {
	_, err := NewPropertyCheck([]api.PropertyRule{{Pattern: "x"}}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidRule))

	_, err = NewPropertyCheck([]api.PropertyRule{{Pattern: "/([/", Prop: "p"}}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidRule))
}
