package hooks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repogate/repogate/pkg/api"
)

func TestMimeTypesCheck_MissingProperty(t *testing.T) {
	c := NewMimeTypesCheck(api.MimeTypesConfig{}, nil)

	cs := &api.Changeset{
		Changes: []api.PathChange{
			{Path: "docs/readme.html", Op: api.OpAdd},
			{Path: "img/logo.png", Op: api.OpAdd, Props: map[string]string{"mime-type": "image/png"}},
		},
	}

	violations := c.Check(cs)
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0].Message, "docs/readme.html")
	assert.Contains(t, violations[0].Message, "has no mime-type property")
	// The extension is well known, so a suggestion is attached.
	assert.Contains(t, violations[0].Message, "text/html")
}

func TestMimeTypesCheck_SkipsDirectoriesAndNonAdds(t *testing.T) {
	c := NewMimeTypesCheck(api.MimeTypesConfig{}, nil)

	cs := &api.Changeset{
		Changes: []api.PathChange{
			{Path: "docs/", Op: api.OpAdd},
			{Path: "old.txt", Op: api.OpUpdate},
			{Path: "gone.txt", Op: api.OpDelete},
		},
	}

	assert.Empty(t, c.Check(cs))
}

func TestMimeTypesCheck_Allowlist(t *testing.T) {
	c := NewMimeTypesCheck(api.MimeTypesConfig{
		Allowed: []string{"text/*", "image/png"},
	}, nil)

	tests := []struct {
		name  string
		value string
		ok    bool
	}{
		{"family match", "text/plain", true},
		{"family match with params", "text/plain; charset=utf-8", true},
		{"exact match", "image/png", true},
		{"not allowed", "application/octet-stream", false},
		{"family prefix is not a string prefix", "textual/nonsense", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := &api.Changeset{Changes: []api.PathChange{
				{Path: "f", Op: api.OpAdd, Props: map[string]string{"mime-type": tt.value}},
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

func TestMimeTypesCheck_CustomProperty(t *testing.T) {
	c := NewMimeTypesCheck(api.MimeTypesConfig{Property: "svn:mime-type"}, nil)

	cs := &api.Changeset{Changes: []api.PathChange{
		{Path: "a.txt", Op: api.OpAdd, Props: map[string]string{"svn:mime-type": "text/plain"}},
		{Path: "b.txt", Op: api.OpAdd, Props: map[string]string{"mime-type": "text/plain"}},
	}}

	violations := c.Check(cs)
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0].Message, "b.txt")
}
