package api

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangesetAddedPaths(t *testing.T) {
	cs := &Changeset{
		Changes: []PathChange{
			{Path: "trunk/new.txt", Op: OpAdd},
			{Path: "trunk/old.txt", Op: OpUpdate},
			{Path: "trunk/gone.txt", Op: OpDelete},
			{Path: "trunk/dir/", Op: OpAdd},
		},
	}

	assert.Equal(t, []string{"trunk/new.txt", "trunk/dir/"}, cs.AddedPaths())
}

func TestChangesetPropOf(t *testing.T) {
	cs := &Changeset{
		Changes: []PathChange{
			{Path: "a.png", Op: OpAdd, Props: map[string]string{"mime-type": "image/png"}},
			{Path: "b.txt", Op: OpAdd},
		},
	}

	v, ok := cs.PropOf("a.png", "mime-type")
	assert.True(t, ok)
	assert.Equal(t, "image/png", v)

	_, ok = cs.PropOf("b.txt", "mime-type")
	assert.False(t, ok)

	_, ok = cs.PropOf("missing", "mime-type")
	assert.False(t, ok)
}

func TestChangesetValidate(t *testing.T) {
	good := &Changeset{Changes: []PathChange{{Path: "x", Op: OpAdd}}}
	require.NoError(t, good.Validate())

	empty := &Changeset{Changes: []PathChange{{Path: "", Op: OpAdd}}}
	err := empty.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidChange))

	badOp := &Changeset{Changes: []PathChange{{Path: "x", Op: "replace"}}}
	err = badOp.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidChange))
}

func TestCheckConfigIsEnabled(t *testing.T) {
	assert.True(t, CheckConfig{Type: "structure"}.IsEnabled())

	on, off := true, false
	assert.True(t, CheckConfig{Type: "structure", Enabled: &on}.IsEnabled())
	assert.False(t, CheckConfig{Type: "structure", Enabled: &off}.IsEnabled())
}
