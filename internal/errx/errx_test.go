package errx

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errSentinel = errors.New("open store")

func TestWrap(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(errSentinel, cause)

	require.Error(t, err)
	assert.True(t, errors.Is(err, errSentinel))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "open store: disk full", err.Error())
}

func TestWith(t *testing.T) {
	err := With(errSentinel, ": /var/db/gate.db")

	require.Error(t, err)
	assert.True(t, errors.Is(err, errSentinel))
	assert.Equal(t, "open store: /var/db/gate.db", err.Error())
}
