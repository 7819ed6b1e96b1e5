package api

import "errors"

var (
	// ErrInvalidChange indicates a malformed changeset entry.
	ErrInvalidChange = errors.New("invalid change")
)
