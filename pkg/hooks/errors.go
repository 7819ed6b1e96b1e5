package hooks

import "errors"

// Engine construction errors
var (
	ErrInvalidRule   = errors.New("invalid check rule")
	ErrCheckConfig   = errors.New("check configuration")
	ErrStructureSpec = errors.New("structure spec")
	ErrNotifyConfig  = errors.New("notify configuration")
	ErrNilProvider   = errors.New("confmirror requires a content provider")
)

// Post-commit hook errors
var (
	ErrMirrorRead  = errors.New("read mirrored file")
	ErrMirrorWrite = errors.New("write mirrored file")
	ErrPostCommand = errors.New("post-update command")
	ErrWriteOutbox = errors.New("write outbox message")
	ErrOutsideRoot = errors.New("path is outside provider root")
)
