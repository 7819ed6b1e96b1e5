package structure

import "errors"

// Category sentinels for the two disjoint failure classes. Both are
// matchable with errors.Is on any error returned by this package.
var (
	// ErrSyntax indicates the structure spec itself is malformed.
	ErrSyntax = errors.New("syntax error in structure spec")
	// ErrViolation indicates a candidate path does not conform to the spec.
	ErrViolation = errors.New("structure violation")
)

// ViolationError reports a single non-conforming path.
type ViolationError struct {
	// Reason describes which rule or kind check failed, mentioning the
	// offending path component.
	Reason string
	// Path is the full original path, slash-joined.
	Path string
}

func (e *ViolationError) Error() string {
	return e.Reason + ": " + e.Path
}

// Is makes ViolationError match ErrViolation.
func (e *ViolationError) Is(target error) bool {
	return target == ErrViolation
}

// SyntaxError reports a malformed structure spec, either at compile time
// (Path empty) or when a malformed node is reached during validation.
type SyntaxError struct {
	Reason string
	Path   string
}

func (e *SyntaxError) Error() string {
	if e.Path == "" {
		return "syntax error: " + e.Reason
	}
	return "syntax error: " + e.Reason + ": " + e.Path
}

// Is makes SyntaxError match ErrSyntax.
func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

func violation(reason, path string) error {
	return &ViolationError{Reason: reason, Path: path}
}

func syntaxErr(reason, path string) error {
	return &SyntaxError{Reason: reason, Path: path}
}
