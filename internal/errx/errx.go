// Package errx provides small helpers for combining sentinel errors with
// dynamic context. Callers declare per-file sentinel vars with errors.New
// and attach detail at the failure site.
package errx

import "fmt"

// Wrap attaches a cause to a sentinel error. The sentinel remains matchable
// with errors.Is; the cause is preserved for errors.Unwrap.
func Wrap(sentinel, cause error) error {
	return fmt.Errorf("%w: %w", sentinel, cause)
}

// With appends a literal detail string to a sentinel error. The detail is
// expected to carry its own separator (": ..." by convention).
func With(sentinel error, detail string) error {
	return fmt.Errorf("%w%s", sentinel, detail)
}
