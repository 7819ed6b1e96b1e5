// Package structure validates candidate repository paths against a
// declarative, recursive structure specification.
//
// A specification is a tree of Node values built once (normally via Compile
// from a decoded configuration value) and never mutated afterwards, so it is
// safe to validate any number of paths concurrently against the same tree.
// Configuration reloads publish a freshly compiled tree; readers never
// observe a partially built one.
//
// Two failure categories are kept strictly apart: syntax errors in the
// specification itself (ErrSyntax, the repository administrator's problem)
// and structure violations by a candidate path (ErrViolation, the
// committer's problem). A syntax error is never downgraded to an allow or
// reported as a policy breach.
package structure
