package structure

import (
	"fmt"
	"strings"
)

// Validate checks one path against the spec tree.
//
// Decision policy:
//   - one spec level is consumed per path component; the component naming a
//     directory is consumed by the Directory node it recursed into
//   - within a Directory, rules are scanned in declaration order and the
//     first matching name wins
//   - adding an empty directory (trailing separator right after a matched
//     directory name) is always permitted
//
// Returns nil on success, a *ViolationError when the path does not conform,
// or a *SyntaxError when the spec itself is malformed.
func Validate(n Node, p Path) error {
	return validate(n, p, p.String())
}

// Check is the single-path convenience form. The path is split with
// SplitPath; a trailing slash marks a directory.
func Check(n Node, path string) error {
	return Validate(n, SplitPath(path))
}

func validate(n Node, rest Path, full string) error {
	switch s := n.(type) {
	case Outcome:
		if s.Accept {
			return nil
		}
		msg := s.Message
		if msg == "" {
			msg = "invalid path"
		}
		return violation(msg, full)

	case Leaf:
		name := ""
		if len(rest) > 0 {
			name = rest[0]
		}
		switch s.Kind {
		case File:
			if len(rest) == 1 {
				return nil
			}
			return violation(fmt.Sprintf("the component (%s) should be a FILE", name), full)
		case Dir:
			if len(rest) > 1 {
				return nil
			}
			return violation(fmt.Sprintf("the component (%s) should be a DIR", name), full)
		}
		return syntaxErr(fmt.Sprintf("unknown kind (%d)", s.Kind), full)

	case Directory:
		if len(s.Rules) == 0 {
			return syntaxErr("empty rule list", full)
		}
		if len(rest) <= 1 {
			return violation("the path should be a DIR", full)
		}
		// Consume the component naming this directory; the matched child
		// component stays at the head for the recursive call.
		rest = rest[1:]
		if len(rest) == 1 && rest[0] == "" {
			// Adding the empty directory itself is always allowed.
			return nil
		}
		name := rest[0]
		for _, r := range s.Rules {
			switch m := r.Match.(type) {
			case ExactName:
				if string(m) == name {
					return validate(r.Spec, rest, full)
				}
			case RegexName:
				if m.Pattern == nil {
					return syntaxErr("nil pattern in name matcher", full)
				}
				if m.Pattern.MatchString(name) {
					return validate(r.Spec, rest, full)
				}
			case ElseClause:
				if m.Deny {
					msg := m.Message
					if msg == "" {
						msg = "invalid path"
					}
					return violation(msg, full)
				}
				return validate(r.Spec, rest, full)
			default:
				return syntaxErr("invalid name matcher in rule list", full)
			}
		}
		return violation(fmt.Sprintf("the component (%s) is not allowed", name), full)

	case invalid:
		return syntaxErr(s.err.Error(), full)
	}
	return syntaxErr("invalid spec node", full)
}

// Report aggregates the violations of one batch validation.
type Report struct {
	Failures []error
}

// ValidateAll checks every path and collects all failures instead of
// stopping at the first, so a multi-file commit surfaces every offending
// path at once.
func ValidateAll(n Node, paths []string) *Report {
	rep := &Report{}
	for _, p := range paths {
		if err := Check(n, p); err != nil {
			rep.Failures = append(rep.Failures, err)
		}
	}
	return rep
}

// Ok reports whether the batch passed.
func (r *Report) Ok() bool {
	return len(r.Failures) == 0
}

// String returns the newline-joined failure messages, or "ok".
func (r *Report) String() string {
	if r.Ok() {
		return "ok"
	}
	msgs := make([]string, len(r.Failures))
	for i, err := range r.Failures {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}
