package structure

import (
	"fmt"
	"regexp"
	"strings"
)

// Compile builds an immutable spec tree from a generic decoded configuration
// value (the shape produced by YAML or JSON unmarshalling into any).
//
// Accepted shapes:
//   - a list builds a Directory; its elements are either single-key maps
//     (key: name matcher, value: sub-spec; list order is rule order) or a
//     flat alternating [name, spec, name, spec, ...] sequence
//   - a rule name written "/re/" or "qr/re/" compiles to a regex matcher,
//     "else" to an else-clause; anything else is an exact name
//   - leaf strings: "file", "dir", "accept", "deny" (case-insensitive)
//   - {deny: "message"} is a rejection with an attached message
//   - booleans and bare integers are legacy terminals: true/positive means
//     accept, false/non-positive means deny; they are converted to tagged
//     Outcome values here and never propagated into the tree
//
// On failure Compile returns the syntax error together with a Node that
// reproduces the same syntax error for every path later validated against
// it, so a malformed spec can never be mistaken for a policy verdict.
func Compile(v any) (Node, error) {
	n, err := compileNode(v)
	if err != nil {
		return invalid{err: err}, err
	}
	return n, nil
}

func compileNode(v any) (Node, error) {
	switch t := v.(type) {
	case string:
		return compileLeaf(t)
	case bool:
		return Outcome{Accept: t}, nil
	case []any:
		return compileDirectory(t)
	case map[string]any:
		if msg, ok := denyMessage(t); ok {
			return Outcome{Accept: false, Message: msg}, nil
		}
		return nil, syntaxErr("directory rules must be an ordered list, not a map", "")
	case nil:
		return nil, syntaxErr("missing spec value", "")
	}
	if n, ok := asInt(v); ok {
		return Outcome{Accept: n > 0}, nil
	}
	return nil, syntaxErr(fmt.Sprintf("invalid spec value of type %T", v), "")
}

func compileLeaf(s string) (Node, error) {
	switch strings.ToLower(s) {
	case "file":
		return Leaf{Kind: File}, nil
	case "dir":
		return Leaf{Kind: Dir}, nil
	case "accept":
		return Outcome{Accept: true}, nil
	case "deny":
		return Outcome{Accept: false}, nil
	}
	return nil, syntaxErr(fmt.Sprintf("unknown leaf spec (%q)", s), "")
}

func compileDirectory(items []any) (Node, error) {
	if len(items) == 0 {
		return nil, syntaxErr("empty rule list", "")
	}
	if pairs, ok := asPairMaps(items); ok {
		dir := Directory{Rules: make([]Rule, 0, len(pairs))}
		for _, p := range pairs {
			rule, err := compileRule(p.key, p.val)
			if err != nil {
				return nil, err
			}
			dir.Rules = append(dir.Rules, rule)
		}
		return dir, nil
	}
	// Flat alternating form, kept for compatibility with specs written as
	// one continuous sequence.
	if len(items)%2 != 0 {
		return nil, syntaxErr("odd number of elements in rule list", "")
	}
	dir := Directory{Rules: make([]Rule, 0, len(items)/2)}
	for i := 0; i < len(items); i += 2 {
		rule, err := compileFlatRule(items[i], items[i+1])
		if err != nil {
			return nil, err
		}
		dir.Rules = append(dir.Rules, rule)
	}
	return dir, nil
}

func compileRule(key string, val any) (Rule, error) {
	if key == "else" {
		return compileElse(val)
	}
	m, err := compileName(key)
	if err != nil {
		return Rule{}, err
	}
	spec, err := compileNode(val)
	if err != nil {
		return Rule{}, err
	}
	return Rule{Match: m, Spec: spec}, nil
}

func compileFlatRule(lhs, rhs any) (Rule, error) {
	if s, ok := lhs.(string); ok {
		return compileRule(s, rhs)
	}
	n, ok := asInt(lhs)
	if !ok {
		return Rule{}, syntaxErr(fmt.Sprintf("invalid name matcher of type %T", lhs), "")
	}
	// Legacy signed-integer else clause.
	if n > 0 {
		spec, err := compileNode(rhs)
		if err != nil {
			return Rule{}, err
		}
		return Rule{Match: ElseClause{}, Spec: spec}, nil
	}
	switch msg := rhs.(type) {
	case string:
		return Rule{Match: ElseClause{Deny: true, Message: msg}}, nil
	case nil:
		return Rule{Match: ElseClause{Deny: true}}, nil
	}
	return Rule{}, syntaxErr("non-string message paired with numeric else clause", "")
}

func compileElse(val any) (Rule, error) {
	if s, ok := val.(string); ok && strings.EqualFold(s, "deny") {
		return Rule{Match: ElseClause{Deny: true}}, nil
	}
	if m, ok := val.(map[string]any); ok {
		if msg, ok := denyMessage(m); ok {
			return Rule{Match: ElseClause{Deny: true, Message: msg}}, nil
		}
	}
	spec, err := compileNode(val)
	if err != nil {
		return Rule{}, err
	}
	return Rule{Match: ElseClause{}, Spec: spec}, nil
}

func compileName(key string) (NameMatcher, error) {
	expr := ""
	switch {
	case strings.HasPrefix(key, "qr/") && strings.HasSuffix(key, "/") && len(key) > 4:
		expr = key[3 : len(key)-1]
	case strings.HasPrefix(key, "/") && strings.HasSuffix(key, "/") && len(key) > 2:
		expr = key[1 : len(key)-1]
	default:
		return ExactName(key), nil
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, syntaxErr(fmt.Sprintf("invalid regex %q: %v", expr, err), "")
	}
	return RegexName{Pattern: re}, nil
}

type pair struct {
	key string
	val any
}

// asPairMaps reports whether every list element is a single-key map, the
// ordered-rule form, and extracts the pairs in list order.
func asPairMaps(items []any) ([]pair, bool) {
	pairs := make([]pair, 0, len(items))
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok || len(m) != 1 {
			return nil, false
		}
		for k, v := range m {
			pairs = append(pairs, pair{key: k, val: v})
		}
	}
	return pairs, true
}

func denyMessage(m map[string]any) (string, bool) {
	if len(m) != 1 {
		return "", false
	}
	v, ok := m["deny"]
	if !ok {
		return "", false
	}
	msg, ok := v.(string)
	return msg, ok
}

func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	case float32:
		return int64(n), true
	case float64:
		return int64(n), true
	}
	return 0, false
}
