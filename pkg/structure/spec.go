package structure

import "regexp"

// Kind is the leaf assertion on a path component.
type Kind uint8

const (
	// File requires the matched component to be the final path element.
	File Kind = iota + 1
	// Dir requires the path to continue beneath the matched component.
	Dir
)

// Node is one node of the structure specification tree. The tree is
// immutable after construction.
type Node interface {
	node()
}

// Directory is an ordered rule list for one directory level. Order matters:
// rules are scanned in declaration order and the first matching name wins.
type Directory struct {
	Rules []Rule
}

// Rule pairs a name matcher with the spec applied beneath the matched
// component.
type Rule struct {
	Match NameMatcher
	Spec  Node
}

// Leaf asserts the kind of the matched component.
type Leaf struct {
	Kind Kind
}

// Outcome is an unconditional terminal decision.
type Outcome struct {
	Accept bool
	// Message is the rejection reason; empty means a generic message.
	Message string
}

// invalid carries a compile-time syntax error so that every validation
// against a broken spec reports the syntax error instead of a policy
// violation.
type invalid struct {
	err error
}

func (Directory) node() {}
func (Leaf) node()      {}
func (Outcome) node()   {}
func (invalid) node()   {}

// NameMatcher decides whether a single path component name is acceptable.
type NameMatcher interface {
	nameMatcher()
}

// ExactName matches a component name literally.
type ExactName string

// RegexName matches a component name against a compiled pattern.
type RegexName struct {
	Pattern *regexp.Regexp
}

// ElseClause matches any component name. With Deny unset it acts as a
// wildcard and validation recurses into the paired spec; with Deny set it
// rejects the whole path immediately with Message.
type ElseClause struct {
	Deny    bool
	Message string
}

func (ExactName) nameMatcher()  {}
func (RegexName) nameMatcher()  {}
func (ElseClause) nameMatcher() {}
