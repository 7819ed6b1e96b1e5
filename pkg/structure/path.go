package structure

import "strings"

// Path is an ordered sequence of path components. The first component is the
// empty root marker; a trailing empty component means the path denotes a
// directory, mirroring listings where directory paths end in a separator.
type Path []string

// SplitPath converts a slash-separated path string into components. A
// leading slash is added when absent; a trailing slash is preserved as a
// trailing empty component.
func SplitPath(s string) Path {
	if !strings.HasPrefix(s, "/") {
		s = "/" + s
	}
	return strings.Split(s, "/")
}

// String joins the components back into the display form used in error
// messages.
func (p Path) String() string {
	return strings.Join(p, "/")
}

// IsDir reports whether the path denotes a directory.
func (p Path) IsDir() bool {
	return len(p) > 0 && p[len(p)-1] == ""
}
