package hooks

import (
	"regexp"
	"strings"
)

// textMatcher matches a string either literally or, when the source was
// written "/re/", against a compiled pattern.
type textMatcher struct {
	re    *regexp.Regexp
	exact string
}

func compileTextMatcher(src string) (textMatcher, error) {
	if len(src) > 2 && strings.HasPrefix(src, "/") && strings.HasSuffix(src, "/") {
		re, err := regexp.Compile(src[1 : len(src)-1])
		if err != nil {
			return textMatcher{}, err
		}
		return textMatcher{re: re}, nil
	}
	return textMatcher{exact: src}, nil
}

func (m textMatcher) match(s string) bool {
	if m.re != nil {
		return m.re.MatchString(s)
	}
	return m.exact == s
}
