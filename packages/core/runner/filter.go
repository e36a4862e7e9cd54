package runner

import (
	"fmt"
	"regexp"
	"strings"
)

// Pattern matches fully qualified test names. A pattern written as
// "/expr/" is compiled as a regular expression; anything else matches
// by substring containment.
type Pattern struct {
	re     *regexp.Regexp
	substr string
}

// ParsePattern parses a filter or skip pattern. An empty pattern
// returns nil, which matches nothing when used as a skip and everything
// when used as a filter.
func ParsePattern(s string) (*Pattern, error) {
	if s == "" {
		return nil, nil
	}
	if len(s) >= 2 && strings.HasPrefix(s, "/") && strings.HasSuffix(s, "/") {
		re, err := regexp.Compile(s[1 : len(s)-1])
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", s, err)
		}
		return &Pattern{re: re}, nil
	}
	return &Pattern{substr: s}, nil
}

// Match reports whether name matches the pattern.
func (p *Pattern) Match(name string) bool {
	if p == nil {
		return false
	}
	if p.re != nil {
		return p.re.MatchString(name)
	}
	return strings.Contains(name, p.substr)
}
