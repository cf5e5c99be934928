// Package extract implements the pattern cascade shared by the trade
// and wallet interpreters: an ordered list of regular expressions per
// field, evaluated first-match-wins.
package extract

import (
	"fmt"
	"regexp"
)

// Pattern wraps one compiled matcher in a cascade. Matching is always
// case-insensitive.
type Pattern struct {
	re *regexp.Regexp
}

// Compile compiles an ordered list of pattern expressions.
// It fails on the first malformed expression; callers run it at
// startup so pattern errors surface as configuration errors, never
// while handling a slip.
func Compile(exprs []string) ([]Pattern, error) {
	patterns := make([]Pattern, 0, len(exprs))
	for _, expr := range exprs {
		re, err := regexp.Compile("(?i)" + expr)
		if err != nil {
			return nil, fmt.Errorf("compile pattern %q: %w", expr, err)
		}
		patterns = append(patterns, Pattern{re: re})
	}
	return patterns, nil
}

// Captures matches a single pattern against text and returns its named
// captures. Unmatched optional groups are present with empty values.
func (p Pattern) Captures(text string) (map[string]string, bool) {
	m := p.re.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	captures := make(map[string]string)
	for i, name := range p.re.SubexpNames() {
		if name == "" || i >= len(m) {
			continue
		}
		captures[name] = m[i]
	}
	return captures, true
}

// First evaluates the cascade strictly in order and returns the first
// non-empty capture of the named field. A pattern that matches but
// leaves the field empty or uncaptured counts as a non-match and
// evaluation continues. An empty field name asks for the whole match.
// Pure function: same inputs always yield the same result.
func First(patterns []Pattern, text, field string) (string, bool) {
	if text == "" {
		return "", false
	}
	for _, p := range patterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if field == "" {
			return m[0], true
		}
		idx := p.re.SubexpIndex(field)
		if idx < 0 || idx >= len(m) || m[idx] == "" {
			continue
		}
		return m[idx], true
	}
	return "", false
}
