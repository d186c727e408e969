// Package pattern decides which URLs the dwell tracker must never record.
package pattern

import (
	"regexp"
	"strings"
)

// Internal browser surfaces that never belong in history.
var internalSchemes = []string{"chrome://", "edge://", "about:"}

// Skippable reports whether the URL points at an internal browser page (or
// is missing entirely).
func Skippable(url string) bool {
	if url == "" {
		return true
	}
	for _, s := range internalSchemes {
		if strings.HasPrefix(url, s) {
			return true
		}
	}
	return false
}

// compile turns a user exclusion rule into an anchored, case-insensitive
// regexp. `*` is the only metacharacter and matches any run of characters;
// everything else is literal.
func compile(glob string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("(?i)^")
	for _, part := range strings.Split(glob, "*") {
		b.WriteString(regexp.QuoteMeta(part))
		b.WriteString(".*")
	}
	expr := strings.TrimSuffix(b.String(), ".*") + "$"
	return regexp.Compile(expr)
}

// MatchesAny reports whether the URL matches at least one exclusion rule.
// Empty and malformed rules are ignored rather than failing the whole check.
func MatchesAny(url string, patterns []string) bool {
	if url == "" || len(patterns) == 0 {
		return false
	}
	for _, p := range patterns {
		if p == "" {
			continue
		}
		re, err := compile(p)
		if err != nil {
			continue
		}
		if re.MatchString(url) {
			return true
		}
	}
	return false
}
