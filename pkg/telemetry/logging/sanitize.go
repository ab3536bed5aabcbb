package logging

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	htmlTagPattern    = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Sanitize prepares an error reason for logging. Provider error pages often
// arrive as HTML; Sanitize strips tags, collapses runs of whitespace to a
// single space, trims the result, and truncates it to maxLen.
//
// Returns an empty string for input that contains no visible text.
func Sanitize(reason string, maxLen int) string {
	s := htmlTagPattern.ReplaceAllString(reason, " ")
	s = whitespacePattern.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)

	if maxLen > 0 && len(s) > maxLen {
		if maxLen <= 3 {
			return cutRuneBoundary(s, maxLen)
		}
		s = cutRuneBoundary(s, maxLen-3) + "..."
	}

	return s
}

// cutRuneBoundary truncates s to at most n bytes without splitting a
// multi-byte rune. n must be less than len(s).
func cutRuneBoundary(s string, n int) string {
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
