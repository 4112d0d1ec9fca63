package grid

import (
	"strings"
	"unicode"
)

// Normalize collapses every run of whitespace into a single ASCII space and
// trims the result. Non-breaking and zero-width spaces count as whitespace.
func Normalize(s string) string {
	if s == "" {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	pendingSpace := false
	for _, r := range s {
		if isSpace(r) {
			pendingSpace = b.Len() > 0
			continue
		}
		if pendingSpace {
			b.WriteByte(' ')
			pendingSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\u200b'
}
