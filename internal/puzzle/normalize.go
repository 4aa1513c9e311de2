package puzzle

import (
	"strings"

	"golang.org/x/text/cases"
)

// Normalize canonicalizes a raw answer for comparison: surrounding whitespace is
// trimmed and the remainder is Unicode case folded.
func Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	// A Caser carries state, so each call gets its own.
	return cases.Fold().String(trimmed)
}

// normalizePair canonicalizes a "left:right" matching token side by side, so
// "Ryan Majd : President" and "ryan majd:president" compare equal.
func normalizePair(token string) string {
	left, right, ok := strings.Cut(token, pairSeparator)
	if !ok {
		return Normalize(token)
	}
	return Normalize(left) + pairSeparator + Normalize(right)
}

func normalizeAll(values []string, norm func(string) string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, norm(v))
	}
	return out
}
