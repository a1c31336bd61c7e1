package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// comparison form: NFKD decomposition with combining marks removed, then
// everything outside [a-z0-9 ] dropped.
var decomposer = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

// Normalize canonicalizes free text for comparisons. It lowercases, strips
// accents and every character outside [a-z0-9 ]. It never fails: input that
// cannot be transformed falls back to plain lowercasing, and empty input
// yields an empty string. Normalize(Normalize(s)) == Normalize(s) for all s.
//
// Every team and player comparison in this codebase goes through Normalize;
// raw strings are never compared directly.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	decomposed, _, err := transform.String(decomposer, text)
	if err != nil {
		decomposed = text
	}

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range strings.ToLower(decomposed) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ':
			b.WriteRune(r)
		}
	}
	return b.String()
}
