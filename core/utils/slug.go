package utils

import (
	"strings"
	"unicode"
)

// Slugify turns a display name into a URL- and object-key-safe slug:
// lowercased, alphanumerics kept, every other run of characters collapsed
// into a single hyphen. "The Empty Bottle" becomes "the-empty-bottle".
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	prevHyphen := true // suppresses a leading hyphen
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			prevHyphen = false
			continue
		}
		if !prevHyphen {
			b.WriteRune('-')
			prevHyphen = true
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
