package fuzzy

import (
	"strings"
	"unicode"
)

// Normalize lowercases a name and strips everything that is not a letter
// or a digit. The result is the comparison key used for scoring.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Distance returns the Levenshtein edit distance between a and b,
// counted in runes.
func Distance(a, b string) int {
	return distance([]rune(a), []rune(b))
}

// Similarity scores how alike two names are on a 0..1 scale.
// Both inputs are normalized first; the score is
// 1 - distance/max(len(a), len(b)) over the normalized keys.
// Two names that normalize to the empty string are considered identical.
func Similarity(a, b string) float64 {
	na := []rune(Normalize(a))
	nb := []rune(Normalize(b))

	if len(na) == 0 && len(nb) == 0 {
		return 1
	}
	if len(na) == 0 || len(nb) == 0 {
		return 0
	}

	longest := max(len(na), len(nb))
	return 1 - float64(distance(na, nb))/float64(longest)
}

// distance is the classic two-row dynamic programming implementation.
func distance(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
