// Package similarity detects near-duplicate item names with a Levenshtein
// edit distance.
package similarity

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// DefaultThreshold is the percentage used when callers have no preference.
const DefaultThreshold = 80.0

// Normalize lower-cases s and drops every character outside [a-z0-9].
func Normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// EditDistance returns the Levenshtein distance between the lower-cased
// inputs, counted in runes.
func EditDistance(a, b string) int {
	return levenshtein.ComputeDistance(strings.ToLower(a), strings.ToLower(b))
}

// SimilarityPercent returns (1 - distance/maxLen) * 100, or 100 when both
// inputs are empty. Distance and length are both measured on the
// lower-cased strings, keeping the result within [0, 100].
func SimilarityPercent(a, b string) float64 {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	maxLen := max(utf8.RuneCountInString(la), utf8.RuneCountInString(lb))
	if maxLen == 0 {
		return 100.0
	}
	return (1.0 - float64(levenshtein.ComputeDistance(la, lb))/float64(maxLen)) * 100.0
}

// AreSimilar reports whether a and b match after normalization or reach
// threshold percent similarity.
func AreSimilar(a, b string, threshold float64) bool {
	na, nb := Normalize(a), Normalize(b)
	if na == nb {
		return true
	}
	return SimilarityPercent(na, nb) >= threshold
}
