// Package text provides normalized name-similarity metrics for place matching.
package text

import "strings"

// Normalize trims the string, lowercases it, and collapses internal runs of
// whitespace into single spaces.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Similarity returns the edit-distance-normalized similarity of two names in
// [0,1]. Both strings are normalized first. Both empty → 1; exactly one
// empty → 0. Symmetric, and reflexive for non-empty input.
func Similarity(a, b string) float64 {
	na := []rune(Normalize(a))
	nb := []rune(Normalize(b))

	if len(na) == 0 && len(nb) == 0 {
		return 1
	}
	if len(na) == 0 || len(nb) == 0 {
		return 0
	}

	maxLen := len(na)
	if len(nb) > maxLen {
		maxLen = len(nb)
	}

	return 1 - float64(levenshtein(na, nb))/float64(maxLen)
}

// BlendedSimilarity is the duplicate-detection variant: exact match after
// normalization → 1.0; substring containment → len(shorter)/len(longer);
// otherwise the edit-distance similarity. An empty name on either side yields
// 0, so records without a usable name never group.
func BlendedSimilarity(a, b string) float64 {
	na := Normalize(a)
	nb := Normalize(b)

	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1
	}

	shorter, longer := na, nb
	if len([]rune(shorter)) > len([]rune(longer)) {
		shorter, longer = longer, shorter
	}
	if strings.Contains(longer, shorter) {
		return float64(len([]rune(shorter))) / float64(len([]rune(longer)))
	}

	return Similarity(na, nb)
}

// levenshtein computes the classic DP edit distance with unit costs for
// insert, delete, and substitute. Two rolling rows keep it O(min) memory.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = minInt(
				prev[j]+1,      // delete
				curr[j-1]+1,    // insert
				prev[j-1]+cost, // substitute
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

func minInt(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
