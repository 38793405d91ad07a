package catalog

import "strings"

// typoTolerance is the edit distance accepted between a query word and a food name word
const typoTolerance = 1

// fuzzyNameMatch reports whether every word of the query is within
// typoTolerance edits of some word in name. Both are already normalized.
func fuzzyNameMatch(query, name string) bool {
	nameWords := strings.Fields(name)
	for _, qw := range strings.Fields(query) {
		matched := false
		for _, nw := range nameWords {
			if similarWords(qw, nw, typoTolerance) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

// similarWords checks if two words are within threshold edits. Words shorter
// than four letters must match exactly to avoid false positives.
func similarWords(a, b string, threshold int) bool {
	if a == b {
		return true
	}
	if len(a) < 4 || len(b) < 4 {
		return false
	}

	lenDiff := len(a) - len(b)
	if lenDiff < 0 {
		lenDiff = -lenDiff
	}
	if lenDiff > threshold {
		return false
	}

	return editDistance(a, b) <= threshold
}

// editDistance is the Levenshtein distance between a and b
func editDistance(a, b string) int {
	r1, r2 := []rune(a), []rune(b)
	if len(r1) == 0 {
		return len(r2)
	}
	if len(r2) == 0 {
		return len(r1)
	}

	// Two rows instead of the full matrix
	prev := make([]int, len(r2)+1)
	curr := make([]int, len(r2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(r1); i++ {
		curr[0] = i
		for j := 1; j <= len(r2); j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(r2)]
}
