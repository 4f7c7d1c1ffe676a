// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package scoring

import (
	"strings"
)

// fuzzyThreshold is the minimum normalized Levenshtein similarity for two
// skill names to count as a match ("kubernetes" vs "kubernetess").
const fuzzyThreshold = 0.8

// normalizeSkill canonicalizes a skill name for comparison.
func normalizeSkill(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// skillsMatch reports whether a normalized candidate skill satisfies a
// normalized required skill: exact, substring in either direction, or
// fuzzy similarity at or above the threshold.
func skillsMatch(candidate, required string) bool {
	if candidate == "" || required == "" {
		return false
	}
	if candidate == required {
		return true
	}
	if strings.Contains(candidate, required) || strings.Contains(required, candidate) {
		return true
	}
	return levenshteinSimilarity(candidate, required) >= fuzzyThreshold
}

// levenshteinSimilarity returns 1 - distance/maxLen, mapping edit distance
// onto [0,1] where 1 is identical.
func levenshteinSimilarity(a, b string) float64 {
	if a == b {
		return 1
	}

	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 1
	}

	return 1 - float64(levenshteinDistance(a, b))/float64(maxLen)
}

// levenshteinDistance computes the edit distance between two strings using
// the two-row dynamic programming formulation.
func levenshteinDistance(a, b string) int {
	if a == b {
		return 0
	}
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

			deletion := prev[j] + 1
			insertion := curr[j-1] + 1
			substitution := prev[j-1] + cost

			min := deletion
			if insertion < min {
				min = insertion
			}
			if substitution < min {
				min = substitution
			}
			curr[j] = min
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

// localityToken extracts the trailing comma-separated token of a location
// string for the naive region comparison ("Berlin, Germany" -> "germany").
func localityToken(location string) string {
	parts := strings.Split(location, ",")
	return strings.ToLower(strings.TrimSpace(parts[len(parts)-1]))
}
