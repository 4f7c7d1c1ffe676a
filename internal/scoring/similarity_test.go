// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package scoring

import (
	"testing"
)

func TestLevenshteinDistance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"abc", "abc", 0},
		{"kitten", "sitting", 3},
		{"go", "gol", 1},
		{"react", "reactjs", 2},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			t.Parallel()
			if got := levenshteinDistance(tt.a, tt.b); got != tt.want {
				t.Errorf("levenshteinDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestLevenshteinSimilarity(t *testing.T) {
	t.Parallel()

	if got := levenshteinSimilarity("golang", "golang"); got != 1 {
		t.Errorf("identical strings should have similarity 1, got %f", got)
	}

	// One edit over ten characters: similarity 0.9.
	if got := levenshteinSimilarity("javascript", "javascripd"); got != 0.9 {
		t.Errorf("expected similarity 0.9, got %f", got)
	}

	// Completely different strings score low.
	if got := levenshteinSimilarity("python", "haskell"); got >= fuzzyThreshold {
		t.Errorf("unrelated strings should score below threshold, got %f", got)
	}
}

func TestSkillsMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		candidate string
		required  string
		want      bool
	}{
		{"exact", "go", "go", true},
		{"substring candidate in required", "java", "javascript", true},
		{"substring required in candidate", "javascript", "java", true},
		{"fuzzy one typo", "kubernetes", "kubernetess", true},
		{"unrelated", "python", "haskell", false},
		{"short unrelated", "ruby", "rust", false},
		{"empty candidate", "", "go", false},
		{"empty required", "go", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := skillsMatch(tt.candidate, tt.required); got != tt.want {
				t.Errorf("skillsMatch(%q, %q) = %v, want %v", tt.candidate, tt.required, got, tt.want)
			}
		})
	}
}

func TestLocalityToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		location string
		want     string
	}{
		{"Berlin, Germany", "germany"},
		{"San Francisco, CA, USA", "usa"},
		{"London", "london"},
		{"  Paris ,  France  ", "france"},
	}

	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			t.Parallel()
			if got := localityToken(tt.location); got != tt.want {
				t.Errorf("localityToken(%q) = %q, want %q", tt.location, got, tt.want)
			}
		})
	}
}
