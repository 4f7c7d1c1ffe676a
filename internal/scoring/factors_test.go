// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package scoring

import (
	"testing"

	"github.com/tomtom215/conexus/internal/models"
)

func candidateWithSkills(names ...string) *models.CandidateProfile {
	skills := make([]models.Skill, 0, len(names))
	for _, n := range names {
		skills = append(skills, models.Skill{Name: n})
	}
	return &models.CandidateProfile{ID: "cand-1", Skills: skills}
}

func jobRequiringSkills(names ...string) *models.JobProfile {
	return &models.JobProfile{
		ID:           "job-1",
		Requirements: models.JobRequirements{Skills: names},
	}
}

// --- Test: skills factor ---

func TestSkillsFactorNoRequirements(t *testing.T) {
	t.Parallel()

	// Any candidate scores 1.0 against a job with no required skills.
	candidates := []*models.CandidateProfile{
		candidateWithSkills(),
		candidateWithSkills("go"),
		candidateWithSkills("cobol", "fortran"),
	}

	for _, c := range candidates {
		score, matched, missing := skillsFactor(c, jobRequiringSkills())
		if score != 1.0 {
			t.Errorf("expected 1.0 for no requirements, got %f", score)
		}
		if matched != nil || missing != nil {
			t.Errorf("expected no matched/missing lists, got %v / %v", matched, missing)
		}
	}
}

func TestSkillsFactorPartialMatch(t *testing.T) {
	t.Parallel()

	candidate := candidateWithSkills("javascript", "react")
	job := jobRequiringSkills("javascript", "python")

	score, matched, missing := skillsFactor(candidate, job)
	if score != 0.5 {
		t.Errorf("expected 0.5 for 1/2 matched, got %f", score)
	}
	if len(matched) != 1 || matched[0] != "javascript" {
		t.Errorf("expected matched [javascript], got %v", matched)
	}
	if len(missing) != 1 || missing[0] != "python" {
		t.Errorf("expected missing [python], got %v", missing)
	}
}

func TestSkillsFactorCaseInsensitive(t *testing.T) {
	t.Parallel()

	score, _, _ := skillsFactor(candidateWithSkills("Go", "PostgreSQL"), jobRequiringSkills("go", "postgresql"))
	if score != 1.0 {
		t.Errorf("expected case-insensitive full match, got %f", score)
	}
}

func TestSkillsFactorFuzzyMatch(t *testing.T) {
	t.Parallel()

	// One typo within the fuzzy threshold still counts.
	score, _, _ := skillsFactor(candidateWithSkills("kubernetes"), jobRequiringSkills("kubernetis"))
	if score != 1.0 {
		t.Errorf("expected fuzzy match to count, got %f", score)
	}
}

// --- Test: experience factor ---

func TestExperienceFactor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		years    float64
		required float64
		want     float64
	}{
		{"no requirement", 0, 0, 1.0},
		{"meets exactly", 5, 5, 1.0},
		{"exceeds", 8, 5, 1.0},
		{"near miss", 4, 5, 0.8},
		{"half", 2.5, 5, 0.5},
		{"floor applies", 0.1, 5, experienceFloor},
		{"zero years", 0, 5, experienceFloor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := experienceFactor(tt.years, tt.required); got != tt.want {
				t.Errorf("experienceFactor(%f, %f) = %f, want %f", tt.years, tt.required, got, tt.want)
			}
		})
	}
}

func TestExperienceFactorMonotonic(t *testing.T) {
	t.Parallel()

	// Score never decreases as candidate years grow against a fixed
	// requirement.
	const required = 5.0
	prev := -1.0
	for years := 0.0; years <= 10.0; years += 0.25 {
		score := experienceFactor(years, required)
		if score < prev {
			t.Fatalf("experience score decreased at %.2f years: %f < %f", years, score, prev)
		}
		prev = score
	}
}

// --- Test: education factor ---

func TestEducationFactor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		candidate int
		required  int
		want      float64
	}{
		{"no requirement", 0, 0, 1.0},
		{"meets", 3, 3, 1.0},
		{"exceeds", 6, 3, 1.0},
		{"one below", 3, 4, 0.75},
		{"far below hits floor", 1, 6, educationFloor},
		{"none vs doctorate floors", 0, 6, educationFloor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := educationFactor(tt.candidate, tt.required); got != tt.want {
				t.Errorf("educationFactor(%d, %d) = %f, want %f", tt.candidate, tt.required, got, tt.want)
			}
		})
	}
}

// --- Test: location factor ---

func TestLocationFactor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		candidate string
		job       string
		remote    bool
		want      float64
	}{
		{"remote wins regardless", "Tokyo, Japan", "Berlin, Germany", true, 1.0},
		{"remote with empty locations", "", "", true, 1.0},
		{"exact match", "Berlin, Germany", "Berlin, Germany", false, 1.0},
		{"exact match case-insensitive", "berlin, germany", "Berlin, Germany", false, 1.0},
		{"containment", "Berlin", "Berlin, Germany", false, 0.8},
		{"same trailing region", "Hamburg, Germany", "Munich, Germany", false, 0.6},
		{"candidate missing", "", "Berlin, Germany", false, 0.5},
		{"job missing", "Berlin, Germany", "", false, 0.5},
		{"both missing", "", "", false, 0.5},
		{"distant", "Tokyo, Japan", "Berlin, Germany", false, 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := locationFactor(tt.candidate, tt.job, tt.remote)
			if got != tt.want {
				t.Errorf("locationFactor(%q, %q, %v) = %f, want %f", tt.candidate, tt.job, tt.remote, got, tt.want)
			}
		})
	}
}

// --- Test: salary factor ---

func TestSalaryFactor(t *testing.T) {
	t.Parallel()

	expect := func(v float64) *float64 { return &v }

	tests := []struct {
		name        string
		expectation *float64
		salaryRange *models.SalaryRange
		want        float64
	}{
		{"no expectation", nil, &models.SalaryRange{Min: 100000, Max: 130000}, 1.0},
		{"no range", expect(90000), nil, 1.0},
		{"within range", expect(110000), &models.SalaryRange{Min: 100000, Max: 130000}, 1.0},
		{"at min", expect(100000), &models.SalaryRange{Min: 100000, Max: 130000}, 1.0},
		{"at max", expect(130000), &models.SalaryRange{Min: 100000, Max: 130000}, 1.0},
		{"below within tolerance", expect(90000), &models.SalaryRange{Min: 100000, Max: 130000}, 0.9},
		{"below at tolerance edge", expect(80000), &models.SalaryRange{Min: 100000, Max: 130000}, 0.9},
		{"below beyond tolerance", expect(70000), &models.SalaryRange{Min: 100000, Max: 130000}, 0.7},
		{"above within tolerance", expect(140000), &models.SalaryRange{Min: 100000, Max: 130000}, 0.6},
		{"above beyond tolerance", expect(200000), &models.SalaryRange{Min: 100000, Max: 130000}, 0.2},
		{"derived max from min", expect(125000), &models.SalaryRange{Min: 100000}, 1.0},
		{"above derived max within tolerance", expect(140000), &models.SalaryRange{Min: 100000}, 0.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := salaryFactor(tt.expectation, tt.salaryRange)
			if got != tt.want {
				t.Errorf("salaryFactor = %f, want %f", got, tt.want)
			}
		})
	}
}
