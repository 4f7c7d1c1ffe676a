// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package scoring

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/tomtom215/conexus/internal/models"
)

const floatTolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < floatTolerance
}

func fixedClock() func() time.Time {
	at := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func ptr(v float64) *float64 { return &v }

// testCandidate returns a profile with six years of closed experience,
// a bachelor's degree, and a Berlin address.
func testCandidate() *models.CandidateProfile {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return &models.CandidateProfile{
		ID: "cand-1",
		Skills: []models.Skill{
			{Name: "Go", Years: 6},
			{Name: "PostgreSQL", Years: 4},
		},
		Experience: []models.ExperienceEntry{
			{Title: "Backend Engineer", Company: "Acme", StartDate: start, EndDate: &end},
		},
		Education: []models.EducationEntry{
			{Degree: models.EducationBachelor, Institution: "TU Berlin", Field: "CS"},
		},
		Location:          "Berlin, Germany",
		SalaryExpectation: ptr(70000),
	}
}

func testJob() *models.JobProfile {
	return &models.JobProfile{
		ID:    "job-1",
		Title: "Senior Backend Engineer",
		Requirements: models.JobRequirements{
			Skills:          []string{"go", "kubernetes"},
			ExperienceYears: 5,
			Education:       models.EducationBachelor,
		},
		Location:    "Munich, Germany",
		Remote:      false,
		SalaryRange: &models.SalaryRange{Min: 60000, Max: 80000},
	}
}

// --- Test: Score ---

func TestScoreFullExample(t *testing.T) {
	t.Parallel()

	engine := NewEngine(WithClock(fixedClock()))
	result, err := engine.Score(testCandidate(), testJob())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// go matches, kubernetes does not; 6y exceeds 5y; bachelor meets
	// bachelor; same country; 70k inside 60-80k.
	wantBreakdown := [5]float64{0.5, 1.0, 1.0, 0.6, 1.0}
	if got := result.Breakdown.Factors(); got != wantBreakdown {
		t.Errorf("factors = %v, want %v", got, wantBreakdown)
	}

	// 0.5*0.40 + 1*0.30 + 1*0.15 + 0.6*0.10 + 1*0.05
	if !almostEqual(result.Breakdown.Overall, 0.76) {
		t.Errorf("overall = %f, want 0.76", result.Breakdown.Overall)
	}

	// mean 0.82, variance 0.0496.
	if !almostEqual(result.Confidence, 0.87216) {
		t.Errorf("confidence = %f, want 0.87216", result.Confidence)
	}

	if result.AlgorithmVersion != Version {
		t.Errorf("algorithm version = %q, want %q", result.AlgorithmVersion, Version)
	}

	// Skills at 0.5 sits in the silent band; the other four factors
	// all narrate.
	wantReasons := []string{
		"Strong experience: 6.0 years against 5.0 required",
		"Education meets the requirement",
		"Location is compatible",
		"Salary expectation fits the offered range",
	}
	if !reflect.DeepEqual(result.Reasons, wantReasons) {
		t.Errorf("reasons = %v, want %v", result.Reasons, wantReasons)
	}
}

func TestScoreDeterministic(t *testing.T) {
	t.Parallel()

	engine := NewEngine(WithClock(fixedClock()))

	first, err := engine.Score(testCandidate(), testJob())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := engine.Score(testCandidate(), testJob())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical inputs produced different results:\n%+v\n%+v", first, second)
	}
}

func TestScoreOverallWithinUnitInterval(t *testing.T) {
	t.Parallel()

	engine := NewEngine(WithClock(fixedClock()))

	candidates := []*models.CandidateProfile{
		{ID: "empty"},
		testCandidate(),
		{
			ID:                "mismatch",
			Skills:            []models.Skill{{Name: "cobol"}},
			Location:          "Tokyo, Japan",
			SalaryExpectation: ptr(500000),
		},
	}
	jobs := []*models.JobProfile{
		{ID: "open"},
		testJob(),
		{
			ID: "demanding",
			Requirements: models.JobRequirements{
				Skills:          []string{"go", "rust", "haskell"},
				ExperienceYears: 15,
				Education:       models.EducationDoctorate,
			},
			Location:    "Berlin, Germany",
			SalaryRange: &models.SalaryRange{Min: 50000, Max: 60000},
		},
	}

	for _, c := range candidates {
		for _, j := range jobs {
			result, err := engine.Score(c, j)
			if err != nil {
				t.Fatalf("score %s/%s: %v", c.ID, j.ID, err)
			}
			for i, f := range result.Breakdown.Factors() {
				if f < 0 || f > 1 {
					t.Errorf("%s/%s factor %d = %f out of [0,1]", c.ID, j.ID, i, f)
				}
			}
			if result.Breakdown.Overall < 0 || result.Breakdown.Overall > 1 {
				t.Errorf("%s/%s overall = %f out of [0,1]", c.ID, j.ID, result.Breakdown.Overall)
			}
			if result.Confidence < 0 || result.Confidence > 1 {
				t.Errorf("%s/%s confidence = %f out of [0,1]", c.ID, j.ID, result.Confidence)
			}
		}
	}
}

func TestScorePartialSkillsContribution(t *testing.T) {
	t.Parallel()

	engine := NewEngine(WithClock(fixedClock()))

	candidate := &models.CandidateProfile{
		ID:     "cand-js",
		Skills: []models.Skill{{Name: "javascript"}, {Name: "react"}},
	}
	job := &models.JobProfile{
		ID:           "job-js",
		Requirements: models.JobRequirements{Skills: []string{"javascript", "python"}},
		Remote:       true,
	}

	result, err := engine.Score(candidate, job)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Breakdown.Skills != 0.5 {
		t.Errorf("skills = %f, want 0.5", result.Breakdown.Skills)
	}

	// With default weights the skills factor contributes 0.5*0.40 = 0.20;
	// everything else is unconstrained and contributes its full weight.
	if !almostEqual(result.Breakdown.Overall, 0.80) {
		t.Errorf("overall = %f, want 0.80", result.Breakdown.Overall)
	}
}

func TestScoreRemoteJobIgnoresLocation(t *testing.T) {
	t.Parallel()

	engine := NewEngine(WithClock(fixedClock()))

	candidate := &models.CandidateProfile{ID: "cand-remote", Location: "Tokyo, Japan"}
	job := &models.JobProfile{ID: "job-remote", Location: "Berlin, Germany", Remote: true}

	result, err := engine.Score(candidate, job)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Breakdown.Location != 1.0 {
		t.Errorf("location = %f, want 1.0 for remote job", result.Breakdown.Location)
	}
}

func TestScoreNilProfiles(t *testing.T) {
	t.Parallel()

	engine := NewEngine()

	if _, err := engine.Score(nil, testJob()); !models.IsComputation(err) {
		t.Errorf("expected ComputationError for nil candidate, got %v", err)
	}
	if _, err := engine.Score(testCandidate(), nil); !models.IsComputation(err) {
		t.Errorf("expected ComputationError for nil job, got %v", err)
	}
}

func TestScoreWithInvalidWeights(t *testing.T) {
	t.Parallel()

	engine := NewEngine(WithClock(fixedClock()))
	bad := FactorWeights{Skills: 0.9, Experience: 0.9}

	if _, err := engine.ScoreWithWeights(testCandidate(), testJob(), bad); !models.IsValidation(err) {
		t.Errorf("expected ValidationError for invalid weights, got %v", err)
	}
}

func TestScoreWithCustomWeights(t *testing.T) {
	t.Parallel()

	engine := NewEngine(WithClock(fixedClock()))

	// All weight on skills isolates that factor in the overall.
	skillsOnly := FactorWeights{Skills: 1.0}
	result, err := engine.ScoreWithWeights(testCandidate(), testJob(), skillsOnly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(result.Breakdown.Overall, result.Breakdown.Skills) {
		t.Errorf("overall = %f, want skills factor %f", result.Breakdown.Overall, result.Breakdown.Skills)
	}
}

// --- Test: engine construction ---

func TestNewEngineWithWeights(t *testing.T) {
	t.Parallel()

	valid := FactorWeights{Skills: 0.5, Experience: 0.2, Education: 0.1, Location: 0.1, Salary: 0.1}
	engine, err := NewEngineWithWeights(valid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if engine.Weights() != valid {
		t.Errorf("weights = %+v, want %+v", engine.Weights(), valid)
	}

	invalid := FactorWeights{Skills: -0.1, Experience: 1.1}
	if _, err := NewEngineWithWeights(invalid); !models.IsValidation(err) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

// --- Test: confidence ---

func TestConfidenceUniformFactors(t *testing.T) {
	t.Parallel()

	// Zero variance: 0.4*1 + 0.6*0.8 = 0.88.
	b := models.ScoreBreakdown{Skills: 0.8, Experience: 0.8, Education: 0.8, Location: 0.8, Salary: 0.8}
	if got := confidence(b); !almostEqual(got, 0.88) {
		t.Errorf("confidence = %f, want 0.88", got)
	}
}

func TestConfidencePrefersConsistency(t *testing.T) {
	t.Parallel()

	// Same mean, different spread. The erratic profile scores lower.
	uniform := models.ScoreBreakdown{Skills: 0.6, Experience: 0.6, Education: 0.6, Location: 0.6, Salary: 0.6}
	erratic := models.ScoreBreakdown{Skills: 1.0, Experience: 1.0, Education: 1.0, Location: 0, Salary: 0}

	if cu, ce := confidence(uniform), confidence(erratic); cu <= ce {
		t.Errorf("uniform confidence %f should exceed erratic %f", cu, ce)
	}
}

// --- Test: RankCandidates ---

func TestRankCandidates(t *testing.T) {
	t.Parallel()

	engine := NewEngine(WithClock(fixedClock()))

	// Remote job requiring two skills and nothing else, so only the
	// skills factor separates candidates: overall = 0.4*s + 0.6.
	job := &models.JobProfile{
		ID:           "job-rank",
		Requirements: models.JobRequirements{Skills: []string{"go", "rust"}},
		Remote:       true,
	}

	candidates := []models.CandidateProfile{
		{ID: "cand-none", Skills: []models.Skill{{Name: "cobol"}}},
		{ID: "cand-b", Skills: []models.Skill{{Name: "go"}}},
		{ID: "cand-a", Skills: []models.Skill{{Name: "go"}}},
		{ID: "cand-full", Skills: []models.Skill{{Name: "go"}, {Name: "rust"}}},
	}

	ranked := engine.RankCandidates(candidates, job, 0, 0)
	if len(ranked) != 4 {
		t.Fatalf("expected 4 ranked candidates, got %d", len(ranked))
	}

	// Descending by overall, ties broken by candidate ID ascending.
	wantOrder := []string{"cand-full", "cand-a", "cand-b", "cand-none"}
	for i, want := range wantOrder {
		if ranked[i].CandidateID != want {
			t.Errorf("position %d = %s, want %s", i, ranked[i].CandidateID, want)
		}
	}

	if !almostEqual(ranked[0].Result.Breakdown.Overall, 1.0) {
		t.Errorf("top overall = %f, want 1.0", ranked[0].Result.Breakdown.Overall)
	}
	if !almostEqual(ranked[3].Result.Breakdown.Overall, 0.6) {
		t.Errorf("bottom overall = %f, want 0.6", ranked[3].Result.Breakdown.Overall)
	}
}

func TestRankCandidatesMinScoreFilter(t *testing.T) {
	t.Parallel()

	engine := NewEngine(WithClock(fixedClock()))
	job := &models.JobProfile{
		ID:           "job-filter",
		Requirements: models.JobRequirements{Skills: []string{"go", "rust"}},
		Remote:       true,
	}
	candidates := []models.CandidateProfile{
		{ID: "cand-none", Skills: []models.Skill{{Name: "cobol"}}},
		{ID: "cand-half", Skills: []models.Skill{{Name: "go"}}},
		{ID: "cand-full", Skills: []models.Skill{{Name: "go"}, {Name: "rust"}}},
	}

	// Overalls are 0.6, 0.8, 1.0; a 0.7 floor keeps the top two.
	ranked := engine.RankCandidates(candidates, job, 0.7, 0)
	if len(ranked) != 2 {
		t.Fatalf("expected 2 candidates above 0.7, got %d", len(ranked))
	}
	if ranked[0].CandidateID != "cand-full" || ranked[1].CandidateID != "cand-half" {
		t.Errorf("unexpected order: %s, %s", ranked[0].CandidateID, ranked[1].CandidateID)
	}
}

func TestRankCandidatesLimit(t *testing.T) {
	t.Parallel()

	engine := NewEngine(WithClock(fixedClock()))
	job := &models.JobProfile{ID: "job-limit", Remote: true}

	candidates := make([]models.CandidateProfile, 10)
	for i := range candidates {
		candidates[i] = models.CandidateProfile{ID: string(rune('a' + i))}
	}

	ranked := engine.RankCandidates(candidates, job, 0, 3)
	if len(ranked) != 3 {
		t.Fatalf("expected limit of 3, got %d", len(ranked))
	}
	// Equal scores fall back to ID order.
	for i, want := range []string{"a", "b", "c"} {
		if ranked[i].CandidateID != want {
			t.Errorf("position %d = %s, want %s", i, ranked[i].CandidateID, want)
		}
	}
}

func TestRankCandidatesEmpty(t *testing.T) {
	t.Parallel()

	engine := NewEngine()
	ranked := engine.RankCandidates(nil, testJob(), 0, 10)
	if len(ranked) != 0 {
		t.Errorf("expected empty ranking, got %d entries", len(ranked))
	}
}
