// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package models

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
)

// --- Test: EducationLevel ---

func TestEducationLevelOrdering(t *testing.T) {
	t.Parallel()

	ladder := []EducationLevel{
		EducationNone,
		EducationHighSchool,
		EducationAssociate,
		EducationBachelor,
		EducationMaster,
		EducationProfessional,
		EducationDoctorate,
	}

	for i := 1; i < len(ladder); i++ {
		if ladder[i].Rank() <= ladder[i-1].Rank() {
			t.Errorf("expected %s to outrank %s", ladder[i], ladder[i-1])
		}
	}

	if EducationHighSchool.Rank() != 1 {
		t.Errorf("expected high-school rank 1, got %d", EducationHighSchool.Rank())
	}
	if EducationDoctorate.Rank() != 6 {
		t.Errorf("expected doctorate rank 6, got %d", EducationDoctorate.Rank())
	}
}

func TestParseEducationLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    EducationLevel
		wantErr bool
	}{
		{"high-school", EducationHighSchool, false},
		{"High School", EducationHighSchool, false},
		{"bachelor", EducationBachelor, false},
		{"Bachelors", EducationBachelor, false},
		{"master", EducationMaster, false},
		{"MSc", EducationMaster, false},
		{"PhD", EducationDoctorate, false},
		{"doctorate", EducationDoctorate, false},
		{"none", EducationNone, false},
		{"kindergarten", EducationNone, true},
		{"", EducationNone, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParseEducationLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseEducationLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseEducationLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestEducationLevelJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(EducationMaster)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `"master"` {
		t.Errorf("expected \"master\", got %s", data)
	}

	var fromString EducationLevel
	if err := json.Unmarshal([]byte(`"doctorate"`), &fromString); err != nil {
		t.Fatalf("unmarshal string failed: %v", err)
	}
	if fromString != EducationDoctorate {
		t.Errorf("expected doctorate, got %v", fromString)
	}

	var fromOrdinal EducationLevel
	if err := json.Unmarshal([]byte(`3`), &fromOrdinal); err != nil {
		t.Fatalf("unmarshal ordinal failed: %v", err)
	}
	if fromOrdinal != EducationBachelor {
		t.Errorf("expected bachelor from ordinal 3, got %v", fromOrdinal)
	}

	var invalid EducationLevel
	if err := json.Unmarshal([]byte(`99`), &invalid); err == nil {
		t.Error("expected error for out-of-range ordinal")
	}
}

// --- Test: profile helpers ---

func TestHighestEducation(t *testing.T) {
	t.Parallel()

	profile := &CandidateProfile{
		Education: []EducationEntry{
			{Degree: EducationBachelor},
			{Degree: EducationMaster},
			{Degree: EducationHighSchool},
		},
	}

	if got := profile.HighestEducation(); got != EducationMaster {
		t.Errorf("expected master, got %v", got)
	}

	empty := &CandidateProfile{}
	if got := empty.HighestEducation(); got != EducationNone {
		t.Errorf("expected none for empty education, got %v", got)
	}
}

func TestTotalExperienceYears(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	profile := &CandidateProfile{
		Experience: []ExperienceEntry{
			// Closed span: 2 years.
			{StartDate: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC), EndDate: &end},
			// Open-ended span: counts up to now (~2.64 years).
			{StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		},
	}

	years := profile.TotalExperienceYears(now)
	if years < 4.5 || years > 4.8 {
		t.Errorf("expected ~4.6 years, got %.2f", years)
	}
}

func TestTotalExperienceYearsIgnoresInvertedSpans(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	before := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	profile := &CandidateProfile{
		Experience: []ExperienceEntry{
			// End precedes start: must contribute nothing.
			{StartDate: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), EndDate: &before},
		},
	}

	if years := profile.TotalExperienceYears(now); years != 0 {
		t.Errorf("expected 0 years for inverted span, got %.2f", years)
	}
}

// --- Test: SalaryRange ---

func TestSalaryRangeEffectiveMax(t *testing.T) {
	t.Parallel()

	explicit := SalaryRange{Min: 100000, Max: 130000}
	if got := explicit.EffectiveMax(); got != 130000 {
		t.Errorf("expected explicit max 130000, got %.0f", got)
	}

	derived := SalaryRange{Min: 100000}
	if got := derived.EffectiveMax(); got != 130000 {
		t.Errorf("expected derived max 130000, got %.0f", got)
	}
}

// --- Test: enum validity ---

func TestEnumValidity(t *testing.T) {
	t.Parallel()

	if !IsValidMatchStatus(MatchStatusActive) {
		t.Error("expected active to be a valid match status")
	}
	if IsValidMatchStatus(MatchStatus("bogus")) {
		t.Error("expected bogus match status to be invalid")
	}

	if !IsValidBatchMatchType(BatchCrossMatch) {
		t.Error("expected cross-match to be valid")
	}
	if IsValidBatchMatchType(BatchMatchType("diagonal")) {
		t.Error("expected diagonal batch type to be invalid")
	}

	if !IsValidItemType(ItemTypeJob) || !IsValidItemType(ItemTypeCandidate) {
		t.Error("expected job and candidate item types to be valid")
	}
	if IsValidItemType(ItemType("company")) {
		t.Error("expected company item type to be invalid")
	}

	if !IsValidSortField(SortByScore) || !IsValidSortField(SortByLastMatched) {
		t.Error("expected score and lastMatched sort fields to be valid")
	}
	if IsValidSortField(SortField("salary")) {
		t.Error("expected salary sort field to be invalid")
	}

	if !IsValidSortOrder(SortAscending) || !IsValidSortOrder(SortDescending) {
		t.Error("expected asc and desc to be valid")
	}
	if IsValidSortOrder(SortOrder("sideways")) {
		t.Error("expected sideways order to be invalid")
	}

	if !IsValidRecommendationAlgorithm(AlgorithmHybrid) {
		t.Error("expected hybrid algorithm to be valid")
	}
	if IsValidRecommendationAlgorithm(RecommendationAlgorithm("oracle")) {
		t.Error("expected oracle algorithm to be invalid")
	}
}

// --- Test: interaction weights ---

func TestInteractionTypeWeight(t *testing.T) {
	t.Parallel()

	if InteractionApply.Weight() <= InteractionSave.Weight() {
		t.Error("expected apply to outweigh save")
	}
	if InteractionSave.Weight() <= InteractionView.Weight() {
		t.Error("expected save to outweigh view")
	}
	if InteractionDismiss.Weight() >= 0 {
		t.Error("expected dismiss weight to be negative")
	}
	if InteractionType("bogus").Weight() != 0 {
		t.Error("expected unknown interaction weight 0")
	}
}

// --- Test: ScoreBreakdown ---

func TestScoreBreakdownFactors(t *testing.T) {
	t.Parallel()

	b := ScoreBreakdown{Skills: 0.5, Experience: 0.6, Education: 0.7, Location: 0.8, Salary: 0.9}
	factors := b.Factors()

	want := [5]float64{0.5, 0.6, 0.7, 0.8, 0.9}
	if factors != want {
		t.Errorf("expected %v, got %v", want, factors)
	}
}
