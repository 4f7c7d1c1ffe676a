// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package models

import (
	"time"

	"github.com/google/uuid"
)

// ScoreBreakdown holds the per-factor sub-scores composing an overall
// match score. Every component and Overall are in [0,1].
type ScoreBreakdown struct {
	Skills     float64 `json:"skills"`
	Experience float64 `json:"experience"`
	Education  float64 `json:"education"`
	Location   float64 `json:"location"`
	Salary     float64 `json:"salary"`
	Overall    float64 `json:"overall"`
}

// Factors returns the five factor scores in canonical order
// (skills, experience, education, location, salary).
func (b ScoreBreakdown) Factors() [5]float64 {
	return [5]float64{b.Skills, b.Experience, b.Education, b.Location, b.Salary}
}

// MatchStatus is the lifecycle state of a persisted match result.
type MatchStatus string

const (
	// MatchStatusPending marks a freshly computed match awaiting review.
	MatchStatusPending MatchStatus = "pending"
	// MatchStatusActive marks a match surfaced to either party.
	MatchStatusActive MatchStatus = "active"
	// MatchStatusArchived marks a match superseded by a re-score.
	MatchStatusArchived MatchStatus = "archived"
)

// ValidMatchStatuses contains all valid match statuses.
var ValidMatchStatuses = []MatchStatus{
	MatchStatusPending,
	MatchStatusActive,
	MatchStatusArchived,
}

// IsValidMatchStatus checks if a match status is valid.
func IsValidMatchStatus(s MatchStatus) bool {
	for _, valid := range ValidMatchStatuses {
		if s == valid {
			return true
		}
	}
	return false
}

// MatchResult is an immutable snapshot of one candidate-job scoring call.
//
// A re-score never updates an existing MatchResult; it produces a new one
// with a fresh ID, leaving the old row for history. Score is on the 0-100
// scale used at the service boundary; the breakdown components stay on the
// scoring engine's [0,1] scale.
//
// Key Fields:
//   - ID: Unique UUID for this snapshot
//   - Score: Overall match score, 0-100
//   - Breakdown: Per-factor sub-scores in [0,1]
//   - Confidence: Internal-consistency measure in [0,1]
//   - Reasons: Human-readable factor explanations
//   - AlgorithmVersion: Scoring algorithm version that produced the result
type MatchResult struct {
	ID          uuid.UUID `json:"id"`
	CandidateID string    `json:"candidate_id"`
	JobID       string    `json:"job_id"`

	Score      float64        `json:"score"`
	Breakdown  ScoreBreakdown `json:"breakdown"`
	Confidence float64        `json:"confidence"`
	Reasons    []string       `json:"reasons"`

	AlgorithmVersion string      `json:"algorithm_version"`
	Status           MatchStatus `json:"status"`
	CreatedAt        time.Time   `json:"created_at"`
}

// BatchMatchType selects the pairing mode of a batch match request.
type BatchMatchType string

const (
	// BatchCandidateToJobs scores one candidate against N jobs.
	BatchCandidateToJobs BatchMatchType = "candidate-to-jobs"
	// BatchJobToCandidates scores N candidates against one job.
	BatchJobToCandidates BatchMatchType = "job-to-candidates"
	// BatchCrossMatch scores the full M x N cartesian product.
	BatchCrossMatch BatchMatchType = "cross-match"
)

// ValidBatchMatchTypes contains all valid batch match types.
var ValidBatchMatchTypes = []BatchMatchType{
	BatchCandidateToJobs,
	BatchJobToCandidates,
	BatchCrossMatch,
}

// IsValidBatchMatchType checks if a batch match type is valid.
func IsValidBatchMatchType(t BatchMatchType) bool {
	for _, valid := range ValidBatchMatchTypes {
		if t == valid {
			return true
		}
	}
	return false
}

// BatchMatchRequest describes one batch matching call.
// The ID slices used depend on Type:
//   - candidate-to-jobs: CandidateIDs[0] x JobIDs
//   - job-to-candidates: CandidateIDs x JobIDs[0]
//   - cross-match: CandidateIDs x JobIDs
type BatchMatchRequest struct {
	Type         BatchMatchType `json:"type"`
	CandidateIDs []string       `json:"candidate_ids"`
	JobIDs       []string       `json:"job_ids"`

	// MinScore filters results below this 0-100 score. Nil uses the
	// service default.
	MinScore *float64 `json:"min_score,omitempty"`
}

// BatchMatchResult summarizes one batch matching call.
// Successful+Failed always equals Processed; a pairing failure is
// counted here, never surfaced as a call-level error.
type BatchMatchResult struct {
	Processed  int           `json:"processed"`
	Successful int           `json:"successful"`
	Failed     int           `json:"failed"`
	Results    []MatchResult `json:"results"`
	Duration   time.Duration `json:"duration_ms"`
}

// SortField selects the ordering key for paginated match searches.
type SortField string

const (
	// SortByScore orders by overall match score.
	SortByScore SortField = "score"
	// SortByConfidence orders by scoring confidence.
	SortByConfidence SortField = "confidence"
	// SortByLastMatched orders by result creation time.
	SortByLastMatched SortField = "lastMatched"
)

// ValidSortFields contains all valid sort fields.
var ValidSortFields = []SortField{SortByScore, SortByConfidence, SortByLastMatched}

// IsValidSortField checks if a sort field is valid.
func IsValidSortField(f SortField) bool {
	for _, valid := range ValidSortFields {
		if f == valid {
			return true
		}
	}
	return false
}

// SortOrder is the direction of a sort.
type SortOrder string

const (
	// SortAscending orders smallest first.
	SortAscending SortOrder = "asc"
	// SortDescending orders largest first.
	SortDescending SortOrder = "desc"
)

// IsValidSortOrder checks if a sort order is valid.
func IsValidSortOrder(o SortOrder) bool {
	return o == SortAscending || o == SortDescending
}

// SearchOptions parameterizes paginated match searches.
type SearchOptions struct {
	// Filters narrow the candidate/job population fetched from the
	// directory service (free-form key/value, passed through).
	Filters map[string]string `json:"filters,omitempty"`

	// MinScore drops results below this 0-100 score.
	// Nil uses the service default.
	MinScore *float64 `json:"min_score,omitempty"`

	SortBy    SortField `json:"sort_by,omitempty"`
	SortOrder SortOrder `json:"sort_order,omitempty"`

	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

// MatchPage is one page of a paginated match search.
type MatchPage struct {
	Results []MatchResult `json:"results"`

	// Total is the number of results passing the score filter before
	// pagination. HasMore is true while offset+limit < Total.
	Total   int  `json:"total"`
	Count   int  `json:"count"`
	Offset  int  `json:"offset"`
	Limit   int  `json:"limit"`
	HasMore bool `json:"has_more"`
}

// MatchFilters narrow store reads over persisted match results.
type MatchFilters struct {
	CandidateID string      `json:"candidate_id,omitempty"`
	JobID       string      `json:"job_id,omitempty"`
	Status      MatchStatus `json:"status,omitempty"`
	MinScore    *float64    `json:"min_score,omitempty"`
}

// StatsFilters narrow the aggregate stats query.
type StatsFilters struct {
	CandidateID string `json:"candidate_id,omitempty"`
	JobID       string `json:"job_id,omitempty"`
}

// MatchStats holds the aggregate view over persisted match results.
//
// HighQuality counts results with Score >= 80; LastSevenDays counts
// results created within the trailing seven days.
type MatchStats struct {
	TotalMatches  int64   `json:"total_matches"`
	AverageScore  float64 `json:"average_score"`
	HighQuality   int64   `json:"high_quality"`
	LastSevenDays int64   `json:"last_seven_days"`
}
