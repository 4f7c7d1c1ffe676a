// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package recommend

import (
	"context"

	"github.com/tomtom215/conexus/internal/models"
)

// Matcher is the slice of the matching service the similarity strategy
// depends on.
type Matcher interface {
	// FindCandidatesForJob returns candidates ranked against one job.
	FindCandidatesForJob(ctx context.Context, jobID string, opts models.SearchOptions) (*models.MatchPage, error)

	// FindJobsForCandidate returns jobs ranked against one candidate.
	FindJobsForCandidate(ctx context.Context, candidateID string, opts models.SearchOptions) (*models.MatchPage, error)
}

// Similarity recommends by profile feature overlap, delegating the
// actual scoring to the matching service. It holds no model state of
// its own; match pages come back already ranked and cached.
type Similarity struct {
	matcher Matcher
	catalog *Catalog
	weight  float64
}

// NewSimilarity creates the profile-similarity strategy on top of the
// matching service.
func NewSimilarity(matcher Matcher, catalog *Catalog, weight float64) *Similarity {
	return &Similarity{
		matcher: matcher,
		catalog: catalog,
		weight:  weight,
	}
}

// Name returns the strategy identifier.
func (s *Similarity) Name() models.RecommendationAlgorithm {
	return models.AlgorithmSimilarity
}

// Weight returns the hybrid-combine weight.
func (s *Similarity) Weight() float64 {
	return s.weight
}

// Refresh is a no-op: similarity serves straight from the matching
// service, which maintains its own cache.
func (s *Similarity) Refresh(_ context.Context) error {
	return nil
}

// Generate ranks items against the anchor's profile. Job lists rank
// postings against the anchor candidate; candidate lists rank people
// against the anchor posting. Filters pass through to the directory.
func (s *Similarity) Generate(ctx context.Context, anchorID string, itemType models.ItemType,
	count int, filters map[string]string) ([]models.Recommendation, error) {
	// Disable the matching service's score floor; the engine applies
	// its own MinScore after combining.
	noFloor := 0.0
	opts := models.SearchOptions{
		Filters:  filters,
		MinScore: &noFloor,
		Limit:    count,
	}

	var (
		page *models.MatchPage
		err  error
	)
	switch itemType {
	case models.ItemTypeJob:
		page, err = s.matcher.FindJobsForCandidate(ctx, anchorID, opts)
	case models.ItemTypeCandidate:
		page, err = s.matcher.FindCandidatesForJob(ctx, anchorID, opts)
	default:
		return nil, models.NewValidationError("item_type", "unknown item type")
	}
	if err != nil {
		return nil, err
	}

	recs := make([]models.Recommendation, 0, len(page.Results))
	for i := range page.Results {
		m := &page.Results[i]
		itemID := m.CandidateID
		if itemType == models.ItemTypeJob {
			itemID = m.JobID
		}
		recs = append(recs, models.Recommendation{
			ItemID:      itemID,
			ItemType:    itemType,
			Score:       m.Score / 100,
			Confidence:  m.Confidence,
			Algorithm:   models.AlgorithmSimilarity,
			Explanation: similarityExplanation(m),
			Category:    s.catalog.Category(itemType, itemID),
		})
	}
	sortRecommendations(recs)
	return recs, nil
}

// similarityExplanation surfaces the match's strongest reason.
func similarityExplanation(m *models.MatchResult) string {
	if len(m.Reasons) > 0 {
		return m.Reasons[0]
	}
	return "Profile features overlap with the anchor profile"
}
