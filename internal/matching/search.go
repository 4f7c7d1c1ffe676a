// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package matching

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/tomtom215/conexus/internal/cache"
	"github.com/tomtom215/conexus/internal/metrics"
	"github.com/tomtom215/conexus/internal/models"
)

// defaultPageLimit is the page size used when the caller does not set one.
const defaultPageLimit = 20

// Cache operation names for paginated searches. The anchor ID is part of
// the hashed parameters, so each anchor gets its own key space.
const (
	opCandidatesForJob = "candidates_for_job"
	opJobsForCandidate = "jobs_for_candidate"
)

// searchKey is the canonical parameter set hashed into a search page key.
type searchKey struct {
	AnchorID string               `json:"anchor_id"`
	Options  models.SearchOptions `json:"options"`
}

// FindCandidatesForJob scores the filtered candidate population against
// one job and returns a sorted, paginated page of match results.
//
// Pages are ephemeral derived views: results are computed in a scoring
// fan-out and cached, never persisted to the match store. A candidate
// whose profile fetch or scoring fails is skipped without failing the
// page. Total counts results passing the score filter before pagination.
func (s *Service) FindCandidatesForJob(ctx context.Context, jobID string, opts models.SearchOptions) (*models.MatchPage, error) {
	if jobID == "" {
		return nil, models.NewValidationError("job_id", "is required")
	}

	cfg := s.Config()
	opts, err := normalizeSearchOptions(opts, cfg.MaxMatchesPerRequest)
	if err != nil {
		return nil, err
	}

	key := cache.Key(opCandidatesForJob, searchKey{AnchorID: jobID, Options: opts})
	if page, ok := s.cachedPage(key); ok {
		return page, nil
	}

	job, err := s.directory.GetJobProfile(ctx, jobID)
	if err != nil {
		return nil, err
	}
	candidates, err := s.directory.SearchCandidates(ctx, opts.Filters, cfg.MaxMatchesPerRequest)
	if err != nil {
		return nil, err
	}

	results := s.scorePopulation(len(candidates), func(i int) (*models.MatchResult, error) {
		return s.scorePair(&candidates[i], job, cfg.Weights)
	})

	page := buildPage(results, opts, cfg.MinScore)
	s.storePage(key, jobID, page)

	s.logger.Debug().
		Str("job_id", jobID).
		Int("population", len(candidates)).
		Int("total", page.Total).
		Int("count", page.Count).
		Msg("Candidate search scored")

	return page, nil
}

// FindJobsForCandidate scores the filtered job population against one
// candidate and returns a sorted, paginated page of match results. Same
// semantics as FindCandidatesForJob with the sides swapped.
func (s *Service) FindJobsForCandidate(ctx context.Context, candidateID string, opts models.SearchOptions) (*models.MatchPage, error) {
	if candidateID == "" {
		return nil, models.NewValidationError("candidate_id", "is required")
	}

	cfg := s.Config()
	opts, err := normalizeSearchOptions(opts, cfg.MaxMatchesPerRequest)
	if err != nil {
		return nil, err
	}

	key := cache.Key(opJobsForCandidate, searchKey{AnchorID: candidateID, Options: opts})
	if page, ok := s.cachedPage(key); ok {
		return page, nil
	}

	candidate, err := s.directory.GetCandidateProfile(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	jobs, err := s.directory.SearchJobs(ctx, opts.Filters, cfg.MaxMatchesPerRequest)
	if err != nil {
		return nil, err
	}

	results := s.scorePopulation(len(jobs), func(i int) (*models.MatchResult, error) {
		return s.scorePair(candidate, &jobs[i], cfg.Weights)
	})

	page := buildPage(results, opts, cfg.MinScore)
	s.storePage(key, candidateID, page)

	s.logger.Debug().
		Str("candidate_id", candidateID).
		Int("population", len(jobs)).
		Int("total", page.Total).
		Int("count", page.Count).
		Msg("Job search scored")

	return page, nil
}

// scorePopulation scores n population members concurrently, one
// goroutine per member, each writing its own slot. Member failures
// leave the slot empty, so one bad profile degrades the search
// instead of failing it.
func (s *Service) scorePopulation(n int, score func(i int) (*models.MatchResult, error)) []models.MatchResult {
	scored := make([]*models.MatchResult, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r, err := score(i)
			if err != nil {
				s.logger.Debug().Err(err).Msg("Population member skipped")
				return
			}
			scored[i] = r
		}(i)
	}
	wg.Wait()

	results := make([]models.MatchResult, 0, n)
	for _, r := range scored {
		if r != nil {
			results = append(results, *r)
		}
	}
	return results
}

// cachedPage returns a previously computed page for the key, if any.
func (s *Service) cachedPage(key string) (*models.MatchPage, bool) {
	v, ok := s.cache.Get(key)
	metrics.RecordCacheGet(ok)
	if !ok {
		return nil, false
	}
	page, ok := cache.Decode[models.MatchPage](v)
	if !ok {
		return nil, false
	}
	return page, true
}

// storePage caches a page tagged with the anchor and every entity whose
// result it contains, so a re-score of any of them drops the page.
func (s *Service) storePage(key, anchorID string, page *models.MatchPage) {
	tags := map[string]struct{}{anchorID: {}}
	for i := range page.Results {
		tags[page.Results[i].CandidateID] = struct{}{}
		tags[page.Results[i].JobID] = struct{}{}
	}
	flat := make([]string, 0, len(tags))
	for tag := range tags {
		flat = append(flat, tag)
	}

	s.cache.Set(key, *page, flat...)
	metrics.RecordCacheSet()
}

// normalizeSearchOptions applies defaults and validates the options.
// Limit defaults to 20 and is bounded by the per-request cap; sort
// defaults to score descending.
func normalizeSearchOptions(opts models.SearchOptions, maxLimit int) (models.SearchOptions, error) {
	if opts.Limit <= 0 {
		opts.Limit = defaultPageLimit
	}
	if opts.Limit > maxLimit {
		return opts, models.NewValidationError("limit",
			fmt.Sprintf("must not exceed %d", maxLimit))
	}
	if opts.Offset < 0 {
		return opts, models.NewValidationError("offset", "must not be negative")
	}

	if opts.SortBy == "" {
		opts.SortBy = models.SortByScore
	}
	if !models.IsValidSortField(opts.SortBy) {
		return opts, models.NewValidationError("sort_by",
			fmt.Sprintf("must be one of %v", models.ValidSortFields))
	}
	if opts.SortOrder == "" {
		opts.SortOrder = models.SortDescending
	}
	if !models.IsValidSortOrder(opts.SortOrder) {
		return opts, models.NewValidationError("sort_order", "must be asc or desc")
	}

	if opts.MinScore != nil && (*opts.MinScore < 0 || *opts.MinScore > 100) {
		return opts, models.NewValidationError("min_score", "must be between 0 and 100")
	}

	return opts, nil
}

// buildPage filters scored results by the effective minimum score,
// sorts them, and cuts the requested window.
func buildPage(results []models.MatchResult, opts models.SearchOptions, defaultMinScore float64) *models.MatchPage {
	minScore := defaultMinScore
	if opts.MinScore != nil {
		minScore = *opts.MinScore
	}

	filtered := results[:0]
	for _, r := range results {
		if r.Score >= minScore {
			filtered = append(filtered, r)
		}
	}

	sortMatches(filtered, opts.SortBy, opts.SortOrder)

	total := len(filtered)
	start := opts.Offset
	if start > total {
		start = total
	}
	end := start + opts.Limit
	if end > total {
		end = total
	}

	window := make([]models.MatchResult, end-start)
	copy(window, filtered[start:end])

	return &models.MatchPage{
		Results: window,
		Total:   total,
		Count:   len(window),
		Offset:  opts.Offset,
		Limit:   opts.Limit,
		HasMore: opts.Offset+opts.Limit < total,
	}
}

// sortMatches orders results by the sort field and direction. Ties
// break on the candidate/job pair, which is stable across scoring
// runs, so pages computed at different offsets stay consistent.
func sortMatches(results []models.MatchResult, field models.SortField, order models.SortOrder) {
	asc := order == models.SortAscending

	sort.SliceStable(results, func(i, j int) bool {
		a, b := &results[i], &results[j]

		var less, equal bool
		switch field {
		case models.SortByConfidence:
			less, equal = a.Confidence < b.Confidence, a.Confidence == b.Confidence
		case models.SortByLastMatched:
			less, equal = a.CreatedAt.Before(b.CreatedAt), a.CreatedAt.Equal(b.CreatedAt)
		default:
			less, equal = a.Score < b.Score, a.Score == b.Score
		}

		if equal {
			if a.CandidateID != b.CandidateID {
				return a.CandidateID < b.CandidateID
			}
			return a.JobID < b.JobID
		}
		if asc {
			return less
		}
		return !less
	})
}
