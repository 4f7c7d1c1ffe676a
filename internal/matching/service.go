// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package matching

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/conexus/internal/cache"
	"github.com/tomtom215/conexus/internal/directory"
	"github.com/tomtom215/conexus/internal/events"
	"github.com/tomtom215/conexus/internal/metrics"
	"github.com/tomtom215/conexus/internal/models"
	"github.com/tomtom215/conexus/internal/scoring"
	"github.com/tomtom215/conexus/internal/store"
)

// Service is the matching core. It composes the pure scoring engine
// with the profile directory, the match store, the result cache, and
// the event publisher. Safe for concurrent use.
type Service struct {
	directory directory.Service
	store     store.MatchStore
	cache     cache.Cacher
	publisher events.Publisher
	engine    *scoring.Engine
	logger    zerolog.Logger

	// mu guards cfg. Operations read a snapshot once at entry, so a
	// concurrent UpdateConfig never changes weights mid-request.
	mu  sync.RWMutex
	cfg Config
}

// NewService creates the matching service. The publisher may be nil,
// in which case no events are emitted.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewService(
	cfg Config,
	dir directory.Service,
	matchStore store.MatchStore,
	cacher cache.Cacher,
	publisher events.Publisher,
	engine *scoring.Engine,
	logger zerolog.Logger,
) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, models.NewValidationError("config", err.Error())
	}
	if dir == nil {
		return nil, models.NewValidationError("directory", "is required")
	}
	if matchStore == nil {
		return nil, models.NewValidationError("store", "is required")
	}
	if cacher == nil {
		return nil, models.NewValidationError("cache", "is required")
	}
	if engine == nil {
		return nil, models.NewValidationError("engine", "is required")
	}

	return &Service{
		directory: dir,
		store:     matchStore,
		cache:     cacher,
		publisher: publisher,
		engine:    engine,
		logger:    logger.With().Str("component", "matching").Logger(),
		cfg:       cfg,
	}, nil
}

// ScoreCandidate scores one candidate against one job, persists the
// result as a new immutable snapshot, and invalidates every cache
// entry derived from either entity. The persisted result is on the
// 0-100 score scale.
//
// Profile fetch and persistence failures surface to the caller; the
// match.created event and the cache invalidation are best-effort.
func (s *Service) ScoreCandidate(ctx context.Context, candidateID, jobID string) (*models.MatchResult, error) {
	if candidateID == "" {
		return nil, models.NewValidationError("candidate_id", "is required")
	}
	if jobID == "" {
		return nil, models.NewValidationError("job_id", "is required")
	}

	candidate, err := s.directory.GetCandidateProfile(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	job, err := s.directory.GetJobProfile(ctx, jobID)
	if err != nil {
		return nil, err
	}

	result, err := s.scorePair(candidate, job, s.Config().Weights)
	if err != nil {
		return nil, err
	}

	if err := s.store.SaveMatchResult(ctx, result); err != nil {
		return nil, err
	}

	s.invalidateEntities(candidateID, jobID)
	s.publishMatchCreated(ctx, result)

	s.logger.Debug().
		Str("candidate_id", candidateID).
		Str("job_id", jobID).
		Float64("score", result.Score).
		Msg("Match scored")

	return result, nil
}

// scorePair runs the scoring engine under the given weights and
// assembles the 0-100 scale MatchResult snapshot. Callers snapshot the
// weights once per request so a fan-out never mixes two configs.
func (s *Service) scorePair(candidate *models.CandidateProfile, job *models.JobProfile, weights scoring.FactorWeights) (*models.MatchResult, error) {
	start := time.Now()
	scored, err := s.engine.ScoreWithWeights(candidate, job, weights)
	if err != nil {
		metrics.RecordScoring(time.Since(start), 0, err)
		return nil, err
	}
	metrics.RecordScoring(time.Since(start), scored.Breakdown.Overall, nil)

	return &models.MatchResult{
		ID:               uuid.New(),
		CandidateID:      candidate.ID,
		JobID:            job.ID,
		Score:            scored.Breakdown.Overall * 100,
		Breakdown:        scored.Breakdown,
		Confidence:       scored.Confidence,
		Reasons:          scored.Reasons,
		AlgorithmVersion: scored.AlgorithmVersion,
		Status:           models.MatchStatusPending,
		CreatedAt:        time.Now().UTC(),
	}, nil
}

// invalidateEntities removes every cache entry tagged with either
// entity ID. Pages and scores derived from an entity carry its ID as
// a tag, so a re-score drops exactly the entries it stales.
func (s *Service) invalidateEntities(ids ...string) {
	removed := 0
	for _, id := range ids {
		if id == "" {
			continue
		}
		removed += s.cache.InvalidateByTag(id)
	}
	if removed > 0 {
		metrics.RecordCacheInvalidation(removed)
	}
}

// publishMatchCreated emits the match.created event without ever
// failing the caller.
func (s *Service) publishMatchCreated(ctx context.Context, result *models.MatchResult) {
	if s.publisher == nil {
		return
	}
	events.PublishAsync(ctx, s.publisher, events.NewMatchCreated(result))
}

// GetMatch returns one persisted match result by ID.
func (s *Service) GetMatch(ctx context.Context, id string) (*models.MatchResult, error) {
	matchID, err := uuid.Parse(id)
	if err != nil {
		return nil, models.NewValidationError("match_id", "must be a valid UUID")
	}
	return s.store.GetMatch(ctx, matchID)
}

// ListMatches returns persisted match results, newest first.
func (s *Service) ListMatches(ctx context.Context, f models.MatchFilters, limit, offset int) ([]models.MatchResult, error) {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if maxLimit := s.Config().MaxMatchesPerRequest; limit > maxLimit {
		return nil, models.NewValidationError("limit",
			fmt.Sprintf("must not exceed %d", maxLimit))
	}
	if offset < 0 {
		return nil, models.NewValidationError("offset", "must not be negative")
	}
	return s.store.ListMatches(ctx, f, limit, offset)
}

// GetMatchStats aggregates over persisted results: total count,
// average score, high-quality count (score >= 80), and count created
// within the trailing seven days.
func (s *Service) GetMatchStats(ctx context.Context, f models.StatsFilters) (*models.MatchStats, error) {
	return s.store.GetMatchStats(ctx, f)
}
