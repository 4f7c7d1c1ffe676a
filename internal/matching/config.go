// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package matching

import (
	"fmt"

	"github.com/tomtom215/conexus/internal/config"
	"github.com/tomtom215/conexus/internal/models"
	"github.com/tomtom215/conexus/internal/scoring"
)

// Config is the runtime configuration of the matching service.
//
// It is swapped atomically by UpdateConfig; readers take a snapshot
// under a read lock and never observe a half-applied update. Cached
// results reflect the configuration they were computed under, which is
// why every successful update clears the match cache.
type Config struct {
	// Weights is the factor weight vector handed to the scoring engine.
	Weights scoring.FactorWeights

	// MinScore is the default score floor for paginated searches and
	// batch results, on the 0-100 scale.
	MinScore float64

	// MaxMatchesPerRequest caps the page size of paginated searches
	// and bounds the population fetched per search.
	MaxMatchesPerRequest int

	// MaxBatchPairings caps candidate x job pairings in one batch call.
	MaxBatchPairings int
}

// DefaultConfig returns the service defaults: the standard weight
// vector, a 50-point score floor, 100-result pages, and 1000 pairings
// per batch.
func DefaultConfig() Config {
	return Config{
		Weights:              scoring.DefaultWeights(),
		MinScore:             50,
		MaxMatchesPerRequest: 100,
		MaxBatchPairings:     1000,
	}
}

// FromAppConfig builds the service configuration from the application
// configuration section.
func FromAppConfig(mc *config.MatchingConfig) Config {
	return Config{
		Weights: scoring.FactorWeights{
			Skills:     mc.SkillsWeight,
			Experience: mc.ExperienceWeight,
			Education:  mc.EducationWeight,
			Location:   mc.LocationWeight,
			Salary:     mc.SalaryWeight,
		},
		MinScore:             mc.MinScore,
		MaxMatchesPerRequest: mc.MaxMatchesPerRequest,
		MaxBatchPairings:     mc.MaxBatchPairings,
	}
}

// Validate checks the configuration bounds.
func (c Config) Validate() error {
	if err := c.Weights.Validate(); err != nil {
		return fmt.Errorf("weights: %w", err)
	}
	if c.MinScore < 0 || c.MinScore > 100 {
		return fmt.Errorf("min_score must be in [0,100], got %g", c.MinScore)
	}
	if c.MaxMatchesPerRequest < 1 {
		return fmt.Errorf("max_matches_per_request must be positive, got %d", c.MaxMatchesPerRequest)
	}
	if c.MaxBatchPairings < 1 {
		return fmt.Errorf("max_batch_pairings must be positive, got %d", c.MaxBatchPairings)
	}
	return nil
}

// ConfigUpdate is a partial configuration change. Nil fields keep the
// current value, so callers update only what they name.
type ConfigUpdate struct {
	Weights              *scoring.FactorWeights `json:"weights,omitempty"`
	MinScore             *float64               `json:"min_score,omitempty"`
	MaxMatchesPerRequest *int                   `json:"max_matches_per_request,omitempty"`
	MaxBatchPairings     *int                   `json:"max_batch_pairings,omitempty"`
}

// apply merges the update into a copy of the current configuration.
func (u ConfigUpdate) apply(current Config) Config {
	next := current
	if u.Weights != nil {
		next.Weights = *u.Weights
	}
	if u.MinScore != nil {
		next.MinScore = *u.MinScore
	}
	if u.MaxMatchesPerRequest != nil {
		next.MaxMatchesPerRequest = *u.MaxMatchesPerRequest
	}
	if u.MaxBatchPairings != nil {
		next.MaxBatchPairings = *u.MaxBatchPairings
	}
	return next
}

// UpdateConfig validates the partial update against the current
// configuration, swaps the merged result in under the write lock, and
// clears the match cache. Cached pages and scores computed under the
// old weights would otherwise keep serving stale rankings for up to a
// full TTL.
func (s *Service) UpdateConfig(update ConfigUpdate) error {
	s.mu.Lock()
	next := update.apply(s.cfg)
	if err := next.Validate(); err != nil {
		s.mu.Unlock()
		return models.NewValidationError("config", err.Error())
	}
	s.cfg = next
	s.mu.Unlock()

	s.cache.Clear()

	s.logger.Info().
		Float64("min_score", next.MinScore).
		Int("max_matches_per_request", next.MaxMatchesPerRequest).
		Int("max_batch_pairings", next.MaxBatchPairings).
		Msg("Matching configuration updated, cache cleared")
	return nil
}

// Config returns a snapshot of the current configuration.
func (s *Service) Config() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}
