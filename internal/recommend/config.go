// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package recommend

import (
	"fmt"
	"time"

	"github.com/tomtom215/conexus/internal/config"
	"github.com/tomtom215/conexus/internal/models"
)

// Weights defines the relative contribution of each strategy in hybrid
// mode. Weights are normalized at combine time, so they don't need to
// sum to 1.0.
type Weights struct {
	// Collaborative is the weight for co-interaction filtering.
	// Default: 0.5.
	Collaborative float64 `json:"collaborative"`

	// Similarity is the weight for profile-similarity matching.
	// Default: 0.3.
	Similarity float64 `json:"similarity"`

	// Trending is the weight for interaction-velocity ranking.
	// Default: 0.2.
	Trending float64 `json:"trending"`
}

// Normalize returns a copy with weights scaled to sum to 1.0. All-zero
// weights come back equal.
func (w Weights) Normalize() Weights {
	sum := w.Collaborative + w.Similarity + w.Trending
	if sum == 0 {
		const equalWeight = 1.0 / 3.0
		return Weights{Collaborative: equalWeight, Similarity: equalWeight, Trending: equalWeight}
	}
	return Weights{
		Collaborative: w.Collaborative / sum,
		Similarity:    w.Similarity / sum,
		Trending:      w.Trending / sum,
	}
}

// Of returns the weight assigned to the named strategy. Unknown names
// weigh zero.
func (w Weights) Of(name models.RecommendationAlgorithm) float64 {
	switch name {
	case models.AlgorithmCollaborative:
		return w.Collaborative
	case models.AlgorithmSimilarity:
		return w.Similarity
	case models.AlgorithmTrending:
		return w.Trending
	default:
		return 0
	}
}

// Config contains the recommendation engine configuration. It is fixed
// at construction; runtime reconfiguration covers the matching service
// only.
type Config struct {
	// Weights defines the hybrid-combine contribution per strategy.
	Weights Weights `json:"weights"`

	// Algorithms is the allow-list of strategies the engine may run.
	// Empty permits all registered strategies.
	Algorithms []models.RecommendationAlgorithm `json:"algorithms"`

	// MinScore drops recommendations scoring below this [0,1] floor.
	// Default: 0.1.
	MinScore float64 `json:"min_score"`

	// MinConfidence drops recommendations below this [0,1] confidence
	// floor. Default: 0 (no filter).
	MinConfidence float64 `json:"min_confidence"`

	// DiversityThreshold is the largest fraction of a list one item
	// category may occupy before the diversity pass starts rejecting.
	// Default: 0.3.
	DiversityThreshold float64 `json:"diversity_threshold"`

	// EnableDiversity toggles the diversity pass. Default: true.
	EnableDiversity bool `json:"enable_diversity"`

	// EnablePersonalization toggles the profile-affinity score
	// adjustment. Default: true.
	EnablePersonalization bool `json:"enable_personalization"`

	// CacheTTL is the lifetime of cached recommendation lists.
	// Default: 30m.
	CacheTTL time.Duration `json:"cache_ttl"`

	// RefreshInterval is the cadence of the background model refresh.
	// Default: 1h.
	RefreshInterval time.Duration `json:"refresh_interval"`

	// DefaultCount is the list size when the request doesn't name one.
	// Default: 10.
	DefaultCount int `json:"default_count"`

	// MaxCount is the largest list size a request may ask for.
	// Default: 50.
	MaxCount int `json:"max_count"`
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			Collaborative: 0.5,
			Similarity:    0.3,
			Trending:      0.2,
		},
		Algorithms: []models.RecommendationAlgorithm{
			models.AlgorithmCollaborative,
			models.AlgorithmSimilarity,
			models.AlgorithmTrending,
		},
		MinScore:              0.1,
		MinConfidence:         0,
		DiversityThreshold:    0.3,
		EnableDiversity:       true,
		EnablePersonalization: true,
		CacheTTL:              30 * time.Minute,
		RefreshInterval:       time.Hour,
		DefaultCount:          10,
		MaxCount:              50,
	}
}

// FromAppConfig builds the engine configuration from the application
// configuration section. Unset counts fall back to the defaults.
func FromAppConfig(rc *config.RecommendConfig) Config {
	cfg := DefaultConfig()
	cfg.Weights = Weights{
		Collaborative: rc.CollaborativeWeight,
		Similarity:    rc.SimilarityWeight,
		Trending:      rc.TrendingWeight,
	}
	if len(rc.Algorithms) > 0 {
		cfg.Algorithms = cfg.Algorithms[:0]
		for _, name := range rc.Algorithms {
			cfg.Algorithms = append(cfg.Algorithms, models.RecommendationAlgorithm(name))
		}
	}
	cfg.MinScore = rc.MinScore
	cfg.MinConfidence = rc.MinConfidence
	cfg.DiversityThreshold = rc.DiversityThreshold
	cfg.EnableDiversity = rc.EnableDiversity
	cfg.EnablePersonalization = rc.EnablePersonalization
	if rc.CacheTTL > 0 {
		cfg.CacheTTL = rc.CacheTTL
	}
	if rc.RefreshInterval > 0 {
		cfg.RefreshInterval = rc.RefreshInterval
	}
	return cfg
}

// Validate checks the configuration bounds.
func (c Config) Validate() error {
	if c.Weights.Collaborative < 0 || c.Weights.Similarity < 0 || c.Weights.Trending < 0 {
		return fmt.Errorf("weights must be non-negative, got %+v", c.Weights)
	}
	for _, name := range c.Algorithms {
		if !models.IsValidRecommendationAlgorithm(name) || name == models.AlgorithmHybrid {
			return fmt.Errorf("algorithms contains unknown strategy %q", name)
		}
	}
	if c.MinScore < 0 || c.MinScore > 1 {
		return fmt.Errorf("min_score must be in [0,1], got %g", c.MinScore)
	}
	if c.MinConfidence < 0 || c.MinConfidence > 1 {
		return fmt.Errorf("min_confidence must be in [0,1], got %g", c.MinConfidence)
	}
	if c.DiversityThreshold <= 0 || c.DiversityThreshold > 1 {
		return fmt.Errorf("diversity_threshold must be in (0,1], got %g", c.DiversityThreshold)
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("cache_ttl must be positive, got %v", c.CacheTTL)
	}
	if c.RefreshInterval <= 0 {
		return fmt.Errorf("refresh_interval must be positive, got %v", c.RefreshInterval)
	}
	if c.DefaultCount < 1 {
		return fmt.Errorf("default_count must be positive, got %d", c.DefaultCount)
	}
	if c.MaxCount < c.DefaultCount {
		return fmt.Errorf("max_count must be >= default_count, got %d < %d", c.MaxCount, c.DefaultCount)
	}
	return nil
}

// allows reports whether the allow-list permits the named strategy.
func (c Config) allows(name models.RecommendationAlgorithm) bool {
	if len(c.Algorithms) == 0 {
		return true
	}
	for _, allowed := range c.Algorithms {
		if allowed == name {
			return true
		}
	}
	return false
}
