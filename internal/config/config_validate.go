// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package config

import (
	"fmt"
	"math"
	"strings"
)

// weightSumTolerance absorbs float error when checking that a weight
// vector sums to 1.
const weightSumTolerance = 0.001

// Validate checks that the merged configuration is complete and
// internally consistent.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateLogging(); err != nil {
		return err
	}

	if err := c.validateCache(); err != nil {
		return err
	}

	if err := c.validateDatabase(); err != nil {
		return err
	}

	if err := c.validateDirectory(); err != nil {
		return err
	}

	if err := c.validateMatching(); err != nil {
		return err
	}

	if err := c.validateRecommend(); err != nil {
		return err
	}

	return c.validateEvents()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("CONEXUS_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("CONEXUS_READ_TIMEOUT must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("CONEXUS_WRITE_TIMEOUT must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("CONEXUS_SHUTDOWN_TIMEOUT must be positive")
	}
	if c.Server.RateLimitPerMinute < 0 {
		return fmt.Errorf("CONEXUS_RATE_LIMIT_PER_MINUTE must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("CONEXUS_LOG_LEVEL must be one of trace, debug, info, warn, error; got %q", c.Logging.Level)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("CONEXUS_LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

func (c *Config) validateCache() error {
	switch c.Cache.Backend {
	case "memory", "badger":
	default:
		return fmt.Errorf("CONEXUS_CACHE_BACKEND must be memory or badger, got %q", c.Cache.Backend)
	}

	if c.Cache.Backend == "badger" && c.Cache.BadgerPath == "" {
		return fmt.Errorf("CONEXUS_CACHE_BADGER_PATH is required when CONEXUS_CACHE_BACKEND=badger")
	}
	if c.Cache.MaxEntries <= 0 {
		return fmt.Errorf("CONEXUS_CACHE_MAX_ENTRIES must be positive, got %d", c.Cache.MaxEntries)
	}
	return nil
}

func (c *Config) validateDatabase() error {
	if c.Database.Path == "" {
		return fmt.Errorf("CONEXUS_DUCKDB_PATH is required")
	}
	return nil
}

func (c *Config) validateDirectory() error {
	if c.Directory.BaseURL == "" {
		return fmt.Errorf("CONEXUS_DIRECTORY_URL is required")
	}
	if err := validateHTTPURL(c.Directory.BaseURL, "CONEXUS_DIRECTORY_URL"); err != nil {
		return fmt.Errorf("CONEXUS_DIRECTORY_URL is invalid: %w", err)
	}
	if c.Directory.Timeout <= 0 {
		return fmt.Errorf("CONEXUS_DIRECTORY_TIMEOUT must be positive")
	}
	if c.Directory.RateLimit <= 0 {
		return fmt.Errorf("CONEXUS_DIRECTORY_RATE_LIMIT must be positive")
	}
	if c.Directory.Burst <= 0 {
		return fmt.Errorf("CONEXUS_DIRECTORY_BURST must be positive")
	}
	return nil
}

func (c *Config) validateMatching() error {
	m := c.Matching

	weights := []struct {
		name  string
		value float64
	}{
		{"CONEXUS_SKILLS_WEIGHT", m.SkillsWeight},
		{"CONEXUS_EXPERIENCE_WEIGHT", m.ExperienceWeight},
		{"CONEXUS_EDUCATION_WEIGHT", m.EducationWeight},
		{"CONEXUS_LOCATION_WEIGHT", m.LocationWeight},
		{"CONEXUS_SALARY_WEIGHT", m.SalaryWeight},
	}
	sum := 0.0
	for _, w := range weights {
		if w.value < 0 {
			return fmt.Errorf("%s must not be negative, got %f", w.name, w.value)
		}
		sum += w.value
	}
	if math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("matching weights must sum to 1.0, got %f", sum)
	}

	if m.MinScore < 0 || m.MinScore > 100 {
		return fmt.Errorf("CONEXUS_MIN_SCORE must be between 0 and 100, got %f", m.MinScore)
	}
	if m.MaxMatchesPerRequest <= 0 {
		return fmt.Errorf("CONEXUS_MAX_MATCHES_PER_REQUEST must be positive, got %d", m.MaxMatchesPerRequest)
	}
	if m.MaxBatchPairings <= 0 {
		return fmt.Errorf("CONEXUS_MAX_BATCH_PAIRINGS must be positive, got %d", m.MaxBatchPairings)
	}
	if m.CacheTTL <= 0 {
		return fmt.Errorf("CONEXUS_MATCH_CACHE_TTL must be positive")
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := c.Recommend

	weights := []struct {
		name  string
		value float64
	}{
		{"CONEXUS_COLLABORATIVE_WEIGHT", r.CollaborativeWeight},
		{"CONEXUS_SIMILARITY_WEIGHT", r.SimilarityWeight},
		{"CONEXUS_TRENDING_WEIGHT", r.TrendingWeight},
	}
	sum := 0.0
	for _, w := range weights {
		if w.value < 0 {
			return fmt.Errorf("%s must not be negative, got %f", w.name, w.value)
		}
		sum += w.value
	}
	if math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("recommendation strategy weights must sum to 1.0, got %f", sum)
	}

	for _, alg := range r.Algorithms {
		switch alg {
		case "collaborative", "similarity", "trending":
		default:
			return fmt.Errorf("CONEXUS_RECOMMEND_ALGORITHMS contains unknown strategy %q", alg)
		}
	}

	if r.MinScore < 0 || r.MinScore > 1 {
		return fmt.Errorf("CONEXUS_RECOMMEND_MIN_SCORE must be between 0 and 1, got %f", r.MinScore)
	}
	if r.MinConfidence < 0 || r.MinConfidence > 1 {
		return fmt.Errorf("CONEXUS_RECOMMEND_MIN_CONFIDENCE must be between 0 and 1, got %f", r.MinConfidence)
	}
	if r.DiversityThreshold <= 0 || r.DiversityThreshold > 1 {
		return fmt.Errorf("CONEXUS_DIVERSITY_THRESHOLD must be in (0, 1], got %f", r.DiversityThreshold)
	}
	if r.CacheTTL <= 0 {
		return fmt.Errorf("CONEXUS_RECOMMEND_CACHE_TTL must be positive")
	}
	if r.RefreshInterval <= 0 {
		return fmt.Errorf("CONEXUS_REFRESH_INTERVAL must be positive")
	}
	return nil
}

func (c *Config) validateEvents() error {
	switch c.Events.Backend {
	case "channel", "nats":
	default:
		return fmt.Errorf("CONEXUS_EVENTS_BACKEND must be channel or nats, got %q", c.Events.Backend)
	}

	if c.Events.Backend == "nats" && !c.Events.NATS.Embedded {
		if c.Events.NATS.URL == "" {
			return fmt.Errorf("CONEXUS_NATS_URL is required when CONEXUS_EVENTS_BACKEND=nats and the embedded server is disabled")
		}
		if err := validateNATSURL(c.Events.NATS.URL); err != nil {
			return fmt.Errorf("CONEXUS_NATS_URL is invalid: %w", err)
		}
	}
	return nil
}
