// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Refresher is the slice of the recommendation engine the refresh loop
// needs. Satisfied by *recommend.Engine.
type Refresher interface {
	// RefreshAll rebuilds the item catalog and all strategy models.
	RefreshAll(ctx context.Context) error
}

// RefreshConfig holds configuration for the refresh service.
type RefreshConfig struct {
	// RefreshOnStartup triggers a refresh as soon as the service starts,
	// so the engine serves fresh models without waiting a full interval.
	RefreshOnStartup bool

	// Interval is how often models are refreshed. Default: 1h
	Interval time.Duration
}

// RefreshService periodically rebuilds the recommendation engine's
// catalog and strategy models under suture supervision.
//
// A failed refresh is logged at warn and the loop keeps running; stale
// models are preferred over a crashed loop, and the next tick retries.
type RefreshService struct {
	engine Refresher
	config RefreshConfig
	logger zerolog.Logger
	name   string
}

// NewRefreshService creates a new refresh service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRefreshService(engine Refresher, cfg RefreshConfig, logger zerolog.Logger) *RefreshService {
	return &RefreshService{
		engine: engine,
		config: cfg,
		logger: logger.With().Str("component", "refresh").Logger(),
		name:   "refresh-service",
	}
}

// Serve implements the suture.Service interface.
// It runs the periodic refresh loop until the context is canceled.
func (s *RefreshService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("refresh_on_startup", s.config.RefreshOnStartup).
		Dur("interval", s.config.Interval).
		Msg("Refresh service starting")

	if s.config.RefreshOnStartup {
		if err := s.refresh(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("Startup refresh failed (will retry on schedule)")
		}
	}

	if s.config.Interval <= 0 {
		s.config.Interval = time.Hour
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	s.logger.Info().Msg("Refresh service running")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("Refresh service shutting down")
			return ctx.Err()

		case <-ticker.C:
			if err := s.refresh(ctx); err != nil {
				s.logger.Warn().Err(err).Msg("Scheduled refresh failed")
			}
		}
	}
}

// refresh performs one refresh cycle with its own deadline so a hung
// directory call can't stall the ticker forever.
func (s *RefreshService) refresh(ctx context.Context) error {
	refreshCtx, cancel := context.WithTimeout(ctx, 10*time.Minute)
	defer cancel()

	start := time.Now()
	s.logger.Debug().Msg("Refreshing recommendation models")

	if err := s.engine.RefreshAll(refreshCtx); err != nil {
		return err
	}

	s.logger.Info().
		Dur("duration", time.Since(start)).
		Msg("Recommendation models refreshed")

	return nil
}

// String returns the service name for logging.
func (s *RefreshService) String() string {
	return s.name
}
