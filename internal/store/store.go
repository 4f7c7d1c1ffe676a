// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

// Package store persists match results and serves the aggregate views
// built on them.
//
// Match results are append-only: a re-score of the same candidate-job
// pair inserts a new row with a fresh ID, it never updates an old one.
// History queries therefore see every scoring run, and the aggregate
// stats reflect all runs, not only the latest per pair.
//
// Two implementations exist:
//   - DuckDBStore: embedded DuckDB file (or in-memory) for production
//   - MemoryStore: map-backed store for tests and no-persistence setups
package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/tomtom215/conexus/internal/models"
)

// MatchStore is the persistence contract for match results.
//
// Thread Safety: implementations must be safe for concurrent use; the
// matching service writes from scoring fan-outs while readers page
// through history.
type MatchStore interface {
	// SaveMatchResult persists one immutable match result snapshot.
	// A zero ID is assigned; a zero CreatedAt is stamped with now.
	SaveMatchResult(ctx context.Context, m *models.MatchResult) error

	// GetMatch returns a single match result by ID.
	// Unknown IDs return models.NotFoundError.
	GetMatch(ctx context.Context, id uuid.UUID) (*models.MatchResult, error)

	// ListMatches returns persisted results matching the filters, newest
	// first, with limit/offset pagination applied after filtering.
	ListMatches(ctx context.Context, f models.MatchFilters, limit, offset int) ([]models.MatchResult, error)

	// GetMatchStats aggregates over persisted results: total count,
	// average score, count with score >= 80, and count created within
	// the trailing seven days.
	GetMatchStats(ctx context.Context, f models.StatsFilters) (*models.MatchStats, error)

	// Close releases the underlying storage.
	Close() error
}

// highQualityThreshold is the 0-100 score bound above which a match
// counts into MatchStats.HighQuality.
const highQualityThreshold = 80.0
