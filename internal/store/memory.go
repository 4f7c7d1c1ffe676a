// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/conexus/internal/models"
)

// MemoryStore is a map-backed MatchStore used by unit tests and by
// deployments that run without persistence. It mirrors the DuckDB
// store's semantics exactly: append-only snapshots, newest-first
// listing, and the same aggregate definitions.
type MemoryStore struct {
	mu      sync.RWMutex
	matches map[uuid.UUID]models.MatchResult
}

// Compile-time interface check.
var _ MatchStore = (*MemoryStore)(nil)

// NewMemory creates an empty in-memory match store.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		matches: make(map[uuid.UUID]models.MatchResult),
	}
}

// SaveMatchResult persists one match result snapshot.
func (s *MemoryStore) SaveMatchResult(_ context.Context, m *models.MatchResult) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	if m.Status == "" {
		m.Status = models.MatchStatusPending
	}

	s.mu.Lock()
	s.matches[m.ID] = *m
	s.mu.Unlock()

	return nil
}

// GetMatch returns a single match result by ID.
func (s *MemoryStore) GetMatch(_ context.Context, id uuid.UUID) (*models.MatchResult, error) {
	s.mu.RLock()
	m, ok := s.matches[id]
	s.mu.RUnlock()

	if !ok {
		return nil, models.NewNotFoundError("match", id.String())
	}
	return &m, nil
}

// ListMatches returns persisted results matching the filters, newest first.
func (s *MemoryStore) ListMatches(_ context.Context, f models.MatchFilters, limit, offset int) ([]models.MatchResult, error) {
	s.mu.RLock()
	filtered := make([]models.MatchResult, 0, len(s.matches))
	for _, m := range s.matches {
		if matchesFilters(m, f) {
			filtered = append(filtered, m)
		}
	}
	s.mu.RUnlock()

	// Newest first, ID as tiebreak for deterministic paging.
	sort.Slice(filtered, func(i, j int) bool {
		if !filtered[i].CreatedAt.Equal(filtered[j].CreatedAt) {
			return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
		}
		return filtered[i].ID.String() > filtered[j].ID.String()
	})

	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(filtered) {
		return nil, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}

	return filtered[offset:end], nil
}

// GetMatchStats aggregates over persisted match results.
func (s *MemoryStore) GetMatchStats(_ context.Context, f models.StatsFilters) (*models.MatchStats, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -7)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats models.MatchStats
	var scoreSum float64

	for _, m := range s.matches {
		if f.CandidateID != "" && m.CandidateID != f.CandidateID {
			continue
		}
		if f.JobID != "" && m.JobID != f.JobID {
			continue
		}

		stats.TotalMatches++
		scoreSum += m.Score
		if m.Score >= highQualityThreshold {
			stats.HighQuality++
		}
		if !m.CreatedAt.Before(cutoff) {
			stats.LastSevenDays++
		}
	}

	if stats.TotalMatches > 0 {
		stats.AverageScore = scoreSum / float64(stats.TotalMatches)
	}

	return &stats, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}

// Len returns the number of stored results, for tests.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.matches)
}

// matchesFilters reports whether a result passes the list filters.
func matchesFilters(m models.MatchResult, f models.MatchFilters) bool {
	if f.CandidateID != "" && m.CandidateID != f.CandidateID {
		return false
	}
	if f.JobID != "" && m.JobID != f.JobID {
		return false
	}
	if f.Status != "" && m.Status != f.Status {
		return false
	}
	if f.MinScore != nil && m.Score < *f.MinScore {
		return false
	}
	return true
}
