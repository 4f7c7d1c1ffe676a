// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/conexus/internal/directory"
	"github.com/tomtom215/conexus/internal/matching"
	"github.com/tomtom215/conexus/internal/models"
	"github.com/tomtom215/conexus/internal/store"
)

// MatchingService is the slice of the matching service the handlers
// consume. Narrowing to an interface keeps handler tests on hand-rolled
// stubs instead of a fully wired service.
type MatchingService interface {
	ScoreCandidate(ctx context.Context, candidateID, jobID string) (*models.MatchResult, error)
	FindCandidatesForJob(ctx context.Context, jobID string, opts models.SearchOptions) (*models.MatchPage, error)
	FindJobsForCandidate(ctx context.Context, candidateID string, opts models.SearchOptions) (*models.MatchPage, error)
	BatchMatch(ctx context.Context, req models.BatchMatchRequest) (*models.BatchMatchResult, error)
	GetMatch(ctx context.Context, id string) (*models.MatchResult, error)
	ListMatches(ctx context.Context, f models.MatchFilters, limit, offset int) ([]models.MatchResult, error)
	GetMatchStats(ctx context.Context, f models.StatsFilters) (*models.MatchStats, error)
	UpdateConfig(update matching.ConfigUpdate) error
	Config() matching.Config
}

// RecommendationEngine is the slice of the recommendation engine the
// handlers consume.
type RecommendationEngine interface {
	GetRecommendations(ctx context.Context, anchorID string, itemType models.ItemType,
		req models.RecommendationRequest) (*models.RecommendationResult, error)
	RecordInteraction(ctx context.Context, i models.Interaction) error
}

// pinger is implemented by stores with a probeable backing connection.
// The memory store has none and reads as always ready.
type pinger interface {
	Ping(ctx context.Context) error
}

// Handler carries the service dependencies for all API endpoints.
//
// Handler methods are split across files:
//   - handlers.go: Handler struct, constructor, health probes
//   - handlers_match.go: scoring, search, batch, history, config
//   - handlers_recommend.go: recommendations and interactions
type Handler struct {
	matching  MatchingService
	recommend RecommendationEngine
	directory directory.Service
	store     store.MatchStore
	version   string
	startTime time.Time
}

// NewHandler creates the API handler. matchStore is probed for
// readiness when its concrete type implements Ping; stores without a
// backing connection read as always ready.
func NewHandler(matchingSvc MatchingService, engine RecommendationEngine,
	dir directory.Service, matchStore store.MatchStore, version string) *Handler {
	return &Handler{
		matching:  matchingSvc,
		recommend: engine,
		directory: dir,
		store:     matchStore,
		version:   version,
		startTime: time.Now(),
	}
}

// Health handles liveness probes.
//
// @Summary Liveness probe
// @Description Returns 200 while the process is alive, regardless of dependency state.
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse "Service is alive"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"version": h.version,
		"uptime":  time.Since(h.startTime).Seconds(),
	}, started)
}

// Ready handles readiness probes. Readiness requires the match store's
// backing connection to answer; the directory service is deliberately
// excluded since its outages degrade rather than disable this service
// (cached results keep serving).
//
// @Summary Readiness probe
// @Description Returns 200 when the service can handle traffic, 503 while the match store is unreachable.
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse "Service is ready"
// @Failure 503 {object} models.APIResponse "Match store unreachable"
// @Router /ready [get]
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	storeReady := true
	if p, ok := h.store.(pinger); ok {
		storeReady = p.Ping(r.Context()) == nil
	}

	status := http.StatusOK
	state := "ready"
	if !storeReady {
		status = http.StatusServiceUnavailable
		state = "not_ready"
	}

	respondSuccess(w, status, map[string]interface{}{
		"status":      state,
		"store_ready": storeReady,
		"uptime":      time.Since(h.startTime).Seconds(),
	}, started)
}
