// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// requestTimeout bounds end-to-end request handling. Batch scoring is
// the slowest endpoint and stays well inside this at the pairing cap.
const requestTimeout = 60 * time.Second

// RouterConfig carries the HTTP-facing settings the router needs.
type RouterConfig struct {
	// CORSOrigins lists the allowed cross-origin request origins.
	CORSOrigins []string

	// RateLimitPerMinute is the per-IP request budget for /api/v1
	// routes. Zero or negative disables rate limiting.
	RateLimitPerMinute int

	// MetricsEnabled mounts /metrics when true.
	MetricsEnabled bool
}

// NewRouter assembles the full route tree.
//
// Probes, metrics and the Swagger UI sit outside /api/v1 and skip rate
// limiting and per-endpoint metrics; everything under /api/v1 gets the
// whole stack.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to every route in order. CORS is
	// global so OPTIONS preflights short-circuit before anything else.
	r.Use(requestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID", subjectHeader},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))
	r.Use(chimiddleware.Timeout(requestTimeout))

	// Operational endpoints.
	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	if cfg.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
	))

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RateLimitPerMinute > 0 {
			r.Use(httprate.Limit(
				cfg.RateLimitPerMinute,
				time.Minute,
				httprate.WithKeyFuncs(httprate.KeyByRealIP),
				httprate.WithLimitHandler(rateLimitExceeded),
			))
		}
		r.Use(prometheusMetrics)

		// Matching.
		r.Post("/matches/score", h.ScoreMatch)
		r.Post("/matches/batch", h.BatchMatch)
		r.Get("/matches", h.ListMatches)
		r.Get("/matches/stats", h.MatchStats)
		r.Get("/matches/config", h.GetMatchingConfig)
		r.Put("/matches/config", h.UpdateMatchingConfig)
		r.Get("/matches/{matchID}", h.GetMatch)

		// Directed search.
		r.Get("/jobs/{jobID}/candidates", h.CandidatesForJob)
		r.Get("/candidates/{candidateID}/jobs", h.JobsForCandidate)

		// Recommendations.
		r.Get("/recommendations/{userID}", h.Recommendations)
		r.Post("/interactions", h.RecordInteraction)
	})

	return r
}
