// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

// Package main is the entry point for the Conexus server application.
//
// Conexus scores candidate-job compatibility and serves ranked matches
// and recommendations over a REST API. Profile data lives in an external
// directory service; Conexus owns the scoring, the match history, and
// the recommendation models built on interaction data.
//
// The server initializes components in the following order:
//
//  1. Configuration: Koanf v2 with environment variables and config files
//  2. Logging: zerolog with JSON/console output modes
//  3. Match store: embedded DuckDB (file-backed or in-memory)
//  4. Result caches: in-memory or BadgerDB, one per service
//  5. Directory client: rate-limited HTTP client behind a circuit breaker
//  6. Event publisher: in-process channel, or NATS JetStream with -tags nats
//  7. Matching service and recommendation engine
//  8. HTTP server: Chi router with middleware stack
//  9. Supervisor tree: Suture v4 process supervision
//
// See doc.go for architecture notes, configuration reference, and
// operational guidance.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	_ "github.com/tomtom215/conexus/docs" // Import generated swagger docs
	"github.com/tomtom215/conexus/internal/api"
	"github.com/tomtom215/conexus/internal/cache"
	"github.com/tomtom215/conexus/internal/config"
	"github.com/tomtom215/conexus/internal/directory"
	"github.com/tomtom215/conexus/internal/logging"
	"github.com/tomtom215/conexus/internal/matching"
	"github.com/tomtom215/conexus/internal/recommend"
	"github.com/tomtom215/conexus/internal/scoring"
	"github.com/tomtom215/conexus/internal/store"
	"github.com/tomtom215/conexus/internal/supervisor"
	"github.com/tomtom215/conexus/internal/supervisor/services"
)

// version is stamped at build time:
//
//	go build -ldflags "-X main.version=v1.2.0" ./cmd/server
var version = "dev"

//nolint:gocyclo // Main initialization function with sequential setup steps
func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize zerolog with configuration
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().Str("version", version).Msg("Starting Conexus with supervisor tree")
	logging.Info().
		Str("directory_url", cfg.Directory.BaseURL).
		Str("db_path", cfg.Database.Path).
		Str("cache_backend", cfg.Cache.Backend).
		Str("events_backend", cfg.Events.Backend).
		Msg("Configuration loaded")

	// Initialize the match store. DuckDB treats the ":memory:" path as an
	// in-process database, so one constructor covers persistent and
	// ephemeral runs.
	matchStore, err := store.NewDuckDB(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize match store")
	}
	defer func() {
		if err := matchStore.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing match store")
		}
	}()
	logging.Info().Msg("Match store initialized successfully")

	// Result caches. Match results and recommendation lists age out on
	// different schedules, so each service gets its own cache on the
	// configured backend.
	matchCache, err := cache.NewCacher(cache.Config{
		Backend:    cache.Backend(cfg.Cache.Backend),
		TTL:        cfg.Matching.CacheTTL,
		MaxEntries: cfg.Cache.MaxEntries,
		Path:       cachePath(cfg, "match"),
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize match cache")
	}
	defer func() {
		if err := matchCache.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing match cache")
		}
	}()

	recCache, err := cache.NewCacher(cache.Config{
		Backend:    cache.Backend(cfg.Cache.Backend),
		TTL:        cfg.Recommend.CacheTTL,
		MaxEntries: cfg.Cache.MaxEntries,
		Path:       cachePath(cfg, "recommend"),
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize recommendation cache")
	}
	defer func() {
		if err := recCache.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing recommendation cache")
		}
	}()
	logging.Info().Str("backend", cfg.Cache.Backend).Msg("Result caches initialized")

	// Directory client with circuit breaker for fault tolerance.
	// The breaker prevents cascading failures when the directory service
	// is unavailable; callers see fast failures instead of piled-up
	// timeouts.
	dir := directory.NewCircuitBreakerDirectory(directory.NewHTTPDirectory(cfg.Directory))
	logging.Info().Str("url", cfg.Directory.BaseURL).Msg("Directory client initialized")

	// Initialize event publishing (channel backend, or NATS JetStream
	// when built with -tags nats). For NATS this also provisions the
	// stream and optionally starts the embedded server.
	evts, err := initEvents(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize event publisher")
	}
	defer func() {
		if err := evts.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing event publisher")
		}
	}()

	// Scoring engine and matching service. The service snapshots its
	// weight vector per request, so runtime configuration updates through
	// the API take effect without a restart.
	matchCfg := matching.FromAppConfig(&cfg.Matching)
	scorer, err := scoring.NewEngineWithWeights(matchCfg.Weights)
	if err != nil {
		logging.Fatal().Err(err).Msg("Invalid scoring weights")
	}

	matchingSvc, err := matching.NewService(matchCfg, dir, matchStore, matchCache,
		evts.Publisher, scorer, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create matching service")
	}
	logging.Info().
		Float64("min_score", matchCfg.MinScore).
		Int("max_matches", matchCfg.MaxMatchesPerRequest).
		Msg("Matching service initialized")

	// Hot-reload the matching section when the config file changes.
	// Weights and limits take effect without a restart; everything else
	// (ports, stores, backends) still requires one.
	if configPath := config.FindConfigFile(); configPath != "" {
		if err := config.WatchConfigFile(configPath, func() {
			reloadMatchingConfig(configPath, matchingSvc)
		}); err != nil {
			logging.Warn().Err(err).Str("path", configPath).
				Msg("Config file watching unavailable, hot-reload disabled")
		} else {
			logging.Info().Str("path", configPath).Msg("Watching config file for matching updates")
		}
	}

	// Recommendation engine with the default strategy set. The matching
	// service doubles as the scorer behind the similarity strategy.
	engine, err := recommend.NewEngine(recommend.FromAppConfig(&cfg.Recommend),
		dir, recCache, evts.Publisher, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}
	engine.RegisterDefaultStrategies(matchingSvc)
	logging.Info().
		Strs("algorithms", cfg.Recommend.Algorithms).
		Dur("refresh_interval", engine.RefreshInterval()).
		Msg("Recommendation engine initialized")

	handler := api.NewHandler(matchingSvc, engine, dir, matchStore, version)
	router := api.NewRouter(handler, api.RouterConfig{
		CORSOrigins:        cfg.Server.CORSOrigins,
		RateLimitPerMinute: cfg.Server.RateLimitPerMinute,
		MetricsEnabled:     cfg.Metrics.Enabled,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create structured logger for supervisor using our slog adapter.
	// This bridges zerolog to slog for sutureslog compatibility.
	slogLogger := logging.NewSlogLogger()

	tree, err := supervisor.NewSupervisorTree(slogLogger, supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.Add(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	tree.Add(services.NewRefreshService(engine, services.RefreshConfig{
		RefreshOnStartup: true,
		Interval:         engine.RefreshInterval(),
	}, logging.Logger()))
	logging.Info().Msg("Model refresh service added")

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// Wait for supervisor to finish (either from signal or error)
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Wait for the error channel to close (supervisor finished)
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	// Report any services that failed to stop within timeout
	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}

// cachePath returns the BadgerDB directory for one of the result caches.
// Badger locks its directory exclusively, so the match and recommendation
// caches get separate subdirectories under the configured path. Returns
// empty for the memory backend, and for an unset badger path, which opens
// an in-memory Badger instance.
func cachePath(cfg *config.Config, name string) string {
	if cache.Backend(cfg.Cache.Backend) != cache.BackendBadger || cfg.Cache.BadgerPath == "" {
		return ""
	}
	return filepath.Join(cfg.Cache.BadgerPath, name)
}

// reloadMatchingConfig re-reads the full configuration and applies the
// matching section to the running service. A file that no longer
// validates is rejected wholesale and the current configuration stays
// in effect.
func reloadMatchingConfig(path string, svc *matching.Service) {
	newCfg, err := config.Load()
	if err != nil {
		logging.Error().Err(err).Str("path", path).
			Msg("Config reload failed, keeping current configuration")
		return
	}

	next := matching.FromAppConfig(&newCfg.Matching)
	update := matching.ConfigUpdate{
		Weights:              &next.Weights,
		MinScore:             &next.MinScore,
		MaxMatchesPerRequest: &next.MaxMatchesPerRequest,
		MaxBatchPairings:     &next.MaxBatchPairings,
	}
	if err := svc.UpdateConfig(update); err != nil {
		logging.Error().Err(err).Str("path", path).Msg("Config reload rejected")
		return
	}
	logging.Info().Str("path", path).Msg("Matching configuration reloaded")
}
