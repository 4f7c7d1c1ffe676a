// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

/*
Conexus is a matching and recommendation engine for hiring pipelines.
It scores candidate-job compatibility on five weighted factors, persists
every scoring run as immutable match history, and serves hybrid
recommendations built on interaction data. Candidate and job profiles
live in an external directory service; Conexus fetches them on demand
and never stores profile data itself.

# Application Architecture

The server runs under Suture v4 process supervision:

	RootSupervisor ("conexus")
	├── HTTPServerService (REST API)
	└── RefreshService (periodic recommendation model refresh)

Component initialization order:

 1. Configuration: Koanf v2 with environment variables and config files
 2. Logging: zerolog with JSON/console output modes
 3. Match store: embedded DuckDB, file-backed or in-memory
 4. Result caches: per-service TTL caches, in-memory or BadgerDB
 5. Directory client: rate-limited HTTP client behind a circuit breaker
 6. Event publisher: in-process channel, or NATS JetStream (-tags nats)
 7. Matching service: weighted scoring with runtime-updatable config
 8. Recommendation engine: collaborative, similarity, trending strategies
 9. HTTP server: Chi router with CORS, rate limiting and metrics
 10. Supervisor tree: starts and restarts the long-running services

# Configuration

Configuration is loaded via Koanf v2 with layered sources (highest
priority wins):

	Priority: Environment variables > Config file > Defaults

Core environment variables:

	# Server
	CONEXUS_PORT=8787                # HTTP server port
	CONEXUS_LOG_LEVEL=info           # trace, debug, info, warn, error
	CONEXUS_LOG_FORMAT=json          # json or console

	# Directory service (required)
	CONEXUS_DIRECTORY_URL=http://directory:8080
	CONEXUS_DIRECTORY_API_KEY=<key>

	# Persistence
	CONEXUS_DUCKDB_PATH=/data/conexus.db   # or :memory:
	CONEXUS_CACHE_BACKEND=memory           # memory or badger

	# Scoring weights (must sum to 1.0)
	CONEXUS_SKILLS_WEIGHT=0.40
	CONEXUS_EXPERIENCE_WEIGHT=0.30
	CONEXUS_EDUCATION_WEIGHT=0.15
	CONEXUS_LOCATION_WEIGHT=0.10
	CONEXUS_SALARY_WEIGHT=0.05

	# Events
	CONEXUS_EVENTS_BACKEND=channel   # channel or nats
	CONEXUS_NATS_URL=nats://nats:4222
	CONEXUS_NATS_EMBEDDED=false

A YAML config file is read from config.yaml, /etc/conexus/config.yaml,
or the path in CONFIG_PATH. The file is watched: edits to the matching
section (weights, score floors, batch caps) apply on save without a
restart, the same as a PUT to /api/v1/matches/config. Other sections
take effect on the next start.

# Build Tags

Optional build tags enable additional functionality:

	go build ./cmd/server              # Standard build (channel events)
	go build -tags nats ./cmd/server   # Enable NATS JetStream events

With -tags nats the events backend can publish to an external NATS
server or run an embedded one (CONEXUS_NATS_EMBEDDED=true) for
single-binary deployments. Without the tag, requesting the nats backend
logs a warning and falls back to the in-process channel publisher.

# Signal Handling

The server handles graceful shutdown on SIGINT and SIGTERM:

 1. Stops accepting new HTTP connections
 2. Waits for in-flight requests (configurable drain timeout)
 3. Stops the model refresh loop
 4. Closes the event publisher, caches and match store
 5. Reports any services that failed to stop

# Usage Examples

Development (in-memory everything):

	export CONEXUS_DIRECTORY_URL=http://localhost:8080
	export CONEXUS_DUCKDB_PATH=:memory:
	export CONEXUS_LOG_FORMAT=console
	go run ./cmd/server

Production:

	export CONEXUS_DIRECTORY_URL=http://directory:8080
	export CONEXUS_DIRECTORY_API_KEY=xxx
	export CONEXUS_DUCKDB_PATH=/data/conexus.db
	export CONEXUS_CACHE_BACKEND=badger
	./conexus

Docker:

	docker run -d \
	  -e CONEXUS_DIRECTORY_URL=http://directory:8080 \
	  -e CONEXUS_DIRECTORY_API_KEY=xxx \
	  -v conexus-data:/data \
	  -p 8787:8787 \
	  ghcr.io/tomtom215/conexus

# API Documentation

Swagger documentation is available at /swagger/index.html when the
server is running. Endpoints are organized into categories:

  - Core: Liveness and readiness probes
  - Matching: Scoring, directed search, batch scoring, history, config
  - Recommendations: Personalized recommendations, interaction tracking

# See Also

  - internal/config: Configuration management
  - internal/supervisor: Process supervision
  - internal/api: HTTP handlers and routing
  - internal/matching: Scoring service
  - internal/recommend: Recommendation engine
*/
package main
