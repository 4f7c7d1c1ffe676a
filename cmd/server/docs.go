// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

// Package main provides the Conexus HTTP server
//
// Conexus API scores candidate-job compatibility and serves ranked
// matches and personalized recommendations for hiring pipelines.
//
// @title Conexus API
// @version 1.0
// @description Candidate-job matching and recommendation engine
// @description
// @description ## Features
// @description
// @description - **Weighted Scoring**: Five-factor compatibility scores (skills, experience, education, location, salary) on a 0-100 scale
// @description - **Directed Search**: Ranked candidates for a job, ranked jobs for a candidate
// @description - **Batch Scoring**: Up to 1000 pairings per request with per-pairing error isolation
// @description - **Recommendations**: Hybrid collaborative/similarity/trending blend with diversity control
// @description - **Runtime Configuration**: Hot-swap factor weights without a restart
// @description - **Match History**: Append-only DuckDB persistence with aggregate statistics
// @description
// @description ## Authentication
// @description
// @description Conexus sits behind an API gateway that authenticates callers and
// @description forwards the verified identity in the `X-Conexus-Subject` header.
// @description Requests without the header are treated as trusted internal calls.
// @description Ownership checks (a candidate browsing jobs, an employer browsing
// @description candidates) compare the subject against the profile being acted on.
// @description
// @description ## Rate Limiting
// @description
// @description Default rate limit: 300 requests per minute per IP address.
// @description Exceeding it returns 429 with the standard error envelope.
// @description
// @description ## Error Responses
// @description
// @description All error responses follow this format:
// @description ```json
// @description {
// @description   "status": "error",
// @description   "data": null,
// @description   "error": {
// @description     "code": "ERROR_CODE",
// @description     "message": "Human-readable error message",
// @description     "details": {}
// @description   },
// @description   "metadata": {
// @description     "timestamp": "2026-08-25T12:34:56Z"
// @description   }
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/conexus/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:8787
// @BasePath /api/v1
// @schemes http https
//
// @securityDefinitions.apikey SubjectHeader
// @in header
// @name X-Conexus-Subject
// @description Gateway-verified caller identity. Set by the fronting API gateway, never by clients directly.
//
// @tag.name Core
// @tag.description Liveness and readiness probes
//
// @tag.name Matching
// @tag.description Candidate-job scoring, directed search, batch scoring, match history and runtime configuration
//
// @tag.name Recommendations
// @tag.description Personalized recommendations and interaction tracking
package main
