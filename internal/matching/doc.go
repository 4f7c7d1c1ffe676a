// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

// Package matching is the core matching service: point scoring,
// paginated match searches, batch pairing, and the aggregate views
// over persisted results.
//
// The service composes the pure scoring engine with its collaborators:
// the profile directory (candidate/job data), the match store
// (persistence), the cache (search pages and point scores), and the
// event publisher. Scores cross this boundary on the 0-100 scale; the
// engine's [0,1] output is rescaled here.
//
// Concurrency: paginated searches fan out one scoring goroutine per
// population member and await all. Batch pairings run strictly
// sequentially to bound resource bursts and keep an accurate running
// failure counter. Configuration is hot-swappable under a write lock;
// swapping clears the cache because cached results reflect the prior
// weights.
package matching
