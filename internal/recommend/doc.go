// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

// Package recommend implements a hybrid recommendation engine for jobs
// and candidates.
//
// # Architecture
//
// The engine blends three strategies, each behind the Strategy
// interface:
//
//   - Collaborative: co-interaction counts mined from the interaction log
//   - Similarity: profile feature overlap, delegated to the matching service
//   - Trending: recent interaction velocity with exponential time decay
//
// Hybrid mode (the default) fans out to every registered strategy
// concurrently, over-fetches from each in proportion to its weight, and
// combines per-item scores as a weighted average renormalized over the
// strategies that actually contributed. Single-strategy mode bypasses
// the blend and serves one strategy's list directly.
//
// # Request Flow
//
//	cache lookup -> generate (fan-out or single) -> hard filters ->
//	diversity -> personalization -> truncate -> cache store
//
// Results are ephemeral: generated per request, cached under a
// canonical request key, and never persisted.
//
// # Online Logging, Offline Refresh
//
// RecordInteraction only appends to the in-memory log and invalidates
// the user's cached lists; no model state changes on the request path.
// A periodic refresh rebuilds the collaborative co-occurrence index,
// the trending counters, and the item category catalog from the
// accumulated log, so serving reads from immutable snapshots.
//
// # Thread Safety
//
// The engine is safe for concurrent use. Refresh swaps complete
// indexes under each strategy's write lock while Generate holds a read
// lock, so requests observe either the old or the new model, never a
// partial one.
package recommend
