// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

// Package cache provides TTL caching for match and recommendation results.
//
// Two backends implement the same Cacher interface: an in-memory map store
// (default) and a BadgerDB-backed store for deployments that want the cache
// to survive restarts. Entries carry tags, typically the entity IDs a cached
// result was derived from, so a profile update can invalidate every result
// that mentions the entity without scanning keys.
//
// Concurrent misses for the same key recompute redundantly and last write
// wins. Scoring is deterministic, so redundant recomputation is safe and
// cheaper than coordinating in-flight calls.
package cache

import (
	"time"

	"github.com/goccy/go-json"
)

// Cacher is the cache abstraction injected into the matching and
// recommendation services.
//
// Values returned by Get come back as the originally stored value from the
// memory backend and as raw JSON bytes from serializing backends; use
// Decode to recover the concrete type either way.
type Cacher interface {
	// Get retrieves a value. Returns false on miss or expiry.
	Get(key string) (interface{}, bool)

	// Set stores a value with the backend's default TTL. Tags associate
	// the entry with entity IDs for later invalidation.
	Set(key string, value interface{}, tags ...string)

	// Delete removes a single entry.
	Delete(key string)

	// InvalidateByTag removes every entry carrying the tag and returns
	// the number of entries removed.
	InvalidateByTag(tag string) int

	// InvalidateByPrefix removes every entry whose key starts with the
	// prefix and returns the number of entries removed.
	InvalidateByPrefix(prefix string) int

	// Clear removes all entries.
	Clear()

	// Stats returns a snapshot of cache counters.
	Stats() Stats

	// Close releases backend resources and stops background work.
	Close() error
}

// Stats is a point-in-time snapshot of cache counters.
type Stats struct {
	Hits        int64
	Misses      int64
	Evictions   int64
	TotalKeys   int64
	LastCleanup time.Time
}

// HitRate returns the hit percentage over all lookups.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0.0
	}
	return float64(s.Hits) / float64(total) * 100.0
}

// Backend selects the cache implementation.
type Backend string

const (
	// BackendMemory is the in-process map store (default). Contents are
	// lost on restart.
	BackendMemory Backend = "memory"

	// BackendBadger persists entries in BadgerDB so a restart starts
	// with a warm cache.
	BackendBadger Backend = "badger"
)

// Config holds configuration for creating a cache.
type Config struct {
	// Backend selects the implementation (memory or badger).
	Backend Backend

	// TTL is the time-to-live applied to every entry.
	TTL time.Duration

	// MaxEntries triggers an opportunistic sweep on Set once the memory
	// backend reaches this size. Ignored by badger.
	MaxEntries int

	// Path is the BadgerDB directory. Empty means an in-memory Badger
	// instance, useful for tests. Ignored by the memory backend.
	Path string
}

// NewCacher creates a cache from configuration, defaulting to the memory
// backend with a 5-minute TTL.
func NewCacher(cfg Config) (Cacher, error) {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}

	switch cfg.Backend {
	case BackendBadger:
		return NewBadger(cfg)
	default:
		return New(cfg.TTL, cfg.MaxEntries), nil
	}
}

// Decode recovers a concrete type from a cached value. It accepts the
// stored pointer or value directly (memory backend) and raw JSON bytes
// (serializing backends). A failed decode reads as a cache miss.
func Decode[T any](value interface{}) (*T, bool) {
	switch v := value.(type) {
	case *T:
		return v, true
	case T:
		return &v, true
	case []byte:
		var out T
		if err := json.Unmarshal(v, &out); err != nil {
			return nil, false
		}
		return &out, true
	default:
		return nil, false
	}
}

// Verify interface implementations at compile time
var (
	_ Cacher = (*Cache)(nil)
	_ Cacher = (*BadgerCache)(nil)
)
