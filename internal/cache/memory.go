// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package cache

import (
	"strings"
	"sync"
	"time"
)

// DefaultTTL is the entry lifetime used when no TTL is configured.
const DefaultTTL = 5 * time.Minute

// defaultMaxEntries bounds the memory backend before Set starts sweeping.
const defaultMaxEntries = 10000

// janitorFloor is the minimum interval between background sweeps, so a
// short-TTL cache does not spin its janitor goroutine.
const janitorFloor = time.Minute

// entry is a cached value with its lifetime and invalidation tags.
type entry struct {
	data      interface{}
	createdAt time.Time
	expiresAt time.Time
	tags      []string
}

// Cache is a thread-safe in-memory cache with TTL expiry and tag-based
// invalidation.
//
// Expiry is lazy: an expired entry is removed when Get touches it. A Set
// that finds the cache at capacity first sweeps entries older than twice
// the TTL, and a background janitor does the same on a timer, so entries
// nobody reads again still get reclaimed.
//
// Thread safety: all operations are safe for concurrent use. Reads take a
// shared lock; writes, sweeps, and invalidations take an exclusive lock.
type Cache struct {
	mu         sync.RWMutex
	entries    map[string]entry
	tagIndex   map[string]map[string]struct{}
	ttl        time.Duration
	maxEntries int

	statsMu sync.RWMutex
	stats   Stats

	stopOnce sync.Once
	stop     chan struct{}
}

// New creates an in-memory cache and starts its background janitor.
//
// The janitor wakes at twice the TTL (with a one-minute floor) and removes
// entries older than twice the TTL. maxEntries <= 0 selects the default
// bound of 10000.
//
// Example:
//
//	c := cache.New(5*time.Minute, 0)
//	defer c.Close()
//	c.Set(key, page, candidateID, jobID)
//	if v, ok := c.Get(key); ok {
//	    page, _ := cache.Decode[models.MatchPage](v)
//	}
func New(ttl time.Duration, maxEntries int) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}

	c := &Cache{
		entries:    make(map[string]entry),
		tagIndex:   make(map[string]map[string]struct{}),
		ttl:        ttl,
		maxEntries: maxEntries,
		stats:      Stats{LastCleanup: time.Now()},
		stop:       make(chan struct{}),
	}

	go c.janitor()

	return c
}

// Get retrieves a value by key. An entry past its TTL is removed on the
// spot and counts as a miss and an eviction.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	e, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		c.recordMiss()
		return nil, false
	}

	if time.Now().After(e.expiresAt) {
		c.mu.Lock()
		removed := c.removeLocked(key)
		c.mu.Unlock()

		c.recordMiss()
		if removed {
			c.recordEviction(1)
		}
		return nil, false
	}

	c.recordHit()
	return e.data, true
}

// Set stores a value with the cache's TTL, replacing any existing entry
// and its tag memberships. At capacity it first sweeps entries older than
// twice the TTL.
func (c *Cache) Set(key string, value interface{}, tags ...string) {
	now := time.Now()

	c.mu.Lock()
	if len(c.entries) >= c.maxEntries {
		c.sweepLocked(now)
	}

	c.removeLocked(key)
	c.entries[key] = entry{
		data:      value,
		createdAt: now,
		expiresAt: now.Add(c.ttl),
		tags:      tags,
	}
	for _, tag := range tags {
		keys, ok := c.tagIndex[tag]
		if !ok {
			keys = make(map[string]struct{})
			c.tagIndex[tag] = keys
		}
		keys[key] = struct{}{}
	}
	total := int64(len(c.entries))
	c.mu.Unlock()

	c.statsMu.Lock()
	c.stats.TotalKeys = total
	c.statsMu.Unlock()
}

// Delete removes a single entry. Safe to call for keys that do not exist.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	removed := c.removeLocked(key)
	total := int64(len(c.entries))
	c.mu.Unlock()

	if removed {
		c.recordEviction(1)
	}
	c.setTotalKeys(total)
}

// InvalidateByTag removes every entry tagged with the given tag and
// returns how many were removed.
func (c *Cache) InvalidateByTag(tag string) int {
	c.mu.Lock()
	removed := 0
	for key := range c.tagIndex[tag] {
		if c.removeLocked(key) {
			removed++
		}
	}
	total := int64(len(c.entries))
	c.mu.Unlock()

	if removed > 0 {
		c.recordEviction(int64(removed))
	}
	c.setTotalKeys(total)
	return removed
}

// InvalidateByPrefix removes every entry whose key starts with prefix and
// returns how many were removed. This scans all keys; the entry bound
// keeps the scan cheap.
func (c *Cache) InvalidateByPrefix(prefix string) int {
	c.mu.Lock()
	removed := 0
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			if c.removeLocked(key) {
				removed++
			}
		}
	}
	total := int64(len(c.entries))
	c.mu.Unlock()

	if removed > 0 {
		c.recordEviction(int64(removed))
	}
	c.setTotalKeys(total)
	return removed
}

// Clear removes all entries in one map swap.
func (c *Cache) Clear() {
	c.mu.Lock()
	evictions := int64(len(c.entries))
	c.entries = make(map[string]entry)
	c.tagIndex = make(map[string]map[string]struct{})
	c.mu.Unlock()

	c.statsMu.Lock()
	c.stats.Evictions += evictions
	c.stats.TotalKeys = 0
	c.statsMu.Unlock()
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() Stats {
	c.statsMu.RLock()
	defer c.statsMu.RUnlock()
	return c.stats
}

// Close stops the background janitor. The cache remains usable; entries
// are simply no longer swept in the background.
func (c *Cache) Close() error {
	c.stopOnce.Do(func() { close(c.stop) })
	return nil
}

// removeLocked deletes an entry and its tag memberships. Caller holds the
// write lock.
func (c *Cache) removeLocked(key string) bool {
	e, ok := c.entries[key]
	if !ok {
		return false
	}
	delete(c.entries, key)
	for _, tag := range e.tags {
		if keys, ok := c.tagIndex[tag]; ok {
			delete(keys, key)
			if len(keys) == 0 {
				delete(c.tagIndex, tag)
			}
		}
	}
	return true
}

// sweepLocked removes entries older than twice the TTL. Caller holds the
// write lock.
func (c *Cache) sweepLocked(now time.Time) {
	maxAge := 2 * c.ttl
	evictions := int64(0)
	for key, e := range c.entries {
		if now.Sub(e.createdAt) > maxAge {
			if c.removeLocked(key) {
				evictions++
			}
		}
	}

	c.statsMu.Lock()
	c.stats.Evictions += evictions
	c.stats.TotalKeys = int64(len(c.entries))
	c.stats.LastCleanup = now
	c.statsMu.Unlock()
}

// janitor periodically sweeps aged entries until Close.
func (c *Cache) janitor() {
	interval := 2 * c.ttl
	if interval < janitorFloor {
		interval = janitorFloor
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.mu.Lock()
			c.sweepLocked(time.Now())
			c.mu.Unlock()
		}
	}
}

func (c *Cache) recordHit() {
	c.statsMu.Lock()
	c.stats.Hits++
	c.statsMu.Unlock()
}

func (c *Cache) recordMiss() {
	c.statsMu.Lock()
	c.stats.Misses++
	c.statsMu.Unlock()
}

func (c *Cache) recordEviction(n int64) {
	c.statsMu.Lock()
	c.stats.Evictions += n
	c.statsMu.Unlock()
}

func (c *Cache) setTotalKeys(total int64) {
	c.statsMu.Lock()
	c.stats.TotalKeys = total
	c.statsMu.Unlock()
}
