// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package cache

import (
	"testing"
	"time"
)

// newTestBadger opens an in-memory Badger instance.
func newTestBadger(t *testing.T) *BadgerCache {
	t.Helper()

	c, err := NewBadger(Config{TTL: time.Minute})
	if err != nil {
		t.Fatalf("NewBadger: %v", err)
	}
	t.Cleanup(func() {
		if err := c.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return c
}

type badgerPayload struct {
	Label string `json:"label"`
	N     int    `json:"n"`
}

func TestBadgerCacheBasicOperations(t *testing.T) {
	c := newTestBadger(t)

	c.Set("key1", &badgerPayload{Label: "a", N: 1})

	value, exists := c.Get("key1")
	if !exists {
		t.Fatal("Expected key1 to exist")
	}

	// Badger returns raw JSON; Decode recovers the type.
	decoded, ok := Decode[badgerPayload](value)
	if !ok {
		t.Fatalf("Expected decodable value, got %T", value)
	}
	if decoded.Label != "a" || decoded.N != 1 {
		t.Errorf("Expected stored payload back, got %+v", decoded)
	}

	if _, exists := c.Get("missing"); exists {
		t.Error("Expected missing key to not exist")
	}
}

func TestBadgerCacheDelete(t *testing.T) {
	c := newTestBadger(t)

	c.Set("key1", &badgerPayload{Label: "a"})
	c.Delete("key1")

	if _, exists := c.Get("key1"); exists {
		t.Error("Expected key1 to be deleted")
	}

	// Deleting a missing key is a no-op
	c.Delete("key2")
}

func TestBadgerCacheInvalidateByTag(t *testing.T) {
	c := newTestBadger(t)

	c.Set("match:1", &badgerPayload{N: 1}, "cand-1", "job-1")
	c.Set("match:2", &badgerPayload{N: 2}, "cand-1", "job-2")
	c.Set("match:3", &badgerPayload{N: 3}, "cand-2", "job-2")

	removed := c.InvalidateByTag("cand-1")
	if removed != 2 {
		t.Errorf("Expected 2 removals for cand-1, got %d", removed)
	}

	if _, exists := c.Get("match:1"); exists {
		t.Error("Expected match:1 to be invalidated")
	}
	if _, exists := c.Get("match:3"); !exists {
		t.Error("Expected match:3 to survive")
	}

	if removed := c.InvalidateByTag("cand-1"); removed != 0 {
		t.Errorf("Expected 0 removals on repeat, got %d", removed)
	}
}

func TestBadgerCacheInvalidateByPrefix(t *testing.T) {
	c := newTestBadger(t)

	c.Set("recs:user-1:a", &badgerPayload{N: 1})
	c.Set("recs:user-1:b", &badgerPayload{N: 2})
	c.Set("recs:user-2:a", &badgerPayload{N: 3})

	removed := c.InvalidateByPrefix("recs:user-1:")
	if removed != 2 {
		t.Errorf("Expected 2 removals for prefix, got %d", removed)
	}

	if _, exists := c.Get("recs:user-2:a"); !exists {
		t.Error("Expected recs:user-2:a to survive")
	}
}

func TestBadgerCacheClear(t *testing.T) {
	c := newTestBadger(t)

	c.Set("key1", &badgerPayload{N: 1}, "tag1")
	c.Set("key2", &badgerPayload{N: 2})

	c.Clear()

	if _, exists := c.Get("key1"); exists {
		t.Error("Expected key1 to be cleared")
	}
	if _, exists := c.Get("key2"); exists {
		t.Error("Expected key2 to be cleared")
	}
	if removed := c.InvalidateByTag("tag1"); removed != 0 {
		t.Errorf("Expected empty tag index after clear, got %d removals", removed)
	}
}

func TestBadgerCacheStats(t *testing.T) {
	c := newTestBadger(t)

	c.Set("key1", &badgerPayload{N: 1})
	c.Get("key1") // hit
	c.Get("key2") // miss

	stats := c.Stats()
	if stats.Hits != 1 {
		t.Errorf("Expected 1 hit, got %d", stats.Hits)
	}
	if stats.Misses != 1 {
		t.Errorf("Expected 1 miss, got %d", stats.Misses)
	}
	if stats.TotalKeys != 1 {
		t.Errorf("Expected 1 key, got %d", stats.TotalKeys)
	}
}

func TestBadgerCacheOnDisk(t *testing.T) {
	dir := t.TempDir()

	c, err := NewBadger(Config{TTL: time.Minute, Path: dir})
	if err != nil {
		t.Fatalf("NewBadger on disk: %v", err)
	}

	c.Set("key1", &badgerPayload{Label: "persisted"})
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// Reopen the same directory: the entry survives the restart.
	reopened, err := NewBadger(Config{TTL: time.Minute, Path: dir})
	if err != nil {
		t.Fatalf("NewBadger reopen: %v", err)
	}
	defer reopened.Close()

	value, exists := reopened.Get("key1")
	if !exists {
		t.Fatal("Expected key1 to survive reopen")
	}
	decoded, ok := Decode[badgerPayload](value)
	if !ok || decoded.Label != "persisted" {
		t.Errorf("Expected persisted payload, got %+v (ok=%v)", decoded, ok)
	}
}
