// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package cache

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

// Key prefixes for BadgerDB storage. Value entries live under the value
// prefix; tag membership entries live under the tag prefix as
// "t:<tag>:<key>" -> key.
const (
	badgerValuePrefix = "v:"
	badgerTagPrefix   = "t:"
)

// BadgerCache is a BadgerDB-backed cache. Values are stored as JSON and
// returned from Get as raw bytes; Badger's own TTL handles expiry, so
// there is no sweep goroutine. Stale tag index entries left behind by
// Delete age out on the same TTL.
type BadgerCache struct {
	db  *badger.DB
	ttl time.Duration

	statsMu sync.RWMutex
	stats   Stats
}

// NewBadger opens (or creates) a BadgerDB at cfg.Path and wraps it as a
// cache. An empty path opens an in-memory instance.
func NewBadger(cfg Config) (*BadgerCache, error) {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	opts := badger.DefaultOptions(cfg.Path)
	opts.Logger = nil // Suppress BadgerDB logs
	if cfg.Path == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger cache: %w", err)
	}

	return NewBadgerFromDB(db, ttl), nil
}

// NewBadgerFromDB wraps an existing BadgerDB connection as a cache. The
// caller keeps ownership questions simple: Close closes the DB either way.
func NewBadgerFromDB(db *badger.DB, ttl time.Duration) *BadgerCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &BadgerCache{db: db, ttl: ttl}
}

// Get retrieves the stored JSON bytes for a key. Expired entries are
// handled by Badger and read as misses.
func (c *BadgerCache) Get(key string) (interface{}, bool) {
	var data []byte

	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(badgerValuePrefix + key))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		c.recordMiss()
		return nil, false
	}

	c.recordHit()
	return data, true
}

// Set stores a value as JSON with the cache TTL and writes one tag
// membership entry per tag. Values that fail to marshal are dropped;
// the cache is best-effort by contract.
func (c *BadgerCache) Set(key string, value interface{}, tags ...string) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}

	//nolint:errcheck // Cache writes are best-effort
	c.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(badgerValuePrefix+key), data).WithTTL(c.ttl)
		if err := txn.SetEntry(e); err != nil {
			return err
		}
		for _, tag := range tags {
			te := badger.NewEntry(tagKey(tag, key), []byte(key)).WithTTL(c.ttl)
			if err := txn.SetEntry(te); err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a single entry. Its tag index entries are left to age
// out; InvalidateByTag tolerates members that no longer exist.
func (c *BadgerCache) Delete(key string) {
	removed := false

	//nolint:errcheck // Cache deletes are best-effort
	c.db.Update(func(txn *badger.Txn) error {
		k := []byte(badgerValuePrefix + key)
		if _, err := txn.Get(k); errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err := txn.Delete(k); err != nil {
			return err
		}
		removed = true
		return nil
	})

	if removed {
		c.recordEviction(1)
	}
}

// InvalidateByTag removes every entry tagged with the given tag and
// returns how many value entries were removed.
func (c *BadgerCache) InvalidateByTag(tag string) int {
	var members []string

	err := c.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(badgerTagPrefix + tag + ":")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				members = append(members, string(val))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0
	}

	removed := 0
	//nolint:errcheck // Cache invalidation is best-effort
	c.db.Update(func(txn *badger.Txn) error {
		for _, key := range members {
			k := []byte(badgerValuePrefix + key)
			if _, err := txn.Get(k); err == nil {
				if err := txn.Delete(k); err != nil {
					return err
				}
				removed++
			}
			//nolint:errcheck // Index entry may already be gone
			txn.Delete(tagKey(tag, key))
		}
		return nil
	})

	if removed > 0 {
		c.recordEviction(int64(removed))
	}
	return removed
}

// InvalidateByPrefix removes every entry whose key starts with prefix.
func (c *BadgerCache) InvalidateByPrefix(prefix string) int {
	var keys [][]byte

	err := c.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		p := []byte(badgerValuePrefix + prefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	if err != nil {
		return 0
	}

	removed := 0
	//nolint:errcheck // Cache invalidation is best-effort
	c.db.Update(func(txn *badger.Txn) error {
		for _, k := range keys {
			if err := txn.Delete(k); err != nil {
				return err
			}
			removed++
		}
		return nil
	})

	if removed > 0 {
		c.recordEviction(int64(removed))
	}
	return removed
}

// Clear drops all value and tag entries.
func (c *BadgerCache) Clear() {
	//nolint:errcheck // Cache clears are best-effort
	c.db.DropPrefix([]byte(badgerValuePrefix))
	//nolint:errcheck // Cache clears are best-effort
	c.db.DropPrefix([]byte(badgerTagPrefix))
}

// Stats returns the in-process counters plus a live key count.
func (c *BadgerCache) Stats() Stats {
	c.statsMu.RLock()
	stats := c.stats
	c.statsMu.RUnlock()

	total := int64(0)
	//nolint:errcheck // Stats are advisory
	c.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(badgerValuePrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			total++
		}
		return nil
	})

	stats.TotalKeys = total
	return stats
}

// Close closes the underlying BadgerDB.
func (c *BadgerCache) Close() error {
	return c.db.Close()
}

func (c *BadgerCache) recordHit() {
	c.statsMu.Lock()
	c.stats.Hits++
	c.statsMu.Unlock()
}

func (c *BadgerCache) recordMiss() {
	c.statsMu.Lock()
	c.stats.Misses++
	c.statsMu.Unlock()
}

func (c *BadgerCache) recordEviction(n int64) {
	c.statsMu.Lock()
	c.stats.Evictions += n
	c.statsMu.Unlock()
}

func tagKey(tag, key string) []byte {
	return []byte(badgerTagPrefix + tag + ":" + key)
}
