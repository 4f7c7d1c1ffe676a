// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package recommend

import (
	"sync"
	"time"

	"github.com/tomtom215/conexus/internal/models"
)

// defaultLogCapacity bounds the in-memory interaction log. When the cap
// is hit the oldest quarter is discarded; the strategies only ever look
// at recent history, so the tail is the part worth keeping.
const defaultLogCapacity = 100000

// InteractionLog is the append-only store of user-item interactions
// that feeds the collaborative and trending strategies. Appends happen
// on the request path; full scans only during refresh.
type InteractionLog struct {
	mu      sync.RWMutex
	entries []models.Interaction
	cap     int
}

// NewInteractionLog creates a log bounded to capacity entries.
// Non-positive capacity uses the default.
func NewInteractionLog(capacity int) *InteractionLog {
	if capacity <= 0 {
		capacity = defaultLogCapacity
	}
	return &InteractionLog{
		entries: make([]models.Interaction, 0, 256),
		cap:     capacity,
	}
}

// Append records one interaction, evicting the oldest quarter of the
// log when the capacity is reached.
func (l *InteractionLog) Append(i models.Interaction) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.entries) >= l.cap {
		keepFrom := l.cap / 4
		l.entries = append(l.entries[:0], l.entries[keepFrom:]...)
	}
	l.entries = append(l.entries, i)
}

// Len returns the number of logged interactions.
func (l *InteractionLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Snapshot returns a copy of the full log for a refresh scan.
func (l *InteractionLog) Snapshot() []models.Interaction {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]models.Interaction, len(l.entries))
	copy(out, l.entries)
	return out
}

// ByUser returns the user's interactions, oldest first.
func (l *InteractionLog) ByUser(userID string) []models.Interaction {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []models.Interaction
	for _, e := range l.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out
}

// Since returns interactions at or after the cutoff, oldest first.
func (l *InteractionLog) Since(cutoff time.Time) []models.Interaction {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []models.Interaction
	for _, e := range l.entries {
		if !e.Timestamp.Before(cutoff) {
			out = append(out, e)
		}
	}
	return out
}

// seenItems returns the set of item IDs the user has already
// interacted with, used to keep known items out of their lists.
func (l *InteractionLog) seenItems(userID string, itemType models.ItemType) map[string]struct{} {
	l.mu.RLock()
	defer l.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, e := range l.entries {
		if e.UserID == userID && e.ItemType == itemType {
			seen[e.ItemID] = struct{}{}
		}
	}
	return seen
}
