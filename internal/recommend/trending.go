// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package recommend

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/tomtom215/conexus/internal/models"
)

const (
	// trendingWindow is how far back interactions count toward
	// trending velocity.
	trendingWindow = 7 * 24 * time.Hour

	// trendingHalfLife halves an interaction's contribution every
	// elapsed period, so yesterday's spike outranks last week's.
	trendingHalfLife = 24 * time.Hour
)

// trendEntry is one item's accumulated velocity.
type trendEntry struct {
	score        float64
	interactions int
}

// Trending recommends items with high recent interaction velocity.
// Velocity is the decay-weighted sum of positive interaction weights
// inside the trailing window, rebuilt on Refresh.
type Trending struct {
	log     *InteractionLog
	catalog *Catalog
	weight  float64

	// now supplies the decay reference time. Injected for
	// deterministic tests.
	now func() time.Time

	mu     sync.RWMutex
	trends map[models.ItemType]map[string]trendEntry
}

// TrendingOption configures the trending strategy.
type TrendingOption func(*Trending)

// WithTrendingClock overrides the reference-time source.
func WithTrendingClock(now func() time.Time) TrendingOption {
	return func(t *Trending) {
		t.now = now
	}
}

// NewTrending creates the interaction-velocity strategy over the
// shared interaction log.
func NewTrending(log *InteractionLog, catalog *Catalog, weight float64, opts ...TrendingOption) *Trending {
	t := &Trending{
		log:     log,
		catalog: catalog,
		weight:  weight,
		now:     time.Now,
		trends:  make(map[models.ItemType]map[string]trendEntry),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Name returns the strategy identifier.
func (t *Trending) Name() models.RecommendationAlgorithm {
	return models.AlgorithmTrending
}

// Weight returns the hybrid-combine weight.
func (t *Trending) Weight() float64 {
	return t.weight
}

// Refresh rebuilds the velocity counters from the trailing interaction
// window. Each positive interaction contributes its weight scaled by
// 2^(-age/halfLife); the per-type scores are then normalized to [0,1].
func (t *Trending) Refresh(_ context.Context) error {
	now := t.now().UTC()
	entries := t.log.Since(now.Add(-trendingWindow))

	raw := make(map[models.ItemType]map[string]float64)
	counts := make(map[models.ItemType]map[string]int)
	for _, e := range entries {
		w := interactionWeight(&e)
		if w <= 0 {
			continue
		}
		age := now.Sub(e.Timestamp.UTC())
		if age < 0 {
			age = 0
		}
		decay := math.Exp2(-age.Hours() / trendingHalfLife.Hours())

		scores, ok := raw[e.ItemType]
		if !ok {
			scores = make(map[string]float64)
			raw[e.ItemType] = scores
			counts[e.ItemType] = make(map[string]int)
		}
		scores[e.ItemID] += w * decay
		counts[e.ItemType][e.ItemID]++
	}

	trends := make(map[models.ItemType]map[string]trendEntry, len(raw))
	for itemType, scores := range raw {
		normalizeScores(scores)
		typed := make(map[string]trendEntry, len(scores))
		for id, score := range scores {
			typed[id] = trendEntry{score: score, interactions: counts[itemType][id]}
		}
		trends[itemType] = typed
	}

	t.mu.Lock()
	t.trends = trends
	t.mu.Unlock()
	return nil
}

// Generate returns the top trending items the anchor hasn't seen.
func (t *Trending) Generate(_ context.Context, anchorID string, itemType models.ItemType,
	count int, filters map[string]string) ([]models.Recommendation, error) {
	seen := t.log.seenItems(anchorID, itemType)

	t.mu.RLock()
	scores := make(map[string]float64)
	interactions := make(map[string]int)
	for id, entry := range t.trends[itemType] {
		if _, ok := seen[id]; ok {
			continue
		}
		if id == anchorID {
			continue
		}
		scores[id] = entry.score
		interactions[id] = entry.interactions
	}
	t.mu.RUnlock()

	applyCategoryFilter(scores, itemType, t.catalog, filters)
	if len(scores) == 0 {
		return nil, nil
	}

	recs := make([]models.Recommendation, 0, len(scores))
	for itemID, score := range scores {
		n := interactions[itemID]
		recs = append(recs, models.Recommendation{
			ItemID:     itemID,
			ItemType:   itemType,
			Score:      score,
			Confidence: float64(n) / float64(n+3),
			Algorithm:  models.AlgorithmTrending,
			Explanation: fmt.Sprintf("Rising engagement: %d interaction(s) in the last %d days",
				n, int(trendingWindow.Hours()/24)),
			Category: t.catalog.Category(itemType, itemID),
		})
	}
	sortRecommendations(recs)
	if len(recs) > count {
		recs = recs[:count]
	}
	return recs, nil
}
