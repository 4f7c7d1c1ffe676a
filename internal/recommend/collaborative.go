// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package recommend

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/tomtom215/conexus/internal/models"
)

// maxRelatedPerItem caps the co-occurrence fan-out stored per item.
// Memory stays bounded no matter how hot an item gets.
const maxRelatedPerItem = 50

// Collaborative recommends items that co-occur with the anchor user's
// own interaction history. The co-occurrence index is rebuilt from the
// interaction log on Refresh; Generate only reads it.
type Collaborative struct {
	log     *InteractionLog
	catalog *Catalog
	weight  float64

	mu sync.RWMutex
	// related[itemType][itemID][otherID] accumulates the pairwise
	// co-interaction strength observed across users.
	related map[models.ItemType]map[string]map[string]float64
}

// NewCollaborative creates the co-interaction strategy over the shared
// interaction log.
func NewCollaborative(log *InteractionLog, catalog *Catalog, weight float64) *Collaborative {
	return &Collaborative{
		log:     log,
		catalog: catalog,
		weight:  weight,
		related: make(map[models.ItemType]map[string]map[string]float64),
	}
}

// Name returns the strategy identifier.
func (c *Collaborative) Name() models.RecommendationAlgorithm {
	return models.AlgorithmCollaborative
}

// Weight returns the hybrid-combine weight.
func (c *Collaborative) Weight() float64 {
	return c.weight
}

// Refresh rebuilds the co-occurrence index from the interaction log.
// Two items co-occur when one user interacted positively with both;
// the pair strength is the mean of the two interaction weights, summed
// over users.
func (c *Collaborative) Refresh(_ context.Context) error {
	entries := c.log.Snapshot()

	// Strongest positive weight per (user, type, item).
	byUser := make(map[string]map[models.ItemType]map[string]float64)
	for _, e := range entries {
		w := interactionWeight(&e)
		if w <= 0 {
			continue
		}
		types, ok := byUser[e.UserID]
		if !ok {
			types = make(map[models.ItemType]map[string]float64)
			byUser[e.UserID] = types
		}
		items, ok := types[e.ItemType]
		if !ok {
			items = make(map[string]float64)
			types[e.ItemType] = items
		}
		if w > items[e.ItemID] {
			items[e.ItemID] = w
		}
	}

	related := make(map[models.ItemType]map[string]map[string]float64)
	for _, types := range byUser {
		for itemType, items := range types {
			index, ok := related[itemType]
			if !ok {
				index = make(map[string]map[string]float64)
				related[itemType] = index
			}
			ids := make([]string, 0, len(items))
			for id := range items {
				ids = append(ids, id)
			}
			for i := 0; i < len(ids); i++ {
				for j := i + 1; j < len(ids); j++ {
					a, b := ids[i], ids[j]
					strength := (items[a] + items[b]) / 2
					addPairStrength(index, a, b, strength)
					addPairStrength(index, b, a, strength)
				}
			}
		}
	}

	for _, index := range related {
		for id, neighbors := range index {
			index[id] = pruneTop(neighbors, maxRelatedPerItem)
		}
	}

	c.mu.Lock()
	c.related = related
	c.mu.Unlock()
	return nil
}

// Generate scores unseen items by summing co-occurrence strength
// against the anchor's own history, then min-max normalizes to [0,1].
func (c *Collaborative) Generate(_ context.Context, anchorID string, itemType models.ItemType,
	count int, filters map[string]string) ([]models.Recommendation, error) {
	history := positiveHistory(c.log.ByUser(anchorID), itemType)
	if len(history) == 0 {
		return nil, nil
	}
	seen := c.log.seenItems(anchorID, itemType)

	c.mu.RLock()
	index := c.related[itemType]
	scores := make(map[string]float64)
	breadth := make(map[string]int)
	for itemID, historyWeight := range history {
		for otherID, strength := range index[itemID] {
			if _, ok := seen[otherID]; ok {
				continue
			}
			if otherID == anchorID {
				continue
			}
			scores[otherID] += historyWeight * strength
			breadth[otherID]++
		}
	}
	c.mu.RUnlock()

	applyCategoryFilter(scores, itemType, c.catalog, filters)
	if len(scores) == 0 {
		return nil, nil
	}
	normalizeScores(scores)

	recs := make([]models.Recommendation, 0, len(scores))
	for itemID, score := range scores {
		supporters := breadth[itemID]
		recs = append(recs, models.Recommendation{
			ItemID:     itemID,
			ItemType:   itemType,
			Score:      score,
			Confidence: float64(supporters) / float64(supporters+1),
			Algorithm:  models.AlgorithmCollaborative,
			Explanation: fmt.Sprintf("Co-interacted with %d item(s) in your history",
				supporters),
			Category: c.catalog.Category(itemType, itemID),
		})
	}
	sortRecommendations(recs)
	if len(recs) > count {
		recs = recs[:count]
	}
	return recs, nil
}

// positiveHistory reduces a user's interactions to their strongest
// positive weight per item of the given type.
func positiveHistory(entries []models.Interaction, itemType models.ItemType) map[string]float64 {
	history := make(map[string]float64)
	for _, e := range entries {
		if e.ItemType != itemType {
			continue
		}
		w := interactionWeight(&e)
		if w <= 0 {
			continue
		}
		if w > history[e.ItemID] {
			history[e.ItemID] = w
		}
	}
	return history
}

// interactionWeight is the implicit-feedback weight of one interaction,
// scaled by the explicit rating when one was given (3 is neutral).
func interactionWeight(e *models.Interaction) float64 {
	w := e.Type.Weight()
	if e.Rating != nil {
		w *= float64(*e.Rating) / 3.0
	}
	return w
}

func addPairStrength(index map[string]map[string]float64, from, to string, strength float64) {
	neighbors, ok := index[from]
	if !ok {
		neighbors = make(map[string]float64)
		index[from] = neighbors
	}
	neighbors[to] += strength
}

// pruneTop keeps only the k strongest neighbors.
func pruneTop(neighbors map[string]float64, k int) map[string]float64 {
	if len(neighbors) <= k {
		return neighbors
	}
	type pair struct {
		id       string
		strength float64
	}
	pairs := make([]pair, 0, len(neighbors))
	for id, strength := range neighbors {
		pairs = append(pairs, pair{id, strength})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].strength != pairs[j].strength {
			return pairs[i].strength > pairs[j].strength
		}
		return pairs[i].id < pairs[j].id
	})
	pruned := make(map[string]float64, k)
	for _, p := range pairs[:k] {
		pruned[p.id] = p.strength
	}
	return pruned
}

// normalizeScores min-max normalizes scores into [0,1] in place.
// All-equal scores collapse to 0.5.
func normalizeScores(scores map[string]float64) {
	if len(scores) == 0 {
		return
	}
	first := true
	var minScore, maxScore float64
	for _, s := range scores {
		if first {
			minScore, maxScore = s, s
			first = false
			continue
		}
		if s < minScore {
			minScore = s
		}
		if s > maxScore {
			maxScore = s
		}
	}
	span := maxScore - minScore
	if span == 0 {
		for id := range scores {
			scores[id] = 0.5
		}
		return
	}
	for id, s := range scores {
		scores[id] = (s - minScore) / span
	}
}

// applyCategoryFilter drops items outside the requested category, when
// the filters name one.
func applyCategoryFilter(scores map[string]float64, itemType models.ItemType,
	catalog *Catalog, filters map[string]string) {
	want, ok := filters["category"]
	if !ok || want == "" {
		return
	}
	for id := range scores {
		if !strings.EqualFold(catalog.Category(itemType, id), want) {
			delete(scores, id)
		}
	}
}

// sortRecommendations orders by score descending with an item-ID
// tiebreak so equal scores rank deterministically.
func sortRecommendations(recs []models.Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Score != recs[j].Score {
			return recs[i].Score > recs[j].Score
		}
		return recs[i].ItemID < recs[j].ItemID
	})
}
