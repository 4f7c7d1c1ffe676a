// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package recommend

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/tomtom215/conexus/internal/directory"
	"github.com/tomtom215/conexus/internal/models"
)

// catalogFetchLimit bounds the directory scan per item type during a
// catalog refresh.
const catalogFetchLimit = 1000

// Catalog maps item IDs to the category the diversity pass buckets by:
// a job's posting category, a candidate's education field. Rebuilt
// during refresh from directory scans; lookups on the request path hit
// the in-memory index only.
type Catalog struct {
	mu         sync.RWMutex
	categories map[models.ItemType]map[string]string
}

// NewCatalog creates an empty catalog. Lookups return "" until the
// first refresh populates it.
func NewCatalog() *Catalog {
	return &Catalog{
		categories: make(map[models.ItemType]map[string]string),
	}
}

// Category returns the item's category, or "" when the item is unknown
// or uncategorized. Empty categories bucket together downstream.
func (c *Catalog) Category(itemType models.ItemType, itemID string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.categories[itemType][itemID]
}

// Replace swaps in a fresh category index for one item type.
func (c *Catalog) Replace(itemType models.ItemType, categories map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.categories[itemType] = categories
}

// Len returns the number of catalogued items of the given type.
func (c *Catalog) Len(itemType models.ItemType) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.categories[itemType])
}

// refresh rebuilds both item-type indexes from the directory.
func (c *Catalog) refresh(ctx context.Context, dir directory.Service) error {
	jobs, err := dir.SearchJobs(ctx, nil, catalogFetchLimit)
	if err != nil {
		return fmt.Errorf("refreshing job catalog: %w", err)
	}
	jobCategories := make(map[string]string, len(jobs))
	for i := range jobs {
		jobCategories[jobs[i].ID] = strings.ToLower(jobs[i].Category)
	}

	candidates, err := dir.SearchCandidates(ctx, nil, catalogFetchLimit)
	if err != nil {
		return fmt.Errorf("refreshing candidate catalog: %w", err)
	}
	candidateCategories := make(map[string]string, len(candidates))
	for i := range candidates {
		candidateCategories[candidates[i].ID] = candidateCategory(&candidates[i])
	}

	c.Replace(models.ItemTypeJob, jobCategories)
	c.Replace(models.ItemTypeCandidate, candidateCategories)
	return nil
}

// candidateCategory derives a candidate's diversity bucket from their
// most advanced education entry carrying a field of study.
func candidateCategory(p *models.CandidateProfile) string {
	best := ""
	bestRank := -1
	for _, edu := range p.Education {
		if edu.Field == "" {
			continue
		}
		if rank := edu.Degree.Rank(); rank > bestRank {
			best = edu.Field
			bestRank = rank
		}
	}
	return strings.ToLower(best)
}
