// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package recommend

import (
	"context"

	"github.com/tomtom215/conexus/internal/models"
)

// Strategy is one recommendation source. Implementations must be safe
// for concurrent use: Generate runs under fan-out while Refresh may be
// rebuilding state on the refresh schedule.
type Strategy interface {
	// Name returns the strategy identifier used in allow-lists,
	// explanations, and metrics.
	Name() models.RecommendationAlgorithm

	// Generate returns up to count recommendations for the anchor user.
	// Filters narrow the candidate pool and pass through to any backing
	// services. Scores are on the [0,1] scale.
	Generate(ctx context.Context, anchorID string, itemType models.ItemType,
		count int, filters map[string]string) ([]models.Recommendation, error)

	// Refresh rebuilds the strategy's internal model from accumulated
	// interaction data. Called at startup and on the refresh schedule;
	// never on the request path.
	Refresh(ctx context.Context) error

	// Weight returns the strategy's hybrid-combine weight.
	Weight() float64
}

// Compile-time interface checks.
var (
	_ Strategy = (*Collaborative)(nil)
	_ Strategy = (*Similarity)(nil)
	_ Strategy = (*Trending)(nil)
)
