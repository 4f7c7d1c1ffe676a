// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package models

import (
	"time"
)

// ItemType is the kind of entity a recommendation points at.
type ItemType string

const (
	// ItemTypeJob recommends job postings to a candidate.
	ItemTypeJob ItemType = "job"
	// ItemTypeCandidate recommends candidates to an employer.
	ItemTypeCandidate ItemType = "candidate"
)

// ValidItemTypes contains all valid item types.
var ValidItemTypes = []ItemType{ItemTypeJob, ItemTypeCandidate}

// IsValidItemType checks if an item type is valid.
func IsValidItemType(t ItemType) bool {
	for _, valid := range ValidItemTypes {
		if t == valid {
			return true
		}
	}
	return false
}

// RecommendationAlgorithm identifies the strategy that produced a
// recommendation.
type RecommendationAlgorithm string

const (
	// AlgorithmCollaborative recommends from co-interaction patterns.
	AlgorithmCollaborative RecommendationAlgorithm = "collaborative"
	// AlgorithmSimilarity recommends from content/profile similarity.
	AlgorithmSimilarity RecommendationAlgorithm = "similarity"
	// AlgorithmTrending recommends from recent interaction velocity.
	AlgorithmTrending RecommendationAlgorithm = "trending"
	// AlgorithmHybrid blends all registered strategies.
	AlgorithmHybrid RecommendationAlgorithm = "hybrid"
)

// ValidRecommendationAlgorithms contains all valid algorithms.
var ValidRecommendationAlgorithms = []RecommendationAlgorithm{
	AlgorithmCollaborative,
	AlgorithmSimilarity,
	AlgorithmTrending,
	AlgorithmHybrid,
}

// IsValidRecommendationAlgorithm checks if an algorithm name is valid.
func IsValidRecommendationAlgorithm(a RecommendationAlgorithm) bool {
	for _, valid := range ValidRecommendationAlgorithms {
		if a == valid {
			return true
		}
	}
	return false
}

// Recommendation is one ranked item in a recommendation list.
// Ephemeral: generated per request and cached, never persisted.
type Recommendation struct {
	ItemID   string   `json:"item_id"`
	ItemType ItemType `json:"item_type"`

	// Score is the blended relevance score in [0,1].
	Score float64 `json:"score"`

	// Confidence reflects strategy agreement in [0,1]. For hybrid
	// results it scales with how many strategies contributed.
	Confidence float64 `json:"confidence"`

	Algorithm   RecommendationAlgorithm `json:"algorithm"`
	Explanation string                  `json:"explanation,omitempty"`

	// Category buckets the item for the diversity pass
	// (job category, candidate discipline).
	Category string `json:"category,omitempty"`
}

// RecommendationRequest parameterizes one recommendation call.
type RecommendationRequest struct {
	// Count is the number of items requested.
	Count int `json:"count"`

	// Strategy selects a single strategy, or AlgorithmHybrid (default)
	// to blend all of them.
	Strategy RecommendationAlgorithm `json:"strategy,omitempty"`

	// Filters are passed to strategies to narrow their candidate pools.
	Filters map[string]string `json:"filters,omitempty"`

	// MinScore / MinConfidence drop items below these [0,1] floors.
	// Nil uses the engine defaults.
	MinScore      *float64 `json:"min_score,omitempty"`
	MinConfidence *float64 `json:"min_confidence,omitempty"`

	// AllowAlgorithms restricts which strategies may appear in the
	// final list. Empty permits all.
	AllowAlgorithms []RecommendationAlgorithm `json:"allow_algorithms,omitempty"`
}

// RecommendationResult is the response of one recommendation call.
type RecommendationResult struct {
	AnchorID        string                  `json:"anchor_id"`
	ItemType        ItemType                `json:"item_type"`
	Strategy        RecommendationAlgorithm `json:"strategy"`
	Recommendations []Recommendation        `json:"recommendations"`
	GeneratedAt     time.Time               `json:"generated_at"`
	Cached          bool                    `json:"cached"`
}

// InteractionType classifies user actions on recommended items.
type InteractionType string

const (
	// InteractionView records an item detail view.
	InteractionView InteractionType = "view"
	// InteractionSave records a bookmark/save.
	InteractionSave InteractionType = "save"
	// InteractionApply records an application submission.
	InteractionApply InteractionType = "apply"
	// InteractionDismiss records an explicit dismissal.
	InteractionDismiss InteractionType = "dismiss"
)

// ValidInteractionTypes contains all valid interaction types.
var ValidInteractionTypes = []InteractionType{
	InteractionView,
	InteractionSave,
	InteractionApply,
	InteractionDismiss,
}

// IsValidInteractionType checks if an interaction type is valid.
func IsValidInteractionType(t InteractionType) bool {
	for _, valid := range ValidInteractionTypes {
		if t == valid {
			return true
		}
	}
	return false
}

// Weight returns the implicit-feedback weight of the interaction.
// Stronger commitment signals weigh more; dismissal is negative.
func (t InteractionType) Weight() float64 {
	switch t {
	case InteractionApply:
		return 1.0
	case InteractionSave:
		return 0.6
	case InteractionView:
		return 0.2
	case InteractionDismiss:
		return -0.5
	default:
		return 0.0
	}
}

// Interaction is one recorded user action on an item. Interactions feed
// the collaborative model's log and the trending counters.
type Interaction struct {
	UserID   string          `json:"user_id"`
	ItemID   string          `json:"item_id"`
	ItemType ItemType        `json:"item_type"`
	Type     InteractionType `json:"type"`

	// Rating is optional explicit feedback in [1,5].
	Rating *int `json:"rating,omitempty"`

	Timestamp time.Time `json:"timestamp"`
}
