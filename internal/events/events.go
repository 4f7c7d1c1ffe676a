// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/conexus/internal/models"
)

// SchemaVersion is the current event schema version.
// Increment this when making breaking changes to event payloads.
const SchemaVersion = 1

// Topics for the event boundary. Downstream consumers (analytics,
// notification fan-out, audit sinks) subscribe by topic.
const (
	// TopicMatchCreated carries one event per persisted match result.
	TopicMatchCreated = "match.created"

	// TopicRecommendationGenerated carries one event per recommendation
	// response served, cache hits included.
	TopicRecommendationGenerated = "recommendation.generated"

	// TopicInteractionTracked carries one event per recorded
	// user-item interaction.
	TopicInteractionTracked = "match.interaction.tracked"
)

// Event is implemented by every payload that crosses the boundary.
type Event interface {
	// Topic returns the subject this event publishes to.
	Topic() string

	// ID returns the unique event ID used for deduplication.
	ID() string

	// Validate checks required fields before serialization.
	Validate() error
}

// Header carries the fields shared by all event payloads.
type Header struct {
	// SchemaVersion tracks the payload format version.
	// Consumers should tolerate older versions.
	SchemaVersion int `json:"schema_version,omitempty"`

	EventID   string    `json:"event_id"`
	Timestamp time.Time `json:"timestamp"`
}

// NewHeader stamps a fresh header with a UUID and a UTC timestamp.
func NewHeader() Header {
	return Header{
		SchemaVersion: SchemaVersion,
		EventID:       uuid.New().String(),
		Timestamp:     time.Now().UTC(),
	}
}

// ID returns the unique event ID.
func (h Header) ID() string {
	return h.EventID
}

// EnsureSchemaVersion sets the schema version if a producer left it zero.
func (h *Header) EnsureSchemaVersion() {
	if h.SchemaVersion == 0 {
		h.SchemaVersion = SchemaVersion
	}
}

func (h Header) validateHeader() error {
	if h.EventID == "" {
		return models.NewValidationError("event_id", "is required")
	}
	if h.Timestamp.IsZero() {
		return models.NewValidationError("timestamp", "is required")
	}
	return nil
}

// MatchCreated is emitted after a match result is persisted.
type MatchCreated struct {
	Header

	MatchID     string  `json:"match_id"`
	CandidateID string  `json:"candidate_id"`
	JobID       string  `json:"job_id"`
	Score       float64 `json:"score"`
	Confidence  float64 `json:"confidence"`
}

// NewMatchCreated builds the event for one persisted match result.
func NewMatchCreated(m *models.MatchResult) *MatchCreated {
	return &MatchCreated{
		Header:      NewHeader(),
		MatchID:     m.ID.String(),
		CandidateID: m.CandidateID,
		JobID:       m.JobID,
		Score:       m.Score,
		Confidence:  m.Confidence,
	}
}

// Topic returns the subject for match creation events.
func (e *MatchCreated) Topic() string {
	return TopicMatchCreated
}

// Validate checks required fields.
func (e *MatchCreated) Validate() error {
	if err := e.validateHeader(); err != nil {
		return err
	}
	if e.MatchID == "" {
		return models.NewValidationError("match_id", "is required")
	}
	if e.CandidateID == "" {
		return models.NewValidationError("candidate_id", "is required")
	}
	if e.JobID == "" {
		return models.NewValidationError("job_id", "is required")
	}
	return nil
}

// RecommendationGenerated is emitted after a recommendation response
// is served, whether it was computed or answered from cache.
type RecommendationGenerated struct {
	Header

	UserID     string   `json:"user_id"`
	ItemType   string   `json:"item_type"`
	Count      int      `json:"count"`
	Algorithms []string `json:"algorithms,omitempty"`
	CacheHit   bool     `json:"cache_hit"`
	DurationMS int64    `json:"duration_ms"`
}

// NewRecommendationGenerated builds the event for one served response.
func NewRecommendationGenerated(userID string, itemType models.ItemType, count int, algorithms []string, cacheHit bool, duration time.Duration) *RecommendationGenerated {
	return &RecommendationGenerated{
		Header:     NewHeader(),
		UserID:     userID,
		ItemType:   string(itemType),
		Count:      count,
		Algorithms: algorithms,
		CacheHit:   cacheHit,
		DurationMS: duration.Milliseconds(),
	}
}

// Topic returns the subject for recommendation events.
func (e *RecommendationGenerated) Topic() string {
	return TopicRecommendationGenerated
}

// Validate checks required fields.
func (e *RecommendationGenerated) Validate() error {
	if err := e.validateHeader(); err != nil {
		return err
	}
	if e.UserID == "" {
		return models.NewValidationError("user_id", "is required")
	}
	if e.ItemType == "" {
		return models.NewValidationError("item_type", "is required")
	}
	return nil
}

// InteractionTracked is emitted after a user-item interaction is
// recorded for recommendation feedback.
type InteractionTracked struct {
	Header

	UserID          string  `json:"user_id"`
	ItemID          string  `json:"item_id"`
	ItemType        string  `json:"item_type"`
	InteractionType string  `json:"interaction_type"`
	Weight          float64 `json:"weight"`
	Rating          *int    `json:"rating,omitempty"`
}

// NewInteractionTracked builds the event for one recorded interaction.
func NewInteractionTracked(i *models.Interaction) *InteractionTracked {
	return &InteractionTracked{
		Header:          NewHeader(),
		UserID:          i.UserID,
		ItemID:          i.ItemID,
		ItemType:        string(i.ItemType),
		InteractionType: string(i.Type),
		Weight:          i.Type.Weight(),
		Rating:          i.Rating,
	}
}

// Topic returns the subject for interaction events.
func (e *InteractionTracked) Topic() string {
	return TopicInteractionTracked
}

// Validate checks required fields.
func (e *InteractionTracked) Validate() error {
	if err := e.validateHeader(); err != nil {
		return err
	}
	if e.UserID == "" {
		return models.NewValidationError("user_id", "is required")
	}
	if e.ItemID == "" {
		return models.NewValidationError("item_id", "is required")
	}
	if e.InteractionType == "" {
		return models.NewValidationError("interaction_type", "is required")
	}
	return nil
}
