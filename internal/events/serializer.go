// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package events

import (
	"fmt"

	"github.com/goccy/go-json"
)

// Serialize validates an event and encodes it to JSON.
func Serialize(event Event) ([]byte, error) {
	if err := event.Validate(); err != nil {
		return nil, fmt.Errorf("validate event: %w", err)
	}

	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}

	return data, nil
}

// Deserialize decodes a JSON payload into the given event type.
// Consumers use the topic to pick T.
func Deserialize[T any](data []byte) (*T, error) {
	var event T
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("unmarshal event: %w", err)
	}
	return &event, nil
}
