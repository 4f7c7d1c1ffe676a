// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

//go:build !nats

package events

import (
	"errors"
	"testing"

	"github.com/tomtom215/conexus/internal/config"
)

func TestNewNATSPublisher_WithoutTag(t *testing.T) {
	_, err := NewNATSPublisher(&config.NATSConfig{URL: "nats://127.0.0.1:4222"})
	if !errors.Is(err, ErrNATSNotBuilt) {
		t.Errorf("got %v, want ErrNATSNotBuilt", err)
	}
}

func TestNewPublisher_NATSBackendWithoutTag(t *testing.T) {
	_, err := NewPublisher(&config.EventsConfig{Backend: "nats"})
	if !errors.Is(err, ErrNATSNotBuilt) {
		t.Errorf("got %v, want ErrNATSNotBuilt", err)
	}
}
