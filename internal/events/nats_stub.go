// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

//go:build !nats

package events

import (
	"context"
	"errors"

	"github.com/tomtom215/conexus/internal/config"
)

// ErrNATSNotBuilt is returned when the nats events backend is selected
// in a binary built without -tags=nats.
var ErrNATSNotBuilt = errors.New("NATS publisher not available: build with -tags=nats")

// NATSPublisher is a stub when NATS dependencies are not compiled in.
// Build with -tags=nats to enable JetStream publishing.
type NATSPublisher struct{}

// NewNATSPublisher returns ErrNATSNotBuilt.
func NewNATSPublisher(_ *config.NATSConfig) (*NATSPublisher, error) {
	return nil, ErrNATSNotBuilt
}

// Publish is a stub that returns ErrNATSNotBuilt.
func (p *NATSPublisher) Publish(_ context.Context, _ string, _ interface{}) error {
	return ErrNATSNotBuilt
}

// Close is a no-op stub.
func (p *NATSPublisher) Close() error {
	return nil
}
