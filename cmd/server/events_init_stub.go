// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

//go:build !nats

package main

import (
	"github.com/tomtom215/conexus/internal/config"
	"github.com/tomtom215/conexus/internal/events"
	"github.com/tomtom215/conexus/internal/logging"
)

// EventsComponents bundles the event publisher. Builds without the nats
// tag never carry an embedded server.
type EventsComponents struct {
	// Publisher is the configured event backend. Never nil after a
	// successful initEvents.
	Publisher events.Publisher
}

// initEvents builds the event publisher. The nats backend requires a
// binary built with -tags nats; without it the channel backend is used
// and a warning is logged, so a misconfigured deployment still serves
// traffic.
func initEvents(cfg *config.Config) (*EventsComponents, error) {
	eventsCfg := cfg.Events
	if eventsCfg.Backend == "nats" {
		logging.Warn().Msg("CONEXUS_EVENTS_BACKEND=nats but NATS support not compiled (build with -tags nats), using channel backend")
		eventsCfg.Backend = "channel"
	}

	pub, err := events.NewPublisher(&eventsCfg)
	if err != nil {
		return nil, err
	}
	return &EventsComponents{Publisher: pub}, nil
}

// Close shuts down the publisher.
func (c *EventsComponents) Close() error {
	if c.Publisher != nil {
		return c.Publisher.Close()
	}
	return nil
}
