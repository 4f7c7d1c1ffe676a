// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package events

import (
	"context"
	"fmt"

	"github.com/tomtom215/conexus/internal/config"
	"github.com/tomtom215/conexus/internal/logging"
)

// Publisher is the outbound event boundary. The event is serialized by
// the implementation; payloads implementing Event are validated first.
type Publisher interface {
	Publish(ctx context.Context, topic string, event interface{}) error
	Close() error
}

// NewPublisher builds the configured publisher backend.
//
// Backend "channel" (the default) is always available. Backend "nats"
// requires a binary built with -tags=nats; without it the constructor
// returns ErrNATSNotBuilt.
func NewPublisher(cfg *config.EventsConfig) (Publisher, error) {
	switch cfg.Backend {
	case "", "channel":
		return NewChannelPublisher(), nil
	case "nats":
		p, err := NewNATSPublisher(&cfg.NATS)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown events backend %q (expected channel or nats)", cfg.Backend)
	}
}

// PublishAsync publishes in the background and never fails the caller.
// The context detaches from the request so an HTTP cancel does not drop
// an event mid-flight; request-scoped log fields survive the detach.
func PublishAsync(ctx context.Context, p Publisher, event Event) {
	if p == nil || event == nil {
		return
	}

	ctx = context.WithoutCancel(ctx)
	go func() {
		if err := p.Publish(ctx, event.Topic(), event); err != nil {
			logging.Warn().
				Err(err).
				Str("topic", event.Topic()).
				Str("event_id", event.ID()).
				Msg("Event publish failed")
		}
	}()
}
