// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

//go:build nats

package main

import (
	"context"
	"fmt"
	"time"

	natsgo "github.com/nats-io/nats.go"

	"github.com/tomtom215/conexus/internal/config"
	"github.com/tomtom215/conexus/internal/events"
	"github.com/tomtom215/conexus/internal/logging"
)

// streamProvisionTimeout bounds JetStream stream creation at startup.
const streamProvisionTimeout = 30 * time.Second

// EventsComponents bundles the event publisher with the embedded NATS
// server backing it, when one is configured.
type EventsComponents struct {
	// Publisher is the configured event backend. Never nil after a
	// successful initEvents.
	Publisher events.Publisher

	server *events.EmbeddedServer
}

// initEvents builds the configured event publisher.
//
// For the nats backend this optionally starts the embedded server,
// then provisions the JetStream stream over a bootstrap connection
// before the publisher is handed out. Provisioning up front means the
// first published event cannot race stream creation.
func initEvents(cfg *config.Config) (*EventsComponents, error) {
	if cfg.Events.Backend != "nats" {
		pub, err := events.NewPublisher(&cfg.Events)
		if err != nil {
			return nil, err
		}
		return &EventsComponents{Publisher: pub}, nil
	}

	c := &EventsComponents{}

	if cfg.Events.NATS.Embedded {
		server, err := events.NewEmbeddedServer(cfg.Events.NATS.StoreDir)
		if err != nil {
			return nil, fmt.Errorf("start embedded NATS server: %w", err)
		}
		c.server = server
		// The publisher and stream provisioning below read the URL from
		// config, so point it at the in-process server.
		cfg.Events.NATS.URL = server.ClientURL()
		logging.Info().Str("url", cfg.Events.NATS.URL).Msg("Embedded NATS server started")
	} else {
		logging.Info().Str("url", cfg.Events.NATS.URL).Msg("Using external NATS server")
	}

	if err := c.provisionStream(&cfg.Events.NATS); err != nil {
		c.shutdownServer()
		return nil, err
	}

	pub, err := events.NewPublisher(&cfg.Events)
	if err != nil {
		c.shutdownServer()
		return nil, err
	}
	c.Publisher = pub

	logging.Info().
		Str("stream", cfg.Events.NATS.StreamName).
		Bool("embedded", cfg.Events.NATS.Embedded).
		Msg("NATS event publishing initialized")
	return c, nil
}

// provisionStream creates or updates the JetStream stream over a
// short-lived bootstrap connection. The publisher opens its own
// connection afterwards.
func (c *EventsComponents) provisionStream(natsCfg *config.NATSConfig) error {
	nc, err := natsgo.Connect(natsCfg.URL,
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(5),
		natsgo.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return fmt.Errorf("connect to NATS at %s: %w", natsCfg.URL, err)
	}
	defer nc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), streamProvisionTimeout)
	defer cancel()

	if err := events.EnsureStream(ctx, nc, natsCfg); err != nil {
		return fmt.Errorf("provision stream %s: %w", natsCfg.StreamName, err)
	}
	return nil
}

// shutdownServer stops the embedded server, if one was started.
func (c *EventsComponents) shutdownServer() {
	if c.server != nil {
		c.server.Shutdown()
		c.server = nil
	}
}

// Close shuts down the publisher and then the embedded server. Publisher
// first: in-flight publishes should drain to a live server.
func (c *EventsComponents) Close() error {
	var err error
	if c.Publisher != nil {
		err = c.Publisher.Close()
	}
	c.shutdownServer()
	return err
}
