// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

//go:build nats

package events

import (
	"context"
	"fmt"
	"sync"
	"time"

	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	natsserver "github.com/nats-io/nats-server/v2/server"
	natsgo "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/conexus/internal/config"
	"github.com/tomtom215/conexus/internal/logging"
	"github.com/tomtom215/conexus/internal/metrics"
)

// natsBreakerName labels the publish circuit breaker in metrics.
const natsBreakerName = "nats-publish"

// NATSPublisher publishes events to NATS JetStream with reconnect
// handling and circuit breaker protection.
type NATSPublisher struct {
	publisher message.Publisher
	breaker   *gobreaker.CircuitBreaker[interface{}]

	mu     sync.RWMutex
	closed bool
}

// Compile-time interface check.
var _ Publisher = (*NATSPublisher)(nil)

// NewNATSPublisher creates a Watermill NATS JetStream publisher.
// Message UUIDs become Nats-Msg-Id headers so JetStream deduplicates
// redelivered events.
func NewNATSPublisher(cfg *config.NATSConfig) (*NATSPublisher, error) {
	logger := newWatermillLogger()

	natsOpts := []natsgo.Option{
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(-1),
		natsgo.ReconnectWait(2 * time.Second),
		natsgo.DisconnectErrHandler(func(_ *natsgo.Conn, err error) {
			if err != nil {
				logging.Warn().Err(err).Msg("NATS disconnected")
			}
		}),
		natsgo.ReconnectHandler(func(nc *natsgo.Conn) {
			logging.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	}

	wmConfig := wmNats.PublisherConfig{
		URL:         cfg.URL,
		NatsOptions: natsOpts,
		Marshaler:   &wmNats.NATSMarshaler{},
		JetStream: wmNats.JetStreamConfig{
			Disabled:      false,
			AutoProvision: false, // EnsureStream pre-creates the stream
			TrackMsgId:    true,
			PublishOptions: []natsgo.PubOpt{
				natsgo.RetryAttempts(3),
				natsgo.RetryWait(100 * time.Millisecond),
			},
		},
	}

	pub, err := wmNats.NewPublisher(wmConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("create watermill publisher: %w", err)
	}

	return &NATSPublisher{
		publisher: pub,
		breaker:   newPublishBreaker(),
	}, nil
}

// newPublishBreaker builds the publish circuit breaker: opens after 5
// consecutive failures, probes again after 30 seconds.
func newPublishBreaker() *gobreaker.CircuitBreaker[interface{}] {
	metrics.CircuitBreakerState.WithLabelValues(natsBreakerName).Set(0)

	return gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        natsBreakerName,
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := breakerState(from), breakerState(to)
			logging.Info().Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] NATS publish state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(breakerStateValue(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})
}

func breakerState(s gobreaker.State) string {
	switch s {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

func breakerStateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// Publish serializes the event and publishes it through the breaker.
func (p *NATSPublisher) Publish(_ context.Context, topic string, event interface{}) error {
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return fmt.Errorf("publisher is closed")
	}
	p.mu.RUnlock()

	msg, err := toMessage(event)
	if err != nil {
		metrics.RecordEventPublish(topic, err)
		return err
	}

	if msg.Metadata.Get(natsgo.MsgIdHdr) == "" {
		msg.Metadata.Set(natsgo.MsgIdHdr, msg.UUID)
	}

	_, err = p.breaker.Execute(func() (interface{}, error) {
		return nil, p.publisher.Publish(topic, msg)
	})
	metrics.RecordEventPublish(topic, err)
	return err
}

// Close shuts down the publisher connection.
func (p *NATSPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	return p.publisher.Close()
}

// EnsureStream creates or updates the JetStream stream that retains
// match events. Subjects cover all three publish topics.
func EnsureStream(ctx context.Context, nc *natsgo.Conn, cfg *config.NATSConfig) error {
	js, err := jetstream.New(nc)
	if err != nil {
		return fmt.Errorf("create JetStream context: %w", err)
	}

	streamCfg := jetstream.StreamConfig{
		Name:       cfg.StreamName,
		Subjects:   []string{"match.>", "recommendation.>"},
		Retention:  jetstream.LimitsPolicy,
		MaxAge:     7 * 24 * time.Hour,
		Duplicates: 2 * time.Minute,
		Storage:    jetstream.FileStorage,
		Discard:    jetstream.DiscardOld,
	}

	if _, err := js.Stream(ctx, cfg.StreamName); err == nil {
		if _, err := js.UpdateStream(ctx, streamCfg); err != nil {
			return fmt.Errorf("update stream: %w", err)
		}
		return nil
	}

	if _, err := js.CreateStream(ctx, streamCfg); err != nil {
		return fmt.Errorf("create stream: %w", err)
	}
	return nil
}

// EmbeddedServer wraps an in-process NATS server for single-binary
// deployments.
type EmbeddedServer struct {
	server    *natsserver.Server
	clientURL string
}

// NewEmbeddedServer starts an in-process NATS server with JetStream.
// Returns an error if the server is not ready within 30 seconds.
func NewEmbeddedServer(storeDir string) (*EmbeddedServer, error) {
	opts := &natsserver.Options{
		ServerName: "conexus-events",
		Host:       "127.0.0.1",
		Port:       -1, // random free port
		JetStream:  true,
		StoreDir:   storeDir,
		NoLog:      true,
	}

	ns, err := natsserver.NewServer(opts)
	if err != nil {
		return nil, fmt.Errorf("create NATS server: %w", err)
	}

	go ns.Start()

	if !ns.ReadyForConnections(30 * time.Second) {
		ns.Shutdown()
		return nil, fmt.Errorf("NATS server not ready within timeout")
	}

	return &EmbeddedServer{
		server:    ns,
		clientURL: ns.ClientURL(),
	}, nil
}

// ClientURL returns the connection URL for clients.
func (s *EmbeddedServer) ClientURL() string {
	return s.clientURL
}

// Shutdown stops the server and waits for it to finish.
func (s *EmbeddedServer) Shutdown() {
	s.server.Shutdown()
	s.server.WaitForShutdown()
}

// IsRunning returns server health status.
func (s *EmbeddedServer) IsRunning() bool {
	return s.server.Running()
}
