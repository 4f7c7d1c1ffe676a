// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package events

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/conexus/internal/metrics"
)

// ChannelPublisher is the default in-process backend over Watermill's
// gochannel Pub/Sub. Messages reach subscribers within the same
// process; nothing leaves the binary.
type ChannelPublisher struct {
	pubsub *gochannel.GoChannel

	mu     sync.RWMutex
	closed bool
}

// Compile-time interface check.
var _ Publisher = (*ChannelPublisher)(nil)

// NewChannelPublisher creates the in-process publisher.
func NewChannelPublisher() *ChannelPublisher {
	return &ChannelPublisher{
		pubsub: gochannel.NewGoChannel(gochannel.Config{
			// Buffer absorbs bursts from batch matching without
			// blocking the publishing goroutine.
			OutputChannelBuffer: 256,
		}, newWatermillLogger()),
	}
}

// Publish serializes the event and delivers it to in-process subscribers.
func (p *ChannelPublisher) Publish(_ context.Context, topic string, event interface{}) error {
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

	err = p.pubsub.Publish(topic, msg)
	metrics.RecordEventPublish(topic, err)
	return err
}

// Subscribe returns a message channel for in-process consumers.
// The channel closes when ctx is canceled or the publisher closes.
func (p *ChannelPublisher) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return p.pubsub.Subscribe(ctx, topic)
}

// Close shuts down the Pub/Sub and closes all subscriber channels.
func (p *ChannelPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	return p.pubsub.Close()
}

// toMessage converts an event payload into a Watermill message.
// Typed events are validated before serialization; anything else is
// marshaled as-is with a generated message UUID.
func toMessage(event interface{}) (*message.Message, error) {
	if e, ok := event.(Event); ok {
		data, err := Serialize(e)
		if err != nil {
			return nil, err
		}
		return message.NewMessage(e.ID(), data), nil
	}

	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return message.NewMessage(uuid.New().String(), data), nil
}
