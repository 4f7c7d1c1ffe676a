// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

// Package events is the outbound event boundary.
//
// Matching and recommendation flows emit events on three topics:
// match.created, recommendation.generated, and
// match.interaction.tracked. Events are best-effort: a publish failure
// is logged and counted but never fails the operation that produced it.
// Call sites enforce that through PublishAsync.
//
// Two backends implement Publisher:
//   - ChannelPublisher (default, always compiled): Watermill gochannel
//     in-process pub/sub for single-binary deployments and tests.
//   - NATSPublisher (build with -tags=nats): Watermill NATS JetStream
//     publisher with reconnect handling and a circuit breaker,
//     optionally against an embedded NATS server.
package events
