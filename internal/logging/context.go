// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey string

const (
	// correlationIDKey tracks one logical operation across log lines.
	correlationIDKey contextKey = "correlation_id"

	// requestIDKey carries the HTTP request ID assigned by middleware.
	requestIDKey contextKey = "request_id"
)

// GenerateCorrelationID returns a short unique ID for correlating the
// log lines of one operation. Eight hex characters keep log output
// readable while staying unique enough within a retention window.
func GenerateCorrelationID() string {
	return uuid.New().String()[:8]
}

// GenerateRequestID returns a full UUID for the X-Request-ID header.
func GenerateRequestID() string {
	return uuid.New().String()
}

// ContextWithCorrelationID attaches a correlation ID to the context.
func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

// ContextWithNewCorrelationID attaches a freshly generated correlation
// ID to the context.
func ContextWithNewCorrelationID(ctx context.Context) context.Context {
	return ContextWithCorrelationID(ctx, GenerateCorrelationID())
}

// CorrelationIDFromContext returns the correlation ID, or empty.
func CorrelationIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(correlationIDKey).(string)
	return id
}

// ContextWithRequestID attaches a request ID to the context.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the request ID, or empty.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// Ctx returns a logger carrying whatever request and correlation IDs
// the context holds. Handlers and services log through this so one
// request's lines can be grepped together.
//
//	logging.Ctx(ctx).Info().Msg("Processing request")
func Ctx(ctx context.Context) *zerolog.Logger {
	lc := Logger().With()
	if id := CorrelationIDFromContext(ctx); id != "" {
		lc = lc.Str("correlation_id", id)
	}
	if id := RequestIDFromContext(ctx); id != "" {
		lc = lc.Str("request_id", id)
	}
	logger := lc.Logger()
	return &logger
}

// WithComponent returns a child logger tagged with a component name.
//
//	matchLogger := logging.WithComponent("matching")
func WithComponent(component string) zerolog.Logger {
	return With().Str("component", component).Logger()
}
