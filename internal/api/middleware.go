// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/tomtom215/conexus/internal/logging"
	"github.com/tomtom215/conexus/internal/metrics"
)

// subjectHeader carries the caller identity verified by the fronting
// gateway. Absent means a trusted internal call.
const subjectHeader = "X-Conexus-Subject"

// subjectFromRequest returns the gateway-verified caller identity, or
// empty when the request arrived without one.
func subjectFromRequest(r *http.Request) string {
	return r.Header.Get(subjectHeader)
}

// requestIDWithLogging assigns a request ID (honoring an inbound
// X-Request-ID) and seeds the logging context with request and
// correlation IDs before handing off to chi's RequestID middleware, so
// every log line within the request carries both.
func requestIDWithLogging() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		chiRequestID := chimiddleware.RequestID(next)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = logging.GenerateRequestID()
				r.Header.Set("X-Request-ID", requestID)
			}

			ctx := logging.ContextWithRequestID(r.Context(), requestID)
			ctx = logging.ContextWithNewCorrelationID(ctx)

			w.Header().Set("X-Request-ID", requestID)
			chiRequestID.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// requestLogger logs one completion line per request. Server errors log
// at error level, client errors at warn, the rest at debug to keep
// steady-state logs quiet.
func requestLogger() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger := logging.Ctx(r.Context())
			event := logger.Debug()
			switch {
			case ww.Status() >= http.StatusInternalServerError:
				event = logger.Error()
			case ww.Status() >= http.StatusBadRequest:
				event = logger.Warn()
			}
			event.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Str("remote_addr", r.RemoteAddr).
				Msg("Request completed")
		})
	}
}

// prometheusMetrics records per-request counters and latency. The chi
// route pattern is used as the endpoint label so path parameters do not
// explode label cardinality.
func prometheusMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		metrics.TrackActiveRequest(true)
		defer metrics.TrackActiveRequest(false)

		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		endpoint := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				endpoint = pattern
			}
		}
		metrics.RecordHTTPRequest(r.Method, endpoint,
			strconv.Itoa(ww.Status()), time.Since(start))
	})
}

// rateLimitExceeded answers throttled requests with the standard error
// envelope instead of httprate's plain-text default.
func rateLimitExceeded(w http.ResponseWriter, _ *http.Request) {
	respondError(w, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED",
		"too many requests, retry later", nil)
}
