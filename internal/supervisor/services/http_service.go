// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// HTTPServer is the part of the *http.Server lifecycle the wrapper
// drives. Tests substitute a fake.
type HTTPServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// HTTPServerService adapts an HTTP server to suture's Serve contract:
// ListenAndServe runs in a goroutine, and cancellation of the Serve
// context triggers a graceful Shutdown bounded by the configured
// timeout.
//
//	server := &http.Server{Addr: ":8787", Handler: router}
//	tree.Add(services.NewHTTPServerService(server, 10*time.Second))
type HTTPServerService struct {
	server          HTTPServer
	shutdownTimeout time.Duration
}

// NewHTTPServerService wraps server for supervision. Non-positive
// shutdown timeouts fall back to 10 seconds.
func NewHTTPServerService(server HTTPServer, shutdownTimeout time.Duration) *HTTPServerService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &HTTPServerService{server: server, shutdownTimeout: shutdownTimeout}
}

// Serve implements suture.Service. It returns ctx.Err() after a
// graceful shutdown and a wrapped error when the server fails to start
// or refuses to drain.
func (s *HTTPServerService) Serve(ctx context.Context) error {
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		// Closed from outside this wrapper. Hand the clean return to
		// the supervisor.
		return nil

	case <-ctx.Done():
	}

	// The Serve context is already canceled, so the drain runs on its
	// own deadline.
	drainCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(drainCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}

	// ListenAndServe unblocks once Shutdown completes.
	<-serveErr
	return ctx.Err()
}

// String identifies the service in supervision logs.
func (s *HTTPServerService) String() string {
	return "http-server"
}
