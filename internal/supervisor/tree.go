// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package supervisor

import (
	"context"
	"log/slog"
	"time"

	"github.com/thejerf/suture/v4"
	"github.com/thejerf/sutureslog"
)

// TreeConfig holds the restart policy of the root supervisor.
type TreeConfig struct {
	// FailureThreshold is how many failures, after decay, trigger
	// backoff instead of an immediate restart.
	FailureThreshold float64

	// FailureDecay is the failure-count half-life in seconds.
	FailureDecay float64

	// FailureBackoff is how long the supervisor pauses once the
	// threshold is exceeded.
	FailureBackoff time.Duration

	// ShutdownTimeout bounds the graceful stop of each service.
	ShutdownTimeout time.Duration
}

// DefaultTreeConfig mirrors suture's documented defaults.
func DefaultTreeConfig() TreeConfig {
	return TreeConfig{
		FailureThreshold: 5.0,
		FailureDecay:     30.0,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	}
}

// withDefaults fills zero fields from DefaultTreeConfig.
func (c TreeConfig) withDefaults() TreeConfig {
	d := DefaultTreeConfig()
	if c.FailureThreshold != 0 {
		d.FailureThreshold = c.FailureThreshold
	}
	if c.FailureDecay != 0 {
		d.FailureDecay = c.FailureDecay
	}
	if c.FailureBackoff != 0 {
		d.FailureBackoff = c.FailureBackoff
	}
	if c.ShutdownTimeout != 0 {
		d.ShutdownTimeout = c.ShutdownTimeout
	}
	return d
}

// SupervisorTree owns the application's long-running services.
//
// The tree is deliberately flat: a single root supervisor holds the HTTP
// server and the model refresh loop. Both services are independent, so a
// crash in the refresh loop never disturbs request serving, and a crashed
// HTTP server restarts without losing refreshed model state.
type SupervisorTree struct {
	root   *suture.Supervisor
	logger *slog.Logger
	config TreeConfig
}

// NewSupervisorTree builds the root supervisor with suture events
// logged through the given slog logger (bridged to zerolog by the
// logging package).
func NewSupervisorTree(logger *slog.Logger, config TreeConfig) (*SupervisorTree, error) {
	config = config.withDefaults()

	// MustHook takes a pointer receiver.
	hook := (&sutureslog.Handler{Logger: logger}).MustHook()

	root := suture.New("conexus", suture.Spec{
		EventHook:        hook,
		FailureThreshold: config.FailureThreshold,
		FailureDecay:     config.FailureDecay,
		FailureBackoff:   config.FailureBackoff,
		Timeout:          config.ShutdownTimeout,
	})

	return &SupervisorTree{
		root:   root,
		logger: logger,
		config: config,
	}, nil
}

// Root exposes the underlying supervisor.
func (t *SupervisorTree) Root() *suture.Supervisor {
	return t.root
}

// Add registers a service for supervision and returns its token.
func (t *SupervisorTree) Add(svc suture.Service) suture.ServiceToken {
	return t.root.Add(svc)
}

// Serve runs the tree until ctx is canceled.
func (t *SupervisorTree) Serve(ctx context.Context) error {
	return t.root.Serve(ctx)
}

// ServeBackground runs the tree in a goroutine; the returned channel
// yields the terminal error (or nil) and then closes.
func (t *SupervisorTree) ServeBackground(ctx context.Context) <-chan error {
	return t.root.ServeBackground(ctx)
}

// UnstoppedServiceReport lists services that were still running after
// the shutdown timeout, for the final shutdown log.
func (t *SupervisorTree) UnstoppedServiceReport() ([]suture.UnstoppedService, error) {
	return t.root.UnstoppedServiceReport()
}

// RemoveAndWait stops one service by token and blocks until it has
// fully terminated or the timeout passes.
func (t *SupervisorTree) RemoveAndWait(token suture.ServiceToken, timeout time.Duration) error {
	return t.root.RemoveAndWait(token, timeout)
}
