// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

/*
Package supervisor runs the long-lived services of Conexus under suture v4.

Conexus has exactly two such services and neither depends on the other,
so the tree is a single flat supervisor:

	conexus
	├── HTTPServerService
	└── RefreshService

A crash in the recommendation refresh loop never interrupts request
serving, and a restarted HTTP server comes back without touching the
refreshed model state. Crashed services restart with suture's decaying
failure count and backoff, tuned through TreeConfig:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
	    FailureThreshold: 5,                // failures (after decay) before backoff
	    FailureDecay:     30,               // seconds for a failure to halve
	    FailureBackoff:   15 * time.Second, // pause once the threshold trips
	    ShutdownTimeout:  10 * time.Second, // per-service graceful stop bound
	})
	tree.Add(services.NewHTTPServerService(server, 10*time.Second))
	tree.Add(services.NewRefreshService(engine, refreshCfg, logger))
	err = tree.Serve(ctx) // blocks until ctx is canceled

Zero TreeConfig fields fall back to suture's documented defaults.
Supervision events (starts, failures, backoff) are logged through the
sutureslog hook; pass logging.NewSlogLogger so they land in the same
zerolog stream as everything else.

A service is anything with Serve(ctx) error. Returning nil stops the
service for good, returning an error schedules a restart, and a
canceled context means shutdown was requested and Serve should return
promptly. Services that cannot stop within ShutdownTimeout show up in
UnstoppedServiceReport, which main logs before exiting; the usual
culprit is a goroutine ignoring ctx or network I/O without a deadline.

Not everything belongs in the tree. DuckDB and Badger are embedded
libraries whose handles the store and cache packages own, and the
directory client is request-scoped with its own retries, so none of
them are supervised.
*/
package supervisor
