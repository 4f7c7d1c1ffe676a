// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

/*
Package services adapts Conexus components to the suture.Service
contract so the supervisor tree can run them.

Two wrappers exist. HTTPServerService turns *http.Server's blocking
ListenAndServe into a context-aware Serve with a bounded graceful
drain. RefreshService runs the recommendation engine's periodic model
rebuild: an optional refresh at startup, then a fixed-interval ticker.

	tree.Add(services.NewHTTPServerService(server, 15*time.Second))
	tree.Add(services.NewRefreshService(engine, services.RefreshConfig{
	    RefreshOnStartup: true,
	    Interval:         time.Hour,
	}, logger))

What a wrapper returns decides what the supervisor does next: nil is a
clean stop, an error schedules a restart, and ctx.Err() after
cancellation is a normal shutdown. Failures inside a running service
should usually be absorbed rather than returned. RefreshService logs a
failed rebuild at warn and waits for the next tick, because a transient
directory outage is not worth burning restart budget on; the HTTP
wrapper, by contrast, returns bind and drain errors since a server that
cannot listen has nothing to absorb.

Both wrappers take small interfaces (HTTPServer, Refresher), so the
package tests drive them with fakes.
*/
package services
