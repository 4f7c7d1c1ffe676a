// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

// Package testinfra manages Docker containers for the integration test
// suites. Everything but this doc sits behind the integration build
// tag, so regular test runs never touch Docker.
//
// The container in use is a real NATS server with JetStream, for
// exercising the events backend against actual broker behavior
// (publish acks, stream retention, dedup headers) instead of a mock:
//
//	func TestEventRoundTrip(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//
//	    ctx := context.Background()
//	    srv, err := testinfra.NewNATSContainer(ctx)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    defer srv.Terminate(ctx)
//
//	    pub, err := events.NewNATSPublisher(&config.NATSConfig{
//	        URL:        srv.URL,
//	        StreamName: "CONEXUS_TEST",
//	    })
//	    // publish against the real broker
//	}
//
// SkipIfNoDocker probes the Docker daemon once per process, so suites
// skip cleanly on machines without Docker rather than failing. The
// first run on a fresh machine pulls the NATS image and needs network
// access; later runs use the local image.
package testinfra
