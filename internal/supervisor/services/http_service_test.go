// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package services

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

var _ suture.Service = (*HTTPServerService)(nil)

// fakeServer implements HTTPServer with scriptable failure modes.
// With no errors configured, ListenAndServe blocks until Shutdown,
// like the real server.
type fakeServer struct {
	serveErr    error // returned immediately by ListenAndServe
	shutdownErr error // returned by Shutdown

	started   chan struct{} // closed on first ListenAndServe
	stop      chan struct{} // closed by Shutdown
	startOnce sync.Once
	stopOnce  sync.Once

	serveCalls    atomic.Int32
	shutdownCalls atomic.Int32
}

func newFakeServer() *fakeServer {
	return &fakeServer{
		started: make(chan struct{}),
		stop:    make(chan struct{}),
	}
}

func (f *fakeServer) ListenAndServe() error {
	f.serveCalls.Add(1)
	f.startOnce.Do(func() { close(f.started) })
	if f.serveErr != nil {
		return f.serveErr
	}
	<-f.stop
	return http.ErrServerClosed
}

func (f *fakeServer) Shutdown(ctx context.Context) error {
	f.shutdownCalls.Add(1)
	f.stopOnce.Do(func() { close(f.stop) })
	return f.shutdownErr
}

// awaitStart fails the test if ListenAndServe is not entered in time.
func (f *fakeServer) awaitStart(t *testing.T) {
	t.Helper()
	select {
	case <-f.started:
	case <-time.After(time.Second):
		t.Fatal("server never started")
	}
}

func TestNewHTTPServerService_TimeoutFloor(t *testing.T) {
	tests := []struct {
		name string
		in   time.Duration
		want time.Duration
	}{
		{"zero falls back", 0, 10 * time.Second},
		{"negative falls back", -5 * time.Second, 10 * time.Second},
		{"positive kept", 30 * time.Second, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewHTTPServerService(newFakeServer(), tt.in)
			if svc.shutdownTimeout != tt.want {
				t.Errorf("shutdownTimeout = %v, want %v", svc.shutdownTimeout, tt.want)
			}
		})
	}
}

func TestHTTPServerService_GracefulShutdown(t *testing.T) {
	server := newFakeServer()
	svc := NewHTTPServerService(server, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	server.awaitStart(t)
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve() did not return after cancel")
	}

	if got := server.serveCalls.Load(); got != 1 {
		t.Errorf("ListenAndServe calls = %d, want 1", got)
	}
	if got := server.shutdownCalls.Load(); got != 1 {
		t.Errorf("Shutdown calls = %d, want 1", got)
	}
}

func TestHTTPServerService_StartupFailure(t *testing.T) {
	bindErr := errors.New("bind: address already in use")
	server := newFakeServer()
	server.serveErr = bindErr

	err := NewHTTPServerService(server, time.Second).Serve(context.Background())
	if !errors.Is(err, bindErr) {
		t.Fatalf("Serve() = %v, want wrapped %v", err, bindErr)
	}
	if got := server.shutdownCalls.Load(); got != 0 {
		t.Errorf("Shutdown calls = %d, want 0 on startup failure", got)
	}
}

func TestHTTPServerService_ExternalClose(t *testing.T) {
	// ErrServerClosed without a canceled context means someone else
	// shut the server down. That is a clean stop, not a failure.
	server := newFakeServer()
	server.serveErr = http.ErrServerClosed

	if err := NewHTTPServerService(server, time.Second).Serve(context.Background()); err != nil {
		t.Fatalf("Serve() = %v, want nil", err)
	}
	if got := server.shutdownCalls.Load(); got != 0 {
		t.Errorf("Shutdown calls = %d, want 0", got)
	}
}

func TestHTTPServerService_ShutdownFailure(t *testing.T) {
	drainErr := errors.New("connections still draining")
	server := newFakeServer()
	server.shutdownErr = drainErr
	svc := NewHTTPServerService(server, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	server.awaitStart(t)
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, drainErr) {
			t.Errorf("Serve() = %v, want wrapped %v", err, drainErr)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve() did not return")
	}
}

func TestHTTPServerService_String(t *testing.T) {
	if got := NewHTTPServerService(newFakeServer(), time.Second).String(); got != "http-server" {
		t.Errorf("String() = %q, want %q", got, "http-server")
	}
}

func TestHTTPServerService_UnderSupervisor(t *testing.T) {
	server := newFakeServer()
	svc := NewHTTPServerService(server, time.Second)

	sup := suture.New("http-test", suture.Spec{
		FailureThreshold: 3,
		FailureBackoff:   10 * time.Millisecond,
		Timeout:          2 * time.Second,
	})
	sup.Add(svc)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := sup.ServeBackground(ctx)

	server.awaitStart(t)
	cancel()
	<-errCh

	if got := server.shutdownCalls.Load(); got < 1 {
		t.Error("Shutdown never called during supervised stop")
	}
}
