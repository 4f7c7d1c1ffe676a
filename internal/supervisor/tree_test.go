// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package supervisor

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"
)

func quietSlogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestDefaultTreeConfig(t *testing.T) {
	want := TreeConfig{
		FailureThreshold: 5.0,
		FailureDecay:     30.0,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	}
	if got := DefaultTreeConfig(); got != want {
		t.Errorf("DefaultTreeConfig() = %+v, want %+v", got, want)
	}
}

func TestTreeConfigWithDefaults(t *testing.T) {
	tests := []struct {
		name string
		in   TreeConfig
		want TreeConfig
	}{
		{
			name: "zero value gets all defaults",
			in:   TreeConfig{},
			want: DefaultTreeConfig(),
		},
		{
			name: "set fields survive, the rest default",
			in:   TreeConfig{FailureBackoff: time.Second},
			want: TreeConfig{
				FailureThreshold: 5.0,
				FailureDecay:     30.0,
				FailureBackoff:   time.Second,
				ShutdownTimeout:  10 * time.Second,
			},
		},
		{
			name: "fully specified config is untouched",
			in: TreeConfig{
				FailureThreshold: 2,
				FailureDecay:     10,
				FailureBackoff:   time.Second,
				ShutdownTimeout:  time.Second,
			},
			want: TreeConfig{
				FailureThreshold: 2,
				FailureDecay:     10,
				FailureBackoff:   time.Second,
				ShutdownTimeout:  time.Second,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.withDefaults(); got != tt.want {
				t.Errorf("withDefaults() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNewSupervisorTree(t *testing.T) {
	tree, err := NewSupervisorTree(quietSlogger(), TreeConfig{})
	if err != nil {
		t.Fatalf("NewSupervisorTree() error = %v", err)
	}
	if tree.Root() == nil {
		t.Fatal("Root() = nil")
	}

	// The stored config is the normalized one, not the zero input.
	if tree.config != DefaultTreeConfig() {
		t.Errorf("stored config = %+v, want defaults", tree.config)
	}
}

func TestTreeRunsAddedServices(t *testing.T) {
	tree, err := NewSupervisorTree(quietSlogger(), TreeConfig{ShutdownTimeout: time.Second})
	if err != nil {
		t.Fatalf("NewSupervisorTree() error = %v", err)
	}

	api := NewMockService("api")
	refresh := NewMockService("refresh")
	tree.Add(api)
	tree.Add(refresh)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- tree.Serve(ctx) }()

	if !waitFor(t, time.Second, func() bool {
		return api.StartCount() >= 1 && refresh.StartCount() >= 1
	}) {
		t.Errorf("services not started: api=%d refresh=%d", api.StartCount(), refresh.StartCount())
	}

	cancel()
	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want nil or context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Error("tree did not shut down after cancel")
	}
}

func TestTreeServeBackground(t *testing.T) {
	tree, err := NewSupervisorTree(quietSlogger(), TreeConfig{ShutdownTimeout: time.Second})
	if err != nil {
		t.Fatalf("NewSupervisorTree() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	select {
	case err := <-tree.ServeBackground(ctx):
		if err != nil && !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("ServeBackground() yielded %v, want nil or context.DeadlineExceeded", err)
		}
	case <-time.After(2 * time.Second):
		t.Error("error channel never yielded")
	}
}

func TestTreeRemoveAndWait(t *testing.T) {
	tree, err := NewSupervisorTree(quietSlogger(), TreeConfig{ShutdownTimeout: time.Second})
	if err != nil {
		t.Fatalf("NewSupervisorTree() error = %v", err)
	}

	svc := NewMockService("removable")
	token := tree.Add(svc)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go tree.Serve(ctx)

	if !waitFor(t, time.Second, func() bool { return svc.StartCount() >= 1 }) {
		t.Fatal("service never started")
	}
	if err := tree.RemoveAndWait(token, time.Second); err != nil {
		t.Fatalf("RemoveAndWait() error = %v", err)
	}
	if svc.StopCount() < 1 {
		t.Error("removed service never stopped")
	}
}

func TestTreeIsolatesFailingService(t *testing.T) {
	tree, err := NewSupervisorTree(quietSlogger(), TreeConfig{
		FailureThreshold: 10,
		FailureBackoff:   10 * time.Millisecond,
		ShutdownTimeout:  time.Second,
	})
	if err != nil {
		t.Fatalf("NewSupervisorTree() error = %v", err)
	}

	flaky := NewMockService("flaky")
	flaky.SetFailCount(2)
	stable := NewMockService("stable")

	tree.Add(flaky)
	tree.Add(stable)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go tree.Serve(ctx)

	if !waitFor(t, 2*time.Second, func() bool { return flaky.StartCount() >= 3 }) {
		t.Errorf("flaky StartCount() = %d, want >= 3 (two crashes plus recovery)", flaky.StartCount())
	}

	// The neighbor keeps running through the restarts.
	if got := stable.StartCount(); got != 1 {
		t.Errorf("stable StartCount() = %d, want exactly 1", got)
	}
}
