// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

//go:build integration

package testinfra

import (
	"context"
	"os/exec"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
)

var (
	dockerProbeOnce sync.Once
	dockerAvailable bool
)

// SkipIfNoDocker skips the calling test when no Docker daemon is
// reachable, so integration tests degrade to skips on plain CI runners.
func SkipIfNoDocker(t *testing.T) {
	t.Helper()

	if !IsDockerAvailable() {
		t.Skip("Skipping test: Docker not available")
	}
}

// IsDockerAvailable probes the Docker daemon once per process; every
// skip check after the first reuses the cached answer.
func IsDockerAvailable() bool {
	dockerProbeOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		dockerAvailable = exec.CommandContext(ctx, "docker", "info").Run() == nil
	})
	return dockerAvailable
}

// CleanupContainer terminates a container in a deferred call, logging
// instead of failing when teardown itself has trouble.
func CleanupContainer(t *testing.T, ctx context.Context, container testcontainers.Container) {
	t.Helper()

	if container == nil {
		return
	}
	if err := container.Terminate(ctx); err != nil {
		t.Logf("Warning: failed to terminate container: %v", err)
	}
}

// ContainerInfo is a debugging snapshot of a running container,
// logged when an integration test fails.
type ContainerInfo struct {
	ID        string
	Host      string
	Ports     map[string]string
	State     string
	StartedAt string
}

// GetContainerInfo collects the snapshot. Host and port lookups are
// best-effort; only the state query can fail the call.
func GetContainerInfo(ctx context.Context, container testcontainers.Container) (*ContainerInfo, error) {
	state, err := container.State(ctx)
	if err != nil {
		return nil, err
	}

	host, _ := container.Host(ctx)
	ports, _ := container.Ports(ctx)

	portMap := make(map[string]string)
	for port, bindings := range ports {
		if len(bindings) > 0 {
			portMap[string(port)] = bindings[0].HostPort
		}
	}

	id := container.GetContainerID()
	if len(id) > 12 {
		id = id[:12]
	}

	return &ContainerInfo{
		ID:        id,
		Host:      host,
		Ports:     portMap,
		State:     state.Status,
		StartedAt: state.StartedAt,
	}, nil
}
