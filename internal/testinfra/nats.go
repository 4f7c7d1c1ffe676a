// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

//go:build integration

package testinfra

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	// DefaultNATSImage is the official NATS server image.
	DefaultNATSImage = "nats:2.12-alpine"

	// DefaultNATSPort is the NATS client port.
	DefaultNATSPort = "4222"
)

// NATSContainer represents a running NATS server container for testing.
type NATSContainer struct {
	testcontainers.Container

	// URL is the client connection URL, e.g. nats://localhost:32771
	URL string
}

// NATSOption configures the NATS container.
type NATSOption func(*natsContainerConfig)

type natsContainerConfig struct {
	image        string
	jetStream    bool
	startTimeout time.Duration
}

// WithNATSImage sets a custom NATS Docker image.
func WithNATSImage(image string) NATSOption {
	return func(c *natsContainerConfig) {
		c.image = image
	}
}

// WithoutJetStream starts the server in core-NATS mode.
// The default enables JetStream since the events backend requires it.
func WithoutJetStream() NATSOption {
	return func(c *natsContainerConfig) {
		c.jetStream = false
	}
}

// WithNATSStartTimeout sets the timeout for waiting for the server to start.
func WithNATSStartTimeout(timeout time.Duration) NATSOption {
	return func(c *natsContainerConfig) {
		c.startTimeout = timeout
	}
}

// NewNATSContainer creates and starts a NATS server container for testing.
//
// Example:
//
//	ctx := context.Background()
//	nats, err := NewNATSContainer(ctx)
//	if err != nil {
//	    t.Fatal(err)
//	}
//	defer nats.Terminate(ctx)
//
//	nc, err := natsgo.Connect(nats.URL)
func NewNATSContainer(ctx context.Context, opts ...NATSOption) (*NATSContainer, error) {
	cfg := &natsContainerConfig{
		image:        DefaultNATSImage,
		jetStream:    true,
		startTimeout: 60 * time.Second,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	var cmd []string
	if cfg.jetStream {
		cmd = append(cmd, "-js")
	}

	req := testcontainers.ContainerRequest{
		Image:        cfg.image,
		Cmd:          cmd,
		ExposedPorts: []string{DefaultNATSPort + "/tcp"},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort(DefaultNATSPort+"/tcp"),
			// The server prints this once the client port accepts traffic
			wait.ForLog("Server is ready"),
		).WithStartupTimeout(cfg.startTimeout),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("create nats container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get container host: %w", err)
	}

	port, err := container.MappedPort(ctx, DefaultNATSPort)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get mapped port: %w", err)
	}

	return &NATSContainer{
		Container: container,
		URL:       fmt.Sprintf("nats://%s:%s", host, port.Port()),
	}, nil
}

// Terminate stops and removes the NATS container.
func (c *NATSContainer) Terminate(ctx context.Context) error {
	return c.Container.Terminate(ctx)
}

// Logs returns the container logs for debugging.
func (c *NATSContainer) Logs(ctx context.Context) (string, error) {
	reader, err := c.Container.Logs(ctx)
	if err != nil {
		return "", fmt.Errorf("get logs: %w", err)
	}
	defer reader.Close()

	var logs []byte
	buf := make([]byte, 1024)
	for {
		n, err := reader.Read(buf)
		if n > 0 {
			logs = append(logs, buf[:n]...)
		}
		if err != nil {
			break
		}
	}

	return string(logs), nil
}
