// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package supervisor

import (
	"context"
	"errors"
	"sync"
)

// MockService is a controllable suture.Service for supervisor tests:
// it can fail a set number of times, return a fixed error, or block
// until canceled, while counting starts and stops.
type MockService struct {
	name string

	mu           sync.Mutex
	starts       int
	stops        int
	failuresLeft int
	err          error
}

// NewMockService returns a mock that blocks until canceled.
func NewMockService(name string) *MockService {
	return &MockService{name: name}
}

// Serve implements suture.Service. It burns through the configured
// failure budget first, then returns the fixed error if one is set,
// and otherwise blocks until ctx is canceled.
func (m *MockService) Serve(ctx context.Context) error {
	m.mu.Lock()
	m.starts++
	failNow := m.failuresLeft > 0
	if failNow {
		m.failuresLeft--
	}
	err := m.err
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.stops++
		m.mu.Unlock()
	}()

	if failNow {
		return errors.New("simulated failure")
	}
	if err != nil {
		return err
	}

	<-ctx.Done()
	return ctx.Err()
}

// SetError makes every subsequent Serve return err immediately.
func (m *MockService) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// SetFailCount makes the next n Serve calls fail before the service
// behaves normally again.
func (m *MockService) SetFailCount(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failuresLeft = n
}

// StartCount reports how many times Serve was entered.
func (m *MockService) StartCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.starts
}

// StopCount reports how many times Serve returned.
func (m *MockService) StopCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stops
}

// String names the service in suture's event log.
func (m *MockService) String() string {
	return m.name
}
