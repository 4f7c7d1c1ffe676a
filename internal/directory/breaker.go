// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package directory

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/conexus/internal/logging"
	"github.com/tomtom215/conexus/internal/metrics"
	"github.com/tomtom215/conexus/internal/models"
)

// CircuitBreakerDirectory wraps a directory Service with the circuit
// breaker pattern, preventing cascading failures when the directory
// service is unavailable or slow.
//
// DETERMINISM NOTE: The circuit breaker uses real time (via sony/gobreaker)
// for its interval and timeout calculations. This is intentional for
// production resilience:
// - The timing determines when to recover from failures, not data integrity
// - Tests should use appropriate waits or mock the underlying client, not the breaker
// - For unit tests, consider testing the wrapped client directly
type CircuitBreakerDirectory struct {
	inner Service
	cb    *gobreaker.CircuitBreaker[interface{}]
	name  string
}

// Compile-time interface check.
var _ Service = (*CircuitBreakerDirectory)(nil)

// NewCircuitBreakerDirectory wraps a directory Service with a circuit breaker.
// Circuit breaker configuration:
// - Max 3 concurrent requests in half-open state
// - 1 minute measurement window
// - 2 minute timeout before attempting recovery
// - Opens after 60% failure rate with minimum 10 requests
func NewCircuitBreakerDirectory(inner Service) *CircuitBreakerDirectory {
	cbName := "directory-api"

	// Initialize circuit breaker state metrics
	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0) // 0 = closed
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbName).Set(0)

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 3,               // Allow 3 concurrent requests in half-open state
		Interval:    time.Minute,     // Reset counts after 1 minute in closed state
		Timeout:     2 * time.Minute, // Wait 2 minutes before transitioning from open to half-open

		// ReadyToTrip determines when to open the circuit
		// Opens when failure rate >= 60% with minimum 10 requests
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false // Need at least 10 requests for statistical significance
			}

			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6

			if shouldTrip {
				logging.Warn().Uint32("failures", counts.TotalFailures).Float64("failure_rate", failureRatio*100).Msg("[CIRCUIT BREAKER] Opening circuit")
			}

			return shouldTrip
		},

		// A 404 is a definitive directory answer, not a service failure.
		IsSuccessful: func(err error) bool {
			return err == nil || models.IsNotFound(err)
		},

		// OnStateChange is called whenever the circuit breaker changes state
		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			// Update metrics
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()

			// Reset consecutive failures when transitioning to closed
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return &CircuitBreakerDirectory{
		inner: inner,
		cb:    cb,
		name:  cbName,
	}
}

// execute wraps a directory call with circuit breaker protection.
// Returns the result or an error if the circuit is open or the call fails.
func (cbd *CircuitBreakerDirectory) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := cbd.cb.Execute(fn)

	// Update metrics based on result
	if err != nil {
		switch {
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			// Circuit is open or too many concurrent requests in half-open state
			metrics.CircuitBreakerRequests.WithLabelValues(cbd.name, "rejected").Inc()
			logging.Warn().Err(err).Msg("[CIRCUIT BREAKER] Request rejected")
		case models.IsNotFound(err):
			// Definitive answer, counted as success by the breaker
			metrics.CircuitBreakerRequests.WithLabelValues(cbd.name, "success").Inc()
		default:
			// Request failed
			metrics.CircuitBreakerRequests.WithLabelValues(cbd.name, "failure").Inc()

			// Track consecutive failures
			counts := cbd.cb.Counts()
			metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbd.name).Set(float64(counts.ConsecutiveFailures))
		}
		return nil, err
	}

	// Request succeeded
	metrics.CircuitBreakerRequests.WithLabelValues(cbd.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbd.name).Set(0)

	return result, nil
}

// castResult safely type-casts the circuit breaker result with error checking.
// Returns the typed result or an error if the type assertion fails.
func castResult[T any](result interface{}, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	typed, ok := result.(*T)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// castSlice type-casts a circuit breaker result holding a slice.
func castSlice[T any](result interface{}, err error) ([]T, error) {
	if err != nil {
		return nil, err
	}
	typed, ok := result.([]T)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// stateToFloat converts circuit breaker state to a numeric value for metrics.
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to a string for logging.
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// SearchCandidates searches candidates with circuit breaker protection.
func (cbd *CircuitBreakerDirectory) SearchCandidates(ctx context.Context, filters map[string]string, limit int) ([]models.CandidateProfile, error) {
	return castSlice[models.CandidateProfile](cbd.execute(func() (interface{}, error) {
		return cbd.inner.SearchCandidates(ctx, filters, limit)
	}))
}

// SearchJobs searches job postings with circuit breaker protection.
func (cbd *CircuitBreakerDirectory) SearchJobs(ctx context.Context, filters map[string]string, limit int) ([]models.JobProfile, error) {
	return castSlice[models.JobProfile](cbd.execute(func() (interface{}, error) {
		return cbd.inner.SearchJobs(ctx, filters, limit)
	}))
}

// GetCandidateProfile fetches a candidate with circuit breaker protection.
func (cbd *CircuitBreakerDirectory) GetCandidateProfile(ctx context.Context, id string) (*models.CandidateProfile, error) {
	return castResult[models.CandidateProfile](cbd.execute(func() (interface{}, error) {
		return cbd.inner.GetCandidateProfile(ctx, id)
	}))
}

// GetJobProfile fetches a job posting with circuit breaker protection.
func (cbd *CircuitBreakerDirectory) GetJobProfile(ctx context.Context, id string) (*models.JobProfile, error) {
	return castResult[models.JobProfile](cbd.execute(func() (interface{}, error) {
		return cbd.inner.GetJobProfile(ctx, id)
	}))
}

// State returns the current circuit breaker state.
func (cbd *CircuitBreakerDirectory) State() gobreaker.State {
	return cbd.cb.State()
}

// Counts returns the current circuit breaker counts.
func (cbd *CircuitBreakerDirectory) Counts() gobreaker.Counts {
	return cbd.cb.Counts()
}
