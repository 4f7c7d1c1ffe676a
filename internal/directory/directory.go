// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

// Package directory provides the client for the external profile directory
// service that owns candidate and job data.
//
// The matching core never stores profiles. Every scoring and recommendation
// request resolves its inputs through this package, either as a point lookup
// (GetCandidateProfile, GetJobProfile) or a filtered search feeding a
// fan-out (SearchCandidates, SearchJobs).
//
// Two implementations exist:
//   - HTTPDirectory: JSON-over-HTTP client with client-side rate limiting
//   - CircuitBreakerDirectory: wraps any Service with failure protection
//
// Production wiring composes both; tests inject fakes implementing Service.
package directory

import (
	"context"

	"github.com/tomtom215/conexus/internal/models"
)

// Service is the profile directory contract used by the matching core.
//
// All methods follow a consistent pattern:
//   - Accept context.Context as first parameter for cancellation/timeout support
//   - Return typed profile structs from internal/models
//   - Point lookups return models.NotFoundError for unknown IDs
//
// Thread Safety: implementations must be safe for concurrent use; the
// matching service fans out profile lookups across goroutines.
type Service interface {
	// SearchCandidates returns candidates matching the given filter
	// key-value pairs. A limit of 0 means the directory default page size.
	SearchCandidates(ctx context.Context, filters map[string]string, limit int) ([]models.CandidateProfile, error)

	// SearchJobs returns job postings matching the given filter
	// key-value pairs. A limit of 0 means the directory default page size.
	SearchJobs(ctx context.Context, filters map[string]string, limit int) ([]models.JobProfile, error)

	// GetCandidateProfile returns a single candidate by ID.
	GetCandidateProfile(ctx context.Context, id string) (*models.CandidateProfile, error)

	// GetJobProfile returns a single job posting by ID.
	GetJobProfile(ctx context.Context, id string) (*models.JobProfile, error)
}
