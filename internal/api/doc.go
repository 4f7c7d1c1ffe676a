// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

// Package api exposes the matching and recommendation services over
// HTTP using the chi router.
//
// All functional endpoints live under /api/v1 and answer with the
// models.APIResponse envelope: a status string, the payload under
// "data", a structured error under "error", and timing metadata.
// Service errors map onto HTTP statuses through the shared taxonomy:
// validation 400, not found 404, permission 403, computation 422,
// everything unexpected 500.
//
// Authentication is not performed here. A fronting gateway
// authenticates callers and forwards the verified identity in the
// X-Conexus-Subject header; handlers only compare that subject against
// resource ownership (an employer's job, a user's recommendation list)
// and reject mismatches with 403. Requests without the header are
// treated as trusted internal calls.
//
// Request bodies are validated with go-playground/validator tags
// before any service call, so handlers reject malformed input without
// touching collaborators.
package api
