// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package models

import (
	"time"
)

// APIResponse is the envelope every HTTP endpoint returns. Status is
// "success" or "error"; Data carries the payload on success, Error the
// failure otherwise, and Metadata rides along either way.
//
//	{
//	  "status": "success",
//	  "data": {"total": 42, "results": [...]},
//	  "metadata": {"timestamp": "2026-08-24T12:00:00Z", "query_time_ms": 45}
//	}
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "VALIDATION_ERROR",
//	    "message": "candidate_id is required",
//	    "details": {"field": "candidate_id"}
//	  },
//	  "metadata": {"timestamp": "2026-08-24T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries per-response observability fields: when the server
// answered, how long the handler ran, and whether the payload came
// from cache. QueryTimeMS and Cached drop out of the JSON at their
// zero values.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError is the structured error body. Code is one of the stable
// machine-readable codes clients can switch on: VALIDATION_ERROR,
// NOT_FOUND, PERMISSION_DENIED, COMPUTATION_ERROR,
// RATE_LIMIT_EXCEEDED, INTERNAL_ERROR. Message is for humans, and
// Details carries optional context such as the failing field.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// PaginationInfo describes an offset window over a result set. Total
// counts matches before windowing, Count the entries on this page, and
// HasMore holds while offset+limit < total.
type PaginationInfo struct {
	Total   int  `json:"total"`
	Count   int  `json:"count"`
	Offset  int  `json:"offset"`
	Limit   int  `json:"limit"`
	HasMore bool `json:"has_more"`
}
