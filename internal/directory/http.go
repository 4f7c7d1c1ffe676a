// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package directory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/conexus/internal/config"
	"github.com/tomtom215/conexus/internal/metrics"
	"github.com/tomtom215/conexus/internal/models"
)

// maxErrorBodySize limits the amount of response body read for error
// reporting, preventing unbounded allocation on large error responses.
const maxErrorBodySize = 64 * 1024 // 64KB

// Fallbacks when the directory config leaves tuning fields zero.
const (
	defaultTimeout   = 10 * time.Second
	defaultRateLimit = 50
	defaultBurst     = 25
)

// errNotFound signals an HTTP 404 from the directory service. Callers
// translate it into a models.NotFoundError carrying resource and ID.
var errNotFound = errors.New("directory: not found")

// HTTPDirectory is the JSON-over-HTTP directory client.
//
// Requests pass through a client-side token bucket (x/time/rate) so a
// recommendation fan-out cannot stampede the directory service. The
// limiter blocks in Wait rather than rejecting, honoring the request
// context for cancellation.
//
// The client performs no retries. Transient failures surface to the
// caller, whose policy (batch continue-on-error, cache fallback) decides
// what happens next.
//
// Thread Safety: safe for concurrent use. Each request creates its own
// HTTP request; the limiter is internally synchronized.
type HTTPDirectory struct {
	baseURL string
	apiKey  string
	client  *http.Client
	limiter *rate.Limiter
}

// Compile-time interface check.
var _ Service = (*HTTPDirectory)(nil)

// NewHTTPDirectory creates a directory client from configuration.
// Zero tuning values fall back to 10s timeout, 50 req/s, burst 25.
func NewHTTPDirectory(cfg config.DirectoryConfig) *HTTPDirectory {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	rps := cfg.RateLimit
	if rps <= 0 {
		rps = defaultRateLimit
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = defaultBurst
	}

	return &HTTPDirectory{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// searchEnvelope is the directory's collection response wrapper.
type searchEnvelope[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

// SearchCandidates returns candidates matching the given filters.
func (d *HTTPDirectory) SearchCandidates(ctx context.Context, filters map[string]string, limit int) ([]models.CandidateProfile, error) {
	start := time.Now()
	env, err := getJSON[searchEnvelope[models.CandidateProfile]](ctx, d, "/api/v1/candidates", searchQuery(filters, limit))
	metrics.RecordDirectoryRequest("search_candidates", time.Since(start), err, false)
	if err != nil {
		return nil, fmt.Errorf("search candidates: %w", err)
	}
	return env.Data, nil
}

// SearchJobs returns job postings matching the given filters.
func (d *HTTPDirectory) SearchJobs(ctx context.Context, filters map[string]string, limit int) ([]models.JobProfile, error) {
	start := time.Now()
	env, err := getJSON[searchEnvelope[models.JobProfile]](ctx, d, "/api/v1/jobs", searchQuery(filters, limit))
	metrics.RecordDirectoryRequest("search_jobs", time.Since(start), err, false)
	if err != nil {
		return nil, fmt.Errorf("search jobs: %w", err)
	}
	return env.Data, nil
}

// GetCandidateProfile returns a single candidate by ID.
// Unknown IDs return models.NotFoundError.
func (d *HTTPDirectory) GetCandidateProfile(ctx context.Context, id string) (*models.CandidateProfile, error) {
	start := time.Now()
	profile, err := getJSON[models.CandidateProfile](ctx, d, "/api/v1/candidates/"+url.PathEscape(id), nil)
	metrics.RecordDirectoryRequest("get_candidate", time.Since(start), err, errors.Is(err, errNotFound))
	if errors.Is(err, errNotFound) {
		return nil, models.NewNotFoundError("candidate", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get candidate %s: %w", id, err)
	}
	return profile, nil
}

// GetJobProfile returns a single job posting by ID.
// Unknown IDs return models.NotFoundError.
func (d *HTTPDirectory) GetJobProfile(ctx context.Context, id string) (*models.JobProfile, error) {
	start := time.Now()
	profile, err := getJSON[models.JobProfile](ctx, d, "/api/v1/jobs/"+url.PathEscape(id), nil)
	metrics.RecordDirectoryRequest("get_job", time.Since(start), err, errors.Is(err, errNotFound))
	if errors.Is(err, errNotFound) {
		return nil, models.NewNotFoundError("job", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get job %s: %w", id, err)
	}
	return profile, nil
}

// searchQuery builds the query string for a directory search. Filter keys
// pass through unchanged, so directory-side filter additions need no
// client change.
func searchQuery(filters map[string]string, limit int) url.Values {
	q := url.Values{}
	for key, value := range filters {
		if value != "" {
			q.Set(key, value)
		}
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return q
}

// getJSON performs a rate-limited GET against the directory and decodes
// the JSON response body into T. HTTP 404 maps to errNotFound; any other
// non-200 status becomes an error carrying a bounded slice of the body.
func getJSON[T any](ctx context.Context, d *HTTPDirectory, path string, query url.Values) (*T, error) {
	if err := d.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait: %w", err)
	}

	reqURL := d.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if d.apiKey != "" {
		req.Header.Set("X-API-Key", d.apiKey)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errNotFound
	case resp.StatusCode != http.StatusOK:
		body := readBodyForError(resp.Body)
		return nil, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result T
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &result, nil
}

// readBodyForError reads the response body for error reporting (max 64KB).
// Returns the body content or a placeholder message if reading fails.
func readBodyForError(r io.Reader) []byte {
	limitedReader := io.LimitReader(r, maxErrorBodySize)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}
