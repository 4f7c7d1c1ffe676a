// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/conexus/internal/logging"
	"github.com/tomtom215/conexus/internal/matching"
	"github.com/tomtom215/conexus/internal/models"
	"github.com/tomtom215/conexus/internal/store"
)

func TestMain(m *testing.M) {
	logging.SetLogger(zerolog.Nop())
	os.Exit(m.Run())
}

// =====================================================
// Shared fixtures
// =====================================================

// stubMatching implements MatchingService with canned responses and
// records the arguments of the last call to each method.
type stubMatching struct {
	scoreResult   *models.MatchResult
	scoreErr      error
	lastCandidate string
	lastJob       string

	page       *models.MatchPage
	pageErr    error
	lastAnchor string
	lastOpts   models.SearchOptions

	batchResult *models.BatchMatchResult
	batchErr    error
	lastBatch   models.BatchMatchRequest

	match       *models.MatchResult
	matchErr    error
	lastMatchID string

	list        []models.MatchResult
	listErr     error
	lastFilters models.MatchFilters
	lastLimit   int
	lastOffset  int

	stats         *models.MatchStats
	statsErr      error
	lastStatsOpts models.StatsFilters

	cfg        matching.Config
	updateErr  error
	lastUpdate *matching.ConfigUpdate
}

func (s *stubMatching) ScoreCandidate(_ context.Context, candidateID, jobID string) (*models.MatchResult, error) {
	s.lastCandidate, s.lastJob = candidateID, jobID
	return s.scoreResult, s.scoreErr
}

func (s *stubMatching) FindCandidatesForJob(_ context.Context, jobID string, opts models.SearchOptions) (*models.MatchPage, error) {
	s.lastAnchor, s.lastOpts = jobID, opts
	return s.page, s.pageErr
}

func (s *stubMatching) FindJobsForCandidate(_ context.Context, candidateID string, opts models.SearchOptions) (*models.MatchPage, error) {
	s.lastAnchor, s.lastOpts = candidateID, opts
	return s.page, s.pageErr
}

func (s *stubMatching) BatchMatch(_ context.Context, req models.BatchMatchRequest) (*models.BatchMatchResult, error) {
	s.lastBatch = req
	return s.batchResult, s.batchErr
}

func (s *stubMatching) GetMatch(_ context.Context, id string) (*models.MatchResult, error) {
	s.lastMatchID = id
	return s.match, s.matchErr
}

func (s *stubMatching) ListMatches(_ context.Context, f models.MatchFilters, limit, offset int) ([]models.MatchResult, error) {
	s.lastFilters, s.lastLimit, s.lastOffset = f, limit, offset
	return s.list, s.listErr
}

func (s *stubMatching) GetMatchStats(_ context.Context, f models.StatsFilters) (*models.MatchStats, error) {
	s.lastStatsOpts = f
	return s.stats, s.statsErr
}

func (s *stubMatching) UpdateConfig(update matching.ConfigUpdate) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.lastUpdate = &update
	return nil
}

func (s *stubMatching) Config() matching.Config { return s.cfg }

// stubEngine implements RecommendationEngine.
type stubEngine struct {
	result     *models.RecommendationResult
	err        error
	lastAnchor string
	lastType   models.ItemType
	lastReq    models.RecommendationRequest

	interactionErr error
	interactions   []models.Interaction
}

func (s *stubEngine) GetRecommendations(_ context.Context, anchorID string, itemType models.ItemType,
	req models.RecommendationRequest) (*models.RecommendationResult, error) {
	s.lastAnchor, s.lastType, s.lastReq = anchorID, itemType, req
	return s.result, s.err
}

func (s *stubEngine) RecordInteraction(_ context.Context, i models.Interaction) error {
	if s.interactionErr != nil {
		return s.interactionErr
	}
	s.interactions = append(s.interactions, i)
	return nil
}

// stubProfiles implements directory.Service for ownership checks. The
// search methods are never reached by handlers.
type stubProfiles struct {
	job          *models.JobProfile
	jobErr       error
	candidate    *models.CandidateProfile
	candidateErr error
}

func (s *stubProfiles) SearchCandidates(context.Context, map[string]string, int) ([]models.CandidateProfile, error) {
	return nil, nil
}

func (s *stubProfiles) SearchJobs(context.Context, map[string]string, int) ([]models.JobProfile, error) {
	return nil, nil
}

func (s *stubProfiles) GetCandidateProfile(context.Context, string) (*models.CandidateProfile, error) {
	if s.candidateErr != nil {
		return nil, s.candidateErr
	}
	return s.candidate, nil
}

func (s *stubProfiles) GetJobProfile(context.Context, string) (*models.JobProfile, error) {
	if s.jobErr != nil {
		return nil, s.jobErr
	}
	return s.job, nil
}

// stubStore satisfies store.MatchStore without a backing connection,
// so its readiness is never probed.
type stubStore struct{}

func (s *stubStore) SaveMatchResult(context.Context, *models.MatchResult) error { return nil }

func (s *stubStore) GetMatch(context.Context, uuid.UUID) (*models.MatchResult, error) {
	return nil, models.NewNotFoundError("match", "unknown")
}

func (s *stubStore) ListMatches(context.Context, models.MatchFilters, int, int) ([]models.MatchResult, error) {
	return nil, nil
}

func (s *stubStore) GetMatchStats(context.Context, models.StatsFilters) (*models.MatchStats, error) {
	return &models.MatchStats{}, nil
}

func (s *stubStore) Close() error { return nil }

// pingStore is a stubStore whose concrete type carries Ping, so the
// readiness probe exercises it.
type pingStore struct {
	stubStore
	pingErr error
}

func (s *pingStore) Ping(context.Context) error { return s.pingErr }

// testEnv bundles the stubs behind a fully assembled router.
type testEnv struct {
	router   http.Handler
	matching *stubMatching
	engine   *stubEngine
	profiles *stubProfiles
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		matching: &stubMatching{cfg: matching.DefaultConfig()},
		engine:   &stubEngine{},
		profiles: &stubProfiles{},
	}
	h := NewHandler(env.matching, env.engine, env.profiles, &stubStore{}, "test")
	env.router = NewRouter(h, RouterConfig{})
	return env
}

// envelope mirrors the response body with raw data for per-test decoding.
type envelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Error    *models.APIError `json:"error"`
	Metadata struct {
		Timestamp   time.Time `json:"timestamp"`
		QueryTimeMS int64     `json:"query_time_ms"`
		Cached      bool      `json:"cached"`
	} `json:"metadata"`
}

// doJSON runs one request through the router and decodes the envelope.
// body is marshalled when non-nil; headers are optional key-value pairs.
func doJSON(t *testing.T, router http.Handler, method, target string, body interface{}, headers ...string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if len(headers)%2 != 0 {
		t.Fatalf("headers must be key-value pairs, got %d values", len(headers))
	}
	for i := 0; i < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope from %q: %v", rec.Body.String(), err)
	}
	return rec, env
}

// doRaw is doJSON with a verbatim request body, for malformed payloads.
func doRaw(t *testing.T, router http.Handler, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, target, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope from %q: %v", rec.Body.String(), err)
	}
	return rec, env
}

// decodeData unmarshals the envelope data payload into dst.
func decodeData(t *testing.T, env envelope, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("decode data %q: %v", string(env.Data), err)
	}
}

// wantError asserts an error envelope with the given status and code.
func wantError(t *testing.T, rec *httptest.ResponseRecorder, env envelope, status int, code string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, status, rec.Body.String())
	}
	if env.Status != "error" {
		t.Errorf("envelope status = %q, want error", env.Status)
	}
	if env.Error == nil {
		t.Fatal("error block missing")
	}
	if env.Error.Code != code {
		t.Errorf("error code = %q, want %q", env.Error.Code, code)
	}
}

// =====================================================
// Health and readiness
// =====================================================

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	rec, body := doJSON(t, env.router, http.MethodGet, "/health", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body.Status != "success" {
		t.Errorf("envelope status = %q, want success", body.Status)
	}

	var data struct {
		Status  string `json:"status"`
		Version string `json:"version"`
	}
	decodeData(t, body, &data)
	if data.Status != "healthy" {
		t.Errorf("health status = %q, want healthy", data.Status)
	}
	if data.Version != "test" {
		t.Errorf("version = %q, want test", data.Version)
	}
}

func TestReady(t *testing.T) {
	tests := []struct {
		name       string
		matchStore store.MatchStore
		wantCode   int
		wantState  string
	}{
		{name: "store without ping is always ready", matchStore: &stubStore{}, wantCode: http.StatusOK, wantState: "ready"},
		{name: "healthy ping", matchStore: &pingStore{}, wantCode: http.StatusOK, wantState: "ready"},
		{name: "failing ping", matchStore: &pingStore{pingErr: context.DeadlineExceeded}, wantCode: http.StatusServiceUnavailable, wantState: "not_ready"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubMatching{}, &stubEngine{}, &stubProfiles{}, tt.matchStore, "test")
			router := NewRouter(h, RouterConfig{})

			rec, body := doJSON(t, router, http.MethodGet, "/ready", nil)

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			var data struct {
				Status string `json:"status"`
			}
			decodeData(t, body, &data)
			if data.Status != tt.wantState {
				t.Errorf("ready state = %q, want %q", data.Status, tt.wantState)
			}
		})
	}
}
