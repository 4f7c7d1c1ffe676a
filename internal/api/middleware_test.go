// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tomtom215/conexus/internal/matching"
)

// =====================================================
// Request ID
// =====================================================

func TestRequestID_Generated(t *testing.T) {
	env := newTestEnv(t)

	rec, _ := doJSON(t, env.router, http.MethodGet, "/health", nil)

	id := rec.Header().Get("X-Request-ID")
	if id == "" {
		t.Fatal("X-Request-ID header missing")
	}
}

func TestRequestID_InboundHonored(t *testing.T) {
	env := newTestEnv(t)

	rec, _ := doJSON(t, env.router, http.MethodGet, "/health", nil,
		"X-Request-ID", "upstream-trace-42")

	if got := rec.Header().Get("X-Request-ID"); got != "upstream-trace-42" {
		t.Errorf("X-Request-ID = %q, want upstream-trace-42", got)
	}
}

// =====================================================
// Rate limiting
// =====================================================

func TestRateLimit(t *testing.T) {
	h := NewHandler(&stubMatching{cfg: matching.DefaultConfig()}, &stubEngine{}, &stubProfiles{}, &stubStore{}, "test")
	router := NewRouter(h, RouterConfig{RateLimitPerMinute: 2})

	// httptest requests share a remote address, so they share a bucket.
	for i := 0; i < 2; i++ {
		rec, _ := doJSON(t, router, http.MethodGet, "/api/v1/matches/config", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, rec.Code)
		}
	}

	rec, body := doJSON(t, router, http.MethodGet, "/api/v1/matches/config", nil)
	wantError(t, rec, body, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED")
}

func TestRateLimit_ProbesExempt(t *testing.T) {
	h := NewHandler(&stubMatching{}, &stubEngine{}, &stubProfiles{}, &stubStore{}, "test")
	router := NewRouter(h, RouterConfig{RateLimitPerMinute: 1})

	// Probes sit outside /api/v1 and never hit the limiter.
	for i := 0; i < 5; i++ {
		rec, _ := doJSON(t, router, http.MethodGet, "/health", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("probe %d: status = %d, want 200", i+1, rec.Code)
		}
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	h := NewHandler(&stubMatching{cfg: matching.DefaultConfig()}, &stubEngine{}, &stubProfiles{}, &stubStore{}, "test")
	router := NewRouter(h, RouterConfig{RateLimitPerMinute: 0})

	for i := 0; i < 10; i++ {
		rec, _ := doJSON(t, router, http.MethodGet, "/api/v1/matches/config", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200 with limiting disabled", i+1, rec.Code)
		}
	}
}

// =====================================================
// CORS
// =====================================================

func TestCORSPreflight(t *testing.T) {
	h := NewHandler(&stubMatching{}, &stubEngine{}, &stubProfiles{}, &stubStore{}, "test")
	router := NewRouter(h, RouterConfig{CORSOrigins: []string{"https://app.example.com"}})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/matches/score", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", subjectHeader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Errorf("Access-Control-Allow-Origin = %q, want the configured origin", got)
	}
	allowed := rec.Header().Get("Access-Control-Allow-Headers")
	if !strings.Contains(strings.ToLower(allowed), strings.ToLower(subjectHeader)) {
		t.Errorf("Access-Control-Allow-Headers = %q, want %s included", allowed, subjectHeader)
	}
}

// =====================================================
// Metrics endpoint
// =====================================================

func TestMetricsEndpoint(t *testing.T) {
	h := NewHandler(&stubMatching{}, &stubEngine{}, &stubProfiles{}, &stubStore{}, "test")

	enabled := NewRouter(h, RouterConfig{MetricsEnabled: true})
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	enabled.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("enabled /metrics status = %d, want 200", rec.Code)
	}

	disabled := NewRouter(h, RouterConfig{})
	rec = httptest.NewRecorder()
	disabled.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("disabled /metrics status = %d, want 404", rec.Code)
	}
}

// =====================================================
// Unknown routes
// =====================================================

func TestUnknownRoute(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/playlists", nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
