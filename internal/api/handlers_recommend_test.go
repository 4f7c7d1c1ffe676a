// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package api

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/tomtom215/conexus/internal/models"
)

func sampleRecommendations() *models.RecommendationResult {
	return &models.RecommendationResult{
		AnchorID: "user-1",
		ItemType: models.ItemTypeJob,
		Strategy: models.AlgorithmHybrid,
		Recommendations: []models.Recommendation{
			{
				ItemID:     "job-7",
				ItemType:   models.ItemTypeJob,
				Score:      0.82,
				Confidence: 0.7,
				Algorithm:  models.AlgorithmHybrid,
				Category:   "engineering",
			},
		},
		GeneratedAt: time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
	}
}

// =====================================================
// GET /api/v1/recommendations/{userID}
// =====================================================

func TestRecommendations(t *testing.T) {
	env := newTestEnv(t)
	env.engine.result = sampleRecommendations()

	rec, body := doJSON(t, env.router, http.MethodGet,
		"/api/v1/recommendations/user-1?type=candidate&count=5&strategy=collaborative&min_score=0.4&min_confidence=0.3&filters=category:engineering&algorithms=collaborative,trending", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	if env.engine.lastAnchor != "user-1" {
		t.Errorf("anchor = %q, want user-1", env.engine.lastAnchor)
	}
	if env.engine.lastType != models.ItemTypeCandidate {
		t.Errorf("item type = %q, want candidate", env.engine.lastType)
	}

	req := env.engine.lastReq
	if req.Count != 5 {
		t.Errorf("count = %d, want 5", req.Count)
	}
	if req.Strategy != models.AlgorithmCollaborative {
		t.Errorf("strategy = %q, want collaborative", req.Strategy)
	}
	if req.MinScore == nil || *req.MinScore != 0.4 {
		t.Errorf("min score = %v, want 0.4", req.MinScore)
	}
	if req.MinConfidence == nil || *req.MinConfidence != 0.3 {
		t.Errorf("min confidence = %v, want 0.3", req.MinConfidence)
	}
	if req.Filters["category"] != "engineering" {
		t.Errorf("filters = %v, want category:engineering", req.Filters)
	}
	if len(req.AllowAlgorithms) != 2 ||
		req.AllowAlgorithms[0] != models.AlgorithmCollaborative ||
		req.AllowAlgorithms[1] != models.AlgorithmTrending {
		t.Errorf("allow list = %v, want [collaborative trending]", req.AllowAlgorithms)
	}

	var result models.RecommendationResult
	decodeData(t, body, &result)
	if len(result.Recommendations) != 1 || result.Recommendations[0].ItemID != "job-7" {
		t.Errorf("recommendations = %+v, want one job-7 entry", result.Recommendations)
	}
}

func TestRecommendations_Defaults(t *testing.T) {
	env := newTestEnv(t)
	env.engine.result = sampleRecommendations()

	rec, _ := doJSON(t, env.router, http.MethodGet, "/api/v1/recommendations/user-1", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if env.engine.lastType != models.ItemTypeJob {
		t.Errorf("item type = %q, want job default", env.engine.lastType)
	}
	if env.engine.lastReq.Count != 0 {
		t.Errorf("count = %d, want 0 so the engine applies its default", env.engine.lastReq.Count)
	}
	if env.engine.lastReq.Strategy != "" {
		t.Errorf("strategy = %q, want empty", env.engine.lastReq.Strategy)
	}
}

func TestRecommendations_CacheMetadata(t *testing.T) {
	env := newTestEnv(t)
	result := sampleRecommendations()
	result.Cached = true
	env.engine.result = result

	_, body := doJSON(t, env.router, http.MethodGet, "/api/v1/recommendations/user-1", nil)

	if !body.Metadata.Cached {
		t.Error("metadata cached = false, want true for a cache hit")
	}
}

func TestRecommendations_SubjectMustBeUser(t *testing.T) {
	tests := []struct {
		name     string
		subject  string
		wantCode int
	}{
		{name: "own feed", subject: "user-1", wantCode: http.StatusOK},
		{name: "internal call", subject: "", wantCode: http.StatusOK},
		{name: "other user", subject: "user-2", wantCode: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.engine.result = sampleRecommendations()

			headers := []string{}
			if tt.subject != "" {
				headers = append(headers, "X-Conexus-Subject", tt.subject)
			}
			rec, body := doJSON(t, env.router, http.MethodGet, "/api/v1/recommendations/user-1", nil, headers...)

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantCode, rec.Body.String())
			}
			if tt.wantCode == http.StatusForbidden {
				if body.Error.Code != "PERMISSION_DENIED" {
					t.Errorf("error code = %q, want PERMISSION_DENIED", body.Error.Code)
				}
				if env.engine.lastAnchor != "" {
					t.Error("engine must not be called for a foreign subject")
				}
			}
		})
	}
}

func TestRecommendations_EngineErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantErr  string
	}{
		{
			name:     "bad count",
			err:      models.NewValidationError("count", "must be between 1 and 50"),
			wantCode: http.StatusBadRequest,
			wantErr:  "VALIDATION_ERROR",
		},
		{
			name:     "no strategies produced results",
			err:      models.NewComputationError("recommend", errors.New("all strategies failed")),
			wantCode: http.StatusUnprocessableEntity,
			wantErr:  "COMPUTATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.engine.err = tt.err

			rec, body := doJSON(t, env.router, http.MethodGet, "/api/v1/recommendations/user-1", nil)

			wantError(t, rec, body, tt.wantCode, tt.wantErr)
		})
	}
}

func TestRecommendations_MalformedMinScore(t *testing.T) {
	env := newTestEnv(t)

	rec, body := doJSON(t, env.router, http.MethodGet, "/api/v1/recommendations/user-1?min_score=high", nil)

	wantError(t, rec, body, http.StatusBadRequest, "VALIDATION_ERROR")
	if env.engine.lastAnchor != "" {
		t.Error("engine must not be called with malformed parameters")
	}
}

// =====================================================
// POST /api/v1/interactions
// =====================================================

func TestRecordInteraction(t *testing.T) {
	env := newTestEnv(t)

	rec, body := doJSON(t, env.router, http.MethodPost, "/api/v1/interactions", map[string]interface{}{
		"user_id":   "user-1",
		"item_id":   "job-7",
		"item_type": "job",
		"type":      "apply",
		"rating":    4,
	})

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202 (body %s)", rec.Code, rec.Body.String())
	}
	if len(env.engine.interactions) != 1 {
		t.Fatalf("engine received %d interactions, want 1", len(env.engine.interactions))
	}

	got := env.engine.interactions[0]
	if got.UserID != "user-1" || got.ItemID != "job-7" {
		t.Errorf("interaction = %+v, want user-1 on job-7", got)
	}
	if got.Type != models.InteractionApply {
		t.Errorf("type = %q, want apply", got.Type)
	}
	if got.Rating == nil || *got.Rating != 4 {
		t.Errorf("rating = %v, want 4", got.Rating)
	}
	if got.Timestamp.IsZero() {
		t.Error("timestamp not stamped")
	}

	var echoed models.Interaction
	decodeData(t, body, &echoed)
	if echoed.UserID != "user-1" {
		t.Errorf("echoed user = %q, want user-1", echoed.UserID)
	}
}

func TestRecordInteraction_Validation(t *testing.T) {
	valid := map[string]interface{}{
		"user_id":   "user-1",
		"item_id":   "job-7",
		"item_type": "job",
		"type":      "view",
	}

	tests := []struct {
		name      string
		mutate    func(m map[string]interface{})
		wantField string
	}{
		{
			name:      "missing user",
			mutate:    func(m map[string]interface{}) { delete(m, "user_id") },
			wantField: "user_id",
		},
		{
			name:      "missing item",
			mutate:    func(m map[string]interface{}) { delete(m, "item_id") },
			wantField: "item_id",
		},
		{
			name:      "unknown item type",
			mutate:    func(m map[string]interface{}) { m["item_type"] = "playlist" },
			wantField: "item_type",
		},
		{
			name:      "unknown interaction type",
			mutate:    func(m map[string]interface{}) { m["type"] = "hover" },
			wantField: "type",
		},
		{
			name:      "rating above scale",
			mutate:    func(m map[string]interface{}) { m["rating"] = 7 },
			wantField: "rating",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			payload := make(map[string]interface{}, len(valid))
			for k, v := range valid {
				payload[k] = v
			}
			tt.mutate(payload)

			rec, body := doJSON(t, env.router, http.MethodPost, "/api/v1/interactions", payload)

			wantError(t, rec, body, http.StatusBadRequest, "VALIDATION_ERROR")
			if body.Error.Details["field"] != tt.wantField {
				t.Errorf("details = %v, want field %s", body.Error.Details, tt.wantField)
			}
			if len(env.engine.interactions) != 0 {
				t.Error("engine must not receive invalid interactions")
			}
		})
	}
}

func TestRecordInteraction_SubjectMustBeActor(t *testing.T) {
	env := newTestEnv(t)

	payload := map[string]interface{}{
		"user_id":   "user-1",
		"item_id":   "job-7",
		"item_type": "job",
		"type":      "view",
	}

	rec, body := doJSON(t, env.router, http.MethodPost, "/api/v1/interactions", payload,
		"X-Conexus-Subject", "user-2")

	wantError(t, rec, body, http.StatusForbidden, "PERMISSION_DENIED")
	if len(env.engine.interactions) != 0 {
		t.Error("engine must not record interactions for a foreign subject")
	}

	rec, _ = doJSON(t, env.router, http.MethodPost, "/api/v1/interactions", payload,
		"X-Conexus-Subject", "user-1")
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202 for the acting user", rec.Code)
	}
}
