// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/conexus/internal/models"
)

// interactionRequest is the body of POST /interactions. It is validated
// at the boundary so malformed submissions fail with field-level detail
// before reaching the engine.
type interactionRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	ItemID   string `json:"item_id" validate:"required"`
	ItemType string `json:"item_type" validate:"required,oneof=job candidate"`
	Type     string `json:"type" validate:"required,oneof=view save apply dismiss"`
	Rating   *int   `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
}

// Recommendations returns personalized recommendations for a user.
//
// @Summary Get recommendations
// @Description Blends the configured strategies into a ranked recommendation list for the user. Results are cached per user and parameter set; the metadata block reports cache hits. When the request carries a gateway subject, it must be the user.
// @Tags Recommendations
// @Produce json
// @Param userID path string true "User (candidate or employer contact) ID"
// @Param type query string false "Item type to recommend (default job)" Enums(job, candidate)
// @Param count query int false "Number of items (default 10, max 50)"
// @Param strategy query string false "Single strategy instead of the hybrid blend" Enums(collaborative, similarity, trending)
// @Param algorithms query string false "Comma-separated allow-list of algorithms for the hybrid blend"
// @Param min_score query number false "Minimum item score in [0,1]"
// @Param min_confidence query number false "Minimum item confidence in [0,1]"
// @Param filters query string false "Strategy filters as comma-separated key:value pairs, e.g. category:engineering"
// @Success 200 {object} models.APIResponse{data=models.RecommendationResult} "Ranked recommendations"
// @Failure 400 {object} models.APIResponse "Invalid parameters"
// @Failure 403 {object} models.APIResponse "Subject is not the user"
// @Failure 422 {object} models.APIResponse "No strategy could produce results"
// @Router /recommendations/{userID} [get]
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	userID := chi.URLParam(r, "userID")

	if subject := subjectFromRequest(r); subject != "" && subject != userID {
		respondServiceError(w, r, models.NewPermissionError(subject, "recommendations for user", userID))
		return
	}

	itemType := models.ItemTypeJob
	if v := r.URL.Query().Get("type"); v != "" {
		itemType = models.ItemType(v)
	}

	req, err := recommendationRequestFromQuery(r)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	result, err := h.recommend.GetRecommendations(r.Context(), userID, itemType, req)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondCacheable(w, http.StatusOK, result, started, result.Cached)
}

// RecordInteraction ingests one user-item interaction.
//
// @Summary Record an interaction
// @Description Appends one view, save, apply or dismiss event to the interaction log and invalidates the user's cached recommendations. The event influences recommendation models from the next refresh cycle onward, so the response is 202. When the request carries a gateway subject, it must be the acting user.
// @Tags Recommendations
// @Accept json
// @Produce json
// @Param request body interactionRequest true "Interaction to record"
// @Success 202 {object} models.APIResponse{data=models.Interaction} "Recorded interaction"
// @Failure 400 {object} models.APIResponse "Invalid request"
// @Failure 403 {object} models.APIResponse "Subject is not the acting user"
// @Router /interactions [post]
func (h *Handler) RecordInteraction(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var req interactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "request body must be valid JSON", nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
		return
	}

	if subject := subjectFromRequest(r); subject != "" && subject != req.UserID {
		respondServiceError(w, r, models.NewPermissionError(subject, "interactions of user", req.UserID))
		return
	}

	interaction := models.Interaction{
		UserID:    req.UserID,
		ItemID:    req.ItemID,
		ItemType:  models.ItemType(req.ItemType),
		Type:      models.InteractionType(req.Type),
		Rating:    req.Rating,
		Timestamp: time.Now().UTC(),
	}

	if err := h.recommend.RecordInteraction(r.Context(), interaction); err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusAccepted, interaction, started)
}

// recommendationRequestFromQuery reads recommendation tuning query
// parameters. Enum and range validation is left to the engine.
func recommendationRequestFromQuery(r *http.Request) (models.RecommendationRequest, error) {
	req := models.RecommendationRequest{
		Count:    getIntParam(r, "count", 0),
		Strategy: models.RecommendationAlgorithm(r.URL.Query().Get("strategy")),
		Filters:  parseFilters(r.URL.Query().Get("filters")),
	}

	minScore, err := getFloatParam(r, "min_score")
	if err != nil {
		return req, err
	}
	req.MinScore = minScore

	minConfidence, err := getFloatParam(r, "min_confidence")
	if err != nil {
		return req, err
	}
	req.MinConfidence = minConfidence

	if raw := r.URL.Query().Get("algorithms"); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			req.AllowAlgorithms = append(req.AllowAlgorithms, models.RecommendationAlgorithm(name))
		}
	}

	return req, nil
}
