// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/conexus/internal/matching"
	"github.com/tomtom215/conexus/internal/models"
	"github.com/tomtom215/conexus/internal/scoring"
)

// scoreMatchRequest is the body of POST /matches/score.
type scoreMatchRequest struct {
	CandidateID string `json:"candidate_id" validate:"required"`
	JobID       string `json:"job_id" validate:"required"`
}

// matchingConfigView mirrors matching.Config with wire tags. The
// service config struct carries none because it never crosses the API
// boundary directly.
type matchingConfigView struct {
	Weights              scoring.FactorWeights `json:"weights"`
	MinScore             float64               `json:"min_score"`
	MaxMatchesPerRequest int                   `json:"max_matches_per_request"`
	MaxBatchPairings     int                   `json:"max_batch_pairings"`
}

func newMatchingConfigView(cfg matching.Config) matchingConfigView {
	return matchingConfigView{
		Weights:              cfg.Weights,
		MinScore:             cfg.MinScore,
		MaxMatchesPerRequest: cfg.MaxMatchesPerRequest,
		MaxBatchPairings:     cfg.MaxBatchPairings,
	}
}

// listMatchesResponse is the data payload of GET /matches. The store
// reads a window without counting the full result set, so there is no
// total; has_more is inferred from a full window.
type listMatchesResponse struct {
	Matches []models.MatchResult `json:"matches"`
	Count   int                  `json:"count"`
	Offset  int                  `json:"offset"`
	Limit   int                  `json:"limit"`
	HasMore bool                 `json:"has_more"`
}

// ScoreMatch scores one candidate against one job and persists the
// resulting snapshot.
//
// @Summary Score a candidate against a job
// @Description Computes the multi-factor match score for one candidate-job pair, persists the result as a new immutable snapshot, and returns it. Re-scoring the same pair creates a new snapshot rather than updating the old one.
// @Tags Matching
// @Accept json
// @Produce json
// @Param request body scoreMatchRequest true "Candidate and job to score"
// @Success 201 {object} models.APIResponse{data=models.MatchResult} "Persisted match result"
// @Failure 400 {object} models.APIResponse "Invalid request"
// @Failure 404 {object} models.APIResponse "Candidate or job not found"
// @Failure 422 {object} models.APIResponse "Scoring could not complete"
// @Router /matches/score [post]
func (h *Handler) ScoreMatch(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var req scoreMatchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "request body must be valid JSON", nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
		return
	}

	result, err := h.matching.ScoreCandidate(r.Context(), req.CandidateID, req.JobID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusCreated, result, started)
}

// CandidatesForJob returns the best-matching candidates for a job.
//
// @Summary Find candidates for a job
// @Description Scores the filtered candidate population against the job and returns a sorted, paginated page. When the request carries a gateway subject, it must match the job's owning employer.
// @Tags Matching
// @Produce json
// @Param jobID path string true "Job profile ID"
// @Param limit query int false "Page size (default 20, bounded by the per-request cap)"
// @Param offset query int false "Results to skip"
// @Param min_score query number false "Minimum score 0-100 (default from service config)"
// @Param sort_by query string false "Sort field: score, confidence or lastMatched" Enums(score, confidence, lastMatched)
// @Param sort_order query string false "Sort direction" Enums(asc, desc)
// @Param filters query string false "Directory filters as comma-separated key:value pairs, e.g. location:berlin,seniority:senior"
// @Success 200 {object} models.APIResponse{data=models.MatchPage} "Page of scored candidates"
// @Failure 400 {object} models.APIResponse "Invalid parameters"
// @Failure 403 {object} models.APIResponse "Subject does not own the job"
// @Failure 404 {object} models.APIResponse "Job not found"
// @Router /jobs/{jobID}/candidates [get]
func (h *Handler) CandidatesForJob(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	jobID := chi.URLParam(r, "jobID")

	if subject := subjectFromRequest(r); subject != "" {
		job, err := h.directory.GetJobProfile(r.Context(), jobID)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		if job.EmployerID != "" && job.EmployerID != subject {
			respondServiceError(w, r, models.NewPermissionError(subject, "job", jobID))
			return
		}
	}

	opts, err := searchOptionsFromQuery(r)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	page, err := h.matching.FindCandidatesForJob(r.Context(), jobID, opts)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, page, started)
}

// JobsForCandidate returns the best-matching jobs for a candidate.
//
// @Summary Find jobs for a candidate
// @Description Scores the filtered job population against the candidate and returns a sorted, paginated page. When the request carries a gateway subject, it must be the candidate.
// @Tags Matching
// @Produce json
// @Param candidateID path string true "Candidate profile ID"
// @Param limit query int false "Page size (default 20, bounded by the per-request cap)"
// @Param offset query int false "Results to skip"
// @Param min_score query number false "Minimum score 0-100 (default from service config)"
// @Param sort_by query string false "Sort field: score, confidence or lastMatched" Enums(score, confidence, lastMatched)
// @Param sort_order query string false "Sort direction" Enums(asc, desc)
// @Param filters query string false "Directory filters as comma-separated key:value pairs, e.g. remote:true,category:engineering"
// @Success 200 {object} models.APIResponse{data=models.MatchPage} "Page of scored jobs"
// @Failure 400 {object} models.APIResponse "Invalid parameters"
// @Failure 403 {object} models.APIResponse "Subject is not the candidate"
// @Failure 404 {object} models.APIResponse "Candidate not found"
// @Router /candidates/{candidateID}/jobs [get]
func (h *Handler) JobsForCandidate(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	candidateID := chi.URLParam(r, "candidateID")

	if subject := subjectFromRequest(r); subject != "" && subject != candidateID {
		respondServiceError(w, r, models.NewPermissionError(subject, "candidate", candidateID))
		return
	}

	opts, err := searchOptionsFromQuery(r)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	page, err := h.matching.FindJobsForCandidate(r.Context(), candidateID, opts)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, page, started)
}

// BatchMatch scores a batch of candidate-job pairings.
//
// @Summary Score a batch of pairings
// @Description Expands the request into candidate-job pairings and scores each through the same path as single scoring. Pairing failures are counted, not surfaced; results below the effective minimum score are excluded.
// @Tags Matching
// @Accept json
// @Produce json
// @Param request body models.BatchMatchRequest true "Batch pairing request"
// @Success 200 {object} models.APIResponse{data=models.BatchMatchResult} "Batch outcome with per-pairing results"
// @Failure 400 {object} models.APIResponse "Invalid request or pairing cap exceeded"
// @Router /matches/batch [post]
func (h *Handler) BatchMatch(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var req models.BatchMatchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "request body must be valid JSON", nil)
		return
	}

	result, err := h.matching.BatchMatch(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, result, started)
}

// GetMatch returns one persisted match snapshot by ID.
//
// @Summary Get a match by ID
// @Tags Matching
// @Produce json
// @Param matchID path string true "Match result UUID"
// @Success 200 {object} models.APIResponse{data=models.MatchResult} "Match result"
// @Failure 400 {object} models.APIResponse "Malformed UUID"
// @Failure 404 {object} models.APIResponse "Match not found"
// @Router /matches/{matchID} [get]
func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	result, err := h.matching.GetMatch(r.Context(), chi.URLParam(r, "matchID"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, result, started)
}

// ListMatches returns persisted match snapshots, newest first.
//
// @Summary List persisted matches
// @Description Reads persisted match snapshots newest first, optionally filtered by candidate, job, status or minimum score.
// @Tags Matching
// @Produce json
// @Param candidate_id query string false "Filter by candidate ID"
// @Param job_id query string false "Filter by job ID"
// @Param status query string false "Filter by lifecycle status" Enums(pending, active, archived)
// @Param min_score query number false "Minimum score 0-100"
// @Param limit query int false "Page size (default 20, bounded by the per-request cap)"
// @Param offset query int false "Results to skip"
// @Success 200 {object} models.APIResponse{data=listMatchesResponse} "Page of match results"
// @Failure 400 {object} models.APIResponse "Invalid parameters"
// @Router /matches [get]
func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	minScore, err := getFloatParam(r, "min_score")
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	status := models.MatchStatus(r.URL.Query().Get("status"))
	if status != "" && !models.IsValidMatchStatus(status) {
		respondServiceError(w, r, models.NewValidationError("status",
			fmt.Sprintf("must be one of %v", models.ValidMatchStatuses)))
		return
	}

	filters := models.MatchFilters{
		CandidateID: r.URL.Query().Get("candidate_id"),
		JobID:       r.URL.Query().Get("job_id"),
		Status:      status,
		MinScore:    minScore,
	}
	limit := getIntParam(r, "limit", 20)
	offset := getIntParam(r, "offset", 0)

	matches, err := h.matching.ListMatches(r.Context(), filters, limit, offset)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, listMatchesResponse{
		Matches: matches,
		Count:   len(matches),
		Offset:  offset,
		Limit:   limit,
		HasMore: len(matches) == limit,
	}, started)
}

// MatchStats returns aggregate statistics over persisted matches.
//
// @Summary Match statistics
// @Description Aggregates persisted match snapshots: total count, average score, high-quality count (score >= 80) and matches created within the trailing seven days.
// @Tags Matching
// @Produce json
// @Param candidate_id query string false "Restrict to one candidate"
// @Param job_id query string false "Restrict to one job"
// @Success 200 {object} models.APIResponse{data=models.MatchStats} "Aggregate statistics"
// @Router /matches/stats [get]
func (h *Handler) MatchStats(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	stats, err := h.matching.GetMatchStats(r.Context(), models.StatsFilters{
		CandidateID: r.URL.Query().Get("candidate_id"),
		JobID:       r.URL.Query().Get("job_id"),
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, stats, started)
}

// GetMatchingConfig returns the effective matching configuration.
//
// @Summary Get matching configuration
// @Tags Matching
// @Produce json
// @Success 200 {object} models.APIResponse{data=matchingConfigView} "Effective configuration"
// @Router /matches/config [get]
func (h *Handler) GetMatchingConfig(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	respondSuccess(w, http.StatusOK, newMatchingConfigView(h.matching.Config()), started)
}

// UpdateMatchingConfig applies a partial runtime update to the matching
// configuration and returns the new effective values. Tuning is an
// operator action, so an explicit gateway subject is required; internal
// callers must identify themselves.
//
// @Summary Update matching configuration
// @Description Applies a partial update to factor weights and service limits at runtime. Omitted fields keep their current values. Derived caches are invalidated. Requires an authenticated gateway subject.
// @Tags Matching
// @Accept json
// @Produce json
// @Param request body matching.ConfigUpdate true "Fields to update"
// @Success 200 {object} models.APIResponse{data=matchingConfigView} "New effective configuration"
// @Failure 400 {object} models.APIResponse "Invalid weights or limits"
// @Failure 403 {object} models.APIResponse "Missing gateway subject"
// @Router /matches/config [put]
func (h *Handler) UpdateMatchingConfig(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	subject := subjectFromRequest(r)
	if subject == "" {
		respondServiceError(w, r, models.NewPermissionError("anonymous", "matching", "config"))
		return
	}

	var update matching.ConfigUpdate
	if err := decodeJSON(w, r, &update); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "request body must be valid JSON", nil)
		return
	}

	if err := h.matching.UpdateConfig(update); err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, newMatchingConfigView(h.matching.Config()), started)
}

// searchOptionsFromQuery reads pagination, sorting and filter query
// parameters into search options. Range and enum validation is left to
// the matching service, which owns the limits.
func searchOptionsFromQuery(r *http.Request) (models.SearchOptions, error) {
	opts := models.SearchOptions{
		Filters:   parseFilters(r.URL.Query().Get("filters")),
		SortBy:    models.SortField(r.URL.Query().Get("sort_by")),
		SortOrder: models.SortOrder(r.URL.Query().Get("sort_order")),
		Limit:     getIntParam(r, "limit", 0),
		Offset:    getIntParam(r, "offset", 0),
	}

	minScore, err := getFloatParam(r, "min_score")
	if err != nil {
		return opts, err
	}
	opts.MinScore = minScore

	return opts, nil
}
