// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/conexus/internal/logging"
	"github.com/tomtom215/conexus/internal/models"
	"github.com/tomtom215/conexus/internal/validation"
)

// maxBodyBytes caps request body size before JSON decoding.
const maxBodyBytes = 1 << 20

// respondJSON writes the envelope with proper headers. Marshal failures
// degrade to a bare 500 since the envelope itself cannot be trusted.
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondSuccess wraps data in a success envelope with elapsed time
// measured from started.
func respondSuccess(w http.ResponseWriter, status int, data interface{}, started time.Time) {
	respondJSON(w, status, &models.APIResponse{
		Status: "success",
		Data:   data,
		Metadata: models.Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: time.Since(started).Milliseconds(),
		},
	})
}

// respondCacheable is respondSuccess with the cached flag surfaced, for
// endpoints that serve from the result cache.
func respondCacheable(w http.ResponseWriter, status int, data interface{}, started time.Time, cached bool) {
	respondJSON(w, status, &models.APIResponse{
		Status: "success",
		Data:   data,
		Metadata: models.Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: time.Since(started).Milliseconds(),
			Cached:      cached,
		},
	})
}

// respondError writes an error envelope.
func respondError(w http.ResponseWriter, status int, code, message string, details map[string]interface{}) {
	respondJSON(w, status, &models.APIResponse{
		Status: "error",
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
		},
		Error: &models.APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// respondServiceError maps the shared error taxonomy onto HTTP
// statuses. Unrecognized errors are logged with request context and
// reported as a generic 500 so internals never leak to callers.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		ve *models.ValidationError
		ne *models.NotFoundError
		pe *models.PermissionError
		ce *models.ComputationError
	)

	switch {
	case errors.As(err, &ve):
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", ve.Error(),
			map[string]interface{}{"field": ve.Field})
	case errors.As(err, &ne):
		respondError(w, http.StatusNotFound, "NOT_FOUND", ne.Error(),
			map[string]interface{}{"resource": ne.Resource, "id": ne.ID})
	case errors.As(err, &pe):
		respondError(w, http.StatusForbidden, "PERMISSION_DENIED", pe.Error(),
			map[string]interface{}{"resource": pe.Resource})
	case errors.As(err, &ce):
		respondError(w, http.StatusUnprocessableEntity, "COMPUTATION_ERROR", ce.Error(),
			map[string]interface{}{"stage": ce.Stage})
	default:
		logging.Ctx(r.Context()).Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("Unhandled service error")
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR",
			"internal server error", nil)
	}
}

// decodeJSON decodes a bounded request body into dst. The caller is
// responsible for validating the decoded struct.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}

// validateRequest runs validator tags over a request struct and
// converts failures to the envelope error shape.
func validateRequest(v interface{}) *models.APIError {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return nil
	}
	apiErr := validationErr.ToAPIError()
	return &models.APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}
}

// getIntParam extracts an integer query parameter with a default.
// Unparseable values fall back to the default.
func getIntParam(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

// getFloatParam extracts an optional float query parameter. A missing
// key returns nil; a malformed value returns an error so silent
// misfilters cannot happen.
func getFloatParam(r *http.Request, key string) (*float64, error) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, models.NewValidationError(key, "must be a number")
	}
	return &f, nil
}

// parseFilters parses the filters query parameter. Filters are comma
// separated key:value pairs, e.g. "location:remote,seniority:senior".
// Malformed pairs are skipped.
func parseFilters(value string) map[string]string {
	if value == "" {
		return nil
	}
	filters := make(map[string]string)
	for _, pair := range strings.Split(value, ",") {
		key, val, ok := strings.Cut(strings.TrimSpace(pair), ":")
		if !ok || key == "" || val == "" {
			continue
		}
		filters[key] = val
	}
	if len(filters) == 0 {
		return nil
	}
	return filters
}
