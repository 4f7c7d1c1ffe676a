// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

// Package validation checks API request structs with
// go-playground/validator v10 and renders failures in the envelope
// error shape.
//
// A single shared validator is initialized on first use; it caches
// struct metadata and is safe for concurrent handlers. Failed fields
// are reported under their JSON wire names, so a request spelling
// candidate_id gets an error that spells candidate_id too:
//
//	type InteractionRequest struct {
//	    UserID   string `json:"user_id" validate:"required"`
//	    ItemType string `json:"item_type" validate:"required,oneof=job candidate"`
//	    Rating   *int   `json:"rating" validate:"omitempty,min=1,max=5"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
//	    return
//	}
//
// ToAPIError keeps single failures flat and lists multiple failures
// under a fields array:
//
//	{
//	    "code": "VALIDATION_ERROR",
//	    "message": "rating must be at most 5",
//	    "details": {"field": "rating", "tag": "max", "value": 9}
//	}
//
//	{
//	    "code": "VALIDATION_ERROR",
//	    "message": "user_id: user_id is required; rating: rating must be at most 5",
//	    "details": {"fields": [
//	        {"field": "user_id", "tag": "required", "message": "user_id is required"},
//	        {"field": "rating", "tag": "max", "message": "rating must be at most 5"}
//	    ]}
//	}
//
// Tag failures translate to plain sentences: required becomes
// "candidate_id is required", oneof lists the allowed values, min and
// max adapt their wording to string versus numeric fields. Tags
// without bespoke text fall back to "<field> failed <tag> validation".
package validation
