// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package models

import (
	"errors"
	"fmt"
)

// The error taxonomy below is shared by every core operation. Point
// lookups surface these to the caller; population scans and batches
// swallow per-record NotFoundError and count other failures instead of
// aborting. The API layer maps each type to an HTTP status.

// ValidationError reports rejected input: a missing identifier, a limit
// beyond the configured maximum, a rating outside [1,5].
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError reports an absent profile, job, or match.
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// NewNotFoundError creates a NotFoundError for the given resource.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// PermissionError reports a caller acting on a resource it does not own.
type PermissionError struct {
	Subject  string
	Resource string
	ID       string
}

// Error implements the error interface.
func (e *PermissionError) Error() string {
	return fmt.Sprintf("subject %q may not access %s %s", e.Subject, e.Resource, e.ID)
}

// NewPermissionError creates a PermissionError.
func NewPermissionError(subject, resource, id string) *PermissionError {
	return &PermissionError{Subject: subject, Resource: resource, ID: id}
}

// ComputationError reports a scoring failure on malformed profile data.
// It wraps the underlying cause for errors.Is/As chains.
type ComputationError struct {
	Stage string
	Err   error
}

// Error implements the error interface.
func (e *ComputationError) Error() string {
	return fmt.Sprintf("computation failed in %s: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ComputationError) Unwrap() error {
	return e.Err
}

// NewComputationError wraps err as a ComputationError for the given stage.
func NewComputationError(stage string, err error) *ComputationError {
	return &ComputationError{Stage: stage, Err: err}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}

// IsPermission reports whether err is (or wraps) a PermissionError.
func IsPermission(err error) bool {
	var pe *PermissionError
	return errors.As(err, &pe)
}

// IsComputation reports whether err is (or wraps) a ComputationError.
func IsComputation(err error) bool {
	var ce *ComputationError
	return errors.As(err, &ce)
}
