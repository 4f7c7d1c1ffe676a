// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

const validationErrorCode = "VALIDATION_ERROR"

// The validator caches struct metadata, so one shared instance serves
// the whole API surface.
var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// ValidationError is one failed field check.
type ValidationError struct {
	field   string
	tag     string
	value   interface{}
	message string
}

// Field returns the wire name of the field that failed: the JSON tag
// name where one exists, the struct field name otherwise.
func (e *ValidationError) Field() string {
	return e.field
}

// Tag returns the validation tag that failed.
func (e *ValidationError) Tag() string {
	return e.tag
}

// Error returns the translated, human-readable message.
func (e *ValidationError) Error() string {
	return e.message
}

// RequestValidationError aggregates every failed check of one request.
type RequestValidationError struct {
	errors []ValidationError
}

// Errors returns the individual field failures.
func (ve *RequestValidationError) Errors() []ValidationError {
	return ve.errors
}

// Error joins the field messages into one line.
func (ve *RequestValidationError) Error() string {
	if len(ve.errors) == 0 {
		return "validation failed"
	}

	messages := make([]string, len(ve.errors))
	for i, err := range ve.errors {
		messages[i] = err.Error()
	}
	return strings.Join(messages, "; ")
}

// APIError mirrors models.APIError so the api package can translate
// without an import cycle.
type APIError struct {
	Code    string
	Message string
	Details map[string]interface{}
}

// ToAPIError renders the failures in the envelope error shape. A single
// failure reports its field directly; multiple failures are listed
// under a fields array.
func (ve *RequestValidationError) ToAPIError() *APIError {
	switch len(ve.errors) {
	case 0:
		return &APIError{Code: validationErrorCode, Message: "Validation failed"}
	case 1:
		e := ve.errors[0]
		return &APIError{
			Code:    validationErrorCode,
			Message: e.message,
			Details: map[string]interface{}{
				"field": e.field,
				"tag":   e.tag,
				"value": e.value,
			},
		}
	}

	fields := make([]map[string]interface{}, len(ve.errors))
	messages := make([]string, len(ve.errors))
	for i, e := range ve.errors {
		fields[i] = map[string]interface{}{
			"field":   e.field,
			"tag":     e.tag,
			"message": e.message,
		}
		messages[i] = fmt.Sprintf("%s: %s", e.field, e.message)
	}

	return &APIError{
		Code:    validationErrorCode,
		Message: strings.Join(messages, "; "),
		Details: map[string]interface{}{"fields": fields},
	}
}

// GetValidator returns the shared validator, initializing it on first
// use. Safe for concurrent callers.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Report failures under the JSON wire names the API speaks,
		// falling back to the struct field name for untagged fields.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
	})

	return validate
}

// ValidateStruct runs the validate tags of s and returns nil on
// success. The request structs get by on built-in validators: required,
// min and max for presence and bounds, oneof for the enum fields, uuid
// and email for identifiers and contacts.
func ValidateStruct(s interface{}) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		// InvalidValidationError: the caller handed over something
		// that is not a struct. Report it instead of panicking.
		return &RequestValidationError{errors: []ValidationError{{
			field:   "unknown",
			tag:     "unknown",
			message: err.Error(),
		}}}
	}

	out := make([]ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, ValidationError{
			field:   fe.Field(),
			tag:     fe.Tag(),
			value:   fe.Value(),
			message: translate(fe),
		})
	}

	return &RequestValidationError{errors: out}
}

// translate renders a FieldError as the message the API returns. Only
// the tags the request structs use get bespoke text; anything else
// falls through to a generic form.
func translate(fe validator.FieldError) string {
	field, param := fe.Field(), fe.Param()

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, param)
	case "uuid":
		return field + " must be a valid UUID"
	case "email":
		return field + " must be a valid email address"
	case "url":
		return field + " must be a valid URL"
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, param)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	case "lt":
		return fmt.Sprintf("%s must be less than %s", field, param)
	case "min", "max":
		bound := "at least"
		if fe.Tag() == "max" {
			bound = "at most"
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be %s %s characters", field, bound, param)
		}
		return fmt.Sprintf("%s must be %s %s", field, bound, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
