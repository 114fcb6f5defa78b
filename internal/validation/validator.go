// Avocet - Birdwatching Hotspot Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/avocet

// Package validation wraps go-playground/validator v10 behind a singleton
// instance shared by configuration loading and API request validation.
//
// The built-in latitude/longitude validators cover coordinate fields, and
// failures translate into the VALIDATION_ERROR payload the API returns:
//
//	type recommendationsQuery struct {
//	    Lat      float64 `validate:"latitude"`
//	    Lng      float64 `validate:"longitude"`
//	    RadiusKm float64 `validate:"gt=0,lte=500"`
//	}
//
//	if verr := validation.ValidateStruct(&q); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
//	    return
//	}
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// GetValidator returns the shared validator instance. The instance caches
// struct metadata, so creating one per call would throw that cache away.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		// Stock validators are enough here: latitude/longitude for
		// coordinates, gt/gte/lt/lte for numeric bounds, oneof for enums,
		// required/min/max for presence and lengths.
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidationError is one failed field check.
type ValidationError struct {
	field   string
	tag     string
	value   interface{}
	message string
}

// Field returns the struct field name that failed.
func (e *ValidationError) Field() string { return e.field }

// Tag returns the validation tag that failed.
func (e *ValidationError) Tag() string { return e.tag }

// Error returns the translated human-readable message.
func (e *ValidationError) Error() string { return e.message }

// RequestValidationError collects every failed field check from one
// ValidateStruct call.
type RequestValidationError struct {
	errors []ValidationError
}

// Errors returns the individual field errors in declaration order.
func (ve *RequestValidationError) Errors() []ValidationError {
	return ve.errors
}

// Error joins all field messages with "; ".
func (ve *RequestValidationError) Error() string {
	if len(ve.errors) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(ve.errors))
	for i := range ve.errors {
		parts[i] = ve.errors[i].message
	}
	return strings.Join(parts, "; ")
}

// APIError mirrors the api package's error payload shape. Declared here
// rather than imported so validation stays a leaf package.
type APIError struct {
	Code    string
	Message string
	Details map[string]interface{}
}

// ToAPIError renders the collected failures as a VALIDATION_ERROR payload.
// A single failure carries field/tag/value detail keys; multiple failures
// carry a "fields" list plus a combined message naming each field.
func (ve *RequestValidationError) ToAPIError() *APIError {
	switch len(ve.errors) {
	case 0:
		return &APIError{Code: "VALIDATION_ERROR", Message: "Validation failed"}
	case 1:
		e := ve.errors[0]
		return &APIError{
			Code:    "VALIDATION_ERROR",
			Message: e.message,
			Details: map[string]interface{}{
				"field": e.field,
				"tag":   e.tag,
				"value": e.value,
			},
		}
	}

	fields := make([]map[string]interface{}, len(ve.errors))
	parts := make([]string, len(ve.errors))
	for i, e := range ve.errors {
		fields[i] = map[string]interface{}{
			"field":   e.field,
			"tag":     e.tag,
			"message": e.message,
		}
		parts[i] = fmt.Sprintf("%s: %s", e.field, e.message)
	}
	return &APIError{
		Code:    "VALIDATION_ERROR",
		Message: strings.Join(parts, "; "),
		Details: map[string]interface{}{"fields": fields},
	}
}

// ValidateStruct runs the shared validator over s. It returns nil when every
// check passes, otherwise a RequestValidationError with one entry per failed
// field.
func ValidateStruct(s interface{}) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		// InvalidValidationError (nil or non-struct input) and anything else
		// unexpected still surfaces as a single opaque failure.
		return &RequestValidationError{errors: []ValidationError{{
			field:   "unknown",
			tag:     "unknown",
			message: err.Error(),
		}}}
	}

	out := make([]ValidationError, len(fieldErrs))
	for i, fe := range fieldErrs {
		out[i] = ValidationError{
			field:   fe.Field(),
			tag:     fe.Tag(),
			value:   fe.Value(),
			message: messageFor(fe),
		}
	}
	return &RequestValidationError{errors: out}
}

// messageFor renders one field error as a sentence naming the field, e.g.
// "Lat must be a valid latitude (-90 to 90)".
func messageFor(fe validator.FieldError) string {
	field, param := fe.Field(), fe.Param()

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "latitude":
		return field + " must be a valid latitude (-90 to 90)"
	case "longitude":
		return field + " must be a valid longitude (-180 to 180)"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, param)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "lt":
		return fmt.Sprintf("%s must be less than %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, param)
	case "min", "max":
		bound := "at least"
		if fe.Tag() == "max" {
			bound = "at most"
		}
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s must be %s %s characters", field, bound, param)
		}
		return fmt.Sprintf("%s must be %s %s", field, bound, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
