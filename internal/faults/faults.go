// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

// Package faults defines the typed error taxonomy shared by the core and the
// HTTP layer. Expected failures (session expiry, validation, collaborator
// outages) are represented as *Error values and mapped to stable API codes;
// panics are reserved for programmer bugs.
package faults

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Code identifies an error class. Codes are part of the public API contract
// and must stay stable.
type Code string

const (
	CodeValidation     Code = "VALIDATION_ERROR"
	CodeSessionExpired Code = "SESSION_EXPIRED"
	CodeNotFound       Code = "NOT_FOUND"
	CodeRateLimited    Code = "RATE_LIMITED"
	CodeUnavailable    Code = "UNAVAILABLE"
	CodeInternal       Code = "INTERNAL"
)

// Error is a typed error carrying a taxonomy code, a human-readable message,
// an optional retry-after hint and an optional wrapped cause.
type Error struct {
	Code       Code
	Message    string
	RetryAfter time.Duration
	cause      error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is/As chains.
func (e *Error) Unwrap() error { return e.cause }

// Is matches two taxonomy errors by code so sentinel comparisons work:
//
//	errors.Is(err, faults.SessionExpired(""))
func (e *Error) Is(target error) bool {
	var te *Error
	if errors.As(target, &te) {
		return e.Code == te.Code
	}
	return false
}

// HTTPStatus maps the code to its HTTP status.
func (e *Error) HTTPStatus() int {
	switch e.Code {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeSessionExpired:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeRateLimited:
		return http.StatusTooManyRequests
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Validation builds a VALIDATION_ERROR.
func Validation(format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// SessionExpired builds a SESSION_EXPIRED error. An empty message gets the
// canonical phrasing.
func SessionExpired(message string) *Error {
	if message == "" {
		message = "session expired or not found"
	}
	return &Error{Code: CodeSessionExpired, Message: message}
}

// NotFound builds a NOT_FOUND error.
func NotFound(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// RateLimited builds a RATE_LIMITED error with a retry hint.
func RateLimited(retryAfter time.Duration) *Error {
	return &Error{
		Code:       CodeRateLimited,
		Message:    "rate limit exceeded",
		RetryAfter: retryAfter,
	}
}

// Unavailable builds an UNAVAILABLE error wrapping the collaborator cause.
func Unavailable(message string, cause error) *Error {
	return &Error{Code: CodeUnavailable, Message: message, cause: cause}
}

// Internal wraps an uncategorized error.
func Internal(cause error) *Error {
	return &Error{Code: CodeInternal, Message: "internal error", cause: cause}
}

// CodeOf extracts the taxonomy code from any error; non-taxonomy errors are
// reported as INTERNAL.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// StatusOf extracts the HTTP status from any error.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.HTTPStatus()
	}
	return http.StatusInternalServerError
}

// IsCode reports whether err carries the given taxonomy code.
func IsCode(err error, code Code) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}
