// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

package api

import (
	"errors"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/tomtom215/cinemoment/internal/faults"
	"github.com/tomtom215/cinemoment/internal/logging"
	"github.com/tomtom215/cinemoment/internal/models"
)

// maxBodyBytes bounds request bodies. Refinement feedback for a full list
// fits comfortably under 1 MiB.
const maxBodyBytes = 1 << 20

// respondJSON writes v with the given status. Encoding failures are logged
// but not surfaced: headers are already gone by then.
func respondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("response encoding failed")
	}
}

// respondError maps any error to the stable {error, code, details?} body.
// Non-taxonomy errors become INTERNAL and are logged with the request ID.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var fe *faults.Error
	if !errors.As(err, &fe) {
		fe = faults.Internal(err)
	}

	status := fe.HTTPStatus()
	if status >= http.StatusInternalServerError {
		logging.Ctx(r.Context()).Error().Err(err).
			Str("path", r.URL.Path).
			Msg("request failed")
	} else {
		logging.Ctx(r.Context()).Debug().Err(err).
			Str("path", r.URL.Path).
			Msg("request rejected")
	}

	body := models.APIError{
		Error: fe.Message,
		Code:  string(fe.Code),
	}
	if fe.RetryAfter > 0 {
		body.RetryAfter = int(fe.RetryAfter.Seconds())
	}
	respondJSON(w, r, status, body)
}

// decodeBody decodes a bounded JSON request body into dst.
func decodeBody(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return faults.Validation("malformed request body: %v", err)
	}
	return nil
}
