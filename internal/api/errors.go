// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/tastegraph/internal/advisory"
	"github.com/tomtom215/tastegraph/internal/axis"
	"github.com/tomtom215/tastegraph/internal/calibration"
	"github.com/tomtom215/tastegraph/internal/catalog"
	"github.com/tomtom215/tastegraph/internal/logging"
	"github.com/tomtom215/tastegraph/internal/recommend"
	"github.com/tomtom215/tastegraph/internal/reinforcement"
	"github.com/tomtom215/tastegraph/internal/session"
	"github.com/tomtom215/tastegraph/internal/storage"
)

var (
	// ErrBodyTooLarge is returned when a request body exceeds maxBodyBytes.
	ErrBodyTooLarge = errors.New("request body too large")

	// ErrEmptyBody is returned when a JSON body is required but missing.
	ErrEmptyBody = errors.New("request body is empty")
)

// statusFor maps domain errors to an HTTP status and error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, session.ErrInvalidProfileID),
		errors.Is(err, storage.ErrInvalidKey),
		errors.Is(err, axis.ErrUnknownDomain),
		errors.Is(err, recommend.ErrInvalidProfile),
		errors.Is(err, reinforcement.ErrUnknownVote),
		errors.Is(err, reinforcement.ErrUnknownReason),
		errors.Is(err, advisory.ErrUnknownOutcome),
		errors.Is(err, calibration.ErrUnknownDecision),
		errors.Is(err, calibration.ErrInvalidChoice):
		return http.StatusBadRequest, ErrCodeBadRequest

	case errors.Is(err, reinforcement.ErrPendingNotFound),
		errors.Is(err, session.ErrNoCalibration):
		return http.StatusNotFound, ErrCodeNotFound

	case errors.Is(err, reinforcement.ErrPendingExists),
		errors.Is(err, calibration.ErrWrongPhase),
		errors.Is(err, calibration.ErrSessionComplete):
		return http.StatusConflict, ErrCodeConflict

	case errors.Is(err, catalog.ErrCatalogEmpty),
		errors.Is(err, recommend.ErrNoCatalog):
		return http.StatusServiceUnavailable, ErrCodeServiceUnavailable

	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, ErrCodeTimeout

	default:
		return http.StatusInternalServerError, ErrCodeInternalError
	}
}

// writeError maps err to a response. Unexpected errors are logged and their
// message is not echoed to the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		logging.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		message = "An internal error occurred"
	}
	NewResponseWriter(w, r).Error(status, code, message)
}
