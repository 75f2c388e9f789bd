// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package api

import (
	"net/http"

	"github.com/tomtom215/tastegraph/internal/axis"
	"github.com/tomtom215/tastegraph/internal/calibration"
)

// StartCalibration handles POST /api/v1/profiles/{id}/calibration. Starting
// again replaces any session in progress for the domain.
func (h *Handler) StartCalibration(w http.ResponseWriter, r *http.Request) {
	var req CalibrationStartRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	d, err := axis.ParseDomain(req.Domain)
	if err != nil {
		writeError(w, r, err)
		return
	}

	sess, err := h.registry.StartCalibration(r.Context(), profileID(r), d)
	if err != nil {
		writeError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Created(sess.Progress())
}

// CalibrationSwipe handles POST /api/v1/profiles/{id}/calibration/swipe.
func (h *Handler) CalibrationSwipe(w http.ResponseWriter, r *http.Request) {
	var req SwipeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	sess, ok := h.calibrationSession(w, r, req.Domain)
	if !ok {
		return
	}

	progress, err := sess.Swipe(r.Context(), calibration.Decision(req.Decision))
	if err != nil {
		writeError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(progress)
}

// CalibrationDuel handles POST /api/v1/profiles/{id}/calibration/duel.
func (h *Handler) CalibrationDuel(w http.ResponseWriter, r *http.Request) {
	var req DuelRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	sess, ok := h.calibrationSession(w, r, req.Domain)
	if !ok {
		return
	}

	progress, err := sess.Duel(r.Context(), req.Winner)
	if err != nil {
		writeError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(progress)
}

func (h *Handler) calibrationSession(w http.ResponseWriter, r *http.Request, domain string) (*calibration.Session, bool) {
	d, err := axis.ParseDomain(domain)
	if err != nil {
		writeError(w, r, err)
		return nil, false
	}
	sess, err := h.registry.Calibration(profileID(r), d)
	if err != nil {
		writeError(w, r, err)
		return nil, false
	}
	return sess, true
}
