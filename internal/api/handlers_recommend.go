// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package api

import (
	"context"
	"net/http"

	"github.com/tomtom215/tastegraph/internal/axis"
	"github.com/tomtom215/tastegraph/internal/logging"
	"github.com/tomtom215/tastegraph/internal/recommend"
)

// Recommendations handles POST /api/v1/profiles/{id}/recommendations.
// The profile combines calibration scores with the vote count; favorites are
// excluded when asked.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	var req RecommendationsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	d, err := axis.ParseDomain(req.Domain)
	if err != nil {
		writeError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), rankTimeout)
	defer cancel()

	pid := profileID(r)
	profile, err := h.registry.Profile(ctx, pid, d)
	if err != nil {
		writeError(w, r, err)
		return
	}

	exclude := append([]string(nil), req.ExcludeIDs...)
	if req.ExcludeFavorites {
		favorites, err := h.registry.Favorites(ctx, pid)
		if err != nil {
			writeError(w, r, err)
			return
		}
		exclude = append(exclude, favorites...)
	}

	resp, err := h.engine.Rank(ctx, recommend.Request{
		ProfileID:  pid,
		Profile:    profile,
		K:          req.K,
		ExcludeIDs: exclude,
		RequestID:  logging.RequestIDFromContext(ctx),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(resp)
}
