// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Favorites handles GET /api/v1/profiles/{id}/favorites.
func (h *Handler) Favorites(w http.ResponseWriter, r *http.Request) {
	items, err := h.registry.Favorites(r.Context(), profileID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if items == nil {
		items = []string{}
	}
	NewResponseWriter(w, r).Success(map[string][]string{"items": items})
}

// AddFavorite handles PUT /api/v1/profiles/{id}/favorites/{item}. Adding an
// existing favorite is a no-op.
func (h *Handler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	if err := h.registry.AddFavorite(r.Context(), profileID(r), chi.URLParam(r, "item")); err != nil {
		writeError(w, r, err)
		return
	}
	NewResponseWriter(w, r).NoContent()
}

// RemoveFavorite handles DELETE /api/v1/profiles/{id}/favorites/{item}.
// Removing a missing favorite is a no-op.
func (h *Handler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	if err := h.registry.RemoveFavorite(r.Context(), profileID(r), chi.URLParam(r, "item")); err != nil {
		writeError(w, r, err)
		return
	}
	NewResponseWriter(w, r).NoContent()
}
