// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/tastegraph/internal/recommend"
)

// HealthStatus is the body of GET /healthz.
type HealthStatus struct {
	Status         string          `json:"status"`
	CatalogItems   int             `json:"catalog_items"`
	ActiveProfiles int             `json:"active_profiles"`
	Ranking        recommend.Stats `json:"ranking"`
	UptimeSeconds  float64         `json:"uptime_seconds"`
}

// Health reports liveness. It answers 503 while the catalog is empty because
// no ranking can succeed until it loads.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:         "ok",
		CatalogItems:   h.catalog.Len(),
		ActiveProfiles: h.registry.Len(),
		Ranking:        h.engine.Stats(),
		UptimeSeconds:  time.Since(h.startTime).Seconds(),
	}

	rw := NewResponseWriter(w, r)
	if status.CatalogItems == 0 {
		status.Status = "degraded"
		rw.write(http.StatusServiceUnavailable, APIResponse{Success: false, Data: status})
		return
	}
	rw.Success(status)
}

// ResetCatalog drops the cached catalog, reloads it from its source and
// purges cached rankings.
func (h *Handler) ResetCatalog(w http.ResponseWriter, r *http.Request) {
	h.catalog.Reset()
	h.engine.InvalidateCache()

	if err := h.catalog.Load(r.Context()); err != nil {
		h.logger.Warn().Err(err).Msg("catalog reload failed")
		writeError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(map[string]int{"items": h.catalog.Len()})
}
