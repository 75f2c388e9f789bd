// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/tastegraph/internal/middleware"
)

// Router wires handlers and middleware into a chi mux.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router.
func NewRouter(handler *Handler, mw *ChiMiddleware) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{handler: handler, chiMiddleware: mw}
}

// Handler builds the HTTP handler.
func (router *Router) Handler() http.Handler {
	h := router.handler
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).NotFound("route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).Error(http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "method not allowed")
	})

	r.Get("/healthz", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(chimiddleware.Compress(5, "application/json"))

		r.Post("/catalog/reset", h.ResetCatalog)

		r.Route("/profiles/{id}", func(r chi.Router) {
			r.Use(profileContext)

			r.Get("/identity", h.Identity)
			r.Post("/votes", h.Vote)
			r.Post("/pending/{eval}/finalize", h.FinalizePending)
			r.Delete("/pending/{eval}", h.DiscardPending)

			r.Post("/recommendations", h.Recommendations)
			r.Post("/advisory", h.Advisory)
			r.Post("/advisory/outcome", h.AdvisoryOutcome)

			r.Post("/calibration", h.StartCalibration)
			r.Post("/calibration/swipe", h.CalibrationSwipe)
			r.Post("/calibration/duel", h.CalibrationDuel)

			r.Get("/favorites", h.Favorites)
			r.Put("/favorites/{item}", h.AddFavorite)
			r.Delete("/favorites/{item}", h.RemoveFavorite)
		})
	})

	return r
}
