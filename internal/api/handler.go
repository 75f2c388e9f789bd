// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/tomtom215/tastegraph/internal/advisory"
	"github.com/tomtom215/tastegraph/internal/catalog"
	"github.com/tomtom215/tastegraph/internal/logging"
	"github.com/tomtom215/tastegraph/internal/recommend"
	"github.com/tomtom215/tastegraph/internal/session"
)

// rankTimeout bounds one ranking request.
const rankTimeout = 10 * time.Second

// Handler serves the profile, ranking and catalog endpoints.
type Handler struct {
	registry     *session.Registry
	engine       *recommend.Engine
	catalog      *catalog.Catalog
	defaultLevel advisory.Level
	startTime    time.Time
	logger       zerolog.Logger
}

// HandlerDeps are the components a Handler needs.
type HandlerDeps struct {
	Registry *session.Registry
	Engine   *recommend.Engine
	Catalog  *catalog.Catalog

	// DefaultLevel applies to advisory requests that name no level.
	DefaultLevel advisory.Level
}

// ErrMissingDependency is returned by NewHandler when a dependency is nil.
var ErrMissingDependency = errors.New("api: missing handler dependency")

// NewHandler creates a handler.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewHandler(deps HandlerDeps, logger zerolog.Logger) (*Handler, error) {
	if deps.Registry == nil || deps.Engine == nil || deps.Catalog == nil {
		return nil, ErrMissingDependency
	}
	level := deps.DefaultLevel
	if level == "" {
		level = advisory.LevelStandard
	}
	return &Handler{
		registry:     deps.Registry,
		engine:       deps.Engine,
		catalog:      deps.Catalog,
		defaultLevel: level,
		startTime:    time.Now(),
		logger:       logger.With().Str("component", "api").Logger(),
	}, nil
}

// profileContext validates the {id} path parameter and adds it to the
// logging context.
func profileContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := session.ValidateProfileID(id); err != nil {
			NewResponseWriter(w, r).BadRequest(err.Error())
			return
		}
		ctx := logging.ContextWithProfileID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func profileID(r *http.Request) string {
	return chi.URLParam(r, "id")
}
