// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/tastegraph/internal/advisory"
	"github.com/tomtom215/tastegraph/internal/catalog"
	"github.com/tomtom215/tastegraph/internal/recommend"
	"github.com/tomtom215/tastegraph/internal/recommend/reranking"
	"github.com/tomtom215/tastegraph/internal/reinforcement"
	"github.com/tomtom215/tastegraph/internal/session"
	"github.com/tomtom215/tastegraph/internal/storage"
)

type testAPI struct {
	handler  http.Handler
	registry *session.Registry
	catalog  *catalog.Catalog
	engine   *recommend.Engine
	store    *storage.MemoryStore
}

func newTestAPI(t *testing.T, mwConfig *ChiMiddlewareConfig) *testAPI {
	t.Helper()
	return newTestAPIWithSource(t, catalog.NewEmbeddedSource(), mwConfig)
}

func newTestAPIWithSource(t *testing.T, src catalog.Source, mwConfig *ChiMiddlewareConfig) *testAPI {
	t.Helper()

	cat := catalog.New(src, zerolog.Nop())
	_ = cat.Load(context.Background())

	cfg := recommend.DefaultConfig()
	engine, err := recommend.NewEngine(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	engine.SetCatalog(cat)
	engine.RegisterReranker(reranking.NewCategoryRuns(cfg.Diversity.MaxCategoryRun))

	store := storage.NewMemoryStore()
	registry := session.NewRegistry(store, reinforcement.DefaultPolicy(), zerolog.Nop())

	h, err := NewHandler(HandlerDeps{
		Registry:     registry,
		Engine:       engine,
		Catalog:      cat,
		DefaultLevel: advisory.LevelStandard,
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}

	if mwConfig == nil {
		mwConfig = DefaultChiMiddlewareConfig()
		mwConfig.RateLimitDisabled = true
	}
	return &testAPI{
		handler:  NewRouter(h, NewChiMiddleware(mwConfig)).Handler(),
		registry: registry,
		catalog:  cat,
		engine:   engine,
		store:    store,
	}
}

// do sends body (marshaled unless it is a string or nil) and returns the recorder.
func (a *testAPI) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

// envelope decodes the response envelope, unmarshaling data into dst when
// dst is non-nil.
func envelope(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) APIResponse {
	t.Helper()

	var raw struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   *APIError       `json:"error"`
		Meta    *APIMeta        `json:"meta"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode envelope %q: %v", rec.Body.String(), err)
	}
	if dst != nil && len(raw.Data) > 0 {
		if err := json.Unmarshal(raw.Data, dst); err != nil {
			t.Fatalf("decode data %s: %v", raw.Data, err)
		}
	}
	return APIResponse{Success: raw.Success, Error: raw.Error, Meta: raw.Meta}
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d; body = %s", rec.Code, want, rec.Body.String())
	}
}

func expectErrorCode(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	expectStatus(t, rec, status)
	env := envelope(t, rec, nil)
	if env.Success || env.Error == nil {
		t.Fatalf("expected error envelope, got %s", rec.Body.String())
	}
	if env.Error.Code != code {
		t.Errorf("error code = %q, want %q (message %q)", env.Error.Code, code, env.Error.Message)
	}
	if env.Error.Message == "" {
		t.Error("error message is empty")
	}
}

func neutralSignal() []float64 {
	s := make([]float64, 11)
	for i := range s {
		s[i] = 0.5
	}
	return s
}

func rampSignal() []float64 {
	s := make([]float64, 11)
	for i := range s {
		s[i] = float64(i) / 10
	}
	return s
}
