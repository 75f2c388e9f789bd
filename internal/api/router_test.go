// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/tomtom215/tastegraph/internal/metrics"
)

func TestRouter_NotFoundEnvelope(t *testing.T) {
	a := newTestAPI(t, nil)

	rec := a.do(t, http.MethodGet, "/api/v1/nowhere", nil)
	expectErrorCode(t, rec, http.StatusNotFound, ErrCodeNotFound)
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestRouter_MethodNotAllowedEnvelope(t *testing.T) {
	a := newTestAPI(t, nil)

	rec := a.do(t, http.MethodDelete, "/api/v1/profiles/mo/identity", nil)
	expectErrorCode(t, rec, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed)
}

func TestRouter_ResponseMeta(t *testing.T) {
	a := newTestAPI(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profiles/ned/favorites", nil)
	req.Header.Set("X-Request-ID", "trace-me")
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)

	env := envelope(t, rec, nil)
	if env.Meta == nil {
		t.Fatal("expected meta")
	}
	if env.Meta.RequestID != "trace-me" {
		t.Errorf("meta.request_id = %q, want trace-me", env.Meta.RequestID)
	}
}

func TestRouter_RateLimit(t *testing.T) {
	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitRequests = 2
	cfg.RateLimitWindow = time.Minute
	a := newTestAPI(t, cfg)

	before := testutil.ToFloat64(metrics.APIRateLimitHits.WithLabelValues(rateLimitScope))

	for i := 0; i < 2; i++ {
		rec := a.do(t, http.MethodGet, "/api/v1/profiles/ola/favorites", nil)
		expectStatus(t, rec, http.StatusOK)
	}
	rec := a.do(t, http.MethodGet, "/api/v1/profiles/ola/favorites", nil)
	expectErrorCode(t, rec, http.StatusTooManyRequests, ErrCodeTooManyRequests)

	after := testutil.ToFloat64(metrics.APIRateLimitHits.WithLabelValues(rateLimitScope))
	if after-before != 1 {
		t.Errorf("rate limit hits delta = %v, want 1", after-before)
	}

	// Health checks sit outside the limited group.
	rec = a.do(t, http.MethodGet, "/healthz", nil)
	expectStatus(t, rec, http.StatusOK)
}

func TestRouter_CORSPreflight(t *testing.T) {
	cfg := DefaultChiMiddlewareConfig()
	cfg.CORSAllowedOrigins = []string{"https://shop.example"}
	cfg.RateLimitDisabled = true
	a := newTestAPI(t, cfg)

	tests := []struct {
		name   string
		origin string
		want   string
	}{
		{"allowed origin", "https://shop.example", "https://shop.example"},
		{"foreign origin", "https://evil.example", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, "/api/v1/profiles/pat/votes", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			rec := httptest.NewRecorder()
			a.handler.ServeHTTP(rec, req)

			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.want {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRouter_CORSDefaultDeniesCrossOrigin(t *testing.T) {
	a := newTestAPI(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/profiles/pat/votes", nil)
	req.Header.Set("Origin", "https://shop.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Access-Control-Allow-Origin = %q, want none", got)
	}
}

func TestRouter_Metrics(t *testing.T) {
	a := newTestAPI(t, nil)

	a.do(t, http.MethodGet, "/api/v1/profiles/quinn/identity", nil)

	rec := a.do(t, http.MethodGet, "/metrics", nil)
	expectStatus(t, rec, http.StatusOK)
	body := rec.Body.String()
	if !strings.Contains(body, "api_requests_total") {
		t.Error("metrics output missing api_requests_total")
	}
	if strings.Contains(body, "quinn") {
		t.Error("metrics labels must not carry profile ids")
	}
}

func TestNewHandler_MissingDependency(t *testing.T) {
	if _, err := NewHandler(HandlerDeps{}, zerolog.Nop()); err == nil {
		t.Fatal("expected error for missing dependencies")
	}
}
