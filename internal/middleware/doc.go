// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

/*
Package middleware provides chi-compatible HTTP middleware shared by the API
router.

  - RequestID: accepts or generates an X-Request-ID and seeds the logging
    context with request and correlation ids
  - PrometheusMetrics: records api_requests_total and
    api_request_duration_seconds labeled by the chi route pattern, so profile
    ids never become label values
  - AccessLog: one structured log line per request

Typical stack:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.AccessLog)
*/
package middleware
