// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

/*
Package api exposes Tastegraph over HTTP using the chi router.

# Endpoints

	GET    /healthz                                        liveness and catalog status
	GET    /metrics                                        Prometheus exposition
	POST   /api/v1/profiles/{id}/votes                     record a vote
	POST   /api/v1/profiles/{id}/pending/{eval}/finalize   finalize a deferred vote
	DELETE /api/v1/profiles/{id}/pending/{eval}            discard a deferred vote
	GET    /api/v1/profiles/{id}/identity                  identity and pending queue
	POST   /api/v1/profiles/{id}/recommendations           ranked catalog items
	POST   /api/v1/profiles/{id}/advisory                  advisory verdict for a candidate
	POST   /api/v1/profiles/{id}/advisory/outcome          record what the user did next
	POST   /api/v1/profiles/{id}/calibration               start a calibration session
	POST   /api/v1/profiles/{id}/calibration/swipe         answer the current card
	POST   /api/v1/profiles/{id}/calibration/duel          pick a duel winner
	GET    /api/v1/profiles/{id}/favorites                 list favorites
	PUT    /api/v1/profiles/{id}/favorites/{item}          add a favorite
	DELETE /api/v1/profiles/{id}/favorites/{item}          remove a favorite
	POST   /api/v1/catalog/reset                           drop and reload the catalog

# Responses

Every JSON response uses the same envelope:

	{"success": true, "data": {...}, "meta": {"request_id": "...", "timestamp": "..."}}
	{"success": false, "error": {"code": "NOT_FOUND", "message": "..."}, "meta": {...}}

Request bodies are decoded with goccy/go-json, reject unknown fields and are
validated through internal/validation.

# Middleware

Request ids, Prometheus metrics and access logs come from internal/middleware.
CORS uses go-chi/cors and rate limiting uses go-chi/httprate keyed by client
IP.
*/
package api
