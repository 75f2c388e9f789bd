// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto at
package initialization and are exposed at the /metrics endpoint in Prometheus
text format:

	curl http://localhost:8080/metrics

# Available Metrics

HTTP Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: Rate limit rejections (counter)

Ranking Metrics:
  - rank_requests_total: Ranking requests (counter), labels: domain
  - rank_duration_seconds: Uncached ranking latency (histogram), labels: domain
  - rank_cache_hits_total / rank_cache_misses_total: Response cache efficiency

Reinforcement Metrics:
  - reinforcement_votes_total: Votes by vote and path (immediate, deferred, counted)
  - reinforcement_pending_finalized_total: Finalized records by trigger
  - reinforcement_pending_queue_depth: Pending records across active sessions

Advisory and Calibration Metrics:
  - advisory_verdicts_total: Decisions by level and verdict
  - advisory_outcomes_total: Reported outcomes (proceeded, override, abandoned)
  - calibration_interactions_total: Swipes and duel choices by domain and phase
  - calibration_completions_total: Completed calibrations by domain

Infrastructure Metrics:
  - sessions_active: Loaded profile sessions
  - store_errors_total: Best-effort persistence failures by operation
  - catalog_items / catalog_reloads_total: Catalog size and reloads
  - remote_sync_events_total: Remote events by result (sent, failed, dropped)
  - circuit_breaker_state / circuit_breaker_state_transitions_total
  - app_info / app_uptime_seconds

# Usage

Components call the Record helpers rather than touching collectors directly:

	metrics.RecordVote("confirm", "immediate")
	metrics.RecordRank("style", time.Since(start), false)

# Thread Safety

All collectors and helpers are safe for concurrent use.
*/
package metrics
