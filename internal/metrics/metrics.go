// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - API endpoint latency and throughput
// - Ranking latency and response cache efficiency
// - Reinforcement votes and pending finalization
// - Advisory verdicts and calibration progress
// - Persistence and remote sync health

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Ranking Metrics
	RankDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rank_duration_seconds",
			Help:    "Time spent scoring and ordering a catalog",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
		[]string{"domain"},
	)

	RankRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rank_requests_total",
			Help: "Total number of ranking requests",
		},
		[]string{"domain"},
	)

	RankCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rank_cache_hits_total",
			Help: "Ranking responses served from cache",
		},
	)

	RankCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rank_cache_misses_total",
			Help: "Ranking responses computed because the cache had no entry",
		},
	)

	// Reinforcement Metrics
	ReinforcementVotes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reinforcement_votes_total",
			Help: "Votes applied to identities",
		},
		[]string{"vote", "path"}, // path: "immediate", "deferred", "counted"
	)

	PendingFinalized = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reinforcement_pending_finalized_total",
			Help: "Pending reinforcements finalized",
		},
		[]string{"trigger"}, // trigger: "manual", "early", "sweep"
	)

	PendingQueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "reinforcement_pending_queue_depth",
			Help: "Pending reinforcements across all active sessions",
		},
	)

	// Advisory Metrics
	AdvisoryVerdicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisory_verdicts_total",
			Help: "Advisory decisions by level and verdict",
		},
		[]string{"level", "verdict"},
	)

	AdvisoryOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisory_outcomes_total",
			Help: "Reported user outcomes after an advisory",
		},
		[]string{"outcome"},
	)

	// Calibration Metrics
	CalibrationCompletions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calibration_completions_total",
			Help: "Calibration sessions that reached the complete state",
		},
		[]string{"domain"},
	)

	CalibrationInteractions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calibration_interactions_total",
			Help: "Swipes and duel choices recorded during calibration",
		},
		[]string{"domain", "phase"},
	)

	// Session Metrics
	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sessions_active",
			Help: "Profiles with a loaded reinforcement session",
		},
	)

	// Storage Metrics
	StoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_errors_total",
			Help: "Best-effort persistence failures",
		},
		[]string{"operation"},
	)

	// Catalog Metrics
	CatalogItems = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "catalog_items",
			Help: "Items loaded per domain",
		},
		[]string{"domain"},
	)

	CatalogReloads = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_reloads_total",
			Help: "Number of times the catalog was loaded from its source",
		},
	)

	// Remote Sync Metrics
	RemoteSyncEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "remote_sync_events_total",
			Help: "Identity events handed to the remote store",
		},
		[]string{"result"}, // result: "sent", "failed", "dropped"
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRank records one ranking request. Cached responses skip the duration histogram.
func RecordRank(domain string, duration time.Duration, cached bool) {
	RankRequests.WithLabelValues(domain).Inc()
	if cached {
		RankCacheHits.Inc()
		return
	}
	RankCacheMisses.Inc()
	RankDuration.WithLabelValues(domain).Observe(duration.Seconds())
}

// RecordVote records an applied vote and the path it took.
func RecordVote(vote, path string) {
	ReinforcementVotes.WithLabelValues(vote, path).Inc()
}

// RecordFinalize records a finalized pending reinforcement.
func RecordFinalize(trigger string) {
	PendingFinalized.WithLabelValues(trigger).Inc()
}

// RecordAdvisory records an advisory verdict
func RecordAdvisory(level, verdict string) {
	AdvisoryVerdicts.WithLabelValues(level, verdict).Inc()
}

// RecordAdvisoryOutcome records what a user did after an advisory.
func RecordAdvisoryOutcome(outcome string) {
	AdvisoryOutcomes.WithLabelValues(outcome).Inc()
}

// RecordCalibration records a calibration interaction and, when complete, the completion.
func RecordCalibration(domain, phase string, completed bool) {
	CalibrationInteractions.WithLabelValues(domain, phase).Inc()
	if completed {
		CalibrationCompletions.WithLabelValues(domain).Inc()
	}
}

// RecordStoreError records a failed best-effort persistence operation.
func RecordStoreError(operation string) {
	StoreErrors.WithLabelValues(operation).Inc()
}

// RecordRemoteEvent records the outcome of a remote sync event.
func RecordRemoteEvent(result string) {
	RemoteSyncEvents.WithLabelValues(result).Inc()
}

// RecordCircuitBreakerTransition records a breaker state change. State values
// follow gobreaker: 0=closed, 1=half-open, 2=open.
func RecordCircuitBreakerTransition(name, from, to string, toValue int) {
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
	CircuitBreakerState.WithLabelValues(name).Set(float64(toValue))
}

// SetCatalogSize records the number of items loaded for a domain.
func SetCatalogSize(domain string, n int) {
	CatalogItems.WithLabelValues(domain).Set(float64(n))
}
