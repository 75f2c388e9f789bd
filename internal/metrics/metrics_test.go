// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/healthz", "200"))
	RecordAPIRequest("GET", "/healthz", "200", 3*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/healthz", "200"))

	if after-before != 1 {
		t.Errorf("api_requests_total increased by %f, want 1", after-before)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("after inc = %f, want %f", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("after dec = %f, want %f", got, before)
	}
}

func TestRecordRank(t *testing.T) {
	tests := []struct {
		name       string
		cached     bool
		wantHits   float64
		wantMisses float64
	}{
		{"cache hit", true, 1, 0},
		{"cache miss", false, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits := testutil.ToFloat64(RankCacheHits)
			misses := testutil.ToFloat64(RankCacheMisses)
			reqs := testutil.ToFloat64(RankRequests.WithLabelValues("style"))

			RecordRank("style", time.Millisecond, tt.cached)

			if got := testutil.ToFloat64(RankCacheHits) - hits; got != tt.wantHits {
				t.Errorf("hits delta = %f, want %f", got, tt.wantHits)
			}
			if got := testutil.ToFloat64(RankCacheMisses) - misses; got != tt.wantMisses {
				t.Errorf("misses delta = %f, want %f", got, tt.wantMisses)
			}
			if got := testutil.ToFloat64(RankRequests.WithLabelValues("style")) - reqs; got != 1 {
				t.Errorf("requests delta = %f, want 1", got)
			}
		})
	}
}

func TestRecordCalibration(t *testing.T) {
	completions := testutil.ToFloat64(CalibrationCompletions.WithLabelValues("space"))

	RecordCalibration("space", "duel", false)
	if got := testutil.ToFloat64(CalibrationCompletions.WithLabelValues("space")); got != completions {
		t.Errorf("completion recorded for an unfinished calibration")
	}

	RecordCalibration("space", "duel", true)
	if got := testutil.ToFloat64(CalibrationCompletions.WithLabelValues("space")); got != completions+1 {
		t.Errorf("completions = %f, want %f", got, completions+1)
	}
}

func TestRecordCircuitBreakerTransition(t *testing.T) {
	RecordCircuitBreakerTransition("remote-sync", "closed", "open", 2)

	if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues("remote-sync")); got != 2 {
		t.Errorf("circuit_breaker_state = %f, want 2", got)
	}
}

func TestCounterHelpers(t *testing.T) {
	tests := []struct {
		name   string
		record func()
		read   func() float64
	}{
		{
			name:   "vote",
			record: func() { RecordVote("confirm", "deferred") },
			read:   func() float64 { return testutil.ToFloat64(ReinforcementVotes.WithLabelValues("confirm", "deferred")) },
		},
		{
			name:   "finalize",
			record: func() { RecordFinalize("sweep") },
			read:   func() float64 { return testutil.ToFloat64(PendingFinalized.WithLabelValues("sweep")) },
		},
		{
			name:   "advisory",
			record: func() { RecordAdvisory("strict", "red") },
			read:   func() float64 { return testutil.ToFloat64(AdvisoryVerdicts.WithLabelValues("strict", "red")) },
		},
		{
			name:   "advisory outcome",
			record: func() { RecordAdvisoryOutcome("override") },
			read:   func() float64 { return testutil.ToFloat64(AdvisoryOutcomes.WithLabelValues("override")) },
		},
		{
			name:   "store error",
			record: func() { RecordStoreError("save_identity") },
			read:   func() float64 { return testutil.ToFloat64(StoreErrors.WithLabelValues("save_identity")) },
		},
		{
			name:   "remote event",
			record: func() { RecordRemoteEvent("dropped") },
			read:   func() float64 { return testutil.ToFloat64(RemoteSyncEvents.WithLabelValues("dropped")) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.read()
			tt.record()
			if got := tt.read() - before; got != 1 {
				t.Errorf("delta = %f, want 1", got)
			}
		})
	}
}

func TestSetCatalogSize(t *testing.T) {
	SetCatalogSize("style", 42)
	if got := testutil.ToFloat64(CatalogItems.WithLabelValues("style")); got != 42 {
		t.Errorf("catalog_items = %f, want 42", got)
	}
}
