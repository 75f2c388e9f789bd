// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/tastegraph/internal/session"
)

var (
	_ suture.Service = (*FinalizerService)(nil)
	_ Sweeper        = (*session.Registry)(nil)
)

type recordingSweeper struct {
	mu    sync.Mutex
	calls []time.Time
	due   int
}

func (r *recordingSweeper) FinalizeDue(_ context.Context, now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, now)
	return r.due
}

func (r *recordingSweeper) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func TestNewFinalizerService_DefaultInterval(t *testing.T) {
	svc := NewFinalizerService(&recordingSweeper{}, 0, zerolog.Nop())
	if svc.interval != time.Hour {
		t.Errorf("interval = %v, want 1h", svc.interval)
	}
	if svc.String() != "finalizer" {
		t.Errorf("String() = %q", svc.String())
	}
}

func TestFinalizerService_SweepsOnStartAndTick(t *testing.T) {
	sweeper := &recordingSweeper{due: 2}
	svc := NewFinalizerService(sweeper, 10*time.Millisecond, zerolog.Nop())
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for sweeper.count() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}
	if sweeper.count() < 3 {
		t.Fatalf("sweeps = %d, want >= 3", sweeper.count())
	}
	sweeper.mu.Lock()
	defer sweeper.mu.Unlock()
	for i, at := range sweeper.calls {
		if !at.Equal(fixed) {
			t.Errorf("sweep %d at %v, want %v", i, at, fixed)
		}
	}
}

func TestFinalizerService_ImmediateSweep(t *testing.T) {
	sweeper := &recordingSweeper{}
	svc := NewFinalizerService(sweeper, time.Hour, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	deadline := time.Now().Add(time.Second)
	for sweeper.count() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	<-errCh

	if sweeper.count() != 1 {
		t.Errorf("sweeps = %d, want 1", sweeper.count())
	}
}
