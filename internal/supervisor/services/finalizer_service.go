// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Sweeper finalizes every pending vote that is due at now and reports how
// many were finalized. session.Registry satisfies it.
type Sweeper interface {
	FinalizeDue(ctx context.Context, now time.Time) int
}

// FinalizerService sweeps pending votes on a fixed interval. Anchor category
// votes stay pending until their dwell elapses and nothing else promotes them
// unless the client calls finalize explicitly.
type FinalizerService struct {
	sweeper  Sweeper
	interval time.Duration
	now      func() time.Time
	logger   zerolog.Logger
}

// NewFinalizerService creates a finalizer. A non-positive interval becomes 1h.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewFinalizerService(sweeper Sweeper, interval time.Duration, logger zerolog.Logger) *FinalizerService {
	if interval <= 0 {
		interval = time.Hour
	}
	return &FinalizerService{
		sweeper:  sweeper,
		interval: interval,
		now:      time.Now,
		logger:   logger.With().Str("service", "finalizer").Logger(),
	}
}

// Serve implements suture.Service. It sweeps once at start so restarts do not
// wait a full interval.
func (s *FinalizerService) Serve(ctx context.Context) error {
	s.logger.Info().Dur("interval", s.interval).Msg("finalizer service starting")

	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("finalizer service shutting down")
			return ctx.Err()
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *FinalizerService) sweep(ctx context.Context) {
	start := time.Now()
	n := s.sweeper.FinalizeDue(ctx, s.now())
	if n == 0 {
		s.logger.Debug().Msg("no pending votes due")
		return
	}
	s.logger.Info().
		Int("finalized", n).
		Dur("duration", time.Since(start)).
		Msg("finalized due pending votes")
}

// String identifies the service in supervisor events.
func (s *FinalizerService) String() string {
	return "finalizer"
}
