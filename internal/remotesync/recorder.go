// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package remotesync

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/tastegraph/internal/metrics"
	"github.com/tomtom215/tastegraph/internal/reinforcement"
)

// RecorderConfig configures a Recorder.
type RecorderConfig struct {
	// QueueSize bounds buffered events. Events beyond it are dropped.
	QueueSize int

	// BatchSize is the maximum number of events per push.
	BatchSize int

	// FlushInterval is the longest an event waits before being pushed.
	FlushInterval time.Duration
}

// DefaultRecorderConfig returns production defaults.
func DefaultRecorderConfig() RecorderConfig {
	return RecorderConfig{
		QueueSize:     1024,
		BatchSize:     64,
		FlushInterval: 5 * time.Second,
	}
}

// Recorder forwards identity events to a Client.
//
// Record never blocks: when the queue is full the event is dropped and
// counted. Serve drains the queue and is meant to run under a supervisor.
type Recorder struct {
	client Client
	cfg    RecorderConfig
	logger zerolog.Logger
	queue  chan reinforcement.Event

	sent    atomic.Uint64
	dropped atomic.Uint64
	failed  atomic.Uint64
}

// NewRecorder creates a recorder that pushes to client.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRecorder(client Client, cfg RecorderConfig, logger zerolog.Logger) *Recorder {
	def := DefaultRecorderConfig()
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = def.QueueSize
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = def.BatchSize
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = def.FlushInterval
	}
	return &Recorder{
		client: client,
		cfg:    cfg,
		logger: logger.With().Str("component", "remotesync_recorder").Logger(),
		queue:  make(chan reinforcement.Event, cfg.QueueSize),
	}
}

// Record enqueues ev or drops it when the queue is full.
func (r *Recorder) Record(ev reinforcement.Event) {
	select {
	case r.queue <- ev:
	default:
		r.dropped.Add(1)
		metrics.RecordRemoteEvent("dropped")
	}
}

// Serve pushes batches until ctx is canceled. Events still queued at
// shutdown get one final push attempt.
func (r *Recorder) Serve(ctx context.Context) error {
	ticker := time.NewTicker(r.cfg.FlushInterval)
	defer ticker.Stop()

	batch := make([]reinforcement.Event, 0, r.cfg.BatchSize)
	for {
		select {
		case <-ctx.Done():
			batch = r.drain(batch)
			if len(batch) > 0 {
				flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				r.push(flushCtx, batch)
				cancel()
			}
			return ctx.Err()

		case ev := <-r.queue:
			batch = append(batch, ev)
			if len(batch) >= r.cfg.BatchSize {
				r.push(ctx, batch)
				batch = batch[:0]
			}

		case <-ticker.C:
			if len(batch) > 0 {
				r.push(ctx, batch)
				batch = batch[:0]
			}
		}
	}
}

// String names the service for supervisor logs.
func (r *Recorder) String() string {
	return "remotesync-recorder"
}

// Stats returns sent, dropped and failed event counts.
func (r *Recorder) Stats() (sent, dropped, failed uint64) {
	return r.sent.Load(), r.dropped.Load(), r.failed.Load()
}

func (r *Recorder) drain(batch []reinforcement.Event) []reinforcement.Event {
	for {
		select {
		case ev := <-r.queue:
			batch = append(batch, ev)
		default:
			return batch
		}
	}
}

func (r *Recorder) push(ctx context.Context, batch []reinforcement.Event) {
	n := uint64(len(batch))
	if err := r.client.PushEvents(ctx, batch); err != nil {
		r.failed.Add(n)
		for range batch {
			metrics.RecordRemoteEvent("failed")
		}
		r.logger.Warn().Err(err).Int("events", len(batch)).Msg("Failed to push identity events")
		return
	}
	r.sent.Add(n)
	for range batch {
		metrics.RecordRemoteEvent("sent")
	}
}

var _ reinforcement.EventRecorder = (*Recorder)(nil)
