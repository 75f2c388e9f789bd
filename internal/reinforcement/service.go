// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package reinforcement

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/tastegraph/internal/metrics"
)

// Persister saves identity state. Failures are logged by the Service and
// never returned to voters.
type Persister interface {
	SaveIdentity(ctx context.Context, profileID string, id Identity) error
	SavePending(ctx context.Context, profileID string, pending []Pending) error
}

// EventKind names a remote identity event.
type EventKind string

const (
	EventVote     EventKind = "vote"
	EventFinalize EventKind = "finalize"
)

// Event describes one identity mutation for remote recording.
type Event struct {
	ProfileID    string    `json:"profile_id"`
	Kind         EventKind `json:"kind"`
	Vote         Vote      `json:"vote"`
	EvaluationID string    `json:"evaluation_id"`
	Category     string    `json:"category,omitempty"`
	Path         Path      `json:"path,omitempty"`
	Version      uint64    `json:"version"`
	At           time.Time `json:"at"`
}

// EventRecorder accepts events without blocking.
type EventRecorder interface {
	Record(ev Event)
}

// Snapshot is a deep copy of a Service's state.
type Snapshot struct {
	ProfileID string    `json:"profile_id"`
	Identity  Identity  `json:"identity"`
	Pending   []Pending `json:"pending"`
}

// Service owns one profile's Identity and PendingQueue.
// It is safe for concurrent use; all mutations are serialized.
type Service struct {
	profileID string
	policy    *Policy
	logger    zerolog.Logger
	store     Persister
	recorder  EventRecorder
	now       func() time.Time

	mu       sync.Mutex
	identity Identity
	queue    PendingQueue
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithPersister sets the best-effort store.
func WithPersister(p Persister) ServiceOption {
	return func(s *Service) { s.store = p }
}

// WithRecorder sets the remote event recorder.
func WithRecorder(r EventRecorder) ServiceOption {
	return func(s *Service) { s.recorder = r }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

// WithState seeds the service with a previously persisted identity and queue.
//
//nolint:gocritic // hugeParam: identity passed by value for immutability
func WithState(id Identity, pending []Pending) ServiceOption {
	return func(s *Service) {
		s.identity = id
		s.queue = NewPendingQueue(pending)
	}
}

// NewService creates the single writer for profileID. A nil policy uses DefaultPolicy.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewService(profileID string, policy *Policy, logger zerolog.Logger, opts ...ServiceOption) *Service {
	if policy == nil {
		policy = DefaultPolicy()
	}
	s := &Service{
		profileID: profileID,
		policy:    policy,
		logger:    logger.With().Str("component", "reinforcement").Str("profile_id", profileID).Logger(),
		now:       time.Now,
		identity:  NewIdentity(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProfileID returns the owning profile.
func (s *Service) ProfileID() string {
	return s.profileID
}

// Snapshot returns a deep copy of the current state.
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ProfileID: s.profileID,
		Identity:  s.identity,
		Pending:   s.queue.List(),
	}
}

// Identity returns a copy of the current identity.
func (s *Service) Identity() Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity
}

// PendingCount returns the number of queued records.
func (s *Service) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Len()
}

// Apply records a vote and returns the resulting identity and, for anchor
// votes, the queued pending record. An anchor vote whose evaluation is
// already pending is rejected with ErrPendingExists and changes nothing.
//
//nolint:gocritic // hugeParam: feedback passed by value for immutability
func (s *Service) Apply(ctx context.Context, fb Feedback) (Identity, *Pending, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.policy.Defers(fb) && s.queue.Has(fb.EvaluationID) {
		return s.identity, nil, fmt.Errorf("%w: %s", ErrPendingExists, fb.EvaluationID)
	}

	now := s.now()
	next, pending, path := s.policy.Apply(s.identity, fb, now)
	s.identity = next
	if pending != nil {
		s.queue.Put(*pending)
	}

	metrics.RecordVote(string(fb.Vote), string(path))
	s.logger.Debug().
		Str("vote", string(fb.Vote)).
		Str("category", fb.Category).
		Str("path", string(path)).
		Uint64("version", next.Version).
		Float64("stability", next.Stability).
		Msg("vote applied")

	s.persistLocked(ctx, pending != nil)
	s.record(Event{
		ProfileID:    s.profileID,
		Kind:         EventVote,
		Vote:         fb.Vote,
		EvaluationID: fb.EvaluationID,
		Category:     fb.Category,
		Path:         path,
		Version:      next.Version,
		At:           now,
	})

	if pending != nil {
		p := *pending
		return next, &p, nil
	}
	return next, nil, nil
}

// Finalize applies and removes the pending record for evaluationID regardless
// of its unlock time. Early finalization is logged as a warning.
func (s *Service) Finalize(ctx context.Context, evaluationID string) (Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.queue.Get(evaluationID)
	if !ok {
		return s.identity, fmt.Errorf("%w: %s", ErrPendingNotFound, evaluationID)
	}

	now := s.now()
	trigger := "manual"
	if !p.Due(now) {
		trigger = "early"
		s.logger.Warn().
			Str("evaluation_id", evaluationID).
			Time("unlock_at", p.UnlockAt).
			Msg("finalizing pending reinforcement before unlock")
	}

	s.finalizeLocked(p, now, trigger)
	s.persistLocked(ctx, true)
	return s.identity, nil
}

// FinalizeDue finalizes every record unlocked at now and returns how many
// were applied.
func (s *Service) FinalizeDue(ctx context.Context, now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	due := s.queue.Due(now)
	for _, p := range due {
		s.finalizeLocked(p, now, "sweep")
	}
	if len(due) > 0 {
		s.persistLocked(ctx, true)
		s.logger.Info().Int("finalized", len(due)).Msg("finalized due pending reinforcements")
	}
	return len(due)
}

// Discard drops a pending record without applying it.
func (s *Service) Discard(ctx context.Context, evaluationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.queue.Remove(evaluationID); !ok {
		return fmt.Errorf("%w: %s", ErrPendingNotFound, evaluationID)
	}
	s.persistPendingLocked(ctx)
	return nil
}

// finalizeLocked applies p and removes it. Callers hold s.mu.
//
//nolint:gocritic // hugeParam: pending passed by value for immutability
func (s *Service) finalizeLocked(p Pending, now time.Time, trigger string) {
	s.identity = s.policy.Finalize(s.identity, p, now)
	s.queue.Remove(p.EvaluationID)

	metrics.RecordFinalize(trigger)
	s.logger.Debug().
		Str("evaluation_id", p.EvaluationID).
		Str("vote", string(p.Vote)).
		Str("trigger", trigger).
		Uint64("version", s.identity.Version).
		Msg("pending reinforcement finalized")

	s.record(Event{
		ProfileID:    s.profileID,
		Kind:         EventFinalize,
		Vote:         p.Vote,
		EvaluationID: p.EvaluationID,
		Category:     p.Category,
		Version:      s.identity.Version,
		At:           now,
	})
}

// persistLocked saves the identity and, when queueChanged, the queue.
func (s *Service) persistLocked(ctx context.Context, queueChanged bool) {
	if s.store == nil {
		return
	}
	if err := s.store.SaveIdentity(ctx, s.profileID, s.identity); err != nil {
		metrics.RecordStoreError("save_identity")
		s.logger.Warn().Err(err).Msg("failed to persist identity")
	}
	if queueChanged {
		s.persistPendingLocked(ctx)
	}
}

func (s *Service) persistPendingLocked(ctx context.Context) {
	if s.store == nil {
		return
	}
	if err := s.store.SavePending(ctx, s.profileID, s.queue.List()); err != nil {
		metrics.RecordStoreError("save_pending")
		s.logger.Warn().Err(err).Msg("failed to persist pending queue")
	}
}

func (s *Service) record(ev Event) {
	if s.recorder != nil {
		s.recorder.Record(ev)
	}
}
