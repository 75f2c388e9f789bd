// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package calibration

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/tastegraph/internal/axis"
	"github.com/tomtom215/tastegraph/internal/metrics"
	"github.com/tomtom215/tastegraph/internal/naming"
)

var (
	// ErrSessionComplete is returned for any input after completion.
	ErrSessionComplete = errors.New("calibration: session complete")

	// ErrWrongPhase is returned when input does not match the current phase.
	ErrWrongPhase = errors.New("calibration: wrong phase")

	// ErrUnknownDecision is returned for an unrecognized swipe decision.
	ErrUnknownDecision = errors.New("calibration: unknown decision")

	// ErrInvalidChoice is returned when a duel winner is not part of the current pair.
	ErrInvalidChoice = errors.New("calibration: choice not in current duel")
)

// Phase is the session state.
type Phase string

// Session phases.
const (
	PhaseSwipe    Phase = "swipe"
	PhaseDuel     Phase = "duel"
	PhaseComplete Phase = "complete"
)

// Store persists completed calibration records.
type Store interface {
	SaveCalibration(ctx context.Context, rec Record) error
}

// Progress is a read-only view of a session.
type Progress struct {
	ProfileID    string             `json:"profile_id"`
	Domain       axis.Domain        `json:"domain"`
	Phase        Phase              `json:"phase"`
	Card         *Card              `json:"card,omitempty"`
	Duel         *naming.Pair       `json:"duel,omitempty"`
	SwipesDone   int                `json:"swipes_done"`
	DeckSize     int                `json:"deck_size"`
	DuelsDone    int                `json:"duels_done"`
	Affinity     map[string]float64 `json:"affinity,omitempty"`
	TopArchetype string             `json:"top_archetype,omitempty"`
	Scores       axis.Scores        `json:"scores"`
	Name         *naming.Name       `json:"name,omitempty"`
}

// Session is one calibration run. It is safe for concurrent use.
type Session struct {
	cfg    Config
	logger zerolog.Logger
	store  Store
	now    func() time.Time

	mu     sync.Mutex
	phase  Phase
	record Record
	deck   []Card
	swipes int
	duels  []naming.Pair
	played int
	wins   map[string]int
}

// Option configures a Session.
type Option func(*Session)

// WithStore sets where the completed record is saved.
func WithStore(st Store) Option {
	return func(s *Session) { s.store = st }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithPrevious continues from an earlier record. Its vector, interaction count
// and name state carry over so names evolve across recalibrations.
//
//nolint:gocritic // hugeParam: rec passed by value for immutability
func WithPrevious(rec Record) Option {
	return func(s *Session) {
		if rec.Domain != s.record.Domain {
			return
		}
		prev := rec.Clone()
		s.record.Vector = prev.Vector
		s.record.Interactions = prev.Interactions
		s.record.Name = prev.Name
	}
}

// NewSession starts a session in the swipe phase. An invalid cfg falls back
// to DefaultConfig. It panics on an unknown domain.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewSession(profileID string, d axis.Domain, cfg Config, logger zerolog.Logger, opts ...Option) *Session {
	deck := Deck(d)
	logger = logger.With().
		Str("component", "calibration").
		Str("profile_id", profileID).
		Str("domain", d.String()).
		Logger()
	if err := cfg.Validate(); err != nil {
		logger.Warn().Err(err).Msg("invalid calibration config, using defaults")
		cfg = DefaultConfig()
	}

	s := &Session{
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
		phase:  PhaseSwipe,
		record: Record{
			ProfileID: profileID,
			Domain:    d,
			Vector:    make(axis.Vector),
		},
		deck:  deck,
		duels: naming.DuelPairs(d, profileID, cfg.MaxDuels),
		wins:  make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Progress returns a snapshot of the session.
func (s *Session) Progress() Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progressLocked()
}

// Record returns a copy of the accumulated record.
func (s *Session) Record() Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record.Clone()
}

// Swipe applies a decision to the current card. The last card moves the
// session to the duel phase.
func (s *Session) Swipe(_ context.Context, d Decision) (Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkPhase(PhaseSwipe); err != nil {
		return s.progressLocked(), err
	}
	if _, err := ParseDecision(string(d)); err != nil {
		return s.progressLocked(), err
	}

	card := s.deck[s.swipes]
	s.record.Vector.Add(card.Axis, d.Magnitude()*card.Sign)
	s.record.Interactions++
	s.swipes++

	if s.swipes == len(s.deck) {
		s.phase = PhaseDuel
		s.logger.Debug().Int("swipes", s.swipes).Msg("deck exhausted, starting duels")
	}
	metrics.RecordCalibration(s.record.Domain.String(), string(PhaseSwipe), false)
	return s.progressLocked(), nil
}

// Duel records winnerKey as the choice for the current pair. The session
// completes and persists when the stopping rule is met.
func (s *Session) Duel(ctx context.Context, winnerKey string) (Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkPhase(PhaseDuel); err != nil {
		return s.progressLocked(), err
	}

	pair := s.duels[s.played]
	var winner naming.Archetype
	switch winnerKey {
	case pair.Left.Key:
		winner = pair.Left
	case pair.Right.Key:
		winner = pair.Right
	default:
		if _, known := naming.ArchetypeByKey(s.record.Domain, winnerKey); known {
			return s.progressLocked(), fmt.Errorf("%w: %q is not in this duel", ErrInvalidChoice, winnerKey)
		}
		return s.progressLocked(), fmt.Errorf("%w: unknown archetype %q", ErrInvalidChoice, winnerKey)
	}

	s.record.Vector.AddScaled(winner.Signature.Vector(), s.cfg.DuelWeight)
	s.record.Interactions++
	s.wins[winner.Key]++
	s.played++

	_, top := s.topAffinity()
	done := (s.played >= s.cfg.MinDuels && top >= s.cfg.AffinityThreshold) || s.played >= s.cfg.MaxDuels
	if !done {
		metrics.RecordCalibration(s.record.Domain.String(), string(PhaseDuel), false)
		return s.progressLocked(), nil
	}

	s.complete(ctx)
	return s.progressLocked(), nil
}

// complete generates the name, marks the record and persists it.
// Persistence failures are logged and do not undo completion.
func (s *Session) complete(ctx context.Context) {
	scores := s.record.Scores()
	s.record.Name, _ = naming.Evolve(s.record.Name, scores, s.record.Vector, s.record.Interactions)
	s.record.Completed = true
	s.record.UpdatedAt = s.now()
	s.phase = PhaseComplete

	metrics.RecordCalibration(s.record.Domain.String(), string(PhaseComplete), true)
	s.logger.Info().
		Int("duels", s.played).
		Int("interactions", s.record.Interactions).
		Str("name", s.record.Name.Current.Title).
		Msg("calibration complete")

	if s.store == nil {
		return
	}
	if err := s.store.SaveCalibration(ctx, s.record.Clone()); err != nil {
		metrics.RecordStoreError("save_calibration")
		s.logger.Error().Err(err).Msg("failed to persist calibration record")
	}
}

func (s *Session) checkPhase(want Phase) error {
	if s.phase == PhaseComplete {
		return ErrSessionComplete
	}
	if s.phase != want {
		return fmt.Errorf("%w: in %s, want %s", ErrWrongPhase, s.phase, want)
	}
	return nil
}

// topAffinity returns the archetype with the highest win share. Ties go to
// the smaller key.
func (s *Session) topAffinity() (string, float64) {
	if s.played == 0 {
		return "", 0
	}
	keys := make([]string, 0, len(s.wins))
	for k := range s.wins {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	best, bestWins := "", 0
	for _, k := range keys {
		if s.wins[k] > bestWins {
			best, bestWins = k, s.wins[k]
		}
	}
	return best, float64(bestWins) / float64(s.played)
}

func (s *Session) progressLocked() Progress {
	p := Progress{
		ProfileID:  s.record.ProfileID,
		Domain:     s.record.Domain,
		Phase:      s.phase,
		SwipesDone: s.swipes,
		DeckSize:   len(s.deck),
		DuelsDone:  s.played,
		Scores:     s.record.Scores(),
	}

	switch s.phase {
	case PhaseSwipe:
		card := s.deck[s.swipes]
		p.Card = &card
	case PhaseDuel:
		pair := s.duels[s.played]
		p.Duel = &pair
	case PhaseComplete:
		name := s.record.Name.Current
		p.Name = &name
	}

	if s.played > 0 {
		p.Affinity = make(map[string]float64, len(s.wins))
		for k, w := range s.wins {
			p.Affinity[k] = float64(w) / float64(s.played)
		}
		p.TopArchetype, _ = s.topAffinity()
	}
	return p
}
