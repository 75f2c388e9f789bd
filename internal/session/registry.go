// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package session

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog"

	"github.com/tomtom215/tastegraph/internal/advisory"
	"github.com/tomtom215/tastegraph/internal/axis"
	"github.com/tomtom215/tastegraph/internal/calibration"
	"github.com/tomtom215/tastegraph/internal/metrics"
	"github.com/tomtom215/tastegraph/internal/recommend"
	"github.com/tomtom215/tastegraph/internal/reinforcement"
	"github.com/tomtom215/tastegraph/internal/remotesync"
	"github.com/tomtom215/tastegraph/internal/storage"
)

// maxProfileIDLength bounds profile identifiers accepted by the registry.
const maxProfileIDLength = 128

var (
	// ErrInvalidProfileID is returned for empty, oversized or malformed ids.
	ErrInvalidProfileID = errors.New("session: invalid profile id")

	// ErrNoCalibration is returned when no calibration session is active.
	ErrNoCalibration = errors.New("session: no active calibration")
)

// Registry maps profiles to their single-writer services.
type Registry struct {
	store         storage.Store
	policy        *reinforcement.Policy
	remote        remotesync.Client
	recorder      reinforcement.EventRecorder
	calibration   calibration.Config
	remoteTimeout time.Duration
	now           func() time.Time
	logger        zerolog.Logger

	mu           sync.Mutex
	services     map[string]*reinforcement.Service
	calibrations *expirable.LRU[string, *calibration.Session]

	advisoryMu sync.Mutex
}

// Option configures a Registry.
type Option func(*Registry)

// WithRemote sets the remote identity client. The default is remotesync.Noop.
func WithRemote(c remotesync.Client) Option {
	return func(r *Registry) { r.remote = c }
}

// WithRecorder sets the event recorder handed to every service.
func WithRecorder(rec reinforcement.EventRecorder) Option {
	return func(r *Registry) { r.recorder = rec }
}

// WithCalibrationConfig sets the configuration of new calibration sessions.
func WithCalibrationConfig(cfg calibration.Config) Option {
	return func(r *Registry) { r.calibration = cfg }
}

// WithRemoteTimeout bounds the snapshot fetch at session start.
func WithRemoteTimeout(d time.Duration) Option {
	return func(r *Registry) { r.remoteTimeout = d }
}

// WithClock overrides time.Now for services and calibration sessions.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

// NewRegistry creates an empty registry backed by store. A nil policy uses
// reinforcement.DefaultPolicy.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRegistry(store storage.Store, policy *reinforcement.Policy, logger zerolog.Logger, opts ...Option) *Registry {
	if policy == nil {
		policy = reinforcement.DefaultPolicy()
	}
	r := &Registry{
		store:         store,
		policy:        policy,
		remote:        remotesync.Noop{},
		calibration:   calibration.DefaultConfig(),
		remoteTimeout: 5 * time.Second,
		now:           time.Now,
		logger:        logger.With().Str("component", "session_registry").Logger(),
		services:      make(map[string]*reinforcement.Service),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.calibrations = expirable.NewLRU[string, *calibration.Session](
		r.calibration.MaxSessions, nil, r.calibration.SessionTTL)
	return r
}

// ValidateProfileID checks that id can be used as a profile identifier.
func ValidateProfileID(id string) error {
	if id == "" || len(id) > maxProfileIDLength || strings.ContainsAny(id, ":/ \t\n") {
		return fmt.Errorf("%w: %q", ErrInvalidProfileID, id)
	}
	return nil
}

// Service returns the service for profileID, creating and hydrating it on
// first use.
func (r *Registry) Service(ctx context.Context, profileID string) (*reinforcement.Service, error) {
	if err := ValidateProfileID(profileID); err != nil {
		return nil, err
	}

	r.mu.Lock()
	svc, ok := r.services[profileID]
	r.mu.Unlock()
	if ok {
		return svc, nil
	}

	// Hydrate outside the lock; a concurrent caller that wins the race keeps
	// its service and this one is discarded before anyone can write to it.
	snap := r.hydrate(ctx, profileID)
	created := reinforcement.NewService(profileID, r.policy, r.logger,
		reinforcement.WithPersister(r.store),
		reinforcement.WithRecorder(r.recorder),
		reinforcement.WithClock(r.now),
		reinforcement.WithState(snap.Identity, snap.Pending),
	)

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.services[profileID]; ok {
		return existing, nil
	}
	r.services[profileID] = created
	return created, nil
}

// hydrate loads local state and merges the remote snapshot.
func (r *Registry) hydrate(ctx context.Context, profileID string) reinforcement.Snapshot {
	local := reinforcement.Snapshot{ProfileID: profileID, Identity: reinforcement.NewIdentity()}

	id, ok, err := r.store.LoadIdentity(ctx, profileID)
	switch {
	case err != nil:
		metrics.RecordStoreError("load_identity")
		r.logger.Warn().Err(err).Str("profile_id", profileID).Msg("Failed to load identity, starting fresh")
	case ok:
		local.Identity = id
	}

	pending, err := r.store.LoadPending(ctx, profileID)
	if err != nil {
		metrics.RecordStoreError("load_pending")
		r.logger.Warn().Err(err).Str("profile_id", profileID).Msg("Failed to load pending reinforcements")
	} else {
		local.Pending = pending
	}

	fetchCtx, cancel := context.WithTimeout(ctx, r.remoteTimeout)
	defer cancel()
	remote, err := r.remote.FetchSnapshot(fetchCtx, profileID)
	switch {
	case errors.Is(err, remotesync.ErrNotImplemented), errors.Is(err, remotesync.ErrNotFound):
		return local
	case err != nil:
		metrics.RecordRemoteEvent("fetch_failed")
		r.logger.Warn().Err(err).Str("profile_id", profileID).Msg("Remote snapshot unavailable, using local state")
		return local
	}

	merged, adopted := remotesync.Merge(local, remote)
	if adopted {
		metrics.RecordRemoteEvent("adopted")
		r.logger.Info().
			Str("profile_id", profileID).
			Uint64("local_version", local.Identity.Version).
			Uint64("remote_version", remote.Identity.Version).
			Msg("Adopted remote identity snapshot")
		r.persist(ctx, merged)
	}
	return merged
}

//nolint:gocritic // hugeParam: snapshot passed by value for immutability
func (r *Registry) persist(ctx context.Context, snap reinforcement.Snapshot) {
	if err := r.store.SaveIdentity(ctx, snap.ProfileID, snap.Identity); err != nil {
		metrics.RecordStoreError("save_identity")
		r.logger.Warn().Err(err).Str("profile_id", snap.ProfileID).Msg("Failed to persist merged identity")
	}
	if err := r.store.SavePending(ctx, snap.ProfileID, snap.Pending); err != nil {
		metrics.RecordStoreError("save_pending")
		r.logger.Warn().Err(err).Str("profile_id", snap.ProfileID).Msg("Failed to persist merged pending queue")
	}
}

// Preload hydrates a service for every profile the store knows about, so
// that pending reinforcements of idle profiles are reached by FinalizeDue.
// It returns the number of services loaded.
func (r *Registry) Preload(ctx context.Context) (int, error) {
	ids, err := r.store.ListProfiles(ctx)
	if err != nil {
		return 0, fmt.Errorf("list profiles: %w", err)
	}
	n := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		if _, err := r.Service(ctx, id); err != nil {
			r.logger.Warn().Err(err).Str("profile_id", id).Msg("Skipping stored profile")
			continue
		}
		n++
	}
	return n, nil
}

// FinalizeDue sweeps every loaded service and finalizes pending records that
// are unlocked at now. It returns the total number finalized.
func (r *Registry) FinalizeDue(ctx context.Context, now time.Time) int {
	total := 0
	for _, svc := range r.snapshotServices() {
		if ctx.Err() != nil {
			break
		}
		total += svc.FinalizeDue(ctx, now)
	}
	return total
}

// Profiles returns the ids of loaded services in sorted order.
func (r *Registry) Profiles() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.services))
	for id := range r.services {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of loaded services.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.services)
}

// snapshotServices returns loaded services in profile order.
func (r *Registry) snapshotServices() []*reinforcement.Service {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.services))
	for id := range r.services {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]*reinforcement.Service, len(ids))
	for i, id := range ids {
		out[i] = r.services[id]
	}
	return out
}

// StartCalibration begins a new calibration for profileID in domain d,
// replacing any active one. A previously completed record seeds the session.
// Sessions are held in memory for calibration.Config.SessionTTL and at most
// MaxSessions are kept; the least recently used one is dropped first.
func (r *Registry) StartCalibration(ctx context.Context, profileID string, d axis.Domain) (*calibration.Session, error) {
	if err := ValidateProfileID(profileID); err != nil {
		return nil, err
	}
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %q", axis.ErrUnknownDomain, d)
	}

	opts := []calibration.Option{
		calibration.WithStore(r.store),
		calibration.WithClock(r.now),
	}
	if prev, ok := r.loadCalibration(ctx, profileID, d); ok {
		opts = append(opts, calibration.WithPrevious(prev))
	}
	s := calibration.NewSession(profileID, d, r.calibration, r.logger, opts...)

	r.calibrations.Add(calibrationKey(profileID, d), s)
	return s, nil
}

// Calibration returns the active calibration session for profileID and d.
func (r *Registry) Calibration(profileID string, d axis.Domain) (*calibration.Session, error) {
	s, ok := r.calibrations.Get(calibrationKey(profileID, d))
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrNoCalibration, profileID, d)
	}
	return s, nil
}

// Profile assembles the ranking profile for profileID in domain d from the
// latest calibration record and the identity. The identity contributes its
// interaction count and the embeddings learned from votes. A profile that
// never calibrated gets zero scores.
func (r *Registry) Profile(ctx context.Context, profileID string, d axis.Domain) (recommend.Profile, error) {
	if !d.Valid() {
		return recommend.Profile{}, fmt.Errorf("%w: %q", axis.ErrUnknownDomain, d)
	}
	svc, err := r.Service(ctx, profileID)
	if err != nil {
		return recommend.Profile{}, err
	}

	id := svc.Identity()
	profile := recommend.Profile{
		Scores:       axis.NewScores(d),
		Interactions: int(id.Interactions()),
		Positive:     id.Positive,
		Anti:         id.Anti,
		Stability:    id.Stability,
		Version:      id.Version,
	}
	if rec, ok := r.currentCalibration(ctx, profileID, d); ok {
		profile.Scores = rec.Scores()
		profile.Interactions += rec.Interactions
	}
	return profile, nil
}

// currentCalibration prefers a completed in-memory session over the store so
// that a failed save does not hide a finished calibration.
func (r *Registry) currentCalibration(ctx context.Context, profileID string, d axis.Domain) (calibration.Record, bool) {
	s, ok := r.calibrations.Peek(calibrationKey(profileID, d))
	if ok && s.Phase() == calibration.PhaseComplete {
		return s.Record(), true
	}
	return r.loadCalibration(ctx, profileID, d)
}

func (r *Registry) loadCalibration(ctx context.Context, profileID string, d axis.Domain) (calibration.Record, bool) {
	rec, ok, err := r.store.LoadCalibration(ctx, profileID, d)
	if err != nil {
		metrics.RecordStoreError("load_calibration")
		r.logger.Warn().Err(err).Str("profile_id", profileID).Str("domain", string(d)).Msg("Failed to load calibration")
		return calibration.Record{}, false
	}
	return rec, ok
}

// AdvisoryHistory returns the stored advisory tolerance history of
// profileID. A profile without history, or whose history cannot be read,
// gets the zero History.
func (r *Registry) AdvisoryHistory(ctx context.Context, profileID string) (advisory.History, error) {
	if err := ValidateProfileID(profileID); err != nil {
		return advisory.History{}, err
	}
	return r.loadAdvisory(ctx, profileID), nil
}

// RecordAdvisoryOutcome adds an outcome to profileID's history, lets the
// tolerance adjust and persists the result. Outcomes for one registry are
// serialized so concurrent reports cannot drop each other.
func (r *Registry) RecordAdvisoryOutcome(ctx context.Context, profileID string, o advisory.Outcome) (advisory.History, error) {
	if err := ValidateProfileID(profileID); err != nil {
		return advisory.History{}, err
	}

	r.advisoryMu.Lock()
	defer r.advisoryMu.Unlock()

	prev := r.loadAdvisory(ctx, profileID)
	next := prev.Record(o, r.now())
	if err := r.store.SaveAdvisory(ctx, profileID, next); err != nil {
		metrics.RecordStoreError("save_advisory")
		return advisory.History{}, fmt.Errorf("save advisory history: %w", err)
	}
	if next.Tolerance != prev.Tolerance {
		r.logger.Info().
			Str("profile_id", profileID).
			Float64("from", prev.Tolerance.Value).
			Float64("to", next.Tolerance.Value).
			Msg("Advisory tolerance adjusted")
	}
	return next, nil
}

func (r *Registry) loadAdvisory(ctx context.Context, profileID string) advisory.History {
	h, _, err := r.store.LoadAdvisory(ctx, profileID)
	if err != nil {
		metrics.RecordStoreError("load_advisory")
		r.logger.Warn().Err(err).Str("profile_id", profileID).Msg("Failed to load advisory history")
		return advisory.History{}
	}
	return h
}

// Favorites returns the favorite item ids of profileID.
func (r *Registry) Favorites(ctx context.Context, profileID string) ([]string, error) {
	if err := ValidateProfileID(profileID); err != nil {
		return nil, err
	}
	ids, err := r.store.ListFavorites(ctx, profileID)
	if err != nil {
		metrics.RecordStoreError("list_favorites")
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return ids, nil
}

// AddFavorite marks itemID as a favorite of profileID.
func (r *Registry) AddFavorite(ctx context.Context, profileID, itemID string) error {
	if err := ValidateProfileID(profileID); err != nil {
		return err
	}
	if err := r.store.AddFavorite(ctx, profileID, itemID); err != nil {
		metrics.RecordStoreError("add_favorite")
		return fmt.Errorf("add favorite: %w", err)
	}
	return nil
}

// RemoveFavorite unmarks itemID. Removing an absent favorite is not an error.
func (r *Registry) RemoveFavorite(ctx context.Context, profileID, itemID string) error {
	if err := ValidateProfileID(profileID); err != nil {
		return err
	}
	if err := r.store.RemoveFavorite(ctx, profileID, itemID); err != nil {
		metrics.RecordStoreError("remove_favorite")
		return fmt.Errorf("remove favorite: %w", err)
	}
	return nil
}

func calibrationKey(profileID string, d axis.Domain) string {
	return profileID + ":" + string(d)
}
