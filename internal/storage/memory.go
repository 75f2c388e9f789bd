// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/tomtom215/tastegraph/internal/advisory"
	"github.com/tomtom215/tastegraph/internal/axis"
	"github.com/tomtom215/tastegraph/internal/calibration"
	"github.com/tomtom215/tastegraph/internal/reinforcement"
)

// MemoryStore implements Store using in-memory maps.
// This is useful for testing or when persistence is not required.
type MemoryStore struct {
	mu           sync.RWMutex
	identities   map[string]reinforcement.Identity
	pending      map[string][]reinforcement.Pending
	calibrations map[string]calibration.Record
	advisories   map[string]advisory.History
	favorites    map[string]map[string]struct{}
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		identities:   make(map[string]reinforcement.Identity),
		pending:      make(map[string][]reinforcement.Pending),
		calibrations: make(map[string]calibration.Record),
		advisories:   make(map[string]advisory.History),
		favorites:    make(map[string]map[string]struct{}),
	}
}

// SaveIdentity stores the identity in memory.
//
//nolint:gocritic // hugeParam: id passed by value for immutability
func (m *MemoryStore) SaveIdentity(_ context.Context, profileID string, id reinforcement.Identity) error {
	if err := checkID(profileID); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.identities[profileID] = id
	return nil
}

// LoadIdentity retrieves the identity from memory.
func (m *MemoryStore) LoadIdentity(_ context.Context, profileID string) (reinforcement.Identity, bool, error) {
	if err := checkID(profileID); err != nil {
		return reinforcement.Identity{}, false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.identities[profileID]
	return id, ok, nil
}

// SavePending stores a copy of the pending queue.
func (m *MemoryStore) SavePending(_ context.Context, profileID string, pending []reinforcement.Pending) error {
	if err := checkID(profileID); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(pending) == 0 {
		delete(m.pending, profileID)
		return nil
	}
	m.pending[profileID] = append([]reinforcement.Pending(nil), pending...)
	return nil
}

// LoadPending returns a copy of the pending queue.
func (m *MemoryStore) LoadPending(_ context.Context, profileID string) ([]reinforcement.Pending, error) {
	if err := checkID(profileID); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]reinforcement.Pending(nil), m.pending[profileID]...), nil
}

// SaveCalibration stores a deep copy of the record.
//
//nolint:gocritic // hugeParam: rec passed by value for immutability
func (m *MemoryStore) SaveCalibration(_ context.Context, rec calibration.Record) error {
	if err := checkID(rec.ProfileID); err != nil {
		return err
	}
	if !rec.Domain.Valid() {
		return axis.ErrUnknownDomain
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calibrations[string(calibrationKey(rec.ProfileID, rec.Domain))] = rec.Clone()
	return nil
}

// LoadCalibration returns a deep copy of the record.
func (m *MemoryStore) LoadCalibration(_ context.Context, profileID string, d axis.Domain) (calibration.Record, bool, error) {
	if err := checkID(profileID); err != nil {
		return calibration.Record{}, false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.calibrations[string(calibrationKey(profileID, d))]
	if !ok {
		return calibration.Record{}, false, nil
	}
	return rec.Clone(), true, nil
}

// SaveAdvisory stores a copy of the advisory history.
//
//nolint:gocritic // hugeParam: h passed by value for immutability
func (m *MemoryStore) SaveAdvisory(_ context.Context, profileID string, h advisory.History) error {
	if err := checkID(profileID); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.advisories[profileID] = h.Clone()
	return nil
}

// LoadAdvisory returns a copy of the advisory history.
func (m *MemoryStore) LoadAdvisory(_ context.Context, profileID string) (advisory.History, bool, error) {
	if err := checkID(profileID); err != nil {
		return advisory.History{}, false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	h, ok := m.advisories[profileID]
	if !ok {
		return advisory.History{}, false, nil
	}
	return h.Clone(), true, nil
}

// AddFavorite marks an item as a favorite.
func (m *MemoryStore) AddFavorite(_ context.Context, profileID, itemID string) error {
	if err := checkID(profileID, itemID); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	set, ok := m.favorites[profileID]
	if !ok {
		set = make(map[string]struct{})
		m.favorites[profileID] = set
	}
	set[itemID] = struct{}{}
	return nil
}

// RemoveFavorite removes a favorite.
func (m *MemoryStore) RemoveFavorite(_ context.Context, profileID, itemID string) error {
	if err := checkID(profileID, itemID); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.favorites[profileID], itemID)
	return nil
}

// ListFavorites returns a profile's favorites sorted by id.
func (m *MemoryStore) ListFavorites(_ context.Context, profileID string) ([]string, error) {
	if err := checkID(profileID); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var ids []string
	for id := range m.favorites[profileID] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// ListProfiles returns every profile with a stored identity.
func (m *MemoryStore) ListProfiles(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.identities))
	for id := range m.identities {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error {
	return nil
}
