// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/tastegraph/internal/advisory"
	"github.com/tomtom215/tastegraph/internal/axis"
	"github.com/tomtom215/tastegraph/internal/calibration"
	"github.com/tomtom215/tastegraph/internal/metrics"
	"github.com/tomtom215/tastegraph/internal/reinforcement"
)

// Options configures a BadgerStore.
type Options struct {
	// Path is the BadgerDB directory. Ignored when InMemory is set.
	Path string

	// InMemory keeps all data in memory. Intended for tests.
	InMemory bool

	// SyncWrites fsyncs every write.
	SyncWrites bool

	// ValueLogFileSize caps each value log file in bytes. Zero keeps the
	// BadgerDB default.
	ValueLogFileSize int64
}

// BadgerStore implements Store on BadgerDB.
type BadgerStore struct {
	db     *badger.DB
	logger zerolog.Logger
}

// OpenBadger opens (or creates) a BadgerDB-backed store.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func OpenBadger(opts Options, logger zerolog.Logger) (*BadgerStore, error) {
	bopts := badger.DefaultOptions(opts.Path)
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	}
	bopts.Logger = nil // Suppress BadgerDB internal logs
	bopts.SyncWrites = opts.SyncWrites
	if opts.ValueLogFileSize > 0 {
		bopts.ValueLogFileSize = opts.ValueLogFileSize
	}

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	s := NewBadgerStoreFromDB(db, logger)
	s.logger.Info().
		Str("path", opts.Path).
		Bool("in_memory", opts.InMemory).
		Bool("sync_writes", opts.SyncWrites).
		Msg("store opened")
	return s, nil
}

// NewBadgerStoreFromDB wraps an existing BadgerDB connection.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewBadgerStoreFromDB(db *badger.DB, logger zerolog.Logger) *BadgerStore {
	return &BadgerStore{
		db:     db,
		logger: logger.With().Str("component", "storage").Logger(),
	}
}

// SaveIdentity stores the identity for a profile.
//
//nolint:gocritic // hugeParam: id passed by value for immutability
func (s *BadgerStore) SaveIdentity(_ context.Context, profileID string, id reinforcement.Identity) error {
	if err := checkID(profileID); err != nil {
		return err
	}
	return s.put(identityKey(profileID), id)
}

// LoadIdentity retrieves the identity for a profile.
func (s *BadgerStore) LoadIdentity(_ context.Context, profileID string) (reinforcement.Identity, bool, error) {
	var id reinforcement.Identity
	if err := checkID(profileID); err != nil {
		return id, false, err
	}
	ok, err := s.get(identityKey(profileID), &id)
	if !ok || err != nil {
		return reinforcement.Identity{}, false, err
	}
	return id, true, nil
}

// SavePending replaces the stored pending queue for a profile. An empty
// queue deletes the record.
func (s *BadgerStore) SavePending(_ context.Context, profileID string, pending []reinforcement.Pending) error {
	if err := checkID(profileID); err != nil {
		return err
	}
	if len(pending) == 0 {
		return s.delete(pendingKey(profileID))
	}
	return s.put(pendingKey(profileID), pending)
}

// LoadPending retrieves the pending queue for a profile.
func (s *BadgerStore) LoadPending(_ context.Context, profileID string) ([]reinforcement.Pending, error) {
	if err := checkID(profileID); err != nil {
		return nil, err
	}
	var pending []reinforcement.Pending
	ok, err := s.get(pendingKey(profileID), &pending)
	if !ok || err != nil {
		return nil, err
	}
	return pending, nil
}

// SaveCalibration stores a calibration record keyed by profile and domain.
//
//nolint:gocritic // hugeParam: rec passed by value for immutability
func (s *BadgerStore) SaveCalibration(_ context.Context, rec calibration.Record) error {
	if err := checkID(rec.ProfileID); err != nil {
		return err
	}
	if !rec.Domain.Valid() {
		return axis.ErrUnknownDomain
	}
	return s.put(calibrationKey(rec.ProfileID, rec.Domain), rec)
}

// LoadCalibration retrieves the calibration record for a profile and domain.
func (s *BadgerStore) LoadCalibration(_ context.Context, profileID string, d axis.Domain) (calibration.Record, bool, error) {
	var rec calibration.Record
	if err := checkID(profileID); err != nil {
		return rec, false, err
	}
	ok, err := s.get(calibrationKey(profileID, d), &rec)
	if !ok || err != nil {
		return calibration.Record{}, false, err
	}
	return rec, true, nil
}

// SaveAdvisory stores the advisory tolerance history for a profile.
//
//nolint:gocritic // hugeParam: h passed by value for immutability
func (s *BadgerStore) SaveAdvisory(_ context.Context, profileID string, h advisory.History) error {
	if err := checkID(profileID); err != nil {
		return err
	}
	return s.put(advisoryKey(profileID), h)
}

// LoadAdvisory retrieves the advisory tolerance history for a profile.
func (s *BadgerStore) LoadAdvisory(_ context.Context, profileID string) (advisory.History, bool, error) {
	var h advisory.History
	if err := checkID(profileID); err != nil {
		return h, false, err
	}
	ok, err := s.get(advisoryKey(profileID), &h)
	if !ok || err != nil {
		return advisory.History{}, false, err
	}
	return h, true, nil
}

// AddFavorite marks an item as a favorite. Adding twice is a no-op.
func (s *BadgerStore) AddFavorite(_ context.Context, profileID, itemID string) error {
	if err := checkID(profileID, itemID); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(favoriteKey(profileID, itemID), nil)
	})
}

// RemoveFavorite removes a favorite. Removing a missing favorite is a no-op.
func (s *BadgerStore) RemoveFavorite(_ context.Context, profileID, itemID string) error {
	if err := checkID(profileID, itemID); err != nil {
		return err
	}
	return s.delete(favoriteKey(profileID, itemID))
}

// ListFavorites returns a profile's favorite item ids in key order.
func (s *BadgerStore) ListFavorites(_ context.Context, profileID string) ([]string, error) {
	if err := checkID(profileID); err != nil {
		return nil, err
	}

	prefix := favoritePrefix(profileID)
	var ids []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			ids = append(ids, string(bytes.TrimPrefix(it.Item().Key(), prefix)))
		}
		return nil
	})
	if err != nil {
		metrics.RecordStoreError("list_favorites")
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return ids, nil
}

// ListProfiles returns every profile with a stored identity.
func (s *BadgerStore) ListProfiles(_ context.Context) ([]string, error) {
	prefix := []byte(prefixIdentity)
	var ids []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			ids = append(ids, string(bytes.TrimPrefix(it.Item().Key(), prefix)))
		}
		return nil
	})
	if err != nil {
		metrics.RecordStoreError("list_profiles")
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	sort.Strings(ids)
	return ids, nil
}

// Close closes the underlying BadgerDB connection.
func (s *BadgerStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// DB returns the underlying BadgerDB connection.
func (s *BadgerStore) DB() *badger.DB {
	return s.db
}

func (s *BadgerStore) put(key []byte, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
	if err != nil {
		metrics.RecordStoreError("write")
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// get decodes the value at key into v. A missing key reports false with no
// error. A value that fails to decode is logged and also reports false.
func (s *BadgerStore) get(key []byte, v any) (bool, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		metrics.RecordStoreError("read")
		return false, fmt.Errorf("read %s: %w", key, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		metrics.RecordStoreError("decode")
		s.logger.Warn().Err(err).Str("key", string(key)).Msg("discarding corrupt record")
		return false, nil
	}
	return true, nil
}

func (s *BadgerStore) delete(key []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil // Already deleted
		}
		return err
	})
	if err != nil {
		metrics.RecordStoreError("delete")
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
