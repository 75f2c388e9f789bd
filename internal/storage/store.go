// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package storage

import (
	"context"
	"errors"
	"strings"

	"github.com/tomtom215/tastegraph/internal/advisory"
	"github.com/tomtom215/tastegraph/internal/axis"
	"github.com/tomtom215/tastegraph/internal/calibration"
	"github.com/tomtom215/tastegraph/internal/reinforcement"
)

// ErrInvalidKey is returned when a profile or item id is empty or contains
// the key separator.
var ErrInvalidKey = errors.New("storage: invalid key")

// Store persists per-profile state.
type Store interface {
	SaveIdentity(ctx context.Context, profileID string, id reinforcement.Identity) error
	LoadIdentity(ctx context.Context, profileID string) (reinforcement.Identity, bool, error)

	SavePending(ctx context.Context, profileID string, pending []reinforcement.Pending) error
	LoadPending(ctx context.Context, profileID string) ([]reinforcement.Pending, error)

	SaveCalibration(ctx context.Context, rec calibration.Record) error
	LoadCalibration(ctx context.Context, profileID string, d axis.Domain) (calibration.Record, bool, error)

	SaveAdvisory(ctx context.Context, profileID string, h advisory.History) error
	LoadAdvisory(ctx context.Context, profileID string) (advisory.History, bool, error)

	AddFavorite(ctx context.Context, profileID, itemID string) error
	RemoveFavorite(ctx context.Context, profileID, itemID string) error
	ListFavorites(ctx context.Context, profileID string) ([]string, error)

	// ListProfiles returns every profile with a stored identity, sorted.
	ListProfiles(ctx context.Context) ([]string, error)

	Close() error
}

// Compile-time interface verification
var (
	_ Store                   = (*BadgerStore)(nil)
	_ Store                   = (*MemoryStore)(nil)
	_ reinforcement.Persister = (Store)(nil)
	_ calibration.Store       = (Store)(nil)
)

const (
	prefixIdentity    = "identity:"
	prefixPending     = "pending:"
	prefixCalibration = "calibration:"
	prefixAdvisory    = "advisory:"
	prefixFavorite    = "favorite:"
)

func checkID(ids ...string) error {
	for _, id := range ids {
		if id == "" || strings.Contains(id, ":") {
			return ErrInvalidKey
		}
	}
	return nil
}

func identityKey(profileID string) []byte {
	return []byte(prefixIdentity + profileID)
}

func pendingKey(profileID string) []byte {
	return []byte(prefixPending + profileID)
}

func calibrationKey(profileID string, d axis.Domain) []byte {
	return []byte(prefixCalibration + profileID + ":" + string(d))
}

func advisoryKey(profileID string) []byte {
	return []byte(prefixAdvisory + profileID)
}

func favoritePrefix(profileID string) []byte {
	return []byte(prefixFavorite + profileID + ":")
}

func favoriteKey(profileID, itemID string) []byte {
	return []byte(prefixFavorite + profileID + ":" + itemID)
}
