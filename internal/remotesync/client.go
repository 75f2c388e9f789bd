// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package remotesync

import (
	"context"
	"errors"

	"github.com/tomtom215/tastegraph/internal/reinforcement"
)

var (
	// ErrNotImplemented is returned by clients that do not support an operation.
	ErrNotImplemented = errors.New("remotesync: not implemented")

	// ErrNotFound is returned when the remote store has no snapshot for a profile.
	ErrNotFound = errors.New("remotesync: snapshot not found")
)

// Client talks to a remote identity store.
type Client interface {
	// FetchSnapshot returns the remote state for a profile, or ErrNotFound.
	FetchSnapshot(ctx context.Context, profileID string) (reinforcement.Snapshot, error)

	// PushEvents delivers a batch of identity events.
	PushEvents(ctx context.Context, events []reinforcement.Event) error
}

// Noop is a Client for deployments without a remote store.
type Noop struct{}

// FetchSnapshot returns ErrNotImplemented.
func (Noop) FetchSnapshot(context.Context, string) (reinforcement.Snapshot, error) {
	return reinforcement.Snapshot{}, ErrNotImplemented
}

// PushEvents returns ErrNotImplemented.
func (Noop) PushEvents(context.Context, []reinforcement.Event) error {
	return ErrNotImplemented
}

// Merge picks the snapshot a session should start from. The remote snapshot
// wins when its identity version is at least the local one; otherwise local
// state is kept. The result always carries the local profile id.
//
//nolint:gocritic // hugeParam: snapshots passed by value for immutability
func Merge(local, remote reinforcement.Snapshot) (reinforcement.Snapshot, bool) {
	if local.Identity.Version > remote.Identity.Version {
		return local, false
	}
	remote.ProfileID = local.ProfileID
	return remote, true
}

var (
	_ Client = Noop{}
	_ Client = (*HTTPClient)(nil)
)
