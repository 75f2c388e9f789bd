// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

// Package remotesync connects identities to an optional remote store.
//
// Remote sync never affects correctness. Identities are computed locally; the
// remote side only receives a stream of identity events and may supply a
// snapshot when a profile session starts.
//
// Components:
//
//   - Client: the remote store interface (FetchSnapshot, PushEvents)
//   - HTTPClient: JSON over HTTP, guarded by a sony/gobreaker circuit breaker
//     and a golang.org/x/time/rate limiter
//   - Noop: the default client, every call returns ErrNotImplemented
//   - Merge: adopts a remote snapshot only when it is at least as new
//   - Recorder: a fire-and-forget reinforcement.EventRecorder that batches
//     events to a Client from a supervised Serve loop
package remotesync
