// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

// Package storage persists identities, pending reinforcements, calibration
// records, advisory tolerance history and favorites.
//
// Two implementations satisfy Store:
//
//   - BadgerStore: durable storage in BadgerDB with JSON values (goccy/go-json)
//   - MemoryStore: process-local maps for tests and ephemeral deployments
//
// # Key Layout
//
//	identity:<profile>                  reinforcement.Identity
//	pending:<profile>                   []reinforcement.Pending
//	calibration:<profile>:<domain>      calibration.Record
//	advisory:<profile>                  advisory.History
//	favorite:<profile>:<item>           empty value
//
// # Missing and Corrupt Records
//
// Load methods report ok=false for a missing record. A record that fails to
// decode is logged, counted in tastegraph_store_errors_total and also reported
// as ok=false, so callers fall back to fresh state instead of failing.
package storage
