// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

// Package naming generates deterministic labels and forced-choice duels from
// axis scores.
//
// Nothing here is random at runtime. A fingerprint string summarizes the
// scores, and a multiplicative rolling hash of that fingerprint selects words
// from fixed per-domain pools:
//
//	scores + tags -> Fingerprint -> Hash(salt, fingerprint) -> word pools -> Name
//
// # Evolution
//
// Evolve decides whether a previously shown name may be replaced. A new name
// is adopted only when the fingerprint changed and the profile is settled
// enough (strong confidence, at least 14 interactions, or a top-two axis
// separation of 0.15). Otherwise the prior title stays and only the
// description is refreshed. The last three superseded titles are kept.
//
// # Duels
//
// DuelPairs pairs archetypes with differing dominant axes, preferring the
// most distant pairs, and shuffles them reproducibly from the profile id.
//
// # Thread Safety
//
// All functions are pure and safe for concurrent use.
package naming
