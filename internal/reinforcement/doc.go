// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

// Package reinforcement evolves a taste identity from discrete user feedback.
//
// An [Identity] holds a positive embedding (what the user gravitates toward),
// an anti-embedding (what they avoid), a smoothed stability value and
// monotonically increasing vote counters and version.
//
// # Votes
//
// Confirm and reject votes blend the positive or anti embedding toward the
// candidate. Weak confirms always apply immediately at a much smaller rate.
// Returned items count as rejects but only move the anti-embedding when the
// return reason is about style.
//
// # Anchor Categories
//
// Confirms and rejects on high-commitment categories (furniture, fine
// jewelry, outerwear, artwork by default) do not reshape the identity right
// away. They produce a [Pending] record that unlocks after a 14 day dwell and
// is later finalized at an amplified rate using the embedding captured when
// the vote was cast.
//
// # Ownership
//
// [Apply] and [Finalize] are pure. [Service] is the single writer of one
// identity and its [PendingQueue]: every mutation happens under its mutex and
// readers receive deep copies via [Service.Snapshot]. Persistence and remote
// recording are best effort and never fail a vote.
package reinforcement
