// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

// Package calibration runs the onboarding flow that seeds a taste profile.
//
// A Session moves through three phases:
//
//	swipe -> duel -> complete
//
// In the swipe phase the user judges a fixed deck with two cards per axis
// (one per pole). Each decision adds a fixed magnitude to the card's axis:
//
//	reject          -0.8
//	confirm         +1.0
//	strong_confirm  +2.0
//
// multiplied by the pole's sign. When the deck is exhausted the session moves
// to forced-choice duels between archetypes (see the naming package). Each
// choice blends 0.15 of the winner's signature into the vector and counts a
// win. The session completes once enough duels were played and one archetype
// clearly leads, or when the duel cap is reached. Completion persists the
// record and generates the profile name. A completed session rejects further
// input with ErrSessionComplete.
package calibration
