// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

// Package embedding turns interpretable visual signals into dense taste embeddings.
//
// # Signals
//
// Upstream image analysis produces an 11-element [Signal] with every entry in
// [0, 1]. The package never decodes images itself: a [Producer] supplies the
// signal and any producer failure degrades to [NeutralSignal].
//
// # Projection
//
// [Project] multiplies the signal by a fixed 64x11 matrix and L2-normalizes
// the result. The matrix is generated once per process from a constant-seeded
// linear congruential generator and a Box-Muller transform, so it is
// effectively a compiled constant: the same signal always yields the same
// embedding, on every run and every build.
//
// # Embeddings
//
// [Embedding] is a fixed-length array, which makes the 64-dimension invariant
// a property of the type. Blending is computed as e + rate*(t-e) so that a
// blend toward the current value is exact.
//
// # Thread Safety
//
// The projection matrix is initialized under sync.Once and only read
// afterwards. All functions are safe for concurrent use.
package embedding
