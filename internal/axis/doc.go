// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

// Package axis maps weighted tag vectors onto small, named, opposite-pole
// style dimensions.
//
// Each content [Domain] declares a fixed, ordered set of [Axis] values. The
// style domain (apparel) has seven axes and the space domain (interiors) has
// nine. Declaration order matters: it breaks ties when picking the dominant
// axis and when reporting conflict axes.
//
// # Mapping
//
// [Map] reduces a [Vector] of tag weights to [Scores] using a static
// per-domain contribution table. Every axis key is also a tag whose row is
// the unit vector on that axis, so calibration vectors keyed by axis key map
// onto themselves. Tags outside the vocabulary are ignored.
//
// # Invariants
//
// Scores always carry exactly one value per axis of their domain, and every
// value lies in [-1, 1]. Arithmetic between scores of different domains is a
// programming error and panics.
package axis
