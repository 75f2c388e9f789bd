// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

// Package advisory compares a candidate against a taste identity and decides
// whether to warn before the user proceeds.
//
// Two scorers are provided. [Score] works on free-form tag vectors and reports
// alignment on a 0-100 scale with confidence, regret risk and human-readable
// reasons. [Conflict] works on axis scores and reports alignment in [0, 1],
// drift and the axes that disagree most.
//
// [Decide] turns a [ConflictResult] into a traffic-light [Verdict] using the
// thresholds of a strictness [Level] and a per-user [Tolerance]. Stricter
// levels never produce a less cautious verdict for the same conflict.
//
// A [History] keeps a profile's tolerance together with recent override and
// abandonment outcomes. [History.Record] adds an outcome and lets the
// tolerance step at most once per [ToleranceWindow].
//
// [ConflictResult.WithTaste] blends an embedding affinity into the axis
// alignment when the candidate carries a visual signal.
//
// Everything in this package is a pure function of its inputs.
package advisory
