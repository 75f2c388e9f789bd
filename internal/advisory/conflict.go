// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package advisory

import (
	"math"
	"sort"

	"github.com/tomtom215/tastegraph/internal/axis"
)

// conflictAxisCount is the number of disagreeing axes reported.
const conflictAxisCount = 2

// ConflictResult compares a candidate's axis profile with the user's.
type ConflictResult struct {
	// Alignment is the cosine similarity mapped to [0, 1]. Zero profiles give 0.5.
	Alignment float64 `json:"alignment"`

	// Drift is the Euclidean distance divided by sqrt(axis count), in [0, 1].
	Drift float64 `json:"drift"`

	// ConflictAxes are up to two axis keys with the largest absolute
	// difference, ties resolved by declaration order. Axes that agree exactly
	// are never reported.
	ConflictAxes []string `json:"conflict_axes"`

	// Taste is the embedding affinity blended into Alignment, when the
	// candidate came with a visual signal and the identity has learned
	// embeddings.
	Taste *float64 `json:"taste,omitempty"`
}

// WithTaste blends an embedding affinity in [0, 1] into Alignment with weight
// share in [0, 1]. Drift and ConflictAxes stay axis-level.
func (c ConflictResult) WithTaste(affinity, share float64) ConflictResult {
	share = clamp(share, 0, 1)
	if share == 0 {
		return c
	}
	affinity = clamp(affinity, 0, 1)
	c.Alignment = (1-share)*c.Alignment + share*affinity
	c.Taste = &affinity
	return c
}

// Conflict compares candidate and identity axis scores after normalizing
// both. It panics when the domains differ.
func Conflict(candidate, identity axis.Scores) ConflictResult {
	a := candidate.Normalized()
	b := identity.Normalized()

	n := float64(len(a.Values))
	drift := 0.0
	if n > 0 {
		drift = clamp(a.Distance(b)/math.Sqrt(n), 0, 1)
	}

	type diff struct {
		idx   int
		delta float64
	}
	diffs := make([]diff, 0, len(a.Values))
	for i := range a.Values {
		if d := math.Abs(a.Values[i] - b.Values[i]); d > 0 {
			diffs = append(diffs, diff{idx: i, delta: d})
		}
	}
	sort.SliceStable(diffs, func(i, j int) bool {
		return diffs[i].delta > diffs[j].delta
	})

	axes := a.Domain.Axes()
	conflict := make([]string, 0, conflictAxisCount)
	for i := 0; i < len(diffs) && i < conflictAxisCount; i++ {
		conflict = append(conflict, axes[diffs[i].idx].Key)
	}

	return ConflictResult{
		Alignment:    (a.Cosine(b) + 1) / 2,
		Drift:        drift,
		ConflictAxes: conflict,
	}
}
