// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package axis

import (
	"math"
	"sort"
)

// Map reduces a tag vector to axis scores for d.
//
// Each known tag with a nonzero weight contributes weight*coefficient to every
// axis. The sums are divided by the total absolute weight of the tags that
// contributed and clamped to [-1, 1]. Unknown tags and NaN weights are
// skipped; when nothing contributes the result is all zeros. Tags are
// visited in sorted order so repeated calls are bit-identical.
func Map(d Domain, tags Vector) Scores {
	table := tableFor(d)
	out := NewScores(d)

	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var total float64
	for _, tag := range keys {
		w := tags[tag]
		if w == 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			continue
		}
		row, ok := table.rows[tag]
		if !ok {
			continue
		}
		total += math.Abs(w)
		for i, c := range row {
			out.Values[i] += w * c
		}
	}

	if total == 0 {
		return NewScores(d)
	}
	for i, v := range out.Values {
		out.Values[i] = clamp(v/total, -1, 1)
	}
	return out
}
