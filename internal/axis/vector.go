// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package axis

import (
	"math"
	"sort"
)

// Vector maps tag or axis keys to weights. Weights are unbounded until
// normalized.
type Vector map[string]float64

// Clone returns a copy of v. A nil vector clones to an empty one.
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	for k, w := range v {
		out[k] = w
	}
	return out
}

// Add accumulates delta onto key.
func (v Vector) Add(key string, delta float64) {
	v[key] += delta
}

// AddScaled accumulates scale*other into v.
func (v Vector) AddScaled(other Vector, scale float64) {
	for k, w := range other {
		v[k] += scale * w
	}
}

// MaxAbs returns the largest finite absolute weight.
func (v Vector) MaxAbs() float64 {
	var m float64
	for _, w := range v {
		if math.IsInf(w, 0) {
			continue
		}
		if a := math.Abs(w); a > m {
			m = a
		}
	}
	return m
}

// Normalize divides every weight by the largest absolute weight and clamps
// the result to [-1, 1]. NaN weights become 0. A vector whose weights are all
// zero normalizes to all zeros. Normalizing a normalized vector is a no-op.
func (v Vector) Normalize() Vector {
	out := make(Vector, len(v))
	m := v.MaxAbs()
	for k, w := range v {
		if math.IsNaN(w) || m == 0 {
			out[k] = 0
			continue
		}
		out[k] = clamp(w/m, -1, 1)
	}
	return out
}

// Significance returns the fraction of keys whose absolute weight exceeds
// threshold, or 0 for an empty vector.
func (v Vector) Significance(threshold float64) float64 {
	if len(v) == 0 {
		return 0
	}
	n := 0
	for _, w := range v {
		if math.Abs(w) > threshold {
			n++
		}
	}
	return float64(n) / float64(len(v))
}

// TopKeys returns up to n keys ordered by absolute weight descending, then
// key ascending. Zero-weight keys are skipped.
func (v Vector) TopKeys(n int) []string {
	keys := make([]string, 0, len(v))
	for k, w := range v {
		if w != 0 && !math.IsNaN(w) {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		ai, aj := math.Abs(v[keys[i]]), math.Abs(v[keys[j]])
		if ai != aj {
			return ai > aj
		}
		return keys[i] < keys[j]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

// Keys returns the union of keys of a and b, sorted.
func Keys(a, b Vector) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		seen[k] = struct{}{}
	}
	for k := range b {
		seen[k] = struct{}{}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Cosine returns the cosine similarity of a and b over the union of their
// keys, or 0 when either vector has zero magnitude. Keys are visited in sorted
// order so the result is reproducible.
func Cosine(a, b Vector) float64 {
	var dot, na, nb float64
	for _, k := range Keys(a, b) {
		x, y := a[k], b[k]
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return clamp(dot/(math.Sqrt(na)*math.Sqrt(nb)), -1, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
