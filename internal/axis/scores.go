// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package axis

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// SecondaryThreshold is the minimum absolute value for a secondary axis.
const SecondaryThreshold = 0.15

// Scores holds one value in [-1, 1] per axis of a domain, in declaration order.
type Scores struct {
	Domain Domain    `json:"domain"`
	Values []float64 `json:"values"`
}

// NewScores returns all-zero scores for d.
func NewScores(d Domain) Scores {
	return Scores{Domain: d, Values: make([]float64, d.Len())}
}

// ScoresOf builds scores from a slice with one value per axis, clamping each
// value to [-1, 1]. It panics on a length mismatch.
func ScoresOf(d Domain, values []float64) Scores {
	if len(values) != d.Len() {
		panic(fmt.Sprintf("axis: %d values for %s, want %d", len(values), d, d.Len()))
	}
	s := NewScores(d)
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		s.Values[i] = clamp(v, -1, 1)
	}
	return s
}

// FromVector reads axis-keyed weights from v. Keys that are not axes of d are
// ignored and values are clamped to [-1, 1].
func FromVector(d Domain, v Vector) Scores {
	s := NewScores(d)
	for i, a := range d.Axes() {
		if w, ok := v[a.Key]; ok && !math.IsNaN(w) {
			s.Values[i] = clamp(w, -1, 1)
		}
	}
	return s
}

// Clone returns a deep copy.
func (s Scores) Clone() Scores {
	out := Scores{Domain: s.Domain, Values: make([]float64, len(s.Values))}
	copy(out.Values, s.Values)
	return out
}

// Vector returns the scores keyed by axis key.
func (s Scores) Vector() Vector {
	v := make(Vector, len(s.Values))
	for i, a := range s.Domain.Axes() {
		v[a.Key] = s.Values[i]
	}
	return v
}

// Get returns the value for an axis key, or 0 if the key is not an axis.
func (s Scores) Get(key string) float64 {
	if i := s.Domain.Index(key); i >= 0 {
		return s.Values[i]
	}
	return 0
}

// IsZero reports whether every value is zero.
func (s Scores) IsZero() bool {
	for _, v := range s.Values {
		if v != 0 {
			return false
		}
	}
	return true
}

// Dominant returns the index of the axis with the largest absolute value.
// Ties go to the earlier axis, so all-zero scores report axis 0.
func (s Scores) Dominant() int {
	best := 0
	for i := 1; i < len(s.Values); i++ {
		if math.Abs(s.Values[i]) > math.Abs(s.Values[best]) {
			best = i
		}
	}
	return best
}

// DominantAxis returns the dominant axis.
func (s Scores) DominantAxis() Axis {
	return s.Domain.Axes()[s.Dominant()]
}

// secondCandidate returns the index of the next-largest absolute value after
// the dominant axis, or -1 when the domain has a single axis.
func (s Scores) secondCandidate() int {
	dom := s.Dominant()
	best := -1
	for i, v := range s.Values {
		if i == dom {
			continue
		}
		if best < 0 || math.Abs(v) > math.Abs(s.Values[best]) {
			best = i
		}
	}
	return best
}

// Secondary returns the runner-up axis index, reported only when its absolute
// value exceeds SecondaryThreshold.
func (s Scores) Secondary() (int, bool) {
	i := s.secondCandidate()
	if i < 0 || math.Abs(s.Values[i]) <= SecondaryThreshold {
		return -1, false
	}
	return i, true
}

// Separation returns |dominant| - |runner-up|.
func (s Scores) Separation() float64 {
	i := s.secondCandidate()
	if i < 0 {
		return math.Abs(s.Values[s.Dominant()])
	}
	return math.Abs(s.Values[s.Dominant()]) - math.Abs(s.Values[i])
}

// MeanAbs returns the mean absolute axis value.
func (s Scores) MeanAbs() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range s.Values {
		sum += math.Abs(v)
	}
	return sum / float64(len(s.Values))
}

// Normalized divides by the largest absolute value so the dominant axis sits
// at -1 or 1. Zero scores are returned unchanged.
func (s Scores) Normalized() Scores {
	out := s.Clone()
	m := floats.Norm(out.Values, math.Inf(1))
	if m == 0 {
		return out
	}
	floats.Scale(1/m, out.Values)
	for i, v := range out.Values {
		out.Values[i] = clamp(v, -1, 1)
	}
	return out
}

func (s Scores) mustMatch(other Scores) {
	if s.Domain != other.Domain || len(s.Values) != len(other.Values) {
		panic(fmt.Sprintf("axis: mismatched scores %s/%d and %s/%d",
			s.Domain, len(s.Values), other.Domain, len(other.Values)))
	}
}

// Cosine returns the cosine similarity, or 0 when either side is zero.
// It panics when the domains differ.
func (s Scores) Cosine(other Scores) float64 {
	s.mustMatch(other)
	na, nb := floats.Norm(s.Values, 2), floats.Norm(other.Values, 2)
	if na == 0 || nb == 0 {
		return 0
	}
	return clamp(floats.Dot(s.Values, other.Values)/(na*nb), -1, 1)
}

// Distance returns the Euclidean distance. It panics when the domains differ.
func (s Scores) Distance(other Scores) float64 {
	s.mustMatch(other)
	return floats.Distance(s.Values, other.Values, 2)
}

// SquaredDistance returns the squared Euclidean distance.
func (s Scores) SquaredDistance(other Scores) float64 {
	d := s.Distance(other)
	return d * d
}

// String renders the scores as key=value pairs.
func (s Scores) String() string {
	var b strings.Builder
	for i, a := range s.Domain.Axes() {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%.3f", a.Key, s.Values[i])
	}
	return b.String()
}
