// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package embedding

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Dim is the embedding dimensionality.
const Dim = 64

// Embedding is a dense taste vector.
type Embedding [Dim]float64

// FromSlice copies values into an Embedding.
// It panics if len(values) != Dim.
func FromSlice(values []float64) Embedding {
	if len(values) != Dim {
		panic(fmt.Sprintf("embedding: length %d, want %d", len(values), Dim))
	}
	var e Embedding
	copy(e[:], values)
	return e
}

// Norm returns the L2 norm.
func (e Embedding) Norm() float64 {
	return floats.Norm(e[:], 2)
}

// IsZero reports whether every component is zero.
func (e Embedding) IsZero() bool {
	return e == Embedding{}
}

// Normalize returns e scaled to unit length. The zero vector is returned unchanged.
func (e Embedding) Normalize() Embedding {
	n := e.Norm()
	if n == 0 {
		return e
	}
	floats.Scale(1/n, e[:])
	return e
}

// Cosine returns the cosine similarity in [-1, 1], or 0 when either vector is zero.
func (e Embedding) Cosine(other Embedding) float64 {
	na, nb := e.Norm(), other.Norm()
	if na == 0 || nb == 0 {
		return 0
	}
	c := floats.Dot(e[:], other[:]) / (na * nb)
	return math.Max(-1, math.Min(1, c))
}

// Affinity scores candidate against a learned positive and anti embedding.
// It maps cos(candidate, positive) - cos(candidate, anti) from [-2, 2] to
// [0, 1], so 0.5 means no preference either way. Zero references count as
// no preference.
func Affinity(candidate, positive, anti Embedding) float64 {
	return (candidate.Cosine(positive) - candidate.Cosine(anti) + 2) / 4
}

// BlendToward moves e toward target by rate: e + rate*(target-e).
// Blending toward an identical vector leaves e bit-for-bit unchanged.
func (e Embedding) BlendToward(target Embedding, rate float64) Embedding {
	for i := range e {
		e[i] += rate * (target[i] - e[i])
	}
	return e
}

// MeanAbsDelta returns the mean absolute component difference between e and other.
func (e Embedding) MeanAbsDelta(other Embedding) float64 {
	var sum float64
	for i := range e {
		sum += math.Abs(e[i] - other[i])
	}
	return sum / Dim
}
