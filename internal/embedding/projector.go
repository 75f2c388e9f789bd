// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package embedding

import (
	"context"
	"math"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// ProjectionSeed seeds the generator behind the projection matrix.
// Changing it changes every embedding ever produced.
const ProjectionSeed uint64 = 0x5EED7A57E

// Knuth MMIX LCG constants.
const (
	lcgMultiplier uint64 = 6364136223846793005
	lcgIncrement  uint64 = 1442695040888963407
)

var (
	projection     *mat.Dense
	projectionOnce sync.Once
)

// lcg is a 64-bit linear congruential generator.
type lcg struct {
	state uint64
}

// next advances the generator and returns a uniform value in (0, 1].
func (g *lcg) next() float64 {
	g.state = g.state*lcgMultiplier + lcgIncrement
	return float64((g.state>>11)+1) / (1 << 53)
}

// gaussianPair draws two standard normal values with the Box-Muller transform.
func (g *lcg) gaussianPair() (float64, float64) {
	u1, u2 := g.next(), g.next()
	r := math.Sqrt(-2 * math.Log(u1))
	theta := 2 * math.Pi * u2
	return r * math.Cos(theta), r * math.Sin(theta)
}

// buildProjection fills a Dim x SignalDim matrix with standard normal entries.
func buildProjection(seed uint64) *mat.Dense {
	g := &lcg{state: seed}
	data := make([]float64, Dim*SignalDim)
	for i := 0; i < len(data); i += 2 {
		z0, z1 := g.gaussianPair()
		data[i] = z0
		if i+1 < len(data) {
			data[i+1] = z1
		}
	}
	return mat.NewDense(Dim, SignalDim, data)
}

// projectionMatrix returns the process-wide matrix, building it on first use.
func projectionMatrix() *mat.Dense {
	projectionOnce.Do(func() {
		projection = buildProjection(ProjectionSeed)
	})
	return projection
}

// projectionAt returns one entry of the projection matrix.
func projectionAt(row, col int) float64 {
	return projectionMatrix().At(row, col)
}

// Project maps a signal to a unit-length embedding.
// A signal that projects to the zero vector yields the zero embedding.
func Project(s Signal) Embedding {
	s = s.Sanitize()
	var out mat.VecDense
	out.MulVec(projectionMatrix(), mat.NewVecDense(SignalDim, s[:]))

	var e Embedding
	for i := range e {
		e[i] = out.AtVec(i)
	}
	return e.Normalize()
}

// ProjectOrNeutral projects the signal supplied by p, falling back to NeutralSignal
// when p is nil or fails.
func ProjectOrNeutral(ctx context.Context, p Producer) Embedding {
	s, _ := SignalFrom(ctx, p)
	return Project(s)
}
