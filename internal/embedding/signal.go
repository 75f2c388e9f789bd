// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package embedding

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// ErrSignalLength is returned when a raw signal does not have SignalDim entries.
var ErrSignalLength = errors.New("embedding: wrong signal length")

// SignalDim is the number of interpretable visual signals.
const SignalDim = 11

// Signal indices. The last four are derived material/style signals.
const (
	SignalBrightness = iota
	SignalContrast
	SignalSaturation
	SignalWarmth
	SignalEdgeDensity
	SignalSymmetry
	SignalClutter
	SignalTexture
	SignalGloss
	SignalPattern
	SignalStructure
)

// neutralValue is substituted for missing or malformed signal entries.
const neutralValue = 0.5

var signalNames = [SignalDim]string{
	"brightness",
	"contrast",
	"saturation",
	"warmth",
	"edge_density",
	"symmetry",
	"clutter",
	"texture",
	"gloss",
	"pattern",
	"structure",
}

// Signal is an immutable vector of visual statistics, each in [0, 1].
type Signal [SignalDim]float64

// NeutralSignal returns the documented fallback used when upstream analysis fails.
func NeutralSignal() Signal {
	var s Signal
	for i := range s {
		s[i] = neutralValue
	}
	return s
}

// SignalName returns the name of the signal at index i.
func SignalName(i int) string {
	if i < 0 || i >= SignalDim {
		return "unknown"
	}
	return signalNames[i]
}

// SignalFromSlice copies values into a Signal and sanitizes it.
// It panics if len(values) != SignalDim.
func SignalFromSlice(values []float64) Signal {
	s, err := ParseSignal(values)
	if err != nil {
		panic(err.Error())
	}
	return s
}

// ParseSignal copies values into a sanitized Signal.
func ParseSignal(values []float64) (Signal, error) {
	if len(values) != SignalDim {
		return Signal{}, fmt.Errorf("%w: %d, want %d", ErrSignalLength, len(values), SignalDim)
	}
	var s Signal
	copy(s[:], values)
	return s.Sanitize(), nil
}

// Sanitize clamps every entry to [0, 1] and replaces NaN with the neutral value.
func (s Signal) Sanitize() Signal {
	for i, v := range s {
		switch {
		case math.IsNaN(v):
			s[i] = neutralValue
		case v < 0:
			s[i] = 0
		case v > 1:
			s[i] = 1
		}
	}
	return s
}

// Producer supplies signals from an upstream analysis step (typically image statistics).
type Producer interface {
	Produce(ctx context.Context) (Signal, error)
}

// ProducerFunc adapts a function to the Producer interface.
type ProducerFunc func(ctx context.Context) (Signal, error)

// Produce calls f.
func (f ProducerFunc) Produce(ctx context.Context) (Signal, error) {
	return f(ctx)
}

// SliceProducer supplies a signal that arrived as raw values, for example in
// a request body. Values of the wrong length make it fail.
func SliceProducer(values []float64) Producer {
	return ProducerFunc(func(context.Context) (Signal, error) {
		return ParseSignal(values)
	})
}

// SignalFrom asks p for a signal. A nil producer or a producer error yields
// NeutralSignal and a false ok; the failure is never surfaced as an error.
func SignalFrom(ctx context.Context, p Producer) (Signal, bool) {
	if p == nil {
		return NeutralSignal(), false
	}
	s, err := p.Produce(ctx)
	if err != nil {
		return NeutralSignal(), false
	}
	return s.Sanitize(), true
}
