// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package naming

import (
	"strings"

	"github.com/tomtom215/tastegraph/internal/axis"
)

// Confidence describes how pronounced a profile is.
type Confidence string

// Confidence labels, from weakest to strongest.
const (
	ConfidenceFaint    Confidence = "faint"
	ConfidenceEmerging Confidence = "emerging"
	ConfidenceStrong   Confidence = "strong"
)

const (
	emergingAt = 0.2
	strongAt   = 0.45
)

// ConfidenceOf labels the mean absolute axis value of s.
func ConfidenceOf(s axis.Scores) Confidence {
	m := s.MeanAbs()
	switch {
	case m < emergingAt:
		return ConfidenceFaint
	case m < strongAt:
		return ConfidenceEmerging
	default:
		return ConfidenceStrong
	}
}

func bucket(v float64) string {
	switch {
	case v < -0.5:
		return "--"
	case v < 0:
		return "-"
	case v < 0.5:
		return "+"
	default:
		return "++"
	}
}

// Fingerprint summarizes scores as bucketed axis values, the two most
// influential tag keys and a confidence label, for example
// "--|+|+|+|-|+|-;minimal,silk;strong".
func Fingerprint(s axis.Scores, tags axis.Vector) string {
	buckets := make([]string, len(s.Values))
	for i, v := range s.Values {
		buckets[i] = bucket(v)
	}

	var b strings.Builder
	b.WriteString(strings.Join(buckets, "|"))
	b.WriteByte(';')
	b.WriteString(strings.Join(tags.TopKeys(2), ","))
	b.WriteByte(';')
	b.WriteString(string(ConfidenceOf(s)))
	return b.String()
}
