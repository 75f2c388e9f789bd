// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package advisory

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// OutcomeWindow is how far back outcomes count toward a tolerance adjustment.
const OutcomeWindow = 7 * 24 * time.Hour

// maxOutcomes bounds each outcome list. It is well above either trigger.
const maxOutcomes = 256

// ErrUnknownOutcome is returned for an unrecognized advisory outcome.
var ErrUnknownOutcome = errors.New("advisory: unknown outcome")

// Outcome is what a user did after an advisory was shown.
type Outcome string

const (
	// OutcomeProceeded means the user went ahead and no intercept was shown.
	OutcomeProceeded Outcome = "proceeded"
	// OutcomeOverride means the user went ahead despite an intercept.
	OutcomeOverride Outcome = "override"
	// OutcomeAbandoned means the advisory was shown and the user did not proceed.
	OutcomeAbandoned Outcome = "abandoned"
)

// ParseOutcome parses an outcome name.
func ParseOutcome(s string) (Outcome, error) {
	switch o := Outcome(strings.ToLower(strings.TrimSpace(s))); o {
	case OutcomeProceeded, OutcomeOverride, OutcomeAbandoned:
		return o, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownOutcome, s)
	}
}

// History is a profile's tolerance together with the override and
// abandonment timestamps that drive it.
type History struct {
	Tolerance Tolerance   `json:"tolerance"`
	Overrides []time.Time `json:"overrides,omitempty"`
	Abandoned []time.Time `json:"abandoned,omitempty"`
}

// Clone returns a deep copy of h.
//
//nolint:gocritic // hugeParam: history passed by value for immutability
func (h History) Clone() History {
	h.Overrides = append([]time.Time(nil), h.Overrides...)
	h.Abandoned = append([]time.Time(nil), h.Abandoned...)
	return h
}

// Counts returns the overrides and abandonments inside OutcomeWindow of now.
//
//nolint:gocritic // hugeParam: history passed by value for immutability
func (h History) Counts(now time.Time) (overrides, abandoned int) {
	return len(recent(h.Overrides, now)), len(recent(h.Abandoned, now))
}

// Record adds o at now, drops outcomes older than OutcomeWindow and lets the
// tolerance adjust. Tolerance.Adjust keeps the value from moving more than
// once per ToleranceWindow.
//
//nolint:gocritic // hugeParam: history passed by value for immutability
func (h History) Record(o Outcome, now time.Time) History {
	h.Overrides = recent(h.Overrides, now)
	h.Abandoned = recent(h.Abandoned, now)
	switch o {
	case OutcomeOverride:
		h.Overrides = appendBounded(h.Overrides, now)
	case OutcomeAbandoned:
		h.Abandoned = appendBounded(h.Abandoned, now)
	}
	h.Tolerance = h.Tolerance.Adjust(now, len(h.Overrides), len(h.Abandoned))
	return h
}

// recent returns a fresh slice of the timestamps inside OutcomeWindow of now.
func recent(ts []time.Time, now time.Time) []time.Time {
	cutoff := now.Add(-OutcomeWindow)
	out := make([]time.Time, 0, len(ts))
	for _, t := range ts {
		if t.After(cutoff) && !t.After(now) {
			out = append(out, t)
		}
	}
	return out
}

func appendBounded(ts []time.Time, t time.Time) []time.Time {
	ts = append(ts, t)
	if len(ts) > maxOutcomes {
		ts = ts[len(ts)-maxOutcomes:]
	}
	return ts
}
