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

// ErrUnknownLevel is returned for an unrecognized strictness level.
var ErrUnknownLevel = errors.New("advisory: unknown level")

// Level is the strictness of advisory interventions.
type Level string

const (
	LevelSoft     Level = "soft"
	LevelStandard Level = "standard"
	LevelStrict   Level = "strict"
)

// ParseLevel parses a strictness level name.
func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := thresholds[l]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
	return l, nil
}

// Thresholds bound drift and adjusted alignment for each verdict.
type Thresholds struct {
	RedDrift    float64
	RedAlign    float64
	YellowDrift float64
	YellowAlign float64
}

var thresholds = map[Level]Thresholds{
	LevelSoft:     {RedDrift: 0.75, RedAlign: 0.25, YellowDrift: 0.55, YellowAlign: 0.40},
	LevelStandard: {RedDrift: 0.65, RedAlign: 0.35, YellowDrift: 0.45, YellowAlign: 0.50},
	LevelStrict:   {RedDrift: 0.55, RedAlign: 0.45, YellowDrift: 0.35, YellowAlign: 0.60},
}

// Thresholds returns the thresholds for l. Unknown levels use standard.
func (l Level) Thresholds() Thresholds {
	if t, ok := thresholds[l]; ok {
		return t
	}
	return thresholds[LevelStandard]
}

// Verdict is a traffic-light advisory outcome, ordered by caution.
type Verdict int

const (
	VerdictGreen Verdict = iota
	VerdictYellow
	VerdictRed
)

// String returns the verdict color.
func (v Verdict) String() string {
	switch v {
	case VerdictGreen:
		return "green"
	case VerdictYellow:
		return "yellow"
	case VerdictRed:
		return "red"
	default:
		return "unknown"
	}
}

// MarshalText encodes the verdict as its color name.
func (v Verdict) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// Decision is the outcome of the advisory policy.
type Decision struct {
	Verdict           Verdict `json:"verdict"`
	Intercept         bool    `json:"intercept"`
	AdjustedAlignment float64 `json:"adjusted_alignment"`
}

// Decide applies the policy for level to a conflict. Tolerance is added to
// the alignment before it is compared with the thresholds. Soft intercepts
// only red verdicts; standard and strict intercept yellow and red.
func Decide(level Level, c ConflictResult, tolerance float64) Decision {
	t := level.Thresholds()
	adjusted := c.Alignment + tolerance

	verdict := VerdictGreen
	switch {
	case c.Drift >= t.RedDrift || adjusted <= t.RedAlign:
		verdict = VerdictRed
	case c.Drift >= t.YellowDrift || adjusted <= t.YellowAlign:
		verdict = VerdictYellow
	}

	intercept := verdict == VerdictRed
	if level != LevelSoft && verdict == VerdictYellow {
		intercept = true
	}

	return Decision{Verdict: verdict, Intercept: intercept, AdjustedAlignment: adjusted}
}

const (
	// ToleranceStep is the size of one tolerance adjustment.
	ToleranceStep = 0.03
	// ToleranceLimit bounds the tolerance to [-ToleranceLimit, ToleranceLimit].
	ToleranceLimit = 0.15
	// ToleranceWindow is the minimum time between adjustments.
	ToleranceWindow = 24 * time.Hour

	overrideTrigger          = 3
	shownNotProceededTrigger = 5
)

// Tolerance is a per-user offset applied to alignment before thresholding.
type Tolerance struct {
	Value      float64   `json:"value"`
	AdjustedAt time.Time `json:"adjusted_at"`
}

// Adjust returns the tolerance after weighing the last seven days of
// behavior. Frequent overrides loosen the policy and frequent abandonments
// tighten it; both may apply at once. At most one adjustment happens per
// ToleranceWindow and the value stays within ToleranceLimit.
func (t Tolerance) Adjust(now time.Time, overrides7d, shownNotProceeded7d int) Tolerance {
	if !t.AdjustedAt.IsZero() && now.Sub(t.AdjustedAt) < ToleranceWindow {
		return t
	}

	var delta float64
	if overrides7d >= overrideTrigger {
		delta += ToleranceStep
	}
	if shownNotProceeded7d >= shownNotProceededTrigger {
		delta -= ToleranceStep
	}
	if overrides7d < overrideTrigger && shownNotProceeded7d < shownNotProceededTrigger {
		return t
	}

	return Tolerance{
		Value:      clamp(t.Value+delta, -ToleranceLimit, ToleranceLimit),
		AdjustedAt: now,
	}
}
