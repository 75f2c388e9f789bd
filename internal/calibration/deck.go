// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package calibration

import (
	"fmt"

	"github.com/tomtom215/tastegraph/internal/axis"
)

// Decision is a swipe answer.
type Decision string

// Swipe decisions.
const (
	DecisionReject        Decision = "reject"
	DecisionConfirm       Decision = "confirm"
	DecisionStrongConfirm Decision = "strong_confirm"
)

// ParseDecision validates a decision string.
func ParseDecision(s string) (Decision, error) {
	switch d := Decision(s); d {
	case DecisionReject, DecisionConfirm, DecisionStrongConfirm:
		return d, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDecision, s)
	}
}

// Magnitude returns the weight a decision adds to the card's axis.
func (d Decision) Magnitude() float64 {
	switch d {
	case DecisionReject:
		return -0.8
	case DecisionConfirm:
		return 1.0
	case DecisionStrongConfirm:
		return 2.0
	default:
		return 0
	}
}

// Card is one swipe prompt showing a single pole of an axis.
type Card struct {
	Axis  string  `json:"axis"`
	Pole  string  `json:"pole"`
	Sign  float64 `json:"sign"`
	Index int     `json:"index"`
}

// Deck returns the swipe deck for d: two cards per axis, ordered so that
// consecutive cards never share an axis. The first pass alternates poles by
// axis position and the second pass shows the opposite poles.
func Deck(d axis.Domain) []Card {
	axes := d.Axes()
	cards := make([]Card, 0, 2*len(axes))
	for pass := 0; pass < 2; pass++ {
		for i, a := range axes {
			sign := -1.0
			if (i+pass)%2 == 1 {
				sign = 1.0
			}
			cards = append(cards, Card{
				Axis:  a.Key,
				Pole:  a.Pole(sign),
				Sign:  sign,
				Index: len(cards),
			})
		}
	}
	return cards
}
