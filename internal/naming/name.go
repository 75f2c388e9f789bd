// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package naming

import (
	"fmt"
	"strings"

	"github.com/tomtom215/tastegraph/internal/axis"
)

const (
	// HistorySize is the number of superseded titles kept for provenance.
	HistorySize = 3

	// Evolution gate thresholds.
	settledInteractions = 14
	settledSeparation   = 0.15
)

// Name is a generated label with its narrative description.
type Name struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Fingerprint string     `json:"fingerprint"`
	Confidence  Confidence `json:"confidence"`
}

// State is the name currently shown for a profile plus its provenance.
type State struct {
	Current Name     `json:"current"`
	History []string `json:"history,omitempty"`
}

// Generate builds a name from scores and the tag vector they came from.
// The same inputs always produce the same name.
func Generate(s axis.Scores, tags axis.Vector) Name {
	fp := Fingerprint(s, tags)
	g := grammarFor(s.Domain)
	return Name{
		Title:       pick(g.first, g.firstSalt, fp) + " " + pick(g.second, g.secondSalt, fp),
		Description: Describe(s),
		Fingerprint: fp,
		Confidence:  ConfidenceOf(s),
	}
}

// Describe renders a one-sentence narrative for the dominant and secondary axes.
func Describe(s axis.Scores) string {
	if s.IsZero() {
		return "No clear lean yet. Keep exploring to shape your profile."
	}

	axes := s.Domain.Axes()
	dom := s.Dominant()
	var b strings.Builder
	fmt.Fprintf(&b, "Leans %s on %s", axes[dom].Pole(s.Values[dom]), axes[dom].Key)
	if sec, ok := s.Secondary(); ok {
		fmt.Fprintf(&b, " with a %s %s accent", axes[sec].Pole(s.Values[sec]), axes[sec].Key)
	}
	fmt.Fprintf(&b, ". The signal is %s.", ConfidenceOf(s))
	return b.String()
}

// Settled reports whether a profile is stable enough for its name to change.
func Settled(s axis.Scores, interactions int) bool {
	return ConfidenceOf(s) == ConfidenceStrong ||
		interactions >= settledInteractions ||
		s.Separation() >= settledSeparation
}

// Evolve computes the next naming state. It reports whether the generated
// name was adopted. A first call always adopts it.
//
//nolint:gocritic // hugeParam: prev passed by value for immutability
func Evolve(prev State, s axis.Scores, tags axis.Vector, interactions int) (State, bool) {
	next := Generate(s, tags)

	if prev.Current.Title == "" {
		return State{Current: next, History: cloneHistory(prev.History)}, true
	}

	if next.Fingerprint == prev.Current.Fingerprint || !Settled(s, interactions) {
		// Keep the title and the fingerprint that produced it.
		kept := prev.Current
		kept.Description = next.Description
		kept.Confidence = next.Confidence
		return State{Current: kept, History: cloneHistory(prev.History)}, false
	}

	history := cloneHistory(prev.History)
	if prev.Current.Title != next.Title {
		history = append(history, prev.Current.Title)
		if len(history) > HistorySize {
			history = history[len(history)-HistorySize:]
		}
	}
	return State{Current: next, History: history}, true
}

func cloneHistory(h []string) []string {
	if len(h) == 0 {
		return nil
	}
	return append([]string(nil), h...)
}
