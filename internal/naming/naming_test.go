// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package naming

import (
	"strings"
	"testing"

	"github.com/tomtom215/tastegraph/internal/axis"
)

func style(values ...float64) axis.Scores {
	return axis.ScoresOf(axis.DomainStyle, values)
}

func TestHash(t *testing.T) {
	tests := []struct {
		salt, s string
		want    uint64
	}{
		{"", "", ':'},
		{"a", "b", 95113},
	}
	for _, tt := range tests {
		if got := Hash(tt.salt, tt.s); got != tt.want {
			t.Errorf("Hash(%q, %q) = %d, want %d", tt.salt, tt.s, got, tt.want)
		}
	}

	if Hash("context", "x") == Hash("descriptor", "x") {
		t.Error("salt should change the hash")
	}

	// Long inputs wrap without panicking.
	_ = Hash("salt", strings.Repeat("fingerprint", 1000))
}

func TestConfidenceOf(t *testing.T) {
	tests := []struct {
		name   string
		scores axis.Scores
		want   Confidence
	}{
		{"zero", axis.NewScores(axis.DomainStyle), ConfidenceFaint},
		{"small", style(0.125, 0.125, 0.125, 0.125, 0.125, 0.125, 0.125), ConfidenceFaint},
		{"middle", style(0.25, -0.25, 0.25, -0.25, 0.25, -0.25, 0.25), ConfidenceEmerging},
		{"large", style(0.5, 0.5, -0.5, 0.5, 0.5, 0.5, 0.5), ConfidenceStrong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ConfidenceOf(tt.scores); got != tt.want {
				t.Errorf("ConfidenceOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBucket(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{-1, "--"}, {-0.51, "--"}, {-0.5, "-"}, {-0.01, "-"},
		{0, "+"}, {0.49, "+"}, {0.5, "++"}, {1, "++"},
	}
	for _, tt := range tests {
		if got := bucket(tt.v); got != tt.want {
			t.Errorf("bucket(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestFingerprint(t *testing.T) {
	s := style(-0.8, 0, 0.2, 0.6, -0.3, 0, 0)
	tags := axis.Vector{"minimal": 1, "silk": -0.6, "denim": 0.2}

	want := "--|+|+|++|-|+|+;minimal,silk;emerging"
	if got := Fingerprint(s, tags); got != want {
		t.Errorf("Fingerprint() = %q, want %q", got, want)
	}

	if got := Fingerprint(s, nil); !strings.Contains(got, ";;") {
		t.Errorf("Fingerprint() without tags = %q", got)
	}
}

func TestGenerate(t *testing.T) {
	s := style(-0.8, 0, 0.2, 0.6, -0.3, 0, 0)
	tags := axis.Vector{"minimal": 1, "silk": -0.6}

	a := Generate(s, tags)
	b := Generate(s.Clone(), tags.Clone())
	if a != b {
		t.Fatalf("Generate() not deterministic: %+v vs %+v", a, b)
	}

	words := strings.Fields(a.Title)
	if len(words) != 2 {
		t.Fatalf("Title = %q, want two words", a.Title)
	}
	if !contains(styleGrammar.first, words[0]) || !contains(styleGrammar.second, words[1]) {
		t.Errorf("Title %q not drawn from style pools", a.Title)
	}

	space := Generate(axis.FromVector(axis.DomainSpace, axis.Vector{"light": 0.9}), axis.Vector{"light": 0.9})
	words = strings.Fields(space.Title)
	if len(words) != 2 || !contains(spaceGrammar.first, words[0]) || !contains(spaceGrammar.second, words[1]) {
		t.Errorf("space Title %q not drawn from space pools", space.Title)
	}
}

func contains(pool []string, w string) bool {
	for _, p := range pool {
		if p == w {
			return true
		}
	}
	return false
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name   string
		scores axis.Scores
		want   string
	}{
		{
			name:   "zero scores",
			scores: axis.NewScores(axis.DomainStyle),
			want:   "No clear lean yet. Keep exploring to shape your profile.",
		},
		{
			name:   "dominant with accent",
			scores: style(-0.9, 0, 0, 0, 0, 0.4, 0),
			want:   "Leans minimal on ornament with a warm temperature accent. The signal is faint.",
		},
		{
			name:   "dominant only",
			scores: style(0, 0, 0, 0, 0, 0, 0.7),
			want:   "Leans statement on presence. The signal is faint.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Describe(tt.scores); got != tt.want {
				t.Errorf("Describe() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSettled(t *testing.T) {
	tests := []struct {
		name         string
		scores       axis.Scores
		interactions int
		want         bool
	}{
		{"faint young and close", style(0.1, 0.05, 0, 0, 0, 0, 0), 3, false},
		{"enough interactions", style(0.1, 0.05, 0, 0, 0, 0, 0), 14, true},
		{"well separated", style(0.4, 0.1, 0, 0, 0, 0, 0), 1, true},
		{"strong confidence", style(0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5), 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Settled(tt.scores, tt.interactions); got != tt.want {
				t.Errorf("Settled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvolve_FirstCallAdopts(t *testing.T) {
	s := style(0.1, 0, 0, 0, 0, 0, 0)
	state, changed := Evolve(State{}, s, nil, 0)
	if !changed || state.Current.Title == "" || len(state.History) != 0 {
		t.Errorf("Evolve() = %+v, %v", state, changed)
	}

	again, changed := Evolve(state, s, nil, 0)
	if changed || again.Current != state.Current {
		t.Errorf("unchanged input should keep state, got %+v, %v", again, changed)
	}
}

func TestEvolve_GateKeepsTitle(t *testing.T) {
	before := style(0.1, 0, 0, 0, 0, 0, 0)
	after := style(-0.1, 0, 0, 0, 0, 0, 0)

	state, _ := Evolve(State{}, before, nil, 2)
	next, changed := Evolve(state, after, nil, 2)

	if changed {
		t.Fatal("unsettled profile should not change its name")
	}
	if next.Current.Title != state.Current.Title || next.Current.Fingerprint != state.Current.Fingerprint {
		t.Errorf("title or fingerprint changed: %+v", next.Current)
	}
	if next.Current.Description != Describe(after) {
		t.Errorf("Description = %q, want refreshed %q", next.Current.Description, Describe(after))
	}
}

func TestEvolve_SettledAdoptsAndKeepsHistory(t *testing.T) {
	var state State
	state, _ = Evolve(state, style(0.1, 0, 0, 0, 0, 0, 0), nil, 0)

	profiles := []axis.Scores{
		style(-0.9, 0, 0, 0, 0, 0, 0),
		style(0, 0.9, 0, 0, 0, 0, 0),
		style(0, 0, -0.9, 0, 0, 0, 0),
		style(0, 0, 0, 0.9, 0, 0, 0),
		style(0, 0, 0, 0, -0.9, 0, 0),
		style(0, 0, 0, 0, 0, 0.9, 0),
	}
	for i, s := range profiles {
		prev := state
		var changed bool
		state, changed = Evolve(prev, s, nil, 20)
		if !changed {
			t.Fatalf("step %d: settled profile with new fingerprint should evolve", i)
		}
		if state.Current.Fingerprint != Fingerprint(s, nil) {
			t.Errorf("step %d: fingerprint not adopted", i)
		}
		if len(state.History) > HistorySize {
			t.Fatalf("step %d: history has %d entries", i, len(state.History))
		}
		if prev.Current.Title != state.Current.Title {
			if last := state.History[len(state.History)-1]; last != prev.Current.Title {
				t.Errorf("step %d: history tail = %q, want %q", i, last, prev.Current.Title)
			}
		}
	}
}

func TestEvolve_DoesNotAliasHistory(t *testing.T) {
	prev := State{
		Current: Generate(style(0.1, 0, 0, 0, 0, 0, 0), nil),
		History: []string{"A", "B", "C"},
	}
	next, _ := Evolve(prev, style(-0.9, 0, 0, 0, 0, 0, 0), nil, 20)
	next.History[0] = "mutated"
	if prev.History[0] != "A" {
		t.Error("Evolve() shares history backing array with its input")
	}
}
