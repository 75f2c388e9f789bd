// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package axis

import (
	"errors"
	"math"
	"testing"
)

func TestDomain_AxisCounts(t *testing.T) {
	tests := []struct {
		domain Domain
		want   int
	}{
		{DomainStyle, 7},
		{DomainSpace, 9},
	}

	for _, tt := range tests {
		t.Run(tt.domain.String(), func(t *testing.T) {
			if got := tt.domain.Len(); got != tt.want {
				t.Errorf("Len() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseDomain(t *testing.T) {
	tests := []struct {
		in      string
		want    Domain
		wantErr bool
	}{
		{"style", DomainStyle, false},
		{" Space ", DomainSpace, false},
		{"garden", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDomain(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownDomain) {
					t.Errorf("ParseDomain(%q) error = %v, want ErrUnknownDomain", tt.in, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseDomain(%q) = %q, %v", tt.in, got, err)
			}
		})
	}
}

func TestTables_RowLengthMatchesAxisCount(t *testing.T) {
	for _, d := range Domains() {
		for _, tag := range Tags(d) {
			row, ok := Contribution(d, tag)
			if !ok {
				t.Fatalf("%s: Contribution(%q) missing", d, tag)
			}
			if len(row) != d.Len() {
				t.Errorf("%s: row %q has %d coefficients, want %d", d, tag, len(row), d.Len())
			}
		}
	}
}

func TestMap_AxisKeyIsIdentity(t *testing.T) {
	for _, d := range Domains() {
		for i, a := range d.Axes() {
			s := Map(d, Vector{a.Key: -0.5})
			if s.Values[i] != -1 {
				t.Errorf("%s: Map(%s=-0.5)[%d] = %f, want -1", d, a.Key, i, s.Values[i])
			}
		}
	}
}

func TestMap_Examples(t *testing.T) {
	tests := []struct {
		name string
		in   Vector
		want map[string]float64
	}{
		{
			name: "empty vector",
			in:   Vector{},
			want: map[string]float64{"ornament": 0, "presence": 0},
		},
		{
			name: "unknown tags ignored",
			in:   Vector{"glitter_cannon": 3, "minimal": 1},
			want: map[string]float64{"ornament": -1, "presence": -0.4},
		},
		{
			name: "divides by total absolute weight",
			in:   Vector{"ornament": 1, "chroma": -1},
			want: map[string]float64{"ornament": 0.5, "chroma": -0.5},
		},
		{
			name: "only unknown tags",
			in:   Vector{"nothing": 1},
			want: map[string]float64{"ornament": 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Map(DomainStyle, tt.in)
			for key, want := range tt.want {
				if got := s.Get(key); math.Abs(got-want) > 1e-12 {
					t.Errorf("%s = %f, want %f", key, got, want)
				}
			}
		})
	}
}

func TestMap_Bounds(t *testing.T) {
	in := Vector{}
	for i, tag := range Tags(DomainSpace) {
		in[tag] = float64(i%5) - 2.5
	}
	s := Map(DomainSpace, in)
	for i, v := range s.Values {
		if v < -1 || v > 1 {
			t.Errorf("axis %d = %f, out of [-1, 1]", i, v)
		}
	}
}

func TestMap_UnknownTagsDoNotDilute(t *testing.T) {
	known := Map(DomainSpace, Vector{"bohemian": 0.7, "chrome": -0.4})
	mixed := Map(DomainSpace, Vector{"bohemian": 0.7, "chrome": -0.4, "not-a-tag": 5})
	for i := range known.Values {
		if mixed.Values[i] != known.Values[i] {
			t.Errorf("axis %d = %f with an unknown tag, want %f", i, mixed.Values[i], known.Values[i])
		}
	}

	only := Map(DomainSpace, Vector{"not-a-tag": 1})
	for i, v := range only.Values {
		if v != 0 {
			t.Errorf("axis %d = %f for unknown tags only, want 0", i, v)
		}
	}
}

func TestMap_Deterministic(t *testing.T) {
	in := Vector{"bohemian": 0.7, "marble": -0.3, "chrome": 1.2, "curved": 0.4, "rattan": 0.9}
	first := Map(DomainSpace, in)
	for i := 0; i < 20; i++ {
		got := Map(DomainSpace, in)
		for j := range got.Values {
			if got.Values[j] != first.Values[j] {
				t.Fatalf("run %d axis %d differs", i, j)
			}
		}
	}
}

func TestScores_DominantAndSecondary(t *testing.T) {
	tests := []struct {
		name          string
		values        []float64
		wantDominant  int
		wantSecondary int
		wantOK        bool
		wantSep       float64
	}{
		{
			name:         "all zero",
			values:       []float64{0, 0, 0, 0, 0, 0, 0},
			wantDominant: 0,
			wantOK:       false,
			wantSep:      0,
		},
		{
			name:          "clear secondary",
			values:        []float64{0.1, -0.9, 0.4, 0, 0, 0, 0},
			wantDominant:  1,
			wantSecondary: 2,
			wantOK:        true,
			wantSep:       0.5,
		},
		{
			name:         "secondary below threshold",
			values:       []float64{0.1, 0.6, 0.15, 0, 0, 0, 0},
			wantDominant: 1,
			wantOK:       false,
			wantSep:      0.45,
		},
		{
			name:          "tie uses declaration order",
			values:        []float64{0, 0, -0.5, 0.5, 0, 0, 0},
			wantDominant:  2,
			wantSecondary: 3,
			wantOK:        true,
			wantSep:       0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ScoresOf(DomainStyle, tt.values)
			if got := s.Dominant(); got != tt.wantDominant {
				t.Errorf("Dominant() = %d, want %d", got, tt.wantDominant)
			}
			sec, ok := s.Secondary()
			if ok != tt.wantOK || (ok && sec != tt.wantSecondary) {
				t.Errorf("Secondary() = %d, %v; want %d, %v", sec, ok, tt.wantSecondary, tt.wantOK)
			}
			if got := s.Separation(); math.Abs(got-tt.wantSep) > 1e-12 {
				t.Errorf("Separation() = %f, want %f", got, tt.wantSep)
			}
		})
	}
}

func TestScores_MismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Cosine() across domains should panic")
		}
	}()
	NewScores(DomainStyle).Cosine(NewScores(DomainSpace))
}

func TestScoresOf_LengthPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("ScoresOf() with wrong length should panic")
		}
	}()
	ScoresOf(DomainSpace, []float64{1, 2})
}

func TestVector_NormalizeIdempotent(t *testing.T) {
	tests := []struct {
		name string
		in   Vector
	}{
		{"mixed", Vector{"a": 4, "b": -2, "c": 0.5}},
		{"zero", Vector{"a": 0, "b": 0}},
		{"nan", Vector{"a": math.NaN(), "b": 3}},
		{"empty", Vector{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			once := tt.in.Normalize()
			twice := once.Normalize()
			for k, v := range once {
				if v < -1 || v > 1 {
					t.Errorf("%s = %f out of range", k, v)
				}
				if twice[k] != v {
					t.Errorf("%s: %f then %f", k, v, twice[k])
				}
			}
		})
	}
}

func TestVector_TopKeys(t *testing.T) {
	v := Vector{"b": 0.5, "a": -0.5, "c": 0.9, "d": 0}
	got := v.TopKeys(2)
	if len(got) != 2 || got[0] != "c" || got[1] != "a" {
		t.Errorf("TopKeys(2) = %v, want [c a]", got)
	}
}

func TestCosine_KeyUnion(t *testing.T) {
	a := Vector{"x": 1}
	b := Vector{"y": 1}
	if got := Cosine(a, b); got != 0 {
		t.Errorf("Cosine(disjoint) = %f, want 0", got)
	}
	if got := Cosine(a, Vector{"x": 3}); math.Abs(got-1) > 1e-12 {
		t.Errorf("Cosine(parallel) = %f, want 1", got)
	}
	if got := Cosine(a, Vector{}); got != 0 {
		t.Errorf("Cosine(empty) = %f, want 0", got)
	}
}
