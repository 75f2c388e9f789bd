// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package naming

import (
	"fmt"
	"testing"

	"github.com/tomtom215/tastegraph/internal/axis"
)

func pairKeys(p Pair) string {
	return p.Left.Key + "/" + p.Right.Key
}

func unordered(p Pair) string {
	if p.Left.Key < p.Right.Key {
		return pairKeys(p)
	}
	return pairKeys(p.Swap())
}

func TestArchetypes(t *testing.T) {
	for _, d := range axis.Domains() {
		archs := Archetypes(d)
		if len(archs) < 2 {
			t.Fatalf("%s: %d archetypes", d, len(archs))
		}
		seen := make(map[string]bool)
		for _, a := range archs {
			if seen[a.Key] {
				t.Errorf("%s: duplicate archetype %q", d, a.Key)
			}
			seen[a.Key] = true
			if a.Signature.Domain != d || a.Signature.IsZero() {
				t.Errorf("%s: bad signature for %q", d, a.Key)
			}
		}
	}

	archs := Archetypes(axis.DomainStyle)
	archs[0].Key = "mutated"
	if Archetypes(axis.DomainStyle)[0].Key == "mutated" {
		t.Error("Archetypes() exposes package state")
	}

	if _, ok := ArchetypeByKey(axis.DomainSpace, "moody_noir"); !ok {
		t.Error("ArchetypeByKey(moody_noir) not found")
	}
	if _, ok := ArchetypeByKey(axis.DomainSpace, "quiet_luxury"); ok {
		t.Error("style archetype found in space domain")
	}

	defer func() {
		if recover() == nil {
			t.Error("Archetypes(unknown) did not panic")
		}
	}()
	Archetypes("garden")
}

func TestNaturalPairs_Style(t *testing.T) {
	got := NaturalPairs(axis.DomainStyle)
	want := []string{"quiet_luxury/utility", "maximalist/heritage", "avant_garde/romantic"}

	if len(got) != len(want) {
		t.Fatalf("NaturalPairs() = %d pairs, want %d", len(got), len(want))
	}
	for i := range want {
		if pairKeys(got[i]) != want[i] {
			t.Errorf("pair %d = %s, want %s", i, pairKeys(got[i]), want[i])
		}
	}
}

func TestNaturalPairs_Invariants(t *testing.T) {
	for _, d := range axis.Domains() {
		used := make(map[string]bool)
		for _, p := range NaturalPairs(d) {
			if p.Left.Signature.Dominant() == p.Right.Signature.Dominant() {
				t.Errorf("%s: %s shares a dominant axis", d, pairKeys(p))
			}
			for _, k := range []string{p.Left.Key, p.Right.Key} {
				if used[k] {
					t.Errorf("%s: archetype %q reused", d, k)
				}
				used[k] = true
			}
		}
	}
}

func TestDuelPairs(t *testing.T) {
	natural := NaturalPairs(axis.DomainStyle)
	n := len(natural)

	got := DuelPairs(axis.DomainStyle, "profile-42", 4*n)
	if len(got) != 4*n {
		t.Fatalf("len = %d, want %d", len(got), 4*n)
	}

	again := DuelPairs(axis.DomainStyle, "profile-42", 4*n)
	for i := range got {
		if pairKeys(got[i]) != pairKeys(again[i]) {
			t.Fatalf("DuelPairs() not deterministic at %d", i)
		}
	}

	// The first cycle is a reordering of the natural pairs.
	want := make(map[string]bool)
	for _, p := range natural {
		want[unordered(p)] = true
	}
	for i := 0; i < n; i++ {
		if !want[unordered(got[i])] {
			t.Errorf("pair %s is not a natural pair", pairKeys(got[i]))
		}
		delete(want, unordered(got[i]))
	}

	// Odd cycles swap sides, even cycles repeat.
	for i := 0; i < n; i++ {
		if pairKeys(got[i+n]) != pairKeys(got[i].Swap()) {
			t.Errorf("cycle 1 pair %d = %s, want swapped %s", i, pairKeys(got[i+n]), pairKeys(got[i]))
		}
		if pairKeys(got[i+2*n]) != pairKeys(got[i]) {
			t.Errorf("cycle 2 pair %d = %s, want %s", i, pairKeys(got[i+2*n]), pairKeys(got[i]))
		}
	}
}

func TestDuelPairs_VariesByProfile(t *testing.T) {
	orders := make(map[string]bool)
	for i := 0; i < 12; i++ {
		pairs := DuelPairs(axis.DomainSpace, fmt.Sprintf("profile-%d", i), 3)
		key := ""
		for _, p := range pairs {
			key += pairKeys(p) + ";"
		}
		orders[key] = true
	}
	if len(orders) < 2 {
		t.Error("every profile received the same duel order")
	}
}

func TestDuelPairs_Empty(t *testing.T) {
	if got := DuelPairs(axis.DomainStyle, "p", 0); got != nil {
		t.Errorf("DuelPairs(n=0) = %v, want nil", got)
	}
}
