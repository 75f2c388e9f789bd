// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package naming

import (
	"sort"

	"github.com/tomtom215/tastegraph/internal/axis"
)

// Pair is one forced-choice duel.
type Pair struct {
	Left  Archetype `json:"left"`
	Right Archetype `json:"right"`
}

// Swap returns the pair with sides exchanged.
func (p Pair) Swap() Pair {
	return Pair{Left: p.Right, Right: p.Left}
}

// NaturalPairs returns the disjoint archetype pairs for d before shuffling.
// Only archetypes with differing dominant axes are paired. Candidates are
// taken greedily by squared signature distance, largest first, with
// declaration order breaking ties.
func NaturalPairs(d axis.Domain) []Pair {
	archs := Archetypes(d)

	type candidate struct {
		i, j int
		dist float64
	}
	var cands []candidate
	for i := 0; i < len(archs); i++ {
		for j := i + 1; j < len(archs); j++ {
			if archs[i].Signature.Dominant() == archs[j].Signature.Dominant() {
				continue
			}
			cands = append(cands, candidate{i: i, j: j, dist: archs[i].Signature.SquaredDistance(archs[j].Signature)})
		}
	}
	sort.SliceStable(cands, func(a, b int) bool {
		return cands[a].dist > cands[b].dist
	})

	used := make([]bool, len(archs))
	var pairs []Pair
	for _, c := range cands {
		if used[c.i] || used[c.j] {
			continue
		}
		used[c.i], used[c.j] = true, true
		pairs = append(pairs, Pair{Left: archs[c.i], Right: archs[c.j]})
	}
	return pairs
}

// DuelPairs returns n duels for a profile. The natural pairs are shuffled by
// a Fisher-Yates pass driven by an LCG seeded from the profile id hash, and
// each pair's sides flip on a bit of that hash. Requests beyond the natural
// count cycle through the list again with sides swapped on odd cycles.
func DuelPairs(d axis.Domain, profileID string, n int) []Pair {
	natural := NaturalPairs(d)
	if n <= 0 || len(natural) == 0 {
		return nil
	}

	seed := Hash("duel", profileID)
	rng := &lcg{state: seed}
	for i := len(natural) - 1; i > 0; i-- {
		j := rng.intn(i + 1)
		natural[i], natural[j] = natural[j], natural[i]
	}
	for i := range natural {
		if (seed>>(uint(i)%64))&1 == 1 {
			natural[i] = natural[i].Swap()
		}
	}

	out := make([]Pair, n)
	for i := range out {
		p := natural[i%len(natural)]
		if (i/len(natural))%2 == 1 {
			p = p.Swap()
		}
		out[i] = p
	}
	return out
}
