// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package reranking

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/tomtom215/tastegraph/internal/recommend"
)

func byCategory(cats ...string) []recommend.ScoredItem {
	items := make([]recommend.ScoredItem, len(cats))
	for i, c := range cats {
		items[i] = scored(fmt.Sprintf("i%02d", i), c, 1-float64(i)*0.01)
	}
	return items
}

func TestNewCategoryRuns(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{4, 4},
		{2, 2},
		{0, DefaultMaxRun},
		{-3, DefaultMaxRun},
	}
	for _, tt := range tests {
		if got := NewCategoryRuns(tt.in).maxRun; got != tt.want {
			t.Errorf("NewCategoryRuns(%d).maxRun = %d, want %d", tt.in, got, tt.want)
		}
	}
	if NewCategoryRuns(4).Name() != "category_runs" {
		t.Error("unexpected name")
	}
}

func TestCategoryRuns_Diversify(t *testing.T) {
	tests := []struct {
		name   string
		maxRun int
		cats   []string
		want   []string
	}{
		{
			name:   "short list untouched",
			maxRun: 4,
			cats:   []string{"tops", "tops", "tops"},
			want:   []string{"i00", "i01", "i02"},
		},
		{
			name:   "fifth item promoted",
			maxRun: 4,
			cats:   []string{"tops", "tops", "tops", "tops", "tops", "tops", "shoes"},
			want:   []string{"i00", "i01", "i02", "i03", "i06", "i04", "i05"},
		},
		{
			name:   "no alternative keeps order",
			maxRun: 2,
			cats:   []string{"tops", "tops", "tops", "tops"},
			want:   []string{"i00", "i01", "i02", "i03"},
		},
		{
			name:   "mixed list already within bound",
			maxRun: 2,
			cats:   []string{"tops", "tops", "shoes", "tops", "bags"},
			want:   []string{"i00", "i01", "i02", "i03", "i04"},
		},
		{
			name:   "category match ignores case",
			maxRun: 2,
			cats:   []string{"Tops", "tops", "TOPS", "shoes"},
			want:   []string{"i00", "i01", "i03", "i02"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(NewCategoryRuns(tt.maxRun).Diversify(byCategory(tt.cats...)))
			if !equalIDs(got, tt.want) {
				t.Errorf("Diversify() = %v, want %v", got, tt.want)
			}
		})
	}
}

// lcgCategories produces a repeatable category sequence without math/rand.
func lcgCategories(seed uint64, n int, pool []string) []string {
	out := make([]string, n)
	for i := range out {
		seed = seed*6364136223846793005 + 1442695040888963407
		out[i] = pool[(seed>>33)%uint64(len(pool))]
	}
	return out
}

func TestCategoryRuns_PermutationAndRunBound(t *testing.T) {
	pools := [][]string{
		{"tops", "shoes"},
		{"tops", "tops", "tops", "shoes"},
		{"tops", "shoes", "bags", "outerwear"},
	}

	for seed := uint64(1); seed <= 40; seed++ {
		for pi, pool := range pools {
			for _, maxRun := range []int{1, 2, 4} {
				items := byCategory(lcgCategories(seed, 30, pool)...)
				out := NewCategoryRuns(maxRun).Diversify(items)

				in := ids(items)
				got := ids(out)
				sort.Strings(in)
				sort.Strings(got)
				if !equalIDs(in, got) {
					t.Fatalf("seed %d pool %d: output is not a permutation", seed, pi)
				}

				run := 0
				for i := range out {
					if i > 0 && strings.EqualFold(out[i].Item.Category, out[i-1].Item.Category) {
						run++
					} else {
						run = 1
					}
					if run <= maxRun {
						continue
					}
					// A longer run is only allowed when nothing else remained.
					for j := i; j < len(out); j++ {
						if !strings.EqualFold(out[j].Item.Category, out[i].Item.Category) {
							t.Fatalf("seed %d pool %d maxRun %d: run of %d at %d with alternatives left",
								seed, pi, maxRun, run, i)
						}
					}
				}
			}
		}
	}
}

func TestCategoryRuns_RerankTruncates(t *testing.T) {
	items := byCategory("tops", "tops", "tops", "tops", "tops", "shoes")
	got := NewCategoryRuns(4).Rerank(context.Background(), items, 5)
	if len(got) != 5 || got[4].Item.Category != "shoes" {
		t.Errorf("Rerank() = %v", ids(got))
	}
}

func TestCategoryRuns_DoesNotMutateInput(t *testing.T) {
	items := byCategory("tops", "tops", "tops", "tops", "tops", "shoes")
	before := ids(items)
	NewCategoryRuns(4).Diversify(items)
	if !equalIDs(before, ids(items)) {
		t.Error("Diversify() mutated its input")
	}
}
