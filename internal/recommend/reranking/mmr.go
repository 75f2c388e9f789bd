// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package reranking

import (
	"context"
	"strings"

	"github.com/tomtom215/tastegraph/internal/recommend"
)

// maxRerankSize limits slice allocations to prevent excessive memory usage.
// This is a defense-in-depth measure; k is also bounded by len(items).
const maxRerankSize = 10000

// MMR implements Maximal Marginal Relevance reranking.
// It balances relevance and diversity by iteratively selecting items
// that are both relevant and dissimilar to already selected items.
//
// The MMR formula is:
//
//	MMR = argmax[lambda * score(i) - (1-lambda) * max(sim(i, s)) for s in selected]
//
// Similarity is the Jaccard index over an item's clusters plus its category.
// The first k positions are chosen greedily; the remaining items follow in
// their original order so later rerankers still see the full list.
type MMR struct {
	// Lambda balances relevance vs. diversity (0.0 to 1.0)
	lambda float64
}

// NewMMR creates a new MMR reranker.
func NewMMR(lambda float64) *MMR {
	if lambda < 0 {
		lambda = 0
	}
	if lambda > 1 {
		lambda = 1
	}
	return &MMR{lambda: lambda}
}

// Name returns the reranker identifier.
func (m *MMR) Name() string {
	return "mmr"
}

// Rerank applies MMR reranking to diversify the head of the list.
func (m *MMR) Rerank(_ context.Context, items []recommend.ScoredItem, k int) []recommend.ScoredItem {
	if len(items) < 2 || k <= 0 || m.lambda >= 1.0 {
		return items
	}

	// Bound k to prevent excessive memory allocation
	if k > maxRerankSize {
		k = maxRerankSize
	}
	if k > len(items) {
		k = len(items)
	}

	features := make([]map[string]struct{}, len(items))
	for i := range items {
		features[i] = featureSet(&items[i].Item)
	}

	out := make([]recommend.ScoredItem, 0, len(items))
	selected := make([]int, 0, k)
	taken := make([]bool, len(items))

	for len(selected) < k {
		bestIdx := -1
		bestMMR := 0.0

		for i := range items {
			if taken[i] {
				continue
			}

			maxSim := 0.0
			for _, j := range selected {
				if sim := jaccard(features[i], features[j]); sim > maxSim {
					maxSim = sim
				}
			}

			score := m.lambda*items[i].Score - (1-m.lambda)*maxSim
			if bestIdx < 0 || score > bestMMR {
				bestMMR = score
				bestIdx = i
			}
		}

		selected = append(selected, bestIdx)
		taken[bestIdx] = true
		out = append(out, items[bestIdx])
	}

	for i := range items {
		if !taken[i] {
			out = append(out, items[i])
		}
	}
	return out
}

func featureSet(it *recommend.Item) map[string]struct{} {
	set := make(map[string]struct{}, len(it.Clusters)+1)
	for _, c := range it.Clusters {
		set[strings.ToLower(c)] = struct{}{}
	}
	if it.Category != "" {
		set["category:"+strings.ToLower(it.Category)] = struct{}{}
	}
	return set
}

// jaccard computes the Jaccard similarity of two feature sets.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	intersection := 0
	for f := range a {
		if _, ok := b[f]; ok {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// Ensure MMR implements the interface.
var _ recommend.Reranker = (*MMR)(nil)
