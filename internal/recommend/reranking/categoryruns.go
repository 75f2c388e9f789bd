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

// DefaultMaxRun is the longest run of one category CategoryRuns allows by default.
const DefaultMaxRun = 4

// CategoryRuns limits how many consecutive results may share a category.
type CategoryRuns struct {
	maxRun int
}

// NewCategoryRuns creates a run limiter. Values below 1 fall back to DefaultMaxRun.
func NewCategoryRuns(maxRun int) *CategoryRuns {
	if maxRun < 1 {
		maxRun = DefaultMaxRun
	}
	return &CategoryRuns{maxRun: maxRun}
}

// Name returns the reranker identifier.
func (c *CategoryRuns) Name() string {
	return "category_runs"
}

// Rerank diversifies items and truncates the result to k.
func (c *CategoryRuns) Rerank(_ context.Context, items []recommend.ScoredItem, k int) []recommend.ScoredItem {
	out := c.Diversify(items)
	if k > 0 && len(out) > k {
		out = out[:k]
	}
	return out
}

// Diversify walks the ranked list in order. Whenever the last maxRun emitted
// items share a category, the next remaining item of a different category is
// promoted ahead of the rest. When no such item remains the walk continues in
// order. The result is always a permutation of items.
func (c *CategoryRuns) Diversify(items []recommend.ScoredItem) []recommend.ScoredItem {
	if len(items) <= c.maxRun {
		return items
	}

	remaining := make([]recommend.ScoredItem, len(items))
	copy(remaining, items)
	out := make([]recommend.ScoredItem, 0, len(items))

	for len(remaining) > 0 {
		pick := 0
		if cat, full := c.saturated(out); full {
			for i := range remaining {
				if !strings.EqualFold(remaining[i].Item.Category, cat) {
					pick = i
					break
				}
			}
		}
		out = append(out, remaining[pick])
		remaining = append(remaining[:pick], remaining[pick+1:]...)
	}
	return out
}

// saturated reports whether the tail of out is a run of maxRun items sharing
// one category, and returns that category.
func (c *CategoryRuns) saturated(out []recommend.ScoredItem) (string, bool) {
	if len(out) < c.maxRun {
		return "", false
	}
	tail := out[len(out)-c.maxRun:]
	cat := tail[0].Item.Category
	for i := 1; i < len(tail); i++ {
		if !strings.EqualFold(tail[i].Item.Category, cat) {
			return "", false
		}
	}
	return cat, true
}

var _ recommend.Reranker = (*CategoryRuns)(nil)
