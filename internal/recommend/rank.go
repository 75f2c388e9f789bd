// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package recommend

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tomtom215/tastegraph/internal/axis"
)

// Freshness windows.
const (
	freshWindow  = 30 * 24 * time.Hour
	recentWindow = 180 * 24 * time.Hour

	freshnessNew     = 1.0
	freshnessRecent  = 0.6
	freshnessOld     = 0.3
	freshnessUnknown = 0.5
)

// tasteExplainAbove is the affinity at which the explanation mentions votes.
const tasteExplainAbove = 0.6

// Freshness scores an item's release date relative to now.
func Freshness(releasedAt *time.Time, now time.Time) float64 {
	if releasedAt == nil || releasedAt.IsZero() {
		return freshnessUnknown
	}
	age := now.Sub(*releasedAt)
	switch {
	case age <= freshWindow:
		return freshnessNew
	case age <= recentWindow:
		return freshnessRecent
	default:
		return freshnessOld
	}
}

// Alignment maps the cosine between item and user axis scores to [0, 1].
// It is 0.5 when either side is all zeros.
//
//nolint:gocritic // hugeParam: scores passed by value for immutability
func Alignment(item, user axis.Scores) float64 {
	return (item.Cosine(user) + 1) / 2
}

// Rank scores items against profile and orders them by score descending,
// then id ascending. Items with a signal blend their embedding affinity into
// Alignment, weighted by TasteShare and the profile's stability. Items from
// other domains are skipped. The result is bit-reproducible for identical
// inputs.
//
//nolint:gocritic // hugeParam: profile passed by value for immutability
func Rank(profile Profile, items []Item, weights ScoreWeights, now time.Time) []ScoredItem {
	domain := profile.Scores.Domain
	w := weights.Normalize()
	mode := profile.Mode()
	cluster := DominantCluster(profile.Scores)
	rule := contextRules[domain][poleKey(profile.Scores)]
	dominant := profile.Scores.DominantAxis()
	pole := dominant.Pole(profile.Scores.Values[profile.Scores.Dominant()])

	out := make([]ScoredItem, 0, len(items))
	for i := range items {
		it := &items[i]
		if it.Domain != domain {
			continue
		}

		var b Breakdown
		b.Alignment = Alignment(axis.FromVector(domain, it.Axes), profile.Scores)
		if e, ok := it.Embedding(); ok {
			if share, affinity := profile.Taste(e); share > 0 {
				b.Taste = &affinity
				b.Alignment = (1-share)*b.Alignment + share*affinity
			}
		}
		b.Rarity = RarityBoost(it.Rarity, mode)
		if it.HasCluster(cluster.Key) {
			b.Cluster = 1
		}
		b.Freshness = Freshness(it.ReleasedAt, now)
		if containsFold(rule.Categories, it.Category) {
			b.Category = 1
		}
		if containsFold(rule.Materials, it.Material) {
			b.Material = 1
		}
		b.Context = (b.Freshness + b.Category + b.Material) / 3

		score := w.Alignment*b.Alignment + w.Rarity*b.Rarity + w.Cluster*b.Cluster + w.Context*b.Context

		out = append(out, ScoredItem{
			Item:        *it,
			Score:       score,
			Breakdown:   b,
			Explanation: explain(&b, it, pole, dominant.Key, cluster),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Item.ID < out[j].Item.ID
	})
	return out
}

// explain builds a one-sentence explanation from the breakdown.
func explain(b *Breakdown, it *Item, pole, axisKey string, cluster Cluster) string {
	var lead string
	switch {
	case b.Alignment >= 0.75:
		lead = fmt.Sprintf("Closely matches your %s %s profile", pole, axisKey)
	case b.Alignment >= 0.5:
		lead = fmt.Sprintf("Leans toward your %s %s profile", pole, axisKey)
	default:
		lead = fmt.Sprintf("A stretch from your usual %s %s profile", pole, axisKey)
	}

	parts := []string{lead}
	if b.Cluster == 1 {
		parts = append(parts, fmt.Sprintf("fits your %s cluster", cluster.Label))
	}
	if b.Taste != nil && *b.Taste >= tasteExplainAbove {
		parts = append(parts, "close to pieces you have confirmed")
	}
	if it.Rarity == RarityRare {
		parts = append(parts, "a rare find")
	}
	if b.Category == 1 && it.Category != "" {
		parts = append(parts, fmt.Sprintf("a %s pick that suits you", strings.ReplaceAll(it.Category, "_", " ")))
	}
	if b.Freshness == freshnessNew {
		parts = append(parts, "newly released")
	}
	return strings.Join(parts, ", ") + "."
}
