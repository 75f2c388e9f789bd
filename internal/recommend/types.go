// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package recommend

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/tomtom215/tastegraph/internal/axis"
	"github.com/tomtom215/tastegraph/internal/embedding"
)

// RarityTier classifies how scarce an item is.
type RarityTier string

const (
	RarityCommon  RarityTier = "common"
	RarityLimited RarityTier = "limited"
	RarityRare    RarityTier = "rare"
)

// Valid reports whether t is a known tier.
func (t RarityTier) Valid() bool {
	switch t {
	case RarityCommon, RarityLimited, RarityRare:
		return true
	default:
		return false
	}
}

// TasteShare is the largest weight the embedding affinity takes in
// Alignment, reached by a fully stable identity.
const TasteShare = 0.5

// StabilityMode summarizes how settled a profile's taste is.
type StabilityMode string

const (
	// ModeStable profiles have many interactions and a clear dominant axis.
	ModeStable StabilityMode = "stable"
	// ModeNeutral profiles are neither settled nor volatile.
	ModeNeutral StabilityMode = "neutral"
	// ModeVolatile profiles are new or have no clear lean.
	ModeVolatile StabilityMode = "volatile"
)

// Item is a catalog entry. Items are immutable once loaded.
type Item struct {
	// ID is the unique item identifier.
	ID string `json:"id"`

	// Title is the display title.
	Title string `json:"title"`

	// Domain is the content domain the item belongs to.
	Domain axis.Domain `json:"domain"`

	// Category is the product category (e.g. "outerwear", "lighting").
	Category string `json:"category"`

	// Material is the primary material.
	Material string `json:"material,omitempty"`

	// Axes holds the item's weight on each axis of its domain.
	Axes axis.Vector `json:"axes"`

	// Tags are descriptive vocabulary tags.
	Tags []string `json:"tags,omitempty"`

	// Clusters are the style clusters the item belongs to.
	Clusters []string `json:"clusters,omitempty"`

	// Rarity is the scarcity tier.
	Rarity RarityTier `json:"rarity"`

	// ReleasedAt is the release date, when known.
	ReleasedAt *time.Time `json:"released_at,omitempty"`

	// Signal holds the item's eleven visual statistics, when analyzed. Items
	// with a signal are also scored against the voter's learned embeddings.
	Signal []float64 `json:"signal,omitempty"`
}

// Embedding projects the item's signal. It reports false when the item has
// no usable signal.
func (it *Item) Embedding() (embedding.Embedding, bool) {
	if len(it.Signal) == 0 {
		return embedding.Embedding{}, false
	}
	s, err := embedding.ParseSignal(it.Signal)
	if err != nil {
		return embedding.Embedding{}, false
	}
	return embedding.Project(s), true
}

// HasCluster reports whether the item belongs to cluster.
func (it *Item) HasCluster(cluster string) bool {
	for _, c := range it.Clusters {
		if strings.EqualFold(c, cluster) {
			return true
		}
	}
	return false
}

// Breakdown records the components of an item's score.
type Breakdown struct {
	Alignment float64 `json:"alignment"`
	Rarity    float64 `json:"rarity"`
	Cluster   float64 `json:"cluster"`
	Context   float64 `json:"context"`
	Freshness float64 `json:"freshness"`
	Category  float64 `json:"category"`
	Material  float64 `json:"material"`

	// Taste is the embedding affinity blended into Alignment. It is nil when
	// the item has no signal or the profile has no learned embeddings.
	Taste *float64 `json:"taste,omitempty"`
}

// ScoredItem is a ranked recommendation.
type ScoredItem struct {
	// Item is the catalog entry.
	Item Item `json:"item"`

	// Score is the weighted score in [0, 1], higher is better.
	Score float64 `json:"score"`

	// Breakdown explains how Score was assembled.
	Breakdown Breakdown `json:"breakdown"`

	// Explanation is a human-readable sentence describing the match.
	Explanation string `json:"explanation"`
}

// Profile is the taste state a ranking is computed against.
type Profile struct {
	// Scores are the user's axis scores.
	Scores axis.Scores `json:"scores"`

	// Interactions is the number of calibration and feedback interactions.
	Interactions int `json:"interactions"`

	// Positive and Anti are the identity embeddings learned from votes.
	Positive embedding.Embedding `json:"-"`
	Anti     embedding.Embedding `json:"-"`

	// Stability is the identity's stability in [0, 1]. It scales how much
	// the embeddings move Alignment.
	Stability float64 `json:"stability"`

	// Version is the identity version the embeddings were read at.
	Version uint64 `json:"version"`
}

// HasEmbeddings reports whether votes have moved either identity embedding.
//
//nolint:gocritic // hugeParam: profile passed by value for immutability
func (p Profile) HasEmbeddings() bool {
	return !p.Positive.IsZero() || !p.Anti.IsZero()
}

// Taste returns the blend weight of the embedding affinity and the affinity
// of e. The weight is zero for profiles without learned embeddings.
//
//nolint:gocritic // hugeParam: profile passed by value for immutability
func (p Profile) Taste(e embedding.Embedding) (share, affinity float64) {
	if !p.HasEmbeddings() {
		return 0, 0.5
	}
	stability := math.Max(0, math.Min(1, p.Stability))
	return TasteShare * stability, embedding.Affinity(e, p.Positive, p.Anti)
}

// Mode derives the stability mode from interaction count and axis separation.
//
//nolint:gocritic // hugeParam: profile passed by value for immutability
func (p Profile) Mode() StabilityMode {
	sep := p.Scores.Separation()
	switch {
	case p.Interactions < volatileInteractions || sep < volatileSeparation:
		return ModeVolatile
	case p.Interactions >= stableInteractions && sep >= stableSeparation:
		return ModeStable
	default:
		return ModeNeutral
	}
}

// Request is a ranking request.
type Request struct {
	// ProfileID identifies the user. It only scopes caching and logging.
	ProfileID string `json:"profile_id"`

	// Profile is the taste state to rank against. Its scores select the domain.
	Profile Profile `json:"profile"`

	// K is the number of results. Defaults to Config.Limits.DefaultK if zero.
	K int `json:"k,omitempty"`

	// ExcludeIDs are item ids that must not be returned (e.g. favorites).
	ExcludeIDs []string `json:"exclude_ids,omitempty"`

	// Now anchors freshness. Zero means time.Now truncated to the day.
	Now time.Time `json:"-"`

	// RequestID is a unique identifier for tracing.
	RequestID string `json:"request_id,omitempty"`
}

// Domain returns the domain of the request's profile scores.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (r Request) Domain() axis.Domain {
	return r.Profile.Scores.Domain
}

// Response is the ranked result.
type Response struct {
	// Items is the ordered list of recommendations.
	Items []ScoredItem `json:"items"`

	// TotalCandidates is the number of catalog items considered.
	TotalCandidates int `json:"total_candidates"`

	// Metadata contains timing and diagnostic information.
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata contains timing and diagnostic information.
type ResponseMetadata struct {
	RequestID       string        `json:"request_id"`
	ProfileID       string        `json:"profile_id"`
	Domain          axis.Domain   `json:"domain"`
	Mode            StabilityMode `json:"mode"`
	DominantCluster string        `json:"dominant_cluster"`
	Rerankers       []string      `json:"rerankers"`
	LatencyMS       int64         `json:"latency_ms"`
	CacheHit        bool          `json:"cache_hit"`
	Timestamp       time.Time     `json:"timestamp"`
}

// CatalogProvider supplies items for a domain.
// This is typically implemented by the catalog package.
type CatalogProvider interface {
	Items(ctx context.Context, domain axis.Domain) ([]Item, error)
}

// Reranker modifies a ranked list for diversity or other objectives.
type Reranker interface {
	// Name returns the reranker identifier (e.g., "mmr", "category_runs").
	Name() string

	// Rerank reorders scored items that are already sorted by relevance and
	// returns up to k of them.
	Rerank(ctx context.Context, items []ScoredItem, k int) []ScoredItem
}

// String renders a scored item for logs.
//
//nolint:gocritic // hugeParam: value receiver keeps ScoredItem usable in fmt
func (s ScoredItem) String() string {
	return fmt.Sprintf("%s(%.4f)", s.Item.ID, s.Score)
}
