// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package recommend

import (
	"fmt"
	"math"
	"time"
)

// Config contains all configuration for the ranking engine.
type Config struct {
	// Weights defines the contribution of each score component.
	// Weights are normalized at runtime, so they don't need to sum to 1.0.
	Weights ScoreWeights `json:"weights"`

	// Diversity contains parameters for post-rank diversification.
	Diversity DiversityConfig `json:"diversity"`

	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits"`

	// Cache contains caching parameters.
	Cache CacheConfig `json:"cache"`
}

// ScoreWeights defines the convex combination used to score items.
type ScoreWeights struct {
	// Alignment is the weight of axis alignment. Default: 0.60.
	Alignment float64 `json:"alignment"`

	// Rarity is the weight of the rarity/stability boost. Default: 0.15.
	Rarity float64 `json:"rarity"`

	// Cluster is the weight of the dominant cluster match. Default: 0.15.
	Cluster float64 `json:"cluster"`

	// Context is the weight of freshness, category and material. Default: 0.10.
	Context float64 `json:"context"`
}

// Normalize returns a copy with weights normalized to sum to 1.0.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w ScoreWeights) Normalize() ScoreWeights {
	sum := w.Alignment + w.Rarity + w.Cluster + w.Context
	if sum == 0 {
		return ScoreWeights{Alignment: 0.25, Rarity: 0.25, Cluster: 0.25, Context: 0.25}
	}
	if math.Abs(sum-1) < 1e-12 {
		return w
	}
	return ScoreWeights{
		Alignment: w.Alignment / sum,
		Rarity:    w.Rarity / sum,
		Cluster:   w.Cluster / sum,
		Context:   w.Context / sum,
	}
}

// DiversityConfig contains parameters for diversification.
type DiversityConfig struct {
	// MaxCategoryRun is the longest allowed run of one category.
	// Default: 4.
	MaxCategoryRun int `json:"max_category_run"`

	// MMREnabled turns on cluster-based MMR before the run limiter.
	// Default: false.
	MMREnabled bool `json:"mmr_enabled"`

	// MMRLambda balances relevance (1.0) against diversity (0.0).
	// Default: 0.7.
	MMRLambda float64 `json:"mmr_lambda"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// DefaultK is the default number of recommendations to return.
	// Default: 20.
	DefaultK int `json:"default_k"`

	// MaxK is the maximum allowed K value.
	// Default: 100.
	MaxK int `json:"max_k"`
}

// CacheConfig contains caching parameters.
type CacheConfig struct {
	// Enabled controls whether caching is active.
	// Default: true.
	Enabled bool `json:"enabled"`

	// TTL is the cache entry time-to-live.
	// Default: 5m.
	TTL time.Duration `json:"ttl"`

	// MaxEntries is the maximum number of cached entries.
	// Default: 1024.
	MaxEntries int `json:"max_entries"`
}

// DefaultConfig returns a Config with the standard ranking weights.
func DefaultConfig() *Config {
	return &Config{
		Weights: ScoreWeights{
			Alignment: 0.60,
			Rarity:    0.15,
			Cluster:   0.15,
			Context:   0.10,
		},
		Diversity: DiversityConfig{
			MaxCategoryRun: 4,
			MMREnabled:     false,
			MMRLambda:      0.7,
		},
		Limits: LimitsConfig{
			DefaultK: 20,
			MaxK:     100,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        5 * time.Minute,
			MaxEntries: 1024,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	w := c.Weights
	if w.Alignment < 0 || w.Rarity < 0 || w.Cluster < 0 || w.Context < 0 {
		return fmt.Errorf("weights must be non-negative, got %+v", w)
	}
	if w.Alignment < w.Rarity || w.Alignment < w.Cluster || w.Alignment < w.Context {
		return fmt.Errorf("weights.alignment must be the dominant term, got %+v", w)
	}

	if c.Diversity.MaxCategoryRun < 1 {
		return fmt.Errorf("diversity.max_category_run must be positive, got %d", c.Diversity.MaxCategoryRun)
	}
	if c.Diversity.MMRLambda < 0 || c.Diversity.MMRLambda > 1 {
		return fmt.Errorf("diversity.mmr_lambda must be in [0, 1], got %f", c.Diversity.MMRLambda)
	}

	if c.Limits.DefaultK < 1 {
		return fmt.Errorf("limits.default_k must be positive, got %d", c.Limits.DefaultK)
	}
	if c.Limits.MaxK < c.Limits.DefaultK {
		return fmt.Errorf("limits.max_k (%d) must be >= limits.default_k (%d)", c.Limits.MaxK, c.Limits.DefaultK)
	}

	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive, got %v", c.Cache.TTL)
		}
		if c.Cache.MaxEntries < 1 {
			return fmt.Errorf("cache.max_entries must be positive, got %d", c.Cache.MaxEntries)
		}
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	// Direct field copy - all nested structs contain only value types
	return &Config{
		Weights:   c.Weights,
		Diversity: c.Diversity,
		Limits:    c.Limits,
		Cache:     c.Cache,
	}
}
