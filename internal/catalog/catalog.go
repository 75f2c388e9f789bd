// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tomtom215/tastegraph/internal/axis"
	"github.com/tomtom215/tastegraph/internal/embedding"
	"github.com/tomtom215/tastegraph/internal/metrics"
	"github.com/tomtom215/tastegraph/internal/recommend"
)

var errMissingID = errors.New("missing id")

// Catalog caches validated items from a Source, indexed by domain.
// It is safe for concurrent use.
type Catalog struct {
	source Source
	logger zerolog.Logger

	mu       sync.RWMutex
	loaded   bool
	byDomain map[axis.Domain][]recommend.Item
	total    int
}

// New creates a catalog over source. Nothing is loaded until first use.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(source Source, logger zerolog.Logger) *Catalog {
	return &Catalog{
		source: source,
		logger: logger.With().Str("component", "catalog").Str("source", source.Name()).Logger(),
	}
}

// Items returns the items of domain d, loading the catalog if needed.
// The returned slice must not be modified.
func (c *Catalog) Items(ctx context.Context, d axis.Domain) ([]recommend.Item, error) {
	c.mu.RLock()
	if c.loaded {
		items := c.byDomain[d]
		c.mu.RUnlock()
		return items, nil
	}
	c.mu.RUnlock()

	if err := c.Load(ctx); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.byDomain[d], nil
}

// Load fills the cache unless it is already filled.
func (c *Catalog) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded {
		return nil
	}
	return c.loadLocked(ctx)
}

// Reload replaces the cache with a fresh read of the source. On failure the
// previous contents are kept.
func (c *Catalog) Reload(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadLocked(ctx)
}

// Reset drops the cache. The next Items call reloads from the source.
func (c *Catalog) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded = false
	c.byDomain = nil
	c.total = 0
	c.logger.Info().Msg("catalog reset")
}

// Len returns the number of cached items, or 0 when not loaded.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.total
}

func (c *Catalog) loadLocked(ctx context.Context) error {
	raw, err := c.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("load catalog from %s: %w", c.source.Name(), err)
	}

	byDomain, total := c.index(raw)
	if total == 0 {
		return ErrCatalogEmpty
	}

	c.byDomain = byDomain
	c.total = total
	c.loaded = true

	metrics.CatalogReloads.Inc()
	for _, d := range axis.Domains() {
		metrics.SetCatalogSize(d.String(), len(byDomain[d]))
	}
	c.logger.Info().
		Int("items", total).
		Int("skipped", len(raw)-total).
		Msg("catalog loaded")
	return nil
}

// index validates items and groups them by domain, sorted by id.
func (c *Catalog) index(raw []recommend.Item) (map[axis.Domain][]recommend.Item, int) {
	byDomain := make(map[axis.Domain][]recommend.Item)
	seen := make(map[string]struct{}, len(raw))
	total := 0

	for i := range raw {
		it, err := normalizeItem(raw[i])
		if err != nil {
			c.logger.Warn().Err(err).Str("item_id", raw[i].ID).Msg("skipping catalog item")
			continue
		}
		if _, dup := seen[it.ID]; dup {
			c.logger.Warn().Str("item_id", it.ID).Msg("skipping duplicate catalog item")
			continue
		}
		seen[it.ID] = struct{}{}
		byDomain[it.Domain] = append(byDomain[it.Domain], it)
		total++
	}

	for d := range byDomain {
		items := byDomain[d]
		sort.Slice(items, func(a, b int) bool { return items[a].ID < items[b].ID })
	}
	return byDomain, total
}

// normalizeItem validates an item and fills derived fields. Tag-only items
// get axis weights from the axis mapper; explicit axes are clamped to the
// domain's keys.
//
//nolint:gocritic // hugeParam: item passed by value for immutability
func normalizeItem(it recommend.Item) (recommend.Item, error) {
	it.ID = strings.TrimSpace(it.ID)
	if it.ID == "" {
		return it, errMissingID
	}
	if !it.Domain.Valid() {
		return it, fmt.Errorf("%w: %q", axis.ErrUnknownDomain, it.Domain)
	}
	if it.Rarity == "" {
		it.Rarity = recommend.RarityCommon
	}
	if !it.Rarity.Valid() {
		return it, fmt.Errorf("unknown rarity %q", it.Rarity)
	}
	if len(it.Signal) > 0 {
		if _, err := embedding.ParseSignal(it.Signal); err != nil {
			return it, err
		}
	}
	it.Category = strings.ToLower(strings.TrimSpace(it.Category))
	it.Material = strings.ToLower(strings.TrimSpace(it.Material))

	if len(it.Axes) == 0 && len(it.Tags) > 0 {
		tags := make(axis.Vector, len(it.Tags))
		for _, t := range it.Tags {
			tags[strings.ToLower(t)] = 1
		}
		it.Axes = axis.Map(it.Domain, tags).Vector()
	} else {
		it.Axes = axis.FromVector(it.Domain, it.Axes).Vector()
	}
	return it, nil
}

var _ recommend.CatalogProvider = (*Catalog)(nil)
