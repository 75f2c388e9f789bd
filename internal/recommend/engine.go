// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog"

	"github.com/tomtom215/tastegraph/internal/axis"
	"github.com/tomtom215/tastegraph/internal/metrics"
)

var (
	// ErrNoCatalog is returned when Rank is called before SetCatalog.
	ErrNoCatalog = errors.New("recommend: catalog provider not set")

	// ErrInvalidProfile is returned when profile scores do not fit their domain.
	ErrInvalidProfile = errors.New("recommend: invalid profile")
)

// Engine ranks catalog items against taste profiles and applies rerankers.
// It is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger

	rerankers []Reranker
	rrMu      sync.RWMutex

	catalog CatalogProvider

	cache *expirable.LRU[string, *Response]

	requestCount atomic.Int64
	cacheHits    atomic.Int64
	cacheMisses  atomic.Int64
	errorCount   atomic.Int64
}

// Stats contains engine counters for observability.
type Stats struct {
	RequestCount int64 `json:"request_count"`
	CacheHits    int64 `json:"cache_hits"`
	CacheMisses  int64 `json:"cache_misses"`
	CacheEntries int   `json:"cache_entries"`
	ErrorCount   int64 `json:"error_count"`
}

// NewEngine creates a new ranking engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Engine{
		config:    cfg,
		logger:    logger.With().Str("component", "recommend").Logger(),
		rerankers: make([]Reranker, 0),
	}
	if cfg.Cache.Enabled {
		e.cache = expirable.NewLRU[string, *Response](cfg.Cache.MaxEntries, nil, cfg.Cache.TTL)
	}
	return e, nil
}

// SetCatalog sets the item source.
func (e *Engine) SetCatalog(c CatalogProvider) {
	e.catalog = c
}

// RegisterReranker adds a reranker to the post-processing pipeline.
func (e *Engine) RegisterReranker(rr Reranker) {
	e.rrMu.Lock()
	defer e.rrMu.Unlock()

	e.rerankers = append(e.rerankers, rr)
	e.logger.Info().
		Str("reranker", rr.Name()).
		Msg("registered reranker")
}

// Config returns a copy of the current configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// Rank produces recommendations for a profile.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Rank(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	if err := validateProfile(req.Profile); err != nil {
		e.errorCount.Add(1)
		return nil, err
	}

	req = e.prepareRequest(req, start)
	logger := e.logger.With().
		Str("request_id", req.RequestID).
		Str("profile_id", req.ProfileID).
		Str("domain", req.Domain().String()).
		Logger()

	key := cacheKey(req)
	if resp := e.cached(key, start); resp != nil {
		metrics.RecordRank(req.Domain().String(), time.Since(start), true)
		logger.Debug().Msg("cache hit")
		return resp, nil
	}

	if e.catalog == nil {
		e.errorCount.Add(1)
		return nil, ErrNoCatalog
	}
	items, err := e.catalog.Items(ctx, req.Domain())
	if err != nil {
		e.errorCount.Add(1)
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	items = filterExcluded(items, req.ExcludeIDs)

	scored := Rank(req.Profile, items, e.config.Weights, req.Now)
	scored, used := e.applyRerankers(ctx, scored, req.K)
	if len(scored) > req.K {
		scored = scored[:req.K]
	}

	resp := &Response{
		Items:           scored,
		TotalCandidates: len(items),
		Metadata: ResponseMetadata{
			RequestID:       req.RequestID,
			ProfileID:       req.ProfileID,
			Domain:          req.Domain(),
			Mode:            req.Profile.Mode(),
			DominantCluster: DominantCluster(req.Profile.Scores).Key,
			Rerankers:       used,
			LatencyMS:       time.Since(start).Milliseconds(),
			Timestamp:       time.Now(),
		},
	}
	if e.cache != nil {
		e.cache.Add(key, copyResponse(resp))
	}

	metrics.RecordRank(req.Domain().String(), time.Since(start), false)
	logger.Debug().
		Int("candidates", len(items)).
		Int("returned", len(scored)).
		Str("mode", string(resp.Metadata.Mode)).
		Msg("ranking complete")

	return resp, nil
}

//nolint:gocritic // hugeParam: profile passed by value for immutability
func validateProfile(p Profile) error {
	d := p.Scores.Domain
	if !d.Valid() {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, axis.ErrUnknownDomain)
	}
	if len(p.Scores.Values) != d.Len() {
		return fmt.Errorf("%w: %d axis values for %s, want %d", ErrInvalidProfile, len(p.Scores.Values), d, d.Len())
	}
	return nil
}

// prepareRequest applies defaults and generates a request ID if needed.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req Request, start time.Time) Request {
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}
	if req.K <= 0 {
		req.K = e.config.Limits.DefaultK
	}
	if req.K > e.config.Limits.MaxK {
		req.K = e.config.Limits.MaxK
	}
	if req.Now.IsZero() {
		// Day granularity keeps freshness, and therefore cache keys, stable.
		req.Now = start.UTC().Truncate(24 * time.Hour)
	}
	return req
}

func (e *Engine) cached(key string, start time.Time) *Response {
	if e.cache == nil {
		return nil
	}
	resp, ok := e.cache.Get(key)
	if !ok {
		e.cacheMisses.Add(1)
		return nil
	}
	e.cacheHits.Add(1)
	out := copyResponse(resp)
	out.Metadata.CacheHit = true
	out.Metadata.LatencyMS = time.Since(start).Milliseconds()
	return out
}

// applyRerankers runs the registered rerankers in order.
func (e *Engine) applyRerankers(ctx context.Context, items []ScoredItem, k int) ([]ScoredItem, []string) {
	e.rrMu.RLock()
	rerankers := e.rerankers
	e.rrMu.RUnlock()

	used := make([]string, 0, len(rerankers))
	for _, rr := range rerankers {
		items = rr.Rerank(ctx, items, k)
		used = append(used, rr.Name())
	}
	return items, used
}

// InvalidateCache drops every cached response. It is called after a catalog reload.
func (e *Engine) InvalidateCache() {
	if e.cache != nil {
		e.cache.Purge()
	}
}

// Stats returns engine counters.
func (e *Engine) Stats() Stats {
	s := Stats{
		RequestCount: e.requestCount.Load(),
		CacheHits:    e.cacheHits.Load(),
		CacheMisses:  e.cacheMisses.Load(),
		ErrorCount:   e.errorCount.Load(),
	}
	if e.cache != nil {
		s.CacheEntries = e.cache.Len()
	}
	return s
}

// cacheKey identifies a response by profile, domain, K, exclusions, freshness
// anchor, identity version and an axis fingerprint.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func cacheKey(req Request) string {
	var b strings.Builder
	b.WriteString("rank:")
	b.WriteString(req.ProfileID)
	b.WriteByte(':')
	b.WriteString(req.Domain().String())
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(req.K))
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(req.Profile.Interactions))
	b.WriteByte(':')
	b.WriteString(strconv.FormatUint(req.Profile.Version, 10))
	b.WriteByte(':')
	b.WriteString(strconv.FormatFloat(req.Profile.Stability, 'g', -1, 64))
	b.WriteByte(':')
	b.WriteString(strconv.FormatInt(req.Now.Unix(), 10))
	for _, v := range req.Profile.Scores.Values {
		b.WriteByte(':')
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	if len(req.ExcludeIDs) > 0 {
		ex := append([]string(nil), req.ExcludeIDs...)
		sort.Strings(ex)
		b.WriteString(":x=")
		b.WriteString(strings.Join(ex, ","))
	}
	return b.String()
}

// copyResponse creates a copy so cached entries are never mutated by callers.
func copyResponse(resp *Response) *Response {
	items := make([]ScoredItem, len(resp.Items))
	copy(items, resp.Items)
	out := *resp
	out.Items = items
	out.Metadata.Rerankers = append([]string(nil), resp.Metadata.Rerankers...)
	return &out
}

func filterExcluded(items []Item, exclude []string) []Item {
	if len(exclude) == 0 {
		return items
	}
	skip := make(map[string]struct{}, len(exclude))
	for _, id := range exclude {
		skip[id] = struct{}{}
	}
	out := make([]Item, 0, len(items))
	for i := range items {
		if _, ok := skip[items[i].ID]; !ok {
			out = append(out, items[i])
		}
	}
	return out
}
