// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/tastegraph/internal/axis"
	"github.com/tomtom215/tastegraph/internal/recommend"
)

type countingSource struct {
	items []recommend.Item
	err   error
	loads atomic.Int32
}

func (s *countingSource) Name() string { return "counting" }

func (s *countingSource) Load(context.Context) ([]recommend.Item, error) {
	s.loads.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return s.items, nil
}

func TestEmbeddedCatalog(t *testing.T) {
	c := New(NewEmbeddedSource(), zerolog.Nop())
	ctx := context.Background()

	for _, d := range axis.Domains() {
		items, err := c.Items(ctx, d)
		if err != nil {
			t.Fatalf("Items(%s) error = %v", d, err)
		}
		if len(items) < 10 {
			t.Errorf("Items(%s) = %d items, want at least 10", d, len(items))
		}
		for i, it := range items {
			if it.Domain != d || !it.Rarity.Valid() || it.Category == "" {
				t.Errorf("invalid item %+v", it)
			}
			if len(it.Axes) != d.Len() {
				t.Errorf("%s: %d axis weights, want %d", it.ID, len(it.Axes), d.Len())
			}
			if i > 0 && items[i-1].ID >= it.ID {
				t.Errorf("items not sorted by id at %d", i)
			}
		}
	}
	if c.Len() != 26 {
		t.Errorf("Len() = %d, want 26", c.Len())
	}
}

func TestNormalizeItem_TagsDeriveAxes(t *testing.T) {
	it, err := normalizeItem(recommend.Item{
		ID: "x", Domain: axis.DomainStyle, Category: " Tops ", Tags: []string{"Minimal"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if it.Axes["ornament"] >= 0 {
		t.Errorf("minimal tag should lean low on ornament, got %v", it.Axes)
	}
	if it.Category != "tops" || it.Rarity != recommend.RarityCommon {
		t.Errorf("normalized item = %+v", it)
	}
}

func TestNormalizeItem_Errors(t *testing.T) {
	tests := []struct {
		name string
		item recommend.Item
	}{
		{"missing id", recommend.Item{Domain: axis.DomainStyle}},
		{"unknown domain", recommend.Item{ID: "a", Domain: "garden"}},
		{"unknown rarity", recommend.Item{ID: "a", Domain: axis.DomainStyle, Rarity: "mythic"}},
		{"short signal", recommend.Item{ID: "a", Domain: axis.DomainStyle, Signal: []float64{0.1, 0.2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := normalizeItem(tt.item); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	doc := `{"version": 1, "items": [
		{"id": "b", "domain": "space", "category": "lighting", "axes": {"light": 2}, "rarity": "rare"},
		{"id": "a", "domain": "space", "category": "seating", "tags": ["rattan"]},
		{"id": "a", "domain": "space", "category": "duplicate"},
		{"id": "c", "domain": "garden", "category": "plants"},
		{"id": "", "domain": "style"}
	]}`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	c := New(NewFileSource(path), zerolog.Nop())
	items, err := c.Items(context.Background(), axis.DomainSpace)
	if err != nil {
		t.Fatalf("Items() error = %v", err)
	}
	if len(items) != 2 || items[0].ID != "a" || items[1].ID != "b" {
		t.Fatalf("Items() = %v", items)
	}
	if items[0].Category != "seating" {
		t.Error("duplicate id should keep the first occurrence")
	}
	if items[1].Axes["light"] != 1 {
		t.Errorf("axes not clamped: %v", items[1].Axes)
	}
	if style, _ := c.Items(context.Background(), axis.DomainStyle); len(style) != 0 {
		t.Errorf("style items = %v", style)
	}
}

func TestFileSource_Errors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{"), 0o600); err != nil {
		t.Fatal(err)
	}
	empty := filepath.Join(dir, "empty.json")
	if err := os.WriteFile(empty, []byte(`{"items": []}`), 0o600); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	if _, err := New(NewFileSource(filepath.Join(dir, "missing.json")), zerolog.Nop()).Items(ctx, axis.DomainStyle); err == nil {
		t.Error("missing file should fail")
	}
	if _, err := New(NewFileSource(bad), zerolog.Nop()).Items(ctx, axis.DomainStyle); err == nil {
		t.Error("malformed file should fail")
	}
	if _, err := New(NewFileSource(empty), zerolog.Nop()).Items(ctx, axis.DomainStyle); !errors.Is(err, ErrCatalogEmpty) {
		t.Errorf("empty file error = %v, want ErrCatalogEmpty", err)
	}
}

func TestCatalog_CachesAndResets(t *testing.T) {
	src := &countingSource{items: []recommend.Item{{ID: "a", Domain: axis.DomainStyle, Category: "tops"}}}
	c := New(src, zerolog.Nop())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := c.Items(ctx, axis.DomainStyle); err != nil {
			t.Fatal(err)
		}
	}
	if src.loads.Load() != 1 {
		t.Errorf("loads = %d, want 1", src.loads.Load())
	}

	c.Reset()
	if c.Len() != 0 {
		t.Error("Len() after Reset should be 0")
	}
	if _, err := c.Items(ctx, axis.DomainStyle); err != nil {
		t.Fatal(err)
	}
	if src.loads.Load() != 2 {
		t.Errorf("loads after Reset = %d, want 2", src.loads.Load())
	}
}

func TestCatalog_ReloadFailureKeepsContents(t *testing.T) {
	src := &countingSource{items: []recommend.Item{{ID: "a", Domain: axis.DomainStyle, Category: "tops"}}}
	c := New(src, zerolog.Nop())
	ctx := context.Background()

	if err := c.Load(ctx); err != nil {
		t.Fatal(err)
	}
	src.err = errors.New("source down")
	if err := c.Reload(ctx); err == nil {
		t.Fatal("Reload() should fail")
	}
	items, err := c.Items(ctx, axis.DomainStyle)
	if err != nil || len(items) != 1 {
		t.Errorf("Items() after failed reload = %v, %v", items, err)
	}
}

func TestCatalog_ConcurrentItems(t *testing.T) {
	src := &countingSource{items: []recommend.Item{{ID: "a", Domain: axis.DomainStyle, Category: "tops"}}}
	c := New(src, zerolog.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.Items(context.Background(), axis.DomainStyle); err != nil {
				t.Errorf("Items() error = %v", err)
			}
		}()
	}
	wg.Wait()
	if src.loads.Load() != 1 {
		t.Errorf("loads = %d, want 1", src.loads.Load())
	}
}

func TestCatalog_RanksWithEngine(t *testing.T) {
	engine, err := recommend.NewEngine(nil, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	engine.SetCatalog(New(NewEmbeddedSource(), zerolog.Nop()))

	resp, err := engine.Rank(context.Background(), recommend.Request{
		ProfileID: "p1",
		Profile: recommend.Profile{
			Scores:       axis.FromVector(axis.DomainStyle, axis.Vector{"ornament": -1, "chroma": -0.6, "finish": -0.4}),
			Interactions: 20,
		},
		K: 3,
	})
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	if len(resp.Items) != 3 || !resp.Items[0].Item.HasCluster("quiet_luxury") {
		t.Errorf("top items = %+v", resp.Items)
	}
}
