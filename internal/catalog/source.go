// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package catalog

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/tomtom215/tastegraph/internal/recommend"
)

// ErrCatalogEmpty is returned when a source yields no usable items.
var ErrCatalogEmpty = errors.New("catalog: no usable items")

//go:embed default.json
var defaultCatalog []byte

// Source produces raw catalog items.
type Source interface {
	// Name identifies the source in logs.
	Name() string

	// Load reads every item. It is called once per cache fill.
	Load(ctx context.Context) ([]recommend.Item, error)
}

// document is the on-disk catalog format.
type document struct {
	Version int              `json:"version"`
	Items   []recommend.Item `json:"items"`
}

func decode(data []byte) ([]recommend.Item, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return doc.Items, nil
}

// FileSource reads a catalog document from a file on every Load.
type FileSource struct {
	path string
}

// NewFileSource creates a source for the JSON document at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name returns the file path.
func (f *FileSource) Name() string {
	return "file:" + f.path
}

// Load reads and decodes the file.
func (f *FileSource) Load(ctx context.Context) ([]recommend.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return decode(data)
}

// EmbeddedSource serves the catalog compiled into the binary.
type EmbeddedSource struct{}

// NewEmbeddedSource creates the default source.
func NewEmbeddedSource() *EmbeddedSource {
	return &EmbeddedSource{}
}

// Name returns "embedded".
func (EmbeddedSource) Name() string {
	return "embedded"
}

// Load decodes the embedded document.
func (EmbeddedSource) Load(ctx context.Context) ([]recommend.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return decode(defaultCatalog)
}

var (
	_ Source = (*FileSource)(nil)
	_ Source = EmbeddedSource{}
)
