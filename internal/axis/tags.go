// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package axis

import (
	"fmt"
	"sort"
)

// contribution is a sparse row of axis coefficients for one tag.
type contribution map[string]float64

var styleTags = map[string]contribution{
	"minimal":      {"ornament": -1.0, "presence": -0.4},
	"ornate":       {"ornament": 1.0, "presence": 0.5},
	"vintage":      {"era": -0.8, "ornament": 0.3, "temperature": 0.2},
	"avant_garde":  {"era": 1.0, "presence": 0.6, "shape": 0.3},
	"neon":         {"chroma": 1.0, "presence": 0.6, "temperature": -0.2},
	"neutral_tone": {"chroma": -0.9, "presence": -0.3},
	"monochrome":   {"chroma": -0.7, "ornament": -0.5},
	"tailored":     {"shape": -1.0, "finish": -0.6},
	"oversized":    {"shape": 0.9, "presence": 0.3},
	"silk":         {"finish": -0.8, "chroma": 0.2},
	"leather":      {"finish": 0.6, "temperature": 0.3, "presence": 0.3},
	"denim":        {"finish": 0.8, "era": -0.2, "shape": 0.3},
	"earth_tone":   {"temperature": 0.8, "chroma": -0.3},
	"icy":          {"temperature": -0.9, "chroma": -0.2},
	"statement":    {"presence": 1.0, "ornament": 0.4},
	"streetwear":   {"shape": 0.6, "era": 0.5, "finish": 0.5},
	"embroidery":   {"ornament": 0.8, "era": -0.3, "finish": 0.2},
	"metallic":     {"presence": 0.7, "chroma": 0.4, "temperature": -0.3},
	"knit":         {"shape": 0.5, "temperature": 0.6, "finish": 0.3},
	"pattern":      {"ornament": 0.6, "chroma": 0.5},
}

var spaceTags = map[string]contribution{
	"scandinavian":  {"ornament": -0.7, "light": 0.9, "material": 0.5, "density": -0.6},
	"industrial":    {"material": -0.7, "geometry": -0.6, "light": -0.4, "formality": -0.3},
	"bohemian":      {"density": 0.9, "chroma": 0.6, "material": 0.6, "formality": -0.6},
	"maximalist":    {"ornament": 0.9, "density": 1.0, "chroma": 0.7},
	"japandi":       {"ornament": -0.8, "material": 0.8, "density": -0.7, "temperature": 0.3},
	"art_deco":      {"ornament": 0.8, "geometry": -0.7, "formality": 0.8, "era": -0.5},
	"mid_century":   {"era": -0.5, "geometry": 0.3, "temperature": 0.4, "material": 0.4},
	"coastal":       {"light": 1.0, "temperature": -0.4, "formality": -0.5},
	"rustic":        {"material": 1.0, "temperature": 0.7, "formality": -0.5},
	"brutalist":     {"geometry": -1.0, "material": -0.3, "ornament": -0.5, "light": -0.5},
	"futurist":      {"era": 1.0, "material": -0.6, "geometry": 0.4},
	"velvet":        {"formality": 0.5, "density": 0.4, "light": -0.4, "chroma": 0.3},
	"marble":        {"formality": 0.7, "temperature": -0.4, "material": 0.5},
	"rattan":        {"material": 0.9, "geometry": 0.5, "formality": -0.5},
	"chrome":        {"material": -0.9, "temperature": -0.6, "era": 0.4},
	"jewel_tone":    {"chroma": 1.0, "light": -0.3, "formality": 0.3},
	"whitewashed":   {"light": 0.8, "chroma": -0.7},
	"curved":        {"geometry": 1.0},
	"dark_academia": {"light": -1.0, "era": -0.6, "density": 0.5, "formality": 0.5},
}

// tagTable is a dense contribution table for one domain.
type tagTable struct {
	keys []string
	rows map[string][]float64
}

var tables = map[Domain]*tagTable{
	DomainStyle: buildTable(DomainStyle, styleTags),
	DomainSpace: buildTable(DomainSpace, spaceTags),
}

// buildTable expands sparse rows into dense rows of one coefficient per axis.
// Every axis key is added as a tag contributing 1.0 to its own axis.
// It panics when a row names an axis outside the domain.
func buildTable(d Domain, sparse map[string]contribution) *tagTable {
	axes := d.Axes()
	t := &tagTable{rows: make(map[string][]float64, len(sparse)+len(axes))}

	for i, a := range axes {
		row := make([]float64, len(axes))
		row[i] = 1
		t.rows[a.Key] = row
	}
	for tag, c := range sparse {
		if _, dup := t.rows[tag]; dup {
			panic(fmt.Sprintf("axis: tag %q shadows an axis key in %s", tag, d))
		}
		row := make([]float64, len(axes))
		for key, coeff := range c {
			idx := d.Index(key)
			if idx < 0 {
				panic(fmt.Sprintf("axis: tag %q references unknown axis %q in %s", tag, key, d))
			}
			row[idx] = coeff
		}
		t.rows[tag] = row
	}

	t.keys = make([]string, 0, len(t.rows))
	for k := range t.rows {
		t.keys = append(t.keys, k)
	}
	sort.Strings(t.keys)
	return t
}

func tableFor(d Domain) *tagTable {
	t, ok := tables[d]
	if !ok {
		panic(fmt.Sprintf("axis: unknown domain %q", string(d)))
	}
	return t
}

// Tags returns the sorted tag vocabulary of d, axis keys included.
func Tags(d Domain) []string {
	keys := tableFor(d).keys
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}

// Contribution returns a copy of the contribution row for tag in d.
func Contribution(d Domain, tag string) ([]float64, bool) {
	row, ok := tableFor(d).rows[tag]
	if !ok {
		return nil, false
	}
	out := make([]float64, len(row))
	copy(out, row)
	return out, true
}
