// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package naming

import "github.com/tomtom215/tastegraph/internal/axis"

// Archetype is a named reference profile offered in forced-choice duels.
type Archetype struct {
	Key       string      `json:"key"`
	Label     string      `json:"label"`
	Signature axis.Scores `json:"signature"`
}

func archetype(d axis.Domain, key, label string, weights axis.Vector) Archetype {
	return Archetype{Key: key, Label: label, Signature: axis.FromVector(d, weights)}
}

var styleArchetypes = []Archetype{
	archetype(axis.DomainStyle, "quiet_luxury", "Quiet Luxury",
		axis.Vector{"ornament": -0.8, "finish": -0.7, "chroma": -0.5, "presence": -0.4}),
	archetype(axis.DomainStyle, "maximalist", "Maximalist",
		axis.Vector{"ornament": 0.9, "chroma": 0.8, "presence": 0.8}),
	archetype(axis.DomainStyle, "heritage", "Heritage",
		axis.Vector{"era": -0.9, "shape": -0.4, "finish": 0.3}),
	archetype(axis.DomainStyle, "avant_garde", "Avant-Garde",
		axis.Vector{"era": 0.9, "presence": 0.7, "shape": 0.6}),
	archetype(axis.DomainStyle, "utility", "Utility",
		axis.Vector{"finish": 0.9, "shape": 0.5, "temperature": -0.2}),
	archetype(axis.DomainStyle, "romantic", "Romantic",
		axis.Vector{"temperature": 0.8, "shape": 0.6, "chroma": 0.3}),
}

var spaceArchetypes = []Archetype{
	archetype(axis.DomainSpace, "scandi_calm", "Scandi Calm",
		axis.Vector{"density": -0.8, "light": 0.7, "ornament": -0.5, "temperature": 0.2}),
	archetype(axis.DomainSpace, "warm_organic", "Warm Organic",
		axis.Vector{"material": 0.9, "geometry": 0.7, "temperature": 0.6}),
	archetype(axis.DomainSpace, "industrial_edge", "Industrial Edge",
		axis.Vector{"material": -0.9, "geometry": -0.8, "light": -0.4}),
	archetype(axis.DomainSpace, "grand_classic", "Grand Classic",
		axis.Vector{"formality": 0.9, "era": -0.7, "ornament": 0.6}),
	archetype(axis.DomainSpace, "eclectic_layered", "Eclectic Layered",
		axis.Vector{"density": 0.9, "chroma": 0.8, "ornament": 0.6}),
	archetype(axis.DomainSpace, "moody_noir", "Moody Noir",
		axis.Vector{"light": -0.9, "formality": 0.4, "chroma": -0.3}),
}

// Archetypes returns the duel archetypes for d in declaration order.
// It panics on an unknown domain.
func Archetypes(d axis.Domain) []Archetype {
	switch d {
	case axis.DomainStyle:
		return append([]Archetype(nil), styleArchetypes...)
	case axis.DomainSpace:
		return append([]Archetype(nil), spaceArchetypes...)
	default:
		panic("naming: unknown domain " + string(d))
	}
}

// ArchetypeByKey looks up an archetype of d by key.
func ArchetypeByKey(d axis.Domain, key string) (Archetype, bool) {
	for _, a := range Archetypes(d) {
		if a.Key == key {
			return a, true
		}
	}
	return Archetype{}, false
}
