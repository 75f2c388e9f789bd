// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package naming

import "github.com/tomtom215/tastegraph/internal/axis"

// grammar holds the two word pools a name is assembled from, in output order.
type grammar struct {
	firstSalt  string
	first      []string
	secondSalt string
	second     []string
}

// Style names read "{context} {descriptor}".
var styleGrammar = grammar{
	firstSalt: "context",
	first: []string{
		"Gallery", "Harbor", "Atelier", "Boulevard", "Archive", "Coastline",
		"Midnight", "Orchard", "Metro", "Salon", "Runway", "Library",
	},
	secondSalt: "descriptor",
	second: []string{
		"Purist", "Romantic", "Rebel", "Classicist", "Wanderer", "Tactician",
		"Dreamer", "Curator", "Minimalist", "Maverick", "Archivist", "Idealist",
	},
}

// Space names read "{behavior} {tone}".
var spaceGrammar = grammar{
	firstSalt: "behavior",
	first: []string{
		"Layered", "Sunlit", "Grounded", "Collected", "Quiet", "Curated",
		"Open", "Nested", "Gathered", "Weathered",
	},
	secondSalt: "tone",
	second: []string{
		"Sanctuary", "Loft", "Haven", "Salon", "Retreat", "Atelier",
		"Den", "Gallery", "Hideaway", "Studio",
	},
}

func grammarFor(d axis.Domain) grammar {
	if d == axis.DomainSpace {
		return spaceGrammar
	}
	return styleGrammar
}
