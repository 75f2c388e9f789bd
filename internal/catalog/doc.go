// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

// Package catalog loads ranking candidates and serves them to the engine.
//
// A Source produces raw items: FileSource reads a JSON document from disk and
// EmbeddedSource serves the catalog compiled into the binary. Catalog wraps a
// Source, validates and indexes its items by domain, and caches them for the
// process lifetime. Reset drops the cache so the next request reloads.
//
// # Document Format
//
//	{
//	  "version": 1,
//	  "items": [
//	    {"id": "st-wool-overcoat", "domain": "style", "category": "outerwear",
//	     "material": "wool", "axes": {"ornament": -0.8}, "clusters": ["quiet_luxury"],
//	     "rarity": "rare", "released_at": "2025-10-01T00:00:00Z"}
//	  ]
//	}
//
// Items may give "tags" instead of "axes"; their axis weights are then derived
// with the axis mapper. Items with an unknown domain, an unknown rarity, a
// missing id or a duplicate id are skipped and logged.
package catalog
