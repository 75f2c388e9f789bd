// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package axis

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownDomain is returned when a domain name is not recognized.
var ErrUnknownDomain = errors.New("axis: unknown domain")

// Domain is a content domain with its own axis set, vocabulary and word pools.
type Domain string

const (
	// DomainStyle covers apparel and accessories.
	DomainStyle Domain = "style"
	// DomainSpace covers interiors and furnishings.
	DomainSpace Domain = "space"
)

// Axis is one opposite-pole dimension.
type Axis struct {
	Key  string `json:"key"`
	Low  string `json:"low"`
	High string `json:"high"`
}

// Pole returns the pole label for the sign of v. Zero maps to the high pole.
func (a Axis) Pole(v float64) string {
	if v < 0 {
		return a.Low
	}
	return a.High
}

var styleAxes = []Axis{
	{Key: "ornament", Low: "minimal", High: "ornate"},
	{Key: "era", Low: "classic", High: "avant-garde"},
	{Key: "chroma", Low: "muted", High: "vivid"},
	{Key: "shape", Low: "structured", High: "relaxed"},
	{Key: "finish", Low: "refined", High: "rugged"},
	{Key: "temperature", Low: "cool", High: "warm"},
	{Key: "presence", Low: "understated", High: "statement"},
}

var spaceAxes = []Axis{
	{Key: "ornament", Low: "minimal", High: "ornate"},
	{Key: "era", Low: "classic", High: "avant-garde"},
	{Key: "chroma", Low: "muted", High: "vivid"},
	{Key: "temperature", Low: "cool", High: "warm"},
	{Key: "density", Low: "sparse", High: "layered"},
	{Key: "material", Low: "synthetic", High: "natural"},
	{Key: "geometry", Low: "angular", High: "organic"},
	{Key: "light", Low: "moody", High: "airy"},
	{Key: "formality", Low: "casual", High: "formal"},
}

// Domains lists every supported domain in a stable order.
func Domains() []Domain {
	return []Domain{DomainStyle, DomainSpace}
}

// ParseDomain parses a domain name, case-insensitively.
func ParseDomain(s string) (Domain, error) {
	d := Domain(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownDomain, s)
	}
	return d, nil
}

// Valid reports whether d is a supported domain.
func (d Domain) Valid() bool {
	return d == DomainStyle || d == DomainSpace
}

// String returns the domain name.
func (d Domain) String() string {
	return string(d)
}

// Axes returns the ordered axes of d. The returned slice must not be modified.
// It panics for an unknown domain.
func (d Domain) Axes() []Axis {
	switch d {
	case DomainStyle:
		return styleAxes
	case DomainSpace:
		return spaceAxes
	default:
		panic(fmt.Sprintf("axis: unknown domain %q", string(d)))
	}
}

// Len returns the number of axes in d.
func (d Domain) Len() int {
	return len(d.Axes())
}

// Index returns the position of the axis key in d, or -1.
func (d Domain) Index(key string) int {
	for i, a := range d.Axes() {
		if a.Key == key {
			return i
		}
	}
	return -1
}
