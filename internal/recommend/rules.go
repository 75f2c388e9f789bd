// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package recommend

import (
	"strings"

	"github.com/tomtom215/tastegraph/internal/axis"
)

// Stability mode thresholds.
const (
	volatileInteractions = 6
	volatileSeparation   = 0.05
	stableInteractions   = 14
	stableSeparation     = 0.15
)

// rarityBoost[tier][mode]: settled profiles are rewarded with rare finds,
// volatile ones with safe staples.
var rarityBoost = map[RarityTier]map[StabilityMode]float64{
	RarityCommon:  {ModeStable: 0.40, ModeNeutral: 0.60, ModeVolatile: 0.85},
	RarityLimited: {ModeStable: 0.70, ModeNeutral: 0.70, ModeVolatile: 0.55},
	RarityRare:    {ModeStable: 1.00, ModeNeutral: 0.75, ModeVolatile: 0.30},
}

// RarityBoost returns the boost for tier under mode. Unknown tiers count as common.
func RarityBoost(tier RarityTier, mode StabilityMode) float64 {
	row, ok := rarityBoost[tier]
	if !ok {
		row = rarityBoost[RarityCommon]
	}
	return row[mode]
}

// Cluster is a named linear combination over a domain's axes.
type Cluster struct {
	Key     string
	Label   string
	Weights map[string]float64
}

var clusters = map[axis.Domain][]Cluster{
	axis.DomainStyle: {
		{Key: "quiet_luxury", Label: "quiet luxury", Weights: map[string]float64{"ornament": -1, "finish": -1, "presence": -0.5, "chroma": -0.5}},
		{Key: "maximalist", Label: "maximalist", Weights: map[string]float64{"ornament": 1, "chroma": 1, "presence": 1}},
		{Key: "heritage", Label: "heritage", Weights: map[string]float64{"era": -1, "finish": 0.5, "temperature": 0.5}},
		{Key: "avant_garde", Label: "avant-garde", Weights: map[string]float64{"era": 1, "shape": 0.5, "presence": 0.7}},
		{Key: "utility", Label: "utility", Weights: map[string]float64{"finish": 1, "shape": 0.5, "chroma": -0.5}},
	},
	axis.DomainSpace: {
		{Key: "scandi_calm", Label: "Scandi calm", Weights: map[string]float64{"ornament": -1, "light": 1, "density": -1}},
		{Key: "warm_organic", Label: "warm organic", Weights: map[string]float64{"material": 1, "geometry": 1, "temperature": 1}},
		{Key: "industrial_edge", Label: "industrial edge", Weights: map[string]float64{"material": -1, "geometry": -1, "light": -0.5}},
		{Key: "grand_classic", Label: "grand classic", Weights: map[string]float64{"era": -1, "formality": 1, "ornament": 0.7}},
		{Key: "eclectic_layered", Label: "eclectic layered", Weights: map[string]float64{"density": 1, "chroma": 1, "formality": -0.5}},
	},
}

// Clusters returns the clusters declared for d.
func Clusters(d axis.Domain) []Cluster {
	return clusters[d]
}

// DominantCluster returns the cluster whose linear combination over s is
// largest. Ties go to the earlier cluster.
//
//nolint:gocritic // hugeParam: scores passed by value for immutability
func DominantCluster(s axis.Scores) Cluster {
	cs := clusters[s.Domain]
	if len(cs) == 0 {
		return Cluster{}
	}
	best, bestVal := 0, clusterValue(cs[0], s)
	for i := 1; i < len(cs); i++ {
		if v := clusterValue(cs[i], s); v > bestVal {
			best, bestVal = i, v
		}
	}
	return cs[best]
}

//nolint:gocritic // hugeParam: scores passed by value for immutability
func clusterValue(c Cluster, s axis.Scores) float64 {
	var v float64
	for i, a := range s.Domain.Axes() {
		v += c.Weights[a.Key] * s.Values[i]
	}
	return v
}

// contextRule lists the categories and materials that suit one axis pole.
type contextRule struct {
	Categories []string
	Materials  []string
}

// contextRules are keyed by "axis:low" or "axis:high".
var contextRules = map[axis.Domain]map[string]contextRule{
	axis.DomainStyle: {
		"ornament:low":     {Categories: []string{"tops", "trousers", "outerwear"}, Materials: []string{"cotton", "wool", "cashmere"}},
		"ornament:high":    {Categories: []string{"jewelry", "fine_jewelry", "dresses"}, Materials: []string{"silk", "velvet", "brocade"}},
		"era:low":          {Categories: []string{"outerwear", "shoes", "tailoring"}, Materials: []string{"wool", "leather", "tweed"}},
		"era:high":         {Categories: []string{"dresses", "accessories"}, Materials: []string{"technical", "vinyl", "mesh"}},
		"chroma:low":       {Categories: []string{"knitwear", "trousers"}, Materials: []string{"cashmere", "linen"}},
		"chroma:high":      {Categories: []string{"dresses", "accessories"}, Materials: []string{"silk", "sequins"}},
		"shape:low":        {Categories: []string{"tailoring", "outerwear"}, Materials: []string{"wool", "gabardine"}},
		"shape:high":       {Categories: []string{"knitwear", "tops"}, Materials: []string{"jersey", "cotton"}},
		"finish:low":       {Categories: []string{"tailoring", "fine_jewelry"}, Materials: []string{"silk", "cashmere"}},
		"finish:high":      {Categories: []string{"denim", "boots"}, Materials: []string{"leather", "denim", "canvas"}},
		"temperature:low":  {Categories: []string{"accessories", "shoes"}, Materials: []string{"silver", "nylon"}},
		"temperature:high": {Categories: []string{"knitwear", "outerwear"}, Materials: []string{"wool", "suede", "gold"}},
		"presence:low":     {Categories: []string{"tops", "trousers"}, Materials: []string{"cotton", "linen"}},
		"presence:high":    {Categories: []string{"jewelry", "outerwear", "dresses"}, Materials: []string{"sequins", "leather", "velvet"}},
	},
	axis.DomainSpace: {
		"ornament:low":     {Categories: []string{"storage", "seating"}, Materials: []string{"oak", "concrete"}},
		"ornament:high":    {Categories: []string{"lighting", "decor", "artwork"}, Materials: []string{"brass", "velvet", "porcelain"}},
		"era:low":          {Categories: []string{"furniture", "rugs"}, Materials: []string{"walnut", "marble", "brass"}},
		"era:high":         {Categories: []string{"lighting", "seating"}, Materials: []string{"acrylic", "steel", "resin"}},
		"chroma:low":       {Categories: []string{"textiles", "storage"}, Materials: []string{"linen", "oak", "plaster"}},
		"chroma:high":      {Categories: []string{"rugs", "artwork", "decor"}, Materials: []string{"velvet", "ceramic"}},
		"temperature:low":  {Categories: []string{"lighting", "tables"}, Materials: []string{"steel", "glass", "marble"}},
		"temperature:high": {Categories: []string{"textiles", "seating"}, Materials: []string{"wool", "walnut", "terracotta"}},
		"density:low":      {Categories: []string{"tables", "storage"}, Materials: []string{"oak", "glass"}},
		"density:high":     {Categories: []string{"textiles", "decor", "rugs"}, Materials: []string{"wool", "velvet"}},
		"material:low":     {Categories: []string{"lighting", "seating"}, Materials: []string{"steel", "acrylic", "resin"}},
		"material:high":    {Categories: []string{"furniture", "textiles"}, Materials: []string{"oak", "rattan", "linen", "stone"}},
		"geometry:low":     {Categories: []string{"tables", "storage"}, Materials: []string{"steel", "concrete"}},
		"geometry:high":    {Categories: []string{"seating", "lighting"}, Materials: []string{"rattan", "boucle", "ceramic"}},
		"light:low":        {Categories: []string{"lighting", "textiles"}, Materials: []string{"velvet", "walnut"}},
		"light:high":       {Categories: []string{"textiles", "decor"}, Materials: []string{"linen", "glass", "plaster"}},
		"formality:low":    {Categories: []string{"seating", "textiles"}, Materials: []string{"cotton", "rattan"}},
		"formality:high":   {Categories: []string{"furniture", "tables", "artwork"}, Materials: []string{"marble", "walnut", "brass"}},
	},
}

// poleKey returns the rule key for the dominant axis pole of s.
//
//nolint:gocritic // hugeParam: scores passed by value for immutability
func poleKey(s axis.Scores) string {
	i := s.Dominant()
	pole := "high"
	if s.Values[i] < 0 {
		pole = "low"
	}
	return s.Domain.Axes()[i].Key + ":" + pole
}

func containsFold(list []string, v string) bool {
	if v == "" {
		return false
	}
	for _, s := range list {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}
