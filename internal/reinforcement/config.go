// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package reinforcement

import (
	"fmt"
	"time"
)

// Config holds reinforcement rates and the anchor policy.
type Config struct {
	// Alpha is the confirm blend rate on the positive embedding.
	Alpha float64

	// Gamma is the reject blend rate on the anti-embedding.
	Gamma float64

	// AlphaMaybe is the weak confirm blend rate.
	AlphaMaybe float64

	// FinalizeMultiplier amplifies the original rate when a pending record is finalized.
	FinalizeMultiplier float64

	// Dwell is the cooling-off period before an anchor vote unlocks.
	Dwell time.Duration

	// AnchorCategories are high-commitment categories whose votes are deferred.
	AnchorCategories []string
}

// DefaultConfig returns the standard reinforcement parameters.
func DefaultConfig() Config {
	return Config{
		Alpha:              0.18,
		Gamma:              0.14,
		AlphaMaybe:         0.05,
		FinalizeMultiplier: 1.8,
		Dwell:              14 * 24 * time.Hour,
		AnchorCategories:   []string{"furniture", "fine_jewelry", "outerwear", "artwork"},
	}
}

// Validate checks that rates stay in (0, 1] after amplification.
func (c *Config) Validate() error {
	rates := map[string]float64{
		"alpha":       c.Alpha,
		"gamma":       c.Gamma,
		"alpha_maybe": c.AlphaMaybe,
	}
	for name, r := range rates {
		if r <= 0 || r > 1 {
			return fmt.Errorf("%s must be in (0, 1], got %f", name, r)
		}
		if r*c.FinalizeMultiplier > 1 {
			return fmt.Errorf("%s amplified by finalize_multiplier exceeds 1", name)
		}
	}
	if c.FinalizeMultiplier < 1 {
		return fmt.Errorf("finalize_multiplier must be at least 1, got %f", c.FinalizeMultiplier)
	}
	if c.Dwell < 0 {
		return fmt.Errorf("dwell must not be negative, got %s", c.Dwell)
	}
	return nil
}
