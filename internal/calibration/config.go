// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package calibration

import (
	"fmt"
	"time"
)

// Config holds the duel phase parameters.
type Config struct {
	// MinDuels is the number of duels played before affinity may end the session.
	MinDuels int `json:"min_duels" koanf:"min_duels"`

	// MaxDuels ends the session regardless of affinity.
	MaxDuels int `json:"max_duels" koanf:"max_duels"`

	// AffinityThreshold is the top archetype win share that ends the session
	// once MinDuels is reached.
	AffinityThreshold float64 `json:"affinity_threshold" koanf:"affinity_threshold"`

	// DuelWeight scales the winner's signature added per duel.
	DuelWeight float64 `json:"duel_weight" koanf:"duel_weight"`

	// SessionTTL is how long an in-memory session is kept after it was
	// last started or read. Completed records outlive it in the store.
	SessionTTL time.Duration `json:"session_ttl" koanf:"session_ttl"`

	// MaxSessions caps the in-memory sessions across all profiles.
	MaxSessions int `json:"max_sessions" koanf:"max_sessions"`
}

// DefaultConfig returns the standard calibration parameters.
func DefaultConfig() Config {
	return Config{
		MinDuels:          6,
		MaxDuels:          12,
		AffinityThreshold: 0.3,
		DuelWeight:        0.15,
		SessionTTL:        2 * time.Hour,
		MaxSessions:       10000,
	}
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	if c.MinDuels < 1 {
		return fmt.Errorf("calibration.min_duels must be positive, got %d", c.MinDuels)
	}
	if c.MaxDuels < c.MinDuels {
		return fmt.Errorf("calibration.max_duels (%d) must be >= calibration.min_duels (%d)", c.MaxDuels, c.MinDuels)
	}
	if c.AffinityThreshold <= 0 || c.AffinityThreshold > 1 {
		return fmt.Errorf("calibration.affinity_threshold must be in (0, 1], got %f", c.AffinityThreshold)
	}
	if c.DuelWeight <= 0 || c.DuelWeight > 1 {
		return fmt.Errorf("calibration.duel_weight must be in (0, 1], got %f", c.DuelWeight)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("calibration.session_ttl must be positive, got %s", c.SessionTTL)
	}
	if c.MaxSessions < 1 {
		return fmt.Errorf("calibration.max_sessions must be positive, got %d", c.MaxSessions)
	}
	return nil
}
