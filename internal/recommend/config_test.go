// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package recommend

import (
	"testing"
	"time"
)

func TestDefaultConfig_Valid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error = %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"negative weight", func(c *Config) { c.Weights.Rarity = -0.1 }, true},
		{"alignment not dominant", func(c *Config) { c.Weights.Cluster = 0.9 }, true},
		{"zero max run", func(c *Config) { c.Diversity.MaxCategoryRun = 0 }, true},
		{"mmr lambda out of range", func(c *Config) { c.Diversity.MMRLambda = 1.5 }, true},
		{"zero default k", func(c *Config) { c.Limits.DefaultK = 0 }, true},
		{"max k below default", func(c *Config) { c.Limits.MaxK = 5 }, true},
		{"zero ttl with cache", func(c *Config) { c.Cache.TTL = 0 }, true},
		{"zero ttl without cache", func(c *Config) { c.Cache.TTL = 0; c.Cache.Enabled = false }, false},
		{"longer ttl", func(c *Config) { c.Cache.TTL = time.Hour }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Clone(t *testing.T) {
	cfg := DefaultConfig()
	clone := cfg.Clone()
	clone.Limits.DefaultK = 99

	if cfg.Limits.DefaultK == 99 {
		t.Error("Clone() shares state with the original")
	}
}
