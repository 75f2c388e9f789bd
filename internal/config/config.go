// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/tomtom215/tastegraph/internal/advisory"
	"github.com/tomtom215/tastegraph/internal/calibration"
	"github.com/tomtom215/tastegraph/internal/logging"
	"github.com/tomtom215/tastegraph/internal/recommend"
	"github.com/tomtom215/tastegraph/internal/reinforcement"
	"github.com/tomtom215/tastegraph/internal/remotesync"
	"github.com/tomtom215/tastegraph/internal/storage"
	"github.com/tomtom215/tastegraph/internal/validation"
)

// Config is the complete server configuration.
type Config struct {
	Server        ServerConfig        `koanf:"server"`
	Storage       StorageConfig       `koanf:"storage"`
	Catalog       CatalogConfig       `koanf:"catalog"`
	Reinforcement ReinforcementConfig `koanf:"reinforcement"`
	Ranking       RankingConfig       `koanf:"ranking"`
	Advisory      AdvisoryConfig      `koanf:"advisory"`
	Calibration   calibration.Config  `koanf:"calibration"`
	RemoteSync    RemoteSyncConfig    `koanf:"remote_sync"`
	Logging       LoggingConfig       `koanf:"logging"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host              string        `koanf:"host"`
	Port              int           `koanf:"port" validate:"min=1,max=65535"`
	ReadTimeout       time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout      time.Duration `koanf:"write_timeout" validate:"gt=0"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
	RateLimitRequests int           `koanf:"rate_limit_requests" validate:"min=1"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window" validate:"gt=0"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	FinalizeInterval  time.Duration `koanf:"finalize_interval" validate:"gt=0"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// StorageConfig holds BadgerDB settings.
type StorageConfig struct {
	Path       string `koanf:"path" validate:"required_without=InMemory"`
	InMemory   bool   `koanf:"in_memory"`
	SyncWrites bool   `koanf:"sync_writes"`
}

// Badger converts the section to store options.
func (s StorageConfig) Badger() storage.Options {
	return storage.Options{Path: s.Path, InMemory: s.InMemory, SyncWrites: s.SyncWrites}
}

// CatalogConfig selects the catalog source.
type CatalogConfig struct {
	// Path is a JSON catalog file. Empty uses the embedded catalog.
	Path string `koanf:"path"`
}

// ReinforcementConfig holds identity update rates.
type ReinforcementConfig struct {
	Alpha              float64       `koanf:"alpha"`
	Gamma              float64       `koanf:"gamma"`
	AlphaMaybe         float64       `koanf:"alpha_maybe"`
	FinalizeMultiplier float64       `koanf:"finalize_multiplier" validate:"gte=1"`
	Dwell              time.Duration `koanf:"dwell" validate:"gt=0"`
	AnchorCategories   []string      `koanf:"anchor_categories"`
}

// Policy converts the section to reinforcement parameters.
func (r ReinforcementConfig) Policy() reinforcement.Config {
	return reinforcement.Config{
		Alpha:              r.Alpha,
		Gamma:              r.Gamma,
		AlphaMaybe:         r.AlphaMaybe,
		FinalizeMultiplier: r.FinalizeMultiplier,
		Dwell:              r.Dwell,
		AnchorCategories:   append([]string(nil), r.AnchorCategories...),
	}
}

// RankingConfig holds ranking engine settings.
type RankingConfig struct {
	WeightAlignment float64       `koanf:"weight_alignment"`
	WeightRarity    float64       `koanf:"weight_rarity"`
	WeightCluster   float64       `koanf:"weight_cluster"`
	WeightContext   float64       `koanf:"weight_context"`
	MaxCategoryRun  int           `koanf:"max_category_run"`
	MMREnabled      bool          `koanf:"mmr_enabled"`
	MMRLambda       float64       `koanf:"mmr_lambda"`
	DefaultK        int           `koanf:"default_k"`
	MaxK            int           `koanf:"max_k"`
	CacheEnabled    bool          `koanf:"cache_enabled"`
	CacheTTL        time.Duration `koanf:"cache_ttl"`
	CacheMaxEntries int           `koanf:"cache_max_entries"`
}

// Engine converts the section to a ranking engine configuration.
func (r RankingConfig) Engine() *recommend.Config {
	return &recommend.Config{
		Weights: recommend.ScoreWeights{
			Alignment: r.WeightAlignment,
			Rarity:    r.WeightRarity,
			Cluster:   r.WeightCluster,
			Context:   r.WeightContext,
		},
		Diversity: recommend.DiversityConfig{
			MaxCategoryRun: r.MaxCategoryRun,
			MMREnabled:     r.MMREnabled,
			MMRLambda:      r.MMRLambda,
		},
		Limits: recommend.LimitsConfig{
			DefaultK: r.DefaultK,
			MaxK:     r.MaxK,
		},
		Cache: recommend.CacheConfig{
			Enabled:    r.CacheEnabled,
			TTL:        r.CacheTTL,
			MaxEntries: r.CacheMaxEntries,
		},
	}
}

// AdvisoryConfig holds advisory defaults.
type AdvisoryConfig struct {
	// DefaultLevel applies when a request names no level.
	DefaultLevel string `koanf:"default_level" validate:"advisory_level"`
}

// Level returns the parsed default level.
func (a AdvisoryConfig) Level() advisory.Level {
	l, err := advisory.ParseLevel(a.DefaultLevel)
	if err != nil {
		return advisory.LevelStandard
	}
	return l
}

// RemoteSyncConfig holds the optional remote identity store settings.
type RemoteSyncConfig struct {
	Enabled           bool          `koanf:"enabled"`
	URL               string        `koanf:"url" validate:"omitempty,url"`
	Timeout           time.Duration `koanf:"timeout" validate:"gt=0"`
	FetchTimeout      time.Duration `koanf:"fetch_timeout" validate:"gt=0"`
	RequestsPerSecond float64       `koanf:"requests_per_second" validate:"gt=0"`
	Burst             int           `koanf:"burst" validate:"min=1"`
	QueueSize         int           `koanf:"queue_size" validate:"min=1"`
	BatchSize         int           `koanf:"batch_size" validate:"min=1"`
	FlushInterval     time.Duration `koanf:"flush_interval" validate:"gt=0"`
}

// HTTP converts the section to client settings.
func (r RemoteSyncConfig) HTTP() remotesync.HTTPConfig {
	return remotesync.HTTPConfig{
		BaseURL:           r.URL,
		Timeout:           r.Timeout,
		RequestsPerSecond: r.RequestsPerSecond,
		Burst:             r.Burst,
	}
}

// Recorder converts the section to recorder settings.
func (r RemoteSyncConfig) Recorder() remotesync.RecorderConfig {
	return remotesync.RecorderConfig{
		QueueSize:     r.QueueSize,
		BatchSize:     r.BatchSize,
		FlushInterval: r.FlushInterval,
	}
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"loglevel"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// Logging converts the section to logger settings.
func (l LoggingConfig) Logging() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = l.Level
	cfg.Format = l.Format
	cfg.Caller = l.Caller
	return cfg
}

// Validate checks struct tags and then each section's own rules.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return verr
	}

	if c.RemoteSync.Enabled && c.RemoteSync.URL == "" {
		return fmt.Errorf("remote_sync.url is required when remote_sync.enabled is true")
	}

	policy := c.Reinforcement.Policy()
	if err := policy.Validate(); err != nil {
		return fmt.Errorf("reinforcement: %w", err)
	}
	if err := c.Ranking.Engine().Validate(); err != nil {
		return fmt.Errorf("ranking: %w", err)
	}
	if err := c.Calibration.Validate(); err != nil {
		return err
	}
	return nil
}
