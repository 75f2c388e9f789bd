// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/tastegraph/internal/calibration"
	"github.com/tomtom215/tastegraph/internal/recommend"
	"github.com/tomtom215/tastegraph/internal/reinforcement"
	"github.com/tomtom215/tastegraph/internal/remotesync"
)

// DefaultConfigPaths lists config file locations in priority order. The first
// file found is used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/tastegraph/config.yaml",
	"/etc/tastegraph/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns the built-in defaults. Model parameters come from the
// owning packages so there is a single source for each constant.
func defaultConfig() *Config {
	policy := reinforcement.DefaultConfig()
	ranking := recommend.DefaultConfig()
	recorder := remotesync.DefaultRecorderConfig()

	return &Config{
		Server: ServerConfig{
			Host:              "0.0.0.0",
			Port:              3857,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			ShutdownTimeout:   10 * time.Second,
			RateLimitRequests: 120,
			RateLimitWindow:   time.Minute,
			CORSOrigins:       []string{"*"},
			FinalizeInterval:  time.Hour,
		},
		Storage: StorageConfig{
			Path: "/data/tastegraph",
		},
		Reinforcement: ReinforcementConfig{
			Alpha:              policy.Alpha,
			Gamma:              policy.Gamma,
			AlphaMaybe:         policy.AlphaMaybe,
			FinalizeMultiplier: policy.FinalizeMultiplier,
			Dwell:              policy.Dwell,
			AnchorCategories:   policy.AnchorCategories,
		},
		Ranking: RankingConfig{
			WeightAlignment: ranking.Weights.Alignment,
			WeightRarity:    ranking.Weights.Rarity,
			WeightCluster:   ranking.Weights.Cluster,
			WeightContext:   ranking.Weights.Context,
			MaxCategoryRun:  ranking.Diversity.MaxCategoryRun,
			MMREnabled:      ranking.Diversity.MMREnabled,
			MMRLambda:       ranking.Diversity.MMRLambda,
			DefaultK:        ranking.Limits.DefaultK,
			MaxK:            ranking.Limits.MaxK,
			CacheEnabled:    ranking.Cache.Enabled,
			CacheTTL:        ranking.Cache.TTL,
			CacheMaxEntries: ranking.Cache.MaxEntries,
		},
		Advisory: AdvisoryConfig{
			DefaultLevel: "standard",
		},
		Calibration: calibration.DefaultConfig(),
		RemoteSync: RemoteSyncConfig{
			Enabled:           false,
			Timeout:           10 * time.Second,
			FetchTimeout:      3 * time.Second,
			RequestsPerSecond: 5,
			Burst:             10,
			QueueSize:         recorder.QueueSize,
			BatchSize:         recorder.BatchSize,
			FlushInterval:     recorder.FlushInterval,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads configuration from defaults, an optional YAML file and the
// environment, in that order of precedence, and validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns $CONFIG_PATH if it exists, otherwise the first
// default path that exists, otherwise "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed from comma-separated environment values.
var sliceConfigPaths = []string{
	"server.cors_origins",
	"reinforcement.anchor_categories",
}

// processSliceFields splits comma-separated strings for known slice fields.
// Values that are already slices (from YAML) are left alone.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to config paths.
var envMappings = map[string]string{
	"http_host":             "server.host",
	"http_port":             "server.port",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"rate_limit_requests":   "server.rate_limit_requests",
	"rate_limit_window":     "server.rate_limit_window",
	"disable_rate_limit":    "server.rate_limit_disabled",
	"cors_origins":          "server.cors_origins",
	"finalize_interval":     "server.finalize_interval",

	"badger_path":        "storage.path",
	"badger_in_memory":   "storage.in_memory",
	"badger_sync_writes": "storage.sync_writes",

	"catalog_path": "catalog.path",

	"reinforce_alpha":               "reinforcement.alpha",
	"reinforce_gamma":               "reinforcement.gamma",
	"reinforce_alpha_maybe":         "reinforcement.alpha_maybe",
	"reinforce_finalize_multiplier": "reinforcement.finalize_multiplier",
	"reinforce_dwell":               "reinforcement.dwell",
	"anchor_categories":             "reinforcement.anchor_categories",

	"rank_default_k":        "ranking.default_k",
	"rank_max_k":            "ranking.max_k",
	"rank_max_category_run": "ranking.max_category_run",
	"rank_mmr_enabled":      "ranking.mmr_enabled",
	"rank_mmr_lambda":       "ranking.mmr_lambda",
	"rank_cache_enabled":    "ranking.cache_enabled",
	"rank_cache_ttl":        "ranking.cache_ttl",
	"rank_cache_size":       "ranking.cache_max_entries",

	"advisory_level": "advisory.default_level",

	"calibration_min_duels":          "calibration.min_duels",
	"calibration_max_duels":          "calibration.max_duels",
	"calibration_affinity_threshold": "calibration.affinity_threshold",
	"calibration_duel_weight":        "calibration.duel_weight",
	"calibration_session_ttl":        "calibration.session_ttl",
	"calibration_max_sessions":       "calibration.max_sessions",

	"remote_sync_enabled":        "remote_sync.enabled",
	"remote_sync_url":            "remote_sync.url",
	"remote_sync_timeout":        "remote_sync.timeout",
	"remote_sync_fetch_timeout":  "remote_sync.fetch_timeout",
	"remote_sync_rps":            "remote_sync.requests_per_second",
	"remote_sync_burst":          "remote_sync.burst",
	"remote_sync_queue_size":     "remote_sync.queue_size",
	"remote_sync_batch_size":     "remote_sync.batch_size",
	"remote_sync_flush_interval": "remote_sync.flush_interval",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps an environment variable name to its config path.
// Unmapped variables return "" and are skipped, so unrelated environment
// never leaks into the configuration.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
