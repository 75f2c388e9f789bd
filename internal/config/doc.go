// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

/*
Package config loads and validates the Tastegraph server configuration.

# Configuration Sources

Configuration is layered with knadh/koanf v2, later layers overriding
earlier ones:

 1. Built-in defaults (the structs provider reading koanf tags)
 2. An optional YAML file: $CONFIG_PATH, ./config.yaml, ./config.yml,
    /etc/tastegraph/config.yaml, /etc/tastegraph/config.yml
 3. Environment variables from an explicit allow-list

# Sections

  - server: HTTP listener, timeouts, rate limiting, CORS, sweep interval
  - storage: BadgerDB location and durability
  - catalog: catalog file (empty uses the embedded catalog)
  - reinforcement: blend rates, dwell period and anchor categories
  - ranking: score weights, diversification, K limits, response cache
  - advisory: default advisory level
  - calibration: duel counts, completion threshold and session retention
  - remote_sync: optional remote identity store
  - logging: level, format, caller

# Environment Variables

Server:
  - HTTP_HOST, HTTP_PORT: bind address (default 0.0.0.0:3857)
  - HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
  - CORS_ORIGINS: comma-separated origins (default *)
  - FINALIZE_INTERVAL: pending reinforcement sweep interval (default 1h)

Storage and catalog:
  - BADGER_PATH, BADGER_IN_MEMORY, BADGER_SYNC_WRITES
  - CATALOG_PATH

Model:
  - REINFORCE_ALPHA, REINFORCE_GAMMA, REINFORCE_ALPHA_MAYBE,
    REINFORCE_FINALIZE_MULTIPLIER, REINFORCE_DWELL, ANCHOR_CATEGORIES
  - RANK_DEFAULT_K, RANK_MAX_K, RANK_MAX_CATEGORY_RUN, RANK_MMR_ENABLED,
    RANK_MMR_LAMBDA, RANK_CACHE_ENABLED, RANK_CACHE_TTL, RANK_CACHE_SIZE
  - ADVISORY_LEVEL
  - CALIBRATION_MIN_DUELS, CALIBRATION_MAX_DUELS,
    CALIBRATION_AFFINITY_THRESHOLD, CALIBRATION_DUEL_WEIGHT,
    CALIBRATION_SESSION_TTL, CALIBRATION_MAX_SESSIONS

Remote sync:
  - REMOTE_SYNC_ENABLED, REMOTE_SYNC_URL, REMOTE_SYNC_TIMEOUT,
    REMOTE_SYNC_RPS, REMOTE_SYNC_BURST, REMOTE_SYNC_QUEUE_SIZE,
    REMOTE_SYNC_BATCH_SIZE, REMOTE_SYNC_FLUSH_INTERVAL

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

Unlisted environment variables are ignored.

# Usage

	cfg, err := config.Load()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	engine, err := recommend.NewEngine(cfg.Ranking.Engine(), logger)
*/
package config
