// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

/*
Package main is the entry point for the Tastegraph server.

Tastegraph learns a per-profile taste identity from explicit votes, calibrates
named archetypes through swipe and duel sessions, and ranks a product catalog
against the result. Every score is deterministic for a given state and
catalog, so the same profile always sees the same ordering.

# Application Architecture

The server runs under a Suture v4 supervisor tree:

	RootSupervisor ("tastegraph")
	├── StateSupervisor ("state-layer")
	│   └── Pending finalizer (anchor votes past their dwell)
	├── SyncSupervisor ("sync-layer")
	│   └── Remote event recorder (optional, REMOTE_SYNC_ENABLED)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (chi router)

Component initialization order:

 1. Configuration: Koanf v2 with environment variables and config file
 2. Logging: zerolog with JSON or console output
 3. Storage: BadgerDB (on disk or in memory)
 4. Catalog: JSON file or the embedded default catalog
 5. Ranking engine: weighted scoring with MMR and category-run rerankers
 6. Remote sync (optional): rate limited HTTP client with a circuit breaker
 7. Session registry: preloads stored identities
 8. Supervisor tree and HTTP server

# Configuration

Configuration is loaded via Koanf v2 (highest priority wins):

	Priority: Environment variables > Config file > Defaults

Core environment variables:

	HTTP_PORT=3857               # HTTP listen port
	BADGER_PATH=/data/badger     # identity store directory
	BADGER_IN_MEMORY=false       # keep everything in memory
	CATALOG_PATH=                # JSON catalog; empty uses the embedded one
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console
	REMOTE_SYNC_ENABLED=false    # mirror identities to a remote store
	REMOTE_SYNC_URL=             # remote store base URL

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains in-flight
requests, the recorder flushes its queue, and the store is closed last.
*/
package main
