// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

// Package logging provides the process-wide zerolog logger for Tastegraph.
//
// Every component receives a zerolog.Logger at construction and derives a
// child with a "component" field. This package owns the root of that tree:
// it configures level, format and field names once at startup, carries
// request-scoped identifiers through context.Context, and adapts zerolog to
// log/slog for libraries that only speak slog (the suture supervisor, via
// sutureslog).
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	engine, err := recommend.NewEngine(cfg, logging.Logger())
//
//	// In HTTP handlers, request ids are attached by middleware:
//	logging.Ctx(r.Context()).Info().Str("profile_id", id).Msg("vote applied")
//
// # Configuration
//
// The logging section of the server configuration maps onto Config:
//
//	logging.level   trace, debug, info, warn, error (default: info)
//	logging.format  json, console (default: json)
//	logging.caller  include caller file:line (default: false)
//
// # Field Names
//
// Output uses "time", "level", "message", "error" and "caller" keys with
// RFC 3339 timestamps, so JSON logs from every component share one schema.
package logging
