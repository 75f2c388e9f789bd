// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

/*
Package services adapts Tastegraph components to suture's Serve(ctx) pattern.

  - HTTPServerService wraps an *http.Server and shuts it down gracefully
    when its context is canceled.
  - FinalizerService periodically finalizes pending votes whose dwell has
    elapsed across every active profile.

remotesync.Recorder already implements Serve and String and is added to the
tree directly.
*/
package services
