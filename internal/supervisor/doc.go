// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

/*
Package supervisor runs the long-lived parts of Tastegraph under a suture v4
supervisor tree.

The tree has three layers so a failure in one does not take down the others:

	RootSupervisor ("tastegraph")
	├── StateSupervisor ("state-layer")
	│   └── FinalizerService
	├── SyncSupervisor ("sync-layer")
	│   └── remotesync.Recorder (if REMOTE_SYNC_ENABLED)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with suture's backoff. Supervisor events are
logged through sutureslog, which takes an *slog.Logger; build one from the
zerolog global with logging.NewSlogLogger.

# Usage

	slogger := logging.NewSlogLogger(logging.Logger())
	tree, err := supervisor.NewSupervisorTree(slogger, supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddStateService(services.NewFinalizerService(registry, time.Hour, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	return tree.Serve(ctx)
*/
package supervisor
