// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

/*
Package session owns the per-profile state of a running server.

A Registry holds one reinforcement.Service per profile and at most one active
calibration.Session per profile and domain. Services are created lazily on
first use: the identity and pending queue are loaded from the store, and when
a remote client is configured its snapshot is merged in (the newer version
wins, ties go to the remote side). The Registry is the only place that
constructs services, which keeps the single-writer guarantee of
reinforcement.Service intact across HTTP handlers and background sweeps.

Usage:

	reg := session.NewRegistry(store, policy, logger,
		session.WithRemote(client),
		session.WithRecorder(recorder),
	)

	svc, err := reg.Service(ctx, "profile-1")
	if err != nil {
		return err
	}
	identity, pending, err := svc.Apply(ctx, feedback)

	profile, err := reg.Profile(ctx, "profile-1", axis.DomainStyle)

Persistence and remote failures are logged and degrade to "no data"; they are
never returned from Service or Profile.
*/
package session
