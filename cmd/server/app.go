// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/tomtom215/tastegraph/internal/api"
	"github.com/tomtom215/tastegraph/internal/catalog"
	"github.com/tomtom215/tastegraph/internal/config"
	"github.com/tomtom215/tastegraph/internal/logging"
	"github.com/tomtom215/tastegraph/internal/recommend"
	"github.com/tomtom215/tastegraph/internal/recommend/reranking"
	"github.com/tomtom215/tastegraph/internal/reinforcement"
	"github.com/tomtom215/tastegraph/internal/remotesync"
	"github.com/tomtom215/tastegraph/internal/session"
	"github.com/tomtom215/tastegraph/internal/storage"
	"github.com/tomtom215/tastegraph/internal/supervisor"
	"github.com/tomtom215/tastegraph/internal/supervisor/services"
)

// application holds the wired components. Close releases the store.
type application struct {
	store    *storage.BadgerStore
	catalog  *catalog.Catalog
	engine   *recommend.Engine
	registry *session.Registry
	recorder *remotesync.Recorder
	server   *http.Server
	tree     *supervisor.SupervisorTree
	logger   zerolog.Logger
}

// buildApp wires every component from cfg. Nothing is served until the
// returned tree is started.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func buildApp(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*application, error) {
	app := &application{logger: logger}

	store, err := storage.OpenBadger(cfg.Storage.Badger(), logger)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	app.store = store

	if err := app.initCatalog(ctx, cfg); err != nil {
		app.Close()
		return nil, err
	}
	if err := app.initRanking(cfg); err != nil {
		app.Close()
		return nil, err
	}
	if err := app.initRegistry(ctx, cfg); err != nil {
		app.Close()
		return nil, err
	}
	if err := app.initServer(cfg); err != nil {
		app.Close()
		return nil, err
	}
	if err := app.initTree(cfg); err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

// initCatalog loads the catalog. A failed load is logged but not fatal: the
// health endpoint reports degraded until POST /catalog/reset succeeds.
func (a *application) initCatalog(ctx context.Context, cfg *config.Config) error {
	var src catalog.Source = catalog.NewEmbeddedSource()
	if cfg.Catalog.Path != "" {
		src = catalog.NewFileSource(cfg.Catalog.Path)
	}
	a.catalog = catalog.New(src, a.logger)

	if err := a.catalog.Load(ctx); err != nil {
		a.logger.Warn().Err(err).Str("source", src.Name()).Msg("catalog load failed, starting degraded")
		return nil
	}
	a.logger.Info().Str("source", src.Name()).Int("items", a.catalog.Len()).Msg("catalog loaded")
	return nil
}

// initRanking creates the engine and registers rerankers. MMR runs before
// the category-run limiter so the limiter has the final say on adjacency.
func (a *application) initRanking(cfg *config.Config) error {
	engineCfg := cfg.Ranking.Engine()
	engine, err := recommend.NewEngine(engineCfg, a.logger)
	if err != nil {
		return fmt.Errorf("create ranking engine: %w", err)
	}

	if engineCfg.Diversity.MMREnabled {
		engine.RegisterReranker(reranking.NewMMR(engineCfg.Diversity.MMRLambda))
	}
	engine.RegisterReranker(reranking.NewCategoryRuns(engineCfg.Diversity.MaxCategoryRun))
	engine.SetCatalog(a.catalog)

	a.engine = engine
	a.logger.Info().
		Bool("mmr", engineCfg.Diversity.MMREnabled).
		Int("max_category_run", engineCfg.Diversity.MaxCategoryRun).
		Bool("cache", engineCfg.Cache.Enabled).
		Msg("ranking engine initialized")
	return nil
}

func (a *application) initRegistry(ctx context.Context, cfg *config.Config) error {
	opts := []session.Option{
		session.WithCalibrationConfig(cfg.Calibration),
		session.WithRemoteTimeout(cfg.RemoteSync.FetchTimeout),
	}

	if cfg.RemoteSync.Enabled {
		client, err := remotesync.NewHTTPClient(cfg.RemoteSync.HTTP(), a.logger)
		if err != nil {
			return fmt.Errorf("create remote sync client: %w", err)
		}
		a.recorder = remotesync.NewRecorder(client, cfg.RemoteSync.Recorder(), a.logger)
		opts = append(opts, session.WithRemote(client), session.WithRecorder(a.recorder))
		a.logger.Info().Str("url", cfg.RemoteSync.URL).Msg("remote sync enabled")
	}

	policy := reinforcement.NewPolicy(cfg.Reinforcement.Policy())
	a.registry = session.NewRegistry(a.store, policy, a.logger, opts...)

	n, err := a.registry.Preload(ctx)
	if err != nil {
		a.logger.Warn().Err(err).Msg("identity preload failed")
		return nil
	}
	a.logger.Info().Int("profiles", n).Msg("identities preloaded")
	return nil
}

func (a *application) initServer(cfg *config.Config) error {
	handler, err := api.NewHandler(api.HandlerDeps{
		Registry:     a.registry,
		Engine:       a.engine,
		Catalog:      a.catalog,
		DefaultLevel: cfg.Advisory.Level(),
	}, a.logger)
	if err != nil {
		return fmt.Errorf("create api handler: %w", err)
	}

	mwCfg := api.DefaultChiMiddlewareConfig()
	mwCfg.CORSAllowedOrigins = cfg.Server.CORSOrigins
	mwCfg.RateLimitRequests = cfg.Server.RateLimitRequests
	mwCfg.RateLimitWindow = cfg.Server.RateLimitWindow
	mwCfg.RateLimitDisabled = cfg.Server.RateLimitDisabled

	router := api.NewRouter(handler, api.NewChiMiddleware(mwCfg))
	a.server = &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.Handler(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}
	return nil
}

func (a *application) initTree(cfg *config.Config) error {
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(a.logger), supervisor.DefaultTreeConfig())
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	tree.AddStateService(services.NewFinalizerService(a.registry, cfg.Server.FinalizeInterval, a.logger))
	if a.recorder != nil {
		tree.AddSyncService(a.recorder)
	}
	tree.AddAPIService(services.NewHTTPServerService(a.server, cfg.Server.ShutdownTimeout, a.logger))

	a.tree = tree
	return nil
}

// Close releases the store. It is safe to call on a partially built app.
func (a *application) Close() {
	if a.store == nil {
		return
	}
	if err := a.store.Close(); err != nil {
		a.logger.Error().Err(err).Msg("Error closing store")
	}
	a.store = nil
}
