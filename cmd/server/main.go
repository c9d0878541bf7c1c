// Between Us - Couples Companion Content Engine
// Copyright 2026 Brit Hornick (brithornick92-max)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/brithornick92-max/BetweenUs-sub001

// Package main is the entry point for the Between Us content engine server.
//
// The server ranks and selects couples content (conversation prompts and
// date ideas) from preference signals: it builds a profile per request,
// filters the catalog against hard boundaries, scores the remainder, and
// serves a deterministic daily prompt plus weighted-random surprise picks
// over a REST API.
//
// # Startup order
//
//  1. Configuration: layered Koanf v2 load (defaults, config.yaml, env vars)
//  2. Logging: zerolog, JSON or console format
//  3. Catalog: embedded seed data, optionally overridden by JSON files
//  4. History store: BadgerDB for month buckets and ratings
//  5. Engine: the selection pipeline
//  6. Supervisor tree: HTTP server and storage maintenance under suture
//
// # Configuration
//
// Environment variables override the config file; see internal/config for
// the full key list. The essentials:
//
//	HTTP_PORT=8600            # listen port
//	STORAGE_PATH=data/history # badger directory
//	STORAGE_IN_MEMORY=true    # ephemeral store for development
//	CATALOG_PROMPTS_PATH=...  # optional catalog override files
//	CATALOG_DATES_PATH=...
//	LOG_LEVEL=info
//
// # Signal handling
//
// SIGINT and SIGTERM trigger graceful shutdown: the HTTP server drains
// in-flight requests within the configured timeout, then the history store
// closes.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brithornick92-max/BetweenUs-sub001/internal/api"
	"github.com/brithornick92-max/BetweenUs-sub001/internal/catalog"
	"github.com/brithornick92-max/BetweenUs-sub001/internal/config"
	"github.com/brithornick92-max/BetweenUs-sub001/internal/engine"
	"github.com/brithornick92-max/BetweenUs-sub001/internal/history"
	"github.com/brithornick92-max/BetweenUs-sub001/internal/logging"
	"github.com/brithornick92-max/BetweenUs-sub001/internal/metrics"
	"github.com/brithornick92-max/BetweenUs-sub001/internal/supervisor"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", version).
		Str("addr", cfg.Server.Addr()).
		Bool("storage_in_memory", cfg.Storage.InMemory).
		Msg("Starting Between Us content engine")

	cat, err := loadCatalog(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load catalog")
	}
	stats := cat.Stats()
	metrics.SetCatalogSize("prompt", stats.Prompts, 0)
	metrics.SetCatalogSize("date", stats.DateIdeas, stats.DroppedOnIngestion)

	store, err := history.Open(cfg.Storage, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open history store")
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing history store")
		}
	}()

	eng, err := engine.New(cfg.Engine, store, store, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create selection engine")
	}

	handler := api.NewHandler(eng, cat, store, logging.Logger())
	router := api.NewRouter(handler, api.MiddlewareConfig{
		CORSOrigins:       cfg.Server.CORSOrigins,
		RateLimitRequests: cfg.Server.RateLimitReqs,
		RateLimitWindow:   cfg.Server.RateLimitWindow,
	}, logging.Logger())

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  2 * cfg.Server.Timeout,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics.SetAppInfo(version)
	go metrics.TrackUptime(ctx, time.Now(), 15*time.Second)

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddStorageService(supervisor.NewMaintenanceService(store, cfg.Storage.GCInterval, logging.Logger()))
	tree.AddAPIService(supervisor.NewHTTPService(server, cfg.Server.ShutdownTimeout))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutting down, waiting for services to stop")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Drain until the supervisor has fully stopped.
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	logging.Info().Msg("Stopped gracefully")
}

// loadCatalog loads either the embedded seed catalog or the configured
// override files.
func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.Catalog.PromptsPath == "" && cfg.Catalog.DatesPath == "" {
		return catalog.Load(logging.Logger())
	}
	cat, err := catalog.LoadFromFiles(cfg.Catalog.PromptsPath, cfg.Catalog.DatesPath, logging.Logger())
	if err != nil {
		return nil, fmt.Errorf("catalog override files: %w", err)
	}
	return cat, nil
}
