// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/timelytourist/internal/api"
	"github.com/tomtom215/timelytourist/internal/cache"
	"github.com/tomtom215/timelytourist/internal/config"
	"github.com/tomtom215/timelytourist/internal/logging"
	"github.com/tomtom215/timelytourist/internal/metrics"
	"github.com/tomtom215/timelytourist/internal/recommend"
	"github.com/tomtom215/timelytourist/internal/recommend/storage"
	"github.com/tomtom215/timelytourist/internal/supervisor"
	"github.com/tomtom215/timelytourist/internal/supervisor/services"
	ws "github.com/tomtom215/timelytourist/internal/websocket"
)

// version is set at build time with -ldflags "-X main.version=...".
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

	os.Exit(run(context.Background(), cfg))
}

// run serves until parent is cancelled or SIGINT/SIGTERM arrives and
// returns the process exit code. Deferred cleanup finishes before it
// returns.
func run(parent context.Context, cfg *config.Config) int {
	logging.Info().Str("version", version).Str("config", cfg.String()).Msg("Starting Timely Tourist")
	metrics.SetAppInfo(version)

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.NewStore(cfg.Artifacts.Dir)
	if err != nil {
		logging.Error().Err(err).Str("dir", cfg.Artifacts.Dir).Msg("Failed to open artifact store")
		return 1
	}

	loadStart := time.Now()
	engine, err := recommend.LoadEngine(ctx, store, engineConfig(cfg), logging.WithComponent("recommend"))
	if err != nil {
		logging.Error().Err(err).Msg("Failed to load recommendation engine")
		return 1
	}
	engine.SetObserver(metrics.EngineObserver{})
	manifest := engine.Manifest()
	metrics.RecordEngineLoad(snapshotOf(&manifest, time.Since(loadStart)))

	var history api.ActivationHistory
	reg, err := openRegistry(cfg)
	if err != nil {
		logging.Error().Err(err).Str("path", cfg.Registry.Path).Msg("Failed to open activation registry")
		return 1
	}
	if reg != nil {
		defer func() {
			if err := reg.Close(); err != nil {
				logging.Error().Err(err).Msg("Failed to close activation registry")
			}
		}()
		activation := activationOf(&manifest)
		if err := reg.Record(ctx, activation); err != nil {
			// The engine is usable without a history entry.
			logging.Error().Err(err).Msg("Failed to record engine activation")
		} else {
			logging.Info().Str("activation_id", activation.ID).Msg("Engine activation recorded")
		}
		history = reg
	} else {
		logging.Info().Msg("Activation registry disabled (REGISTRY_PATH empty)")
	}

	var served ws.Recommender = engine
	if cfg.Recommend.CacheSize > 0 {
		served = cache.NewRecommender(engine, cfg.Recommend.CacheSize)
	}

	hub := ws.NewHub(served, ws.Options{
		DefaultK:        cfg.Recommend.DefaultK,
		MaxK:            cfg.Recommend.MaxK,
		EventsPerSecond: cfg.WebSocket.EventsPerSecond,
		Burst:           cfg.WebSocket.Burst,
	})

	handler := api.NewHandler(cfg, served, api.HandlerOptions{
		History: history,
		Hub:     hub,
		Version: version,
	})
	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFrom(&cfg.Security))).Setup()

	tree := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if reg != nil {
		tree.AddDataService(services.NewRegistryGCService(reg, cfg.Registry.GCInterval))
	}
	tree.AddMessagingService(services.NewWebSocketHubService(hub))
	tree.AddAPIService(services.NewHTTPServerService(func() services.HTTPServer {
		return &http.Server{
			Addr:              cfg.Server.Addr(),
			Handler:           router,
			ReadTimeout:       cfg.Server.ReadTimeout,
			ReadHeaderTimeout: cfg.Server.ReadTimeout,
			WriteTimeout:      cfg.Server.WriteTimeout,
			IdleTimeout:       cfg.Server.IdleTimeout,
		}
	}, cfg.Server.ShutdownTimeout))

	logging.Info().Str("addr", cfg.Server.Addr()).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	// errCh delivers exactly one value, when the tree has stopped.
	var treeErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, stopping services")
		treeErr = <-errCh
	case treeErr = <-errCh:
	}
	if treeErr != nil && !errors.Is(treeErr, context.Canceled) {
		logging.Error().Err(treeErr).Msg("Supervisor tree error")
	}

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
		}
	}

	logging.Info().Msg("Timely Tourist stopped")
	if ctx.Err() == nil {
		// Tree exited without a signal.
		return 1
	}
	return 0
}
