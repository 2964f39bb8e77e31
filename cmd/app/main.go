package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/CoopTokenSim_Go/internal/config"
	"github.com/osse101/CoopTokenSim_Go/internal/handler"
	"github.com/osse101/CoopTokenSim_Go/internal/metrics"
	"github.com/osse101/CoopTokenSim_Go/internal/projection"
	"github.com/osse101/CoopTokenSim_Go/internal/scenario"
	"github.com/osse101/CoopTokenSim_Go/internal/scheduler"
	"github.com/osse101/CoopTokenSim_Go/internal/server"
	"github.com/osse101/CoopTokenSim_Go/internal/validation"
	"github.com/osse101/CoopTokenSim_Go/internal/worker"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	initLogger(cfg)

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		return err
	}
	for _, w := range warnings {
		slog.Warn("Configuration warning", "warning", w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	recorder := metrics.NewRecorder()
	engine := scenario.NewEngine(scenario.WithRecorder(recorder))

	defaults := scenario.DefaultConfig()
	defaults.Seed = cfg.DefaultSeed
	defaults.Weeks = cfg.DefaultWeeks
	defaults.ParticipantCount = cfg.DefaultParticipants

	popts := projection.DefaultOptions()
	popts.Seed = cfg.DefaultSeed
	validator, err := projection.NewValidator(engine, popts, recorder)
	if err != nil {
		return err
	}

	schemas := validation.NewSchemaValidator()
	catalog := projection.NewCatalog(cfg.ProjectionsDir, schemas)
	if err := catalog.Reload(ctx); err != nil {
		// Simulations still work; /readyz reports the missing catalog
		slog.Error("Failed to load projection scenarios", "dir", cfg.ProjectionsDir, "error", err)
	}
	cache := projection.NewReportCache(cfg.ReportCacheSize, cfg.ReportCacheTTL, recorder)

	if cfg.CatalogReload > 0 {
		pool := worker.NewPool(1, 1, cfg.CatalogReload)
		pool.Start(ctx)
		defer pool.Stop()

		sched := scheduler.New(pool)
		sched.Schedule(ctx, cfg.CatalogReload, worker.NewCatalogReloadJob(catalog, cache))
		defer sched.Stop()
		slog.Info("Catalog reload scheduled", "interval", cfg.CatalogReload)
	}

	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		RequestTimeout: cfg.RequestTimeout,
		RateLimit:      cfg.RateLimit,
	}, server.Handlers{
		Simulation:  handler.NewSimulationHandler(engine, scenario.NewDefaultRegistry(), defaults),
		Projections: handler.NewProjectionHandler(validator, catalog, cache, schemas),
		Readiness:   catalog,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		return err
	}
	slog.Info("Server stopped")
	return nil
}
