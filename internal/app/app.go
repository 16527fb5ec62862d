// Package app wires configuration into a running sync engine and owns the
// lifecycle of every component: explicit construction in New, explicit
// release in Close.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/iudanet/possync/internal/config"
	"github.com/iudanet/possync/internal/cursor"
	"github.com/iudanet/possync/internal/endpoint"
	"github.com/iudanet/possync/internal/health"
	"github.com/iudanet/possync/internal/models"
	"github.com/iudanet/possync/internal/scheduler"
	"github.com/iudanet/possync/internal/server"
	"github.com/iudanet/possync/internal/sync"
	"github.com/iudanet/possync/internal/telemetry"
)

// App держит все компоненты движка синхронизации
type App struct {
	cfg       *config.Config
	logger    *slog.Logger
	local     *endpoint.Client
	remote    *endpoint.Client
	cursors   cursor.Store
	engine    *sync.Engine
	reporter  *health.Reporter
	telemetry *telemetry.Provider
	scheduler *scheduler.Scheduler
	server    *server.Server
}

// New builds the engine from cfg. Endpoints are not contacted here:
// the first cycle connects them, so an offline start still works.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger, version string) (*App, error) {
	localDial, err := NewDialer(cfg.Local, cfg.Sync.Workers, cfg.Sync.CallTimeout, logger)
	if err != nil {
		return nil, fmt.Errorf("local endpoint: %w", err)
	}
	remoteDial, err := NewDialer(cfg.Remote, cfg.Sync.Workers, cfg.Sync.CallTimeout, logger)
	if err != nil {
		return nil, fmt.Errorf("remote endpoint: %w", err)
	}

	cursors, err := OpenCursorStore(ctx, cfg.Cursor)
	if err != nil {
		return nil, err
	}

	provider, err := telemetry.NewPrometheusProvider(version)
	if err != nil {
		_ = cursors.Close()
		return nil, fmt.Errorf("failed to create telemetry provider: %w", err)
	}
	metrics, err := telemetry.NewSyncMetrics(provider.MeterProvider())
	if err != nil {
		_ = cursors.Close()
		_ = provider.Shutdown(ctx)
		return nil, fmt.Errorf("failed to create sync metrics: %w", err)
	}

	clientOpts := []endpoint.Option{
		endpoint.WithConnectTimeout(cfg.Sync.ConnectTimeout),
		endpoint.WithCallTimeout(cfg.Sync.CallTimeout),
	}
	a := &App{
		cfg:       cfg,
		logger:    logger,
		local:     endpoint.NewClient(models.RoleLocal, localDial, logger, clientOpts...),
		remote:    endpoint.NewClient(models.RoleRemote, remoteDial, logger, clientOpts...),
		cursors:   cursors,
		reporter:  health.NewReporter(),
		telemetry: provider,
	}

	tables := cfg.Tables()
	a.engine = sync.NewEngine(a.local, a.remote, cursors, sync.Config{
		CursorMode:   sync.CursorMode(cfg.Sync.CursorMode),
		Tables:       tables,
		Workers:      cfg.Sync.Workers,
		CycleTimeout: cfg.Sync.CycleTimeout,
	}, logger,
		sync.WithObserver(a.reporter),
		sync.WithObserver(metrics),
	)
	a.scheduler = scheduler.New(a.engine, cfg.Interval(), logger)

	if cfg.Server.Enabled {
		a.server = server.New(cfg.Server.Address, logger, server.Deps{
			Status:     a.reporter,
			Cursors:    cursors,
			Metrics:    provider.Handler(),
			Version:    version,
			Tables:     models.TableNames(tables),
			AuthSecret: []byte(cfg.Server.AuthSecret),
		})
	}

	logger.Info("Sync engine initialized",
		"local_driver", cfg.Local.Driver,
		"remote_driver", cfg.Remote.Driver,
		"cursor_driver", cfg.Cursor.Driver,
		"tables", models.TableNames(tables),
		"interval", cfg.Interval(),
		"workers", cfg.Sync.Workers,
		"cursor_mode", cfg.Sync.CursorMode,
	)

	return a, nil
}

// Run starts the scheduler and, if enabled, the status server.
// Blocks until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.scheduler.Start(gctx)
	})

	if a.server != nil {
		g.Go(func() error {
			return a.server.ListenAndServe()
		})
		g.Go(func() error {
			<-gctx.Done()
			return a.server.Shutdown(context.WithoutCancel(gctx))
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// RunOnce runs a single cycle and returns its result
func (a *App) RunOnce(ctx context.Context) *sync.Result {
	return a.engine.RunCycle(ctx)
}

// Health returns the current health snapshot source
func (a *App) Health() *health.Reporter {
	return a.reporter
}

// Close releases endpoints, the cursor store and the metrics provider
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if err := a.scheduler.Stop(); err != nil {
		errs = append(errs, err)
	}
	if err := a.local.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close local endpoint: %w", err))
	}
	if err := a.remote.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close remote endpoint: %w", err))
	}
	if err := a.cursors.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close cursor store: %w", err))
	}
	if err := a.telemetry.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to shutdown telemetry: %w", err))
	}
	return errors.Join(errs...)
}
