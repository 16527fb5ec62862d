// Package sync implements the bidirectional replica synchronization cycle:
// push unsynced local rows to remote, then pull remote rows changed since
// the per-table cursor into local.
package sync

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/iudanet/possync/internal/cursor"
	"github.com/iudanet/possync/internal/endpoint"
	"github.com/iudanet/possync/internal/models"
)

//go:generate moq -out connector_mock.go . Connector

// Connector opens a usable handle to one endpoint at cycle start.
// Implemented by *endpoint.Client.
type Connector interface {
	Ensure(ctx context.Context) (endpoint.TableStore, error)
	Role() models.Role
}

// Observer receives every finished cycle, e.g. health reporter and metrics
type Observer interface {
	ObserveCycle(ctx context.Context, result *Result)
}

// Config configures the engine
type Config struct {
	CursorMode   CursorMode
	Tables       []models.Table
	Workers      int
	CycleTimeout time.Duration
}

// Engine runs sync cycles. RunCycle must not be called concurrently;
// the scheduler serializes cycles.
type Engine struct {
	local     Connector
	remote    Connector
	cursors   cursor.Store
	logger    *slog.Logger
	now       func() time.Time
	observers []Observer
	cfg       Config
}

// Option configures an Engine
type Option func(*Engine)

// WithObserver registers an observer notified after each cycle
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		e.observers = append(e.observers, o)
	}
}

// WithClock overrides the wall clock, used by tests
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates an engine over two endpoints and a cursor store
func NewEngine(local, remote Connector, cursors cursor.Store, cfg Config, logger *slog.Logger, opts ...Option) *Engine {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if !cfg.CursorMode.Valid() {
		cfg.CursorMode = CursorCycleStart
	}

	e := &Engine{
		local:   local,
		remote:  remote,
		cursors: cursors,
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RunCycle runs one push pass then one pull pass over all tables.
// It never returns an error: failures are recorded in the Result.
func (e *Engine) RunCycle(ctx context.Context) (res *Result) {
	res = &Result{
		CycleID:   uuid.NewString(),
		StartedAt: e.now().UTC(),
	}
	log := e.logger.With("cycle_id", res.CycleID)

	if e.cfg.CycleTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.CycleTimeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error("Sync cycle panicked", "panic", r, "stack", string(debug.Stack()))
			res.Errors = append(res.Errors, fmt.Errorf("%w: panic: %v", ErrCycleAborted, r))
		}
		res.FinishedAt = e.now().UTC()
		e.logSummary(log, res)
		e.notify(ctx, res)
	}()

	log.Info("Starting sync cycle", "tables", models.TableNames(e.cfg.Tables))

	local, remote := e.connect(ctx, log, res)
	if !res.Synced() {
		log.Warn("Skipping sync due to connection issues",
			"local_reachable", res.LocalReachable,
			"remote_reachable", res.RemoteReachable,
		)
		return res
	}

	res.Tables = make([]TableResult, len(e.cfg.Tables))
	for i, t := range e.cfg.Tables {
		res.Tables[i].Table = t.Name
	}

	pusher := NewPusher(local, remote, log)
	puller := NewPuller(local, remote, e.cursors, e.cfg.CursorMode, log)

	log.Info("Starting sync from local to remote")
	e.forEachTable(ctx, log, func(i int, t models.Table) {
		res.Tables[i].Push = pusher.PushTable(ctx, t)
	}, func(i int, err error) {
		res.Tables[i].Push.Errors = append(res.Tables[i].Push.Errors, err)
	})

	log.Info("Starting sync from remote to local")
	e.forEachTable(ctx, log, func(i int, t models.Table) {
		res.Tables[i].Pull = puller.PullTable(ctx, t, res.StartedAt)
	}, func(i int, err error) {
		res.Tables[i].Pull.Errors = append(res.Tables[i].Pull.Errors, err)
	})

	if err := ctx.Err(); err != nil {
		res.Errors = append(res.Errors, fmt.Errorf("%w: %w", ErrCycleAborted, err))
	}

	return res
}

// connect ensures both endpoints; both are attempted so each failure gets logged
func (e *Engine) connect(ctx context.Context, log *slog.Logger, res *Result) (local, remote endpoint.TableStore) {
	var err error

	local, err = e.local.Ensure(ctx)
	res.LocalReachable = err == nil
	if err != nil {
		log.Error("Failed to connect to endpoint", "role", e.local.Role(), "error", err)
		res.Errors = append(res.Errors, fmt.Errorf("%w: %s: %w", ErrEndpointUnreachable, e.local.Role(), err))
	}

	remote, err = e.remote.Ensure(ctx)
	res.RemoteReachable = err == nil
	if err != nil {
		log.Error("Failed to connect to endpoint", "role", e.remote.Role(), "error", err)
		res.Errors = append(res.Errors, fmt.Errorf("%w: %s: %w", ErrEndpointUnreachable, e.remote.Role(), err))
	}

	return local, remote
}

// forEachTable runs fn over the tables, sequentially or on a bounded pool.
// A panic in one table is recorded through onPanic and does not stop the others.
func (e *Engine) forEachTable(ctx context.Context, log *slog.Logger, fn func(int, models.Table), onPanic func(int, error)) {
	run := func(i int, t models.Table) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("Table sync panicked", "table", t.Name, "panic", r, "stack", string(debug.Stack()))
				onPanic(i, fmt.Errorf("%w: table %s: panic: %v", ErrCycleAborted, t.Name, r))
			}
		}()
		fn(i, t)
	}

	if e.cfg.Workers <= 1 {
		for i, t := range e.cfg.Tables {
			run(i, t)
		}
		return
	}

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Workers)
	for i, t := range e.cfg.Tables {
		g.Go(func() error {
			run(i, t)
			return nil
		})
	}
	_ = g.Wait()
}

func (e *Engine) logSummary(log *slog.Logger, res *Result) {
	totals := res.Totals()
	attrs := []any{
		"duration", res.Duration(),
		"pushed", totals.Pushed,
		"push_failed", totals.PushFailed,
		"pulled", totals.Pulled,
		"pull_failed", totals.PullFailed,
		"errors", len(res.AllErrors()),
	}

	if res.Clean() {
		log.Info("Sync cycle completed", attrs...)
		return
	}
	log.Warn("Sync cycle completed with problems", attrs...)
}

func (e *Engine) notify(ctx context.Context, res *Result) {
	ctx = context.WithoutCancel(ctx)
	for _, o := range e.observers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					e.logger.Error("Cycle observer panicked", "cycle_id", res.CycleID, "panic", r)
				}
			}()
			o.ObserveCycle(ctx, res)
		}()
	}
}
