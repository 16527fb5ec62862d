package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/iudanet/possync/internal/config"
	"github.com/iudanet/possync/internal/cursor"
	"github.com/iudanet/possync/internal/cursor/boltdb"
	cursorfile "github.com/iudanet/possync/internal/cursor/file"
	cursorsqlite "github.com/iudanet/possync/internal/cursor/sqlite"
	"github.com/iudanet/possync/internal/endpoint"
	"github.com/iudanet/possync/internal/endpoint/postgres"
	"github.com/iudanet/possync/internal/endpoint/rest"
	"github.com/iudanet/possync/internal/endpoint/sqlite"
)

// NewDialer returns the dialer for an endpoint driver.
// workers sizes the postgres pool so parallel tables do not queue on it.
// callTimeout bounds one HTTP request of the rest driver.
func NewDialer(cfg config.EndpointConfig, workers int, callTimeout time.Duration, logger *slog.Logger) (endpoint.Dialer, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return sqlite.Dialer(cfg.URL), nil
	case config.DriverPostgres:
		return postgres.Dialer(cfg.URL, int32(max(workers, 1)+1)), nil
	case config.DriverREST:
		return rest.Dialer(cfg.URL, cfg.Key, callTimeout, logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", endpoint.ErrUnsupportedDriver, cfg.Driver)
	}
}

// OpenCursorStore opens the cursor store for the configured driver
func OpenCursorStore(ctx context.Context, cfg config.CursorConfig) (cursor.Store, error) {
	var (
		store cursor.Store
		err   error
	)

	switch cfg.Driver {
	case config.CursorDriverBolt:
		store, err = boltdb.New(ctx, cfg.Path)
	case config.CursorDriverSQLite:
		store, err = cursorsqlite.New(ctx, cfg.Path)
	case config.CursorDriverFile:
		store, err = cursorfile.New(cfg.Path)
	default:
		return nil, fmt.Errorf("%w: %q", cursor.ErrUnsupportedDriver, cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s cursor store: %w", cfg.Driver, err)
	}

	return store, nil
}
