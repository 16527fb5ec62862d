package endpoint

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/iudanet/possync/internal/models"
)

const (
	// DefaultConnectTimeout ограничивает время установки соединения
	DefaultConnectTimeout = 10 * time.Second
	// DefaultCallTimeout ограничивает каждый отдельный сетевой вызов
	DefaultCallTimeout = 30 * time.Second
)

// Client is a capability-typed handle to one replica.
// It is created once at startup and holds the open TableStore between cycles.
// A failed handle is dropped and reopened only by the next Ensure call.
type Client struct {
	store          TableStore
	dial           Dialer
	logger         *slog.Logger
	role           models.Role
	connectTimeout time.Duration
	callTimeout    time.Duration
	mu             sync.Mutex
}

// Option configures a Client
type Option func(*Client)

// WithConnectTimeout sets the bound for a single connect attempt
func WithConnectTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.connectTimeout = d
		}
	}
}

// WithCallTimeout sets the bound for every select, upsert, update and probe call
func WithCallTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.callTimeout = d
		}
	}
}

// NewClient creates a client for the given role. No connection is made here.
func NewClient(role models.Role, dial Dialer, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		role:           role,
		dial:           dial,
		logger:         logger,
		connectTimeout: DefaultConnectTimeout,
		callTimeout:    DefaultCallTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Role returns the side this client talks to
func (c *Client) Role() models.Role {
	return c.role
}

// Connect opens the underlying store if it is not open yet.
// There is no retry: the scheduler calling again next interval is the retry.
func (c *Client) Connect(ctx context.Context) (TableStore, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.connectLocked(ctx)
}

func (c *Client) connectLocked(ctx context.Context) (TableStore, error) {
	if c.store != nil {
		return &timeoutStore{next: c.store, timeout: c.callTimeout}, nil
	}

	dialCtx, cancel := context.WithTimeout(ctx, c.connectTimeout)
	defer cancel()

	store, err := c.dial(dialCtx)
	if err != nil {
		return nil, fmt.Errorf("%w: connect to %s: %w", ErrUnreachable, c.role, err)
	}

	c.store = store
	c.logger.Info("Connected to endpoint", "role", c.role)

	return &timeoutStore{next: c.store, timeout: c.callTimeout}, nil
}

// Probe reports whether the open store answers within the call timeout.
// A client without an open store is not reachable.
func (c *Client) Probe(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.probeLocked(ctx) == nil
}

func (c *Client) probeLocked(ctx context.Context) error {
	if c.store == nil {
		return ErrNotConnected
	}

	probeCtx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	return c.store.Probe(probeCtx)
}

// Ensure is called at the start of every cycle: it connects when needed and
// probes the store. On probe failure the handle is closed so that the next
// cycle reconnects from scratch.
func (c *Client) Ensure(ctx context.Context) (TableStore, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	store, err := c.connectLocked(ctx)
	if err != nil {
		return nil, err
	}

	if err := c.probeLocked(ctx); err != nil {
		c.dropLocked()
		return nil, fmt.Errorf("%w: probe %s: %w", ErrUnreachable, c.role, err)
	}

	return store, nil
}

// Close releases the underlying store
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.store == nil {
		return nil
	}
	err := c.store.Close()
	c.store = nil
	return err
}

func (c *Client) dropLocked() {
	if c.store == nil {
		return
	}
	if err := c.store.Close(); err != nil {
		c.logger.Warn("Failed to close endpoint handle", "role", c.role, "error", err)
	}
	c.store = nil
}

// IsUnreachable reports whether err comes from a failed connect or probe
func IsUnreachable(err error) bool {
	return errors.Is(err, ErrUnreachable)
}
