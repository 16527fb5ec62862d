// Package sqlite keeps sync cursors as rows of an SQLite table.
// The file may be the local replica database itself.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/iudanet/possync/internal/cursor"
	"github.com/iudanet/possync/internal/models"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Store represents SQLite cursor storage
type Store struct {
	db *sql.DB
}

var _ cursor.Store = (*Store)(nil)

// New opens the database at dbPath and applies migrations
func New(ctx context.Context, dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set pragma: %w", err)
	}

	store := &Store{db: db}

	if err := store.runMigrations(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// runMigrations выполняет миграции из embedded FS
func (s *Store) runMigrations(ctx context.Context) error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, s.db, "migrations"); err != nil {
		return fmt.Errorf("goose up failed: %w", err)
	}

	return nil
}

// GetCursor retrieves the watermark of the table.
// Returns cursor.Epoch if the table was never pulled.
func (s *Store) GetCursor(ctx context.Context, table string) (time.Time, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		"SELECT watermark FROM sync_cursors WHERE table_name = ?", table,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return cursor.Epoch, nil
	}
	if err != nil {
		return time.Time{}, s.wrap("get cursor", err)
	}

	ts, err := models.ParseTimestamp(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", cursor.ErrInvalidCursor, err)
	}
	return ts, nil
}

// SaveCursor saves the watermark of the table
func (s *Store) SaveCursor(ctx context.Context, table string, ts time.Time) error {
	query := `
		INSERT INTO sync_cursors (table_name, watermark, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (table_name) DO UPDATE SET
			watermark = excluded.watermark,
			updated_at = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		table,
		ts.UTC().Format(time.RFC3339Nano),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return s.wrap("save cursor", err)
	}
	return nil
}

// ListCursors returns all persisted watermarks
func (s *Store) ListCursors(ctx context.Context) (map[string]time.Time, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT table_name, watermark FROM sync_cursors")
	if err != nil {
		return nil, s.wrap("list cursors", err)
	}
	defer rows.Close()

	cursors := make(map[string]time.Time)
	for rows.Next() {
		var table, value string
		if err := rows.Scan(&table, &value); err != nil {
			return nil, fmt.Errorf("failed to scan cursor: %w", err)
		}
		ts, err := models.ParseTimestamp(value)
		if err != nil {
			return nil, fmt.Errorf("%w: table %s: %w", cursor.ErrInvalidCursor, table, err)
		}
		cursors[table] = ts
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cursors: %w", err)
	}

	return cursors, nil
}

// ResetCursor deletes the watermark of the table
func (s *Store) ResetCursor(ctx context.Context, table string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM sync_cursors WHERE table_name = ?", table); err != nil {
		return s.wrap("reset cursor", err)
	}
	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) wrap(op string, err error) error {
	if strings.Contains(err.Error(), "sql: database is closed") {
		return fmt.Errorf("failed to %s: %w", op, cursor.ErrStoreClosed)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
