// Package sqlite implements endpoint.TableStore over an SQLite database file.
// It is the usual driver for the local replica of a point-of-sale terminal.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/iudanet/possync/internal/endpoint"
	"github.com/iudanet/possync/internal/models"
)

// Store represents a replica kept in an SQLite file
type Store struct {
	db *sql.DB
}

var _ endpoint.TableStore = (*Store)(nil)

// Open opens the database at dbPath and applies connection pragmas.
// The schema of the replicated tables is owned by the application, not by the engine.
// Use ":memory:" for in-memory database (useful for testing)
func Open(ctx context.Context, dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// SQLite с WAL mode может поддерживать несколько читателей, но только одного писателя
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
		"PRAGMA busy_timeout = 5000;",
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	return &Store{db: db}, nil
}

// Dialer returns an endpoint.Dialer opening dbPath
func Dialer(dbPath string) endpoint.Dialer {
	return func(ctx context.Context) (endpoint.TableStore, error) {
		return Open(ctx, dbPath)
	}
}

// Select returns rows of the table matching the filter, ordered by id
func (s *Store) Select(ctx context.Context, table models.Table, filter endpoint.Filter) ([]models.Record, error) {
	query, err := endpoint.BuildSelect(table, filter, endpoint.NumberedPlaceholder, endpoint.SQLiteAfter)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, bindValue(filter.Value))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table.Name, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", table.Name, err)
	}

	records := []models.Record{}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}

		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table.Name, err)
		}

		record := make(models.Record, len(cols))
		for i, col := range cols {
			record[col] = scanValue(values[i])
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s rows: %w", table.Name, err)
	}

	return records, nil
}

// Upsert inserts the record or overwrites the row with the same id
func (s *Store) Upsert(ctx context.Context, table models.Table, record models.Record) error {
	query, args, err := endpoint.BuildUpsert(table, record, endpoint.QuestionPlaceholder)
	if err != nil {
		return err
	}

	for i := range args {
		args[i] = bindValue(args[i])
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to upsert into %s: %w", table.Name, err)
	}

	return nil
}

// UpdateField sets one column of the row identified by id
func (s *Store) UpdateField(ctx context.Context, table models.Table, id any, field string, value any) error {
	query, err := endpoint.BuildUpdateField(table, field, endpoint.QuestionPlaceholder)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, query, bindValue(value), bindValue(id))
	if err != nil {
		return fmt.Errorf("failed to update %s.%s: %w", table.Name, field, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return endpoint.ErrRecordNotFound
	}

	return nil
}

// Probe checks the database file is still usable
func (s *Store) Probe(ctx context.Context) error {
	var one int
	if err := s.db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("failed to probe database: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying database connection for testing purposes
func (s *Store) DB() *sql.DB {
	return s.db
}

// bindValue приводит значение к типу, который SQLite хранит без потерь
func bindValue(v any) any {
	switch val := v.(type) {
	case bool:
		return boolToInt(val)
	case time.Time:
		return models.FormatTimestamp(val)
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case map[string]any, []any:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	default:
		return v
	}
}

// scanValue converts driver values into plain Go types
func scanValue(v any) any {
	switch val := v.(type) {
	case time.Time:
		return models.FormatTimestamp(val)
	default:
		return v
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
