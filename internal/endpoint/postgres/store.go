// Package postgres implements endpoint.TableStore over PostgreSQL using a pgx pool.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iudanet/possync/internal/endpoint"
	"github.com/iudanet/possync/internal/models"
)

const columnTypesQuery = `
	SELECT column_name, data_type
	FROM information_schema.columns
	WHERE table_schema = current_schema() AND table_name = $1
`

// DBTX абстрагирует методы pgxpool, нужные хранилищу
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store represents a replica kept in PostgreSQL
type Store struct {
	db    DBTX
	pool  *pgxpool.Pool
	types map[string]map[string]string
	mu    sync.Mutex
}

var _ endpoint.TableStore = (*Store)(nil)

// Open creates a pool for dsn and checks the connection.
// The caller bounds the attempt through ctx.
func Open(ctx context.Context, dsn string, maxConns int32) (*Store, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database connection string: %w", err)
	}
	if maxConns > 0 {
		poolConfig.MaxConns = maxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection pool: %w", err)
	}

	// Проверяем соединение
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := New(pool)
	s.pool = pool
	return s, nil
}

// New wraps an existing connection
func New(db DBTX) *Store {
	return &Store{
		db:    db,
		types: make(map[string]map[string]string),
	}
}

// Dialer returns an endpoint.Dialer opening dsn
func Dialer(dsn string, maxConns int32) endpoint.Dialer {
	return func(ctx context.Context) (endpoint.TableStore, error) {
		return Open(ctx, dsn, maxConns)
	}
}

// Select returns rows of the table matching the filter, ordered by id
func (s *Store) Select(ctx context.Context, table models.Table, filter endpoint.Filter) ([]models.Record, error) {
	query, err := endpoint.BuildSelect(table, filter, endpoint.DollarPlaceholder, nil)
	if err != nil {
		return nil, err
	}

	types, err := s.columnTypes(ctx, table.Name)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, query, coerceValue(types[filter.Column], filter.Value))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table.Name, err)
	}

	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Record, error) {
		values, err := row.Values()
		if err != nil {
			return nil, err
		}
		fields := row.FieldDescriptions()
		record := make(models.Record, len(fields))
		for i, fd := range fields {
			record[fd.Name] = normalizeValue(values[i])
		}
		return record, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read %s rows: %w", table.Name, err)
	}

	if records == nil {
		records = []models.Record{}
	}
	return records, nil
}

// Upsert inserts the record or overwrites the row with the same id
func (s *Store) Upsert(ctx context.Context, table models.Table, record models.Record) error {
	query, args, err := endpoint.BuildUpsert(table, record, endpoint.DollarPlaceholder)
	if err != nil {
		return err
	}

	types, err := s.columnTypes(ctx, table.Name)
	if err != nil {
		return err
	}

	for i, col := range record.Columns() {
		args[i] = coerceValue(types[col], args[i])
	}

	if _, err := s.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to upsert into %s: %w", table.Name, err)
	}

	return nil
}

// UpdateField sets one column of the row identified by id
func (s *Store) UpdateField(ctx context.Context, table models.Table, id any, field string, value any) error {
	query, err := endpoint.BuildUpdateField(table, field, endpoint.DollarPlaceholder)
	if err != nil {
		return err
	}

	types, err := s.columnTypes(ctx, table.Name)
	if err != nil {
		return err
	}

	tag, err := s.db.Exec(ctx, query,
		coerceValue(types[field], value),
		coerceValue(types[table.IDColumn], id),
	)
	if err != nil {
		return fmt.Errorf("failed to update %s.%s: %w", table.Name, field, err)
	}

	if tag.RowsAffected() == 0 {
		return endpoint.ErrRecordNotFound
	}

	return nil
}

// Probe checks the server answers
func (s *Store) Probe(ctx context.Context) error {
	if s.pool != nil {
		return s.pool.Ping(ctx)
	}
	var one int
	if err := s.db.QueryRow(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("failed to probe database: %w", err)
	}
	return nil
}

// Close closes the pool
func (s *Store) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

// columnTypes returns data types of the table columns; the result is cached per table
func (s *Store) columnTypes(ctx context.Context, table string) (map[string]string, error) {
	s.mu.Lock()
	cached, ok := s.types[table]
	s.mu.Unlock()
	if ok {
		return cached, nil
	}

	rows, err := s.db.Query(ctx, columnTypesQuery, table)
	if err != nil {
		return nil, fmt.Errorf("failed to load column types of %s: %w", table, err)
	}

	types := make(map[string]string)
	var name, dataType string
	_, err = pgx.ForEachRow(rows, []any{&name, &dataType}, func() error {
		types[name] = dataType
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load column types of %s: %w", table, err)
	}
	if len(types) == 0 {
		return nil, fmt.Errorf("table %s: %w", table, errTableNotFound)
	}

	s.mu.Lock()
	s.types[table] = types
	s.mu.Unlock()

	return types, nil
}

var errTableNotFound = errors.New("table does not exist")

// coerceValue подгоняет значение под тип колонки.
// Реплики хранят булевы флаги по-разному (SQLite хранит 0/1).
func coerceValue(dataType string, v any) any {
	if n, ok := v.(json.Number); ok {
		if i, err := n.Int64(); err == nil {
			v = i
		} else if f, err := n.Float64(); err == nil {
			v = f
		}
	}

	if dataType != "boolean" {
		return v
	}

	switch val := v.(type) {
	case int:
		return val != 0
	case int32:
		return val != 0
	case int64:
		return val != 0
	case float64:
		return val != 0
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(val)); err == nil {
			return b
		}
	}
	return v
}

// normalizeValue converts pgx driver types into plain Go values
func normalizeValue(v any) any {
	switch val := v.(type) {
	case pgtype.Numeric:
		if !val.Valid {
			return nil
		}
		if val.Exp >= 0 && val.Int != nil && val.Int.IsInt64() {
			i, err := val.Int64Value()
			if err == nil && i.Valid {
				return i.Int64
			}
		}
		f, err := val.Float64Value()
		if err != nil || !f.Valid {
			return nil
		}
		return f.Float64
	case [16]byte:
		return uuid.UUID(val).String()
	case int32:
		return int64(val)
	case int16:
		return int64(val)
	case float32:
		return float64(val)
	default:
		return v
	}
}
