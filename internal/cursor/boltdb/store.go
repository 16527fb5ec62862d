// Package boltdb keeps sync cursors in a bbolt database file.
package boltdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/iudanet/possync/internal/cursor"
	"github.com/iudanet/possync/internal/models"
)

var bucketCursors = []byte("cursors")

// Store represents BoltDB cursor storage
type Store struct {
	db *bbolt.DB
}

var _ cursor.Store = (*Store)(nil)

// New opens (or creates) the BoltDB file at dbPath
func New(ctx context.Context, dbPath string) (*Store, error) {
	db, err := bbolt.Open(dbPath, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketCursors); err != nil {
			return fmt.Errorf("failed to create cursors bucket: %w", err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// GetCursor retrieves the watermark of the table.
// Returns cursor.Epoch if the table was never pulled.
func (s *Store) GetCursor(ctx context.Context, table string) (time.Time, error) {
	ts := cursor.Epoch

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCursors)
		if bucket == nil {
			return fmt.Errorf("cursors bucket not found")
		}

		value := bucket.Get([]byte(table))
		if value == nil {
			return nil
		}

		parsed, err := models.ParseTimestamp(string(value))
		if err != nil {
			return fmt.Errorf("%w: %w", cursor.ErrInvalidCursor, err)
		}
		ts = parsed
		return nil
	})
	if err != nil {
		return time.Time{}, s.wrap("get cursor", err)
	}

	return ts, nil
}

// SaveCursor saves the watermark of the table
func (s *Store) SaveCursor(ctx context.Context, table string, ts time.Time) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCursors)
		if bucket == nil {
			return fmt.Errorf("cursors bucket not found")
		}
		return bucket.Put([]byte(table), []byte(ts.UTC().Format(time.RFC3339Nano)))
	})
	if err != nil {
		return s.wrap("save cursor", err)
	}
	return nil
}

// ListCursors returns all persisted watermarks
func (s *Store) ListCursors(ctx context.Context) (map[string]time.Time, error) {
	cursors := make(map[string]time.Time)

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCursors)
		if bucket == nil {
			return fmt.Errorf("cursors bucket not found")
		}
		return bucket.ForEach(func(k, v []byte) error {
			ts, err := models.ParseTimestamp(string(v))
			if err != nil {
				return fmt.Errorf("%w: table %s: %w", cursor.ErrInvalidCursor, k, err)
			}
			cursors[string(k)] = ts
			return nil
		})
	})
	if err != nil {
		return nil, s.wrap("list cursors", err)
	}

	return cursors, nil
}

// ResetCursor deletes the watermark of the table
func (s *Store) ResetCursor(ctx context.Context, table string) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCursors)
		if bucket == nil {
			return fmt.Errorf("cursors bucket not found")
		}
		return bucket.Delete([]byte(table))
	})
	if err != nil {
		return s.wrap("reset cursor", err)
	}
	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) wrap(op string, err error) error {
	if errors.Is(err, bbolt.ErrDatabaseNotOpen) {
		return fmt.Errorf("failed to %s: %w", op, cursor.ErrStoreClosed)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
