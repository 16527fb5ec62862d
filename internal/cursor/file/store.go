// Package file keeps one cursor file per table, compatible with the
// last_sync_<table>.txt layout written by the previous sync service.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/iudanet/possync/internal/cursor"
	"github.com/iudanet/possync/internal/models"
	"github.com/iudanet/possync/internal/validation"
)

const (
	filePrefix = "last_sync_"
	fileSuffix = ".txt"

	// legacyLayout is the zone-less local time written by the previous service
	legacyLayout = "2006-01-02T15:04:05"
)

// Store implements cursor.Store on the local filesystem
type Store struct {
	basePath string
}

var _ cursor.Store = (*Store)(nil)

// New creates the base directory if it does not exist
func New(basePath string) (*Store, error) {
	if err := os.MkdirAll(basePath, 0750); err != nil {
		return nil, fmt.Errorf("failed to create cursor directory: %w", err)
	}
	return &Store{basePath: basePath}, nil
}

func (s *Store) path(table string) (string, error) {
	if err := validation.ValidateTableName(table); err != nil {
		return "", err
	}
	return filepath.Join(s.basePath, filePrefix+table+fileSuffix), nil
}

// GetCursor reads the cursor file of the table.
// Returns cursor.Epoch if the file doesn't exist.
func (s *Store) GetCursor(_ context.Context, table string) (time.Time, error) {
	filePath, err := s.path(table)
	if err != nil {
		return time.Time{}, err
	}

	// #nosec G304 -- table name is validated as an SQL identifier
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return cursor.Epoch, nil
		}
		return time.Time{}, fmt.Errorf("failed to read cursor file for table '%s': %w", table, err)
	}

	return parseCursor(string(data))
}

// SaveCursor writes the cursor to a temporary file and renames it into place
func (s *Store) SaveCursor(_ context.Context, table string, ts time.Time) error {
	filePath, err := s.path(table)
	if err != nil {
		return err
	}

	tempPath := filePath + ".tmp"
	if err := os.WriteFile(tempPath, []byte(ts.UTC().Format(time.RFC3339Nano)), 0600); err != nil {
		return fmt.Errorf("failed to write temporary cursor file for table '%s': %w", table, err)
	}

	if err := os.Rename(tempPath, filePath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename cursor file for table '%s': %w", table, err)
	}

	return nil
}

// ListCursors reads every cursor file in the base directory
func (s *Store) ListCursors(ctx context.Context) (map[string]time.Time, error) {
	result := make(map[string]time.Time)

	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		if os.IsNotExist(err) {
			return result, nil
		}
		return nil, fmt.Errorf("failed to read cursor directory: %w", err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
			continue
		}

		table := strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix)
		ts, err := s.GetCursor(ctx, table)
		if err != nil {
			return nil, err
		}
		result[table] = ts
	}

	return result, nil
}

// ResetCursor removes the cursor file of the table
func (s *Store) ResetCursor(_ context.Context, table string) error {
	filePath, err := s.path(table)
	if err != nil {
		return err
	}

	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove cursor file for table '%s': %w", table, err)
	}
	return nil
}

// Close is a no-op
func (s *Store) Close() error {
	return nil
}

func parseCursor(value string) (time.Time, error) {
	value = strings.TrimSpace(value)

	if len(value) == len(legacyLayout) {
		if ts, err := time.ParseInLocation(legacyLayout, value, time.Local); err == nil {
			return ts.UTC(), nil
		}
	}

	ts, err := models.ParseTimestamp(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", cursor.ErrInvalidCursor, err)
	}
	return ts, nil
}
