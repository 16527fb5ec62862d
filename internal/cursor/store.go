// Package cursor persists the per-table pull watermark.
package cursor

import (
	"context"
	"time"
)

//go:generate moq -out store_mock.go . Store

// Epoch is the cursor of a table that was never pulled
var Epoch = time.Unix(0, 0).UTC()

// Store defines durable storage of sync cursors, one value per table
type Store interface {
	// GetCursor returns the watermark of the table.
	// Returns Epoch if the table was never pulled.
	GetCursor(ctx context.Context, table string) (time.Time, error)

	// SaveCursor overwrites the watermark of the table
	SaveCursor(ctx context.Context, table string, ts time.Time) error

	// ListCursors returns all persisted watermarks
	ListCursors(ctx context.Context) (map[string]time.Time, error)

	// ResetCursor removes the watermark so the next pull starts from Epoch
	ResetCursor(ctx context.Context, table string) error

	// Close releases the underlying storage
	Close() error
}

// Advance returns the later of prev and candidate.
// A cursor never moves backward.
func Advance(prev, candidate time.Time) time.Time {
	if candidate.After(prev) {
		return candidate.UTC()
	}
	return prev.UTC()
}
