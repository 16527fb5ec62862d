// Package endpoint describes one database replica the sync engine talks to.
//
// The engine depends only on the TableStore capability set. Concrete
// implementations live in the sqlite, postgres and rest subpackages.
package endpoint

import (
	"context"

	"github.com/iudanet/possync/internal/models"
)

//go:generate moq -out tablestore_mock.go . TableStore

// TableStore defines row-level access to one replica
type TableStore interface {
	// Select returns rows of the table matching the filter.
	// Returns empty slice if nothing matches.
	Select(ctx context.Context, table models.Table, filter Filter) ([]models.Record, error)

	// Upsert inserts the record or updates the existing one keyed by table.IDColumn
	Upsert(ctx context.Context, table models.Table, record models.Record) error

	// UpdateField sets a single column of the row identified by id.
	// Returns ErrRecordNotFound if no row has that id.
	UpdateField(ctx context.Context, table models.Table, id any, field string, value any) error

	// Probe checks that the replica answers requests
	Probe(ctx context.Context) error

	// Close releases connections held by the store
	Close() error
}

// Dialer opens a TableStore. It must not retry on failure.
type Dialer func(ctx context.Context) (TableStore, error)
