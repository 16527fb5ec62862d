package endpoint

import (
	"context"
	"time"

	"github.com/iudanet/possync/internal/models"
)

// timeoutStore bounds every call of the wrapped store.
// A hung call turns into context.DeadlineExceeded instead of stalling the cycle.
type timeoutStore struct {
	next    TableStore
	timeout time.Duration
}

func (s *timeoutStore) Select(ctx context.Context, table models.Table, filter Filter) ([]models.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.next.Select(ctx, table, filter)
}

func (s *timeoutStore) Upsert(ctx context.Context, table models.Table, record models.Record) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.next.Upsert(ctx, table, record)
}

func (s *timeoutStore) UpdateField(ctx context.Context, table models.Table, id any, field string, value any) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.next.UpdateField(ctx, table, id, field, value)
}

func (s *timeoutStore) Probe(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.next.Probe(ctx)
}

// Close is a no-op: the handle is owned by Client.
func (s *timeoutStore) Close() error {
	return nil
}
