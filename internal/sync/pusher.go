package sync

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/iudanet/possync/internal/endpoint"
	"github.com/iudanet/possync/internal/models"
)

// Pusher replicates not-yet-synced local rows to the remote endpoint
type Pusher struct {
	local  endpoint.TableStore
	remote endpoint.TableStore
	logger *slog.Logger
}

// NewPusher creates a pusher for one cycle
func NewPusher(local, remote endpoint.TableStore, logger *slog.Logger) *Pusher {
	return &Pusher{
		local:  local,
		remote: remote,
		logger: logger,
	}
}

// PushTable pushes every local row of the table with synced = false.
// A row is marked synced locally only after the remote upsert succeeded.
func (p *Pusher) PushTable(ctx context.Context, table models.Table) PhaseResult {
	var res PhaseResult
	log := p.logger.With("table", table.Name, "phase", "push")

	rows, err := p.local.Select(ctx, table, endpoint.Eq(table.SyncedColumn, false))
	if err != nil {
		log.Error("Failed to query unsynced rows", "error", err)
		res.Errors = append(res.Errors, fmt.Errorf("%w: push %s: %w", ErrTableQuery, table.Name, err))
		return res
	}

	if len(rows) == 0 {
		log.Info("No new records to push")
		return res
	}

	log.Info("Pushing records", "count", len(rows))

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			log.Warn("Push interrupted", "remaining", len(rows)-res.Attempted(), "error", err)
			res.Errors = append(res.Errors, fmt.Errorf("%w: push %s: %w", ErrCycleAborted, table.Name, err))
			res.Aborted = true
			break
		}

		if !p.pushRow(ctx, log, table, row, &res) {
			break
		}
	}

	log.Info("Push finished", "pushed", res.Succeeded, "failed", res.Failed)
	return res
}

// pushRow returns false when the rest of the batch must be skipped
func (p *Pusher) pushRow(ctx context.Context, log *slog.Logger, table models.Table, row models.Record, res *PhaseResult) bool {
	id, err := row.ID(table.IDColumn)
	if err != nil {
		log.Warn("Skipping row without id", "error", err)
		res.fail(fmt.Errorf("%w: push %s: %w", ErrRowOperation, table.Name, err))
		return true
	}

	// флаг синхронизации существует только на локальной стороне
	payload := row.Without(table.SyncedColumn)

	if err := p.remote.Upsert(ctx, table, payload); err != nil {
		log.Warn("Failed to upsert row to remote", "id", id, "error", err)
		res.fail(fmt.Errorf("%w: push %s id=%v: %w", ErrRowOperation, table.Name, id, err))
		return p.keepGoing(log, err, res)
	}

	if err := p.local.UpdateField(ctx, table, id, table.SyncedColumn, true); err != nil {
		log.Warn("Failed to mark row synced", "id", id, "error", err)
		res.fail(fmt.Errorf("%w: mark synced %s id=%v: %w", ErrRowOperation, table.Name, id, err))
		return p.keepGoing(log, err, res)
	}

	res.Succeeded++
	log.Debug("Row pushed", "id", id)
	return true
}

func (p *Pusher) keepGoing(log *slog.Logger, err error, res *PhaseResult) bool {
	if endpoint.IsUnreachable(err) {
		log.Error("Endpoint lost during push, skipping rest of table", "error", err)
		res.Aborted = true
		return false
	}
	return true
}
