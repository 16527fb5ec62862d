package sync

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/iudanet/possync/internal/cursor"
	"github.com/iudanet/possync/internal/endpoint"
	"github.com/iudanet/possync/internal/models"
)

// CursorMode selects the value a cursor advances to after a pull batch
type CursorMode string

const (
	// CursorCycleStart advances to the wall-clock time captured at cycle start
	CursorCycleStart CursorMode = "cycle_start"
	// CursorMaxRow advances to the largest updated timestamp seen in the batch
	CursorMaxRow CursorMode = "max_row"
)

// Valid reports whether m is a known mode
func (m CursorMode) Valid() bool {
	return m == CursorCycleStart || m == CursorMaxRow
}

// Puller replicates remote rows changed since the table cursor to the local endpoint
type Puller struct {
	local   endpoint.TableStore
	remote  endpoint.TableStore
	cursors cursor.Store
	logger  *slog.Logger
	mode    CursorMode
}

// NewPuller creates a puller for one cycle
func NewPuller(local, remote endpoint.TableStore, cursors cursor.Store, mode CursorMode, logger *slog.Logger) *Puller {
	if !mode.Valid() {
		mode = CursorCycleStart
	}
	return &Puller{
		local:   local,
		remote:  remote,
		cursors: cursors,
		mode:    mode,
		logger:  logger,
	}
}

// PullTable overwrites local rows with remote rows updated after the cursor.
// The cursor is persisted after the batch, even with row failures, unless
// the batch stopped on a transport failure or the cycle deadline.
func (p *Puller) PullTable(ctx context.Context, table models.Table, cycleStart time.Time) PullResult {
	var res PullResult
	log := p.logger.With("table", table.Name, "phase", "pull")

	prev, err := p.cursors.GetCursor(ctx, table.Name)
	if err != nil {
		log.Error("Failed to read cursor", "error", err)
		res.Errors = append(res.Errors, fmt.Errorf("%w: read %s: %w", ErrCursorPersist, table.Name, err))
		return res
	}
	res.CursorBefore = prev
	res.CursorAfter = prev

	rows, err := p.remote.Select(ctx, table, endpoint.Gt(table.UpdatedColumn, prev))
	if err != nil {
		log.Error("Failed to query updated rows", "since", prev, "error", err)
		res.Errors = append(res.Errors, fmt.Errorf("%w: pull %s: %w", ErrTableQuery, table.Name, err))
		return res
	}

	if len(rows) == 0 {
		log.Info("No new updates in remote", "since", prev)
		return res
	}

	log.Info("Pulling records", "count", len(rows), "since", prev)

	var maxSeen time.Time
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			log.Warn("Pull interrupted", "remaining", len(rows)-res.Attempted(), "error", err)
			res.Errors = append(res.Errors, fmt.Errorf("%w: pull %s: %w", ErrCycleAborted, table.Name, err))
			res.Aborted = true
			break
		}

		if !p.pullRow(ctx, log, table, row, &res.PhaseResult) {
			break
		}

		if ts, err := models.ParseTimestamp(row[table.UpdatedColumn]); err == nil && ts.After(maxSeen) {
			maxSeen = ts
		}
	}

	if res.Aborted {
		log.Warn("Cursor not advanced", "cursor", prev, "pulled", res.Succeeded, "failed", res.Failed)
		return res
	}

	candidate := cycleStart
	if p.mode == CursorMaxRow {
		candidate = maxSeen
	}

	next := cursor.Advance(prev, candidate)
	if next.Equal(prev) {
		log.Info("Pull finished, cursor unchanged", "pulled", res.Succeeded, "failed", res.Failed)
		return res
	}

	if err := p.cursors.SaveCursor(ctx, table.Name, next); err != nil {
		log.Error("Failed to persist cursor", "cursor", next, "error", err)
		res.Errors = append(res.Errors, fmt.Errorf("%w: save %s: %w", ErrCursorPersist, table.Name, err))
		return res
	}

	res.CursorAfter = next
	res.CursorAdvanced = true
	log.Info("Pull finished", "pulled", res.Succeeded, "failed", res.Failed, "cursor", next)
	return res
}

// pullRow returns false when the rest of the batch must be skipped
func (p *Puller) pullRow(ctx context.Context, log *slog.Logger, table models.Table, row models.Record, res *PhaseResult) bool {
	id, err := row.ID(table.IDColumn)
	if err != nil {
		log.Warn("Skipping row without id", "error", err)
		res.fail(fmt.Errorf("%w: pull %s: %w", ErrRowOperation, table.Name, err))
		return true
	}

	// remote побеждает: локальная версия перезаписывается безусловно
	record := row.With(table.SyncedColumn, true)

	if err := p.local.Upsert(ctx, table, record); err != nil {
		log.Warn("Failed to upsert row to local", "id", id, "error", err)
		res.fail(fmt.Errorf("%w: pull %s id=%v: %w", ErrRowOperation, table.Name, id, err))
		if endpoint.IsUnreachable(err) {
			log.Error("Endpoint lost during pull, skipping rest of table", "error", err)
			res.Aborted = true
			return false
		}
		return true
	}

	res.Succeeded++
	log.Debug("Row pulled", "id", id)
	return true
}
