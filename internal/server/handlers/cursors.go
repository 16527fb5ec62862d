package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/iudanet/possync/pkg/api"
)

// CursorLister читает сохраненные курсоры. Реализуется cursor.Store
type CursorLister interface {
	ListCursors(ctx context.Context) (map[string]time.Time, error)
}

// CursorsHandler отдает курсоры pull по таблицам
type CursorsHandler struct {
	logger *slog.Logger
	store  CursorLister
	tables []string
}

// NewCursorsHandler creates a handler; tables fixes the output order
func NewCursorsHandler(logger *slog.Logger, store CursorLister, tables []string) *CursorsHandler {
	return &CursorsHandler{
		logger: logger,
		store:  store,
		tables: tables,
	}
}

// List обрабатывает GET /api/v1/cursors
func (h *CursorsHandler) List(w http.ResponseWriter, r *http.Request) {
	cursors, err := h.store.ListCursors(r.Context())
	if err != nil {
		h.logger.Error("Failed to list cursors", "error", err)
		sendError(h.logger, w, "failed to read cursors", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, api.CursorsResponse{Cursors: OrderCursors(cursors, h.tables)}, http.StatusOK)
}

// OrderCursors returns configured tables first in configured order, then any
// other stored cursors by name. Configured tables without a cursor are skipped.
func OrderCursors(cursors map[string]time.Time, tables []string) []api.Cursor {
	out := make([]api.Cursor, 0, len(cursors))
	for _, t := range tables {
		if ts, ok := cursors[t]; ok {
			out = append(out, api.Cursor{Table: t, Watermark: ts})
		}
	}

	var extra []string
	for name := range cursors {
		if !slices.Contains(tables, name) {
			extra = append(extra, name)
		}
	}
	slices.Sort(extra)
	for _, name := range extra {
		out = append(out, api.Cursor{Table: name, Watermark: cursors[name]})
	}

	return out
}
