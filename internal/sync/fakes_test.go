package sync

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/iudanet/possync/internal/cursor"
	"github.com/iudanet/possync/internal/endpoint"
	"github.com/iudanet/possync/internal/models"
)

// memStore is an in-memory replica keyed by table and id
type memStore struct {
	tables      map[string]map[string]models.Record
	upsertHook  func(table string, rec models.Record) error
	updateHook  func(table string, id any) error
	selectErr   map[string]error
	selectPanic bool
	upserts     int
	updates     int
	selects     int
	mu          sync.Mutex
}

func newMemStore() *memStore {
	return &memStore{
		tables:    make(map[string]map[string]models.Record),
		selectErr: make(map[string]error),
	}
}

func key(id any) string {
	return fmt.Sprint(id)
}

func (m *memStore) put(table string, rec models.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tables[table] == nil {
		m.tables[table] = make(map[string]models.Record)
	}
	m.tables[table][key(rec["id"])] = rec.Clone()
}

func (m *memStore) get(table string, id any) (models.Record, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.tables[table][key(id)]
	return rec, ok
}

func (m *memStore) Select(_ context.Context, table models.Table, filter endpoint.Filter) ([]models.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selects++

	if m.selectPanic {
		panic("select exploded")
	}
	if err := m.selectErr[table.Name]; err != nil {
		return nil, err
	}

	var out []models.Record
	for _, rec := range m.tables[table.Name] {
		if matches(rec[filter.Column], filter) {
			out = append(out, rec.Clone())
		}
	}
	slices.SortFunc(out, func(a, b models.Record) int {
		return bytes.Compare([]byte(fmt.Sprintf("%08v", a["id"])), []byte(fmt.Sprintf("%08v", b["id"])))
	})
	return out, nil
}

func matches(value any, filter endpoint.Filter) bool {
	switch filter.Op {
	case endpoint.OpEq:
		return value == filter.Value
	case endpoint.OpGt:
		got, err := models.ParseTimestamp(value)
		if err != nil {
			return false
		}
		since, err := models.ParseTimestamp(filter.Value)
		if err != nil {
			return false
		}
		return got.After(since)
	}
	return false
}

func (m *memStore) Upsert(_ context.Context, table models.Table, rec models.Record) error {
	if m.upsertHook != nil {
		if err := m.upsertHook(table.Name, rec); err != nil {
			return err
		}
	}
	m.put(table.Name, rec)
	m.mu.Lock()
	m.upserts++
	m.mu.Unlock()
	return nil
}

func (m *memStore) UpdateField(_ context.Context, table models.Table, id any, field string, value any) error {
	if m.updateHook != nil {
		if err := m.updateHook(table.Name, id); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.tables[table.Name][key(id)]
	if !ok {
		return endpoint.ErrRecordNotFound
	}
	rec[field] = value
	m.updates++
	return nil
}

func (m *memStore) Probe(context.Context) error { return nil }
func (m *memStore) Close() error                { return nil }

// memCursors is an in-memory cursor.Store that counts writes
type memCursors struct {
	values  map[string]time.Time
	saveErr error
	saves   int
	mu      sync.Mutex
}

func newMemCursors() *memCursors {
	return &memCursors{values: make(map[string]time.Time)}
}

func (c *memCursors) GetCursor(_ context.Context, table string) (time.Time, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ts, ok := c.values[table]; ok {
		return ts, nil
	}
	return cursor.Epoch, nil
}

func (c *memCursors) SaveCursor(_ context.Context, table string, ts time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.saveErr != nil {
		return c.saveErr
	}
	c.values[table] = ts
	c.saves++
	return nil
}

func (c *memCursors) ListCursors(context.Context) (map[string]time.Time, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]time.Time, len(c.values))
	for k, v := range c.values {
		out[k] = v
	}
	return out, nil
}

func (c *memCursors) ResetCursor(_ context.Context, table string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, table)
	return nil
}

func (c *memCursors) Close() error { return nil }

func connector(role models.Role, store endpoint.TableStore, err error) *ConnectorMock {
	return &ConnectorMock{
		EnsureFunc: func(ctx context.Context) (endpoint.TableStore, error) {
			if err != nil {
				return nil, err
			}
			return store, nil
		},
		RoleFunc: func() models.Role { return role },
	}
}

// syncedBuffer is a goroutine-safe log sink
type syncedBuffer struct {
	buf bytes.Buffer
	mu  sync.Mutex
}

func (b *syncedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func setupTestLogger() (*slog.Logger, *syncedBuffer) {
	buf := &syncedBuffer{}
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), buf
}

type observerFunc func(ctx context.Context, res *Result)

func (f observerFunc) ObserveCycle(ctx context.Context, res *Result) { f(ctx, res) }
