package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/possync/internal/cursor"
)

func setupTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "local.db")

	store, err := New(context.Background(), dbPath)
	require.NoError(t, err)

	return store, dbPath
}

func TestNew_CreatesCursorTable(t *testing.T) {
	store, _ := setupTestStore(t)
	defer store.Close()

	var name string
	err := store.db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'sync_cursors'",
	).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "sync_cursors", name)
}

func TestSaveAndGetCursor(t *testing.T) {
	ctx := context.Background()
	store, _ := setupTestStore(t)
	defer store.Close()

	ts, err := store.GetCursor(ctx, "customers")
	require.NoError(t, err)
	assert.Equal(t, cursor.Epoch, ts)

	t1 := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(90 * time.Minute)
	require.NoError(t, store.SaveCursor(ctx, "customers", t1))
	require.NoError(t, store.SaveCursor(ctx, "customers", t2))

	got, err := store.GetCursor(ctx, "customers")
	require.NoError(t, err)
	assert.True(t, t2.Equal(got))
}

func TestCursor_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	store, dbPath := setupTestStore(t)

	want := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.SaveCursor(ctx, "products", want))
	require.NoError(t, store.Close())

	// повторное открытие не должно ломаться на уже примененной миграции
	reopened, err := New(ctx, dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.GetCursor(ctx, "products")
	require.NoError(t, err)
	assert.True(t, want.Equal(got))
}

func TestListAndResetCursors(t *testing.T) {
	ctx := context.Background()
	store, _ := setupTestStore(t)
	defer store.Close()

	t1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.SaveCursor(ctx, "customers", t1))
	require.NoError(t, store.SaveCursor(ctx, "products", t1))

	all, err := store.ListCursors(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, store.ResetCursor(ctx, "products"))

	all, err = store.ListCursors(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Contains(t, all, "customers")
}

func TestGetCursor_InvalidValue(t *testing.T) {
	ctx := context.Background()
	store, _ := setupTestStore(t)
	defer store.Close()

	_, err := store.db.Exec(
		"INSERT INTO sync_cursors (table_name, watermark, updated_at) VALUES ('customers', 'garbage', '')",
	)
	require.NoError(t, err)

	_, err = store.GetCursor(ctx, "customers")
	assert.ErrorIs(t, err, cursor.ErrInvalidCursor)
}

func TestClosedStore(t *testing.T) {
	ctx := context.Background()
	store, _ := setupTestStore(t)
	require.NoError(t, store.Close())

	_, err := store.GetCursor(ctx, "customers")
	assert.ErrorIs(t, err, cursor.ErrStoreClosed)
}
