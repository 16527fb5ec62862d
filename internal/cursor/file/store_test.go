package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/possync/internal/cursor"
)

func TestSaveAndGetCursor(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := New(dir)
	require.NoError(t, err)

	ts, err := store.GetCursor(ctx, "customers")
	require.NoError(t, err)
	assert.Equal(t, cursor.Epoch, ts)

	want := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.SaveCursor(ctx, "customers", want))

	data, err := os.ReadFile(filepath.Join(dir, "last_sync_customers.txt"))
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02T00:00:00Z", string(data))

	got, err := store.GetCursor(ctx, "customers")
	require.NoError(t, err)
	assert.True(t, want.Equal(got))

	// временный файл не остается
	_, err = os.Stat(filepath.Join(dir, "last_sync_customers.txt.tmp"))
	assert.True(t, os.IsNotExist(err))
}

func TestGetCursor_LegacyFormat(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "last_sync_products.txt"), []byte("2024-03-01T10:30:00\n"), 0600))

	got, err := store.GetCursor(ctx, "products")
	require.NoError(t, err)

	want := time.Date(2024, 3, 1, 10, 30, 0, 0, time.Local)
	assert.True(t, want.Equal(got))
}

func TestGetCursor_Invalid(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "last_sync_products.txt"), []byte("soon"), 0600))

	_, err = store.GetCursor(ctx, "products")
	assert.ErrorIs(t, err, cursor.ErrInvalidCursor)
}

func TestRejectsUnsafeTableName(t *testing.T) {
	ctx := context.Background()
	store, err := New(t.TempDir())
	require.NoError(t, err)

	err = store.SaveCursor(ctx, "../etc/passwd", time.Now())
	assert.Error(t, err)

	_, err = store.GetCursor(ctx, "a/b")
	assert.Error(t, err)
}

func TestListAndResetCursors(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := New(dir)
	require.NoError(t, err)

	t1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.SaveCursor(ctx, "customers", t1))
	require.NoError(t, store.SaveCursor(ctx, "products", t1))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sync.log"), []byte("noise"), 0600))

	all, err := store.ListCursors(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.True(t, t1.Equal(all["products"]))

	require.NoError(t, store.ResetCursor(ctx, "products"))
	require.NoError(t, store.ResetCursor(ctx, "products"))

	all, err = store.ListCursors(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	require.NoError(t, store.Close())
}
