package endpoint

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/possync/internal/models"
)

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func healthyStore() *TableStoreMock {
	return &TableStoreMock{
		ProbeFunc: func(ctx context.Context) error { return nil },
		CloseFunc: func() error { return nil },
		SelectFunc: func(ctx context.Context, table models.Table, filter Filter) ([]models.Record, error) {
			return nil, nil
		},
	}
}

func TestClient_ConnectReusesHandle(t *testing.T) {
	store := healthyStore()
	dials := 0
	client := NewClient(models.RoleLocal, func(ctx context.Context) (TableStore, error) {
		dials++
		return store, nil
	}, setupTestLogger())

	ctx := context.Background()
	_, err := client.Connect(ctx)
	require.NoError(t, err)
	_, err = client.Connect(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, dials)
	assert.Equal(t, models.RoleLocal, client.Role())
}

func TestClient_ConnectFailureIsUnreachable(t *testing.T) {
	client := NewClient(models.RoleRemote, func(ctx context.Context) (TableStore, error) {
		return nil, errors.New("connection refused")
	}, setupTestLogger())

	_, err := client.Connect(context.Background())

	require.Error(t, err)
	assert.True(t, IsUnreachable(err))
	assert.Contains(t, err.Error(), "remote")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestClient_ConnectIsBoundedByTimeout(t *testing.T) {
	client := NewClient(models.RoleRemote, func(ctx context.Context) (TableStore, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}, setupTestLogger(), WithConnectTimeout(20*time.Millisecond))

	start := time.Now()
	_, err := client.Connect(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestClient_ProbeWithoutConnection(t *testing.T) {
	client := NewClient(models.RoleLocal, func(ctx context.Context) (TableStore, error) {
		return healthyStore(), nil
	}, setupTestLogger())

	assert.False(t, client.Probe(context.Background()))
}

func TestClient_EnsureDropsHandleOnProbeFailure(t *testing.T) {
	failing := healthyStore()
	failing.ProbeFunc = func(ctx context.Context) error { return errors.New("no route to host") }

	dials := 0
	client := NewClient(models.RoleRemote, func(ctx context.Context) (TableStore, error) {
		dials++
		return failing, nil
	}, setupTestLogger())

	ctx := context.Background()
	_, err := client.Ensure(ctx)
	require.Error(t, err)
	assert.True(t, IsUnreachable(err))
	assert.Len(t, failing.CloseCalls(), 1)

	// следующий цикл переподключается с нуля
	_, err = client.Ensure(ctx)
	require.Error(t, err)
	assert.Equal(t, 2, dials)
}

func TestClient_EnsureHealthy(t *testing.T) {
	store := healthyStore()
	client := NewClient(models.RoleLocal, func(ctx context.Context) (TableStore, error) {
		return store, nil
	}, setupTestLogger())

	ts, err := client.Ensure(context.Background())
	require.NoError(t, err)
	require.NotNil(t, ts)
	assert.True(t, client.Probe(context.Background()))

	// Close через обертку не закрывает реальный handle
	require.NoError(t, ts.Close())
	assert.Empty(t, store.CloseCalls())

	require.NoError(t, client.Close())
	assert.Len(t, store.CloseCalls(), 1)
	require.NoError(t, client.Close())
}

func TestTimeoutStore_BoundsEveryCall(t *testing.T) {
	hung := &TableStoreMock{
		ProbeFunc: func(ctx context.Context) error { return nil },
		CloseFunc: func() error { return nil },
		SelectFunc: func(ctx context.Context, table models.Table, filter Filter) ([]models.Record, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
		UpsertFunc: func(ctx context.Context, table models.Table, record models.Record) error {
			<-ctx.Done()
			return ctx.Err()
		},
		UpdateFieldFunc: func(ctx context.Context, table models.Table, id any, field string, value any) error {
			<-ctx.Done()
			return ctx.Err()
		},
	}
	client := NewClient(models.RoleRemote, func(ctx context.Context) (TableStore, error) {
		return hung, nil
	}, setupTestLogger(), WithCallTimeout(10*time.Millisecond))

	ctx := context.Background()
	store, err := client.Ensure(ctx)
	require.NoError(t, err)

	tbl := models.NewTable("products")
	_, err = store.Select(ctx, tbl, Eq("synced", false))
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	err = store.Upsert(ctx, tbl, models.Record{"id": 1})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	err = store.UpdateField(ctx, tbl, 1, "synced", true)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
