package health

import (
	"context"
	"errors"
	gosync "sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/possync/internal/sync"
	"github.com/iudanet/possync/pkg/api"
)

var started = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func cleanResult() *sync.Result {
	return &sync.Result{
		CycleID:         "c1",
		StartedAt:       started,
		FinishedAt:      started.Add(2 * time.Second),
		LocalReachable:  true,
		RemoteReachable: true,
		Tables: []sync.TableResult{
			{Table: "products", Push: sync.PhaseResult{Succeeded: 3}},
			{Table: "customers", Pull: sync.PullResult{
				PhaseResult:    sync.PhaseResult{Succeeded: 2},
				CursorAdvanced: true,
				CursorAfter:    started,
			}},
		},
	}
}

func TestDerive(t *testing.T) {
	earlier := started.Add(-time.Hour)
	prev := api.HealthStatus{LastSuccessfulSync: &earlier}

	tests := []struct {
		result      func() *sync.Result
		name        string
		wantMessage string
		wantHealthy bool
		wantLast    time.Time
	}{
		{
			name:        "clean cycle",
			result:      cleanResult,
			wantHealthy: true,
			wantMessage: "Sync completed (pushed 3, pulled 2)",
			wantLast:    started,
		},
		{
			name: "remote unreachable",
			result: func() *sync.Result {
				return &sync.Result{
					StartedAt:      started,
					LocalReachable: true,
					Errors:         []error{sync.ErrEndpointUnreachable},
				}
			},
			wantMessage: "Remote endpoint unreachable",
			wantLast:    earlier,
		},
		{
			name: "local unreachable",
			result: func() *sync.Result {
				return &sync.Result{StartedAt: started, RemoteReachable: true}
			},
			wantMessage: "Local endpoint unreachable",
			wantLast:    earlier,
		},
		{
			name: "both unreachable",
			result: func() *sync.Result {
				return &sync.Result{StartedAt: started}
			},
			wantMessage: "Local and remote endpoints unreachable",
			wantLast:    earlier,
		},
		{
			name: "row failures",
			result: func() *sync.Result {
				res := cleanResult()
				res.Tables[0].Push.Failed = 1
				res.Tables[0].Push.Errors = []error{sync.ErrRowOperation}
				return res
			},
			wantMessage: "Sync completed with 1 errors (pushed 3, pulled 2)",
			wantLast:    earlier,
		},
		{
			name: "panic",
			result: func() *sync.Result {
				res := cleanResult()
				res.Errors = []error{errors.Join(sync.ErrCycleAborted, errors.New("panic: boom"))}
				return res
			},
			wantMessage: "Sync cycle aborted",
			wantLast:    earlier,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Derive(prev, tt.result())

			assert.Equal(t, tt.wantHealthy, got.Healthy)
			assert.Contains(t, got.Message, tt.wantMessage)
			require.NotNil(t, got.LastSuccessfulSync)
			assert.Equal(t, tt.wantLast, *got.LastSuccessfulSync)
		})
	}
}

func TestDerive_NoPreviousSuccess(t *testing.T) {
	got := Derive(api.HealthStatus{}, &sync.Result{StartedAt: started})
	assert.False(t, got.Healthy)
	assert.Nil(t, got.LastSuccessfulSync)
}

func TestSummarize(t *testing.T) {
	res := cleanResult()
	res.Tables[0].Push.Errors = []error{errors.New("row 5 failed")}

	got := Summarize(res)

	assert.Equal(t, "c1", got.CycleID)
	assert.Equal(t, int64(2000), got.DurationMS)
	require.Len(t, got.Tables, 2)
	assert.Equal(t, 3, got.Tables[0].Pushed)
	assert.Equal(t, []string{"row 5 failed"}, got.Tables[0].Errors)
	assert.Nil(t, got.Tables[0].Cursor)
	require.NotNil(t, got.Tables[1].Cursor)
	assert.Equal(t, started, *got.Tables[1].Cursor)
	assert.True(t, got.Tables[1].CursorAdvanced)
}

func TestReporter(t *testing.T) {
	r := NewReporter()

	initial := r.Status()
	assert.False(t, initial.Healthy)
	assert.Equal(t, InitialMessage, initial.Message)
	assert.Nil(t, r.LastCycle())

	r.ObserveCycle(context.Background(), cleanResult())
	assert.True(t, r.Status().Healthy)
	require.NotNil(t, r.LastCycle())
	require.NotNil(t, r.Status().LastSuccessfulSync)
	assert.Equal(t, started, *r.Status().LastSuccessfulSync)

	// неудачный цикл сохраняет время последней успешной синхронизации
	r.ObserveCycle(context.Background(), &sync.Result{StartedAt: started.Add(time.Hour), LocalReachable: true})
	status := r.Status()
	assert.False(t, status.Healthy)
	assert.False(t, status.RemoteReachable)
	require.NotNil(t, status.LastSuccessfulSync)
	assert.Equal(t, started, *status.LastSuccessfulSync)
}

func TestReporter_ConcurrentReads(t *testing.T) {
	r := NewReporter()
	var wg gosync.WaitGroup

	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				_ = r.Status()
				_ = r.LastCycle()
			}
		}()
	}

	for range 50 {
		r.ObserveCycle(context.Background(), cleanResult())
	}
	wg.Wait()

	assert.True(t, r.Status().Healthy)
}
