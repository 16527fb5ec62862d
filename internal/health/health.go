// Package health derives the queryable status snapshot from sync cycle results.
package health

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/iudanet/possync/internal/sync"
	"github.com/iudanet/possync/pkg/api"
)

// InitialMessage is reported before the first cycle finishes
const InitialMessage = "No sync cycle has run yet"

// Derive computes the health status after a cycle.
// prev carries the last successful sync time forward through unhealthy cycles.
func Derive(prev api.HealthStatus, res *sync.Result) api.HealthStatus {
	status := api.HealthStatus{
		Healthy:            res.Clean(),
		LocalReachable:     res.LocalReachable,
		RemoteReachable:    res.RemoteReachable,
		LastSuccessfulSync: prev.LastSuccessfulSync,
		Message:            message(res),
	}

	if status.Healthy {
		started := res.StartedAt
		status.LastSuccessfulSync = &started
	}

	return status
}

func message(res *sync.Result) string {
	switch {
	case !res.LocalReachable && !res.RemoteReachable:
		return "Local and remote endpoints unreachable"
	case !res.RemoteReachable:
		return "Remote endpoint unreachable"
	case !res.LocalReachable:
		return "Local endpoint unreachable"
	}

	for _, err := range res.Errors {
		if errors.Is(err, sync.ErrCycleAborted) {
			return fmt.Sprintf("Sync cycle aborted: %v", err)
		}
	}

	totals := res.Totals()
	if errs := res.AllErrors(); len(errs) > 0 {
		return fmt.Sprintf("Sync completed with %d errors (pushed %d, pulled %d)", len(errs), totals.Pushed, totals.Pulled)
	}
	return fmt.Sprintf("Sync completed (pushed %d, pulled %d)", totals.Pushed, totals.Pulled)
}

// Summarize converts a cycle result to its wire form
func Summarize(res *sync.Result) *api.CycleResult {
	out := &api.CycleResult{
		CycleID:         res.CycleID,
		StartedAt:       res.StartedAt,
		FinishedAt:      res.FinishedAt,
		DurationMS:      res.Duration().Milliseconds(),
		LocalReachable:  res.LocalReachable,
		RemoteReachable: res.RemoteReachable,
		Errors:          errorStrings(res.Errors),
		Tables:          make([]api.TableResult, 0, len(res.Tables)),
	}

	for _, t := range res.Tables {
		tr := api.TableResult{
			Table:          t.Table,
			Pushed:         t.Push.Succeeded,
			PushFailed:     t.Push.Failed,
			Pulled:         t.Pull.Succeeded,
			PullFailed:     t.Pull.Failed,
			CursorAdvanced: t.Pull.CursorAdvanced,
			Errors:         errorStrings(t.Errors()),
		}
		if !t.Pull.CursorAfter.IsZero() {
			c := t.Pull.CursorAfter
			tr.Cursor = &c
		}
		out.Tables = append(out.Tables, tr)
	}

	return out
}

func errorStrings(errs []error) []string {
	if len(errs) == 0 {
		return nil
	}
	out := make([]string, len(errs))
	for i, err := range errs {
		out[i] = err.Error()
	}
	return out
}

type snapshot struct {
	lastCycle *api.CycleResult
	status    api.HealthStatus
}

// Reporter holds the latest snapshot. Reads never block the sync loop.
type Reporter struct {
	current atomic.Pointer[snapshot]
}

// NewReporter creates a reporter in the initial unhealthy state
func NewReporter() *Reporter {
	r := &Reporter{}
	r.current.Store(&snapshot{
		status: api.HealthStatus{Message: InitialMessage},
	})
	return r
}

// ObserveCycle implements sync.Observer. Cycles are serialized by the
// scheduler, so there is a single writer.
func (r *Reporter) ObserveCycle(_ context.Context, res *sync.Result) {
	prev := r.current.Load()
	r.current.Store(&snapshot{
		status:    Derive(prev.status, res),
		lastCycle: Summarize(res),
	})
}

// Status returns the current health status
func (r *Reporter) Status() api.HealthStatus {
	return r.current.Load().status
}

// LastCycle returns the summary of the last finished cycle, nil before the first one
func (r *Reporter) LastCycle() *api.CycleResult {
	return r.current.Load().lastCycle
}
