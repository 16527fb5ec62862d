package sync

import (
	"errors"
	"time"
)

// PhaseResult counts rows of one table in one phase
type PhaseResult struct {
	Errors    []error
	Succeeded int
	Failed    int
	// Aborted is set when the batch stopped early on a transport failure or deadline
	Aborted bool
}

// Attempted returns the number of rows the phase tried to move
func (p PhaseResult) Attempted() int {
	return p.Succeeded + p.Failed
}

func (p *PhaseResult) fail(err error) {
	p.Failed++
	p.Errors = append(p.Errors, err)
}

// PullResult extends PhaseResult with cursor movement
type PullResult struct {
	CursorBefore time.Time
	CursorAfter  time.Time
	PhaseResult
	CursorAdvanced bool
}

// TableResult is the outcome of one table in one cycle
type TableResult struct {
	Table string
	Push  PhaseResult
	Pull  PullResult
}

// Errors returns push errors followed by pull errors
func (t TableResult) Errors() []error {
	out := make([]error, 0, len(t.Push.Errors)+len(t.Pull.Errors))
	out = append(out, t.Push.Errors...)
	return append(out, t.Pull.Errors...)
}

// Result is the outcome of one sync cycle
type Result struct {
	StartedAt       time.Time
	FinishedAt      time.Time
	CycleID         string
	Tables          []TableResult
	Errors          []error // cycle-level errors: unreachable endpoints, deadline, panic
	LocalReachable  bool
	RemoteReachable bool
}

// Synced reports whether push and pull phases ran
func (r *Result) Synced() bool {
	return r.LocalReachable && r.RemoteReachable
}

// AllErrors returns cycle-level errors followed by per-table errors
func (r *Result) AllErrors() []error {
	out := append([]error(nil), r.Errors...)
	for _, t := range r.Tables {
		out = append(out, t.Errors()...)
	}
	return out
}

// Err joins every recorded error; nil for a clean cycle
func (r *Result) Err() error {
	return errors.Join(r.AllErrors()...)
}

// Clean reports whether both endpoints were reachable and nothing failed
func (r *Result) Clean() bool {
	return r.Synced() && len(r.AllErrors()) == 0
}

// Duration returns the wall time of the cycle
func (r *Result) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Totals sums the per-table counters
type Totals struct {
	Pushed     int
	PushFailed int
	Pulled     int
	PullFailed int
}

// Totals returns the counters summed over all tables
func (r *Result) Totals() Totals {
	var t Totals
	for _, tr := range r.Tables {
		t.Pushed += tr.Push.Succeeded
		t.PushFailed += tr.Push.Failed
		t.Pulled += tr.Pull.Succeeded
		t.PullFailed += tr.Pull.Failed
	}
	return t
}
