// Package scheduler drives sync cycles on a single timeline:
// one cycle immediately at start, then one per interval, never overlapping.
package scheduler

import (
	"context"
	"errors"
	"log/slog"
	gosync "sync"
	"time"

	"github.com/iudanet/possync/internal/sync"
)

// ErrInvalidInterval is returned by Start for a non-positive interval
var ErrInvalidInterval = errors.New("sync interval must be positive")

// CycleRunner runs one sync cycle. Implemented by *sync.Engine.
type CycleRunner interface {
	RunCycle(ctx context.Context) *sync.Result
}

// Scheduler runs cycles from one goroutine, so a new cycle never starts
// while the previous one is still running.
type Scheduler struct {
	runner     CycleRunner
	logger     *slog.Logger
	cancelFunc context.CancelFunc
	done       chan struct{}
	interval   time.Duration
	mu         gosync.Mutex
}

// New creates a scheduler
func New(runner CycleRunner, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		runner:   runner,
		interval: interval,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// Start runs the first cycle immediately and then one cycle per interval.
// Blocks until ctx is cancelled or Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.interval <= 0 {
		return ErrInvalidInterval
	}

	loopCtx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	s.cancelFunc = cancel
	s.mu.Unlock()

	defer func() {
		cancel()
		close(s.done)
		s.logger.Info("Sync scheduler stopped")
	}()

	s.logger.Info("Starting sync scheduler", "interval", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.runCycle(loopCtx)

	for {
		select {
		case <-ticker.C:
			s.runCycle(loopCtx)
		case <-loopCtx.Done():
			return nil
		}
	}
}

// Stop cancels the loop and waits for the running cycle to finish
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	cancel := s.cancelFunc
	s.mu.Unlock()

	if cancel == nil {
		return nil
	}

	s.logger.Info("Stopping sync scheduler")
	cancel()
	<-s.done
	return nil
}

func (s *Scheduler) runCycle(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	res := s.runner.RunCycle(ctx)
	if res == nil {
		return
	}
	s.logger.Debug("Next sync cycle scheduled", "cycle_id", res.CycleID, "in", s.interval)
}
