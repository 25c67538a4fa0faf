package reminder

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// Runner is the unit of work a scheduler triggers.
type Runner interface {
	RunToday(ctx context.Context) (Result, error)
}

// TickerScheduler runs the reminder job on a fixed interval in-process.
type TickerScheduler struct {
	runner     Runner
	interval   time.Duration
	runOnStart bool
	logger     *slog.Logger

	started bool
	cancel  context.CancelFunc
	done    chan struct{}
	mu      sync.Mutex
}

// NewTickerScheduler creates a TickerScheduler.
func NewTickerScheduler(runner Runner, interval time.Duration, runOnStart bool, logger *slog.Logger) *TickerScheduler {
	return &TickerScheduler{
		runner:     runner,
		interval:   interval,
		runOnStart: runOnStart,
		logger:     logger.With("component", "reminder.ticker"),
	}
}

// Start launches the scheduling goroutine and returns immediately.
func (s *TickerScheduler) Start(ctx context.Context) error {
	if s.interval <= 0 {
		return errors.New("reminder interval must be positive")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return errors.New("scheduler already started")
	}
	s.started = true
	s.done = make(chan struct{})
	ctx, s.cancel = context.WithCancel(ctx)

	go s.loop(ctx)

	s.logger.Info("reminder scheduler started", "interval", s.interval.String(), "run_on_start", s.runOnStart)
	return nil
}

func (s *TickerScheduler) loop(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	if s.runOnStart {
		s.runOnce(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *TickerScheduler) runOnce(ctx context.Context) {
	if _, err := s.runner.RunToday(ctx); err != nil && ctx.Err() == nil {
		s.logger.Error("reminder run failed", "error", err)
	}
}

// Shutdown stops the scheduler and waits for an in-flight run to finish.
// It implements server.ShutdownFunc.
func (s *TickerScheduler) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return nil
	}
	cancel := s.cancel
	done := s.done
	s.mu.Unlock()

	cancel()

	select {
	case <-done:
		s.logger.Info("reminder scheduler stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("reminder scheduler shutdown timed out")
		return ctx.Err()
	}
}
