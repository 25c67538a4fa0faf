package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

const (
	// TaskExpiryReminder is the asynq task type for one reminder scan.
	TaskExpiryReminder = "reminder:expiry"

	// QueueName is the asynq queue reminder tasks are placed on.
	QueueName = "reminders"

	maxTaskTimeout = 10 * time.Minute
)

// QueueScheduler runs the reminder job through an asynq periodic task.
// The asynq scheduler enqueues TaskExpiryReminder every interval and the
// asynq server executes it. Failed runs are not retried.
//
// The Redis client is borrowed; closing it stays with the caller.
type QueueScheduler struct {
	runner   Runner
	interval time.Duration
	client   redis.UniversalClient
	location *time.Location
	logger   *slog.Logger

	scheduler *asynq.Scheduler
	server    *asynq.Server
	started   bool
	mu        sync.Mutex
}

// NewQueueScheduler creates a QueueScheduler on top of an existing Redis client.
func NewQueueScheduler(runner Runner, interval time.Duration, client redis.UniversalClient, location *time.Location, logger *slog.Logger) *QueueScheduler {
	if location == nil {
		location = time.Local
	}
	return &QueueScheduler{
		runner:   runner,
		interval: interval,
		client:   client,
		location: location,
		logger:   logger.With("component", "reminder.queue"),
	}
}

// CronSpec returns the asynq schedule for the configured interval.
func (q *QueueScheduler) CronSpec() string {
	return "@every " + q.interval.String()
}

// ProcessTask implements asynq.Handler.
func (q *QueueScheduler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	if task.Type() != TaskExpiryReminder {
		return fmt.Errorf("unexpected task type %q: %w", task.Type(), asynq.SkipRetry)
	}
	if _, err := q.runner.RunToday(ctx); err != nil {
		return fmt.Errorf("reminder run: %w", err)
	}
	return nil
}

// Start registers the periodic task and starts the asynq server and scheduler.
// On failure nothing is left running.
func (q *QueueScheduler) Start(ctx context.Context) error {
	if q.interval <= 0 {
		return errors.New("reminder interval must be positive")
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started {
		return errors.New("scheduler already started")
	}

	asynqLog := &asynqLogger{logger: q.logger}

	scheduler := asynq.NewSchedulerFromRedisClient(q.client, &asynq.SchedulerOpts{
		Location: q.location,
		Logger:   asynqLog,
		LogLevel: asynq.WarnLevel,
	})
	if _, err := scheduler.Register(q.CronSpec(), asynq.NewTask(TaskExpiryReminder, nil),
		asynq.Queue(QueueName), asynq.MaxRetry(0), asynq.Timeout(q.taskTimeout())); err != nil {
		return fmt.Errorf("register reminder task: %w", err)
	}

	server := asynq.NewServerFromRedisClient(q.client, asynq.Config{
		Concurrency: 1,
		Queues:      map[string]int{QueueName: 1},
		Logger:      asynqLog,
		LogLevel:    asynq.WarnLevel,
	})

	mux := asynq.NewServeMux()
	mux.Handle(TaskExpiryReminder, q)

	if err := server.Start(mux); err != nil {
		return fmt.Errorf("start reminder worker: %w", err)
	}
	if err := scheduler.Start(); err != nil {
		server.Shutdown()
		return fmt.Errorf("start reminder scheduler: %w", err)
	}

	q.scheduler = scheduler
	q.server = server
	q.started = true
	q.logger.Info("reminder queue started", "schedule", q.CronSpec(), "queue", QueueName)
	return nil
}

// taskTimeout bounds one run to the interval, capped at maxTaskTimeout.
func (q *QueueScheduler) taskTimeout() time.Duration {
	if q.interval < maxTaskTimeout {
		return q.interval
	}
	return maxTaskTimeout
}

// Shutdown stops the scheduler first so no new task is enqueued, then drains the server.
// It implements server.ShutdownFunc.
func (q *QueueScheduler) Shutdown(ctx context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.started {
		return nil
	}

	scheduler, server := q.scheduler, q.server
	done := make(chan struct{})
	go func() {
		scheduler.Shutdown()
		server.Shutdown()
		close(done)
	}()

	q.started = false
	q.scheduler = nil
	q.server = nil

	select {
	case <-done:
		q.logger.Info("reminder queue stopped")
		return nil
	case <-ctx.Done():
		q.logger.Warn("reminder queue shutdown timed out")
		return ctx.Err()
	}
}

// asynqLogger routes asynq's internal logging through slog.
type asynqLogger struct {
	logger *slog.Logger
}

func (l *asynqLogger) Debug(args ...any) { l.logger.Debug(fmt.Sprint(args...)) }
func (l *asynqLogger) Info(args ...any)  { l.logger.Info(fmt.Sprint(args...)) }
func (l *asynqLogger) Warn(args ...any)  { l.logger.Warn(fmt.Sprint(args...)) }
func (l *asynqLogger) Error(args ...any) { l.logger.Error(fmt.Sprint(args...)) }

// Fatal matches asynq's contract: log, then exit.
func (l *asynqLogger) Fatal(args ...any) {
	l.logger.Error(fmt.Sprint(args...))
	os.Exit(1)
}
