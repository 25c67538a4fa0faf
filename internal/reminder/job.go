// Package reminder finds ingredients expiring today and notifies their owners.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.uber.org/multierr"

	"github.com/pantrychef/pantrychef/internal/metrics"
	"github.com/pantrychef/pantrychef/internal/model"
)

// Store finds ingredients by expiry date.
type Store interface {
	FindExpiringOn(ctx context.Context, day time.Time) ([]*model.ExpiringIngredient, error)
}

// Result summarises one scan.
type Result struct {
	Day     time.Time
	Matched int
	Sent    int
	Failed  int
}

// Job scans for ingredients expiring on a given day.
// It keeps no state between runs; running it twice notifies twice.
type Job struct {
	store    Store
	notifier Notifier
	location *time.Location
	logger   *slog.Logger
	metrics  metrics.Recorder
	now      func() time.Time
}

// NewJob creates a Job. A nil location means time.Local.
func NewJob(store Store, notifier Notifier, location *time.Location, logger *slog.Logger, recorder metrics.Recorder) *Job {
	if location == nil {
		location = time.Local
	}
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &Job{
		store:    store,
		notifier: notifier,
		location: location,
		logger:   logger.With("component", "reminder.job"),
		metrics:  recorder,
		now:      time.Now,
	}
}

// Run notifies about every ingredient expiring on the calendar day of today.
// A failed notification does not stop the scan; failures are combined into
// the returned error and counted in the Result.
func (j *Job) Run(ctx context.Context, today time.Time) (Result, error) {
	start := time.Now()
	day := model.CivilDate(today)
	result := Result{Day: day}

	records, err := j.store.FindExpiringOn(ctx, day)
	if err != nil {
		j.metrics.ObserveReminderRun(0, time.Since(start))
		return result, fmt.Errorf("failed to find expiring ingredients: %w", err)
	}
	result.Matched = len(records)

	var notifyErr error
	for _, rec := range records {
		if ctx.Err() != nil {
			notifyErr = multierr.Append(notifyErr, ctx.Err())
			break
		}

		n := NewNotification(rec, j.now())
		if err := j.notifier.Notify(ctx, n); err != nil {
			result.Failed++
			j.metrics.IncReminderSent("failed")
			j.logger.Warn("expiry_reminder_failed",
				"ingredient_id", rec.ID,
				"user_id", rec.UserID,
				"error", err,
			)
			notifyErr = multierr.Append(notifyErr, fmt.Errorf("notify ingredient %d: %w", rec.ID, err))
			continue
		}
		result.Sent++
		j.metrics.IncReminderSent("success")
	}

	duration := time.Since(start)
	j.metrics.ObserveReminderRun(result.Matched, duration)
	j.logger.Info("expiry_reminder_run",
		"day", model.FormatDate(day),
		"matched", result.Matched,
		"sent", result.Sent,
		"failed", result.Failed,
		"duration_ms", duration.Milliseconds(),
	)

	return result, notifyErr
}

// RunToday runs the job for the current day in the configured location.
func (j *Job) RunToday(ctx context.Context) (Result, error) {
	return j.Run(ctx, j.now().In(j.location))
}
