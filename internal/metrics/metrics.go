// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Pantry metrics
	AddExpiringItems(count int)
	IncFavoriteSaved()

	// Upstream recipe lookups
	IncRecipeLookup(op, status string) // status: "success" or "error"
	ObserveRecipeLookupDuration(op string, duration time.Duration)

	// Reminder job
	IncReminderSent(status string) // status: "success" or "failed"
	ObserveReminderRun(matched int, duration time.Duration)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
