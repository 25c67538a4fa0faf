package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// AddExpiringItems is a no-op.
func (n *NoopRecorder) AddExpiringItems(count int) {}

// IncFavoriteSaved is a no-op.
func (n *NoopRecorder) IncFavoriteSaved() {}

// IncRecipeLookup is a no-op.
func (n *NoopRecorder) IncRecipeLookup(op, status string) {}

// ObserveRecipeLookupDuration is a no-op.
func (n *NoopRecorder) ObserveRecipeLookupDuration(op string, duration time.Duration) {}

// IncReminderSent is a no-op.
func (n *NoopRecorder) IncReminderSent(status string) {}

// ObserveReminderRun is a no-op.
func (n *NoopRecorder) ObserveReminderRun(matched int, duration time.Duration) {}
