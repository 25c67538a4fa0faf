package reminder

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/multierr"

	"github.com/pantrychef/pantrychef/internal/model"
)

const (
	// StreamKey is the Redis stream reminders are published to.
	StreamKey = "stream:expiry_reminders"

	// PublishTimeout bounds a single stream publish.
	PublishTimeout = 2 * time.Second
)

// Notification is one reminder for one stored ingredient.
type Notification struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Ingredient string    `json:"ingredient"`
	ExpiryDate string    `json:"expiry_date"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewNotification builds the reminder for rec.
func NewNotification(rec *model.ExpiringIngredient, at time.Time) Notification {
	return Notification{
		ID:         ulid.Make().String(),
		UserID:     rec.UserID,
		Ingredient: rec.Ingredient,
		ExpiryDate: model.FormatDate(rec.ExpiryDate),
		Message:    Message(rec.Ingredient),
		CreatedAt:  at.UTC(),
	}
}

// Message renders the reminder text for an ingredient.
func Message(ingredient string) string {
	return fmt.Sprintf("Reminder: Your ingredient '%s' is expiring today!", ingredient)
}

// Notifier delivers a reminder somewhere.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// LogNotifier writes reminders to the structured log.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With("component", "reminder.log")}
}

// Notify implements Notifier.
func (l *LogNotifier) Notify(ctx context.Context, n Notification) error {
	l.logger.InfoContext(ctx, "expiry_reminder_sent",
		"notification_id", n.ID,
		"user_id", n.UserID,
		"ingredient", n.Ingredient,
		"expiry_date", n.ExpiryDate,
		"message", n.Message,
	)
	return nil
}

// Publisher appends entries to a stream. *broker.Broker satisfies it.
type Publisher interface {
	Publish(ctx context.Context, stream string, values map[string]any) (string, error)
}

// StreamNotifier publishes reminders as JSON payloads on StreamKey.
type StreamNotifier struct {
	publisher Publisher
	stream    string
}

// NewStreamNotifier creates a StreamNotifier writing to StreamKey.
func NewStreamNotifier(publisher Publisher) *StreamNotifier {
	return &StreamNotifier{publisher: publisher, stream: StreamKey}
}

// Notify implements Notifier.
func (s *StreamNotifier) Notify(ctx context.Context, n Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, PublishTimeout)
	defer cancel()

	if _, err := s.publisher.Publish(ctx, s.stream, map[string]any{
		"user_id": n.UserID,
		"payload": string(data),
	}); err != nil {
		return err
	}
	return nil
}

// MultiNotifier fans a reminder out to every notifier.
// All notifiers are tried; their errors are combined.
type MultiNotifier []Notifier

// Notify implements Notifier.
func (m MultiNotifier) Notify(ctx context.Context, n Notification) error {
	var err error
	for _, notifier := range m {
		err = multierr.Append(err, notifier.Notify(ctx, n))
	}
	return err
}
