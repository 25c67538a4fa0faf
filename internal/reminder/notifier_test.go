package reminder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"go.uber.org/multierr"

	"github.com/pantrychef/pantrychef/internal/broker"
	"github.com/pantrychef/pantrychef/internal/testutil"
)

type fakePublisher struct {
	stream string
	values map[string]any
	err    error
}

func (f *fakePublisher) Publish(ctx context.Context, stream string, values map[string]any) (string, error) {
	if _, ok := ctx.Deadline(); !ok {
		return "", errors.New("publish without deadline")
	}
	f.stream = stream
	f.values = values
	return "1-0", f.err
}

func sampleNotification() Notification {
	return Notification{
		ID:         "01HXAMPLE0000000000000000",
		UserID:     "user-1",
		Ingredient: "milk",
		ExpiryDate: "2024-05-01",
		Message:    Message("milk"),
		CreatedAt:  time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	if err := NewLogNotifier(logger).Notify(context.Background(), sampleNotification()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{`"msg":"expiry_reminder_sent"`, `"user_id":"user-1"`, `"ingredient":"milk"`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in log output: %s", want, out)
		}
	}
}

func TestStreamNotifier(t *testing.T) {
	pub := &fakePublisher{}
	n := sampleNotification()

	if err := NewStreamNotifier(pub).Notify(context.Background(), n); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if pub.stream != StreamKey {
		t.Errorf("stream = %s, want %s", pub.stream, StreamKey)
	}
	if pub.values["user_id"] != "user-1" {
		t.Errorf("user_id field = %v", pub.values["user_id"])
	}

	payload, ok := pub.values["payload"].(string)
	if !ok {
		t.Fatalf("payload is %T, want string", pub.values["payload"])
	}
	var decoded Notification
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if decoded != n {
		t.Errorf("decoded = %+v, want %+v", decoded, n)
	}
}

func TestStreamNotifier_PublishError(t *testing.T) {
	pub := &fakePublisher{err: errors.New("redis: connection refused")}
	err := NewStreamNotifier(pub).Notify(context.Background(), sampleNotification())
	if !errors.Is(err, pub.err) {
		t.Errorf("expected publish error, got %v", err)
	}
}

func TestMultiNotifier_TriesAll(t *testing.T) {
	first := &recordingNotifier{fail: map[string]error{"milk": errors.New("first down")}}
	second := &recordingNotifier{}
	third := &recordingNotifier{fail: map[string]error{"milk": errors.New("third down")}}

	err := MultiNotifier{first, second, third}.Notify(context.Background(), sampleNotification())

	if err == nil {
		t.Fatal("expected combined error")
	}
	if got := len(multierr.Errors(err)); got != 2 {
		t.Errorf("expected 2 combined errors, got %d", got)
	}
	if got := len(second.Sent()); got != 1 {
		t.Errorf("healthy notifier got %d notifications, want 1", got)
	}
}

func TestStreamNotifier_Redis(t *testing.T) {
	redisURL := testutil.RequireEnv(t, "REDIS_URL")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	b, err := broker.New(ctx, redisURL)
	if err != nil {
		t.Fatalf("connect redis: %v", err)
	}
	defer b.Close()

	before, err := b.Client().XLen(ctx, StreamKey).Result()
	if err != nil {
		t.Fatalf("xlen: %v", err)
	}

	if err := NewStreamNotifier(b).Notify(ctx, sampleNotification()); err != nil {
		t.Fatalf("notify: %v", err)
	}

	after, err := b.Client().XLen(ctx, StreamKey).Result()
	if err != nil {
		t.Fatalf("xlen: %v", err)
	}
	if after <= before {
		t.Errorf("stream length did not grow: %d -> %d", before, after)
	}

	entries, err := b.Client().XRevRangeN(ctx, StreamKey, "+", "-", 1).Result()
	if err != nil {
		t.Fatalf("xrevrange: %v", err)
	}
	if len(entries) != 1 || entries[0].Values["user_id"] != "user-1" {
		t.Errorf("unexpected latest entry: %+v", entries)
	}
}
