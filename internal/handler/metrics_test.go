package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pantrychef/pantrychef/internal/metrics"
)

func TestMetricsHandler_Metrics(t *testing.T) {
	recorder := metrics.NewInMemory()
	recorder.AddExpiringItems(3)
	recorder.IncFavoriteSaved()
	recorder.IncRecipeLookup("find_by_ingredients", "success")
	recorder.ObserveRecipeLookupDuration("find_by_ingredients", 250*time.Millisecond)
	recorder.IncReminderSent("success")

	h := NewMetricsHandler(recorder)
	rec := httptest.NewRecorder()
	h.Metrics(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	expected := []string{
		"pantrychef_expiring_items_added_total 3",
		"pantrychef_favorites_saved_total 1",
		`pantrychef_recipe_lookups_total{op="find_by_ingredients",status="success"} 1`,
		`pantrychef_recipe_lookup_duration_seconds_sum{op="find_by_ingredients"} 0.250000`,
		`pantrychef_reminders_sent_total{status="success"} 1`,
	}
	for _, line := range expected {
		if !strings.Contains(body, line) {
			t.Errorf("expected metrics to contain %q\n%s", line, body)
		}
	}
}

func TestMetricsHandler_NoSnapshotter(t *testing.T) {
	h := NewMetricsHandler(nil)
	rec := httptest.NewRecorder()
	h.Metrics(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", rec.Code)
	}
}
