package handler

import (
	"fmt"
	"net/http"

	"github.com/pantrychef/pantrychef/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "pantrychef_expiring_items_added_total %d\n", snap.ExpiringItemsAdded)
	writeMetric(w, "pantrychef_favorites_saved_total %d\n", snap.FavoritesSaved)

	for _, op := range snap.LookupOps() {
		stats := snap.RecipeLookups[op]
		writeMetric(w, "pantrychef_recipe_lookups_total{op=%q,status=\"success\"} %d\n", op, stats.Success)
		writeMetric(w, "pantrychef_recipe_lookups_total{op=%q,status=\"error\"} %d\n", op, stats.Error)
		writeMetric(w, "pantrychef_recipe_lookup_duration_seconds_count{op=%q} %d\n", op, stats.DurationCount)
		writeMetric(w, "pantrychef_recipe_lookup_duration_seconds_sum{op=%q} %.6f\n", op, float64(stats.DurationTotalNs)/1e9)
	}

	writeMetric(w, "pantrychef_reminders_sent_total{status=\"success\"} %d\n", snap.RemindersSent)
	writeMetric(w, "pantrychef_reminders_sent_total{status=\"failed\"} %d\n", snap.RemindersFailed)
	writeMetric(w, "pantrychef_reminder_runs_total %d\n", snap.ReminderRuns)
	writeMetric(w, "pantrychef_reminder_matched_total %d\n", snap.ReminderMatched)
	writeMetric(w, "pantrychef_reminder_run_duration_seconds_sum %.6f\n", float64(snap.ReminderRunDurationNs)/1e9)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
