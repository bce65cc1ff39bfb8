package handler

import (
	"fmt"
	"net/http"

	"github.com/tripdesk/tripdesk/internal/metrics"
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

	writeMetric(w, "tripdesk_trip_page_cache_hits_total %d\n", snap.TripPageCacheHits)
	writeMetric(w, "tripdesk_trip_page_cache_misses_total %d\n", snap.TripPageCacheMisses)
	writeMetric(w, "tripdesk_trip_list_duration_seconds_count %d\n", snap.TripListDurationCount)
	writeMetric(w, "tripdesk_trip_list_duration_seconds_sum %.6f\n", float64(snap.TripListDurationTotalNs)/1e9)

	writeMetric(w, "tripdesk_assignments_total{status=\"accepted\"} %d\n", snap.AssignmentsAccepted)
	writeMetric(w, "tripdesk_assignments_rejected_total{reason=\"duplicate_person\"} %d\n", snap.AssignmentsRejectedDup)
	writeMetric(w, "tripdesk_assignments_rejected_total{reason=\"invalid_trip\"} %d\n", snap.AssignmentsRejectedTrip)
	writeMetric(w, "tripdesk_assignments_rejected_total{reason=\"other\"} %d\n", snap.AssignmentsRejectedOther)

	writeMetric(w, "tripdesk_clients_created_total %d\n", snap.ClientsCreated)
	writeMetric(w, "tripdesk_clients_updated_total %d\n", snap.ClientsUpdated)
	writeMetric(w, "tripdesk_clients_deleted_total %d\n", snap.ClientsDeleted)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
