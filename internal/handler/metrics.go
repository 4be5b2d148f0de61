package handler

import (
	"net/http"

	"github.com/bookquest/bookquest/internal/metrics"
)

// MetricsHandler exposes the in-process counters as JSON.
type MetricsHandler struct {
	source metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(source metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{source: source}
}

// Metrics handles GET /metrics.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.source.Snapshot())
}
