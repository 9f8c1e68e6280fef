package handlers

import (
	"net/http"

	"ffmpeg-gui/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsHandler returns the Prometheus handler for the bootstrap
// registry plus the Go runtime collectors.
func (h *Handlers) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(metrics.Gatherer(), promhttp.HandlerOpts{})
}
