package handlers

import (
	"net/http"
	"runtime"
	"time"

	"ffmpeg-gui/internal/appconfig"
	"ffmpeg-gui/internal/startup"
)

const (
	statusHealthy       = "healthy"
	statusUninitialized = "uninitialized"
	statusDegraded      = "degraded"
)

// HealthResponse contains the health check response
type HealthResponse struct {
	Status     string `json:"status"`
	Ready      bool   `json:"ready"`
	Version    string `json:"version"`
	Uptime     string `json:"uptime"`
	ConfigPath string `json:"configPath"`
	Customized bool   `json:"customized"`
	Errors     int    `json:"errors"`
	Warnings   int    `json:"warnings"`
	ParseError string `json:"parseError,omitempty"`

	// System info
	GoVersion    string `json:"goVersion"`
	NumGoroutine int    `json:"numGoroutine"`
}

// HealthCheck returns the health status of the Config Store
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report, err := h.collect(r.Context(), 1)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	response := HealthResponse{
		Ready:        report.Ready(),
		Version:      startup.Version,
		Uptime:       time.Since(h.startTime).Round(time.Second).String(),
		ConfigPath:   report.Config.Path,
		Customized:   report.Customized,
		ParseError:   report.ParseError,
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
	}

	counts := appconfig.Count(report.Issues)
	response.Errors = counts[appconfig.SeverityError]
	response.Warnings = counts[appconfig.SeverityWarning]

	switch {
	case !report.Config.Exists:
		response.Status = statusUninitialized
	case !report.Parsed || response.Errors > 0:
		response.Status = statusDegraded
	default:
		response.Status = statusHealthy
	}

	w.Header().Set("Content-Type", "application/json")

	// Return 503 only if not ready at all
	if !response.Ready {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}

	writeJSON(w, response)
}

// LivenessCheck is a simple liveness probe (always returns 200 if server is running)
func (h *Handlers) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	// For HEAD requests, only send headers (no body)
	if r.Method != http.MethodHead {
		writeJSON(w, map[string]string{
			"status": "alive",
		})
	}
}

// ReadinessCheck returns 200 only when the Config Store exists and parses
func (h *Handlers) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	report, err := h.collect(r.Context(), 1)
	if err != nil || !report.Ready() {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		writeJSON(w, map[string]string{
			"status": "not_ready",
		})
		return
	}

	writeJSONStatus(w, "ready")
}
