package handlers

import (
	"net/http"
	"strconv"
)

const (
	defaultBootLimit = 20
	maxBootLimit     = 500
)

// GetConfigStatus returns the full status report of the Config Store
func (h *Handlers) GetConfigStatus(w http.ResponseWriter, r *http.Request) {
	report, err := h.collect(r.Context(), defaultBootLimit)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	writeJSON(w, report)
}

// ListBoots returns recent container starts, newest first. ?limit=N
// bounds the result.
func (h *Handlers) ListBoots(w http.ResponseWriter, r *http.Request) {
	if h.boots == nil {
		writeJSONError(w, "boot journal is disabled", http.StatusNotFound)
		return
	}

	limit := defaultBootLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			writeJSONError(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = min(n, maxBootLimit)
	}

	boots, err := h.boots.Recent(r.Context(), limit)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	if boots == nil {
		writeJSON(w, []struct{}{})
		return
	}
	writeJSON(w, boots)
}
