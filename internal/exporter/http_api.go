package exporter

import (
	"encoding/json"
	"net/http"
	"time"
)

// HTTPAPI exposes the latest reports as JSON endpoints.
type HTTPAPI struct {
	store   *Store
	version string
}

// NewHTTPAPI builds a HTTPAPI bound to the report store.
func NewHTTPAPI(store *Store, version string) *HTTPAPI {
	return &HTTPAPI{store: store, version: version}
}

// Register wires endpoints into the provided mux.
func (h *HTTPAPI) Register(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", h.healthz)
	mux.HandleFunc("/api/v1/binpacking", h.binpacking)
	mux.HandleFunc("/api/v1/requests", h.requests)
	mux.HandleFunc("/api/v1/pending", h.pending)
}

func (h *HTTPAPI) healthz(w http.ResponseWriter, r *http.Request) {
	status := "initializing"
	code := http.StatusServiceUnavailable
	timestamp := time.Now().UTC()
	if set, ok := h.store.Latest(); ok {
		status = "ok"
		code = http.StatusOK
		timestamp = set.GeneratedAt.UTC()
	}
	respondJSON(w, code, map[string]any{
		"status":    status,
		"version":   h.version,
		"timestamp": timestamp.Format(time.RFC3339Nano),
	})
}

func (h *HTTPAPI) binpacking(w http.ResponseWriter, r *http.Request) {
	set, ok := h.store.Latest()
	if !ok {
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no report generated yet"})
		return
	}
	respondJSON(w, http.StatusOK, set.Binpacking)
}

func (h *HTTPAPI) requests(w http.ResponseWriter, r *http.Request) {
	set, ok := h.store.Latest()
	if !ok {
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no report generated yet"})
		return
	}
	respondJSON(w, http.StatusOK, set.Requests)
}

func (h *HTTPAPI) pending(w http.ResponseWriter, r *http.Request) {
	set, ok := h.store.Latest()
	if !ok {
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no report generated yet"})
		return
	}
	respondJSON(w, http.StatusOK, set.Pending)
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(payload)
}
