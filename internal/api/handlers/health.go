package handlers

import (
	"net/http"
	"time"
)

// HealthResponse is the payload for the health endpoints.
type HealthResponse struct {
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// Health reports liveness.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Version:   h.deps.Config.App.Version,
		Timestamp: time.Now(),
	})
}

// Ready reports readiness, including dependency checks. The service
// stays ready without Redis since it only degrades caching and rate
// limiting.
func (h *Handlers) Ready(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string)

	if h.deps.Cache != nil {
		if err := h.deps.Cache.Ping(r.Context()); err != nil {
			checks["redis"] = "unavailable: " + err.Error()
		} else {
			checks["redis"] = "ok"
		}
	} else {
		checks["redis"] = "disabled"
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ready",
		Version:   h.deps.Config.App.Version,
		Timestamp: time.Now(),
		Checks:    checks,
	})
}
