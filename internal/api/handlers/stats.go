package handlers

import "net/http"

// StatsResponse aggregates service-wide counters.
type StatsResponse struct {
	Status          string `json:"status"`
	ActiveSessions  int    `json:"activeSessions"`
	ScamSessions    int    `json:"scamSessions"`
	ReportedCount   int    `json:"reportedCount"`
	MessagesHandled int    `json:"messagesHandled"`
}

// Stats returns counters across all live sessions.
func (h *Handlers) Stats(w http.ResponseWriter, r *http.Request) {
	sessions, scams, reported, messages := h.deps.Store.Stats()
	writeJSON(w, http.StatusOK, StatsResponse{
		Status:          "success",
		ActiveSessions:  sessions,
		ScamSessions:    scams,
		ReportedCount:   reported,
		MessagesHandled: messages,
	})
}
