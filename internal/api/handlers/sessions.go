package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"honeytrap-lab/internal/domain/models"
	"honeytrap-lab/internal/store"
)

// SessionResponse is the read-only view of a session.
type SessionResponse struct {
	Status                 string                       `json:"status"`
	SessionID              string                       `json:"sessionId"`
	ScamDetected           bool                         `json:"scamDetected"`
	ScamConfidence         float64                      `json:"scamConfidence"`
	Reported               bool                         `json:"reported"`
	ExtractedIntelligence  models.ExtractedIntelligence `json:"extractedIntelligence"`
	TotalMessagesExchanged int                          `json:"totalMessagesExchanged"`
	Transcript             []models.Message             `json:"transcript"`
	Metadata               models.Metadata              `json:"metadata,omitempty"`
	AgentNotes             string                       `json:"agentNotes,omitempty"`
}

// GetSession returns a snapshot of one session.
func (h *Handlers) GetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	snapshot, err := h.deps.Store.Snapshot(id)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load session")
		return
	}

	writeJSON(w, http.StatusOK, SessionResponse{
		Status:                 "success",
		SessionID:              snapshot.ID,
		ScamDetected:           snapshot.ScamDetected,
		ScamConfidence:         snapshot.ScamConfidence,
		Reported:               snapshot.Reported,
		ExtractedIntelligence:  snapshot.Intelligence,
		TotalMessagesExchanged: len(snapshot.Transcript),
		Transcript:             snapshot.Transcript,
		Metadata:               snapshot.Metadata,
		AgentNotes:             snapshot.Notes,
	})
}

// DeleteSession removes a session. Admin only.
func (h *Handlers) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.deps.Store.Delete(id); err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete session")
		return
	}

	h.logger.WithSessionID(id).Info().Msg("Session deleted")
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "success",
		"sessionId": id,
	})
}
