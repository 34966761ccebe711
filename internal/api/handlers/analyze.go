package handlers

import (
	"context"
	"net/http"
	"strings"

	"honeytrap-lab/internal/domain/models"
	"honeytrap-lab/internal/domain/services"
	"honeytrap-lab/internal/report"
)

// IncomingMessage is the message portion of an analyze request.
type IncomingMessage struct {
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

// AnalyzeRequest is the payload for POST /api/v1/analyze.
type AnalyzeRequest struct {
	SessionID           string            `json:"sessionId"`
	Message             IncomingMessage   `json:"message"`
	ConversationHistory []IncomingMessage `json:"conversationHistory,omitempty"`
	Metadata            *models.Metadata  `json:"metadata,omitempty"`
}

// AnalyzeResponse is the payload returned for each processed turn.
type AnalyzeResponse struct {
	Status                 string                       `json:"status"`
	Reply                  string                       `json:"reply"`
	SessionID              string                       `json:"sessionId"`
	ScamDetected           bool                         `json:"scamDetected"`
	ExtractedIntelligence  models.ExtractedIntelligence `json:"extractedIntelligence"`
	TotalMessagesExchanged int                          `json:"totalMessagesExchanged"`
	ConversationStage      int                          `json:"conversationStage"`
	SessionEnded           bool                         `json:"sessionEnded,omitempty"`
	EndReason              string                       `json:"endReason,omitempty"`
}

// Analyze processes one scammer turn: classify, extract, reply, and
// decide whether to end the session. The whole turn runs under the
// session lock so concurrent requests for the same session serialize.
func (h *Handlers) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	req.SessionID = strings.TrimSpace(req.SessionID)
	if req.SessionID == "" {
		writeError(w, http.StatusBadRequest, "sessionId is required")
		return
	}
	if strings.TrimSpace(req.Message.Text) == "" {
		writeError(w, http.StatusBadRequest, "message.text is required")
		return
	}
	sender := models.Sender(req.Message.Sender)
	if req.Message.Sender == "" {
		sender = models.SenderScammer
	} else if !sender.Valid() {
		writeError(w, http.StatusBadRequest, "message.sender must be \"scammer\" or \"user\"")
		return
	}

	log := h.logger.WithSessionID(req.SessionID)
	ctx := r.Context()

	session, release := h.deps.Store.Acquire(req.SessionID)
	defer release()

	if req.Metadata != nil {
		session.Metadata = *req.Metadata
	}

	// A caller supplying history for a session we have not seen
	// rebuilds the transcript before the new turn is applied.
	if session.MessageCount() == 0 && len(req.ConversationHistory) > 0 {
		h.seedTranscript(session, req.ConversationHistory)
	}

	incoming := models.NewMessage(sender, req.Message.Text, req.Message.Timestamp)
	priorTranscript := append([]models.Message{}, session.Transcript...)
	session.Transcript = append(session.Transcript, incoming)

	// Scammer turns drive detection and extraction. Once a session is
	// flagged the classifier is not consulted again; the confidence
	// recorded at the transition stands for the session's lifetime.
	if sender == models.SenderScammer {
		if !session.ScamDetected {
			verdict := h.deps.Classifier.Classify(ctx, incoming.Text, priorTranscript)
			if verdict.IsScam {
				session.ScamDetected = true
				session.ScamConfidence = verdict.Confidence
			}

			log.Info().
				Bool("scam", verdict.IsScam).
				Float64("confidence", verdict.Confidence).
				Int("messages", session.MessageCount()).
				Msg("Turn classified")
		}

		// Re-extraction over the full transcript is idempotent, so a
		// replayed message cannot double-count artifacts.
		intel := h.deps.Aggregator.ExtractFromTranscript(session.Transcript)
		session.Intelligence.Merge(intel)
	}

	reply := h.deps.Persona.Reply(ctx, session, incoming.Text)
	session.Transcript = append(session.Transcript, models.NewMessage(models.SenderAgent, reply, 0))

	decision := h.deps.Policy.Evaluate(session.MessageCount(), &session.Intelligence)
	if decision.End {
		h.finishSession(ctx, session, decision.Reason)
	}

	writeJSON(w, http.StatusOK, AnalyzeResponse{
		Status:                 "success",
		Reply:                  reply,
		SessionID:              session.ID,
		ScamDetected:           session.ScamDetected,
		ExtractedIntelligence:  session.Intelligence.Clone(),
		TotalMessagesExchanged: session.MessageCount(),
		ConversationStage:      services.Stage(session.MessageCount()),
		SessionEnded:           decision.End,
		EndReason:              decision.Reason,
	})
}

// seedTranscript rebuilds session state from caller-provided history.
func (h *Handlers) seedTranscript(session *models.SessionState, history []IncomingMessage) {
	for _, m := range history {
		sender := models.Sender(m.Sender)
		if !sender.Valid() || strings.TrimSpace(m.Text) == "" {
			continue
		}
		session.Transcript = append(session.Transcript, models.NewMessage(sender, m.Text, m.Timestamp))
	}
	session.Intelligence.Merge(h.deps.Aggregator.ExtractFromTranscript(session.Transcript))
}

// finishSession composes the agent notes and delivers the final
// report at most once. One attempt per triggering request; on failure
// the reported flag stays clear so a later qualifying turn retries.
func (h *Handlers) finishSession(ctx context.Context, session *models.SessionState, reason string) {
	log := h.logger.WithSessionID(session.ID)
	log.Info().Str("reason", reason).Msg("Session ended")

	session.Notes = h.deps.Summary.Compose(session)

	if h.deps.Reporter == nil || !h.deps.Reporter.Enabled() || session.Reported {
		return
	}

	err := h.deps.Reporter.Send(ctx, report.FinalReport{
		SessionID:              session.ID,
		ScamDetected:           session.ScamDetected,
		TotalMessagesExchanged: session.MessageCount(),
		ExtractedIntelligence:  session.Intelligence.Clone(),
		AgentNotes:             session.Notes,
	})
	if err != nil {
		log.Error().Err(err).Msg("Final report delivery failed")
		return
	}
	session.MarkReported()
}
