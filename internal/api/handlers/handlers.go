package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"honeytrap-lab/internal/config"
	"honeytrap-lab/internal/domain/models"
	"honeytrap-lab/internal/domain/services"
	"honeytrap-lab/internal/infrastructure/cache"
	"honeytrap-lab/internal/report"
	"honeytrap-lab/internal/store"
	"honeytrap-lab/pkg/logger"
)

// MessageClassifier decides whether an incoming message is a scam.
type MessageClassifier interface {
	Classify(ctx context.Context, text string, history []models.Message) models.Verdict
}

// ReplyGenerator produces the honeypot's in-character reply.
type ReplyGenerator interface {
	Reply(ctx context.Context, session *models.SessionState, incoming string) string
}

// ReportSender delivers final session reports.
type ReportSender interface {
	Enabled() bool
	Send(ctx context.Context, r report.FinalReport) error
}

// Dependencies holds everything the handlers need.
type Dependencies struct {
	Config     *config.Config
	Logger     *logger.Logger
	Store      *store.SessionStore
	Classifier MessageClassifier
	Persona    ReplyGenerator
	Aggregator *services.Aggregator
	Policy     *services.TerminationPolicy
	Summary    *services.SummaryComposer
	Reporter   ReportSender
	Cache      *cache.RedisCache
}

// Handlers bundles all HTTP handlers.
type Handlers struct {
	deps   Dependencies
	logger *logger.Logger
}

// NewHandlers creates the handler set.
func NewHandlers(deps Dependencies) *Handlers {
	return &Handlers{
		deps:   deps,
		logger: deps.Logger.WithComponent("handlers"),
	}
}

func decodeJSON(r *http.Request, dest any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dest)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"status": "error",
		"error":  message,
	})
}
