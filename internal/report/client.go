package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"honeytrap-lab/internal/config"
	"honeytrap-lab/internal/domain/models"
	"honeytrap-lab/pkg/logger"
)

// FinalReport is the payload delivered to the callback endpoint when
// a session ends.
type FinalReport struct {
	SessionID              string                       `json:"sessionId"`
	ScamDetected           bool                         `json:"scamDetected"`
	TotalMessagesExchanged int                          `json:"totalMessagesExchanged"`
	ExtractedIntelligence  models.ExtractedIntelligence `json:"extractedIntelligence"`
	AgentNotes             string                       `json:"agentNotes"`
}

// Client posts final session reports to the configured callback.
// Delivery is one attempt only; the caller records whether it
// succeeded.
type Client struct {
	callbackURL string
	httpClient  *http.Client
	logger      *logger.Logger
}

// NewClient creates a report client from configuration.
func NewClient(cfg config.ReportConfig, log *logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		callbackURL: cfg.CallbackURL,
		httpClient:  &http.Client{Timeout: timeout},
		logger:      log.WithComponent("report_client"),
	}
}

// Enabled reports whether a callback URL is configured.
func (c *Client) Enabled() bool {
	return c.callbackURL != ""
}

// Send delivers the report. Success means the endpoint answered with
// HTTP 200; any other outcome is an error.
func (c *Client) Send(ctx context.Context, r FinalReport) error {
	if !c.Enabled() {
		return fmt.Errorf("report callback not configured")
	}

	body, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.callbackURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("report delivery failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("report endpoint returned status %d", resp.StatusCode)
	}

	c.logger.Info().
		Str("session_id", r.SessionID).
		Int("messages", r.TotalMessagesExchanged).
		Msg("Final report delivered")
	return nil
}
