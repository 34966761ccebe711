package ai

import (
	"context"
	"fmt"
	"strings"

	"honeytrap-lab/internal/domain/models"
	"honeytrap-lab/internal/domain/services"
	"honeytrap-lab/pkg/logger"
)

const personaHistoryWindow = 10

const personaSystemPrompt = `You are Shanti, a 67-year-old retired school teacher living in Pune. You are not comfortable with smartphones and banking apps. Your nephew usually helps you with anything technical but he is abroad right now.

You have received a message that may be from a scammer. Your goals, in order:
1. Never reveal you suspect anything. Stay believably naive and polite.
2. Keep the conversation going as long as possible.
3. Gently encourage them to share specifics: phone numbers, account numbers, UPI IDs, links.
4. Never share real personal or financial information. If pressed, give excuses (cannot find your glasses, the app is stuck, your son has the card).

Reply with only the message text you would send. Keep it under 60 words. Do not prefix it with your name.`

// Persona generates the honeypot's replies in character.
type Persona struct {
	llm       Completer
	fallbacks *FallbackReplies
	logger    *logger.Logger
}

// NewPersona creates a persona over the given model client.
func NewPersona(llm Completer, log *logger.Logger) *Persona {
	return &Persona{
		llm:       llm,
		fallbacks: NewFallbackReplies(),
		logger:    log.WithComponent("persona"),
	}
}

// Reply produces the next in-character message. When the model is
// unavailable or fails, a canned reply appropriate to the
// conversation stage is used instead.
func (p *Persona) Reply(ctx context.Context, session *models.SessionState, incoming string) string {
	stage := services.Stage(session.MessageCount())

	if p.llm != nil && p.llm.Available() {
		reply, err := p.llmReply(ctx, session, incoming, stage)
		if err == nil && reply != "" {
			return reply
		}
		if err != nil {
			p.logger.Warn().Err(err).Int("stage", stage).Msg("Persona generation failed, using fallback")
		}
	}

	return p.fallbacks.Pick(stage, session.Transcript)
}

func (p *Persona) llmReply(ctx context.Context, session *models.SessionState, incoming string, stage int) (string, error) {
	system := fmt.Sprintf("%s\n\nCurrent situation: %s", personaSystemPrompt, services.StageHint(stage))

	// The incoming message is already the transcript's last entry.
	// Drop it from the history so it reaches the model exactly once,
	// as the closing user turn below.
	history := session.Transcript
	if n := len(history); n > 0 && history[n-1].Sender != models.SenderAgent && history[n-1].Text == incoming {
		history = history[:n-1]
	}
	if len(history) > personaHistoryWindow {
		history = history[len(history)-personaHistoryWindow:]
	}

	messages := make([]ChatMessage, 0, len(history)+1)
	for _, m := range history {
		role := "user"
		if m.Sender == models.SenderAgent {
			role = "assistant"
		}
		messages = append(messages, ChatMessage{Role: role, Content: m.Text})
	}
	messages = append(messages, ChatMessage{Role: "user", Content: incoming})

	raw, err := p.llm.Complete(ctx, system, messages)
	if err != nil {
		return "", err
	}
	return cleanReply(raw), nil
}

// cleanReply strips artifacts models sometimes add: surrounding
// quotes and a leading speaker label.
func cleanReply(raw string) string {
	reply := strings.TrimSpace(raw)
	reply = strings.Trim(reply, `"`)

	for _, prefix := range []string{"Shanti:", "shanti:", "Me:", "Reply:", "Response:"} {
		if strings.HasPrefix(reply, prefix) {
			reply = strings.TrimSpace(reply[len(prefix):])
		}
	}
	return reply
}
