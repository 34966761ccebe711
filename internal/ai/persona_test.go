package ai

import (
	"context"
	"testing"

	"honeytrap-lab/internal/domain/models"
	"honeytrap-lab/pkg/logger"
)

type recordingCompleter struct {
	response string
	messages []ChatMessage
}

func (r *recordingCompleter) Available() bool { return true }

func (r *recordingCompleter) Complete(_ context.Context, _ string, messages []ChatMessage) (string, error) {
	r.messages = append([]ChatMessage{}, messages...)
	return r.response, nil
}

func TestReplySendsIncomingMessageOnce(t *testing.T) {
	llm := &recordingCompleter{response: "oh my, which account?"}
	p := NewPersona(llm, logger.NewDefault())

	// The handler appends the incoming message to the transcript
	// before asking for a reply, so it is already the last entry.
	session := models.NewSessionState("s1")
	session.Transcript = []models.Message{
		{Sender: models.SenderScammer, Text: "your account is blocked"},
		{Sender: models.SenderAgent, Text: "oh no, what do I do?"},
		{Sender: models.SenderScammer, Text: "share your otp now"},
	}

	reply := p.Reply(context.Background(), session, "share your otp now")
	if reply != "oh my, which account?" {
		t.Fatalf("reply = %q", reply)
	}

	count := 0
	for _, m := range llm.messages {
		if m.Content == "share your otp now" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("incoming message appeared %d times in the prompt, want 1", count)
	}

	last := llm.messages[len(llm.messages)-1]
	if last.Role != "user" || last.Content != "share your otp now" {
		t.Errorf("closing turn = %+v, want the incoming message as a user turn", last)
	}
}

func TestReplyFallsBackWhenModelUnavailable(t *testing.T) {
	p := NewPersona(nil, logger.NewDefault())

	session := models.NewSessionState("s1")
	session.Transcript = []models.Message{
		{Sender: models.SenderScammer, Text: "hello madam"},
	}

	if reply := p.Reply(context.Background(), session, "hello madam"); reply == "" {
		t.Error("expected a canned reply without a model")
	}
}

func TestCleanReply(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "Oh dear, let me find my glasses.", "Oh dear, let me find my glasses."},
		{"quoted", `"Who is calling?"`, "Who is calling?"},
		{"speaker label", "Shanti: I cannot open the app.", "I cannot open the app."},
		{"reply label", "Reply: Which number should I call?", "Which number should I call?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanReply(tt.raw); got != tt.want {
				t.Errorf("cleanReply(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
