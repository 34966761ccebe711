package ai

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"honeytrap-lab/internal/domain/models"
	"honeytrap-lab/pkg/logger"
)

type stubCompleter struct {
	available bool
	response  string
	err       error
	lastUser  string
}

func (s *stubCompleter) Available() bool { return s.available }

func (s *stubCompleter) Complete(_ context.Context, _ string, messages []ChatMessage) (string, error) {
	if len(messages) > 0 {
		s.lastUser = messages[len(messages)-1].Content
	}
	return s.response, s.err
}

func newTestClassifier(llm Completer) *Classifier {
	return NewClassifier(llm, NewScamPatternDB(), nil, 0.4, 5, logger.NewDefault())
}

func TestParseVerdict(t *testing.T) {
	tests := []struct {
		name           string
		raw            string
		wantScam       bool
		wantConfidence float64
		wantErr        bool
	}{
		{
			name:           "well formed yes",
			raw:            "IS_SCAM: YES\nCONFIDENCE: 0.9\nREASONING: asks for OTP",
			wantScam:       true,
			wantConfidence: 0.9,
		},
		{
			name:           "well formed no",
			raw:            "IS_SCAM: NO\nCONFIDENCE: 0.1\nREASONING: ordinary greeting",
			wantScam:       false,
			wantConfidence: 0.1,
		},
		{
			name:           "lowercase labels",
			raw:            "is_scam: yes\nconfidence: 0.75\nreasoning: fake prize",
			wantScam:       true,
			wantConfidence: 0.75,
		},
		{
			name:           "confidence clamped",
			raw:            "IS_SCAM: YES\nCONFIDENCE: 1.8\nREASONING: x",
			wantScam:       true,
			wantConfidence: 1.0,
		},
		{
			name:    "unparseable",
			raw:     "I think this might be a scam.",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseVerdict(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseVerdict(%q) expected error", tt.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseVerdict(%q) error: %v", tt.raw, err)
			}
			if got.IsScam != tt.wantScam {
				t.Errorf("IsScam = %v, want %v", got.IsScam, tt.wantScam)
			}
			if got.Confidence != tt.wantConfidence {
				t.Errorf("Confidence = %v, want %v", got.Confidence, tt.wantConfidence)
			}
		})
	}
}

func TestClassifyHeuristicFallbackWhenUnavailable(t *testing.T) {
	c := newTestClassifier(&stubCompleter{available: false})

	verdict := c.Classify(context.Background(), "share your otp now or account blocked", nil)
	if !verdict.IsScam {
		t.Fatal("expected heuristic scam verdict")
	}
	if verdict.Confidence <= 0.3 {
		t.Errorf("Confidence = %v, want above base", verdict.Confidence)
	}
}

func TestClassifyHeuristicFallbackOnError(t *testing.T) {
	c := newTestClassifier(&stubCompleter{available: true, err: fmt.Errorf("upstream down")})

	verdict := c.Classify(context.Background(), "you have won a lottery, claim your prize now", nil)
	if !verdict.IsScam {
		t.Fatal("expected heuristic scam verdict after llm failure")
	}
}

func TestClassifyBenignHeuristic(t *testing.T) {
	c := newTestClassifier(&stubCompleter{available: false})

	verdict := c.Classify(context.Background(), "see you at dinner tonight", nil)
	if verdict.IsScam {
		t.Fatalf("benign text classified as scam: %+v", verdict)
	}
	if verdict.Confidence != 0 {
		t.Errorf("Confidence = %v, want 0 for benign", verdict.Confidence)
	}
}

func TestClassifyBlendsLLMAndEvidence(t *testing.T) {
	llm := &stubCompleter{
		available: true,
		response:  "IS_SCAM: NO\nCONFIDENCE: 0.5\nREASONING: unsure",
	}
	c := newTestClassifier(llm)

	// Strong keyword and pattern evidence pushes the blended score
	// over the threshold even though the model said no.
	verdict := c.Classify(context.Background(), "urgent share your otp, account will be blocked, transfer rs 500", nil)
	if !verdict.IsScam {
		t.Fatalf("blended verdict = %+v, want scam", verdict)
	}
}

func TestClassifyRespectsLLMYes(t *testing.T) {
	llm := &stubCompleter{
		available: true,
		response:  "IS_SCAM: YES\nCONFIDENCE: 0.2\nREASONING: subtle social engineering",
	}
	c := newTestClassifier(llm)

	verdict := c.Classify(context.Background(), "hello sir please respond", nil)
	if !verdict.IsScam {
		t.Fatal("an affirmative model verdict must mark the message as scam")
	}
}

func TestClassifyHistoryWindow(t *testing.T) {
	llm := &stubCompleter{
		available: true,
		response:  "IS_SCAM: YES\nCONFIDENCE: 0.9\nREASONING: x",
	}
	c := newTestClassifier(llm)

	history := make([]models.Message, 0, 8)
	for i := 0; i < 8; i++ {
		history = append(history, models.Message{
			Sender: models.SenderScammer,
			Text:   fmt.Sprintf("scammer message %d", i),
		})
	}

	c.Classify(context.Background(), "latest", history)

	// Only the five most recent scammer messages go into the prompt.
	for i := 0; i < 3; i++ {
		if strings.Contains(llm.lastUser, fmt.Sprintf("scammer message %d\n", i)) {
			t.Errorf("prompt should not include message %d", i)
		}
	}
	for i := 3; i < 8; i++ {
		want := fmt.Sprintf("scammer message %d", i)
		if !strings.Contains(llm.lastUser, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
