package ai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"honeytrap-lab/internal/domain/models"
	"honeytrap-lab/pkg/logger"
)

const (
	llmWeight     = 0.6
	keywordWeight = 0.2
	patternWeight = 0.2

	verdictCacheTTL = time.Hour
)

// Completer is the language model surface the classifier needs.
type Completer interface {
	Available() bool
	Complete(ctx context.Context, system string, messages []ChatMessage) (string, error)
}

// VerdictCache stores classification verdicts keyed by message hash.
type VerdictCache interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Classifier decides whether an incoming message is part of a scam.
// The language model verdict is blended with keyword and regex
// evidence; when the model is unavailable a pure heuristic verdict is
// produced instead.
type Classifier struct {
	llm       Completer
	patterns  *ScamPatternDB
	cache     VerdictCache
	threshold float64
	window    int
	logger    *logger.Logger
}

// NewClassifier creates a classifier. cache may be nil.
func NewClassifier(llm Completer, patterns *ScamPatternDB, cache VerdictCache, threshold float64, window int, log *logger.Logger) *Classifier {
	if threshold <= 0 {
		threshold = 0.4
	}
	if window <= 0 {
		window = 5
	}
	return &Classifier{
		llm:       llm,
		patterns:  patterns,
		cache:     cache,
		threshold: threshold,
		window:    window,
		logger:    log.WithComponent("classifier"),
	}
}

const classifierSystemPrompt = `You are a fraud analyst reviewing messages sent to an Indian consumer over SMS and WhatsApp. Decide whether the latest message is part of a scam (phishing, credential theft, fake prizes, account threats, payment fraud).

Respond with exactly three lines:
IS_SCAM: YES or NO
CONFIDENCE: a number between 0.0 and 1.0
REASONING: one sentence`

// Classify analyzes the message in the context of recent scammer
// history and returns a verdict.
func (c *Classifier) Classify(ctx context.Context, text string, history []models.Message) models.Verdict {
	if c.cache != nil {
		var cached models.Verdict
		if ok, err := c.cache.GetJSON(ctx, verdictKey(text), &cached); err == nil && ok {
			c.logger.Debug().Msg("Verdict cache hit")
			return cached
		}
	}

	match := c.patterns.Match(text)
	verdict := c.classify(ctx, text, history, match)

	if c.cache != nil {
		if err := c.cache.SetJSON(ctx, verdictKey(text), verdict, verdictCacheTTL); err != nil {
			c.logger.Warn().Err(err).Msg("Failed to cache verdict")
		}
	}
	return verdict
}

func (c *Classifier) classify(ctx context.Context, text string, history []models.Message, match MatchResult) models.Verdict {
	if c.llm == nil || !c.llm.Available() {
		return c.heuristicVerdict(match)
	}

	llmVerdict, err := c.llmVerdict(ctx, text, history)
	if err != nil {
		c.logger.Warn().Err(err).Msg("LLM classification failed, using heuristics")
		return c.heuristicVerdict(match)
	}

	combined := llmVerdict.Confidence*llmWeight +
		KeywordScore(len(match.KeywordHits))*keywordWeight +
		PatternScore(len(match.PatternHits))*patternWeight

	return models.Verdict{
		IsScam:     combined >= c.threshold || llmVerdict.IsScam,
		Confidence: combined,
		Reasoning:  llmVerdict.Reasoning,
	}
}

// heuristicVerdict scores the message on pattern evidence alone.
func (c *Classifier) heuristicVerdict(match MatchResult) models.Verdict {
	kw := len(match.KeywordHits)
	pat := len(match.PatternHits)

	isScam := kw >= 2 || pat >= 1
	confidence := 0.3 + 0.1*float64(kw) + 0.25*float64(pat)
	if confidence > 1.0 {
		confidence = 1.0
	}
	if !isScam {
		confidence = 0.0
	}

	reasoning := "no fraud indicators found"
	if isScam {
		reasoning = fmt.Sprintf("heuristic match: %d keyword(s), %d pattern(s)", kw, pat)
	}
	return models.Verdict{IsScam: isScam, Confidence: confidence, Reasoning: reasoning}
}

func (c *Classifier) llmVerdict(ctx context.Context, text string, history []models.Message) (models.Verdict, error) {
	var sb strings.Builder
	recent := recentScammerMessages(history, c.window)
	if len(recent) > 0 {
		sb.WriteString("Earlier messages from the same sender:\n")
		for _, m := range recent {
			sb.WriteString("- ")
			sb.WriteString(m.Text)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("Latest message:\n")
	sb.WriteString(text)

	raw, err := c.llm.Complete(ctx, classifierSystemPrompt, []ChatMessage{
		{Role: "user", Content: sb.String()},
	})
	if err != nil {
		return models.Verdict{}, err
	}
	return parseVerdict(raw)
}

// parseVerdict extracts the structured lines from the model response.
func parseVerdict(raw string) (models.Verdict, error) {
	verdict := models.Verdict{}
	found := false

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(strings.ToUpper(line), "IS_SCAM:"):
			value := strings.TrimSpace(line[len("IS_SCAM:"):])
			verdict.IsScam = strings.EqualFold(value, "YES") || strings.EqualFold(value, "TRUE")
			found = true
		case strings.HasPrefix(strings.ToUpper(line), "CONFIDENCE:"):
			value := strings.TrimSpace(line[len("CONFIDENCE:"):])
			if f, err := strconv.ParseFloat(value, 64); err == nil {
				if f < 0 {
					f = 0
				}
				if f > 1 {
					f = 1
				}
				verdict.Confidence = f
			}
		case strings.HasPrefix(strings.ToUpper(line), "REASONING:"):
			verdict.Reasoning = strings.TrimSpace(line[len("REASONING:"):])
		}
	}

	if !found {
		return models.Verdict{}, fmt.Errorf("unparseable llm verdict: %s", truncate(raw, 120))
	}
	return verdict, nil
}

// recentScammerMessages returns up to limit of the most recent
// scammer messages, oldest first.
func recentScammerMessages(history []models.Message, limit int) []models.Message {
	scammer := make([]models.Message, 0, len(history))
	for _, m := range history {
		if m.Sender == models.SenderScammer {
			scammer = append(scammer, m)
		}
	}
	if len(scammer) > limit {
		scammer = scammer[len(scammer)-limit:]
	}
	return scammer
}

func verdictKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return "verdict:" + hex.EncodeToString(sum[:])
}
