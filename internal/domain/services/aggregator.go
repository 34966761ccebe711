package services

import (
	"strings"

	"honeytrap-lab/internal/domain/models"
)

// Aggregator re-derives session intelligence from a transcript. It is
// idempotent: running it twice over the same transcript produces the
// same aggregate.
type Aggregator struct {
	extractor *IntelExtractor
}

// NewAggregator creates an aggregator over the given extractor.
func NewAggregator(extractor *IntelExtractor) *Aggregator {
	return &Aggregator{extractor: extractor}
}

// ExtractFromTranscript harvests artifacts from every message in the
// transcript, agent turns included. An artifact the agent echoes back
// ("so I should call 98765...?") still counts as intelligence.
func (a *Aggregator) ExtractFromTranscript(transcript []models.Message) models.ExtractedIntelligence {
	texts := make([]string, 0, len(transcript))
	for _, m := range transcript {
		texts = append(texts, m.Text)
	}
	return a.extractor.Extract(strings.Join(texts, " "))
}
