package services

import "honeytrap-lab/internal/domain/models"

// TerminationPolicy decides when a session has served its purpose and
// the engagement should end.
type TerminationPolicy struct {
	MaxMessages    int
	RichCategories int
	MinCategories  int
	MinMessages    int
}

// NewTerminationPolicy returns the policy with default thresholds.
func NewTerminationPolicy(maxMessages int) *TerminationPolicy {
	if maxMessages <= 0 {
		maxMessages = 20
	}
	return &TerminationPolicy{
		MaxMessages:    maxMessages,
		RichCategories: 3,
		MinCategories:  2,
		MinMessages:    10,
	}
}

// Evaluate applies the termination rules in priority order: hard
// message ceiling first, then intelligence richness.
func (p *TerminationPolicy) Evaluate(messageCount int, intel *models.ExtractedIntelligence) models.Decision {
	if messageCount >= p.MaxMessages {
		return models.Decision{End: true, Reason: "maximum message count reached"}
	}

	categories := intel.CategoryCount()
	if categories >= p.RichCategories {
		return models.Decision{End: true, Reason: "rich intelligence extracted"}
	}
	if categories >= p.MinCategories && messageCount >= p.MinMessages {
		return models.Decision{End: true, Reason: "sufficient intelligence extracted"}
	}

	return models.Decision{}
}
