package services

import (
	"fmt"
	"strings"

	"honeytrap-lab/internal/domain/models"
)

// SummaryComposer produces the human-readable agent notes attached to
// the final report.
type SummaryComposer struct{}

// NewSummaryComposer creates a summary composer.
func NewSummaryComposer() *SummaryComposer {
	return &SummaryComposer{}
}

// Compose builds a short narrative describing what kind of scam was
// observed, which pressure tactics appeared, and a preview of the
// harvested artifacts.
func (c *SummaryComposer) Compose(s *models.SessionState) string {
	keywords := strings.Join(s.Intelligence.SuspiciousKeywords, " ")

	var parts []string
	parts = append(parts, fmt.Sprintf("Engaged scammer for %d messages. Scam type: %s.",
		s.MessageCount(), scamType(keywords)))

	if tactics := pressureTactics(keywords); len(tactics) > 0 {
		parts = append(parts, fmt.Sprintf("Tactics observed: %s.", strings.Join(tactics, ", ")))
	}

	intel := &s.Intelligence
	if preview := artifactPreview(intel); preview != "" {
		parts = append(parts, preview)
	}
	if intel.IsEmpty() {
		parts = append(parts, "No actionable artifacts were shared before the session ended.")
	}

	return strings.Join(parts, " ")
}

// scamType classifies the conversation from keyword evidence. Rules
// apply in priority order; first match wins.
func scamType(keywords string) string {
	switch {
	case strings.Contains(keywords, "otp") || strings.Contains(keywords, "cvv") ||
		strings.Contains(keywords, "pin") || strings.Contains(keywords, "password"):
		return "credential theft scam"
	case strings.Contains(keywords, "blocked") || strings.Contains(keywords, "suspended") ||
		strings.Contains(keywords, "frozen"):
		return "account blocking fraud"
	case strings.Contains(keywords, "lottery") || strings.Contains(keywords, "prize") ||
		strings.Contains(keywords, "winner") || strings.Contains(keywords, "lucky draw"):
		return "prize scam"
	case strings.Contains(keywords, "refund") || strings.Contains(keywords, "cashback"):
		return "refund fraud"
	case strings.Contains(keywords, "kyc") || strings.Contains(keywords, "aadhaar") ||
		strings.Contains(keywords, "aadhar") || strings.Contains(keywords, "pan"):
		return "identity-verification scam"
	default:
		return "generic financial fraud"
	}
}

func pressureTactics(keywords string) []string {
	var tactics []string
	if strings.Contains(keywords, "urgent") || strings.Contains(keywords, "immediately") ||
		strings.Contains(keywords, "expire") || strings.Contains(keywords, "hurry") {
		tactics = append(tactics, "urgency")
	}
	if strings.Contains(keywords, "police") || strings.Contains(keywords, "legal action") ||
		strings.Contains(keywords, "arrest") || strings.Contains(keywords, "penalty") {
		tactics = append(tactics, "fear/threats")
	}
	if strings.Contains(keywords, "bank") || strings.Contains(keywords, "account") ||
		strings.Contains(keywords, "verification") {
		tactics = append(tactics, "impersonation")
	}
	return tactics
}

// artifactPreview lists a bounded sample of each artifact category so
// the notes stay readable even for artifact-heavy sessions.
func artifactPreview(intel *models.ExtractedIntelligence) string {
	var parts []string
	if n := len(intel.PhoneNumbers); n > 0 {
		parts = append(parts, fmt.Sprintf("%d phone number(s): %s", n, previewList(intel.PhoneNumbers, 3)))
	}
	if n := len(intel.UPIIDs); n > 0 {
		parts = append(parts, fmt.Sprintf("%d UPI ID(s): %s", n, previewList(intel.UPIIDs, 3)))
	}
	if n := len(intel.PhishingLinks); n > 0 {
		entry := fmt.Sprintf("%d link(s): %s", n, previewList(intel.PhishingLinks, 2))
		if short := countShortened(intel.PhishingLinks); short > 0 {
			entry += fmt.Sprintf(" (%d shortened)", short)
		}
		parts = append(parts, entry)
	}
	if n := len(intel.BankAccounts); n > 0 {
		parts = append(parts, fmt.Sprintf("%d bank account(s): %s", n, previewList(intel.BankAccounts, 2)))
	}
	if len(parts) == 0 {
		return ""
	}
	return "Collected " + strings.Join(parts, "; ") + "."
}

func countShortened(links []string) int {
	n := 0
	for _, link := range links {
		if IsShortenedURL(link) {
			n++
		}
	}
	return n
}

func previewList(values []string, limit int) string {
	if len(values) > limit {
		values = values[:limit]
	}
	return strings.Join(values, ", ")
}
