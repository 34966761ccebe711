package ai

import (
	"testing"
)

func TestPatternDBMatch(t *testing.T) {
	db := NewScamPatternDB()

	tests := []struct {
		name        string
		input       string
		wantFamily  string
		wantKeyword string
	}{
		{
			name:        "account threat",
			input:       "Your account will be blocked today. Complete your KYC now.",
			wantFamily:  "account_threat",
			wantKeyword: "blocked",
		},
		{
			name:        "credential phishing",
			input:       "Please share the OTP you received",
			wantFamily:  "credential_phishing",
			wantKeyword: "otp",
		},
		{
			name:        "prize lure",
			input:       "Congratulations! You have won a lottery, claim your prize",
			wantFamily:  "prize_lure",
			wantKeyword: "lottery",
		},
		{
			name:        "payment pressure",
			input:       "Transfer Rs 5000 immediately or your service stops",
			wantFamily:  "payment_pressure",
			wantKeyword: "transfer",
		},
		{
			name:        "authority impersonation",
			input:       "I am calling from the bank, legal action will follow",
			wantFamily:  "authority_impersonation",
			wantKeyword: "legal action",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := db.Match(tt.input)
			if !containsString(result.Families, tt.wantFamily) {
				t.Errorf("Match(%q).Families = %v, want %q", tt.input, result.Families, tt.wantFamily)
			}
			if !containsString(result.KeywordHits, tt.wantKeyword) {
				t.Errorf("Match(%q).KeywordHits = %v, want %q", tt.input, result.KeywordHits, tt.wantKeyword)
			}
		})
	}
}

func TestPatternDBBenignText(t *testing.T) {
	db := NewScamPatternDB()

	result := db.Match("Hi grandma, lunch at noon on Sunday?")
	if len(result.Families) != 0 {
		t.Errorf("benign text matched families %v", result.Families)
	}
	if len(result.PatternHits) != 0 {
		t.Errorf("benign text matched patterns %v", result.PatternHits)
	}
}

func TestAddPattern(t *testing.T) {
	db := NewScamPatternDB()
	db.AddPattern(&ScamPattern{
		Name:            "crypto_lure",
		Keywords:        []string{"bitcoin"},
		Patterns:        []string{`(?i)double\s+your\s+bitcoin`},
		RequiredMatches: 1,
	})

	result := db.Match("We can double your Bitcoin in one week")
	if !containsString(result.Families, "crypto_lure") {
		t.Errorf("Families = %v, want crypto_lure", result.Families)
	}
}

func TestScoreBounds(t *testing.T) {
	if got := KeywordScore(0); got != 0 {
		t.Errorf("KeywordScore(0) = %v", got)
	}
	if got := KeywordScore(2); got != 0.3 {
		t.Errorf("KeywordScore(2) = %v, want 0.3", got)
	}
	if got := KeywordScore(10); got != 0.5 {
		t.Errorf("KeywordScore(10) = %v, want cap 0.5", got)
	}
	if got := PatternScore(1); got != 0.25 {
		t.Errorf("PatternScore(1) = %v, want 0.25", got)
	}
	if got := PatternScore(5); got != 0.5 {
		t.Errorf("PatternScore(5) = %v, want cap 0.5", got)
	}
}

func containsString(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}
