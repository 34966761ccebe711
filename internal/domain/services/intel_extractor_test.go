package services

import (
	"reflect"
	"testing"

	"honeytrap-lab/pkg/logger"
)

func newTestExtractor() *IntelExtractor {
	return NewIntelExtractor(logger.NewDefault())
}

func TestBankAccounts(t *testing.T) {
	e := newTestExtractor()

	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "plain account number",
			input:    "transfer to account 123456789012",
			expected: []string{"123456789012"},
		},
		{
			name:     "card style grouping",
			input:    "use 1234 5678 9012 3456 for payment",
			expected: []string{"1234567890123456"},
		},
		{
			name:     "mobile number excluded",
			input:    "call me on 9876543210",
			expected: []string{},
		},
		{
			name:     "mobile with country code excluded",
			input:    "number is 919876543210",
			expected: []string{},
		},
		{
			name:     "too short excluded",
			input:    "code 12345678",
			expected: []string{},
		},
		{
			name:     "duplicates collapsed",
			input:    "send to 123456789 or 123456789",
			expected: []string{"123456789"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.BankAccounts(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("BankAccounts(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestUPIIDs(t *testing.T) {
	e := newTestExtractor()

	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "simple handle",
			input:    "pay to scammer@paytm now",
			expected: []string{"scammer@paytm"},
		},
		{
			name:     "lowercased",
			input:    "send to Fraud@YBL",
			expected: []string{"fraud@ybl"},
		},
		{
			name:     "email address excluded",
			input:    "mail me at someone@gmail.com",
			expected: []string{},
		},
		{
			name:     "mail provider without tld excluded",
			input:    "contact help@gmail",
			expected: []string{},
		},
		{
			name:     "dotted tld excluded",
			input:    "write to support@bank.co.in",
			expected: []string{},
		},
		{
			name:     "multiple handles sorted",
			input:    "use zz@upi or aa@okaxis",
			expected: []string{"aa@okaxis", "zz@upi"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.UPIIDs(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("UPIIDs(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestPhoneNumbers(t *testing.T) {
	e := newTestExtractor()

	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "bare ten digits",
			input:    "call 9876543210",
			expected: []string{"+919876543210"},
		},
		{
			name:     "plus country code with spaces",
			input:    "reach us at +91 98765 43210",
			expected: []string{"+919876543210"},
		},
		{
			name:     "country code without plus",
			input:    "whatsapp 919876543210",
			expected: []string{"+919876543210"},
		},
		{
			name:     "leading zero",
			input:    "landline style 09876543210",
			expected: []string{"+919876543210"},
		},
		{
			name:     "same number in two forms deduplicated",
			input:    "call 9876543210 or +91 98765 43210",
			expected: []string{"+919876543210"},
		},
		{
			name:     "non-mobile leading digit excluded",
			input:    "ticket 1234567890",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.PhoneNumbers(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("PhoneNumbers(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestPhishingLinks(t *testing.T) {
	e := newTestExtractor()

	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "plain https link",
			input:    "visit https://evil.example/verify",
			expected: []string{"https://evil.example/verify"},
		},
		{
			name:     "trailing punctuation trimmed",
			input:    "click https://evil.example/verify.",
			expected: []string{"https://evil.example/verify"},
		},
		{
			name:     "www normalized to https",
			input:    "go to www.fake-bank.example/login",
			expected: []string{"https://www.fake-bank.example/login"},
		},
		{
			name:     "bare shortener without scheme",
			input:    "claim your prize at bit.ly/win123 now",
			expected: []string{"https://bit.ly/win123"},
		},
		{
			name:     "schemed shortener not duplicated",
			input:    "open https://bit.ly/win123 or bit.ly/win123",
			expected: []string{"https://bit.ly/win123"},
		},
		{
			name:     "bare tinyurl with trailing punctuation",
			input:    "verify here: tinyurl.com/kyc-update.",
			expected: []string{"https://tinyurl.com/kyc-update"},
		},
		{
			name:     "no links",
			input:    "just call me",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.PhishingLinks(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("PhishingLinks(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestIsShortenedURL(t *testing.T) {
	if !IsShortenedURL("https://bit.ly/3abcde") {
		t.Error("expected bit.ly link to be flagged as shortened")
	}
	if IsShortenedURL("https://example.com/page") {
		t.Error("did not expect regular link to be flagged")
	}
}

func TestKeywords(t *testing.T) {
	e := newTestExtractor()

	got := e.Keywords("URGENT: your account will be blocked, share the OTP immediately")
	want := map[string]bool{
		"urgent": true, "account": true, "blocked": true,
		"otp": true, "immediately": true, "share": true,
	}
	for _, kw := range got {
		if !want[kw] {
			t.Errorf("unexpected keyword %q in %v", kw, got)
		}
		delete(want, kw)
	}
	if len(want) > 0 {
		t.Errorf("missing keywords: %v (got %v)", want, got)
	}
}

func TestKeywordsBankingPins(t *testing.T) {
	e := newTestExtractor()

	got := e.Keywords("share your mpin and atm pin to unblock the card")
	found := make(map[string]bool, len(got))
	for _, kw := range got {
		found[kw] = true
	}
	for _, want := range []string{"mpin", "atm pin"} {
		if !found[want] {
			t.Errorf("Keywords missing %q, got %v", want, got)
		}
	}
}

func TestKeywordsWordBoundary(t *testing.T) {
	e := newTestExtractor()

	// "won" inside "wonderful" must not match.
	got := e.Keywords("what a wonderful day")
	if len(got) != 0 {
		t.Errorf("expected no keywords, got %v", got)
	}
}

func TestExtractNormalizesUnicode(t *testing.T) {
	e := newTestExtractor()

	// En dashes and a non-breaking space inside a card-style number.
	intel := e.Extract("account\u00a01234\u20135678\u20139012\u20133456")
	if len(intel.BankAccounts) != 1 || intel.BankAccounts[0] != "1234567890123456" {
		t.Errorf("expected normalized account extraction, got %v", intel.BankAccounts)
	}
}
