package services

import (
	"regexp"
	"sort"
	"strings"

	"honeytrap-lab/internal/domain/models"
	"honeytrap-lab/pkg/logger"
)

// IntelExtractor pulls financial and contact artifacts out of raw
// message text using compiled patterns.
type IntelExtractor struct {
	patterns   map[string]*regexp.Regexp
	shorteners []*regexp.Regexp
	logger     *logger.Logger
}

// emailProviders are UPI-like handles that are really mail domains.
var emailProviders = map[string]struct{}{
	"gmail": {}, "yahoo": {}, "hotmail": {}, "outlook": {},
	"email": {}, "mail": {}, "protonmail": {}, "icloud": {},
	"live": {}, "msn": {}, "aol": {}, "rediffmail": {},
	"zoho": {}, "yandex": {},
}

// emailTLDs disqualify an @-handle whose domain part carries a dot
// followed by one of these suffixes.
var emailTLDs = []string{
	".com", ".org", ".net", ".in", ".co", ".io", ".edu",
	".gov", ".info", ".biz", ".me", ".us", ".uk", ".au",
}

// urlShorteners flag links that hide their destination.
var urlShorteners = []string{
	"bit.ly", "tinyurl.com", "goo.gl", "t.co", "cutt.ly",
	"shorturl.at", "rb.gy", "ow.ly", "is.gd", "v.gd",
}

// NewIntelExtractor creates an extractor with all patterns compiled.
func NewIntelExtractor(log *logger.Logger) *IntelExtractor {
	shorteners := make([]*regexp.Regexp, 0, len(urlShorteners))
	for _, host := range urlShorteners {
		shorteners = append(shorteners, regexp.MustCompile(`\b`+regexp.QuoteMeta(host)+`/[^\s<>"]+`))
	}
	return &IntelExtractor{
		shorteners: shorteners,
		patterns: map[string]*regexp.Regexp{
			"account_plain":  regexp.MustCompile(`\b\d{9,18}\b`),
			"account_spaced": regexp.MustCompile(`\b\d{4}[\s-]\d{4}[\s-]\d{4}(?:[\s-]\d{2,6})?\b`),
			"upi":            regexp.MustCompile(`\b[a-zA-Z0-9][a-zA-Z0-9._-]*@[a-zA-Z][a-zA-Z0-9.]*\b`),
			"phone_plus":     regexp.MustCompile(`\+91[\s-]?\d{5}[\s-]?\d{5}`),
			"phone_cc":       regexp.MustCompile(`\b91\d{10}\b`),
			"phone_zero":     regexp.MustCompile(`\b0[6-9]\d{9}\b`),
			"phone_bare":     regexp.MustCompile(`\b[6-9]\d{9}\b`),
			"url":            regexp.MustCompile(`https?://[^\s<>"]+|www\.[^\s<>"]+`),
		},
		logger: log.WithComponent("intel_extractor"),
	}
}

// Extract runs every category against the text and returns the
// aggregated artifacts. The text is normalized before matching.
func (e *IntelExtractor) Extract(text string) models.ExtractedIntelligence {
	text = NormalizeText(text)

	intel := models.ExtractedIntelligence{
		BankAccounts:       e.BankAccounts(text),
		UPIIDs:             e.UPIIDs(text),
		PhishingLinks:      e.PhishingLinks(text),
		PhoneNumbers:       e.PhoneNumbers(text),
		SuspiciousKeywords: e.Keywords(text),
	}

	if !intel.IsEmpty() {
		e.logger.Debug().
			Int("bank_accounts", len(intel.BankAccounts)).
			Int("upi_ids", len(intel.UPIIDs)).
			Int("links", len(intel.PhishingLinks)).
			Int("phones", len(intel.PhoneNumbers)).
			Int("keywords", len(intel.SuspiciousKeywords)).
			Msg("Artifacts extracted")
	}
	return intel
}

// BankAccounts finds plausible account numbers, rejecting digit runs
// that are really phone numbers.
func (e *IntelExtractor) BankAccounts(text string) []string {
	seen := make(map[string]struct{})
	out := []string{}

	add := func(raw string) {
		value := CleanDigits(raw)
		if len(value) < 9 || len(value) > 18 {
			return
		}
		if isPhoneShaped(value) {
			return
		}
		if _, ok := seen[value]; ok {
			return
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}

	for _, m := range e.patterns["account_spaced"].FindAllString(text, -1) {
		add(m)
	}
	for _, m := range e.patterns["account_plain"].FindAllString(text, -1) {
		add(m)
	}

	sort.Strings(out)
	return out
}

// isPhoneShaped reports whether a digit string is a mobile number
// rather than an account: 10 digits starting 6-9, or the same with a
// 91 country prefix.
func isPhoneShaped(digits string) bool {
	if len(digits) == 10 && digits[0] >= '6' && digits[0] <= '9' {
		return true
	}
	if len(digits) == 12 && strings.HasPrefix(digits, "91") &&
		digits[2] >= '6' && digits[2] <= '9' {
		return true
	}
	return false
}

// UPIIDs finds payment handles, filtering out strings that are email
// addresses rather than virtual payment addresses.
func (e *IntelExtractor) UPIIDs(text string) []string {
	seen := make(map[string]struct{})
	out := []string{}

	for _, m := range e.patterns["upi"].FindAllString(text, -1) {
		value := strings.ToLower(m)
		at := strings.LastIndex(value, "@")
		if at < 0 {
			continue
		}
		domain := value[at+1:]
		if isEmailDomain(domain) {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}

	sort.Strings(out)
	return out
}

func isEmailDomain(domain string) bool {
	if _, ok := emailProviders[domain]; ok {
		return true
	}
	for _, tld := range emailTLDs {
		if strings.HasSuffix(domain, tld) {
			return true
		}
	}
	return false
}

// PhoneNumbers finds mobile numbers in any of the common written
// forms and normalizes each to +91 followed by ten digits.
func (e *IntelExtractor) PhoneNumbers(text string) []string {
	seen := make(map[string]struct{})
	out := []string{}

	add := func(raw string) {
		digits := CleanDigits(strings.TrimPrefix(raw, "+"))
		switch {
		case len(digits) == 12 && strings.HasPrefix(digits, "91"):
			digits = digits[2:]
		case len(digits) == 11 && strings.HasPrefix(digits, "0"):
			digits = digits[1:]
		}
		if len(digits) != 10 || digits[0] < '6' || digits[0] > '9' {
			return
		}
		normalized := "+91" + digits
		if _, ok := seen[normalized]; ok {
			return
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}

	for _, name := range []string{"phone_plus", "phone_cc", "phone_zero", "phone_bare"} {
		for _, m := range e.patterns[name].FindAllString(text, -1) {
			add(m)
		}
	}

	sort.Strings(out)
	return out
}

// PhishingLinks finds URLs, normalizing bare www. links to https and
// stripping trailing sentence punctuation. Known shortener hosts are
// also matched without any scheme, since scammers paste them bare.
func (e *IntelExtractor) PhishingLinks(text string) []string {
	seen := make(map[string]struct{})
	out := []string{}

	add := func(raw string) {
		value := strings.TrimRight(raw, `.,;:!?)">]`)
		if value == "" {
			return
		}
		if strings.HasPrefix(value, "www.") {
			value = "https://" + value
		} else if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
			value = "https://" + value
		}
		if _, ok := seen[value]; ok {
			return
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}

	for _, m := range e.patterns["url"].FindAllString(text, -1) {
		add(m)
	}
	for _, pat := range e.shorteners {
		for _, m := range pat.FindAllString(text, -1) {
			add(m)
		}
	}

	sort.Strings(out)
	return out
}

// IsShortenedURL reports whether the link uses a known URL shortener.
func IsShortenedURL(link string) bool {
	lower := strings.ToLower(link)
	for _, host := range urlShorteners {
		if strings.Contains(lower, host) {
			return true
		}
	}
	return false
}

// Keywords scans the lowercased text against the fraud vocabulary and
// returns the distinct phrases found.
func (e *IntelExtractor) Keywords(text string) []string {
	lower := strings.ToLower(text)
	seen := make(map[string]struct{})
	out := []string{}

	for _, phrases := range keywordVocabulary {
		for _, phrase := range phrases {
			if _, ok := seen[phrase]; ok {
				continue
			}
			if containsPhrase(lower, phrase) {
				seen[phrase] = struct{}{}
				out = append(out, phrase)
			}
		}
	}

	sort.Strings(out)
	return out
}

// containsPhrase matches single words on word boundaries and
// multi-word phrases as substrings.
func containsPhrase(text, phrase string) bool {
	if strings.Contains(phrase, " ") || strings.Contains(phrase, "-") {
		return strings.Contains(text, phrase)
	}
	idx := 0
	for {
		pos := strings.Index(text[idx:], phrase)
		if pos < 0 {
			return false
		}
		start := idx + pos
		end := start + len(phrase)
		beforeOK := start == 0 || !isWordChar(text[start-1])
		afterOK := end == len(text) || !isWordChar(text[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}
