package ai

import (
	"regexp"
	"strings"
	"sync"
)

// ScamPattern describes one family of fraud messaging: the keywords
// that suggest it and the regexes that confirm it.
type ScamPattern struct {
	Name            string
	Keywords        []string
	Patterns        []string
	RequiredMatches int
}

// ScamPatternDB holds the heuristic pattern families used when no
// language model verdict is available, and to corroborate one when it
// is.
type ScamPatternDB struct {
	mu         sync.RWMutex
	patterns   map[string]*ScamPattern
	regexCache map[string]*regexp.Regexp
}

// MatchResult summarizes a text scan against the pattern DB.
type MatchResult struct {
	KeywordHits []string
	PatternHits []string
	Families    []string
}

// NewScamPatternDB creates a pattern database seeded with the built-in
// fraud families.
func NewScamPatternDB() *ScamPatternDB {
	db := &ScamPatternDB{
		patterns:   make(map[string]*ScamPattern),
		regexCache: make(map[string]*regexp.Regexp),
	}
	db.loadDefaults()
	return db
}

func (db *ScamPatternDB) loadDefaults() {
	defaults := []*ScamPattern{
		{
			Name:     "account_threat",
			Keywords: []string{"blocked", "suspended", "frozen", "deactivated", "kyc", "verify", "expire"},
			Patterns: []string{
				`(?i)account\s+(?:will\s+be\s+)?(?:blocked|suspended|frozen|closed)`,
				`(?i)(?:complete|update)\s+(?:your\s+)?kyc`,
			},
			RequiredMatches: 1,
		},
		{
			Name:     "credential_phishing",
			Keywords: []string{"otp", "pin", "cvv", "password", "security code", "one time password"},
			Patterns: []string{
				`(?i)(?:share|send|tell|give)\s+(?:me\s+)?(?:the\s+|your\s+)?(?:otp|pin|cvv|password)`,
				`(?i)otp\s+(?:is|sent|received)`,
			},
			RequiredMatches: 1,
		},
		{
			Name:     "prize_lure",
			Keywords: []string{"lottery", "prize", "winner", "won", "lucky draw", "claim", "reward"},
			Patterns: []string{
				`(?i)(?:you\s+(?:have\s+)?won|congratulations)`,
				`(?i)claim\s+(?:your\s+)?(?:prize|reward|money)`,
			},
			RequiredMatches: 1,
		},
		{
			Name:     "payment_pressure",
			Keywords: []string{"urgent", "immediately", "transfer", "pay", "send money", "deposit", "refund"},
			Patterns: []string{
				`(?i)(?:transfer|send|pay|deposit)\s+(?:rs\.?|inr|₹)?\s*\d+`,
				`(?i)within\s+\d+\s+(?:minutes|hours)`,
			},
			RequiredMatches: 1,
		},
		{
			Name:     "authority_impersonation",
			Keywords: []string{"police", "legal action", "arrest", "court", "penalty", "bank officer", "rbi"},
			Patterns: []string{
				`(?i)(?:legal\s+action|fir|arrest\s+warrant)`,
				`(?i)(?:calling|speaking)\s+from\s+(?:the\s+)?(?:bank|rbi|police)`,
			},
			RequiredMatches: 1,
		},
		{
			Name:     "malicious_link",
			Keywords: []string{"click", "link", "download", "install", "app"},
			Patterns: []string{
				`(?i)click\s+(?:on\s+)?(?:the\s+|this\s+)?link`,
				`(?i)(?:download|install)\s+(?:the\s+|this\s+)?app`,
			},
			RequiredMatches: 1,
		},
	}
	for _, p := range defaults {
		db.patterns[p.Name] = p
		db.compileLocked(p)
	}
}

// AddPattern registers or replaces a pattern family.
func (db *ScamPatternDB) AddPattern(p *ScamPattern) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.patterns[p.Name] = p
	db.compileLocked(p)
}

// compileLocked caches the compiled regexes of a pattern family.
// Invalid expressions are skipped so one bad pattern cannot break
// matching. Callers hold the write lock.
func (db *ScamPatternDB) compileLocked(p *ScamPattern) {
	for _, expr := range p.Patterns {
		if _, ok := db.regexCache[expr]; ok {
			continue
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			continue
		}
		db.regexCache[expr] = re
	}
}

// Match scans the text against every pattern family and returns the
// distinct keyword and regex hits.
func (db *ScamPatternDB) Match(text string) MatchResult {
	db.mu.RLock()
	defer db.mu.RUnlock()

	lower := strings.ToLower(text)
	result := MatchResult{}
	seenKw := make(map[string]struct{})
	seenPat := make(map[string]struct{})

	for _, p := range db.patterns {
		matched := false
		for _, kw := range p.Keywords {
			if strings.Contains(lower, kw) {
				if _, ok := seenKw[kw]; !ok {
					seenKw[kw] = struct{}{}
					result.KeywordHits = append(result.KeywordHits, kw)
				}
				matched = true
			}
		}
		hits := 0
		for _, expr := range p.Patterns {
			re, ok := db.regexCache[expr]
			if ok && re.MatchString(text) {
				if _, ok := seenPat[expr]; !ok {
					seenPat[expr] = struct{}{}
					result.PatternHits = append(result.PatternHits, expr)
				}
				hits++
			}
		}
		if matched && hits >= p.RequiredMatches {
			result.Families = append(result.Families, p.Name)
		}
	}
	return result
}

// KeywordScore converts a keyword hit count into a bounded score.
func KeywordScore(hits int) float64 {
	score := float64(hits) * 0.15
	if score > 0.5 {
		score = 0.5
	}
	return score
}

// PatternScore converts a regex hit count into a bounded score.
func PatternScore(hits int) float64 {
	score := float64(hits) * 0.25
	if score > 0.5 {
		score = 0.5
	}
	return score
}
