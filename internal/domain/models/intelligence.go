package models

import "sort"

// ExtractedIntelligence aggregates the financial and contact artifacts
// harvested from a session transcript. Each slice is kept sorted and
// free of duplicates.
type ExtractedIntelligence struct {
	BankAccounts       []string `json:"bankAccounts"`
	UPIIDs             []string `json:"upiIds"`
	PhishingLinks      []string `json:"phishingLinks"`
	PhoneNumbers       []string `json:"phoneNumbers"`
	SuspiciousKeywords []string `json:"suspiciousKeywords"`
}

// NewExtractedIntelligence returns an empty aggregate with non-nil
// slices so the JSON encoding is always arrays, never null.
func NewExtractedIntelligence() ExtractedIntelligence {
	return ExtractedIntelligence{
		BankAccounts:       []string{},
		UPIIDs:             []string{},
		PhishingLinks:      []string{},
		PhoneNumbers:       []string{},
		SuspiciousKeywords: []string{},
	}
}

// Merge folds another aggregate into this one, deduplicating and
// re-sorting every category.
func (e *ExtractedIntelligence) Merge(other ExtractedIntelligence) {
	e.BankAccounts = mergeSorted(e.BankAccounts, other.BankAccounts)
	e.UPIIDs = mergeSorted(e.UPIIDs, other.UPIIDs)
	e.PhishingLinks = mergeSorted(e.PhishingLinks, other.PhishingLinks)
	e.PhoneNumbers = mergeSorted(e.PhoneNumbers, other.PhoneNumbers)
	e.SuspiciousKeywords = mergeSorted(e.SuspiciousKeywords, other.SuspiciousKeywords)
}

// CategoryCount returns how many of the four non-keyword categories
// hold at least one artifact.
func (e *ExtractedIntelligence) CategoryCount() int {
	count := 0
	if len(e.BankAccounts) > 0 {
		count++
	}
	if len(e.UPIIDs) > 0 {
		count++
	}
	if len(e.PhishingLinks) > 0 {
		count++
	}
	if len(e.PhoneNumbers) > 0 {
		count++
	}
	return count
}

// IsEmpty reports whether no artifacts of any kind have been collected.
func (e *ExtractedIntelligence) IsEmpty() bool {
	return len(e.BankAccounts) == 0 &&
		len(e.UPIIDs) == 0 &&
		len(e.PhishingLinks) == 0 &&
		len(e.PhoneNumbers) == 0 &&
		len(e.SuspiciousKeywords) == 0
}

// Clone returns a deep copy safe to hand out in API responses.
func (e *ExtractedIntelligence) Clone() ExtractedIntelligence {
	return ExtractedIntelligence{
		BankAccounts:       append([]string{}, e.BankAccounts...),
		UPIIDs:             append([]string{}, e.UPIIDs...),
		PhishingLinks:      append([]string{}, e.PhishingLinks...),
		PhoneNumbers:       append([]string{}, e.PhoneNumbers...),
		SuspiciousKeywords: append([]string{}, e.SuspiciousKeywords...),
	}
}

func mergeSorted(dst, src []string) []string {
	if len(src) == 0 {
		if dst == nil {
			return []string{}
		}
		return dst
	}
	seen := make(map[string]struct{}, len(dst)+len(src))
	out := make([]string, 0, len(dst)+len(src))
	for _, v := range dst {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	for _, v := range src {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
