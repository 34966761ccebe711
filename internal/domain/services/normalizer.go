package services

import "strings"

// textReplacer folds the unicode punctuation variants that chat apps
// and copy-paste introduce into their ASCII equivalents, so the
// extraction patterns only have to match one form.
var textReplacer = strings.NewReplacer(
	"\u2010", "-", // hyphen
	"\u2011", "-", // non-breaking hyphen
	"\u2012", "-", // figure dash
	"\u2013", "-", // en dash
	"\u2014", "-", // em dash
	"\u2015", "-", // horizontal bar
	"\u2018", "'", // left single quote
	"\u2019", "'", // right single quote
	"\u201c", `"`, // left double quote
	"\u201d", `"`, // right double quote
	"\u00a0", " ", // non-breaking space
	"\u200b", "", // zero-width space
	"\u2028", " ", // line separator
	"\u2029", " ", // paragraph separator
)

// NormalizeText prepares raw message text for pattern matching.
func NormalizeText(text string) string {
	return textReplacer.Replace(text)
}

// CleanDigits strips spaces and hyphens from a matched numeric value.
func CleanDigits(value string) string {
	value = strings.ReplaceAll(value, " ", "")
	value = strings.ReplaceAll(value, "-", "")
	return value
}
