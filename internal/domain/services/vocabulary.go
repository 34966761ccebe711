package services

// KeywordCategory names a group of fraud-signal vocabulary.
type KeywordCategory string

const (
	CategoryUrgency      KeywordCategory = "urgency"
	CategoryThreat       KeywordCategory = "threat"
	CategoryVerification KeywordCategory = "verification"
	CategoryCredential   KeywordCategory = "credential"
	CategoryIdentity     KeywordCategory = "identity"
	CategoryLure         KeywordCategory = "lure"
	CategoryAction       KeywordCategory = "action"
	CategoryAlert        KeywordCategory = "alert"
	CategoryState        KeywordCategory = "state"
)

// keywordVocabulary is the phrase list scanned against lowercased
// message text. Multi-word phrases match as substrings.
var keywordVocabulary = map[KeywordCategory][]string{
	CategoryUrgency: {
		"urgent", "immediately", "right now", "act now", "expire",
		"within 24 hours", "last chance", "final warning", "hurry",
	},
	CategoryThreat: {
		"blocked", "suspended", "deactivated", "frozen", "legal action",
		"police", "arrest", "penalty", "fine", "court",
	},
	CategoryVerification: {
		"verify", "verification", "confirm", "validate", "kyc",
		"re-kyc", "update your details", "authenticate",
	},
	CategoryCredential: {
		"otp", "one time password", "pin", "mpin", "atm pin",
		"cvv", "password", "login", "credentials", "security code",
	},
	CategoryIdentity: {
		"aadhaar", "aadhar", "pan card", "pan number", "passport",
		"date of birth", "mother's maiden name",
	},
	CategoryLure: {
		"lottery", "prize", "winner", "won", "reward", "cashback",
		"refund", "claim", "free gift", "lucky draw", "bonus",
	},
	CategoryAction: {
		"click", "click here", "link below", "download", "install",
		"transfer", "send money", "pay", "deposit", "share",
	},
	CategoryAlert: {
		"alert", "warning", "notice", "attention", "important",
		"security alert", "unauthorized",
	},
	CategoryState: {
		"account", "bank", "wallet", "upi", "card", "balance",
		"transaction", "payment failed",
	},
}
