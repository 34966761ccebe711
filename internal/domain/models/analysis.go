package models

// Verdict is the outcome of classifying a message turn.
type Verdict struct {
	IsScam     bool    `json:"is_scam"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// Decision is the outcome of evaluating the termination policy after
// a turn has been processed.
type Decision struct {
	End    bool
	Reason string
}
