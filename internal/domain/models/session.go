package models

import "time"

// SessionState is the full in-memory record for one honeypot
// conversation. All mutation happens under the store's per-session
// lock; handlers only ever see snapshots.
type SessionState struct {
	ID             string
	Transcript     []Message
	Intelligence   ExtractedIntelligence
	Metadata       Metadata
	ScamDetected   bool
	ScamConfidence float64
	Reported       bool
	Notes          string
	CreatedAt      time.Time
	LastActiveAt   time.Time
}

// NewSessionState initializes a session record for the given ID.
func NewSessionState(id string) *SessionState {
	now := time.Now()
	return &SessionState{
		ID:           id,
		Transcript:   []Message{},
		Intelligence: NewExtractedIntelligence(),
		CreatedAt:    now,
		LastActiveAt: now,
	}
}

// MessageCount returns the total number of transcript messages from
// both parties.
func (s *SessionState) MessageCount() int {
	return len(s.Transcript)
}

// MarkReported flips the reported flag exactly once. It returns
// false when a report was already sent for this session. Callers hold
// the session lock.
func (s *SessionState) MarkReported() bool {
	if s.Reported {
		return false
	}
	s.Reported = true
	return true
}

// Snapshot returns a deep copy of the session safe to read without
// the session lock.
func (s *SessionState) Snapshot() SessionState {
	return SessionState{
		ID:             s.ID,
		Transcript:     append([]Message{}, s.Transcript...),
		Intelligence:   s.Intelligence.Clone(),
		Metadata:       s.Metadata,
		ScamDetected:   s.ScamDetected,
		ScamConfidence: s.ScamConfidence,
		Reported:       s.Reported,
		Notes:          s.Notes,
		CreatedAt:      s.CreatedAt,
		LastActiveAt:   s.LastActiveAt,
	}
}
