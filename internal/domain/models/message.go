package models

import (
	"time"

	"github.com/google/uuid"
)

// Sender identifies who authored a conversation message.
type Sender string

const (
	SenderScammer Sender = "scammer"
	SenderAgent   Sender = "user"
)

// Valid reports whether the sender is one of the known wire values.
func (s Sender) Valid() bool {
	return s == SenderScammer || s == SenderAgent
}

// Message is a single conversational turn inside a session transcript.
type Message struct {
	ID        string `json:"id"`
	Sender    Sender `json:"sender"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

// NewMessage builds a transcript message with a fresh ID. A zero
// timestamp is filled with the current time in milliseconds.
func NewMessage(sender Sender, text string, timestamp int64) Message {
	if timestamp == 0 {
		timestamp = time.Now().UnixMilli()
	}
	return Message{
		ID:        uuid.New().String(),
		Sender:    sender,
		Text:      text,
		Timestamp: timestamp,
	}
}

// Metadata carries optional channel context supplied by the caller.
type Metadata struct {
	Channel  string `json:"channel,omitempty"`
	Language string `json:"language,omitempty"`
	Locale   string `json:"locale,omitempty"`
}
