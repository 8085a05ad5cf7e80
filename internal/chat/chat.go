package chat

import (
	"github.com/google/uuid"
)

// Sender identifies who wrote a transcript message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Document is one uploaded file after extraction: the original filename and
// its full extracted text. Name is unique within a session's document set.
type Document struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// Message is a single transcript entry. IDs are UUIDv7, so they sort by
// creation time.
type Message struct {
	ID     string `json:"id"`
	Sender Sender `json:"sender"`
	Text   string `json:"text"`
}

// newMessageID returns a time-ordered unique id. uuid.NewV7 only fails when
// the system clock/randomness is unavailable; fall back to v4 rather than
// losing the message.
func newMessageID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
