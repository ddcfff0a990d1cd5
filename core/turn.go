package core

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies the author of a conversation turn.
type Role string

const (
	// RoleUser marks a turn authored by the human caller.
	RoleUser Role = "user"
	// RoleAssistant marks a turn produced by a model.
	RoleAssistant Role = "assistant"
)

// Turn is a single conversational exchange half: one role plus its text
// payload. After creation it should be treated as immutable.
type Turn struct {
	ID        string    `json:"id" bson:"id"`
	Role      Role      `json:"role" bson:"role"`
	Text      string    `json:"text" bson:"text"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

// NewID returns a random unique identifier for turns and sessions.
func NewID() string { return uuid.NewString() }

// NewUserTurn creates a user-authored turn with a fresh ID and UTC timestamp.
func NewUserTurn(text string) Turn {
	return Turn{ID: NewID(), Role: RoleUser, Text: text, Timestamp: time.Now().UTC()}
}

// NewAssistantTurn creates an assistant-authored turn with a fresh ID and UTC
// timestamp.
func NewAssistantTurn(text string) Turn {
	return Turn{ID: NewID(), Role: RoleAssistant, Text: text, Timestamp: time.Now().UTC()}
}
