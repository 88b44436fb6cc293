package models

import (
	"time"

	"github.com/google/uuid"
)

// Roles a stored message may carry. The set is closed; the repository
// rejects anything else.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// ValidRole reports whether role belongs to the closed role set.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	}
	return false
}

// Message is one persisted chat turn. Messages are immutable once
// stored; they are never updated or deleted.
type Message struct {
	ID        uuid.UUID `json:"_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatMessage is an unpersisted conversation turn as sent by the client
// and forwarded to the inference endpoint.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SendRequest is the payload of POST /send.
type SendRequest struct {
	Messages []ChatMessage `json:"messages"`
}

// SendResponse is the success body of POST /send: both turns of the
// exchange as persisted, with store-assigned ids and timestamps.
type SendResponse struct {
	Status      string   `json:"status"`
	UserMessage *Message `json:"userMessage"`
	AIMessage   *Message `json:"aiMessage"`
}
