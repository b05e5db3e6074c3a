// internal/models/chat.go
package models

import "time"

// ChatMessage is one persisted turn of an assistant conversation, including
// the enhancement metadata recorded alongside the text.
type ChatMessage struct {
	MessageID      string    `json:"messageId"`
	ConversationID string    `json:"conversationId"`
	UserID         string    `json:"userId"`
	Role           string    `json:"role"` // "user" or "assistant"
	Content        string    `json:"content"`
	Scenario       string    `json:"scenario,omitempty"`
	Confidence     float64   `json:"confidence,omitempty"`
	Escalated      bool      `json:"escalated"`
	CreatedAt      time.Time `json:"createdAt"`
}
