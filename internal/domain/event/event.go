// Package event holds the chat events published to the broker after a
// successful mutation. The same names are used on the WebSocket wire.
package event

import "time"

const (
	AddedToGroup     = "added-to-group"
	RemovedFromGroup = "removed-from-group"
	MessageCreated   = "message-created"
	MessageEdited    = "message-edited"
	MessageDeleted   = "message-deleted"
)

// ChatEvent is the broker payload. Fields not relevant to a type are empty.
type ChatEvent struct {
	Type       string    `json:"type"`
	GroupID    string    `json:"group_id"`
	GroupName  string    `json:"group_name,omitempty"`
	UserID     string    `json:"user_id,omitempty"`
	UserName   string    `json:"user_name,omitempty"`
	UserEmail  string    `json:"user_email,omitempty"`
	MessageID  string    `json:"message_id,omitempty"`
	Content    string    `json:"content,omitempty"`
	SentAt     time.Time `json:"sent_at,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
