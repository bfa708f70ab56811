package application

import (
	"context"
	"time"
)

//go:generate mockgen -source=ports.go -destination=../mocks/mock_ports.go -package=mocks

// SearchHit is one message matched by the search index.
type SearchHit struct {
	MessageID string    `json:"message_id"`
	GroupID   string    `json:"group_id"`
	SenderID  string    `json:"sender_id"`
	Content   string    `json:"content"`
	SentAt    time.Time `json:"sent_at"`
}

// MessageSearcher queries the full-text message index for one group.
type MessageSearcher interface {
	Search(ctx context.Context, groupID, query string, size int) ([]SearchHit, error)
}
