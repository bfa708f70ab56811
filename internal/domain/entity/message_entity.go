package entity

import (
	"time"

	"github.com/oksasatya/go-ddd-group-chat/internal/domain/domainerr"
)

// Message belongs to exactly one group and one sender for its whole life.
// Only Content changes, and only through Edit.
type Message struct {
	ID        string
	GroupID   string
	Sender    *User
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewMessage rejects the empty string only; whitespace content is accepted.
func NewMessage(groupID string, sender *User, content string) (*Message, error) {
	if content == "" {
		return nil, domainerr.ErrInvalidMessage
	}
	now := time.Now().UTC()
	return &Message{
		GroupID:   groupID,
		Sender:    sender,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (m *Message) IsSender(u *User) bool {
	return sameUser(m.Sender, u)
}

// Edit replaces the content under the same rule as NewMessage. The caller is
// responsible for checking IsSender first.
func (m *Message) Edit(content string) error {
	if content == "" {
		return domainerr.ErrInvalidMessage
	}
	m.Content = content
	m.UpdatedAt = time.Now().UTC()
	return nil
}
