package entity

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-group-chat/internal/domain/domainerr"
)

func TestNewMessage(t *testing.T) {
	sender := newTestUser("s")
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"empty content", "", domainerr.ErrInvalidMessage},
		{"plain content", "hello", nil},
		{"whitespace only is accepted", "   ", nil},
		{"single char", "x", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			m, err := NewMessage("g1", sender, tt.content)
			if tt.wantErr != nil {
				req.ErrorIs(err, tt.wantErr)
				req.Nil(m)
				return
			}
			req.NoError(err)
			req.Equal("g1", m.GroupID)
			req.Equal(tt.content, m.Content)
			req.Same(sender, m.Sender)
		})
	}
}

func TestMessage_IsSender(t *testing.T) {
	req := require.New(t)
	m, err := NewMessage("g1", newTestUser("s"), "hi")
	req.NoError(err)

	req.True(m.IsSender(&User{ID: "s"}))
	req.False(m.IsSender(newTestUser("other")))
	req.False(m.IsSender(nil))
}

func TestMessage_Edit(t *testing.T) {
	req := require.New(t)
	m, err := NewMessage("g1", newTestUser("s"), "hi")
	req.NoError(err)

	req.NoError(m.Edit("edited"))
	req.Equal("edited", m.Content)

	req.ErrorIs(m.Edit(""), domainerr.ErrInvalidMessage)
	req.Equal("edited", m.Content)
}
