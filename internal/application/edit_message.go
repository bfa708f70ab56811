package application

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-group-chat/internal/domain/domainerr"
	"github.com/oksasatya/go-ddd-group-chat/internal/domain/entity"
	"github.com/oksasatya/go-ddd-group-chat/internal/domain/repository"
)

type EditMessageInput struct {
	EditorID  string
	MessageID string
	Content   string
}

// EditMessage lets the original sender replace the content. Group membership
// is not rechecked.
type EditMessage struct {
	base
	Users    repository.UserRepository
	Messages repository.MessageRepository
}

func NewEditMessage(users repository.UserRepository, messages repository.MessageRepository, logger *logrus.Logger) *EditMessage {
	return &EditMessage{base: base{"edit_message", logger}, Users: users, Messages: messages}
}

func (uc *EditMessage) Execute(ctx context.Context, in EditMessageInput) (*entity.Message, error) {
	m, err := uc.execute(ctx, in)
	if err = uc.finish(err,
		domainerr.ErrInvalidUser,
		domainerr.ErrInvalidMessage,
		domainerr.ErrCurrentUserIsntMessageOwner,
	); err != nil {
		return nil, err
	}
	return m, nil
}

func (uc *EditMessage) execute(ctx context.Context, in EditMessageInput) (*entity.Message, error) {
	editor, err := findUser(ctx, uc.Users, in.EditorID, domainerr.ErrInvalidUser)
	if err != nil {
		return nil, err
	}
	m, err := findMessage(ctx, uc.Messages, in.MessageID)
	if err != nil {
		return nil, err
	}
	if !m.IsSender(editor) {
		return nil, domainerr.ErrCurrentUserIsntMessageOwner
	}
	if err := m.Edit(in.Content); err != nil {
		return nil, err
	}
	if err := uc.Messages.Update(ctx, m); err != nil {
		return nil, fmt.Errorf("update message: %w", err)
	}
	return m, nil
}
