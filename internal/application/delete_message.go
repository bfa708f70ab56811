package application

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-group-chat/internal/domain/domainerr"
	"github.com/oksasatya/go-ddd-group-chat/internal/domain/entity"
	"github.com/oksasatya/go-ddd-group-chat/internal/domain/repository"
)

type DeleteMessageInput struct {
	UserID    string
	GroupID   string
	MessageID string
}

type DeleteMessage struct {
	base
	Users    repository.UserRepository
	Groups   repository.GroupRepository
	Messages repository.MessageRepository
}

func NewDeleteMessage(users repository.UserRepository, groups repository.GroupRepository, messages repository.MessageRepository, logger *logrus.Logger) *DeleteMessage {
	return &DeleteMessage{base: base{"delete_message", logger}, Users: users, Groups: groups, Messages: messages}
}

// Execute returns the message as it was before deletion.
func (uc *DeleteMessage) Execute(ctx context.Context, in DeleteMessageInput) (*entity.Message, error) {
	m, err := uc.execute(ctx, in)
	if err = uc.finish(err,
		domainerr.ErrInvalidUser,
		domainerr.ErrInvalidGroup,
		domainerr.ErrInvalidMessage,
		domainerr.ErrCurrentUserIsntMessageOwner,
	); err != nil {
		return nil, err
	}
	return m, nil
}

func (uc *DeleteMessage) execute(ctx context.Context, in DeleteMessageInput) (*entity.Message, error) {
	u, err := findUser(ctx, uc.Users, in.UserID, domainerr.ErrInvalidUser)
	if err != nil {
		return nil, err
	}
	g, err := findGroup(ctx, uc.Groups, in.GroupID)
	if err != nil {
		return nil, err
	}
	m, err := findMessage(ctx, uc.Messages, in.MessageID)
	if err != nil {
		return nil, err
	}
	if m.GroupID != g.ID {
		return nil, domainerr.ErrInvalidMessage
	}
	if !m.IsSender(u) {
		return nil, domainerr.ErrCurrentUserIsntMessageOwner
	}
	if err := uc.Messages.Delete(ctx, m.ID); err != nil {
		return nil, fmt.Errorf("delete message: %w", err)
	}
	return m, nil
}
