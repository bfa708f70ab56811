package application

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-group-chat/internal/domain/domainerr"
	"github.com/oksasatya/go-ddd-group-chat/internal/domain/entity"
	"github.com/oksasatya/go-ddd-group-chat/internal/domain/repository"
)

type SendMessageInput struct {
	SenderID string
	GroupID  string
	Content  string
}

type SendMessage struct {
	base
	Users    repository.UserRepository
	Groups   repository.GroupRepository
	Messages repository.MessageRepository
}

func NewSendMessage(users repository.UserRepository, groups repository.GroupRepository, messages repository.MessageRepository, logger *logrus.Logger) *SendMessage {
	return &SendMessage{base: base{"send_message", logger}, Users: users, Groups: groups, Messages: messages}
}

func (uc *SendMessage) Execute(ctx context.Context, in SendMessageInput) (*entity.Message, error) {
	m, err := uc.execute(ctx, in)
	if err = uc.finish(err,
		domainerr.ErrInvalidUser,
		domainerr.ErrInvalidGroup,
		domainerr.ErrUserIsntInGroup,
		domainerr.ErrInvalidMessage,
	); err != nil {
		return nil, err
	}
	return m, nil
}

func (uc *SendMessage) execute(ctx context.Context, in SendMessageInput) (*entity.Message, error) {
	sender, err := findUser(ctx, uc.Users, in.SenderID, domainerr.ErrInvalidUser)
	if err != nil {
		return nil, err
	}
	g, err := findGroup(ctx, uc.Groups, in.GroupID)
	if err != nil {
		return nil, err
	}
	if !g.IsUserInGroup(sender) {
		return nil, domainerr.ErrUserIsntInGroup
	}
	m, err := entity.NewMessage(g.ID, sender, in.Content)
	if err != nil {
		return nil, err
	}
	if err := uc.Messages.Insert(ctx, m); err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}
	return m, nil
}
