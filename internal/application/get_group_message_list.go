package application

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-group-chat/internal/domain/domainerr"
	"github.com/oksasatya/go-ddd-group-chat/internal/domain/entity"
	"github.com/oksasatya/go-ddd-group-chat/internal/domain/repository"
)

type GetGroupMessageListInput struct {
	UserID  string
	GroupID string
}

type GetGroupMessageList struct {
	base
	Users    repository.UserRepository
	Groups   repository.GroupRepository
	Messages repository.MessageRepository
}

func NewGetGroupMessageList(users repository.UserRepository, groups repository.GroupRepository, messages repository.MessageRepository, logger *logrus.Logger) *GetGroupMessageList {
	return &GetGroupMessageList{base: base{"get_group_message_list", logger}, Users: users, Groups: groups, Messages: messages}
}

func (uc *GetGroupMessageList) Execute(ctx context.Context, in GetGroupMessageListInput) ([]*entity.Message, error) {
	list, err := uc.execute(ctx, in)
	if err = uc.finish(err,
		domainerr.ErrInvalidUser,
		domainerr.ErrInvalidGroup,
		domainerr.ErrUserIsntInGroup,
	); err != nil {
		return nil, err
	}
	return list, nil
}

func (uc *GetGroupMessageList) execute(ctx context.Context, in GetGroupMessageListInput) ([]*entity.Message, error) {
	if _, err := memberOf(ctx, uc.Users, uc.Groups, in.UserID, in.GroupID); err != nil {
		return nil, err
	}
	list, err := uc.Messages.FindByGroup(ctx, in.GroupID)
	if err != nil {
		return nil, fmt.Errorf("find messages by group: %w", err)
	}
	if list == nil {
		list = []*entity.Message{}
	}
	return list, nil
}

// memberOf loads the group after checking the user exists and belongs to it.
func memberOf(ctx context.Context, users repository.UserRepository, groups repository.GroupRepository, userID, groupID string) (*entity.Group, error) {
	u, err := findUser(ctx, users, userID, domainerr.ErrInvalidUser)
	if err != nil {
		return nil, err
	}
	g, err := findGroup(ctx, groups, groupID)
	if err != nil {
		return nil, err
	}
	if !g.IsUserInGroup(u) {
		return nil, domainerr.ErrUserIsntInGroup
	}
	return g, nil
}
