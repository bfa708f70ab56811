package application

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-group-chat/internal/domain/domainerr"
	"github.com/oksasatya/go-ddd-group-chat/internal/domain/entity"
	"github.com/oksasatya/go-ddd-group-chat/internal/domain/repository"
)

type RemoveUserFromGroupInput struct {
	RemoverID string
	GroupID   string
	UserID    string
}

type RemoveUserFromGroup struct {
	base
	Users  repository.UserRepository
	Groups repository.GroupRepository
}

func NewRemoveUserFromGroup(users repository.UserRepository, groups repository.GroupRepository, logger *logrus.Logger) *RemoveUserFromGroup {
	return &RemoveUserFromGroup{base: base{"remove_user_from_group", logger}, Users: users, Groups: groups}
}

func (uc *RemoveUserFromGroup) Execute(ctx context.Context, in RemoveUserFromGroupInput) (*MembershipChange, error) {
	res, err := uc.execute(ctx, in)
	if err = uc.finish(err,
		domainerr.ErrInvalidUser,
		domainerr.ErrUserNotFound,
		domainerr.ErrInvalidGroup,
		domainerr.ErrUserNotAdminer,
		domainerr.ErrUserIsntInGroup,
	); err != nil {
		return nil, err
	}
	return res, nil
}

func (uc *RemoveUserFromGroup) execute(ctx context.Context, in RemoveUserFromGroupInput) (*MembershipChange, error) {
	remover, err := findUser(ctx, uc.Users, in.RemoverID, domainerr.ErrInvalidUser)
	if err != nil {
		return nil, err
	}
	target, err := findUser(ctx, uc.Users, in.UserID, domainerr.ErrUserNotFound)
	if err != nil {
		return nil, err
	}
	g, err := findGroup(ctx, uc.Groups, in.GroupID)
	if err != nil {
		return nil, err
	}
	if !g.IsUserAdminer(remover) {
		return nil, domainerr.ErrUserNotAdminer
	}
	// the owner is in the group but not a removable member
	if !g.IsUserInGroup(target) || g.IsUserAdminer(target) {
		return nil, domainerr.ErrUserIsntInGroup
	}

	g.RemoveUserListFromGroup([]*entity.User{target})
	if err := uc.Groups.Update(ctx, g); err != nil {
		return nil, fmt.Errorf("update group: %w", err)
	}
	return &MembershipChange{Group: g, User: target}, nil
}
