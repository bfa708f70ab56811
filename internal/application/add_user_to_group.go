package application

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-group-chat/internal/domain/domainerr"
	"github.com/oksasatya/go-ddd-group-chat/internal/domain/entity"
	"github.com/oksasatya/go-ddd-group-chat/internal/domain/repository"
)

type AddUserToGroupInput struct {
	AdderID string
	GroupID string
	UserID  string
}

// MembershipChange is the result of a member add or remove: the group as
// persisted and the user that moved.
type MembershipChange struct {
	Group *entity.Group
	User  *entity.User
}

type AddUserToGroup struct {
	base
	Users  repository.UserRepository
	Groups repository.GroupRepository
}

func NewAddUserToGroup(users repository.UserRepository, groups repository.GroupRepository, logger *logrus.Logger) *AddUserToGroup {
	return &AddUserToGroup{base: base{"add_user_to_group", logger}, Users: users, Groups: groups}
}

func (uc *AddUserToGroup) Execute(ctx context.Context, in AddUserToGroupInput) (*MembershipChange, error) {
	res, err := uc.execute(ctx, in)
	if err = uc.finish(err,
		domainerr.ErrInvalidUser,
		domainerr.ErrUserNotFound,
		domainerr.ErrInvalidGroup,
		domainerr.ErrUserNotAdminer,
		domainerr.ErrUserAlreadyInGroup,
	); err != nil {
		return nil, err
	}
	return res, nil
}

func (uc *AddUserToGroup) execute(ctx context.Context, in AddUserToGroupInput) (*MembershipChange, error) {
	adder, err := findUser(ctx, uc.Users, in.AdderID, domainerr.ErrInvalidUser)
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
	if !g.IsUserAdminer(adder) {
		return nil, domainerr.ErrUserNotAdminer
	}
	if g.IsUserInGroup(target) {
		return nil, domainerr.ErrUserAlreadyInGroup
	}

	g.AddUserListOnGroup([]*entity.User{target})
	if err := uc.Groups.Update(ctx, g); err != nil {
		return nil, fmt.Errorf("update group: %w", err)
	}
	return &MembershipChange{Group: g, User: target}, nil
}
