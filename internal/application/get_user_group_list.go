package application

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-group-chat/internal/domain/domainerr"
	"github.com/oksasatya/go-ddd-group-chat/internal/domain/entity"
	"github.com/oksasatya/go-ddd-group-chat/internal/domain/repository"
)

type GetUserGroupList struct {
	base
	Users  repository.UserRepository
	Groups repository.GroupRepository
}

func NewGetUserGroupList(users repository.UserRepository, groups repository.GroupRepository, logger *logrus.Logger) *GetUserGroupList {
	return &GetUserGroupList{base: base{"get_user_group_list", logger}, Users: users, Groups: groups}
}

func (uc *GetUserGroupList) Execute(ctx context.Context, userID string) ([]*entity.Group, error) {
	groups, err := uc.execute(ctx, userID)
	if err = uc.finish(err, domainerr.ErrInvalidUser); err != nil {
		return nil, err
	}
	return groups, nil
}

func (uc *GetUserGroupList) execute(ctx context.Context, userID string) ([]*entity.Group, error) {
	u, err := findUser(ctx, uc.Users, userID, domainerr.ErrInvalidUser)
	if err != nil {
		return nil, err
	}
	groups, err := uc.Groups.FindByUser(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("find groups by user: %w", err)
	}
	if groups == nil {
		groups = []*entity.Group{}
	}
	return groups, nil
}
