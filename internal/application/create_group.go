package application

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-group-chat/internal/domain/domainerr"
	"github.com/oksasatya/go-ddd-group-chat/internal/domain/entity"
	"github.com/oksasatya/go-ddd-group-chat/internal/domain/repository"
)

type CreateGroupInput struct {
	OwnerID     string
	Name        string
	Description string
	MemberIDs   []string
}

// CreateGroup resolves member ids best-effort: ids that match no user are
// dropped from the membership instead of failing the call.
type CreateGroup struct {
	base
	Users  repository.UserRepository
	Groups repository.GroupRepository
}

func NewCreateGroup(users repository.UserRepository, groups repository.GroupRepository, logger *logrus.Logger) *CreateGroup {
	return &CreateGroup{base: base{"create_group", logger}, Users: users, Groups: groups}
}

func (uc *CreateGroup) Execute(ctx context.Context, in CreateGroupInput) (*entity.Group, error) {
	g, err := uc.execute(ctx, in)
	if err = uc.finish(err, domainerr.ErrMissingGroupOwner); err != nil {
		return nil, err
	}
	return g, nil
}

func (uc *CreateGroup) execute(ctx context.Context, in CreateGroupInput) (*entity.Group, error) {
	owner, err := findUser(ctx, uc.Users, in.OwnerID, domainerr.ErrMissingGroupOwner)
	if err != nil {
		return nil, err
	}

	var members []*entity.User
	if len(in.MemberIDs) > 0 {
		members, err = uc.Users.FindUserListByIDList(ctx, in.MemberIDs)
		if err != nil {
			return nil, fmt.Errorf("resolve members: %w", err)
		}
	}

	g := entity.NewGroup(in.Name, in.Description, owner)
	g.AddUserListOnGroup(members)
	if err := uc.Groups.Insert(ctx, g); err != nil {
		return nil, fmt.Errorf("insert group: %w", err)
	}
	return g, nil
}
