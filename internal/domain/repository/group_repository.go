package repository

import (
	"context"

	"github.com/oksasatya/go-ddd-group-chat/internal/domain/entity"
)

//go:generate mockgen -source=group_repository.go -destination=../../mocks/mock_group_repository.go -package=mocks

// GroupRepository persists groups together with their member set.
// Update writes the whole member snapshot and must reject a stale Version
// with ErrConflict.
type GroupRepository interface {
	Insert(ctx context.Context, g *entity.Group) error
	Update(ctx context.Context, g *entity.Group) error
	FindByID(ctx context.Context, id string) (*entity.Group, error)
	// FindByUser lists groups the user owns or is a member of.
	FindByUser(ctx context.Context, userID string) ([]*entity.Group, error)
}
