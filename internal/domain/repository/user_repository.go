package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/go-ddd-group-chat/internal/domain/entity"
)

//go:generate mockgen -source=user_repository.go -destination=../../mocks/mock_user_repository.go -package=mocks

var (
	// ErrNotFound is returned by lookups that match no row.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a write collides with existing state:
	// a unique key on insert or a stale version on update.
	ErrConflict = errors.New("conflict")
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Insert(ctx context.Context, u *entity.User) error
	Update(ctx context.Context, u *entity.User) error
	FindOneByID(ctx context.Context, id string) (*entity.User, error)
	FindOneByEmail(ctx context.Context, email string) (*entity.User, error)
	// FindUserListByIDList returns the users that exist; unknown ids are skipped.
	FindUserListByIDList(ctx context.Context, ids []string) ([]*entity.User, error)
}
