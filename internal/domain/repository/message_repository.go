package repository

import (
	"context"

	"github.com/oksasatya/go-ddd-group-chat/internal/domain/entity"
)

//go:generate mockgen -source=message_repository.go -destination=../../mocks/mock_message_repository.go -package=mocks

type MessageRepository interface {
	Insert(ctx context.Context, m *entity.Message) error
	Update(ctx context.Context, m *entity.Message) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*entity.Message, error)
	// FindByGroup returns messages oldest first.
	FindByGroup(ctx context.Context, groupID string) ([]*entity.Message, error)
}
