package handlers

import (
	"context"

	"github.com/oksasatya/go-ddd-group-chat/internal/domain/entity"
)

// Notifier receives the events of successful mutations. realtime.Dispatcher
// is the production implementation.
type Notifier interface {
	UserAdded(ctx context.Context, g *entity.Group, u *entity.User)
	UserRemoved(ctx context.Context, g *entity.Group, u *entity.User)
	MessageCreated(ctx context.Context, m *entity.Message)
	MessageEdited(ctx context.Context, m *entity.Message)
	MessageDeleted(ctx context.Context, m *entity.Message)
}
