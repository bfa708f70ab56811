package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-group-chat/internal/domain/auth"
	"github.com/oksasatya/go-ddd-group-chat/internal/domain/domainerr"
	"github.com/oksasatya/go-ddd-group-chat/internal/domain/entity"
	"github.com/oksasatya/go-ddd-group-chat/internal/domain/repository"
)

// ValidateUser turns a presented token into the live user it belongs to.
// It is the gate for both the HTTP guard and WebSocket connections and has
// no side effects.
type ValidateUser struct {
	base
	Users    repository.UserRepository
	Sessions auth.SessionHandler
}

func NewValidateUser(users repository.UserRepository, sessions auth.SessionHandler, logger *logrus.Logger) *ValidateUser {
	return &ValidateUser{base: base{"validate_user", logger}, Users: users, Sessions: sessions}
}

func (uc *ValidateUser) Execute(ctx context.Context, token string) (*entity.User, error) {
	u, err := uc.execute(ctx, token)
	if err = uc.finish(err, domainerr.ErrInvalidUser); err != nil {
		return nil, err
	}
	return u, nil
}

func (uc *ValidateUser) execute(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, domainerr.ErrInvalidUser
	}
	payload, err := uc.Sessions.VerifySession(token)
	if err != nil || payload == nil {
		return nil, domainerr.ErrInvalidUser
	}
	if payload.ID == "" || payload.Email == "" {
		return nil, domainerr.ErrInvalidUser
	}
	u, err := findUser(ctx, uc.Users, payload.ID, domainerr.ErrInvalidUser)
	if err != nil {
		return nil, err
	}
	// compared against the raw token: a newer login revokes older tokens that
	// would still verify
	if u.Session != token {
		return nil, domainerr.ErrInvalidUser
	}
	return u, nil
}
