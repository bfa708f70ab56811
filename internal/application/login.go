package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-group-chat/internal/domain/auth"
	"github.com/oksasatya/go-ddd-group-chat/internal/domain/domainerr"
	"github.com/oksasatya/go-ddd-group-chat/internal/domain/entity"
	"github.com/oksasatya/go-ddd-group-chat/internal/domain/repository"
)

type LoginInput struct {
	Email    string
	Password string
}

// Login issues a fresh session, which revokes any token issued before.
// Unknown email and wrong password are reported identically.
type Login struct {
	base
	Users     repository.UserRepository
	Encrypter auth.Encrypter
	Sessions  auth.SessionHandler
}

func NewLogin(users repository.UserRepository, encrypter auth.Encrypter, sessions auth.SessionHandler, logger *logrus.Logger) *Login {
	return &Login{base: base{"login", logger}, Users: users, Encrypter: encrypter, Sessions: sessions}
}

func (uc *Login) Execute(ctx context.Context, in LoginInput) (*entity.User, error) {
	u, err := uc.execute(ctx, in)
	if err = uc.finish(err, domainerr.ErrInvalidCredentials); err != nil {
		return nil, err
	}
	return u, nil
}

func (uc *Login) execute(ctx context.Context, in LoginInput) (*entity.User, error) {
	u, err := uc.Users.FindOneByEmail(ctx, in.Email)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && u == nil) {
		return nil, domainerr.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if !uc.Encrypter.Compare(in.Password, u.Password) {
		return nil, domainerr.ErrInvalidCredentials
	}

	token, err := uc.Sessions.GenerateSession(auth.SessionPayload{ID: u.ID, Email: u.Email})
	if err != nil {
		return nil, fmt.Errorf("generate session: %w", err)
	}
	u.UpdateSession(token)
	if err := uc.Users.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}
	return u, nil
}
