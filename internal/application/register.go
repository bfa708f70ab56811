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

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register creates a user with a session already issued, so the caller is
// logged in after a single insert.
type Register struct {
	base
	Users    repository.UserRepository
	Hasher   auth.Hasher
	Sessions auth.SessionHandler
}

func NewRegister(users repository.UserRepository, hasher auth.Hasher, sessions auth.SessionHandler, logger *logrus.Logger) *Register {
	return &Register{base: base{"register", logger}, Users: users, Hasher: hasher, Sessions: sessions}
}

func (uc *Register) Execute(ctx context.Context, in RegisterInput) (*entity.User, error) {
	u, err := uc.execute(ctx, in)
	if err = uc.finish(err, domainerr.ErrCredentialsAlreadyInUse); err != nil {
		return nil, err
	}
	return u, nil
}

func (uc *Register) execute(ctx context.Context, in RegisterInput) (*entity.User, error) {
	existing, err := uc.Users.FindOneByEmail(ctx, in.Email)
	switch {
	case err == nil && existing != nil:
		return nil, domainerr.ErrCredentialsAlreadyInUse
	case err != nil && !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	hash, err := uc.Hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := entity.NewUser(in.Name, in.Email, hash)

	token, err := uc.Sessions.GenerateSession(auth.SessionPayload{ID: u.ID, Email: u.Email})
	if err != nil {
		return nil, fmt.Errorf("generate session: %w", err)
	}
	u.UpdateSession(token)

	if err := uc.Users.Insert(ctx, u); err != nil {
		// lost the race against a concurrent register for the same email
		if errors.Is(err, repository.ErrConflict) {
			return nil, domainerr.ErrCredentialsAlreadyInUse
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}
