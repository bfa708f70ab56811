// Package application holds one orchestrator per operation. Each Execute
// reads what it needs, checks entity invariants in a fixed order, performs at
// most one write and reports failures from the closed domainerr set.
package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-group-chat/internal/domain/domainerr"
	"github.com/oksasatya/go-ddd-group-chat/internal/domain/entity"
	"github.com/oksasatya/go-ddd-group-chat/internal/domain/repository"
	"github.com/oksasatya/go-ddd-group-chat/internal/observability/metrics"
)

type base struct {
	name   string
	logger *logrus.Logger
}

// finish applies the failure-collapse rule and records the outcome. The
// original cause of an unexpected failure is logged, never returned.
func (b base) finish(err error, allowed ...*domainerr.Error) error {
	if err == nil {
		metrics.ObserveUseCase(b.name, "ok")
		return nil
	}
	out := domainerr.Collapse(err, allowed...)
	metrics.ObserveUseCase(b.name, domainerr.KindOf(out).String())
	if errors.Is(out, domainerr.ErrUnexpected) && b.logger != nil {
		b.logger.WithError(err).WithField("usecase", b.name).Error("use case failed")
	}
	return out
}

func findUser(ctx context.Context, users repository.UserRepository, id string, missing *domainerr.Error) (*entity.User, error) {
	if id == "" {
		return nil, missing
	}
	u, err := users.FindOneByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && u == nil) {
		return nil, missing
	}
	if err != nil {
		return nil, fmt.Errorf("find user %s: %w", id, err)
	}
	return u, nil
}

func findGroup(ctx context.Context, groups repository.GroupRepository, id string) (*entity.Group, error) {
	if id == "" {
		return nil, domainerr.ErrInvalidGroup
	}
	g, err := groups.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && g == nil) {
		return nil, domainerr.ErrInvalidGroup
	}
	if err != nil {
		return nil, fmt.Errorf("find group %s: %w", id, err)
	}
	return g, nil
}

func findMessage(ctx context.Context, messages repository.MessageRepository, id string) (*entity.Message, error) {
	if id == "" {
		return nil, domainerr.ErrInvalidMessage
	}
	m, err := messages.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && m == nil) {
		return nil, domainerr.ErrInvalidMessage
	}
	if err != nil {
		return nil, fmt.Errorf("find message %s: %w", id, err)
	}
	return m, nil
}
