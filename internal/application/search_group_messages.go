package application

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-group-chat/internal/domain/domainerr"
	"github.com/oksasatya/go-ddd-group-chat/internal/domain/repository"
)

const (
	defaultSearchSize = 20
	maxSearchSize     = 100
)

type SearchGroupMessagesInput struct {
	UserID  string
	GroupID string
	Query   string
	Size    int
}

// SearchGroupMessages applies the message-list membership rule to full-text
// search. The index is eventually consistent with the message table.
type SearchGroupMessages struct {
	base
	Users    repository.UserRepository
	Groups   repository.GroupRepository
	Searcher MessageSearcher
}

func NewSearchGroupMessages(users repository.UserRepository, groups repository.GroupRepository, searcher MessageSearcher, logger *logrus.Logger) *SearchGroupMessages {
	return &SearchGroupMessages{base: base{"search_group_messages", logger}, Users: users, Groups: groups, Searcher: searcher}
}

func (uc *SearchGroupMessages) Execute(ctx context.Context, in SearchGroupMessagesInput) ([]SearchHit, error) {
	hits, err := uc.execute(ctx, in)
	if err = uc.finish(err,
		domainerr.ErrInvalidUser,
		domainerr.ErrInvalidGroup,
		domainerr.ErrUserIsntInGroup,
	); err != nil {
		return nil, err
	}
	return hits, nil
}

func (uc *SearchGroupMessages) execute(ctx context.Context, in SearchGroupMessagesInput) ([]SearchHit, error) {
	if _, err := memberOf(ctx, uc.Users, uc.Groups, in.UserID, in.GroupID); err != nil {
		return nil, err
	}
	if uc.Searcher == nil || in.Query == "" {
		return []SearchHit{}, nil
	}
	size := in.Size
	if size <= 0 || size > maxSearchSize {
		size = defaultSearchSize
	}
	hits, err := uc.Searcher.Search(ctx, in.GroupID, in.Query, size)
	if err != nil {
		return nil, fmt.Errorf("search messages: %w", err)
	}
	if hits == nil {
		hits = []SearchHit{}
	}
	return hits, nil
}
