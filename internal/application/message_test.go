package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/oksasatya/go-ddd-group-chat/internal/application"
	"github.com/oksasatya/go-ddd-group-chat/internal/domain/domainerr"
	"github.com/oksasatya/go-ddd-group-chat/internal/domain/entity"
	"github.com/oksasatya/go-ddd-group-chat/internal/domain/repository"
	"github.com/oksasatya/go-ddd-group-chat/internal/mocks"
	"github.com/oksasatya/go-ddd-group-chat/pkg/helpers"
)

type messageFixture struct {
	*groupFixture
	messages *mocks.MockMessageRepository
	searcher *mocks.MockMessageSearcher
	msg      *entity.Message
	foreign  *entity.Message
}

// newMessageFixture adds message m1 from "member" in g1 and message m2 from
// "member" in another group.
func newMessageFixture(t *testing.T) *messageFixture {
	t.Helper()
	f := &messageFixture{groupFixture: newGroupFixture(t)}
	ctrl := gomock.NewController(t)
	f.messages = mocks.NewMockMessageRepository(ctrl)
	f.searcher = mocks.NewMockMessageSearcher(ctrl)
	f.msg = &entity.Message{ID: "m1", GroupID: "g1", Sender: f.member, Content: "hi"}
	f.foreign = &entity.Message{ID: "m2", GroupID: "g9", Sender: f.member, Content: "elsewhere"}
	f.messages.EXPECT().FindByID(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, id string) (*entity.Message, error) {
			switch id {
			case f.msg.ID:
				return f.msg, nil
			case f.foreign.ID:
				return f.foreign, nil
			}
			return nil, repository.ErrNotFound
		}).AnyTimes()
	return f
}

func TestSendMessage(t *testing.T) {
	tests := []struct {
		name string
		in   application.SendMessageInput
		want error
	}{
		{"unknown sender", application.SendMessageInput{SenderID: "ghost", GroupID: "g1", Content: "x"}, domainerr.ErrInvalidUser},
		{"unknown group", application.SendMessageInput{SenderID: "member", GroupID: "nope", Content: "x"}, domainerr.ErrInvalidGroup},
		{"sender not in group", application.SendMessageInput{SenderID: "other", GroupID: "g1", Content: "x"}, domainerr.ErrUserIsntInGroup},
		{"empty content", application.SendMessageInput{SenderID: "member", GroupID: "g1", Content: ""}, domainerr.ErrInvalidMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMessageFixture(t)
			uc := application.NewSendMessage(f.users, f.groups, f.messages, helpers.NewNopLogger())
			_, err := uc.Execute(context.Background(), tt.in)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSendMessage_OwnerAndMemberCanSend(t *testing.T) {
	f := newMessageFixture(t)
	f.messages.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, m *entity.Message) error {
			m.ID = "new-" + m.Sender.ID
			return nil
		}).Times(2)
	uc := application.NewSendMessage(f.users, f.groups, f.messages, helpers.NewNopLogger())

	for _, sender := range []string{"owner", "member"} {
		m, err := uc.Execute(context.Background(), application.SendMessageInput{SenderID: sender, GroupID: "g1", Content: "hello"})
		require.NoError(t, err)
		require.Equal(t, sender, m.Sender.ID)
		require.Equal(t, "g1", m.GroupID)
		require.NotEmpty(t, m.ID)
	}
}

func TestEditMessage(t *testing.T) {
	tests := []struct {
		name string
		in   application.EditMessageInput
		want error
	}{
		{"unknown editor", application.EditMessageInput{EditorID: "ghost", MessageID: "m1", Content: "x"}, domainerr.ErrInvalidUser},
		{"unknown message", application.EditMessageInput{EditorID: "member", MessageID: "nope", Content: "x"}, domainerr.ErrInvalidMessage},
		{"not the sender", application.EditMessageInput{EditorID: "owner", MessageID: "m1", Content: "x"}, domainerr.ErrCurrentUserIsntMessageOwner},
		{"empty content", application.EditMessageInput{EditorID: "member", MessageID: "m1", Content: ""}, domainerr.ErrInvalidMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMessageFixture(t)
			uc := application.NewEditMessage(f.users, f.messages, helpers.NewNopLogger())
			_, err := uc.Execute(context.Background(), tt.in)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestEditMessage_Persists(t *testing.T) {
	f := newMessageFixture(t)
	f.messages.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
	uc := application.NewEditMessage(f.users, f.messages, helpers.NewNopLogger())

	m, err := uc.Execute(context.Background(), application.EditMessageInput{EditorID: "member", MessageID: "m1", Content: "edited"})
	require.NoError(t, err)
	require.Equal(t, "edited", m.Content)
}

func TestDeleteMessage(t *testing.T) {
	tests := []struct {
		name string
		in   application.DeleteMessageInput
		want error
	}{
		{"unknown user", application.DeleteMessageInput{UserID: "ghost", GroupID: "g1", MessageID: "m1"}, domainerr.ErrInvalidUser},
		{"unknown group", application.DeleteMessageInput{UserID: "member", GroupID: "nope", MessageID: "m1"}, domainerr.ErrInvalidGroup},
		{"unknown message", application.DeleteMessageInput{UserID: "member", GroupID: "g1", MessageID: "nope"}, domainerr.ErrInvalidMessage},
		{"message from another group", application.DeleteMessageInput{UserID: "member", GroupID: "g1", MessageID: "m2"}, domainerr.ErrInvalidMessage},
		{"not the sender", application.DeleteMessageInput{UserID: "owner", GroupID: "g1", MessageID: "m1"}, domainerr.ErrCurrentUserIsntMessageOwner},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMessageFixture(t)
			uc := application.NewDeleteMessage(f.users, f.groups, f.messages, helpers.NewNopLogger())
			_, err := uc.Execute(context.Background(), tt.in)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDeleteMessage_Persists(t *testing.T) {
	f := newMessageFixture(t)
	f.messages.EXPECT().Delete(gomock.Any(), "m1").Return(nil)
	uc := application.NewDeleteMessage(f.users, f.groups, f.messages, helpers.NewNopLogger())

	m, err := uc.Execute(context.Background(), application.DeleteMessageInput{UserID: "member", GroupID: "g1", MessageID: "m1"})
	require.NoError(t, err)
	require.Equal(t, "m1", m.ID)
}

func TestGetGroupMessageList(t *testing.T) {
	f := newMessageFixture(t)
	f.messages.EXPECT().FindByGroup(gomock.Any(), "g1").Return([]*entity.Message{f.msg}, nil)
	uc := application.NewGetGroupMessageList(f.users, f.groups, f.messages, helpers.NewNopLogger())

	list, err := uc.Execute(context.Background(), application.GetGroupMessageListInput{UserID: "owner", GroupID: "g1"})
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = uc.Execute(context.Background(), application.GetGroupMessageListInput{UserID: "other", GroupID: "g1"})
	require.ErrorIs(t, err, domainerr.ErrUserIsntInGroup)
}

func TestSearchGroupMessages(t *testing.T) {
	f := newMessageFixture(t)
	f.searcher.EXPECT().Search(gomock.Any(), "g1", "hi", 20).
		Return([]application.SearchHit{{MessageID: "m1", GroupID: "g1", Content: "hi"}}, nil)
	uc := application.NewSearchGroupMessages(f.users, f.groups, f.searcher, helpers.NewNopLogger())
	ctx := context.Background()

	hits, err := uc.Execute(ctx, application.SearchGroupMessagesInput{UserID: "member", GroupID: "g1", Query: "hi", Size: 500})
	require.NoError(t, err)
	require.Len(t, hits, 1)

	hits, err = uc.Execute(ctx, application.SearchGroupMessagesInput{UserID: "member", GroupID: "g1"})
	require.NoError(t, err)
	require.Empty(t, hits)

	_, err = uc.Execute(ctx, application.SearchGroupMessagesInput{UserID: "other", GroupID: "g1", Query: "hi"})
	require.ErrorIs(t, err, domainerr.ErrUserIsntInGroup)
}
