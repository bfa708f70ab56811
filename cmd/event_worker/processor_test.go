package main

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-group-chat/internal/domain/event"
	"github.com/oksasatya/go-ddd-group-chat/pkg/helpers"
	"github.com/oksasatya/go-ddd-group-chat/pkg/mailer"
)

type fakeIndex struct {
	applied []event.ChatEvent
	err     error
}

func (f *fakeIndex) Apply(_ context.Context, ev event.ChatEvent) error {
	f.applied = append(f.applied, ev)
	return f.err
}

type fakeMail struct {
	sent []mailer.EmailJob
	err  error
}

func (f *fakeMail) Send(_ context.Context, job mailer.EmailJob) error {
	f.sent = append(f.sent, job)
	return f.err
}

func encode(t *testing.T, ev event.ChatEvent) []byte {
	t.Helper()
	b, err := json.Marshal(ev)
	require.NoError(t, err)
	return b
}

func newProcessor(idx *fakeIndex, mail *fakeMail) *processor {
	p := &processor{index: idx, appName: "chat", logger: helpers.NewNopLogger()}
	if mail != nil {
		p.mail = mail
	}
	return p
}

func TestMessageEventIsIndexedWithoutMail(t *testing.T) {
	idx, mail := &fakeIndex{}, &fakeMail{}
	p := newProcessor(idx, mail)

	requeue, err := p.handle(context.Background(), encode(t, event.ChatEvent{Type: event.MessageCreated, GroupID: "g1", MessageID: "m1", Content: "hi"}))
	require.NoError(t, err)
	require.False(t, requeue)
	require.Len(t, idx.applied, 1)
	require.Empty(t, mail.sent)
}

func TestMembershipEventSendsNotice(t *testing.T) {
	idx, mail := &fakeIndex{}, &fakeMail{}
	p := newProcessor(idx, mail)

	ev := event.ChatEvent{Type: event.AddedToGroup, GroupID: "g1", GroupName: "General", UserID: "u2", UserName: "Bob", UserEmail: "bob@example.com"}
	_, err := p.handle(context.Background(), encode(t, ev))
	require.NoError(t, err)
	require.Len(t, mail.sent, 1)
	require.Equal(t, "bob@example.com", mail.sent[0].To)
	require.Contains(t, mail.sent[0].Subject, "General")
}

func TestMailDisabled(t *testing.T) {
	p := newProcessor(&fakeIndex{}, nil)
	ev := event.ChatEvent{Type: event.RemovedFromGroup, GroupID: "g1", UserEmail: "bob@example.com"}
	requeue, err := p.handle(context.Background(), encode(t, ev))
	require.NoError(t, err)
	require.False(t, requeue)
}

func TestFailuresAndRequeue(t *testing.T) {
	t.Run("malformed body is dropped", func(t *testing.T) {
		requeue, err := newProcessor(&fakeIndex{}, nil).handle(context.Background(), []byte("{"))
		require.Error(t, err)
		require.False(t, requeue)
	})
	t.Run("missing type is dropped", func(t *testing.T) {
		requeue, err := newProcessor(&fakeIndex{}, nil).handle(context.Background(), []byte(`{"group_id":"g1"}`))
		require.Error(t, err)
		require.False(t, requeue)
	})
	t.Run("index failure requeues", func(t *testing.T) {
		idx := &fakeIndex{err: errors.New("es down")}
		requeue, err := newProcessor(idx, nil).handle(context.Background(), encode(t, event.ChatEvent{Type: event.MessageEdited, MessageID: "m1"}))
		require.Error(t, err)
		require.True(t, requeue)
	})
	t.Run("mail failure requeues", func(t *testing.T) {
		mail := &fakeMail{err: errors.New("mailgun down")}
		ev := event.ChatEvent{Type: event.AddedToGroup, GroupName: "General", UserEmail: "bob@example.com"}
		requeue, err := newProcessor(&fakeIndex{}, mail).handle(context.Background(), encode(t, ev))
		require.Error(t, err)
		require.True(t, requeue)
	})
}
