package realtime

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-group-chat/internal/domain/domainerr"
	"github.com/oksasatya/go-ddd-group-chat/internal/domain/entity"
	"github.com/oksasatya/go-ddd-group-chat/internal/domain/event"
	"github.com/oksasatya/go-ddd-group-chat/pkg/helpers"
)

type emitted struct {
	event   string
	payload any
}

type fakeConn struct {
	mu     sync.Mutex
	events []emitted
	closed bool
	err    error
}

func (f *fakeConn) Emit(event string, payload any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, emitted{event, payload})
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) names() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.event)
	}
	return out
}

type validatorFunc func(ctx context.Context, token string) (*entity.User, error)

func (f validatorFunc) Execute(ctx context.Context, token string) (*entity.User, error) {
	return f(ctx, token)
}

// tokens maps "tok-<id>" to a user with that id.
func tokens() SessionValidator {
	return validatorFunc(func(_ context.Context, token string) (*entity.User, error) {
		if len(token) > 4 && token[:4] == "tok-" {
			return &entity.User{ID: token[4:], Name: token[4:], Email: token[4:] + "@x.io"}, nil
		}
		return nil, domainerr.ErrInvalidUser
	})
}

func connect(t *testing.T, r *Registry, token, room string) (*Client, *fakeConn) {
	t.Helper()
	conn := &fakeConn{}
	c := NewClient(token, room, conn)
	require.NoError(t, r.OnConnect(context.Background(), c))
	return c, conn
}

func TestRegistry_OnConnect(t *testing.T) {
	r := NewRegistry(tokens(), helpers.NewNopLogger())

	conn := &fakeConn{}
	err := r.OnConnect(context.Background(), NewClient("", "", conn))
	require.ErrorIs(t, err, ErrMissingToken)
	require.True(t, conn.closed)
	require.Empty(t, conn.events)

	conn = &fakeConn{}
	err = r.OnConnect(context.Background(), NewClient("garbage", "", conn))
	require.ErrorIs(t, err, domainerr.ErrInvalidUser)
	require.True(t, conn.closed)
	require.Zero(t, r.Count())

	c, conn := connect(t, r, "tok-u1", "")
	require.False(t, conn.closed)
	require.Equal(t, "u1", c.UserID())

	got, ok := r.ClientByUserID("u1")
	require.True(t, ok)
	require.Same(t, c, got)
}

func TestRegistry_DisconnectThenEmitIsNoop(t *testing.T) {
	r := NewRegistry(tokens(), helpers.NewNopLogger())
	c, conn := connect(t, r, "tok-u1", "")

	r.OnDisconnect(c)

	_, ok := r.ClientByUserID("u1")
	require.False(t, ok)
	require.False(t, r.EmitToUser("u1", event.AddedToGroup, nil))
	require.Empty(t, conn.events)
}

func TestRegistry_EmitToUserTargetsFirstConnection(t *testing.T) {
	r := NewRegistry(tokens(), helpers.NewNopLogger())
	first, firstConn := connect(t, r, "tok-u1", "")
	_, secondConn := connect(t, r, "tok-u1", "")
	_, otherConn := connect(t, r, "tok-u2", "")
	require.Equal(t, 3, r.Count())

	require.True(t, r.EmitToUser("u1", event.AddedToGroup, "p"))
	require.Equal(t, []string{event.AddedToGroup}, firstConn.names())
	require.Empty(t, secondConn.events)
	require.Empty(t, otherConn.events)

	// closing one handle leaves the other reachable
	r.OnDisconnect(first)
	require.True(t, r.EmitToUser("u1", event.RemovedFromGroup, "p"))
	require.Equal(t, []string{event.RemovedFromGroup}, secondConn.names())
	require.Equal(t, 2, r.Count())
}

func TestRegistry_EmitFailureReportsUndelivered(t *testing.T) {
	r := NewRegistry(tokens(), helpers.NewNopLogger())
	_, conn := connect(t, r, "tok-u1", "")
	conn.err = errors.New("send buffer full")
	require.False(t, r.EmitToUser("u1", event.AddedToGroup, nil))
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := NewRegistry(tokens(), helpers.NewNopLogger())
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := NewClient("tok-u1", "", &fakeConn{})
			if err := r.OnConnect(context.Background(), c); err != nil {
				return
			}
			r.EmitToUser("u1", event.AddedToGroup, nil)
			r.OnDisconnect(c)
		}()
	}
	wg.Wait()
	require.Zero(t, r.Count())
}

func TestRooms(t *testing.T) {
	rooms := NewRooms(helpers.NewNopLogger())
	a := NewClient("tok-a", "g1", &fakeConn{})
	b := NewClient("tok-b", "g1", &fakeConn{})
	c := NewClient("tok-c", "g2", &fakeConn{})
	rooms.Join(a.Room, a)
	rooms.Join(b.Room, b)
	rooms.Join(c.Room, c)
	rooms.Join("", c)

	require.Equal(t, 2, rooms.Broadcast("g1", event.MessageCreated, "m"))
	require.Len(t, a.Conn.(*fakeConn).events, 1)
	require.Len(t, b.Conn.(*fakeConn).events, 1)
	require.Empty(t, c.Conn.(*fakeConn).events)

	rooms.Leave("g1", a)
	require.Equal(t, 1, rooms.Broadcast("g1", event.MessageEdited, "m"))
	require.Len(t, a.Conn.(*fakeConn).events, 1)

	rooms.Leave("g1", b)
	require.Empty(t, rooms.Members("g1"))
	require.Zero(t, rooms.Broadcast("g1", event.MessageDeleted, "m"))
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []event.ChatEvent
}

func (p *recordingPublisher) PublishJSON(_ context.Context, body any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, body.(event.ChatEvent))
	return nil
}

func TestDispatcher_RoutesMembershipThroughRegistry(t *testing.T) {
	registry := NewRegistry(tokens(), helpers.NewNopLogger())
	rooms := NewRooms(helpers.NewNopLogger())
	pub := &recordingPublisher{}
	d := NewDispatcher(registry, rooms, pub, helpers.NewNopLogger())

	target, targetConn := connect(t, registry, "tok-u2", "g1")
	rooms.Join(target.Room, target)
	_, bystanderConn := connect(t, registry, "tok-u3", "g1")

	g := &entity.Group{ID: "g1", Name: "team"}
	d.UserAdded(context.Background(), g, &entity.User{ID: "u2", Name: "u2", Email: "u2@x.io"})

	require.Equal(t, []string{event.AddedToGroup}, targetConn.names())
	require.Empty(t, bystanderConn.events)

	sent := targetConn.events[0].payload.(event.ChatEvent)
	require.Empty(t, sent.UserEmail)
	require.Len(t, pub.events, 1)
	require.Equal(t, "u2@x.io", pub.events[0].UserEmail)
}

func TestDispatcher_RoutesMessagesThroughRooms(t *testing.T) {
	registry := NewRegistry(tokens(), helpers.NewNopLogger())
	rooms := NewRooms(helpers.NewNopLogger())
	d := NewDispatcher(registry, rooms, nil, helpers.NewNopLogger())

	inRoom, inRoomConn := connect(t, registry, "tok-u1", "g1")
	rooms.Join(inRoom.Room, inRoom)
	_, elsewhereConn := connect(t, registry, "tok-u2", "g2")

	m := &entity.Message{ID: "m1", GroupID: "g1", Sender: &entity.User{ID: "u1"}, Content: "hi"}
	d.MessageCreated(context.Background(), m)
	d.MessageDeleted(context.Background(), m)

	require.Equal(t, []string{event.MessageCreated, event.MessageDeleted}, inRoomConn.names())
	require.Empty(t, elsewhereConn.events)
	require.Empty(t, inRoomConn.events[1].payload.(event.ChatEvent).Content)
}
