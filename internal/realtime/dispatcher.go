package realtime

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-group-chat/internal/domain/entity"
	"github.com/oksasatya/go-ddd-group-chat/internal/domain/event"
	"github.com/oksasatya/go-ddd-group-chat/internal/observability/metrics"
)

const publishTimeout = 3 * time.Second

// Publisher forwards events to the broker. helpers.RabbitPublisher satisfies it.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// Dispatcher is where handlers push events after a successful mutation.
// Membership changes go to the affected user through the Registry, message
// events go to the group room. Both are also published when a publisher is
// set.
type Dispatcher struct {
	Registry  *Registry
	Rooms     *Rooms
	Publisher Publisher
	logger    *logrus.Logger
}

func NewDispatcher(registry *Registry, rooms *Rooms, publisher Publisher, logger *logrus.Logger) *Dispatcher {
	return &Dispatcher{Registry: registry, Rooms: rooms, Publisher: publisher, logger: logger}
}

func (d *Dispatcher) UserAdded(ctx context.Context, g *entity.Group, u *entity.User) {
	d.membership(ctx, event.AddedToGroup, g, u)
}

func (d *Dispatcher) UserRemoved(ctx context.Context, g *entity.Group, u *entity.User) {
	d.membership(ctx, event.RemovedFromGroup, g, u)
}

func (d *Dispatcher) MessageCreated(ctx context.Context, m *entity.Message) {
	d.message(ctx, event.MessageCreated, m)
}

func (d *Dispatcher) MessageEdited(ctx context.Context, m *entity.Message) {
	d.message(ctx, event.MessageEdited, m)
}

func (d *Dispatcher) MessageDeleted(ctx context.Context, m *entity.Message) {
	d.message(ctx, event.MessageDeleted, m)
}

func (d *Dispatcher) membership(ctx context.Context, typ string, g *entity.Group, u *entity.User) {
	ev := event.ChatEvent{
		Type:       typ,
		GroupID:    g.ID,
		GroupName:  g.Name,
		UserID:     u.ID,
		UserName:   u.Name,
		OccurredAt: time.Now().UTC(),
	}
	if d.Registry != nil && d.Registry.EmitToUser(u.ID, typ, ev) {
		metrics.ObserveEvent(typ, "delivered")
	} else {
		metrics.ObserveEvent(typ, "offline")
	}
	// the broker copy carries the address for the mail notice
	ev.UserEmail = u.Email
	d.publish(ctx, ev)
}

func (d *Dispatcher) message(ctx context.Context, typ string, m *entity.Message) {
	ev := event.ChatEvent{
		Type:       typ,
		GroupID:    m.GroupID,
		MessageID:  m.ID,
		Content:    m.Content,
		SentAt:     m.CreatedAt,
		OccurredAt: time.Now().UTC(),
	}
	if m.Sender != nil {
		ev.UserID = m.Sender.ID
		ev.UserName = m.Sender.Name
	}
	if typ == event.MessageDeleted {
		ev.Content = ""
	}
	if d.Rooms != nil {
		n := d.Rooms.Broadcast(m.GroupID, typ, ev)
		metrics.ObserveEvent(typ, roomResult(n))
	}
	d.publish(ctx, ev)
}

func (d *Dispatcher) publish(ctx context.Context, ev event.ChatEvent) {
	if d.Publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := d.Publisher.PublishJSON(ctx, ev); err != nil && d.logger != nil {
		d.logger.WithError(err).WithFields(logrus.Fields{"event": ev.Type, "group_id": ev.GroupID}).Error("publish chat event")
	}
}

func roomResult(n int) string {
	if n == 0 {
		return "empty_room"
	}
	return "delivered"
}
