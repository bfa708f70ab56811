package realtime

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-group-chat/internal/domain/entity"
	"github.com/oksasatya/go-ddd-group-chat/internal/observability/metrics"
)

var ErrMissingToken = errors.New("realtime: missing session token")

// SessionValidator resolves a handshake token to its user.
type SessionValidator interface {
	Execute(ctx context.Context, token string) (*entity.User, error)
}

// Registry indexes authenticated connections by user id. A user with several
// connections has one entry per connection, kept in connect order.
type Registry struct {
	mu        sync.RWMutex
	clients   map[string][]*Client
	validator SessionValidator
	logger    *logrus.Logger
}

func NewRegistry(validator SessionValidator, logger *logrus.Logger) *Registry {
	return &Registry{
		clients:   make(map[string][]*Client),
		validator: validator,
		logger:    logger,
	}
}

// OnConnect authenticates the client and registers it. On any failure the
// connection is closed and no entry is added.
func (r *Registry) OnConnect(ctx context.Context, c *Client) error {
	if c.Token == "" {
		_ = c.Conn.Close()
		return ErrMissingToken
	}
	u, err := r.validator.Execute(ctx, c.Token)
	if err != nil {
		_ = c.Conn.Close()
		return err
	}
	c.User = u

	r.mu.Lock()
	r.clients[u.ID] = append(r.clients[u.ID], c)
	r.mu.Unlock()

	metrics.IncrementConnections()
	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{"user_id": u.ID, "client_id": c.ID}).Debug("client connected")
	}
	return nil
}

// OnDisconnect drops the entry of this connection only. Other connections of
// the same user stay registered.
func (r *Registry) OnDisconnect(c *Client) {
	uid := c.UserID()
	if uid == "" {
		return
	}
	r.mu.Lock()
	list := r.clients[uid]
	removed := false
	for i, cl := range list {
		if cl == c {
			list = append(list[:i:i], list[i+1:]...)
			removed = true
			break
		}
	}
	if len(list) == 0 {
		delete(r.clients, uid)
	} else {
		r.clients[uid] = list
	}
	r.mu.Unlock()

	if !removed {
		return
	}
	metrics.DecrementConnections()
	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{"user_id": uid, "client_id": c.ID}).Debug("client disconnected")
	}
}

// EmitToUser pushes the event to the first connection of userID. Offline
// users are skipped silently; the return value reports delivery.
func (r *Registry) EmitToUser(userID, event string, payload any) bool {
	c, ok := r.ClientByUserID(userID)
	if !ok {
		return false
	}
	if err := c.Conn.Emit(event, payload); err != nil {
		if r.logger != nil {
			r.logger.WithError(err).WithFields(logrus.Fields{"user_id": userID, "event": event}).Warn("emit failed")
		}
		return false
	}
	return true
}

func (r *Registry) ClientByUserID(userID string) (*Client, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := r.clients[userID]
	if len(list) == 0 {
		return nil, false
	}
	return list[0], true
}

// Count returns the number of registered connections.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, list := range r.clients {
		n += len(list)
	}
	return n
}
