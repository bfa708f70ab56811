// Package realtime routes events to live connections. Registry targets one
// user; Rooms fan out to every connection that joined a group. The two are
// independent and only Dispatcher decides which one an event goes through.
package realtime

import (
	"github.com/google/uuid"

	"github.com/oksasatya/go-ddd-group-chat/internal/domain/entity"
)

// Conn is the transport side of a connection.
type Conn interface {
	Emit(event string, payload any) error
	Close() error
}

// Client is one live connection. Token and Room come from the handshake;
// User is attached by Registry.OnConnect and read-only afterwards.
type Client struct {
	ID    string
	Token string
	Room  string
	Conn  Conn
	User  *entity.User
}

func NewClient(token, room string, conn Conn) *Client {
	return &Client{ID: uuid.NewString(), Token: token, Room: room, Conn: conn}
}

// UserID is empty until the client is authenticated.
func (c *Client) UserID() string {
	if c == nil || c.User == nil {
		return ""
	}
	return c.User.ID
}
