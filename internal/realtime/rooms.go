package realtime

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Rooms groups connections by the group id given at handshake. Joining does
// not check group membership.
type Rooms struct {
	mu     sync.RWMutex
	rooms  map[string]map[string]*Client
	logger *logrus.Logger
}

func NewRooms(logger *logrus.Logger) *Rooms {
	return &Rooms{rooms: make(map[string]map[string]*Client), logger: logger}
}

func (r *Rooms) Join(groupID string, c *Client) {
	if groupID == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[groupID]
	if !ok {
		room = make(map[string]*Client)
		r.rooms[groupID] = room
	}
	room[c.ID] = c
}

func (r *Rooms) Leave(groupID string, c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[groupID]
	if !ok {
		return
	}
	delete(room, c.ID)
	if len(room) == 0 {
		delete(r.rooms, groupID)
	}
}

// Broadcast emits to every connection in the room and returns how many
// accepted the event.
func (r *Rooms) Broadcast(groupID, event string, payload any) int {
	members := r.Members(groupID)
	sent := 0
	for _, c := range members {
		if err := c.Conn.Emit(event, payload); err != nil {
			if r.logger != nil {
				r.logger.WithError(err).WithFields(logrus.Fields{"group_id": groupID, "client_id": c.ID, "event": event}).Warn("broadcast failed")
			}
			continue
		}
		sent++
	}
	return sent
}

// Members returns a snapshot so emits run outside the lock.
func (r *Rooms) Members(groupID string) []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room := r.rooms[groupID]
	out := make([]*Client, 0, len(room))
	for _, c := range room {
		out = append(out, c)
	}
	return out
}
