package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-group-chat/internal/application"
	"github.com/oksasatya/go-ddd-group-chat/internal/domain/domainerr"
	"github.com/oksasatya/go-ddd-group-chat/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-group-chat/internal/realtime"
)

const (
	EventSendMessage   = "send-message"
	EventEditMessage   = "edit-message"
	EventDeleteMessage = "delete-message"
	EventError         = "error"

	GroupHeader = "X-Group-ID"

	handleTimeout = 10 * time.Second
)

type MessageUseCases struct {
	Send   *application.SendMessage
	Edit   *application.EditMessage
	Delete *application.DeleteMessage
}

type Gateway struct {
	upgrader   websocket.Upgrader
	registry   *realtime.Registry
	rooms      *realtime.Rooms
	dispatcher *realtime.Dispatcher
	messages   MessageUseCases
	logger     *logrus.Logger
}

// NewGateway accepts any origin when allowedOrigins is empty or holds "*".
func NewGateway(registry *realtime.Registry, rooms *realtime.Rooms, dispatcher *realtime.Dispatcher, messages MessageUseCases, allowedOrigins []string, logger *logrus.Logger) *Gateway {
	return &Gateway{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		registry:   registry,
		rooms:      rooms,
		dispatcher: dispatcher,
		messages:   messages,
		logger:     logger,
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 || slices.Contains(allowed, "*") {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || slices.Contains(allowed, origin)
	}
}

func handshake(r *http.Request) (token, room string) {
	token = middleware.BearerToken(r)
	if token == "" {
		token = r.URL.Query().Get("token")
	}
	room = r.Header.Get(GroupHeader)
	if room == "" {
		room = r.URL.Query().Get("group_id")
	}
	return token, room
}

// Serve GET /ws
func (g *Gateway) Serve(c *gin.Context) {
	token, room := handshake(c.Request)
	socket, err := g.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		g.logger.WithError(err).Debug("ws upgrade failed")
		return
	}

	conn := newConn(socket)
	client := realtime.NewClient(token, room, conn)
	if err := g.registry.OnConnect(c.Request.Context(), client); err != nil {
		g.logger.WithError(err).WithField("client_id", client.ID).Debug("ws connection rejected")
		return
	}
	g.rooms.Join(client.Room, client)

	go conn.writePump()
	go g.readPump(client, conn)
}

func (g *Gateway) readPump(client *realtime.Client, conn *Conn) {
	defer func() {
		g.rooms.Leave(client.Room, client)
		g.registry.OnDisconnect(client)
		_ = conn.Close()
	}()

	ws := conn.ws
	ws.SetReadLimit(maxMessageSize)
	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				g.logger.WithError(err).WithField("client_id", client.ID).Warn("ws read")
			}
			return
		}
		var f Frame
		if err := json.Unmarshal(raw, &f); err != nil {
			_ = conn.Emit(EventError, errorPayload("", "invalid_frame", "frame is not valid json"))
			continue
		}
		g.handle(client, f)
	}
}

type messageData struct {
	MessageID string `json:"message_id"`
	Content   string `json:"content"`
}

// handle runs one inbound frame as the connection's user on its room.
func (g *Gateway) handle(client *realtime.Client, f Frame) {
	var d messageData
	if len(f.Data) > 0 {
		if err := json.Unmarshal(f.Data, &d); err != nil {
			_ = client.Conn.Emit(EventError, errorPayload(f.Event, "invalid_frame", "data is not valid json"))
			return
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	var err error
	switch f.Event {
	case EventSendMessage:
		m, e := g.messages.Send.Execute(ctx, application.SendMessageInput{
			SenderID: client.UserID(), GroupID: client.Room, Content: d.Content,
		})
		if err = e; err == nil {
			g.dispatcher.MessageCreated(ctx, m)
		}
	case EventEditMessage:
		m, e := g.messages.Edit.Execute(ctx, application.EditMessageInput{
			EditorID: client.UserID(), MessageID: d.MessageID, Content: d.Content,
		})
		if err = e; err == nil {
			g.dispatcher.MessageEdited(ctx, m)
		}
	case EventDeleteMessage:
		m, e := g.messages.Delete.Execute(ctx, application.DeleteMessageInput{
			UserID: client.UserID(), GroupID: client.Room, MessageID: d.MessageID,
		})
		if err = e; err == nil {
			g.dispatcher.MessageDeleted(ctx, m)
		}
	default:
		_ = client.Conn.Emit(EventError, errorPayload(f.Event, "unknown_event", "unknown event"))
		return
	}

	if err != nil {
		kind := domainerr.KindOf(err)
		msg := err.Error()
		if errors.Is(err, domainerr.ErrUnexpected) {
			msg = "internal error"
		}
		_ = client.Conn.Emit(EventError, errorPayload(f.Event, kind.String(), msg))
	}
}

func errorPayload(event, code, message string) gin.H {
	return gin.H{"event": event, "code": code, "message": message}
}
