package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-group-chat/internal/container"
	"github.com/oksasatya/go-ddd-group-chat/internal/interface/ws"
)

type WSModule struct {
	Gateway *ws.Gateway
}

func NewWSModule(c *container.Container) *WSModule { return &WSModule{Gateway: c.Gateway} }

func (m *WSModule) Register(rg *gin.RouterGroup) {
	rg.GET("/ws", m.Gateway.Serve)
}
