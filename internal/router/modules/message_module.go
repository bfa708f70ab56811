package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-group-chat/internal/container"
	handlers "github.com/oksasatya/go-ddd-group-chat/internal/interface/http"
	"github.com/oksasatya/go-ddd-group-chat/internal/interface/middleware"
)

type MessageModule struct {
	Handler *handlers.MessageHandler
	c       *container.Container
}

func NewMessageModule(c *container.Container) *MessageModule {
	return &MessageModule{Handler: c.MessageHandler, c: c}
}

func (m *MessageModule) Register(rg *gin.RouterGroup) {
	msgs := rg.Group("/groups/:groupID/messages")
	msgs.Use(
		middleware.Auth(m.c.ValidateUser),
		middleware.RateLimit(m.c.Redis, 300, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		msgs.GET("", m.Handler.GetMessages)
		msgs.POST("", m.Handler.PostMessage)
		// registered before :messageID so the static segment wins
		msgs.GET("/search", m.Handler.SearchMessages)
		msgs.PUT("/:messageID", m.Handler.PutMessage)
		msgs.DELETE("/:messageID", m.Handler.DeleteMessage)
	}
}
