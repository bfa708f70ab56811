package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-group-chat/internal/container"
	handlers "github.com/oksasatya/go-ddd-group-chat/internal/interface/http"
	"github.com/oksasatya/go-ddd-group-chat/internal/interface/middleware"
)

// GroupModule serves group creation, listing and membership changes.
type GroupModule struct {
	Handler *handlers.GroupHandler
	c       *container.Container
}

func NewGroupModule(c *container.Container) *GroupModule {
	return &GroupModule{Handler: c.GroupHandler, c: c}
}

func (m *GroupModule) Register(rg *gin.RouterGroup) {
	groups := rg.Group("/groups")
	groups.Use(
		middleware.Auth(m.c.ValidateUser),
		middleware.RateLimit(m.c.Redis, 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		groups.POST("", m.Handler.PostGroup)
		groups.GET("", m.Handler.GetGroups)
		groups.POST("/:groupID/members", m.Handler.PostMember)
		groups.DELETE("/:groupID/members/:userID", m.Handler.DeleteMember)
	}
}
