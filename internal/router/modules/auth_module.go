package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-group-chat/internal/container"
	handlers "github.com/oksasatya/go-ddd-group-chat/internal/interface/http"
	"github.com/oksasatya/go-ddd-group-chat/internal/interface/middleware"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
	c       *container.Container
}

func NewAuthModule(c *container.Container) *AuthModule {
	return &AuthModule{Handler: c.AuthHandler, c: c}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Public endpoints with IP-based rate limits
	registerLimiter := middleware.RateLimit(m.c.Redis, 5, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())
	loginLimiter := middleware.RateLimit(m.c.Redis, 10, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())

	rg.POST("/auth/register", registerLimiter, m.Handler.PostRegister)
	rg.POST("/auth/login", loginLimiter, m.Handler.PostLogin)

	auth := rg.Group("/auth")
	auth.Use(middleware.Auth(m.c.ValidateUser))
	{
		auth.GET("/me", m.Handler.GetMe)
		auth.POST("/logout", m.Handler.PostLogout)
	}
}
