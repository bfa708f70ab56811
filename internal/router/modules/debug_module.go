package modules

import (
	"expvar"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/oksasatya/go-ddd-group-chat/internal/container"
	"github.com/oksasatya/go-ddd-group-chat/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-group-chat/internal/realtime"
)

type DebugModule struct {
	c *container.Container
}

func NewDebugModule(c *container.Container) *DebugModule { return &DebugModule{c: c} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rg.GET("/healthz", healthz(m.c.Registry))
	if !m.c.Config.DebugMetricsEnabled {
		return
	}
	rl := middleware.RateLimit(m.c.Redis, 120, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
	rg.GET("/metrics", rl, gin.WrapH(promhttp.Handler()))
}

func healthz(registry *realtime.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "connections": registry.Count()})
	}
}
