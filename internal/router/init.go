package router

import (
	"github.com/oksasatya/go-ddd-group-chat/internal/container"
	"github.com/oksasatya/go-ddd-group-chat/internal/router/modules"
)

// InitModules registers every feature module built from the container.
// Call once during startup, before RegisterAll.
func InitModules(r *Registry, c *container.Container) {
	r.Add(modules.NewAuthModule(c))
	r.Add(modules.NewGroupModule(c))
	r.Add(modules.NewMessageModule(c))
	r.AddRoot(modules.NewWSModule(c))
	r.AddRoot(modules.NewDebugModule(c))
}
