package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eventfeed/eventfeed-api/internal/application"
	"github.com/eventfeed/eventfeed-api/internal/container"
	handlers "github.com/eventfeed/eventfeed-api/internal/interface/http"
	"github.com/eventfeed/eventfeed-api/internal/interface/middleware"
)

// EventModule wires the protected event routes behind the auth gate.
// POST /api/events, GET /api/events, GET /api/events/user,
// GET /api/events/search, DELETE /api/events/:id
type EventModule struct {
	Handler *handlers.EventHandler
	Auth    *application.AuthService
}

func NewEventModule(h *handlers.EventHandler, auth *application.AuthService) *EventModule {
	return &EventModule{Handler: h, Auth: auth}
}

func (m *EventModule) Register(rg *gin.RouterGroup) {
	events := rg.Group("/events")
	events.Use(middleware.Auth(container.GetRedis(), container.GetJWT(), m.Auth))
	events.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), middleware.AllowPrivateIP()))
	{
		events.POST("", m.Handler.Create)
		events.GET("", m.Handler.List)
		events.GET("/user", m.Handler.ListOwn)
		events.GET("/search", m.Handler.Search)
		events.DELETE("/:id", m.Handler.Delete)
	}
}
