package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eventfeed/eventfeed-api/internal/container"
	handlers "github.com/eventfeed/eventfeed-api/internal/interface/http"
	"github.com/eventfeed/eventfeed-api/internal/interface/middleware"
)

// AuthModule wires the two public session flows.
// POST /api/auth/register, POST /api/auth/login
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
}
