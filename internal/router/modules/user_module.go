package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eshopexpress/backend/internal/container"
	handlers "github.com/eshopexpress/backend/internal/interface/http"
	"github.com/eshopexpress/backend/internal/interface/middleware"
)

// UserModule wires the customer account routes under /api/users.
type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	readLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil)
	writeLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath(), nil)

	users := rg.Group("/users")
	{
		users.GET("", readLimiter, m.Handler.List)
		users.GET("/:id", readLimiter, m.Handler.Get)

		users.POST("", writeLimiter, m.Handler.Create)
		users.PUT("/:id", writeLimiter, m.Handler.Update)
		users.DELETE("/:id", writeLimiter, m.Handler.Delete)
	}
}
