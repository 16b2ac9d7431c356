package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eshopexpress/backend/internal/container"
	handlers "github.com/eshopexpress/backend/internal/interface/http"
	"github.com/eshopexpress/backend/internal/interface/middleware"
)

// OrderModule wires the order routes under /api/orders.
type OrderModule struct {
	Handler *handlers.OrderHandler
}

func NewOrderModule(h *handlers.OrderHandler) *OrderModule {
	return &OrderModule{Handler: h}
}

func (m *OrderModule) Register(rg *gin.RouterGroup) {
	readLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil)
	createLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath(), nil)

	orders := rg.Group("/orders")
	{
		orders.GET("", readLimiter, m.Handler.List)
		orders.GET("/lookup", readLimiter, m.Handler.Lookup)
		orders.GET("/customer/:userId", readLimiter, m.Handler.ByCustomer)
		orders.GET("/:id", readLimiter, m.Handler.Get)

		orders.POST("", createLimiter, m.Handler.Create)
		orders.PATCH("/:id/status", createLimiter, m.Handler.UpdateStatus)
	}
}
