package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eshopexpress/backend/internal/container"
	handlers "github.com/eshopexpress/backend/internal/interface/http"
	"github.com/eshopexpress/backend/internal/interface/middleware"
)

// CatalogModule wires the game catalog routes under /api/games.
// Reads are rate-limited generously per IP; writes and the cover upload get
// tighter per-IP-and-path limits.
type CatalogModule struct {
	Handler *handlers.CatalogHandler
}

func NewCatalogModule(h *handlers.CatalogHandler) *CatalogModule {
	return &CatalogModule{Handler: h}
}

func (m *CatalogModule) Register(rg *gin.RouterGroup) {
	readLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil)
	writeLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIPAndPath(), nil)
	uploadLimiter := middleware.RateLimit(container.GetRedis(), 20, time.Minute, middleware.KeyByIPAndPath(), nil)

	games := rg.Group("/games")
	{
		games.GET("", readLimiter, m.Handler.List)
		games.GET("/search", readLimiter, m.Handler.Search)
		games.GET("/new-releases", readLimiter, m.Handler.NewReleases)
		games.GET("/top-rated", readLimiter, m.Handler.TopRated)
		games.GET("/platform/:name", readLimiter, m.Handler.ByPlatform)
		games.GET("/genre/:name", readLimiter, m.Handler.ByGenre)
		games.POST("/recommendations", readLimiter, m.Handler.Recommendations)
		games.GET("/:id", readLimiter, m.Handler.Get)

		games.POST("", writeLimiter, m.Handler.Create)
		games.PUT("/:id", writeLimiter, m.Handler.Update)
		games.DELETE("/:id", writeLimiter, m.Handler.Delete)
		games.PATCH("/:id/stock", writeLimiter, m.Handler.UpdateStock)
		games.POST("/:id/rating/recalculate", writeLimiter, m.Handler.RecalculateRating)
		games.POST("/:id/cover", uploadLimiter, m.Handler.UploadCover)
	}
}
