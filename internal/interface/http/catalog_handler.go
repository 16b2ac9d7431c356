package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/eshopexpress/backend/internal/application"
	"github.com/eshopexpress/backend/internal/domain"
	"github.com/eshopexpress/backend/internal/domain/entity"
	"github.com/eshopexpress/backend/pkg/response"
	"github.com/eshopexpress/backend/pkg/validation"
)

type CatalogHandler struct {
	Svc    *application.CatalogService
	Logger *logrus.Logger
}

func NewCatalogHandler(svc *application.CatalogService, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{Svc: svc, Logger: logger}
}

type saveGameRequest struct {
	Title         string  `json:"title" binding:"required"`
	Description   string  `json:"description"`
	Price         string  `json:"price" binding:"required"`
	CoverImageURL string  `json:"cover_image_url"`
	ReleaseDate   string  `json:"release_date" binding:"required,datetime=2006-01-02"`
	Publisher     string  `json:"publisher"`
	Developer     string  `json:"developer"`
	AgeRating     string  `json:"age_rating"`
	Digital       bool    `json:"digital"`
	StockQuantity int     `json:"stock_quantity" binding:"gte=0"`
	GenreIDs      []int64 `json:"genre_ids"`
	PlatformIDs   []int64 `json:"platform_ids"`
}

type updateStockRequest struct {
	Delta int `json:"delta" binding:"required"`
}

type recommendationsRequest struct {
	GenreIDs       []int64 `json:"genre_ids" binding:"required,min=1"`
	PlatformIDs    []int64 `json:"platform_ids" binding:"required,min=1"`
	ExcludeGameIDs []int64 `json:"exclude_game_ids"`
}

// fail maps a service error onto the API envelope: NotFound becomes a 404,
// anything else an unclassified 500.
func fail(c *gin.Context, err error) {
	if domain.IsNotFound(err) {
		response.Error[any](c, http.StatusNotFound, err.Error(), nil)
		return
	}
	response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error[any](c, http.StatusBadRequest, "invalid id", nil)
		return 0, false
	}
	return id, true
}

func (h *CatalogHandler) List(c *gin.Context) {
	// ?title= narrows by case-insensitive substring match
	if title := c.Query("title"); title != "" {
		games, err := h.Svc.FindByTitle(title)
		if err != nil {
			fail(c, err)
			return
		}
		response.Success(c, http.StatusOK, games, "games", nil)
		return
	}
	games, err := h.Svc.ListAll()
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, games, "games", nil)
}

func (h *CatalogHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	g, err := h.Svc.RequireByID(id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, g, "game", nil)
}

func (h *CatalogHandler) ByPlatform(c *gin.Context) {
	games, err := h.Svc.FindByPlatform(c.Param("name"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, games, "games by platform", nil)
}

func (h *CatalogHandler) ByGenre(c *gin.Context) {
	games, err := h.Svc.FindByGenre(c.Param("name"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, games, "games by genre", nil)
}

func (h *CatalogHandler) NewReleases(c *gin.Context) {
	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			response.Error[any](c, http.StatusBadRequest, "invalid limit", nil)
			return
		}
		games, err := h.Svc.FindRecentReleases(limit)
		if err != nil {
			fail(c, err)
			return
		}
		response.Success(c, http.StatusOK, games, "new releases", nil)
		return
	}
	games, err := h.Svc.FindNewReleases()
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, games, "new releases", nil)
}

func (h *CatalogHandler) TopRated(c *gin.Context) {
	games, err := h.Svc.FindTopRated()
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, games, "top rated games", nil)
}

func (h *CatalogHandler) Recommendations(c *gin.Context) {
	var req recommendationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	games, err := h.Svc.Recommend(req.GenreIDs, req.PlatformIDs, req.ExcludeGameIDs)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, games, "recommended games", nil)
}

func (h *CatalogHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "missing query", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.SearchGames(c.Request.Context(), q, size)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", nil)
}

func (h *CatalogHandler) gameFromRequest(c *gin.Context, id int64) (*entity.Game, bool) {
	var req saveGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return nil, false
	}
	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.IsNegative() {
		response.Error[any](c, http.StatusBadRequest, "invalid price", nil)
		return nil, false
	}
	release, _ := time.Parse("2006-01-02", req.ReleaseDate)
	g := &entity.Game{
		ID:            id,
		Title:         req.Title,
		Description:   req.Description,
		Price:         price,
		CoverImageURL: req.CoverImageURL,
		ReleaseDate:   release,
		Publisher:     req.Publisher,
		Developer:     req.Developer,
		AgeRating:     entity.AgeRating(req.AgeRating),
		Digital:       req.Digital,
		StockQuantity: req.StockQuantity,
	}
	for _, gid := range req.GenreIDs {
		g.Genres = append(g.Genres, entity.Genre{ID: gid})
	}
	for _, pid := range req.PlatformIDs {
		g.Platforms = append(g.Platforms, entity.Platform{ID: pid})
	}
	return g, true
}

func (h *CatalogHandler) Create(c *gin.Context) {
	g, ok := h.gameFromRequest(c, 0)
	if !ok {
		return
	}
	saved, err := h.Svc.Save(c.Request.Context(), g)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, saved, "game created", nil)
}

func (h *CatalogHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if _, err := h.Svc.RequireByID(id); err != nil {
		fail(c, err)
		return
	}
	g, ok := h.gameFromRequest(c, id)
	if !ok {
		return
	}
	saved, err := h.Svc.Save(c.Request.Context(), g)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, saved, "game updated", nil)
}

func (h *CatalogHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Svc.DeleteByID(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "game deleted", nil)
}

func (h *CatalogHandler) UpdateStock(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.UpdateStock(id, req.Delta); err != nil {
		fail(c, err)
		return
	}
	g, err := h.Svc.RequireByID(id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": g.ID, "stock_quantity": g.StockQuantity}, "stock updated", nil)
}

func (h *CatalogHandler) RecalculateRating(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	avg, err := h.Svc.RecalculateAverageRating(id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "average_rating": avg}, "rating recalculated", nil)
}

func (h *CatalogHandler) UploadCover(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	file, err := c.FormFile("cover")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "missing cover file", nil)
		return
	}
	f, err := file.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "unreadable cover file", nil)
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.UploadCoverImage(c.Request.Context(), id, f, file.Filename, file.Header.Get("Content-Type"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "cover_image_url": url}, "cover uploaded", nil)
}
