package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/eshopexpress/backend/internal/application"
	"github.com/eshopexpress/backend/internal/domain/entity"
	"github.com/eshopexpress/backend/pkg/response"
	"github.com/eshopexpress/backend/pkg/validation"
)

type OrderHandler struct {
	Svc    *application.OrderService
	Logger *logrus.Logger
}

func NewOrderHandler(svc *application.OrderService, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{Svc: svc, Logger: logger}
}

type orderItemRequest struct {
	GameID    int64  `json:"game_id" binding:"required"`
	Title     string `json:"title" binding:"required"`
	UnitPrice string `json:"unit_price" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

type createOrderRequest struct {
	UserID        int64              `json:"user_id" binding:"required"`
	FirstName     string             `json:"first_name" binding:"required"`
	LastName      string             `json:"last_name" binding:"required"`
	Email         string             `json:"email" binding:"required,email"`
	Address       string             `json:"address" binding:"required"`
	City          string             `json:"city" binding:"required"`
	Province      string             `json:"province" binding:"required,province"`
	PostalCode    string             `json:"postal_code" binding:"required"`
	PaymentMethod string             `json:"payment_method" binding:"required"`
	Items         []orderItemRequest `json:"items" binding:"required,min=1,dive"`
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required,orderstatus"`
}

func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.Svc.ListAll()
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, orders, "orders", nil)
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	o, err := h.Svc.FindByID(id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, o, "order", nil)
}

func (h *OrderHandler) ByCustomer(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil || userID <= 0 {
		response.Error[any](c, http.StatusBadRequest, "invalid user id", nil)
		return
	}
	orders, err := h.Svc.FindByCustomerID(userID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, orders, "orders by customer", nil)
}

// Lookup dispatches on query parameters: email, first_name and last_name
// together, or either name alone.
func (h *OrderHandler) Lookup(c *gin.Context) {
	var (
		orders []*entity.Order
		err    error
	)
	first := c.Query("first_name")
	last := c.Query("last_name")
	email := c.Query("email")
	switch {
	case email != "":
		orders, err = h.Svc.FindByEmail(email)
	case first != "" && last != "":
		orders, err = h.Svc.FindByFullName(first, last)
	case first != "":
		orders, err = h.Svc.FindByFirstName(first)
	case last != "":
		orders, err = h.Svc.FindByLastName(last)
	default:
		response.Error[any](c, http.StatusBadRequest, "missing lookup parameter", nil)
		return
	}
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, orders, "orders", nil)
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	province, err := entity.ParseProvince(req.Province)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	o := &entity.Order{
		UserID:        req.UserID,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Address:       req.Address,
		City:          req.City,
		Province:      province,
		PostalCode:    req.PostalCode,
		PaymentMethod: req.PaymentMethod,
	}
	for _, it := range req.Items {
		price, perr := decimal.NewFromString(it.UnitPrice)
		if perr != nil || price.IsNegative() {
			response.Error[any](c, http.StatusBadRequest, "invalid unit price", nil)
			return
		}
		o.Items = append(o.Items, entity.OrderItem{
			GameID:    it.GameID,
			Title:     it.Title,
			UnitPrice: price,
			Quantity:  it.Quantity,
		})
	}
	created, err := h.Svc.Create(c.Request.Context(), o)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, created, "order created", nil)
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	status, err := entity.ParseOrderStatus(req.Status)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if err := h.Svc.UpdateStatus(id, status); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "status": status}, "order status updated", nil)
}
