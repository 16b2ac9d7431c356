package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/eshopexpress/backend/internal/application"
	"github.com/eshopexpress/backend/internal/domain/entity"
	"github.com/eshopexpress/backend/pkg/response"
	"github.com/eshopexpress/backend/pkg/validation"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type saveUserRequest struct {
	Username   string `json:"username" binding:"required,min=3"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"omitempty,min=8"`
	FirstName  string `json:"first_name" binding:"required"`
	LastName   string `json:"last_name" binding:"required"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Province   string `json:"province" binding:"omitempty,province"`
	PostalCode string `json:"postal_code"`
	Enabled    *bool  `json:"enabled"`
}

// userView keeps password hashes out of API responses.
type userView struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postal_code"`
	Enabled    bool   `json:"enabled"`
}

func toUserView(u *entity.User) userView {
	return userView{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Address:    u.Address,
		City:       u.City,
		Province:   string(u.Province),
		PostalCode: u.PostalCode,
		Enabled:    u.Enabled,
	}
}

func toUserViews(users []*entity.User) []userView {
	views := make([]userView, 0, len(users))
	for _, u := range users {
		views = append(views, toUserView(u))
	}
	return views
}

func (h *UserHandler) List(c *gin.Context) {
	var (
		users []*entity.User
		err   error
	)
	switch {
	case c.Query("first_name") != "":
		users, err = h.Svc.FindByFirstName(c.Query("first_name"))
	case c.Query("last_name") != "":
		users, err = h.Svc.FindByLastName(c.Query("last_name"))
	case c.Query("city") != "":
		users, err = h.Svc.FindByCity(c.Query("city"))
	default:
		users, err = h.Svc.ListAll()
	}
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toUserViews(users), "users", nil)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	u, err := h.Svc.RequireByID(id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toUserView(u), "user", nil)
}

func (h *UserHandler) userFromRequest(c *gin.Context, id int64) (*entity.User, string, bool) {
	var req saveUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return nil, "", false
	}
	u := &entity.User{
		ID:         id,
		Username:   req.Username,
		Email:      req.Email,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Address:    req.Address,
		City:       req.City,
		Province:   entity.Province(req.Province),
		PostalCode: req.PostalCode,
		Enabled:    true,
	}
	if req.Enabled != nil {
		u.Enabled = *req.Enabled
	}
	return u, req.Password, true
}

func (h *UserHandler) Create(c *gin.Context) {
	u, password, ok := h.userFromRequest(c, 0)
	if !ok {
		return
	}
	if password == "" {
		response.Error[any](c, http.StatusBadRequest, "password is required", nil)
		return
	}
	saved, err := h.Svc.Save(u, password)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toUserView(saved), "user created", nil)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	existing, err := h.Svc.RequireByID(id)
	if err != nil {
		fail(c, err)
		return
	}
	u, password, ok := h.userFromRequest(c, id)
	if !ok {
		return
	}
	if password == "" {
		// keep the stored hash when the password is not being changed
		u.Password = existing.Password
	}
	saved, err := h.Svc.Save(u, password)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toUserView(saved), "user updated", nil)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Svc.DeleteByID(id); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "user deleted", nil)
}
