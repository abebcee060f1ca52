package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library-server/internal/domains/user/model"
	"library-server/internal/domains/user/service"
	"library-server/internal/shared/middleware"
	"library-server/internal/shared/response"
)

// UserHandler is a thin HTTP layer over the user service.
type UserHandler struct {
	service service.ServiceInterface
}

func NewUserHandler(service service.ServiceInterface) *UserHandler {
	return &UserHandler{service: service}
}

// Create handles POST /users. No authentication required.
func (h *UserHandler) Create(c *gin.Context) {
	var req model.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	user, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, user)
}

// Login handles POST /auth/login and returns the signed token.
func (h *UserHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, token)
}

// GetAll handles GET /users.
func (h *UserHandler) GetAll(c *gin.Context) {
	users, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, users)
}

// Me handles GET /users/me: the authenticated user from the auth
// context, or null when anonymous. Anonymous is a valid result, not an
// error.
func (h *UserHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		response.Success(c, http.StatusOK, nil)
		return
	}

	response.Success(c, http.StatusOK, user.ToResponse())
}
