package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"library-server/internal/domains/author/model"
	"library-server/internal/domains/author/service"
	"library-server/internal/shared/middleware"
	"library-server/internal/shared/response"
)

// AuthorHandler is a thin HTTP layer over the author service.
type AuthorHandler struct {
	service service.ServiceInterface
}

func NewAuthorHandler(service service.ServiceInterface) *AuthorHandler {
	return &AuthorHandler{service: service}
}

// GetAll handles GET /authors: all authors with their bookCount, via
// the batch aggregate path.
func (h *AuthorHandler) GetAll(c *gin.Context) {
	authors, err := h.service.GetAllWithBookCounts(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, authors)
}

// Count handles GET /authors/count.
func (h *AuthorHandler) Count(c *gin.Context) {
	count, err := h.service.Count(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"author_count": count})
}

// EditBorn handles PUT /authors/:name. Requires authentication; an
// unknown author name succeeds with an empty body.
func (h *AuthorHandler) EditBorn(c *gin.Context) {
	var req model.EditAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_INPUT", err.Error(), gin.H{"name": c.Param("name")})
		return
	}

	author, err := h.service.EditBorn(c.Request.Context(), middleware.CurrentUser(c), c.Param("name"), *req.SetBornTo)
	if err != nil {
		h.handleError(c, err)
		return
	}

	// author == nil: the no-op path for an unknown name.
	response.Success(c, http.StatusOK, author)
}

func (h *AuthorHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrAuthorNotFound):
		response.NotFound(c, err.Error())
	default:
		response.FromError(c, err)
	}
}
