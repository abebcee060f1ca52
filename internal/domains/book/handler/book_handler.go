package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library-server/internal/domains/book/model"
	"library-server/internal/domains/book/service"
	"library-server/internal/shared/middleware"
	"library-server/internal/shared/response"
)

// BookHandler is a thin HTTP layer over the book service.
type BookHandler struct {
	service service.ServiceInterface
}

func NewBookHandler(service service.ServiceInterface) *BookHandler {
	return &BookHandler{service: service}
}

// GetAll handles GET /books?author=&genre=.
func (h *BookHandler) GetAll(c *gin.Context) {
	var filter model.BookFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}

	books, err := h.service.GetAll(c.Request.Context(), filter)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, books)
}

// Count handles GET /books/count.
func (h *BookHandler) Count(c *gin.Context) {
	count, err := h.service.Count(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"book_count": count})
}

// Genres handles GET /genres: the deduplicated genre set across all
// books.
func (h *BookHandler) Genres(c *gin.Context) {
	genres, err := h.service.AllGenres(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, genres)
}

// Add handles POST /books: the addBook mutation.
func (h *BookHandler) Add(c *gin.Context) {
	var req model.AddBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	book, err := h.service.Add(c.Request.Context(), middleware.CurrentUser(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, book)
}
