package handlers

import (
	"log"
	"net/http"

	"todo-manager/backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SearchHandler struct {
	db            *gorm.DB
	searchService services.SearchService
}

func NewSearchHandler(db *gorm.DB, searchService services.SearchService) *SearchHandler {
	return &SearchHandler{db: db, searchService: searchService}
}

// SearchTodos handles GET /todos/search. All parameters are optional and
// combine with AND; out-of-range pagination values are clamped rather than
// rejected.
func (h *SearchHandler) SearchTodos(c *gin.Context) {
	params := services.ParseSearchParams(
		c.Query("q"),
		c.Query("category"),
		c.Query("status"),
		c.DefaultQuery("sortBy", "createdAt"),
		c.DefaultQuery("sortOrder", "desc"),
		c.DefaultQuery("page", "1"),
		c.DefaultQuery("limit", "20"),
	)

	result, err := h.searchService.SearchTodos(h.db, params)
	if err != nil {
		log.Printf("Error searching todos: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search todos"})
		return
	}

	c.JSON(http.StatusOK, result)
}
