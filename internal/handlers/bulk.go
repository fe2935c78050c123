package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"todo-manager/backend/internal/cache"
	"todo-manager/backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type BulkHandler struct {
	db          *gorm.DB
	bulkService services.BulkService
	cache       cache.Cache
}

func NewBulkHandler(db *gorm.DB, bulkService services.BulkService, cacheInstance cache.Cache) *BulkHandler {
	return &BulkHandler{db: db, bulkService: bulkService, cache: cacheInstance}
}

type bulkRequest struct {
	Action  string   `json:"action"`
	TodoIDs []string `json:"todoIds"`
}

// BulkAction handles POST /todos/bulk. The action runs as one batch against
// the store; the response reports how many rows were actually touched.
func (h *BulkHandler) BulkAction(c *gin.Context) {
	var req bulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Action and todoIds array are required"})
		return
	}

	if req.Action == "" || req.TodoIDs == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Action and todoIds array are required"})
		return
	}

	affected, err := h.bulkService.ApplyBulkAction(h.db, req.Action, req.TodoIDs)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidAction):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action"})
		case errors.Is(err, services.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Action and todoIds array are required"})
		default:
			log.Printf("Error performing bulk %s: %v", req.Action, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to perform bulk operation"})
		}
		return
	}

	if affected > 0 {
		services.FlushTodoCaches(h.cache)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  fmt.Sprintf("Successfully %s %d todos", req.Action, affected),
		"affected": affected,
	})
}
