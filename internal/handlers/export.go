package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"todo-manager/backend/internal/cache"
	"todo-manager/backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ExportHandler struct {
	db        *gorm.DB
	ioService services.ImportExportService
	cache     cache.Cache
}

func NewExportHandler(db *gorm.DB, ioService services.ImportExportService, cacheInstance cache.Cache) *ExportHandler {
	return &ExportHandler{db: db, ioService: ioService, cache: cacheInstance}
}

// ExportTodos handles GET /todos/export, serving the snapshot as a
// downloadable JSON attachment.
func (h *ExportHandler) ExportTodos(c *gin.Context) {
	envelope, err := h.ioService.ExportTodos(h.db)
	if err != nil {
		log.Printf("Error exporting todos: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export todos"})
		return
	}

	filename := fmt.Sprintf("tasks-export-%s.json", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	c.JSON(http.StatusOK, envelope)
}

type importRequest struct {
	Tasks []services.ImportTask `json:"tasks"`
	Mode  string                `json:"mode"`
}

// ImportTodos handles POST /todos/export. Per-item failures are tallied,
// not fatal; only a malformed request or an unusable mode is rejected.
func (h *ExportHandler) ImportTodos(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tasks must be an array"})
		return
	}

	if req.Tasks == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tasks must be an array"})
		return
	}

	result, err := h.ioService.ImportTodos(h.db, req.Tasks, req.Mode)
	if err != nil {
		if errors.Is(err, services.ErrInvalidImportMode) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Mode must be 'merge' or 'replace'"})
			return
		}
		log.Printf("Error importing todos: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import todos"})
		return
	}

	services.FlushTodoCaches(h.cache)

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Import completed: %d imported, %d skipped, %d errors",
			result.Imported, result.Skipped, result.Errors),
		"result": result,
	})
}
