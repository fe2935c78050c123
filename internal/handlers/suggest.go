package handlers

import (
	"errors"
	"log"
	"net/http"

	"todo-manager/backend/internal/services"

	"github.com/gin-gonic/gin"
)

// SuggestHandler serves POST /ai-suggest. It is constructed with a nil
// service when no Gemini credential is configured, in which case only this
// endpoint degrades.
type SuggestHandler struct {
	suggestService services.SuggestService
}

func NewSuggestHandler(suggestService services.SuggestService) *SuggestHandler {
	return &SuggestHandler{suggestService: suggestService}
}

type suggestRequest struct {
	Text string `json:"text"`
}

func (h *SuggestHandler) Suggest(c *gin.Context) {
	var req suggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text is required"})
		return
	}

	if h.suggestService == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Google Gemini API key not configured"})
		return
	}

	suggestion, err := h.suggestService.SuggestTodo(c.Request.Context(), req.Text)
	if err != nil {
		if errors.Is(err, services.ErrEmptyText) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Text is required"})
			return
		}
		log.Printf("AI suggestion error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate AI suggestions"})
		return
	}

	c.JSON(http.StatusOK, suggestion)
}
