package modelhandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"duochat-server/internal/domain/chat"
)

// ModelHandler serves the available model list.
type ModelHandler struct {
	chatService *chat.Service
}

// NewModelHandler creates a new ModelHandler
func NewModelHandler(chatService *chat.Service) *ModelHandler {
	return &ModelHandler{chatService: chatService}
}

// List returns the configured model pair.
func (h *ModelHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"models": h.chatService.Models()})
}
