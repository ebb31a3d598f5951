package conversationhandler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"duochat-server/internal/domain/conversation"
	middleware "duochat-server/internal/interfaces/httpserver/middlewares"
	conversationres "duochat-server/internal/interfaces/httpserver/responses/conversation"
)

// ConversationHandler handles conversation listing, history and deletion.
type ConversationHandler struct {
	conversationService *conversation.Service
	logger              zerolog.Logger
}

// NewConversationHandler creates a new ConversationHandler
func NewConversationHandler(conversationService *conversation.Service, logger zerolog.Logger) *ConversationHandler {
	return &ConversationHandler{
		conversationService: conversationService,
		logger:              logger,
	}
}

// List returns the user's conversations with a short opening-message preview.
func (h *ConversationHandler) List(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conversations, err := h.conversationService.List(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error().Err(err).Msg("list conversations")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	elements := make([]conversationres.Summary, 0, len(conversations))
	for _, convo := range conversations {
		elements = append(elements, conversationres.Summary{
			IDConv:  convo.PublicID,
			Content: convo.Preview(),
		})
	}

	c.JSON(http.StatusOK, elements)
}

// History returns the full turn sequence of an owned conversation.
func (h *ConversationHandler) History(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	turns, err := h.conversationService.History(c.Request.Context(), c.Param("conv_id"), userID)
	if err != nil {
		if errors.Is(err, conversation.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
			return
		}
		h.logger.Error().Err(err).Msg("load conversation history")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, turns)
}

// Delete removes an owned conversation.
func (h *ConversationHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	err := h.conversationService.Delete(c.Request.Context(), c.Param("conv_id"), userID)
	if err != nil {
		if errors.Is(err, conversation.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
			return
		}
		h.logger.Error().Err(err).Msg("delete conversation")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Conversation deleted successfully"})
}
