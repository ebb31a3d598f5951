package chathandler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"duochat-server/internal/domain/chat"
	"duochat-server/internal/infrastructure/metrics"
	middleware "duochat-server/internal/interfaces/httpserver/middlewares"
	chatreq "duochat-server/internal/interfaces/httpserver/requests/chat"
	chatres "duochat-server/internal/interfaces/httpserver/responses/chat"
)

// ChatHandler handles chat turn submissions.
type ChatHandler struct {
	chatService *chat.Service
	logger      zerolog.Logger
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(chatService *chat.Service, logger zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      logger,
	}
}

// Chat runs one conversational turn through the dual-model pipeline.
func (h *ChatHandler) Chat(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req chatreq.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.chatService.SubmitTurn(c.Request.Context(), chat.TurnRequest{
		UserID:         userID,
		ConversationID: req.ConversationID,
		Model:          req.Model,
		Prompt:         req.Prompt,
	})
	if err != nil {
		if errors.Is(err, chat.ErrUnknownModel) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown model"})
			return
		}
		h.logger.Error().Err(err).Msg("submit chat turn")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	if req.ConversationID == "" {
		metrics.ConversationsCreatedTotal.Inc()
	}

	messageType := "single"
	outcome := "simple"
	if resp.Complex {
		messageType = "multiple"
		outcome = "complex"
	}
	metrics.ClassifierDecisionsTotal.WithLabelValues(outcome).Inc()

	responses := make([]chatres.ModelResponse, 0, len(resp.Fragments))
	for _, fragment := range resp.Fragments {
		responses = append(responses, chatres.ModelResponse{
			Model: fragment.Model,
			Text:  fragment.Text,
		})
	}

	c.JSON(http.StatusOK, chatres.ChatResponse{
		Responses: responses,
		Metadata: chatres.Metadata{
			ConversationID: resp.ConversationID,
			MessageType:    messageType,
		},
	})
}
