package conversation

import (
	"github.com/gin-gonic/gin"

	"duochat-server/internal/interfaces/httpserver/handlers/conversationhandler"
)

// ConversationRoute handles conversation-related routes
type ConversationRoute struct {
	handler *conversationhandler.ConversationHandler
}

// NewConversationRoute creates a new ConversationRoute
func NewConversationRoute(handler *conversationhandler.ConversationHandler) *ConversationRoute {
	return &ConversationRoute{handler: handler}
}

// RegisterRouter registers conversation routes on the given router
func (r *ConversationRoute) RegisterRouter(router gin.IRouter) {
	router.GET("/conversations", r.handler.List)
	router.DELETE("/conversations/:conv_id", r.handler.Delete)
	router.GET("/history/:conv_id", r.handler.History)
}
