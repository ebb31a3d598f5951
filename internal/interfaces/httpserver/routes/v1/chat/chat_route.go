package chat

import (
	"github.com/gin-gonic/gin"

	"duochat-server/internal/interfaces/httpserver/handlers/chathandler"
)

// ChatRoute handles chat turn routes
type ChatRoute struct {
	handler *chathandler.ChatHandler
}

// NewChatRoute creates a new ChatRoute
func NewChatRoute(handler *chathandler.ChatHandler) *ChatRoute {
	return &ChatRoute{handler: handler}
}

// RegisterRouter registers chat routes on the given router
func (r *ChatRoute) RegisterRouter(router gin.IRouter) {
	router.POST("/chat", r.handler.Chat)
}
