package model

import (
	"github.com/gin-gonic/gin"

	"duochat-server/internal/interfaces/httpserver/handlers/modelhandler"
)

// ModelRoute handles model listing routes
type ModelRoute struct {
	handler *modelhandler.ModelHandler
}

// NewModelRoute creates a new ModelRoute
func NewModelRoute(handler *modelhandler.ModelHandler) *ModelRoute {
	return &ModelRoute{handler: handler}
}

// RegisterRouter registers model routes on the given router
func (r *ModelRoute) RegisterRouter(router gin.IRouter) {
	router.GET("/models", r.handler.List)
}
