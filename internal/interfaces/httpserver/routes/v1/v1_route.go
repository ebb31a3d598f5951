package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"duochat-server/internal/config"
	"duochat-server/internal/interfaces/httpserver/routes/v1/chat"
)

// V1Route groups the versioned API surface.
type V1Route struct {
	chat *chat.ChatRoute
}

// NewV1Route creates a new V1Route
func NewV1Route(chat *chat.ChatRoute) *V1Route {
	return &V1Route{chat: chat}
}

// RegisterRouter registers v1 routes on the given router
func (v1Route *V1Route) RegisterRouter(router gin.IRouter) {
	v1Router := router.Group("/v1")
	v1Router.GET("/version", GetVersion)

	v1Route.chat.RegisterRouter(v1Router)
}

// GetVersion returns the current build version and environment reload time.
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version":         config.Version,
		"env_reloaded_at": config.GetEnvReloadedAt().Format("2006-01-02T15:04:05Z07:00"),
	})
}
