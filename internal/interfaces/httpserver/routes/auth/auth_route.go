package auth

import (
	"github.com/gin-gonic/gin"

	"duochat-server/internal/interfaces/httpserver/handlers/authhandler"
)

// AuthRoute handles authentication routes
type AuthRoute struct {
	authHandler   *authhandler.AuthHandler
	googleHandler *authhandler.GoogleOAuthHandler
}

// NewAuthRoute creates a new auth route
func NewAuthRoute(
	authHandler *authhandler.AuthHandler,
	googleHandler *authhandler.GoogleOAuthHandler,
) *AuthRoute {
	return &AuthRoute{
		authHandler:   authHandler,
		googleHandler: googleHandler,
	}
}

// RegisterRouter registers auth routes
func (a *AuthRoute) RegisterRouter(router gin.IRouter, protectedRouter gin.IRouter) {
	// Public routes
	router.POST("/register", a.authHandler.Register)
	router.POST("/login", a.authHandler.Login)
	router.GET("/auth/google", a.googleHandler.Login)
	router.GET("/auth/google/callback", a.googleHandler.Callback)

	// Protected routes (require authentication)
	protectedRouter.GET("/info", a.authHandler.Info)
}
