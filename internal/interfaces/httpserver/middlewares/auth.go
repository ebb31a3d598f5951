package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"duochat-server/internal/infrastructure/auth"
)

const userIDContextKey = "user_id"

// AuthMiddleware validates Bearer JWT tokens and exposes the authenticated
// user id to downstream handlers.
func AuthMiddleware(issuer *auth.TokenIssuer, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			logger.Warn().
				Str("path", c.FullPath()).
				Str("method", c.Request.Method).
				Msg("unauthenticated request")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		userID, err := issuer.Verify(token)
		if err != nil {
			logger.Warn().Err(err).Msg("jwt validation failed")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(userIDContextKey, userID)
		c.Next()
	}
}

// GetUserIDFromContext returns the authenticated user's public id, or "" when
// the request is unauthenticated.
func GetUserIDFromContext(c *gin.Context) string {
	return c.GetString(userIDContextKey)
}
