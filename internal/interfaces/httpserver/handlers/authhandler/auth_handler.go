package authhandler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"duochat-server/internal/domain/user"
	"duochat-server/internal/infrastructure/auth"
	"duochat-server/internal/infrastructure/metrics"
	middleware "duochat-server/internal/interfaces/httpserver/middlewares"
	authreq "duochat-server/internal/interfaces/httpserver/requests/auth"
	authres "duochat-server/internal/interfaces/httpserver/responses/auth"
)

// AuthHandler handles registration, login and user info requests.
type AuthHandler struct {
	userService *user.Service
	tokenIssuer *auth.TokenIssuer
	logger      zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userService *user.Service, tokenIssuer *auth.TokenIssuer, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		tokenIssuer: tokenIssuer,
		logger:      logger,
	}
}

// Register creates a password-backed account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req authreq.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, err := h.userService.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			metrics.AuthRequestsTotal.WithLabelValues("register", "conflict").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
			return
		}
		h.logger.Error().Err(err).Msg("register user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	metrics.AuthRequestsTotal.WithLabelValues("register", "ok").Inc()
	c.JSON(http.StatusOK, gin.H{"message": "User registered successfully"})
}

// Login authenticates by email and password and returns a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req authreq.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid credentials"})
		return
	}

	u, err := h.userService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			metrics.AuthRequestsTotal.WithLabelValues("password", "denied").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid credentials"})
			return
		}
		h.logger.Error().Err(err).Msg("authenticate user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	token, err := h.tokenIssuer.Issue(u.PublicID)
	if err != nil {
		h.logger.Error().Err(err).Msg("issue token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	metrics.AuthRequestsTotal.WithLabelValues("password", "ok").Inc()
	c.JSON(http.StatusOK, authres.TokenResponse{Token: token})
}

// Info returns the authenticated user's profile.
func (h *AuthHandler) Info(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	u, err := h.userService.GetByPublicID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		h.logger.Error().Err(err).Msg("load user info")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, authres.UserInfoResponse{
		ID:       u.PublicID,
		Email:    u.Email,
		Username: u.Username,
		Picture:  u.Picture,
	})
}
