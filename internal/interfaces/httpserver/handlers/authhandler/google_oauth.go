package authhandler

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"duochat-server/internal/config"
	"duochat-server/internal/domain/user"
	"duochat-server/internal/infrastructure/auth"
	"duochat-server/internal/infrastructure/metrics"
	"duochat-server/internal/infrastructure/oauth"
)

// GoogleOAuthHandler handles the Google login redirect flow.
type GoogleOAuthHandler struct {
	google      *oauth.GoogleClient
	userService *user.Service
	tokenIssuer *auth.TokenIssuer
	clientURL   string
	logger      zerolog.Logger
}

// NewGoogleOAuthHandler creates a new GoogleOAuthHandler
func NewGoogleOAuthHandler(
	google *oauth.GoogleClient,
	userService *user.Service,
	tokenIssuer *auth.TokenIssuer,
	cfg *config.Config,
	logger zerolog.Logger,
) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		google:      google,
		userService: userService,
		tokenIssuer: tokenIssuer,
		clientURL:   cfg.ClientRedirectURL,
		logger:      logger,
	}
}

// Login redirects the browser to the Google consent page.
func (h *GoogleOAuthHandler) Login(c *gin.Context) {
	c.Redirect(http.StatusTemporaryRedirect, h.google.AuthCodeURL())
}

// Callback exchanges the authorization code, upserts the federated user
// and bounces back to the frontend with a bearer token.
func (h *GoogleOAuthHandler) Callback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing code"})
		return
	}

	ctx := c.Request.Context()

	accessToken, err := h.google.Exchange(ctx, code)
	if err != nil {
		h.logger.Warn().Err(err).Msg("google code exchange failed")
		metrics.AuthRequestsTotal.WithLabelValues("google", "denied").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid token"})
		return
	}

	identity, err := h.google.UserInfo(ctx, accessToken)
	if err != nil {
		h.logger.Warn().Err(err).Msg("google userinfo failed")
		metrics.AuthRequestsTotal.WithLabelValues("google", "denied").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid token"})
		return
	}

	u, err := h.userService.EnsureFederated(ctx, identity)
	if err != nil {
		h.logger.Error().Err(err).Msg("upsert federated user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	token, err := h.tokenIssuer.Issue(u.PublicID)
	if err != nil {
		h.logger.Error().Err(err).Msg("issue token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	metrics.AuthRequestsTotal.WithLabelValues("google", "ok").Inc()
	redirect := fmt.Sprintf("%s/oauth2/redirect?token=%s&userId=%s",
		h.clientURL, url.QueryEscape(token), url.QueryEscape(u.PublicID))
	c.Redirect(http.StatusTemporaryRedirect, redirect)
}
