package httpserver

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"duochat-server/internal/config"
	"duochat-server/internal/infrastructure"
	middleware "duochat-server/internal/interfaces/httpserver/middlewares"
	"duochat-server/internal/interfaces/httpserver/routes/auth"
	v1 "duochat-server/internal/interfaces/httpserver/routes/v1"
	"duochat-server/internal/interfaces/httpserver/routes/v1/conversation"
	"duochat-server/internal/interfaces/httpserver/routes/v1/model"
	"duochat-server/internal/interfaces/httpserver/routes/v1/usage"
)

type HTTPServer struct {
	engine            *gin.Engine
	infra             *infrastructure.Infrastructure
	v1Route           *v1.V1Route
	authRoute         *auth.AuthRoute
	conversationRoute *conversation.ConversationRoute
	usageRoute        *usage.UsageRoute
	modelRoute        *model.ModelRoute
	config            *config.Config
}

func NewHttpServer(
	v1Route *v1.V1Route,
	authRoute *auth.AuthRoute,
	conversationRoute *conversation.ConversationRoute,
	usageRoute *usage.UsageRoute,
	modelRoute *model.ModelRoute,
	infra *infrastructure.Infrastructure,
	cfg *config.Config,
) *HTTPServer {
	gin.SetMode(gin.ReleaseMode)
	server := HTTPServer{
		gin.New(),
		infra,
		v1Route,
		authRoute,
		conversationRoute,
		usageRoute,
		modelRoute,
		cfg,
	}
	server.engine.Use(middleware.RequestID())
	server.engine.Use(middleware.LoggingMiddleware(infra.Logger))
	server.engine.Use(middleware.MetricsMiddleware())
	server.engine.Use(middleware.CORSMiddleware())

	// Root banner, kept for frontend compatibility
	server.engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "API is running..."})
	})

	server.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	server.engine.GET("/readyz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	return &server
}

func (httpServer *HTTPServer) Run() error {
	// Public routes (no auth required)
	root := httpServer.engine.Group("/")

	// Protected routes (auth middleware applied)
	protected := httpServer.engine.Group("/")
	protected.Use(
		middleware.AuthMiddleware(httpServer.infra.TokenIssuer, httpServer.infra.Logger),
	)

	httpServer.authRoute.RegisterRouter(root, protected)
	httpServer.modelRoute.RegisterRouter(root)

	httpServer.conversationRoute.RegisterRouter(protected)
	httpServer.usageRoute.RegisterRouter(protected)
	httpServer.v1Route.RegisterRouter(protected)

	if err := httpServer.engine.Run(fmt.Sprintf(":%d", httpServer.config.HTTPPort)); err != nil {
		return err
	}
	return nil
}
