package routes

import (
	"duochat-server/internal/interfaces/httpserver/handlers/authhandler"
	"duochat-server/internal/interfaces/httpserver/handlers/chathandler"
	"duochat-server/internal/interfaces/httpserver/handlers/conversationhandler"
	"duochat-server/internal/interfaces/httpserver/handlers/modelhandler"
	"duochat-server/internal/interfaces/httpserver/handlers/usagehandler"
	"duochat-server/internal/interfaces/httpserver/routes/auth"
	v1 "duochat-server/internal/interfaces/httpserver/routes/v1"
	"duochat-server/internal/interfaces/httpserver/routes/v1/chat"
	"duochat-server/internal/interfaces/httpserver/routes/v1/conversation"
	"duochat-server/internal/interfaces/httpserver/routes/v1/model"
	"duochat-server/internal/interfaces/httpserver/routes/v1/usage"

	"github.com/google/wire"
)

var RouteProvider = wire.NewSet(
	// Handlers
	authhandler.NewAuthHandler,
	authhandler.NewGoogleOAuthHandler,
	chathandler.NewChatHandler,
	conversationhandler.NewConversationHandler,
	modelhandler.NewModelHandler,
	usagehandler.NewUsageHandler,

	// Routes
	auth.NewAuthRoute,
	v1.NewV1Route,
	chat.NewChatRoute,
	conversation.NewConversationRoute,
	model.NewModelRoute,
	usage.NewUsageRoute,
)
