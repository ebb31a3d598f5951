package domain

import (
	"github.com/google/wire"

	"duochat-server/internal/config"
	"duochat-server/internal/domain/chat"
	"duochat-server/internal/domain/conversation"
	"duochat-server/internal/domain/tokenusage"
	"duochat-server/internal/domain/user"
)

// ServiceProvider provides all domain services
var ServiceProvider = wire.NewSet(
	// Conversation domain
	conversation.NewService,

	// Usage ledger
	tokenusage.NewService,

	// User domain
	ProvideUserService,

	// Chat domain
	ProvideSessionStore,
	chat.NewService,
)

func ProvideUserService(repo user.Repository, cfg *config.Config) *user.Service {
	return user.NewService(repo, cfg.BcryptCost)
}

func ProvideSessionStore(cfg *config.Config) *chat.SessionStore {
	return chat.NewSessionStore(cfg.SessionTTL)
}
