package repository

import (
	"duochat-server/internal/infrastructure/database/repository/conversationrepo"
	"duochat-server/internal/infrastructure/database/repository/userrepo"

	"github.com/google/wire"
)

var RepositoryProvider = wire.NewSet(
	conversationrepo.NewConversationRepository,
	userrepo.NewUserRepository,
)
