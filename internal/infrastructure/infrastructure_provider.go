package infrastructure

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"duochat-server/internal/config"
	"duochat-server/internal/domain/chat"
	"duochat-server/internal/domain/tokenusage"
	"duochat-server/internal/infrastructure/auth"
	"duochat-server/internal/infrastructure/database"
	"duochat-server/internal/infrastructure/database/repository"
	"duochat-server/internal/infrastructure/inference"
	"duochat-server/internal/infrastructure/logger"
	"duochat-server/internal/infrastructure/metrics"
	"duochat-server/internal/infrastructure/oauth"
	"duochat-server/internal/infrastructure/persistence"
	"duochat-server/internal/utils/httpclients"
)

// ProvideConfig loads and provides the application configuration
func ProvideConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if _, err := logger.New(cfg.LogLevel, cfg.LogFormat); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ProvideDatabase provides a database connection
func ProvideDatabase(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := database.NewDB(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	// Run migrations if AUTO_MIGRATE is enabled
	if cfg.AutoMigrate {
		log.Info().Msg("Running database migrations...")
		if err := database.AutoMigrate(db); err != nil {
			log.Error().Err(err).Msg("Failed to run database migrations")
			return nil, err
		}
		log.Info().Msg("Database migrations completed successfully")
	}

	return db, nil
}

// ProvideTokenIssuer provides the JWT issuer and verifier.
func ProvideTokenIssuer(cfg *config.Config) *auth.TokenIssuer {
	return auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenExpiry)
}

// ProvideGoogleClient provides the Google OAuth client.
func ProvideGoogleClient(cfg *config.Config) *oauth.GoogleClient {
	return oauth.NewGoogleClient(
		httpclients.NewClient("google-oauth"),
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.RedirectURI,
	)
}

// ProvideGeminiClient provides the hosted model adapter.
func ProvideGeminiClient(cfg *config.Config) *inference.GeminiClient {
	return inference.NewGeminiClient(
		httpclients.NewClient("gemini"),
		cfg.GeminiBaseURL,
		cfg.GeminiAPIKey,
		cfg.HostedModel,
	)
}

// ProvideOllamaClient provides the local model adapter.
func ProvideOllamaClient(cfg *config.Config) *inference.OllamaClient {
	return inference.NewOllamaClient(
		httpclients.NewClient("ollama"),
		cfg.OllamaURL,
		cfg.LocalModel,
	)
}

// meteredRecorder persists usage rows and keeps the token counters in step.
type meteredRecorder struct {
	usage *tokenusage.Service
}

func (r *meteredRecorder) Record(ctx context.Context, userID, model string, promptTokens, completionTokens int) error {
	metrics.TokensPromptTotal.WithLabelValues(model).Add(float64(promptTokens))
	metrics.TokensCompletionTotal.WithLabelValues(model).Add(float64(completionTokens))
	return r.usage.Record(ctx, userID, model, promptTokens, completionTokens)
}

// ProvideRecorder provides the usage recorder the dispatcher writes through.
func ProvideRecorder(usage *tokenusage.Service) chat.Recorder {
	return &meteredRecorder{usage: usage}
}

// ProvideClassifier provides the prompt complexity classifier, backed by
// the hosted model.
func ProvideClassifier(gemini *inference.GeminiClient, cfg *config.Config, log zerolog.Logger) *chat.Classifier {
	return chat.NewClassifier(gemini, cfg.ClassifierTimeout, log)
}

// ProvideDispatcher provides the dual-model dispatcher.
func ProvideDispatcher(
	gemini *inference.GeminiClient,
	ollama *inference.OllamaClient,
	classifier *chat.Classifier,
	recorder chat.Recorder,
	cfg *config.Config,
	log zerolog.Logger,
) *chat.Dispatcher {
	return chat.NewDispatcher(gemini, ollama, classifier, recorder, cfg.AdapterTimeout, log)
}

// Infrastructure holds all infrastructure dependencies
type Infrastructure struct {
	DB          *gorm.DB
	TokenIssuer *auth.TokenIssuer
	Logger      zerolog.Logger
}

// NewInfrastructure creates a new infrastructure instance
func NewInfrastructure(
	db *gorm.DB,
	tokenIssuer *auth.TokenIssuer,
	logger zerolog.Logger,
) *Infrastructure {
	return &Infrastructure{
		DB:          db,
		TokenIssuer: tokenIssuer,
		Logger:      logger,
	}
}

// InfrastructureProvider provides all infrastructure dependencies
var InfrastructureProvider = wire.NewSet(
	// Config
	ProvideConfig,

	// Database
	ProvideDatabase,

	// Repositories
	repository.RepositoryProvider,
	persistence.NewTokenUsageRepository,

	// Auth
	ProvideTokenIssuer,
	ProvideGoogleClient,

	// Model backends
	ProvideGeminiClient,
	ProvideOllamaClient,
	ProvideRecorder,
	ProvideClassifier,
	ProvideDispatcher,

	// Logger
	logger.GetLogger,

	// Infrastructure struct
	NewInfrastructure,
)
