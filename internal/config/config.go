package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Global singleton so wire providers and init paths share one instance.
var globalConfig *Config

// Config holds all environment backed configuration for duochat-server.
type Config struct {
	// HTTP Server
	HTTPPort    int    `env:"HTTP_PORT" envDefault:"8080"`
	MetricsPort int    `env:"METRICS_PORT" envDefault:"9091"`
	DatabaseURL string `env:"DATABASE_URL,notEmpty"`

	// Auth
	JWTSecret   string        `env:"SECRET_KEY,notEmpty"`
	TokenExpiry time.Duration `env:"TOKEN_EXPIRY" envDefault:"24h"`
	BcryptCost  int           `env:"BCRYPT_COST" envDefault:"10"`

	// Google OAuth
	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	RedirectURI        string `env:"REDIRECT_URI"`
	ClientRedirectURL  string `env:"REDIRECT_CLIENT_GOOGLE"`

	// Hosted model backend (Gemini-style REST API)
	GeminiAPIKey  string `env:"GOOGLE_API_KEY,notEmpty"`
	GeminiBaseURL string `env:"GEMINI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com"`
	HostedModel   string `env:"HOSTED_MODEL" envDefault:"gemini-2.0-flash"`

	// Local model backend (Ollama-style REST API)
	OllamaURL  string `env:"OLLAMA_API_URL" envDefault:"http://localhost:11434/api/chat"`
	LocalModel string `env:"LOCAL_MODEL" envDefault:"llama3.2:latest"`

	// Dispatch
	AdapterTimeout    time.Duration `env:"ADAPTER_TIMEOUT" envDefault:"120s"`
	ClassifierTimeout time.Duration `env:"CLASSIFIER_TIMEOUT" envDefault:"15s"`
	SessionTTL        time.Duration `env:"SESSION_TTL" envDefault:"1h"`

	// Observability / Logging
	ServiceName string `env:"SERVICE_NAME" envDefault:"duochat-server"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"console"`

	// Features
	AutoMigrate bool `env:"AUTO_MIGRATE" envDefault:"true"`

	// Internal
	EnvReloadedAt time.Time
}

// Load parses environment variables into Config and performs minimal validation.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if _, err := url.ParseRequestURI(cfg.GeminiBaseURL); err != nil {
		return nil, fmt.Errorf("invalid GEMINI_BASE_URL: %w", err)
	}
	if _, err := url.ParseRequestURI(cfg.OllamaURL); err != nil {
		return nil, fmt.Errorf("invalid OLLAMA_API_URL: %w", err)
	}

	if cfg.GoogleClientID != "" && cfg.RedirectURI == "" {
		return nil, errors.New("REDIRECT_URI must be set when GOOGLE_CLIENT_ID is configured")
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	cfg.EnvReloadedAt = time.Now()

	globalConfig = cfg

	return cfg, nil
}

// GetGlobal returns the global config instance.
func GetGlobal() *Config {
	return globalConfig
}

// GetEnvReloadedAt returns when the environment was last parsed.
func GetEnvReloadedAt() time.Time {
	if globalConfig == nil {
		return time.Time{}
	}
	return globalConfig.EnvReloadedAt
}

var Version = "dev"

func IsDev() bool {
	return strings.HasPrefix(Version, "dev")
}
