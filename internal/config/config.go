// Package config holds process-wide settings read once at startup.
package config

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"dashboard/internal/util"
)

const (
	DefaultAddr        = ":8000"
	DefaultDatabaseURL = "data/dashboard.db"
	DefaultAIModel     = "claude-haiku-4-5-20251001"
)

// Config is built in main and passed by reference to the components that need it.
type Config struct {
	Environment string
	Addr        string
	DatabaseURL string
	StaticDir   string
	CORSOrigins []string

	JWTSecret string
	TokenTTL  time.Duration

	AIAPIKey    string
	AIModel     string
	AITimeout   time.Duration
	AIMaxTokens int
}

// Load reads the configuration from the environment.
func Load() *Config {
	return &Config{
		Environment: util.EnvOrDefault("ENVIRONMENT", "production"),
		Addr:        util.EnvOrDefault("DASHBOARD_ADDR", DefaultAddr),
		DatabaseURL: util.EnvOrDefault("DATABASE_URL", DefaultDatabaseURL),
		StaticDir:   util.EnvOrDefault("DASHBOARD_STATIC_DIR", ""),
		CORSOrigins: util.SplitList(util.EnvOrDefault("CORS_ORIGINS", "*")),

		JWTSecret: util.EnvOrDefault("JWT_SECRET", ""),
		TokenTTL:  util.DurationOrDefault("TOKEN_TTL", 24*time.Hour),

		AIAPIKey:    util.FirstEnv("", "ANTHROPIC_API_KEY", "API_KEY"),
		AIModel:     util.EnvOrDefault("AI_MODEL", DefaultAIModel),
		AITimeout:   util.DurationOrDefault("AI_TIMEOUT", 30*time.Second),
		AIMaxTokens: util.IntOrDefault("AI_MAX_TOKENS", 1024),
	}
}

// Validate reports missing or nonsensical settings.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Addr, validation.Required),
		validation.Field(&c.DatabaseURL, validation.Required),
		validation.Field(&c.JWTSecret, validation.Required, validation.Length(16, 0)),
		validation.Field(&c.TokenTTL, validation.Required, validation.Min(time.Minute)),
		validation.Field(&c.AITimeout, validation.Required, validation.Min(time.Second)),
		validation.Field(&c.AIMaxTokens, validation.Required, validation.Min(1)),
	)
}

// AIEnabled reports whether an oracle key was supplied.
func (c *Config) AIEnabled() bool {
	return c.AIAPIKey != ""
}

// Debug reports whether verbose logging should be enabled.
func (c *Config) Debug() bool {
	return c.Environment == "dev"
}
