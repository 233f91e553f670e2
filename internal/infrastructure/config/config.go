package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server      ServerConfig
	Logging     LogConfig
	RateLimit   RateLimitConfig
	CORS        CORSConfig
	Shell       ShellConfig
	Persistence PersistenceConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// CORSConfig holds the browser origins allowed to call the API.
// Credentials only apply to an explicit origin list.
type CORSConfig struct {
	Origins     []string      `envconfig:"CORS_ORIGINS" default:"*"`
	Credentials bool          `envconfig:"CORS_CREDENTIALS" default:"false"`
	MaxAge      time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

// ShellConfig holds settings for new game sessions.
// An empty SeedPath selects the embedded default machine.
type ShellConfig struct {
	SeedPath     string        `envconfig:"SHELL_SEED_PATH"`
	DefaultUser  string        `envconfig:"SHELL_DEFAULT_USER" default:"user"`
	HistoryLimit int           `envconfig:"SHELL_HISTORY_LIMIT" default:"500"`
	MaxPattern   int           `envconfig:"SHELL_MAX_PATTERN" default:"1024"`
	SessionTTL   time.Duration `envconfig:"SHELL_SESSION_TTL" default:"2h"`
}

// PersistenceConfig holds save storage configuration.
// An empty Dir keeps saves in an in-memory store.
type PersistenceConfig struct {
	Dir      string `envconfig:"PERSIST_DIR"`
	Key      string `envconfig:"PERSIST_KEY" default:"linux-game-save"`
	Compress bool   `envconfig:"PERSIST_COMPRESS" default:"true"`

	// The save store is bypassed for BreakerTimeout after BreakerFailures
	// consecutive errors.
	BreakerFailures int           `envconfig:"PERSIST_BREAKER_FAILURES" default:"5"`
	BreakerTimeout  time.Duration `envconfig:"PERSIST_BREAKER_TIMEOUT" default:"30s"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	for _, origin := range cfg.CORS.Origins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return nil, fmt.Errorf("failed to load config: bad CORS origin %q", origin)
		}
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
		CORS: CORSConfig{
			Origins: []string{"*"},
			MaxAge:  12 * time.Hour,
		},
		Shell: ShellConfig{
			DefaultUser:  "user",
			HistoryLimit: 500,
			MaxPattern:   1024,
			SessionTTL:   2 * time.Hour,
		},
		Persistence: PersistenceConfig{
			Key:             "linux-game-save",
			Compress:        true,
			BreakerFailures: 5,
			BreakerTimeout:  30 * time.Second,
		},
	}
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}
