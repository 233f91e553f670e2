// Package config provides 12-factor configuration for the TermQuest backend.
//
// Configuration is loaded from environment variables with sensible defaults.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host)
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting configuration
//   - Shell: Seed machine, default user, history and pattern limits
//   - Persistence: Save store location, key and compression
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Server running on %s\n", cfg.Server.Addr())
//
// Environment Variables:
//   - PORT, HOST
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
//   - SHELL_SEED_PATH, SHELL_DEFAULT_USER, SHELL_HISTORY_LIMIT, SHELL_MAX_PATTERN,
//     SHELL_SESSION_TTL
//   - PERSIST_DIR, PERSIST_KEY, PERSIST_COMPRESS
package config
