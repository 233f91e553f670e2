// Package middleware provides HTTP middleware for the TermQuest API.
//
// Middleware stack includes:
//   - CORS: Cross-origin resource sharing with configurable origins
//   - RateLimit: Per-IP token bucket rate limiting
//   - Recovery: Panic recovery with JSON error responses and zap logging
//   - BodyLimit: Request body size cap
//   - Logger: Request logging through zap
//
// CORS admits the origins listed in CORS_ORIGINS ("*" by default) for the
// session routes and exposes the X-Trace-ID and X-Span-ID response headers.
// Credentials are only allowed with an explicit origin list.
//
// Rate Limiting:
//   - Per-IP tracking with automatic cleanup
//   - Token bucket algorithm
//   - Configurable RPS and burst capacity
//   - Global rate limiting option
//
// Example Usage:
//
//	router.Use(middleware.CORS(middleware.CORSConfig{Origins: cfg.CORS.Origins}))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
package middleware
