// Package middleware provides HTTP middleware for the gallery API.
//
// Middleware stack includes:
//   - CORS: Cross-origin resource sharing, exposing the cache validators
//   - RateLimit: Per-IP token bucket rate limiting
//
// Rate Limiting:
//   - Token bucket per client IP (golang.org/x/time/rate)
//   - Limiters idle for IdleTTL are dropped on the next request after a sweep is due
//   - Rejected requests get 429 with {"error": "rate limit exceeded"}
//
// Example Usage:
//
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
package middleware
