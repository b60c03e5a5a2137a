// Package config provides 12-factor configuration management for the gallery server.
//
// Configuration is loaded from environment variables with sensible defaults.
// An optional YAML or TOML file (LoadFile) overrides the environment, and CLI
// flags override both; see cmd/server.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host, shutdown, connection cap, gzip)
//   - Gallery: Image base directory, static directory, legacy route, ignore patterns
//   - Registry: Prewarm and periodic sweep of the resource registry
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting configuration
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	cfg.Gallery.BaseDir = "~/Pictures"
//	if err := cfg.Gallery.Resolve(); err != nil {
//		log.Fatal(err)
//	}
//
// Environment Variables:
//   - PORT, HOST, SHUTDOWN_TIMEOUT, MAX_CONNECTIONS, COMPRESSION
//   - GALLERY_BASE_DIR, GALLERY_STATIC_DIR, GALLERY_LEGACY_PATHS, GALLERY_IGNORE
//   - REGISTRY_PREWARM, REGISTRY_SWEEP_INTERVAL
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
package config
