// Package main is the entry point for the image gallery server.
//
// The server exposes one base directory of images over HTTP. Clients see
// opaque identifiers instead of filesystem paths; the web UI under the
// static directory lists subdirectories, shows their images, and can delete
// images or rename subdirectories.
//
// Configuration:
//   - Environment variables (12-factor), see internal/infrastructure/config
//   - Optional YAML/TOML file via --config (overrides env vars)
//   - CLI flags (override both)
//   - Positional image directory (overrides GALLERY_BASE_DIR)
//
// Usage:
//
//	# Serve ~/Pictures on the default port
//	./server ~/Pictures
//
//	# Local only, with colored debug logs
//	./server --host 127.0.0.1 --port 9000 --dev ~/Pictures
//
// Exit status is non-zero when the image directory does not exist.
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
