// Package logging provides structured logging using uber/zap.
//
// This package offers two modes:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// Subsystems log through named children (Component) so entries carry
// "registry", "gallery" or "http" in the logger field.
//
// Example Usage:
//
//	logger, err := logging.New(logging.DefaultConfig())
//	logger.Info("Server starting", zap.String("port", "8000"))
//	reg := registry.New(base).WithLogger(logger.Component("registry"))
package logging
