package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/GriffinCanCode/imageview/internal/shared/paths"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Gallery   GalleryConfig
	Registry  RegistryConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8000"`
	Host            string        `envconfig:"HOST" default:"0.0.0.0"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	MaxConnections  int           `envconfig:"MAX_CONNECTIONS" default:"0"`
	Compression     bool          `envconfig:"COMPRESSION" default:"true"`
}

// GalleryConfig holds the served directories.
type GalleryConfig struct {
	BaseDir     string `envconfig:"GALLERY_BASE_DIR"`
	StaticDir   string `envconfig:"GALLERY_STATIC_DIR" default:"static"`
	LegacyPaths bool   `envconfig:"GALLERY_LEGACY_PATHS" default:"false"`
	// Ignore lists name patterns hidden from listings (comma separated).
	Ignore []string `envconfig:"GALLERY_IGNORE"`
}

// RegistryConfig holds resource registry configuration.
type RegistryConfig struct {
	SweepInterval time.Duration `envconfig:"REGISTRY_SWEEP_INTERVAL" default:"0s"`
	Prewarm       bool          `envconfig:"REGISTRY_PREWARM" default:"false"`
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
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
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
			Port:            "8000",
			Host:            "0.0.0.0",
			ShutdownTimeout: 10 * time.Second,
			Compression:     true,
		},
		Gallery: GalleryConfig{
			StaticDir: "static",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           false,
		},
	}
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// Resolve makes BaseDir and StaticDir absolute and symlink-free and checks
// that both are existing directories.
func (g *GalleryConfig) Resolve() error {
	if g.BaseDir == "" {
		return fmt.Errorf("image directory is required")
	}

	base, err := paths.ResolveBase(g.BaseDir)
	if err != nil {
		return err
	}
	static, err := paths.ResolveBase(g.StaticDir)
	if err != nil {
		return fmt.Errorf("static %w", err)
	}

	g.BaseDir = base
	g.StaticDir = static
	return nil
}
