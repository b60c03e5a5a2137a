package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// duration decodes "30s"-style strings from YAML and TOML
type duration time.Duration

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = duration(parsed)
	return nil
}

// fileConfig mirrors Config with optional fields so that only keys present
// in the file override the loaded values.
type fileConfig struct {
	Server struct {
		Host            *string   `yaml:"host" toml:"host"`
		Port            *int      `yaml:"port" toml:"port"`
		ShutdownTimeout *duration `yaml:"shutdown_timeout" toml:"shutdown_timeout"`
		MaxConnections  *int      `yaml:"max_connections" toml:"max_connections"`
		Compression     *bool     `yaml:"compression" toml:"compression"`
	} `yaml:"server" toml:"server"`

	Gallery struct {
		BaseDir     *string  `yaml:"base_dir" toml:"base_dir"`
		StaticDir   *string  `yaml:"static_dir" toml:"static_dir"`
		LegacyPaths *bool    `yaml:"legacy_paths" toml:"legacy_paths"`
		Ignore      []string `yaml:"ignore" toml:"ignore"`
	} `yaml:"gallery" toml:"gallery"`

	Registry struct {
		SweepInterval *duration `yaml:"sweep_interval" toml:"sweep_interval"`
		Prewarm       *bool     `yaml:"prewarm" toml:"prewarm"`
	} `yaml:"registry" toml:"registry"`

	Logging struct {
		Level       *string `yaml:"level" toml:"level"`
		Development *bool   `yaml:"development" toml:"development"`
	} `yaml:"logging" toml:"logging"`

	RateLimit struct {
		RequestsPerSecond *int  `yaml:"requests_per_second" toml:"requests_per_second"`
		Burst             *int  `yaml:"burst" toml:"burst"`
		Enabled           *bool `yaml:"enabled" toml:"enabled"`
	} `yaml:"rate_limit" toml:"rate_limit"`
}

// LoadFile overlays a YAML (.yaml, .yml) or TOML (.toml) file onto cfg.
// Keys present in the file win over environment values.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	case ".toml":
		err = toml.Unmarshal(data, &fc)
	default:
		return fmt.Errorf("unsupported config file extension %q", ext)
	}
	if err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	fc.apply(c)
	return nil
}

func (fc *fileConfig) apply(c *Config) {
	setString(&c.Server.Host, fc.Server.Host)
	if fc.Server.Port != nil {
		c.Server.Port = strconv.Itoa(*fc.Server.Port)
	}
	setDuration(&c.Server.ShutdownTimeout, fc.Server.ShutdownTimeout)
	setInt(&c.Server.MaxConnections, fc.Server.MaxConnections)
	setBool(&c.Server.Compression, fc.Server.Compression)

	setString(&c.Gallery.BaseDir, fc.Gallery.BaseDir)
	setString(&c.Gallery.StaticDir, fc.Gallery.StaticDir)
	setBool(&c.Gallery.LegacyPaths, fc.Gallery.LegacyPaths)
	if fc.Gallery.Ignore != nil {
		c.Gallery.Ignore = fc.Gallery.Ignore
	}

	setDuration(&c.Registry.SweepInterval, fc.Registry.SweepInterval)
	setBool(&c.Registry.Prewarm, fc.Registry.Prewarm)

	setString(&c.Logging.Level, fc.Logging.Level)
	setBool(&c.Logging.Development, fc.Logging.Development)

	setInt(&c.RateLimit.RequestsPerSecond, fc.RateLimit.RequestsPerSecond)
	setInt(&c.RateLimit.Burst, fc.RateLimit.Burst)
	setBool(&c.RateLimit.Enabled, fc.RateLimit.Enabled)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *duration) {
	if v != nil {
		*dst = time.Duration(*v)
	}
}
