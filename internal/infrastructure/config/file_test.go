package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "yaml",
			file: "gallery.yaml",
			content: `server:
  port: 9000
  max_connections: 64
gallery:
  base_dir: /srv/pictures
  ignore: [".*", "@eaDir"]
registry:
  sweep_interval: 5m
  prewarm: true
logging:
  level: debug
`,
		},
		{
			name: "toml",
			file: "gallery.toml",
			content: `[server]
port = 9000
max_connections = 64

[gallery]
base_dir = "/srv/pictures"
ignore = [".*", "@eaDir"]

[registry]
sweep_interval = "5m"
prewarm = true

[logging]
level = "debug"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			require.NoError(t, cfg.LoadFile(writeFile(t, tt.file, tt.content)))

			assert.Equal(t, "9000", cfg.Server.Port)
			assert.Equal(t, 64, cfg.Server.MaxConnections)
			assert.Equal(t, "/srv/pictures", cfg.Gallery.BaseDir)
			assert.Equal(t, []string{".*", "@eaDir"}, cfg.Gallery.Ignore)
			assert.Equal(t, 5*time.Minute, cfg.Registry.SweepInterval)
			assert.True(t, cfg.Registry.Prewarm)
			assert.Equal(t, "debug", cfg.Logging.Level)

			// Keys absent from the file keep their values
			assert.Equal(t, "0.0.0.0", cfg.Server.Host)
			assert.Equal(t, "static", cfg.Gallery.StaticDir)
			assert.True(t, cfg.Server.Compression)
			assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
		})
	}
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"missing", filepath.Join(t.TempDir(), "none.yaml")},
		{"unsupported extension", writeFile(t, "gallery.ini", "port=1")},
		{"bad duration", writeFile(t, "gallery.yaml", "registry:\n  sweep_interval: soon\n")},
		{"malformed toml", writeFile(t, "gallery.toml", "[server\nport = ")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			assert.Error(t, cfg.LoadFile(tt.path))
		})
	}
}
