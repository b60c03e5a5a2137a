package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/imageview/internal/infrastructure/config"
	"github.com/GriffinCanCode/imageview/internal/shared/types"
	"github.com/GriffinCanCode/imageview/internal/testutil"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = "0"
	cfg.Server.ShutdownTimeout = time.Second
	cfg.Gallery.BaseDir = testutil.NewImageTree(t)
	cfg.Gallery.StaticDir = testutil.NewStaticDir(t)
	cfg.Logging.Level = "error"
	return cfg
}

func TestNewServerInvalidDirectory(t *testing.T) {
	cfg := testConfig(t)
	cfg.Gallery.BaseDir = filepath.Join(t.TempDir(), "missing")

	_, err := NewServer(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "directory does not exist")
}

func TestNewServerInvalidLogLevel(t *testing.T) {
	cfg := testConfig(t)
	cfg.Logging.Level = "chatty"

	_, err := NewServer(cfg)
	assert.Error(t, err)
}

func TestServerRoutes(t *testing.T) {
	srv, err := NewServer(testConfig(t))
	require.NoError(t, err)
	defer srv.Close()

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{"health", http.MethodGet, "/health", http.StatusOK, `"status":"ok"`},
		{"subdirectories", http.MethodGet, "/api/subdirectories", http.StatusOK, `"name":"dir2"`},
		{"metrics", http.MethodGet, "/metrics", http.StatusOK, "gallery_uptime_seconds"},
		{"home", http.MethodGet, "/", http.StatusOK, "home"},
		{"legacy disabled", http.MethodGet, "/api/raw/dir1/cat1.png", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			srv.Handler().ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			assert.NotEmpty(t, w.Header().Get("X-Trace-ID"))
		})
	}
}

func TestServerLegacyPaths(t *testing.T) {
	cfg := testConfig(t)
	cfg.Gallery.LegacyPaths = true
	srv, err := NewServer(cfg)
	require.NoError(t, err)
	defer srv.Close()

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/raw/dir1/cat1.png", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestServerRateLimit(t *testing.T) {
	cfg := testConfig(t)
	cfg.RateLimit = config.RateLimitConfig{RequestsPerSecond: 1, Burst: 1, Enabled: true}
	srv, err := NewServer(cfg)
	require.NoError(t, err)
	defer srv.Close()

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = "10.1.1.1:5000"
		srv.Handler().ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestServerPrewarm(t *testing.T) {
	cfg := testConfig(t)
	cfg.Registry.Prewarm = true
	srv, err := NewServer(cfg)
	require.NoError(t, err)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	srv.Start(ctx)

	require.Eventually(t, func() bool {
		return srv.Gallery().Registry().Len() == 5
	}, 2*time.Second, 10*time.Millisecond)
}

func TestServerIgnore(t *testing.T) {
	cfg := testConfig(t)
	cfg.Gallery.Ignore = []string{"dir2"}
	srv, err := NewServer(cfg)
	require.NoError(t, err)
	defer srv.Close()

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/subdirectories", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.SubdirectoriesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Subdirectories, 1)
	assert.Equal(t, "dir1", resp.Subdirectories[0].Name)

	cfg = testConfig(t)
	cfg.Gallery.Ignore = []string{"[broken"}
	_, err = NewServer(cfg)
	assert.Error(t, err)
}

func TestServerCompression(t *testing.T) {
	cfg := testConfig(t)
	for i := 0; i < 60; i++ {
		testutil.WriteImage(t, cfg.Gallery.BaseDir, fmt.Sprintf("album-with-a-rather-long-name-%02d/img.png", i))
	}

	tests := []struct {
		name         string
		compression  bool
		path         string
		wantEncoding string
	}{
		{"json listing", true, "/api/subdirectories", "gzip"},
		{"disabled", false, "/api/subdirectories", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := *cfg
			c.Server.Compression = tt.compression
			srv, err := NewServer(&c)
			require.NoError(t, err)
			defer srv.Close()

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			req.Header.Set("Accept-Encoding", "gzip")
			w := httptest.NewRecorder()
			srv.Handler().ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.wantEncoding, w.Header().Get("Content-Encoding"))
		})
	}
}

func TestServerImagesNotCompressed(t *testing.T) {
	cfg := testConfig(t)
	png := make([]byte, 4096)
	copy(png, testutil.PNG)
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg">` + strings.Repeat(`<rect width="1" height="1"/>`, 150) + `</svg>`)
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Gallery.BaseDir, "dir1", "big.png"), png, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Gallery.BaseDir, "dir1", "big.svg"), svg, 0o644))

	cfg.Gallery.LegacyPaths = true
	srv, err := NewServer(cfg)
	require.NoError(t, err)
	defer srv.Close()

	tests := []struct {
		name string
		path string
		want []byte
	}{
		{"png", "/api/raw/dir1/big.png", png},
		{"svg", "/api/raw/dir1/big.svg", svg},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			req.Header.Set("Accept-Encoding", "gzip")
			w := httptest.NewRecorder()
			srv.Handler().ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			assert.Empty(t, w.Header().Get("Content-Encoding"))
			assert.Equal(t, strconv.Itoa(len(tt.want)), w.Header().Get("Content-Length"))
			assert.Equal(t, tt.want, w.Body.Bytes())
		})
	}
}

func TestServerServe(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.MaxConnections = 4
	srv, err := NewServer(cfg)
	require.NoError(t, err)
	defer srv.Close()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/health"
	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Get(url)
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)

	var health types.HealthResponse
	require.NoError(t, json.Unmarshal(body, &health))
	assert.Equal(t, "ok", health.Status)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}
