// Package testutil provides testing utilities and helpers for backend tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/imageview/internal/shared/paths"
)

// PNG is a minimal PNG signature plus IHDR chunk header
var PNG = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

// NewImageTree creates the standard fixture and returns its resolved root:
//
//	dir1/Aurelion.png
//	dir1/cat1.png
//	dir2/dog1.png
func NewImageTree(t *testing.T) string {
	t.Helper()

	base, err := paths.Resolve(t.TempDir())
	require.NoError(t, err)

	WriteImage(t, base, "dir1/Aurelion.png")
	WriteImage(t, base, "dir1/cat1.png")
	WriteImage(t, base, "dir2/dog1.png")
	return base
}

// WriteImage writes a PNG at base/rel, creating parent directories
func WriteImage(t *testing.T, base, rel string) string {
	t.Helper()

	path := filepath.Join(base, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, PNG, 0o644))
	return path
}

// NewStaticDir creates a static asset directory with the landing and viewer pages
func NewStaticDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "home-app"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "home-app", "index.html"), []byte("<html>home</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "viewer.html"), []byte("<html>viewer</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log('viewer')"), 0o644))
	return dir
}
