package paths

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrOutsideBase is returned when a path resolves outside the base directory
var ErrOutsideBase = errors.New("path escapes base directory")

const (
	dot                   = "."
	doubleDot             = ".."
	doubleDotDirSeparator = doubleDot + string(filepath.Separator)
)

// ImageExtensions is the allow-list of servable image extensions (lowercase)
var ImageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
	".bmp":  {},
	".svg":  {},
}

// IsImage reports whether name carries an allowed image extension.
// The comparison is case-insensitive.
func IsImage(name string) bool {
	_, ok := ImageExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// Resolve returns the absolute form of path with symlinks and ".." collapsed.
// Trailing components that do not exist yet are appended to the resolved
// form of their longest existing ancestor, so a rename destination can be
// resolved before it is created.
func Resolve(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to make path absolute: %w", err)
	}

	existing := abs
	var missing []string
	for {
		resolved, err := filepath.EvalSymlinks(existing)
		if err == nil {
			for i := len(missing) - 1; i >= 0; i-- {
				resolved = filepath.Join(resolved, missing[i])
			}
			return resolved, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to resolve %s: %w", path, err)
		}

		parent := filepath.Dir(existing)
		if parent == existing {
			return "", fmt.Errorf("failed to resolve %s: %w", path, err)
		}
		missing = append(missing, filepath.Base(existing))
		existing = parent
	}
}

// Within reports whether target is equal to or nested under base.
// Both paths must already be absolute and resolved.
func Within(base, target string) bool {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return false
	}
	return rel == dot || !(rel == doubleDot || strings.HasPrefix(rel, doubleDotDirSeparator))
}

// Contain joins a client-supplied fragment onto base, resolves the result and
// verifies containment. Any resolution failure is reported as ErrOutsideBase.
func Contain(base, fragment string) (string, error) {
	candidate := fragment
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(base, fragment)
	}

	resolved, err := Resolve(candidate)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrOutsideBase, err)
	}
	if !Within(base, resolved) {
		return "", ErrOutsideBase
	}
	return resolved, nil
}

// ResolveBase resolves the configured base directory and requires it to be
// an existing directory.
func ResolveBase(dir string) (string, error) {
	resolved, err := Resolve(expandHome(dir))
	if err != nil {
		return "", err
	}
	info, err := os.Stat(resolved)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("directory does not exist: %s", resolved)
	}
	return resolved, nil
}

// ValidateDirectoryName checks a single path component used as a rename target.
// The name is expected to be trimmed already.
func ValidateDirectoryName(name string) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if name == dot || name == doubleDot {
		return fmt.Errorf("name cannot be %q", name)
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("name cannot contain path separators")
	}
	if strings.Contains(name, "\x00") {
		return fmt.Errorf("name contains invalid characters")
	}
	return nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
