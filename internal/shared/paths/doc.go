// Package paths implements the path-safety contract of the gallery.
//
// Every filesystem path the service touches is derived from a single base
// directory fixed at startup. This package resolves candidate paths
// (absolute form, symlinks and ".." collapsed) and checks that the result is
// equal to or nested under that base. Checks fail closed: a path that cannot
// be resolved is treated exactly like one that escapes.
//
// # Usage
//
//	base, err := paths.ResolveBase("~/Pictures")
//
//	// Client-supplied fragment (403 on failure)
//	target, err := paths.Contain(base, "holiday/beach.png")
//	if errors.Is(err, paths.ErrOutsideBase) {
//	    // reject
//	}
//
//	// Re-validation of an already resolved path
//	if !paths.Within(base, target) {
//	    // treat as absent
//	}
package paths
