// Package filesystem provides the OS-facing accessor used by the gallery.
//
// This package is organized into small modules:
//   - directory: listing subdirectories and images, prewarm walk
//   - operations: stat, delete file, rename directory
//   - ignore: doublestar name patterns hidden from listings and walks
//
// All operations:
//   - Take absolute, already validated paths
//   - Surface OS errors unchanged (wrapped with %w)
//   - Hold no locks; the only state is the ignore list, fixed at startup
//
// Listing follows symlinks when classifying entries, so a symlinked
// subdirectory is listed as a directory. Containment of the results is the
// caller's concern.
//
// Example Usage:
//
//	fs := filesystem.NewProvider()
//	dirs, err := fs.ListSubdirectories(base)
//	images, err := fs.ListImages(dirs[0].Path)
package filesystem
