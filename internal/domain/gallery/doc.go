// Package gallery implements the image gallery operations.
//
// The service sits between the HTTP handlers and the filesystem. Listings
// register every entry they return; every other operation starts by
// resolving an ID through the registry, so a client can only reach paths it
// was previously shown.
//
// Operations:
//   - ListSubdirectories: subdirectories of the base, reverse name order
//   - ListImages: images of one subdirectory, ascending name order
//   - ResolveImage: ID to live image path (for delivery)
//   - DeleteImage: remove a file, then drop its entry
//   - RenameSubdirectory: rename under the base, discard old ID, mint new
//   - Prewarm: register the whole tree up front
//
// Errors are the sentinels in errors.go; OS failures are wrapped in
// ErrInternal. Mutations touch the registry only after the OS call
// succeeded.
//
// Example Usage:
//
//	svc := gallery.NewService(filesystem.NewProvider(), registry.New(base))
//	dirs, err := svc.ListSubdirectories()
//	dir, images, err := svc.ListImages(dirs[0].DirectoryID)
package gallery
