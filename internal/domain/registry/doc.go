// Package registry maps opaque resource IDs to filesystem paths.
//
// Clients never see paths. Every directory or image they are shown carries a
// random 128-bit ID minted here, and every request that names an ID is
// resolved back through the registry, which re-validates the path against
// the live filesystem before handing it out.
//
// Invariants:
//   - At most one ID per resolved path, and one path per ID
//   - Mappings are removed, never rewritten; a renamed path gets a new ID
//   - Every reachable path lies within the base directory
//   - Discarded IDs are never handed out again
//
// Self-healing:
//   - Resolve evicts entries whose path vanished or escaped the base
//   - A kind mismatch (file vs directory) is reported as not-found without
//     eviction
//   - Sweep / Run evict stale entries nobody asked about
//
// Example Usage:
//
//	reg := registry.New(base).WithLogger(logger.Logger)
//	dirID, err := reg.Register(filepath.Join(base, "holiday"))
//	path, ok := reg.Resolve(dirID, true)
//	reg.Discard(path)
package registry
