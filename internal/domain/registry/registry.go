package registry

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/imageview/internal/shared/id"
	"github.com/GriffinCanCode/imageview/internal/shared/paths"
)

// Eviction reasons reported to observers
const (
	EvictDiscard = "discard"
	EvictMissing = "missing"
	EvictEscaped = "escaped"
	EvictSweep   = "sweep"
)

// Observer is notified about registry size changes
type Observer interface {
	ObserveMint(entries int)
	ObserveEvict(reason string, entries int)
}

type nopObserver struct{}

func (nopObserver) ObserveMint(int)           {}
func (nopObserver) ObserveEvict(string, int) {}

// Registry maps opaque resource IDs to resolved paths under a base directory.
// Both directions live behind one mutex; no filesystem I/O happens while it
// is held.
type Registry struct {
	base     string
	gen      *id.Generator
	observer Observer
	logger   *zap.Logger

	mu       sync.Mutex
	idToPath map[id.ResourceID]string
	pathToID map[string]id.ResourceID
}

// New creates an empty registry rooted at base.
// base must already be absolute and symlink-resolved.
func New(base string) *Registry {
	return &Registry{
		base:     filepath.Clean(base),
		gen:      id.Default(),
		observer: nopObserver{},
		logger:   zap.NewNop(),
		idToPath: make(map[id.ResourceID]string),
		pathToID: make(map[string]id.ResourceID),
	}
}

// WithObserver attaches a size/eviction observer
func (r *Registry) WithObserver(o Observer) *Registry {
	if o != nil {
		r.observer = o
	}
	return r
}

// WithLogger attaches a logger
func (r *Registry) WithLogger(l *zap.Logger) *Registry {
	if l != nil {
		r.logger = l
	}
	return r
}

// WithGenerator replaces the ID generator
func (r *Registry) WithGenerator(g *id.Generator) *Registry {
	if g != nil {
		r.gen = g
	}
	return r
}

// Base returns the base directory
func (r *Registry) Base() string {
	return r.base
}

// Register returns the ID for path, minting one on first sight.
// Concurrent callers for the same resolved path always get the same ID.
func (r *Registry) Register(path string) (id.ResourceID, error) {
	resolved, err := paths.Resolve(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", paths.ErrOutsideBase, err)
	}
	if !paths.Within(r.base, resolved) {
		return "", paths.ErrOutsideBase
	}

	r.mu.Lock()
	if existing, ok := r.pathToID[resolved]; ok {
		r.mu.Unlock()
		return existing, nil
	}
	resourceID := r.mint()
	r.pathToID[resolved] = resourceID
	r.idToPath[resourceID] = resolved
	entries := len(r.idToPath)
	r.mu.Unlock()

	r.observer.ObserveMint(entries)
	return resourceID, nil
}

// mint draws a fresh ID. Caller must hold r.mu.
func (r *Registry) mint() id.ResourceID {
	for {
		candidate := r.gen.NewResourceID()
		if _, taken := r.idToPath[candidate]; !taken {
			return candidate
		}
	}
}

// Resolve returns the live path for resourceID.
//
// The path must still exist, still resolve inside the base directory and be
// of the expected kind. Existence and containment failures evict the entry;
// a kind mismatch only reports not-found.
func (r *Registry) Resolve(resourceID id.ResourceID, expectDirectory bool) (string, bool) {
	r.mu.Lock()
	path, ok := r.idToPath[resourceID]
	r.mu.Unlock()
	if !ok {
		return "", false
	}

	info, reason := r.check(path)
	if reason != "" {
		r.evict(resourceID, path, reason)
		return "", false
	}

	if expectDirectory != info.IsDir() {
		return "", false
	}
	if !expectDirectory && !info.Mode().IsRegular() {
		return "", false
	}
	return path, true
}

// check stats path and re-validates containment. It returns the eviction
// reason when the entry is stale.
func (r *Registry) check(path string) (os.FileInfo, string) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, EvictMissing
	}
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil || !paths.Within(r.base, resolved) {
		return nil, EvictEscaped
	}
	return info, ""
}

// evict removes resourceID only if it still maps to path, so a concurrent
// re-registration is never torn down.
func (r *Registry) evict(resourceID id.ResourceID, path, reason string) bool {
	r.mu.Lock()
	current, ok := r.idToPath[resourceID]
	if !ok || current != path {
		r.mu.Unlock()
		return false
	}
	delete(r.idToPath, resourceID)
	if r.pathToID[path] == resourceID {
		delete(r.pathToID, path)
	}
	entries := len(r.idToPath)
	r.mu.Unlock()

	r.logger.Debug("registry entry evicted",
		zap.String("id", resourceID.String()),
		zap.String("path", path),
		zap.String("reason", reason),
	)
	r.observer.ObserveEvict(reason, entries)
	return true
}

// Discard drops any mapping for path. No-op when absent.
func (r *Registry) Discard(path string) {
	resolved, err := paths.Resolve(path)
	if err != nil {
		abs, absErr := filepath.Abs(path)
		if absErr != nil {
			return
		}
		resolved = abs
	}

	r.mu.Lock()
	resourceID, ok := r.pathToID[resolved]
	if !ok {
		r.mu.Unlock()
		return
	}
	delete(r.pathToID, resolved)
	delete(r.idToPath, resourceID)
	entries := len(r.idToPath)
	r.mu.Unlock()

	r.observer.ObserveEvict(EvictDiscard, entries)
}

// Len returns the number of live entries
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.idToPath)
}

// Sweep evicts every entry whose path vanished or escaped the base
// directory. Returns the number of evicted entries.
func (r *Registry) Sweep() int {
	type entry struct {
		id   id.ResourceID
		path string
	}

	r.mu.Lock()
	snapshot := make([]entry, 0, len(r.idToPath))
	for resourceID, path := range r.idToPath {
		snapshot = append(snapshot, entry{id: resourceID, path: path})
	}
	r.mu.Unlock()

	evicted := 0
	for _, e := range snapshot {
		if _, reason := r.check(e.path); reason != "" {
			if r.evict(e.id, e.path, EvictSweep) {
				evicted++
			}
		}
	}
	return evicted
}

// Run sweeps every interval until ctx is cancelled
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.logger.Info("registry sweep evicted stale entries",
					zap.Int("evicted", n),
					zap.Int("remaining", r.Len()),
				)
			}
		}
	}
}
