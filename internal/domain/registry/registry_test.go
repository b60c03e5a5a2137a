package registry

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/imageview/internal/shared/id"
	"github.com/GriffinCanCode/imageview/internal/shared/paths"
)

type countingObserver struct {
	mu      sync.Mutex
	minted  int
	evicted map[string]int
	entries int
}

func (o *countingObserver) ObserveMint(entries int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.minted++
	o.entries = entries
}

func (o *countingObserver) ObserveEvict(reason string, entries int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.evicted == nil {
		o.evicted = make(map[string]int)
	}
	o.evicted[reason]++
	o.entries = entries
}

func setupTree(t *testing.T) string {
	t.Helper()
	base, err := paths.Resolve(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Join(base, "dir1"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(base, "dir2"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "dir1", "cat1.png"), []byte("cat"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(base, "dir2", "dog1.png"), []byte("dog"), 0o644))
	return base
}

func TestRegisterIdempotent(t *testing.T) {
	base := setupTree(t)
	reg := New(base)

	first, err := reg.Register(filepath.Join(base, "dir1"))
	require.NoError(t, err)
	second, err := reg.Register(filepath.Join(base, "dir1"))
	require.NoError(t, err)
	viaDotDot, err := reg.Register(filepath.Join(base, "dir2", "..", "dir1"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, first, viaDotDot)
	assert.True(t, id.IsResourceID(first.String()))
	assert.Equal(t, 1, reg.Len())
}

func TestRegisterConcurrent(t *testing.T) {
	base := setupTree(t)
	obs := &countingObserver{}
	reg := New(base).WithObserver(obs)
	target := filepath.Join(base, "dir1", "cat1.png")

	const callers = 64
	results := make([]id.ResourceID, callers)
	var wg sync.WaitGroup
	start := make(chan struct{})

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			resourceID, err := reg.Register(target)
			assert.NoError(t, err)
			results[i] = resourceID
		}(i)
	}
	close(start)
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, results[0], got)
	}
	assert.Equal(t, 1, reg.Len())
	assert.Equal(t, 1, obs.minted)
}

func TestBijection(t *testing.T) {
	base := setupTree(t)
	reg := New(base)

	dir1 := filepath.Join(base, "dir1")
	dir2 := filepath.Join(base, "dir2")
	cat := filepath.Join(base, "dir1", "cat1.png")

	dir1ID, err := reg.Register(dir1)
	require.NoError(t, err)
	dir2ID, err := reg.Register(dir2)
	require.NoError(t, err)
	catID, err := reg.Register(cat)
	require.NoError(t, err)

	assert.NotEqual(t, dir1ID, dir2ID)
	assert.NotEqual(t, dir1ID, catID)

	got, ok := reg.Resolve(dir1ID, true)
	require.True(t, ok)
	assert.Equal(t, dir1, got)

	got, ok = reg.Resolve(dir2ID, true)
	require.True(t, ok)
	assert.Equal(t, dir2, got)

	got, ok = reg.Resolve(catID, false)
	require.True(t, ok)
	assert.Equal(t, cat, got)
}

func TestResolveUnknown(t *testing.T) {
	reg := New(setupTree(t))

	_, ok := reg.Resolve("not-found-directory-id", true)
	assert.False(t, ok)
}

func TestResolveKindMismatchKeepsEntry(t *testing.T) {
	base := setupTree(t)
	reg := New(base)

	dirID, err := reg.Register(filepath.Join(base, "dir1"))
	require.NoError(t, err)
	fileID, err := reg.Register(filepath.Join(base, "dir1", "cat1.png"))
	require.NoError(t, err)

	_, ok := reg.Resolve(dirID, false)
	assert.False(t, ok)
	_, ok = reg.Resolve(fileID, true)
	assert.False(t, ok)

	assert.Equal(t, 2, reg.Len())
	_, ok = reg.Resolve(dirID, true)
	assert.True(t, ok)
}

func TestResolveSelfHealing(t *testing.T) {
	base := setupTree(t)
	obs := &countingObserver{}
	reg := New(base).WithObserver(obs)
	cat := filepath.Join(base, "dir1", "cat1.png")

	catID, err := reg.Register(cat)
	require.NoError(t, err)
	require.NoError(t, os.Remove(cat))

	_, ok := reg.Resolve(catID, false)
	assert.False(t, ok)
	assert.Equal(t, 0, reg.Len())
	assert.Equal(t, 1, obs.evicted[EvictMissing])

	// Recreating the file yields a fresh ID; the old one stays dead.
	require.NoError(t, os.WriteFile(cat, []byte("new cat"), 0o644))
	newID, err := reg.Register(cat)
	require.NoError(t, err)
	assert.NotEqual(t, catID, newID)

	_, ok = reg.Resolve(catID, false)
	assert.False(t, ok)
	got, ok := reg.Resolve(newID, false)
	assert.True(t, ok)
	assert.Equal(t, cat, got)
}

func TestRegisterOutsideBase(t *testing.T) {
	base := setupTree(t)
	reg := New(base)
	outside := t.TempDir()

	tests := []struct {
		name string
		path string
	}{
		{"parent", filepath.Dir(base)},
		{"dotdot escape", filepath.Join(base, "dir1", "..", "..")},
		{"unrelated", outside},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reg.Register(tt.path)
			assert.ErrorIs(t, err, paths.ErrOutsideBase)
		})
	}
	assert.Equal(t, 0, reg.Len())
}

func TestRegisterSymlinkEscape(t *testing.T) {
	base := setupTree(t)
	outside := t.TempDir()
	link := filepath.Join(base, "escape")
	if err := os.Symlink(outside, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	reg := New(base)
	_, err := reg.Register(link)
	assert.ErrorIs(t, err, paths.ErrOutsideBase)
}

func TestResolveEvictsEscapedEntry(t *testing.T) {
	base := setupTree(t)
	outside := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(outside, "dir3"), 0o755))

	reg := New(base)
	dir3 := filepath.Join(base, "dir3")
	require.NoError(t, os.Mkdir(dir3, 0o755))
	dirID, err := reg.Register(dir3)
	require.NoError(t, err)

	// Swap the directory for a symlink leading out of the tree.
	require.NoError(t, os.Remove(dir3))
	if err := os.Symlink(filepath.Join(outside, "dir3"), dir3); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	_, ok := reg.Resolve(dirID, true)
	assert.False(t, ok)
	assert.Equal(t, 0, reg.Len())
}

func TestDiscard(t *testing.T) {
	base := setupTree(t)
	reg := New(base)
	dir1 := filepath.Join(base, "dir1")

	dirID, err := reg.Register(dir1)
	require.NoError(t, err)

	reg.Discard(dir1)
	reg.Discard(dir1)

	_, ok := reg.Resolve(dirID, true)
	assert.False(t, ok)
	assert.Equal(t, 0, reg.Len())

	again, err := reg.Register(dir1)
	require.NoError(t, err)
	assert.NotEqual(t, dirID, again, "discarded IDs are never reused")
}

func TestDiscardDeletedPath(t *testing.T) {
	base := setupTree(t)
	reg := New(base)
	cat := filepath.Join(base, "dir1", "cat1.png")

	_, err := reg.Register(cat)
	require.NoError(t, err)
	require.NoError(t, os.Remove(cat))

	reg.Discard(cat)
	assert.Equal(t, 0, reg.Len())
}

func TestSweep(t *testing.T) {
	base := setupTree(t)
	reg := New(base)

	_, err := reg.Register(filepath.Join(base, "dir1", "cat1.png"))
	require.NoError(t, err)
	_, err = reg.Register(filepath.Join(base, "dir2", "dog1.png"))
	require.NoError(t, err)
	require.NoError(t, os.Remove(filepath.Join(base, "dir2", "dog1.png")))

	assert.Equal(t, 1, reg.Sweep())
	assert.Equal(t, 1, reg.Len())
	assert.Equal(t, 0, reg.Sweep())
}

func TestRunStopsOnCancel(t *testing.T) {
	base := setupTree(t)
	reg := New(base)
	_, err := reg.Register(filepath.Join(base, "dir1", "cat1.png"))
	require.NoError(t, err)
	require.NoError(t, os.Remove(filepath.Join(base, "dir1", "cat1.png")))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		reg.Run(ctx, 10*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return reg.Len() == 0 }, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestMintSkipsTakenIDs(t *testing.T) {
	base := setupTree(t)
	first := bytes.Repeat([]byte{0x11}, 16)
	second := bytes.Repeat([]byte{0x22}, 16)
	entropy := bytes.NewReader(append(append(append([]byte{}, first...), first...), second...))

	reg := New(base).WithGenerator(id.NewGeneratorWithEntropy(entropy))

	dirID, err := reg.Register(filepath.Join(base, "dir1"))
	require.NoError(t, err)
	fileID, err := reg.Register(filepath.Join(base, "dir1", "cat1.png"))
	require.NoError(t, err)

	assert.Equal(t, id.NewGeneratorWithEntropy(bytes.NewReader(first)).NewResourceID(), dirID)
	assert.Equal(t, id.NewGeneratorWithEntropy(bytes.NewReader(second)).NewResourceID(), fileID)
	assert.Equal(t, 2, reg.Len())
}
