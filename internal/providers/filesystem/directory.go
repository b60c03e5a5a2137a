package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charlievieth/fastwalk"

	"github.com/GriffinCanCode/imageview/internal/shared/paths"
)

// ListSubdirectories returns the directories directly under dir in
// reverse-lexicographic name order.
func (p *Provider) ListSubdirectories(dir string) ([]FileInfo, error) {
	entries, err := p.list(dir, func(info FileInfo) bool { return info.IsDir })
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name > entries[j].Name
	})
	return entries, nil
}

// ListImages returns the regular files directly under dir whose extension is
// on the image allow-list, in ascending name order.
func (p *Provider) ListImages(dir string) ([]FileInfo, error) {
	entries, err := p.list(dir, func(info FileInfo) bool {
		return !info.IsDir && paths.IsImage(info.Name)
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

// list reads dir and keeps entries accepted by keep. Entries are classified
// through os.Stat so symlinks count as their target; dangling links and
// special files are skipped.
func (p *Provider) list(dir string, keep func(FileInfo) bool) ([]FileInfo, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	result := make([]FileInfo, 0, len(dirEntries))
	for _, entry := range dirEntries {
		if p.Ignored(entry.Name()) {
			continue
		}
		full := filepath.Join(dir, entry.Name())
		info, err := os.Stat(full)
		if err != nil {
			continue
		}
		if !info.IsDir() && !info.Mode().IsRegular() {
			continue
		}

		fi := FileInfo{
			Name:     entry.Name(),
			Path:     full,
			Size:     info.Size(),
			IsDir:    info.IsDir(),
			Modified: info.ModTime(),
		}
		if keep(fi) {
			result = append(result, fi)
		}
	}
	return result, nil
}

// WalkImages visits every subdirectory of root and every image inside those
// subdirectories (depth 2). fn is called concurrently and must be safe for
// concurrent use. Symlinks are not followed.
func (p *Provider) WalkImages(ctx context.Context, root string, fn func(path string, isDir bool) error) error {
	conf := fastwalk.Config{Follow: false}

	return fastwalk.Walk(&conf, root, func(path string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			return nil
		}
		if path == root {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		depth := strings.Count(rel, string(filepath.Separator)) + 1

		if p.Ignored(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if depth > 1 {
				return filepath.SkipDir
			}
			return fn(path, true)
		}

		if depth == 2 && d.Type().IsRegular() && paths.IsImage(d.Name()) {
			return fn(path, false)
		}
		return nil
	})
}
