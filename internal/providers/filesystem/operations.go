package filesystem

import (
	"fmt"
	"os"
)

// Stat returns metadata for path, following symlinks
func (p *Provider) Stat(path string) (os.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat failed: %w", err)
	}
	return info, nil
}

// Exists reports whether anything (including a dangling symlink) occupies path
func (p *Provider) Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// DeleteFile removes a single file
func (p *Provider) DeleteFile(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	return nil
}

// RenameDirectory moves source to destination and returns destination
func (p *Provider) RenameDirectory(source, destination string) (string, error) {
	if err := os.Rename(source, destination); err != nil {
		return "", fmt.Errorf("rename failed: %w", err)
	}
	return destination, nil
}
