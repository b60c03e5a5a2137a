package gallery

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/imageview/internal/domain/registry"
	"github.com/GriffinCanCode/imageview/internal/providers/filesystem"
	"github.com/GriffinCanCode/imageview/internal/shared/id"
	"github.com/GriffinCanCode/imageview/internal/shared/paths"
	"github.com/GriffinCanCode/imageview/internal/shared/types"
)

// Accessor is the filesystem surface the service depends on
type Accessor interface {
	ListSubdirectories(dir string) ([]filesystem.FileInfo, error)
	ListImages(dir string) ([]filesystem.FileInfo, error)
	Exists(path string) bool
	DeleteFile(path string) error
	RenameDirectory(source, destination string) (string, error)
	WalkImages(ctx context.Context, root string, fn func(path string, isDir bool) error) error
}

// Directory is a resolved subdirectory
type Directory struct {
	ID   id.ResourceID
	Name string
	Path string
}

// Service implements browsing, deletion and renaming on top of the registry
type Service struct {
	base     string
	fs       Accessor
	registry *registry.Registry
	logger   *zap.Logger

	renameMu sync.Mutex // Serializes renames so two requests cannot race for one name
}

// NewService creates a gallery service rooted at the registry's base directory
func NewService(fs Accessor, reg *registry.Registry) *Service {
	return &Service{
		base:     reg.Base(),
		fs:       fs,
		registry: reg,
		logger:   zap.NewNop(),
	}
}

// WithLogger attaches a logger
func (s *Service) WithLogger(logger *zap.Logger) *Service {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// Base returns the base directory
func (s *Service) Base() string {
	return s.base
}

// Registry returns the underlying registry
func (s *Service) Registry() *registry.Registry {
	return s.registry
}

// ListSubdirectories lists the subdirectories of the base directory,
// registering each one.
func (s *Service) ListSubdirectories() ([]types.DirectoryEntry, error) {
	entries, err := s.fs.ListSubdirectories(s.base)
	if err != nil {
		return nil, internal("list subdirectories", err)
	}

	result := make([]types.DirectoryEntry, 0, len(entries))
	for _, entry := range entries {
		dirID, err := s.registry.Register(entry.Path)
		if err != nil {
			s.logger.Debug("skipping subdirectory outside base",
				zap.String("path", entry.Path),
				zap.Error(err),
			)
			continue
		}
		result = append(result, types.DirectoryEntry{DirectoryID: dirID.String(), Name: entry.Name})
	}
	return result, nil
}

// ListImages lists the images of the directory behind directoryID
func (s *Service) ListImages(directoryID string) (Directory, []types.ImageEntry, error) {
	dir, err := s.resolveDirectory(directoryID)
	if err != nil {
		return Directory{}, nil, err
	}

	entries, err := s.fs.ListImages(dir.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Directory{}, nil, ErrNotFound
		}
		return Directory{}, nil, internal("list images", err)
	}

	images := make([]types.ImageEntry, 0, len(entries))
	for _, entry := range entries {
		fileID, err := s.registry.Register(entry.Path)
		if err != nil {
			s.logger.Debug("skipping image outside base",
				zap.String("path", entry.Path),
				zap.Error(err),
			)
			continue
		}
		images = append(images, types.ImageEntry{FileID: fileID.String(), Name: entry.Name})
	}
	return dir, images, nil
}

// ResolveImage returns the live path of the image behind fileID
func (s *Service) ResolveImage(fileID string) (string, error) {
	if !id.IsResourceID(fileID) {
		return "", ErrNotFound
	}
	path, ok := s.registry.Resolve(id.ResourceID(fileID), false)
	if !ok {
		return "", ErrNotFound
	}
	if !paths.IsImage(path) {
		return "", ErrUnsupportedMediaType
	}
	return path, nil
}

// ResolveImagePath resolves a client-supplied "<subdir>/<file>" fragment.
// Escapes are reported as ErrForbidden.
func (s *Service) ResolveImagePath(fragment string) (string, error) {
	path, err := paths.Contain(s.base, strings.TrimPrefix(fragment, "/"))
	if err != nil {
		return "", ErrForbidden
	}

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", ErrNotFound
	}
	if !paths.IsImage(path) {
		return "", ErrUnsupportedMediaType
	}
	return path, nil
}

// DeleteImage deletes the image behind fileID and drops its registry entry
func (s *Service) DeleteImage(fileID string) (string, error) {
	path, err := s.ResolveImage(fileID)
	if err != nil {
		return "", err
	}

	if err := s.fs.DeleteFile(path); err != nil {
		return "", internal("delete image", err)
	}
	s.registry.Discard(path)

	s.logger.Info("image deleted",
		zap.String("file_id", fileID),
		zap.String("path", path),
	)
	return path, nil
}

// RenameResult describes a completed rename
type RenameResult struct {
	DirectoryID string
	RenamedFrom string
	RenamedTo   string
}

// RenameSubdirectory renames the directory behind directoryID to newName,
// a sibling directly under the base directory. The old ID is discarded and
// a new one minted for the destination.
func (s *Service) RenameSubdirectory(directoryID, newName string) (RenameResult, error) {
	dir, err := s.resolveDirectory(directoryID)
	if err != nil {
		return RenameResult{}, err
	}

	name := strings.TrimSpace(newName)
	if err := paths.ValidateDirectoryName(name); err != nil {
		return RenameResult{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	// A single validated component always lands directly under base.
	destination := filepath.Join(s.base, name)

	s.renameMu.Lock()
	defer s.renameMu.Unlock()

	if s.fs.Exists(destination) {
		return RenameResult{}, ErrConflict
	}

	if _, err := s.fs.RenameDirectory(dir.Path, destination); err != nil {
		return RenameResult{}, internal("rename directory", err)
	}
	s.registry.Discard(dir.Path)

	newID, err := s.registry.Register(destination)
	if err != nil {
		return RenameResult{}, internal("register renamed directory", err)
	}

	s.logger.Info("subdirectory renamed",
		zap.String("from", dir.Name),
		zap.String("to", name),
		zap.String("directory_id", newID.String()),
	)
	return RenameResult{
		DirectoryID: newID.String(),
		RenamedFrom: dir.Name,
		RenamedTo:   name,
	}, nil
}

// Prewarm registers every subdirectory and every image below them so the
// first listings hit existing entries. Returns the number of registered paths.
func (s *Service) Prewarm(ctx context.Context) (int, error) {
	var count atomic.Int64
	err := s.fs.WalkImages(ctx, s.base, func(path string, _ bool) error {
		if _, err := s.registry.Register(path); err == nil {
			count.Add(1)
		}
		return nil
	})
	if err != nil {
		return int(count.Load()), fmt.Errorf("prewarm failed: %w", err)
	}
	return int(count.Load()), nil
}

func (s *Service) resolveDirectory(directoryID string) (Directory, error) {
	if !id.IsResourceID(directoryID) {
		return Directory{}, ErrNotFound
	}
	resourceID := id.ResourceID(directoryID)
	path, ok := s.registry.Resolve(resourceID, true)
	if !ok {
		return Directory{}, ErrNotFound
	}
	return Directory{ID: resourceID, Name: filepath.Base(path), Path: path}, nil
}
