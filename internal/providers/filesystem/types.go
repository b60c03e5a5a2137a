package filesystem

import (
	"time"
)

// FileInfo represents a listed directory entry
type FileInfo struct {
	Name     string    `json:"name"`
	Path     string    `json:"path"`
	Size     int64     `json:"size"`
	IsDir    bool      `json:"is_dir"`
	Modified time.Time `json:"modified"`
}

// Provider implements filesystem access on top of the os package
type Provider struct {
	ignore []string
}

// NewProvider creates a filesystem provider
func NewProvider() *Provider {
	return &Provider{}
}
