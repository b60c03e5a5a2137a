package filesystem

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// WithIgnore hides entries whose name matches one of the glob patterns,
// e.g. ".*" for dotfiles or "@eaDir" for NAS thumbnail folders.
func (p *Provider) WithIgnore(patterns ...string) (*Provider, error) {
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid ignore pattern %q", pattern)
		}
	}
	p.ignore = append(p.ignore, patterns...)
	return p, nil
}

// Ignored reports whether an entry name matches an ignore pattern
func (p *Provider) Ignored(name string) bool {
	for _, pattern := range p.ignore {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}
