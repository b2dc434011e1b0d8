package content

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// SupportedExtensions lists the recognized content file extensions in
// resolution priority order: a .md file wins over a .mdx file of the same slug.
var SupportedExtensions = []string{".md", ".mdx"}

// ErrNotFound is returned when no content file exists for a slug.
var ErrNotFound = errors.New("content file not found")

// Resolve maps a document slug to its content file using a first-match-wins
// probe over the supported extensions.
func Resolve(dir, slug string) (string, error) {
	for _, ext := range SupportedExtensions {
		path := filepath.Join(dir, slug+ext)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("resolve %q: %w", slug, ErrNotFound)
}

// IsSupported reports whether name carries a recognized content extension.
func IsSupported(name string) bool {
	ext := filepath.Ext(name)
	for _, s := range SupportedExtensions {
		if ext == s {
			return true
		}
	}
	return false
}
