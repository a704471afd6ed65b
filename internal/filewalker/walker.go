package filewalker

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// FileEntry represents a discovered source file ready for scanning.
type FileEntry struct {
	// Path is the absolute path on disk.
	Path string
	// Rel is the path relative to the walk root, with forward slashes.
	Rel string
	// Ext is the lower-cased file extension.
	Ext string
}

// Walker traverses a source tree and collects files by extension.
type Walker struct {
	extensions map[string]bool
}

// NewWalker creates a Walker for the given extension allow-list.
func NewWalker(extensions []string) *Walker {
	allowed := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		allowed[strings.ToLower(ext)] = true
	}
	return &Walker{extensions: allowed}
}

// Walk discovers all allowed files under the given root directory. Unreadable
// paths are logged and skipped; only an unusable root fails the walk.
func (w *Walker) Walk(root string) ([]FileEntry, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root path: %w", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root is not a directory: %s", root)
	}

	var entries []FileEntry

	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Error walking path")
			return nil
		}

		if info.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !w.extensions[ext] {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}

		entries = append(entries, FileEntry{
			Path: path,
			Rel:  filepath.ToSlash(rel),
			Ext:  ext,
		})
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}

	return entries, nil
}
