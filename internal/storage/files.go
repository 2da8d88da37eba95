// Package storage implements the media file store backing uploaded images.
package storage

import (
	"os"
	"path/filepath"
	"strings"
)

// FileStore writes and removes media files under a single root directory.
// Paths handed to callers are always relative, slash-separated, and safe to
// append to a public /media/ URL.
type FileStore struct {
	root string
}

// NewFileStore creates a store rooted at the given directory.
func NewFileStore(root string) *FileStore {
	return &FileStore{root: root}
}

// Root returns the store's root directory.
func (s *FileStore) Root() string {
	return s.root
}

// Abs resolves a relative media path to its absolute location on disk.
func (s *FileStore) Abs(rel string) string {
	return filepath.Join(s.root, filepath.FromSlash(rel))
}

// Write stores data at the given relative path, creating parent directories as needed.
func (s *FileStore) Write(rel string, data []byte) error {
	path := s.Abs(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// Remove deletes the given relative paths, ignoring errors. Used to clean up
// partially written uploads.
func (s *FileStore) Remove(rels ...string) {
	for _, rel := range rels {
		_ = os.Remove(s.Abs(rel))
	}
}

// Exists reports whether a file is present at the relative path.
func (s *FileStore) Exists(rel string) bool {
	_, err := os.Stat(s.Abs(rel))
	return err == nil
}

// ValidMediaPath rejects relative paths that could escape the media root.
func ValidMediaPath(rel string) bool {
	if rel == "" || strings.HasPrefix(rel, "/") {
		return false
	}
	for _, part := range strings.Split(rel, "/") {
		if part == "" || part == "." || part == ".." {
			return false
		}
	}
	return true
}
