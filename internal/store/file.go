package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pjkaufman/obsidian-cursor-manager/internal/cache"
)

// File persists entries as a single JSON array on disk.
type File struct {
	path string
}

// NewFile creates a file-backed store. The parent directory of path is
// created on the first save if it does not exist.
func NewFile(path string) *File {
	return &File{path: path}
}

// Load reads the persisted entries. A missing file yields an empty
// sequence; unreadable content is reported so the caller can fall back
// to an empty cache.
func (f *File) Load() ([]cache.Entry, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", f.path, err)
	}

	var entries []cache.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", f.path, err)
	}
	return entries, nil
}

// Save writes the whole sequence, replacing any previous state.
func (f *File) Save(entries []cache.Entry) error {
	if entries == nil {
		entries = []cache.Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode entries: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", f.path, err)
	}
	return nil
}
