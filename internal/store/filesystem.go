package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"wikiplot/internal/core"
)

// FilesystemBackend stores one JSON file per page under the cache root.
type FilesystemBackend struct {
	root      string
	writeLock sync.Mutex
}

// NewFilesystemBackend creates a filesystem-based cache backend. An empty
// root selects the default cache directory.
func NewFilesystemBackend(root string) *FilesystemBackend {
	if root == "" {
		root = core.CacheRoot()
	}
	return &FilesystemBackend{root: root}
}

// Path returns the cache file path for the given key.
func (b *FilesystemBackend) Path(key string) string {
	return filepath.Join(b.root, key+".json")
}

// Read returns the cached entry for the key, or nil if absent.
func (b *FilesystemBackend) Read(key string) (*Entry, error) {
	path := b.Path(key)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read cache %s: %w", path, err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil || entry.Dates == nil {
		// Legacy format: a bare array of date strings.
		var dates []string
		if err := json.Unmarshal(data, &dates); err != nil {
			return nil, fmt.Errorf("corrupt cache %s: %w", path, err)
		}
		entry = Entry{Dates: dates}
	}

	entry.Key = key
	return &entry, nil
}

// Write persists the entry atomically via temp file + rename, so a crash
// mid-write never leaves a corrupt partial file.
func (b *FilesystemBackend) Write(entry *Entry) error {
	path := b.Path(entry.Key)

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return &StorageWriteError{Path: path, Err: err}
	}

	b.writeLock.Lock()
	defer b.writeLock.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &StorageWriteError{Path: path, Err: err}
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return &StorageWriteError{Path: path, Err: err}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return &StorageWriteError{Path: path, Err: err}
	}

	return nil
}

// Delete removes the cache file for the key, if present.
func (b *FilesystemBackend) Delete(key string) error {
	err := os.Remove(b.Path(key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
