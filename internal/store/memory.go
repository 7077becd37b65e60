package store

import (
	"errors"
	"sync"
)

// MemoryBackend is an in-memory cache backend for testing.
type MemoryBackend struct {
	entries map[string]*Entry
	mu      sync.RWMutex

	// FailWrites makes every Write return a StorageWriteError, for
	// exercising degraded-persistence paths.
	FailWrites bool

	// FailReads makes every Read of an existing key fail, for exercising
	// the unreadable-cache path.
	FailReads bool

	Writes int
}

// NewMemoryBackend creates a new in-memory cache backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{entries: make(map[string]*Entry)}
}

// Path returns a dummy path for the given key.
func (b *MemoryBackend) Path(key string) string {
	return "memory://" + key
}

// Read returns the cached entry for the key, or nil if absent.
func (b *MemoryBackend) Read(key string) (*Entry, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	entry, ok := b.entries[key]
	if !ok {
		return nil, nil
	}
	if b.FailReads {
		return nil, errors.New("simulated read failure")
	}
	return copyEntry(entry), nil
}

// Write stores a copy of the entry.
func (b *MemoryBackend) Write(entry *Entry) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.FailWrites {
		return &StorageWriteError{Path: b.Path(entry.Key), Err: errors.New("simulated write failure")}
	}

	b.entries[entry.Key] = copyEntry(entry)
	b.Writes++
	return nil
}

// Delete removes the record for the key, if any.
func (b *MemoryBackend) Delete(key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.entries, key)
	return nil
}

// Seed adds entries directly (for testing).
func (b *MemoryBackend) Seed(entries ...*Entry) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, entry := range entries {
		b.entries[entry.Key] = copyEntry(entry)
	}
}

func copyEntry(entry *Entry) *Entry {
	cp := *entry
	cp.Dates = append([]string(nil), entry.Dates...)
	return &cp
}
