package cache

import "sync"

// MemoryBackend keeps entries in process memory. It backs tests and runs
// where the durable store could not be opened.
type MemoryBackend struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

// NewMemory returns an empty in-memory backend.
func NewMemory() *MemoryBackend {
	return &MemoryBackend{entries: make(map[string]*Entry)}
}

func (b *MemoryBackend) Get(path string) (*Entry, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	entry, ok := b.entries[path]
	if !ok {
		return nil, nil
	}
	cp := *entry
	return &cp, nil
}

func (b *MemoryBackend) Put(entry *Entry) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	cp := *entry
	b.entries[entry.Path] = &cp
	return nil
}

func (b *MemoryBackend) Delete(path string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.entries, path)
	return nil
}

func (b *MemoryBackend) Clear() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = make(map[string]*Entry)
	return nil
}

func (b *MemoryBackend) Len() (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries), nil
}

func (b *MemoryBackend) Close() error {
	return nil
}
