// Package kv provides the small key-value blob store the tracker persists
// into, with interchangeable backends: in-memory, one-file-per-key, SQLite
// and Redis.
package kv

import "sync"

// Store is the persistence contract: get a string blob by key, set it, or
// drop it. Absence is not an error, it is the second return of Get.
type Store interface {
	// Get returns the blob stored under key, and whether it was present.
	Get(key string) (string, bool, error)
	// Set stores the blob under key, overwriting any previous value.
	Set(key, value string) error
	// Delete removes the key. Deleting an absent key is not an error.
	Delete(key string) error
	// Close releases any resources held by the backend.
	Close() error
}

// Memory is an in-process Store, used by tests and ephemeral runs. The zero
// value is not ready to use; call NewMemory.
type Memory struct {
	mu   sync.Mutex
	data map[string]string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *Memory) Close() error { return nil }
