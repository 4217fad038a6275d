// Package storage provides the client-side key/value stores the storefront
// keeps its state in: a durable file-backed store (the cart, the auth token)
// and a session-scoped in-memory store (the checkout draft). Values are
// always read and written whole; there are no partial updates.
package storage

import "sync"

// Store is the storage port. Read reports ok=false when the key is absent;
// a missing key is not an error.
type Store interface {
	Read(key string) ([]byte, bool, error)
	Write(key string, value []byte) error
	Delete(key string) error
}

// MemStore is a Store kept entirely in memory. It backs the session-scoped
// checkout draft and doubles as the test fake for the durable store.
type MemStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{values: make(map[string][]byte)}
}

func (m *MemStore) Read(key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp, true, nil
}

func (m *MemStore) Write(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(value))
	copy(cp, value)
	m.values[key] = cp
	return nil
}

func (m *MemStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
