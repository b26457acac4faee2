package services

import (
	"context"
	"strings"
	"sync"
)

// MemoryHistoryStore store in-memory, isi hilang saat proses berhenti
type MemoryHistoryStore struct {
	data map[string]string
	mu   sync.RWMutex
}

// NewMemoryHistoryStore membuat MemoryHistoryStore
func NewMemoryHistoryStore() *MemoryHistoryStore {
	return &MemoryHistoryStore{
		data: make(map[string]string),
	}
}

// List key dengan prefix
func (ms *MemoryHistoryStore) List(ctx context.Context, prefix string) ([]string, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	keys := make([]string, 0, len(ms.data))
	for key := range ms.data {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// Get value key
func (ms *MemoryHistoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	value, ok := ms.data[key]
	return value, ok, nil
}

// Set menyimpan value
func (ms *MemoryHistoryStore) Set(ctx context.Context, key, value string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.data[key] = value
	return nil
}

// Close no-op
func (ms *MemoryHistoryStore) Close() error {
	return nil
}
