package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	storageDomain "github.com/fastkv/fastkv-go/internal/storage/domain"
)

// MemoryStore is an in-memory Store used in tests and for local
// experimentation. Safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]storageDomain.EncryptedEntry
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]storageDomain.EncryptedEntry),
	}
}

// Set stores the entry, replacing any prior value wholesale.
func (s *MemoryStore) Set(
	_ context.Context,
	key string,
	entry storageDomain.EncryptedEntry,
) (*storageDomain.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry
	return nil, nil
}

// Get returns the entry, or nil when absent.
func (s *MemoryStore) Get(_ context.Context, key string) (*storageDomain.EncryptedEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[key]
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

// Delete removes the entry if present.
func (s *MemoryStore) Delete(_ context.Context, key string) (*storageDomain.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil, nil
}

// List returns all keys beginning with prefix, sorted for determinism.
func (s *MemoryStore) List(_ context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var keys []string
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}
