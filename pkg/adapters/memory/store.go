package memory

import (
	"context"
	"slices"
	"sync"
)

// Store implements ports.EntryStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string][]string
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string][]string),
	}
}

// Entries returns a copy of the entries under key.
func (s *Store) Entries(ctx context.Context, key string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Copy on read so callers can't mutate the stored slice
	return slices.Clone(s.data[key]), nil
}

// Append adds entries to the end of the list under key.
func (s *Store) Append(ctx context.Context, key string, entries ...string) error {
	if len(entries) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append(s.data[key], entries...)
	return nil
}

// Clear removes the list under key.
func (s *Store) Clear(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// Keys returns the keys that hold at least one entry.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
