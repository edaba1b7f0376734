// Package memstore provides an in-memory store implementation for testing.
package memstore

import (
	"context"
	"sync"

	"github.com/discochess/evict/internal/store"
)

// Compile-time check that Store implements store.Store.
var _ store.Store = (*Store)(nil)

// Store is an in-memory store for testing.
type Store struct {
	mu      sync.RWMutex
	objects map[string][]byte
	reads   map[string]int
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		objects: make(map[string][]byte),
		reads:   make(map[string]int),
	}
}

// SetObject sets the content of an object (for test setup).
// The data is copied to prevent caller mutations from affecting the store.
func (s *Store) SetObject(name string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[name] = append([]byte(nil), data...)
}

// ReadObject reads an object from memory.
func (s *Store) ReadObject(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.objects[name]
	if !ok {
		return nil, store.ErrNotFound
	}
	s.reads[name]++
	return data, nil
}

// Reads returns how many times name was read successfully.
func (s *Store) Reads(name string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reads[name]
}

// Close is a no-op for the memory store.
func (s *Store) Close() error {
	return nil
}
