// Package fifo implements a first-in-first-out cache eviction strategy.
package fifo

import (
	"github.com/discochess/evict/internal/cachestrategy"
	"github.com/discochess/evict/internal/order"
)

// Compile-time check that Strategy implements cachestrategy.Strategy.
var _ cachestrategy.Strategy[string] = (*Strategy[string])(nil)

// Strategy evicts the earliest inserted key. Access patterns and
// overwrites of existing keys never change the order.
type Strategy[K comparable] struct {
	inserted *order.List[K]
}

// New creates a new FIFO strategy.
func New[K comparable]() *Strategy[K] {
	return &Strategy[K]{inserted: order.New[K]()}
}

// Name returns "fifo".
func (s *Strategy[K]) Name() string {
	return "fifo"
}

// OnPut appends new keys to the insertion order.
func (s *Strategy[K]) OnPut(key K, existed bool) {
	if existed {
		return
	}
	s.inserted.PushBack(key)
}

// OnGet is a no-op.
func (s *Strategy[K]) OnGet(key K) {}

// Victim returns the oldest inserted key.
func (s *Strategy[K]) Victim() (K, bool) {
	return s.inserted.Front()
}

// Remove forgets key.
func (s *Strategy[K]) Remove(key K) {
	s.inserted.Remove(key)
}

// Keys returns keys from oldest to newest.
func (s *Strategy[K]) Keys() []K {
	return s.inserted.Keys()
}

// Len returns the number of tracked keys.
func (s *Strategy[K]) Len() int {
	return s.inserted.Len()
}
