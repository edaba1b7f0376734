// Package lifo implements a last-in-first-out cache eviction strategy.
package lifo

import (
	"github.com/discochess/evict/internal/cachestrategy"
	"github.com/discochess/evict/internal/order"
)

// Compile-time check that Strategy implements cachestrategy.Strategy.
var _ cachestrategy.Strategy[string] = (*Strategy[string])(nil)

// Strategy evicts the most recently inserted key present at the time of
// overflow. Re-putting an existing key counts as a fresh insertion; gets
// do not affect the order.
type Strategy[K comparable] struct {
	inserted *order.List[K]
}

// New creates a new LIFO strategy.
func New[K comparable]() *Strategy[K] {
	return &Strategy[K]{inserted: order.New[K]()}
}

// Name returns "lifo".
func (s *Strategy[K]) Name() string {
	return "lifo"
}

// OnPut moves key to the newest position.
func (s *Strategy[K]) OnPut(key K, existed bool) {
	s.inserted.PushBack(key)
}

// OnGet is a no-op.
func (s *Strategy[K]) OnGet(key K) {}

// Victim returns the newest inserted key.
func (s *Strategy[K]) Victim() (K, bool) {
	return s.inserted.Back()
}

// Remove forgets key.
func (s *Strategy[K]) Remove(key K) {
	s.inserted.Remove(key)
}

// Keys returns keys from oldest to newest; the victim is last.
func (s *Strategy[K]) Keys() []K {
	return s.inserted.Keys()
}

// Len returns the number of tracked keys.
func (s *Strategy[K]) Len() int {
	return s.inserted.Len()
}
