// Package mru implements a most-recently-used cache eviction strategy.
package mru

import (
	"github.com/discochess/evict/internal/cachestrategy"
	"github.com/discochess/evict/internal/order"
)

// Compile-time check that Strategy implements cachestrategy.Strategy.
var _ cachestrategy.Strategy[string] = (*Strategy[string])(nil)

// Strategy evicts the key most recently touched by a put or a get,
// evaluated when a new key must be admitted.
type Strategy[K comparable] struct {
	recency *order.List[K]
}

// New creates a new MRU strategy.
func New[K comparable]() *Strategy[K] {
	return &Strategy[K]{recency: order.New[K]()}
}

// Name returns "mru".
func (s *Strategy[K]) Name() string {
	return "mru"
}

// OnPut marks key as most recently used.
func (s *Strategy[K]) OnPut(key K, existed bool) {
	s.recency.PushBack(key)
}

// OnGet marks key as most recently used.
func (s *Strategy[K]) OnGet(key K) {
	s.recency.MoveToBack(key)
}

// Victim returns the most recently used key.
func (s *Strategy[K]) Victim() (K, bool) {
	return s.recency.Back()
}

// Remove forgets key.
func (s *Strategy[K]) Remove(key K) {
	s.recency.Remove(key)
}

// Keys returns keys from least to most recently used; the victim is last.
func (s *Strategy[K]) Keys() []K {
	return s.recency.Keys()
}

// Len returns the number of tracked keys.
func (s *Strategy[K]) Len() int {
	return s.recency.Len()
}
