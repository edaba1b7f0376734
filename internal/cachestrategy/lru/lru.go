// Package lru implements an LRU cache eviction strategy.
package lru

import (
	"github.com/hashicorp/golang-lru/v2/simplelru"

	"github.com/discochess/evict/internal/cachestrategy"
)

// Compile-time check that Strategy implements cachestrategy.Strategy.
var _ cachestrategy.Strategy[string] = (*Strategy[string])(nil)

// Strategy implements LRU eviction: the key least recently touched by a
// put or a get is evicted first.
type Strategy[K comparable] struct {
	recency *simplelru.LRU[K, struct{}]
}

// New creates a new LRU strategy tracking up to capacity keys.
func New[K comparable](capacity int) (*Strategy[K], error) {
	l, err := simplelru.NewLRU[K, struct{}](capacity, nil)
	if err != nil {
		return nil, err
	}
	return &Strategy[K]{recency: l}, nil
}

// Name returns "lru".
func (s *Strategy[K]) Name() string {
	return "lru"
}

// OnPut marks key as most recently used.
func (s *Strategy[K]) OnPut(key K, existed bool) {
	s.recency.Add(key, struct{}{})
}

// OnGet marks key as most recently used.
func (s *Strategy[K]) OnGet(key K) {
	s.recency.Get(key)
}

// Victim returns the least recently used key.
func (s *Strategy[K]) Victim() (K, bool) {
	key, _, ok := s.recency.GetOldest()
	return key, ok
}

// Remove forgets key.
func (s *Strategy[K]) Remove(key K) {
	s.recency.Remove(key)
}

// Keys returns keys from least to most recently used.
func (s *Strategy[K]) Keys() []K {
	return s.recency.Keys()
}

// Len returns the number of tracked keys.
func (s *Strategy[K]) Len() int {
	return s.recency.Len()
}
