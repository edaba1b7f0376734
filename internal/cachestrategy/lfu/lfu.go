// Package lfu implements a least-frequently-used cache eviction strategy.
//
// Every key carries an access count: 1 when first put, incremented on each
// put of an existing key and each get. The victim is the key with the
// lowest count; ties are broken by least recent use.
//
// Keys are grouped into one recency list per count. A touch always moves
// a key to the back of the next count's list, so within a list the order
// of entry is also the order of last use, and the front of the lowest
// count's list is the victim.
package lfu

import (
	"slices"

	"github.com/discochess/evict/internal/cachestrategy"
	"github.com/discochess/evict/internal/order"
)

// Compile-time check that Strategy implements cachestrategy.Strategy.
var _ cachestrategy.Strategy[string] = (*Strategy[string])(nil)

// Strategy implements LFU eviction with LRU tie-breaking.
type Strategy[K comparable] struct {
	counts  map[K]int
	buckets map[int]*order.List[K]
	min     int
}

// New creates a new LFU strategy.
func New[K comparable]() *Strategy[K] {
	return &Strategy[K]{
		counts:  make(map[K]int),
		buckets: make(map[int]*order.List[K]),
	}
}

// Name returns "lfu".
func (s *Strategy[K]) Name() string {
	return "lfu"
}

// OnPut starts new keys at count 1 and bumps existing ones.
func (s *Strategy[K]) OnPut(key K, existed bool) {
	if _, ok := s.counts[key]; ok {
		s.touch(key)
		return
	}
	s.counts[key] = 1
	s.bucket(1).PushBack(key)
	s.min = 1
}

// OnGet bumps the count of key.
func (s *Strategy[K]) OnGet(key K) {
	if _, ok := s.counts[key]; ok {
		s.touch(key)
	}
}

// Victim returns the least recently used key among those with the lowest
// count.
func (s *Strategy[K]) Victim() (K, bool) {
	b, ok := s.buckets[s.min]
	if !ok {
		var zero K
		return zero, false
	}
	return b.Front()
}

// Remove forgets key and its count.
func (s *Strategy[K]) Remove(key K) {
	count, ok := s.counts[key]
	if !ok {
		return
	}
	delete(s.counts, key)
	s.unlink(key, count)
	if count == s.min {
		if _, ok := s.buckets[count]; !ok {
			s.min = s.lowestCount()
		}
	}
}

// Keys returns keys in eviction order: ascending count, least recently
// used first within a count.
func (s *Strategy[K]) Keys() []K {
	counts := make([]int, 0, len(s.buckets))
	for c := range s.buckets {
		counts = append(counts, c)
	}
	slices.Sort(counts)

	keys := make([]K, 0, len(s.counts))
	for _, c := range counts {
		keys = append(keys, s.buckets[c].Keys()...)
	}
	return keys
}

// Len returns the number of tracked keys.
func (s *Strategy[K]) Len() int {
	return len(s.counts)
}

// Frequency returns the access count of key.
func (s *Strategy[K]) Frequency(key K) (int, bool) {
	c, ok := s.counts[key]
	return c, ok
}

func (s *Strategy[K]) touch(key K) {
	count := s.counts[key]
	s.unlink(key, count)
	if count == s.min {
		if _, ok := s.buckets[count]; !ok {
			s.min = count + 1
		}
	}
	s.counts[key] = count + 1
	s.bucket(count + 1).PushBack(key)
}

// unlink removes key from the list for count, dropping the list when empty.
func (s *Strategy[K]) unlink(key K, count int) {
	b, ok := s.buckets[count]
	if !ok {
		return
	}
	b.Remove(key)
	if b.Len() == 0 {
		delete(s.buckets, count)
	}
}

func (s *Strategy[K]) bucket(count int) *order.List[K] {
	b, ok := s.buckets[count]
	if !ok {
		b = order.New[K]()
		s.buckets[count] = b
	}
	return b
}

func (s *Strategy[K]) lowestCount() int {
	lowest := 0
	for c := range s.buckets {
		if lowest == 0 || c < lowest {
			lowest = c
		}
	}
	return lowest
}
