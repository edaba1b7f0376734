// Package evict provides an in-memory, capacity-bounded key/value cache with
// interchangeable eviction policies: FIFO, LIFO, LFU, LRU and MRU.
//
// Example usage:
//
//	c, err := evict.NewWithEvict(func(key string, value int) {
//	    fmt.Printf("DISCARD: %s\n", key)
//	}, evict.WithCapacity(2), evict.WithPolicy(evict.LFU))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	c.Put("A", 1)
//	c.Put("B", 2)
//	c.Get("A")
//	c.Put("C", 3) // DISCARD: B
//
// Missing keys, full caches and absent inputs are never errors: Get reports
// a miss, Put evicts exactly one entry when full, and a Put whose key is the
// zero value or whose value is nil does nothing.
package evict

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/discochess/evict/internal/cachestrategy"
	"github.com/discochess/evict/internal/stats"
)

// Sentinel errors for well-defined error conditions.
var (
	// ErrInvalidCapacity indicates a capacity below 1.
	ErrInvalidCapacity = errors.New("evict: capacity must be positive")

	// ErrUnknownPolicy indicates an unsupported eviction policy name.
	ErrUnknownPolicy = errors.New("evict: unknown policy")
)

// EvictCallback is called with every evicted entry.
type EvictCallback[K comparable, V any] func(key K, value V)

// Cache is a bounded key/value store that evicts one entry per overflowing
// Put according to its policy.
// A Cache is safe for concurrent use by multiple goroutines.
type Cache[K comparable, V any] struct {
	capacity int
	policy   Policy
	onEvict  EvictCallback[K, V]
	stats    stats.Collector
	logger   *zap.Logger

	mu       sync.Mutex
	items    map[K]V
	strategy cachestrategy.Strategy[K]

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

// New creates a new Cache with the given options.
// If no options are provided, an LRU cache of DefaultCapacity is created.
func New[K comparable, V any](opts ...Option) (*Cache[K, V], error) {
	return NewWithEvict[K, V](nil, opts...)
}

// NewWithEvict creates a new Cache that reports every eviction to onEvict.
// The callback runs after the cache lock is released. The size gauge is
// published while the lock is held so it always matches the last mutation;
// collectors must not call back into the cache.
func NewWithEvict[K comparable, V any](onEvict EvictCallback[K, V], opts ...Option) (*Cache[K, V], error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	if cfg.capacity < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, cfg.capacity)
	}

	strategy, err := newStrategy[K](cfg.policy, cfg.capacity)
	if err != nil {
		return nil, err
	}

	c := &Cache[K, V]{
		capacity: cfg.capacity,
		policy:   cfg.policy,
		onEvict:  onEvict,
		stats:    cfg.stats,
		logger:   cfg.logger,
		items:    make(map[K]V, cfg.capacity),
		strategy: strategy,
	}

	c.logger.Debug("cache initialized",
		zap.Int("capacity", c.capacity),
		zap.String("policy", c.policy.String()),
	)

	return c, nil
}

// Put stores value under key. When key is new and the cache is full,
// exactly one entry chosen by the policy is evicted first.
// Put does nothing if key is the zero value or value is nil.
func (c *Cache[K, V]) Put(key K, value V) {
	if isAbsentKey(key) || isNil(value) {
		return
	}

	c.mu.Lock()
	if _, ok := c.items[key]; ok {
		c.items[key] = value
		c.strategy.OnPut(key, true)
		c.mu.Unlock()
		return
	}

	var (
		victim    K
		victimVal V
		evicted   bool
	)
	if len(c.items) >= c.capacity {
		victim, victimVal, evicted = c.evictLocked()
	}
	c.items[key] = value
	c.strategy.OnPut(key, false)
	c.stats.SetGauge(stats.MetricCacheSize, int64(len(c.items)))
	c.mu.Unlock()

	if evicted {
		c.discarded(victim, victimVal)
	}
}

// Get returns the value stored under key and records the access with the
// policy. It reports false for the zero key and for missing keys.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	var zero V
	if isAbsentKey(key) {
		c.miss()
		return zero, false
	}

	c.mu.Lock()
	value, ok := c.items[key]
	if ok {
		c.strategy.OnGet(key)
	}
	c.mu.Unlock()

	if !ok {
		c.miss()
		return zero, false
	}
	c.hits.Add(1)
	c.stats.IncCounter(stats.MetricCacheHits, 1)
	return value, true
}

// Peek returns the value stored under key without updating the policy's
// bookkeeping or the hit/miss statistics.
func (c *Cache[K, V]) Peek(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.items[key]
	return value, ok
}

// Contains reports whether key is present, without side effects.
func (c *Cache[K, V]) Contains(key K) bool {
	_, ok := c.Peek(key)
	return ok
}

// Remove deletes key from the cache. It reports whether key was present.
// Removal is not an eviction and does not invoke the eviction callback.
func (c *Cache[K, V]) Remove(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[key]
	if ok {
		delete(c.items, key)
		c.strategy.Remove(key)
		c.stats.SetGauge(stats.MetricCacheSize, int64(len(c.items)))
	}
	return ok
}

// Purge removes every entry. The policy and capacity are kept.
func (c *Cache[K, V]) Purge() {
	c.mu.Lock()
	for key := range c.items {
		c.strategy.Remove(key)
	}
	clear(c.items)
	c.stats.SetGauge(stats.MetricCacheSize, 0)
	c.mu.Unlock()
}

// Keys returns the cached keys in the policy's order. For FIFO, LRU and
// LFU the next victim comes first; for LIFO and MRU it comes last.
func (c *Cache[K, V]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.strategy.Keys()
}

// Len returns the number of cached entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Capacity returns the maximum number of entries.
func (c *Cache[K, V]) Capacity() int {
	return c.capacity
}

// Policy returns the eviction policy.
func (c *Cache[K, V]) Policy() Policy {
	return c.policy
}

// Stats returns current cache statistics.
func (c *Cache[K, V]) Stats() Stats {
	return Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Size:      c.Len(),
		Capacity:  c.capacity,
	}
}

// evictLocked removes the policy's victim. c.mu must be held.
func (c *Cache[K, V]) evictLocked() (K, V, bool) {
	victim, ok := c.strategy.Victim()
	if !ok {
		var zeroV V
		return victim, zeroV, false
	}
	value := c.items[victim]
	delete(c.items, victim)
	c.strategy.Remove(victim)
	return victim, value, true
}

// discarded reports an eviction. It must be called without c.mu held.
func (c *Cache[K, V]) discarded(key K, value V) {
	c.evictions.Add(1)
	c.stats.IncCounter(stats.MetricCacheEvictions, 1)
	c.logger.Debug("discard",
		zap.Any("key", key),
		zap.String("policy", c.policy.String()),
	)
	if c.onEvict != nil {
		c.onEvict(key, value)
	}
}

func (c *Cache[K, V]) miss() {
	c.misses.Add(1)
	c.stats.IncCounter(stats.MetricCacheMisses, 1)
}

func isAbsentKey[K comparable](key K) bool {
	var zero K
	return key == zero
}

// isNil reports whether v is a nil interface or a nil pointer, map, slice,
// func or channel.
func isNil[V any](v V) bool {
	rv := reflect.ValueOf(any(v))
	if !rv.IsValid() {
		return true
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
