package evict

import (
	"fmt"
	"strings"

	"github.com/discochess/evict/internal/cachestrategy"
	"github.com/discochess/evict/internal/cachestrategy/fifo"
	"github.com/discochess/evict/internal/cachestrategy/lfu"
	"github.com/discochess/evict/internal/cachestrategy/lifo"
	"github.com/discochess/evict/internal/cachestrategy/lru"
	"github.com/discochess/evict/internal/cachestrategy/mru"
)

// Policy names an eviction policy.
type Policy string

// Supported eviction policies.
const (
	// FIFO evicts the earliest inserted key.
	FIFO Policy = "fifo"
	// LIFO evicts the most recently inserted key.
	LIFO Policy = "lifo"
	// LFU evicts the least frequently used key, least recently used first
	// among equals.
	LFU Policy = "lfu"
	// LRU evicts the least recently used key.
	LRU Policy = "lru"
	// MRU evicts the most recently used key.
	MRU Policy = "mru"
)

// Policies returns every supported policy.
func Policies() []Policy {
	return []Policy{FIFO, LIFO, LFU, LRU, MRU}
}

// ParsePolicy parses a policy name, ignoring case and surrounding space.
func ParsePolicy(s string) (Policy, error) {
	p := Policy(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Policies() {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

// String returns the policy name.
func (p Policy) String() string {
	return string(p)
}

// newStrategy builds the bookkeeping for policy p.
func newStrategy[K comparable](p Policy, capacity int) (cachestrategy.Strategy[K], error) {
	switch p {
	case FIFO:
		return fifo.New[K](), nil
	case LIFO:
		return lifo.New[K](), nil
	case LFU:
		return lfu.New[K](), nil
	case LRU:
		return lru.New[K](capacity)
	case MRU:
		return mru.New[K](), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, string(p))
	}
}
