// Package cachestrategy defines cache eviction strategy interfaces.
package cachestrategy

// Strategy tracks the bookkeeping an eviction policy needs and picks
// victims. It never owns values; the cache keeps the key/value mapping and
// calls the strategy on every mutation. Implementations are not safe for
// concurrent use; the cache serializes access.
type Strategy[K comparable] interface {
	// Name returns the policy name, e.g. "lru".
	Name() string

	// OnPut records a put of key. existed reports whether key was
	// already present before the put.
	OnPut(key K, existed bool)

	// OnGet records a successful lookup of key.
	OnGet(key K)

	// Victim returns the key to evict next, or false if empty.
	// It does not remove the key.
	Victim() (K, bool)

	// Remove drops all bookkeeping for key.
	Remove(key K)

	// Keys returns the tracked keys in the strategy's order.
	Keys() []K

	// Len returns the number of tracked keys.
	Len() int
}
