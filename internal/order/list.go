// Package order provides an ordered set of keys used by eviction strategies
// to track insertion or access order.
package order

import "container/list"

// List is an ordered set of keys. Each key appears at most once.
// The front is the oldest key, the back the newest.
// List is not safe for concurrent use.
type List[K comparable] struct {
	ll    *list.List
	index map[K]*list.Element
}

// New creates an empty List.
func New[K comparable]() *List[K] {
	return &List[K]{
		ll:    list.New(),
		index: make(map[K]*list.Element),
	}
}

// PushBack appends key to the back. A key already present is moved there.
func (l *List[K]) PushBack(key K) {
	if e, ok := l.index[key]; ok {
		l.ll.MoveToBack(e)
		return
	}
	l.index[key] = l.ll.PushBack(key)
}

// MoveToBack moves key to the back. It reports false if key is not present.
func (l *List[K]) MoveToBack(key K) bool {
	e, ok := l.index[key]
	if !ok {
		return false
	}
	l.ll.MoveToBack(e)
	return true
}

// Remove deletes key. It reports whether key was present.
func (l *List[K]) Remove(key K) bool {
	e, ok := l.index[key]
	if !ok {
		return false
	}
	l.ll.Remove(e)
	delete(l.index, key)
	return true
}

// Front returns the oldest key.
func (l *List[K]) Front() (K, bool) {
	e := l.ll.Front()
	if e == nil {
		var zero K
		return zero, false
	}
	return e.Value.(K), true
}

// Back returns the newest key.
func (l *List[K]) Back() (K, bool) {
	e := l.ll.Back()
	if e == nil {
		var zero K
		return zero, false
	}
	return e.Value.(K), true
}

// Contains reports whether key is present.
func (l *List[K]) Contains(key K) bool {
	_, ok := l.index[key]
	return ok
}

// Keys returns the keys from front to back.
func (l *List[K]) Keys() []K {
	keys := make([]K, 0, l.ll.Len())
	for e := l.ll.Front(); e != nil; e = e.Next() {
		keys = append(keys, e.Value.(K))
	}
	return keys
}

// Len returns the number of keys.
func (l *List[K]) Len() int {
	return l.ll.Len()
}
