// Package store defines the storage backend interface for reading dataset
// objects such as CSV files.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when an object does not exist in the store.
var ErrNotFound = errors.New("store: object not found")

// Store defines the interface for storage backends.
// Implementations handle path formats and decompression internally.
type Store interface {
	// ReadObject returns the decompressed content of the named object.
	// The name excludes any compression extension.
	ReadObject(ctx context.Context, name string) ([]byte, error)

	// Close releases any resources held by the store.
	Close() error
}
