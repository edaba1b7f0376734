// Package diskstore implements a disk-based filesystem storage backend.
package diskstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/discochess/evict/internal/codec"
	"github.com/discochess/evict/internal/store"
)

// Compile-time check that Store implements store.Store.
var _ store.Store = (*Store)(nil)

// Store reads objects from files under a root directory.
type Store struct {
	root  string
	codec codec.Codec
}

// New creates a new disk store rooted at the given directory.
// The directory must exist. The codec handles decompression.
func New(root string, c codec.Codec) (*Store, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	return &Store{
		root:  root,
		codec: c,
	}, nil
}

// ReadObject reads and decompresses the named file.
func (s *Store) ReadObject(ctx context.Context, name string) ([]byte, error) {
	// Check for cancellation before starting I/O.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.objectPath(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("opening object: %w", err)
	}
	defer f.Close()

	return store.Decode(f, s.codec)
}

// Close releases any resources held by the store.
func (s *Store) Close() error {
	return nil
}

// objectPath returns the filesystem path for an object.
func (s *Store) objectPath(name string) string {
	return filepath.Join(s.root, filepath.FromSlash(codec.ObjectName(name, s.codec)))
}
