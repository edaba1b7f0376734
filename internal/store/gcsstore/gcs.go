// Package gcsstore implements a Google Cloud Storage backend.
package gcsstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"

	"github.com/discochess/evict/internal/codec"
	"github.com/discochess/evict/internal/store"
)

// Compile-time check that Store implements store.Store.
var _ store.Store = (*Store)(nil)

// openFunc opens the object stored under key.
type openFunc func(ctx context.Context, key string) (io.ReadCloser, error)

// Store reads objects from a Google Cloud Storage bucket.
type Store struct {
	client *storage.Client
	open   openFunc
	prefix string
	codec  codec.Codec
}

// New creates a new GCS store.
// The bucket must already exist.
// The codec handles decompression.
func New(ctx context.Context, bucketName string, c codec.Codec, opts ...Option) (*Store, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating GCS client: %w", err)
	}

	bucket := client.Bucket(bucketName)
	s := &Store{
		client: client,
		open: func(ctx context.Context, key string) (io.ReadCloser, error) {
			return bucket.Object(key).NewReader(ctx)
		},
		codec: c,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Option configures a Store.
type Option func(*Store)

// WithPrefix sets a key prefix for all operations.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = strings.TrimSuffix(prefix, "/")
		if s.prefix != "" {
			s.prefix += "/"
		}
	}
}

// ReadObject reads and decompresses the named object.
func (s *Store) ReadObject(ctx context.Context, name string) ([]byte, error) {
	// Check for cancellation before starting.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := s.open(ctx, s.objectKey(name))
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("creating reader: %w", err)
	}
	defer reader.Close()

	return store.Decode(reader, s.codec)
}

// Close releases resources.
func (s *Store) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

// objectKey returns the full object key for name.
func (s *Store) objectKey(name string) string {
	return s.prefix + codec.ObjectName(name, s.codec)
}
