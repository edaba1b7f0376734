// Package storeurl opens a store from a location string: a local directory,
// gs://bucket/prefix or s3://bucket/prefix.
package storeurl

import (
	"context"
	"fmt"
	"strings"

	"github.com/discochess/evict/internal/codec"
	"github.com/discochess/evict/internal/store"
	"github.com/discochess/evict/internal/store/diskstore"
	"github.com/discochess/evict/internal/store/gcsstore"
	"github.com/discochess/evict/internal/store/s3store"
)

// Scheme identifies a storage backend.
type Scheme string

// Supported schemes.
const (
	Disk Scheme = "file"
	GCS  Scheme = "gs"
	S3   Scheme = "s3"
)

// Location is a parsed store location.
type Location struct {
	Scheme Scheme
	Bucket string // Set for GCS and S3.
	Prefix string // Object key prefix for GCS and S3, without trailing slash.
	Path   string // Directory for Disk.
}

// Parse parses a location. Strings without a gs:// or s3:// scheme are
// local directories.
func Parse(loc string) (Location, error) {
	for _, scheme := range []Scheme{GCS, S3} {
		rest, ok := strings.CutPrefix(loc, string(scheme)+"://")
		if !ok {
			continue
		}
		bucket, prefix, _ := strings.Cut(rest, "/")
		if bucket == "" {
			return Location{}, fmt.Errorf("invalid %s location %q: missing bucket name", scheme, loc)
		}
		return Location{
			Scheme: scheme,
			Bucket: bucket,
			Prefix: strings.Trim(prefix, "/"),
		}, nil
	}

	if loc == "" {
		return Location{}, fmt.Errorf("empty store location")
	}
	return Location{Scheme: Disk, Path: loc}, nil
}

func (l Location) String() string {
	if l.Scheme == Disk {
		return l.Path
	}
	s := string(l.Scheme) + "://" + l.Bucket
	if l.Prefix != "" {
		s += "/" + l.Prefix
	}
	return s
}

// Open parses loc and opens the matching store, decompressing with c.
func Open(ctx context.Context, loc string, c codec.Codec) (store.Store, error) {
	l, err := Parse(loc)
	if err != nil {
		return nil, err
	}

	var (
		s       store.Store
		openErr error
	)
	switch l.Scheme {
	case GCS:
		s, openErr = gcsstore.New(ctx, l.Bucket, c, gcsstore.WithPrefix(l.Prefix))
	case S3:
		s, openErr = s3store.New(ctx, l.Bucket, c, s3store.WithPrefix(l.Prefix))
	default:
		s, openErr = diskstore.New(l.Path, c)
	}
	if openErr != nil {
		return nil, fmt.Errorf("opening %s: %w", l, openErr)
	}
	return s, nil
}
