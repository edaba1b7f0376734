// Package pagecache caches dataset pages in a bounded evict.Cache.
package pagecache

import (
	"context"
	"slices"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/discochess/evict"
)

// Source loads pages on cache misses.
type Source interface {
	Page(ctx context.Context, page, size int) ([][]string, error)
}

// PageKey identifies a cached page.
type PageKey struct {
	Page int
	Size int
}

func (k PageKey) String() string {
	return strconv.Itoa(k.Page) + "/" + strconv.Itoa(k.Size)
}

// Pager serves pages from a cache in front of a Source.
// Concurrent misses for the same page share one load.
type Pager struct {
	src    Source
	cache  *evict.Cache[PageKey, [][]string]
	group  singleflight.Group
	logger *zap.Logger
}

// New creates a Pager over src. The options configure the underlying cache.
func New(src Source, logger *zap.Logger, opts ...evict.Option) (*Pager, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("pagecache")

	cache, err := evict.NewWithEvict(func(key PageKey, _ [][]string) {
		logger.Debug("page evicted", zap.Stringer("key", key))
	}, append([]evict.Option{evict.WithLogger(logger)}, opts...)...)
	if err != nil {
		return nil, err
	}

	return &Pager{
		src:    src,
		cache:  cache,
		logger: logger,
	}, nil
}

// Page returns the requested page, loading it from the source on a miss.
// Errors are returned to the caller and never cached. The returned rows are
// a copy; callers may modify them.
//
// A shared load runs detached from the cancellation of the caller that
// started it, so one caller giving up does not fail the others. Each caller
// still stops waiting when its own ctx is done.
func (p *Pager) Page(ctx context.Context, page, size int) ([][]string, error) {
	key := PageKey{Page: page, Size: size}
	if rows, ok := p.cache.Get(key); ok {
		return clonePage(rows), nil
	}

	loadCtx := context.WithoutCancel(ctx)
	ch := p.group.DoChan(key.String(), func() (any, error) {
		// Another caller may have finished loading after our miss.
		if rows, ok := p.cache.Peek(key); ok {
			return rows, nil
		}
		rows, err := p.src.Page(loadCtx, page, size)
		if err != nil {
			return nil, err
		}
		p.cache.Put(key, rows)
		return rows, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return clonePage(res.Val.([][]string)), nil
	}
}

func clonePage(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = slices.Clone(row)
	}
	return out
}

// Stats returns the statistics of the underlying cache.
func (p *Pager) Stats() evict.Stats {
	return p.cache.Stats()
}

// Len returns the number of cached pages.
func (p *Pager) Len() int {
	return p.cache.Len()
}

// Purge drops every cached page.
func (p *Pager) Purge() {
	p.cache.Purge()
}
