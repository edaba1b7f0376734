// Package dataset serves fixed-size pages of a CSV dataset read from a store.
package dataset

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/discochess/evict/internal/stats"
	"github.com/discochess/evict/internal/store"
)

// ErrInvalidPage is returned when a page number or page size is not positive.
var ErrInvalidPage = errors.New("dataset: page and size must be positive")

// IndexRange returns the half-open row range [start, end) of a 1-indexed page.
func IndexRange(page, size int) (start, end int) {
	start = (page - 1) * size
	return start, start + size
}

// Dataset is a CSV object loaded lazily from a store. The header row is
// dropped. A Dataset is safe for concurrent use.
type Dataset struct {
	store  store.Store
	name   string
	logger *zap.Logger
	stats  stats.Collector

	mu   sync.Mutex
	rows [][]string
}

// Option configures a Dataset.
type Option func(*Dataset)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(d *Dataset) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithStats sets the stats collector.
func WithStats(c stats.Collector) Option {
	return func(d *Dataset) {
		if c != nil {
			d.stats = c
		}
	}
}

// New creates a Dataset backed by the named object in s.
// Nothing is read until the first Page or Len call.
func New(s store.Store, name string, opts ...Option) *Dataset {
	d := &Dataset{
		store:  s,
		name:   name,
		logger: zap.NewNop(),
		stats:  stats.NewNoop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Page returns the rows of the given 1-indexed page. A page past the end
// of the dataset is empty, not an error.
func (d *Dataset) Page(ctx context.Context, page, size int) ([][]string, error) {
	if page <= 0 || size <= 0 {
		return nil, fmt.Errorf("%w: page=%d size=%d", ErrInvalidPage, page, size)
	}

	rows, err := d.load(ctx)
	if err != nil {
		return nil, err
	}
	d.stats.IncCounter(stats.MetricPageLoads, 1)

	start, end := IndexRange(page, size)
	if start >= len(rows) {
		return [][]string{}, nil
	}
	end = min(end, len(rows))
	return rows[start:end:end], nil
}

// Len returns the number of data rows.
func (d *Dataset) Len(ctx context.Context) (int, error) {
	rows, err := d.load(ctx)
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

// load reads and parses the object once. Failed loads are retried on the
// next call.
func (d *Dataset) load(ctx context.Context) ([][]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.rows != nil {
		return d.rows, nil
	}

	start := time.Now()
	data, err := d.store.ReadObject(ctx, d.name)
	if err != nil {
		return nil, fmt.Errorf("reading dataset %s: %w", d.name, err)
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing dataset %s: %w", d.name, err)
	}

	rows := [][]string{}
	if len(records) > 1 {
		rows = records[1:]
	}
	d.rows = rows

	elapsed := time.Since(start)
	d.stats.SetGauge(stats.MetricDatasetRows, int64(len(rows)))
	d.stats.ObserveHistogram(stats.MetricLoadSeconds, elapsed.Seconds())
	d.logger.Info("dataset loaded",
		zap.String("name", d.name),
		zap.Int("rows", len(rows)),
		zap.Duration("elapsed", elapsed),
	)

	return rows, nil
}
