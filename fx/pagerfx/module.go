// Package pagerfx provides an fx module for a cached CSV dataset pager
// backed by a disk, GCS or S3 store.
package pagerfx

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/discochess/evict"
	"github.com/discochess/evict/internal/codec/codecs"
	"github.com/discochess/evict/internal/dataset"
	"github.com/discochess/evict/internal/pagecache"
	"github.com/discochess/evict/internal/stats"
	"github.com/discochess/evict/internal/stats/logger"
	statsprom "github.com/discochess/evict/internal/stats/prometheus"
	"github.com/discochess/evict/internal/store"
	"github.com/discochess/evict/internal/store/storeurl"
)

// Config holds configuration for the pager.
type Config struct {
	// Source is a directory, gs://bucket/prefix or s3://bucket/prefix.
	Source string

	// Object is the CSV object name, without compression extension.
	Object string

	// Codec is the object compression: "none", "gzip" or "zstd".
	// Default is none.
	Codec string

	// Policy is the page cache eviction policy. Default is LRU.
	Policy string

	// Capacity is the number of pages to cache in memory.
	// Default is evict.DefaultCapacity.
	Capacity int
}

// Module provides a *pagecache.Pager and its *dataset.Dataset.
// Requires a Config and a *zap.Logger to be provided. If a
// prometheus.Registerer is provided, metrics are exported there;
// otherwise they are logged.
var Module = fx.Module("pager",
	fx.Provide(
		newStatsCollector,
		newStore,
		newPager,
	),
)

// StatsParams holds dependencies for creating the stats collector.
type StatsParams struct {
	fx.In

	Logger     *zap.Logger
	Registerer prometheus.Registerer `optional:"true"`
}

func newStatsCollector(p StatsParams) stats.Collector {
	if p.Registerer != nil {
		return statsprom.New(p.Registerer)
	}
	return logger.New(p.Logger.Named("evict.stats"))
}

func newStore(cfg Config, lc fx.Lifecycle) (store.Store, error) {
	c, err := codecs.ByName(cfg.Codec)
	if err != nil {
		return nil, err
	}
	st, err := storeurl.Open(context.Background(), cfg.Source, c)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return st.Close()
		},
	})
	return st, nil
}

// Params holds dependencies for creating the pager.
type Params struct {
	fx.In

	Config    Config
	Logger    *zap.Logger
	Collector stats.Collector
	Store     store.Store
}

// Result holds the provided pager and dataset.
type Result struct {
	fx.Out

	Pager   *pagecache.Pager
	Dataset *dataset.Dataset
}

func newPager(p Params) (Result, error) {
	return NewPager(p.Config, p.Store, p.Logger, p.Collector)
}

// NewPager builds the dataset and pager for cfg over st.
// It is shared with mempagerfx.
func NewPager(cfg Config, st store.Store, log *zap.Logger, collector stats.Collector) (Result, error) {
	policy := evict.LRU
	if cfg.Policy != "" {
		var err error
		if policy, err = evict.ParsePolicy(cfg.Policy); err != nil {
			return Result{}, err
		}
	}

	capacity := cfg.Capacity
	if capacity <= 0 {
		capacity = evict.DefaultCapacity
	}

	ds := dataset.New(st, cfg.Object,
		dataset.WithLogger(log.Named("dataset")),
		dataset.WithStats(collector),
	)
	pager, err := pagecache.New(ds, log,
		evict.WithPolicy(policy),
		evict.WithCapacity(capacity),
		evict.WithStats(collector),
	)
	if err != nil {
		return Result{}, err
	}

	return Result{Pager: pager, Dataset: ds}, nil
}
