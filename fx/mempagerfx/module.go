// Package mempagerfx provides an fx module for a pager over an in-memory
// store. Useful for testing.
package mempagerfx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/discochess/evict/fx/pagerfx"
	"github.com/discochess/evict/internal/stats"
	"github.com/discochess/evict/internal/stats/logger"
	"github.com/discochess/evict/internal/store/memstore"
)

// Module provides a *pagecache.Pager over a *memstore.Store.
// Requires a pagerfx.Config (Source is ignored) and a *zap.Logger.
var Module = fx.Module("mempager",
	fx.Provide(
		newStatsCollector,
		newMemStore,
		newPager,
	),
)

func newStatsCollector(log *zap.Logger) stats.Collector {
	return logger.New(log.Named("evict.stats"))
}

func newMemStore() *memstore.Store {
	return memstore.New()
}

// Params holds dependencies for creating the pager.
type Params struct {
	fx.In

	Config    pagerfx.Config
	Logger    *zap.Logger
	Collector stats.Collector
	Store     *memstore.Store
}

func newPager(p Params) (pagerfx.Result, error) {
	return pagerfx.NewPager(p.Config, p.Store, p.Logger, p.Collector)
}
