// Package stats provides a unified interface for collecting metrics.
package stats

// Metric names used throughout the library.
const (
	// Cache metrics.
	MetricCacheHits      = "evict_cache_hits_total"
	MetricCacheMisses    = "evict_cache_misses_total"
	MetricCacheEvictions = "evict_cache_evictions_total"
	MetricCacheSize      = "evict_cache_size"

	// Dataset metrics.
	MetricPageLoads   = "evict_page_loads_total"
	MetricDatasetRows = "evict_dataset_rows"
	MetricLoadSeconds = "evict_dataset_load_seconds"
)

// Collector defines the interface for collecting metrics.
type Collector interface {
	// IncCounter increments a counter metric by delta.
	IncCounter(name string, delta int64)

	// SetGauge sets a gauge metric to value.
	SetGauge(name string, value int64)

	// ObserveHistogram records a value in a histogram metric.
	ObserveHistogram(name string, value float64)
}
