package simulation

import (
	"sort"
)

// Metrics contains computed metrics from simulation results.
type Metrics struct {
	// Core metrics.
	TotalOps  int
	Gets      int
	Evictions int
	HitRate   float64

	// Distribution of per-trace hit rates.
	MeanHitRate   float64
	MedianHitRate float64
	P10HitRate    float64
	MinHitRate    float64
	MaxHitRate    float64

	// EvictionsPerOp is the fraction of operations that evicted an entry.
	EvictionsPerOp float64
}

// ComputeMetrics computes detailed metrics from aggregate results.
func ComputeMetrics(result *AggregateResult) *Metrics {
	m := &Metrics{
		TotalOps:  result.TotalOps,
		Gets:      result.Gets,
		Evictions: result.Evictions,
		HitRate:   result.HitRate(),
	}

	if n := len(result.HitRatePerTrace); n > 0 {
		sorted := make([]float64, n)
		copy(sorted, result.HitRatePerTrace)
		sort.Float64s(sorted)

		var sum float64
		for _, v := range sorted {
			sum += v
		}
		m.MeanHitRate = sum / float64(n)
		m.MinHitRate = sorted[0]
		m.MaxHitRate = sorted[n-1]
		m.MedianHitRate = percentile(sorted, 50)
		m.P10HitRate = percentile(sorted, 10)
	}

	if result.TotalOps > 0 {
		m.EvictionsPerOp = float64(result.Evictions) / float64(result.TotalOps)
	}

	return m
}

func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(float64(len(sorted)-1) * p / 100)
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// MetricsComparison holds the differences between two policies' metrics.
type MetricsComparison struct {
	Policy1 string
	Policy2 string

	HitRateDiff    float64 // Positive means Policy1 hits more often.
	HitRateDiffPct float64
	EvictionsDiff  int
}

// Compare compares two metrics and returns the differences.
func Compare(m1, m2 *Metrics, name1, name2 string) *MetricsComparison {
	return &MetricsComparison{
		Policy1:        name1,
		Policy2:        name2,
		HitRateDiff:    m1.HitRate - m2.HitRate,
		HitRateDiffPct: safeDiffPct(m1.HitRate, m2.HitRate),
		EvictionsDiff:  m1.Evictions - m2.Evictions,
	}
}

func safeDiffPct(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return (a - b) / b * 100
}
