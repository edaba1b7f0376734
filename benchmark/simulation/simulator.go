// Package simulation replays access traces against eviction policies.
package simulation

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/discochess/evict"
	"github.com/discochess/evict/benchmark/trace"
)

// Simulator replays traces against a set of policies at a fixed capacity.
type Simulator struct {
	policies []evict.Policy
	capacity int
}

// NewSimulator creates a new Simulator with the given policies.
// With no policies, all of them are simulated.
func NewSimulator(capacity int, policies ...evict.Policy) *Simulator {
	if len(policies) == 0 {
		policies = evict.Policies()
	}
	return &Simulator{
		policies: policies,
		capacity: capacity,
	}
}

// Policies returns the simulated policies in order.
func (s *Simulator) Policies() []evict.Policy {
	return s.policies
}

// Capacity returns the simulated cache capacity.
func (s *Simulator) Capacity() int {
	return s.capacity
}

// TraceResult is the outcome of replaying one trace with one policy.
type TraceResult struct {
	Policy    evict.Policy
	Gets      int
	Hits      int
	Misses    int
	Evicted   []string // Keys in eviction order.
	FinalKeys []string // Keys left in the cache, in policy order.
}

// HitRate returns the percentage of gets that hit.
func (r *TraceResult) HitRate() float64 {
	if r.Gets == 0 {
		return 0
	}
	return float64(r.Hits) / float64(r.Gets) * 100
}

// Replay runs t through a fresh cache with the given policy and capacity.
// onEvict, if not nil, is called for every evicted key.
func Replay(t trace.Trace, policy evict.Policy, capacity int, onEvict func(key string)) (*TraceResult, error) {
	result := &TraceResult{Policy: policy}

	cache, err := evict.NewWithEvict(func(key, _ string) {
		result.Evicted = append(result.Evicted, key)
		if onEvict != nil {
			onEvict(key)
		}
	}, evict.WithPolicy(policy), evict.WithCapacity(capacity))
	if err != nil {
		return nil, err
	}

	for _, op := range t {
		switch op.Kind {
		case trace.Put:
			cache.Put(op.Key, op.Value)
		case trace.Get:
			result.Gets++
			if _, ok := cache.Get(op.Key); ok {
				result.Hits++
			} else {
				result.Misses++
			}
		case trace.Remove:
			cache.Remove(op.Key)
		}
	}

	result.FinalKeys = cache.Keys()
	return result, nil
}

// SimulateTrace replays a single trace against every policy.
func (s *Simulator) SimulateTrace(t trace.Trace) (map[evict.Policy]*TraceResult, error) {
	results := make(map[evict.Policy]*TraceResult, len(s.policies))
	for _, p := range s.policies {
		r, err := Replay(t, p, s.capacity, nil)
		if err != nil {
			return nil, err
		}
		results[p] = r
	}
	return results, nil
}

// SimulateTraces replays every trace against every policy and aggregates
// the results. Policies are simulated concurrently.
func (s *Simulator) SimulateTraces(ctx context.Context, traces []trace.Trace) (map[evict.Policy]*AggregateResult, error) {
	var mu sync.Mutex
	results := make(map[evict.Policy]*AggregateResult, len(s.policies))

	g, ctx := errgroup.WithContext(ctx)
	for _, p := range s.policies {
		g.Go(func() error {
			agg := &AggregateResult{
				Policy:          p,
				HitRatePerTrace: make([]float64, 0, len(traces)),
			}
			for _, t := range traces {
				if err := ctx.Err(); err != nil {
					return err
				}
				r, err := Replay(t, p, s.capacity, nil)
				if err != nil {
					return err
				}
				agg.TotalOps += len(t)
				agg.Gets += r.Gets
				agg.Hits += r.Hits
				agg.Misses += r.Misses
				agg.Evictions += len(r.Evicted)
				agg.HitRatePerTrace = append(agg.HitRatePerTrace, r.HitRate())
			}

			mu.Lock()
			results[p] = agg
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// AggregateResult contains results for one policy across many traces.
type AggregateResult struct {
	Policy          evict.Policy
	TotalOps        int
	Gets            int
	Hits            int
	Misses          int
	Evictions       int
	HitRatePerTrace []float64 // Per-trace hit rates for statistical analysis.
}

// HitRate returns the overall percentage of gets that hit.
func (a *AggregateResult) HitRate() float64 {
	if a.Gets == 0 {
		return 0
	}
	return float64(a.Hits) / float64(a.Gets) * 100
}
