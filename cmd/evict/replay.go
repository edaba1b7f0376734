package main

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/discochess/evict"
	"github.com/discochess/evict/benchmark/trace"
	"github.com/discochess/evict/internal/stats"
	statslogger "github.com/discochess/evict/internal/stats/logger"
	statsprom "github.com/discochess/evict/internal/stats/prometheus"
)

var replayCmd = &cobra.Command{
	Use:   "replay [trace]",
	Short: "Replay a trace through one cache",
	Long: `Replay a trace file through a single cache, printing every eviction.

Each eviction prints "DISCARD: <key>". Gets print the value or "miss", and
the final cache contents are printed in the policy's eviction order.
Without a trace file, the built-in reference sequence is replayed.

Trace lines are "put <key> <value>", "get <key>" or "remove <key>". Files
ending in .zst or .gz are decompressed. When a file holds several traces
separated by "---", each one runs against a fresh cache.

Examples:
  # Reference sequence, MRU
  evict replay --policy mru

  # Log metrics while replaying a compressed trace
  evict replay --stats log -v workload.trace.zst

  # Print Prometheus metrics after the replay
  evict replay --stats prometheus workload.trace`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReplay,
}

var statsMode string

func init() {
	replayCmd.Flags().StringVar(&statsMode, "stats", "none", "metrics collection: none, log, prometheus")
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	policy, err := evict.ParsePolicy(policyName)
	if err != nil {
		return err
	}

	traces := []trace.Trace{trace.Reference()}
	if len(args) == 1 {
		traces, err = trace.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading trace: %w", err)
		}
		if len(traces) == 0 {
			return fmt.Errorf("no operations found in %s", args[0])
		}
	}

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	var (
		collector stats.Collector = stats.NewNoop()
		registry  *prometheus.Registry
	)
	switch statsMode {
	case "none":
	case "log":
		collector = statslogger.New(logger)
	case "prometheus":
		registry = prometheus.NewRegistry()
		collector = statsprom.New(registry, statsprom.WithConstLabels(prometheus.Labels{"policy": policy.String()}))
	default:
		return fmt.Errorf("unknown stats mode %q (want none, log or prometheus)", statsMode)
	}

	out := cmd.OutOrStdout()
	for i, t := range traces {
		if len(traces) > 1 {
			fmt.Fprintf(out, "== trace %d ==\n", i+1)
		}
		if err := replay(out, t, policy, collector, logger); err != nil {
			return err
		}
	}

	if registry != nil {
		return writeMetrics(out, registry)
	}
	return nil
}

func replay(w io.Writer, t trace.Trace, policy evict.Policy, collector stats.Collector, logger *zap.Logger) error {
	cache, err := evict.NewWithEvict(func(key, _ string) {
		fmt.Fprintf(w, "DISCARD: %s\n", key)
	},
		evict.WithPolicy(policy),
		evict.WithCapacity(capacity),
		evict.WithStats(collector),
		evict.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	for _, op := range t {
		switch op.Kind {
		case trace.Put:
			cache.Put(op.Key, op.Value)
		case trace.Get:
			if v, ok := cache.Get(op.Key); ok {
				fmt.Fprintf(w, "GET %s: %s\n", op.Key, v)
			} else {
				fmt.Fprintf(w, "GET %s: miss\n", op.Key)
			}
		case trace.Remove:
			cache.Remove(op.Key)
		}
	}

	fmt.Fprintf(w, "Current cache (%s, %d/%d):\n", policy, cache.Len(), cache.Capacity())
	for _, key := range cache.Keys() {
		v, _ := cache.Peek(key)
		fmt.Fprintf(w, "%s: %s\n", key, v)
	}
	st := cache.Stats()
	fmt.Fprintf(w, "Hits: %d  Misses: %d  Evictions: %d  Hit rate: %.1f%%\n",
		st.Hits, st.Misses, st.Evictions, st.HitRate())
	return nil
}

func writeMetrics(w io.Writer, registry *prometheus.Registry) error {
	families, err := registry.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}
	return nil
}
