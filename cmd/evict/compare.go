package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/discochess/evict"
	"github.com/discochess/evict/benchmark/analysis"
	"github.com/discochess/evict/benchmark/reporting"
	"github.com/discochess/evict/benchmark/simulation"
	"github.com/discochess/evict/benchmark/trace"
)

var compareCmd = &cobra.Command{
	Use:   "compare [trace]",
	Short: "Compare eviction policies on a set of traces",
	Long: `compare replays every trace against each policy at the same capacity and
reports hit rates with a statistical comparison against a baseline policy.

Without a trace file, synthetic traces with Zipf-distributed keys are
generated from the --traces, --ops, --keys, --skew, --reads and --seed flags.

Examples:
  # Compare all policies on synthetic traces
  evict compare --capacity 16

  # Compare LRU and LFU on recorded traces, as a markdown report
  evict compare --policies lru,lfu --format markdown --output report.md traces.zst`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCompare,
}

var (
	policyNames  []string
	baselineName string
	outputFormat string
	outputFile   string
	bootstrapN   int
	genConfig    = trace.DefaultConfig()
)

func init() {
	compareCmd.Flags().StringSliceVar(&policyNames, "policies", nil, "policies to compare (default: all)")
	compareCmd.Flags().StringVar(&baselineName, "baseline", "", "baseline policy for statistical comparison (default: first policy)")
	compareCmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format: text, markdown")
	compareCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default: stdout)")
	compareCmd.Flags().IntVar(&bootstrapN, "bootstrap", 10000, "bootstrap iterations")
	compareCmd.Flags().IntVar(&genConfig.Traces, "traces", genConfig.Traces, "synthetic traces to generate")
	compareCmd.Flags().IntVar(&genConfig.Ops, "ops", genConfig.Ops, "operations per synthetic trace")
	compareCmd.Flags().Uint64Var(&genConfig.Keys, "keys", genConfig.Keys, "distinct keys in synthetic traces")
	compareCmd.Flags().Float64Var(&genConfig.Skew, "skew", genConfig.Skew, "Zipf exponent of synthetic traces (> 1)")
	compareCmd.Flags().Float64Var(&genConfig.Reads, "reads", genConfig.Reads, "fraction of gets in synthetic traces")
	compareCmd.Flags().Uint64Var(&genConfig.Seed, "seed", genConfig.Seed, "random seed for synthetic traces")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	policies, err := parsePolicies(policyNames)
	if err != nil {
		return err
	}
	baseline := policies[0]
	if baselineName != "" {
		if baseline, err = evict.ParsePolicy(baselineName); err != nil {
			return err
		}
		if !slices.Contains(policies, baseline) {
			return fmt.Errorf("baseline %s is not among the compared policies %v", baseline, policies)
		}
	}

	var traces []trace.Trace
	source := "synthetic"
	if len(args) == 1 {
		source = args[0]
		traces, err = trace.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading traces: %w", err)
		}
	} else {
		traces = trace.Generate(genConfig)
	}
	if len(traces) == 0 {
		return fmt.Errorf("no traces found in %s", source)
	}

	var ops int
	for _, t := range traces {
		ops += len(t)
	}
	logger.Info("simulating",
		zap.String("source", source),
		zap.Int("traces", len(traces)),
		zap.Int("ops", ops),
		zap.Int("capacity", capacity),
		zap.Stringers("policies", policies),
	)

	sim := simulation.NewSimulator(capacity, policies...)
	results, err := sim.SimulateTraces(context.Background(), traces)
	if err != nil {
		return fmt.Errorf("simulating: %w", err)
	}

	multi := analysis.CompareAll(results, policies, baseline, bootstrapN, 0.95)

	var output io.Writer = cmd.OutOrStdout()
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	switch outputFormat {
	case "markdown":
		writeMarkdownReport(output, len(traces), ops, policies, results, multi)
	case "text":
		writeTextReport(output, len(traces), ops, policies, results, multi)
	default:
		return fmt.Errorf("unknown output format %q (want text or markdown)", outputFormat)
	}
	return nil
}

// parsePolicies resolves policy names; no names selects every policy.
func parsePolicies(names []string) ([]evict.Policy, error) {
	if len(names) == 0 {
		return evict.Policies(), nil
	}
	policies := make([]evict.Policy, 0, len(names))
	seen := make(map[evict.Policy]bool, len(names))
	for _, name := range names {
		p, err := evict.ParsePolicy(name)
		if err != nil {
			return nil, err
		}
		if !seen[p] {
			seen[p] = true
			policies = append(policies, p)
		}
	}
	return policies, nil
}

func writeTextReport(w io.Writer, traces, ops int, policies []evict.Policy, results map[evict.Policy]*simulation.AggregateResult, multi *analysis.MultiPolicyComparison) {
	fmt.Fprintf(w, "Eviction Policy Comparison\n")
	fmt.Fprintf(w, "==========================\n\n")
	fmt.Fprintf(w, "Traces:   %d\n", traces)
	fmt.Fprintf(w, "Ops:      %d\n", ops)
	fmt.Fprintf(w, "Capacity: %d\n\n", capacity)

	fmt.Fprintf(w, "Results:\n")
	fmt.Fprintf(w, "--------\n\n")

	for _, p := range policies {
		res := results[p]
		metrics := simulation.ComputeMetrics(res)
		fmt.Fprintf(w, "%s:\n", p)
		fmt.Fprintf(w, "  Hit rate:        %.1f%%\n", metrics.HitRate)
		fmt.Fprintf(w, "  Median/trace:    %.1f%%\n", metrics.MedianHitRate)
		fmt.Fprintf(w, "  P10/trace:       %.1f%%\n", metrics.P10HitRate)
		fmt.Fprintf(w, "  Hits/misses:     %d/%d\n", res.Hits, res.Misses)
		fmt.Fprintf(w, "  Evictions:       %d (%.3f per op)\n\n", res.Evictions, metrics.EvictionsPerOp)
	}

	if multi != nil && len(multi.Comparisons) > 0 {
		fmt.Fprintf(w, "Statistical Analysis (baseline %s):\n", multi.Baseline)
		fmt.Fprintf(w, "%s\n\n", strings.Repeat("-", 34+len(multi.Baseline)))
		for _, comp := range multi.Comparisons {
			fmt.Fprintln(w, comp.Summary())
			fmt.Fprintln(w)
		}
	}
}

func writeMarkdownReport(w io.Writer, traces, ops int, policies []evict.Policy, results map[evict.Policy]*simulation.AggregateResult, multi *analysis.MultiPolicyComparison) {
	report := reporting.NewMarkdownReport(w)
	report.WriteHeader("Eviction Policy Comparison")
	report.WriteMethodology(traces, ops, capacity)
	report.WriteSummaryTable(policies, results)

	for _, p := range policies {
		report.WriteDistributionChart(p.String(), results[p].HitRatePerTrace)
	}

	if multi != nil {
		for _, comp := range multi.Comparisons {
			report.WriteComparison(comp)
		}
	}

	report.WriteFooter()
}
