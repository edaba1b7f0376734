package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/discochess/evict"
)

var (
	// Global flags.
	policyName string
	capacity   int
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "evict",
	Short: "Bounded in-memory caches with pluggable eviction policies",
	Long: `evict replays cache access traces through FIFO, LIFO, LFU, LRU and MRU
caches, compares the policies' hit rates and serves cached pages of CSV
datasets.

Examples:
  # Replay the reference sequence through an LFU cache of 4 entries
  evict replay --policy lfu

  # Compare every policy on synthetic Zipf traces
  evict compare --capacity 16

  # Fetch page 3 of a dataset through an LRU page cache
  evict page --source ./data --object names.csv --page 3 --size 10`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&policyName, "policy", "p", evict.LRU.String(), "eviction policy: fifo, lifo, lfu, lru, mru")
	rootCmd.PersistentFlags().IntVarP(&capacity, "capacity", "c", evict.DefaultCapacity, "maximum number of cache entries")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// newLogger returns a development logger with --verbose and a no-op one otherwise.
func newLogger() (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	return logger, nil
}
