// Package main provides the evict CLI tool for replaying access traces
// through bounded caches and comparing eviction policies.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
