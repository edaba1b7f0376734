package trace

import (
	"math/rand/v2"
	"strconv"
)

// Reference returns the sequence used to tell the policies apart at
// capacity 4: every policy evicts a different set of keys.
func Reference() Trace {
	return Trace{
		{Kind: Put, Key: "A", Value: "Hello"},
		{Kind: Put, Key: "B", Value: "World"},
		{Kind: Put, Key: "C", Value: "Holberton"},
		{Kind: Put, Key: "D", Value: "School"},
		{Kind: Put, Key: "E", Value: "Battery"},
		{Kind: Get, Key: "B"},
		{Kind: Put, Key: "C", Value: "Street"},
		{Kind: Put, Key: "F", Value: "Mission"},
		{Kind: Get, Key: "E"},
		{Kind: Put, Key: "G", Value: "San Francisco"},
	}
}

// Config controls synthetic trace generation.
type Config struct {
	Traces int     // Number of traces.
	Ops    int     // Operations per trace.
	Keys   uint64  // Size of the key space.
	Skew   float64 // Zipf exponent, must be > 1.
	Reads  float64 // Fraction of gets, in [0, 1].
	Seed   uint64
}

// DefaultConfig returns a moderately skewed, read-heavy workload.
func DefaultConfig() Config {
	return Config{
		Traces: 30,
		Ops:    500,
		Keys:   64,
		Skew:   1.2,
		Reads:  0.7,
		Seed:   1,
	}
}

// Generate returns cfg.Traces traces whose keys follow a Zipf distribution.
// A get of a key that was never put is kept: it is a compulsory miss.
// The same Config always yields the same traces.
func Generate(cfg Config) []Trace {
	if cfg.Skew <= 1 {
		cfg.Skew = 1.01
	}
	if cfg.Keys == 0 {
		cfg.Keys = 1
	}
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	traces := make([]Trace, 0, cfg.Traces)

	for i := 0; i < cfg.Traces; i++ {
		zipf := rand.NewZipf(rng, cfg.Skew, 1, cfg.Keys-1)
		t := make(Trace, 0, cfg.Ops)
		for j := 0; j < cfg.Ops; j++ {
			key := "k" + strconv.FormatUint(zipf.Uint64(), 10)
			if rng.Float64() < cfg.Reads {
				t = append(t, Op{Kind: Get, Key: key})
			} else {
				t = append(t, Op{Kind: Put, Key: key, Value: strconv.Itoa(j)})
			}
		}
		traces = append(traces, t)
	}
	return traces
}
