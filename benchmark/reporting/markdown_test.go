package reporting

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/discochess/evict"
	"github.com/discochess/evict/benchmark/analysis"
	"github.com/discochess/evict/benchmark/simulation"
)

func TestMarkdownReport_Header(t *testing.T) {
	var buf bytes.Buffer
	r := NewMarkdownReport(&buf)
	r.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	r.WriteHeader("Policy Comparison")

	want := "# Policy Comparison\n\nGenerated: 2026-01-02T03:04:05Z\n\n"
	if buf.String() != want {
		t.Errorf("WriteHeader() = %q, want %q", buf.String(), want)
	}
}

func TestMarkdownReport_SummaryTable(t *testing.T) {
	var buf bytes.Buffer
	r := NewMarkdownReport(&buf)

	results := map[evict.Policy]*simulation.AggregateResult{
		evict.LRU: {Policy: evict.LRU, Gets: 4, Hits: 3, Misses: 1, Evictions: 2, HitRatePerTrace: []float64{75}},
		evict.MRU: {Policy: evict.MRU, Gets: 4, Hits: 1, Misses: 3, Evictions: 5, HitRatePerTrace: []float64{25}},
	}
	r.WriteSummaryTable([]evict.Policy{evict.MRU, evict.FIFO, evict.LRU}, results)

	var rows []string
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.HasPrefix(line, "| lru") || strings.HasPrefix(line, "| mru") {
			rows = append(rows, line)
		}
	}
	want := []string{
		"| mru | 25.0% | 25.0% | 25.0% | 1 | 3 | 5 |",
		"| lru | 75.0% | 75.0% | 75.0% | 3 | 1 | 2 |",
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("summary rows mismatch (-want +got):\n%s", diff)
	}
}

func TestMarkdownReport_Comparison(t *testing.T) {
	r1 := &simulation.AggregateResult{Policy: evict.LFU, HitRatePerTrace: []float64{70, 72, 71, 73, 74, 70, 72, 71}}
	r2 := &simulation.AggregateResult{Policy: evict.FIFO, HitRatePerTrace: []float64{30, 32, 31, 33, 34, 30, 32, 31}}
	comp := analysis.ComparePolicies(r1, r2, 200, 0.95)

	var buf bytes.Buffer
	NewMarkdownReport(&buf).WriteComparison(comp)
	out := buf.String()

	for _, want := range []string{
		"## lfu vs fifo",
		"| Metric | lfu | fifo |",
		"95% CI for mean difference",
		"**lfu** has a significantly higher hit rate than fifo",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("WriteComparison() output missing %q:\n%s", want, out)
		}
	}
}

func TestMakeHistogram(t *testing.T) {
	got := makeHistogram([]float64{0, 5, 10, 55, 99.9, 100, -1})
	want := []int{3, 1, 0, 0, 0, 1, 0, 0, 0, 2}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("makeHistogram() mismatch (-want +got):\n%s", diff)
	}
}
