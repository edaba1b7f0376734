package stats

// Noop drops every metric. It is the default collector for caches and
// datasets built without WithStats.
type Noop struct{}

var _ Collector = Noop{}

// NewNoop returns a collector that records nothing.
func NewNoop() Noop { return Noop{} }

func (Noop) IncCounter(string, int64)         {}
func (Noop) SetGauge(string, int64)           {}
func (Noop) ObserveHistogram(string, float64) {}
