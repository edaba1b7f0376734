package evict

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/discochess/evict/internal/stats"
)

// recorder collects evicted keys in order.
type recorder struct {
	mu   sync.Mutex
	keys []string
}

func (r *recorder) onEvict(key string, _ int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys = append(r.keys, key)
}

func (r *recorder) evicted() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.keys...)
}

func newTestCache(t *testing.T, p Policy, capacity int) (*Cache[string, int], *recorder) {
	t.Helper()
	rec := &recorder{}
	c, err := NewWithEvict(rec.onEvict, WithPolicy(p), WithCapacity(capacity))
	if err != nil {
		t.Fatalf("NewWithEvict() error = %v", err)
	}
	return c, rec
}

func TestNew_Defaults(t *testing.T) {
	c, err := New[string, int]()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if c.Capacity() != DefaultCapacity {
		t.Errorf("Capacity() = %d, want %d", c.Capacity(), DefaultCapacity)
	}
	if c.Policy() != LRU {
		t.Errorf("Policy() = %q, want %q", c.Policy(), LRU)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func TestNew_InvalidCapacity(t *testing.T) {
	for _, p := range Policies() {
		for _, capacity := range []int{0, -1} {
			_, err := New[string, int](WithPolicy(p), WithCapacity(capacity))
			if !errors.Is(err, ErrInvalidCapacity) {
				t.Errorf("New(%s, %d) error = %v, want ErrInvalidCapacity", p, capacity, err)
			}
		}
	}
}

func TestNew_UnknownPolicy(t *testing.T) {
	_, err := New[string, int](WithPolicy("random"))
	if !errors.Is(err, ErrUnknownPolicy) {
		t.Errorf("New() error = %v, want ErrUnknownPolicy", err)
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		input   string
		want    Policy
		wantErr bool
	}{
		{"fifo", FIFO, false},
		{"LIFO", LIFO, false},
		{" Lfu ", LFU, false},
		{"lru", LRU, false},
		{"MRU", MRU, false},
		{"arc", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePolicy(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownPolicy) {
					t.Errorf("ParsePolicy(%q) error = %v, want ErrUnknownPolicy", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePolicy(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParsePolicy(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// op is one step of a cache scenario.
type op struct {
	get   bool
	key   string
	value int
}

func put(key string, value int) op { return op{key: key, value: value} }
func get(key string) op            { return op{get: true, key: key} }

func run(c *Cache[string, int], ops []op) {
	for _, o := range ops {
		if o.get {
			c.Get(o.key)
			continue
		}
		c.Put(o.key, o.value)
	}
}

func TestCache_Scenarios(t *testing.T) {
	tests := []struct {
		name        string
		policy      Policy
		ops         []op
		wantEvicted []string
		wantPresent map[string]int
	}{
		{
			name:        "fifo evicts oldest insertion",
			policy:      FIFO,
			ops:         []op{put("A", 1), put("B", 2), put("C", 3)},
			wantEvicted: []string{"A"},
			wantPresent: map[string]int{"B": 2, "C": 3},
		},
		{
			name:        "lifo evicts newest insertion",
			policy:      LIFO,
			ops:         []op{put("A", 1), put("B", 2), put("C", 3)},
			wantEvicted: []string{"B"},
			wantPresent: map[string]int{"A": 1, "C": 3},
		},
		{
			name:        "lru evicts least recently touched",
			policy:      LRU,
			ops:         []op{put("A", 1), put("B", 2), get("A"), put("C", 3)},
			wantEvicted: []string{"B"},
			wantPresent: map[string]int{"A": 1, "C": 3},
		},
		{
			name:        "mru evicts most recently touched",
			policy:      MRU,
			ops:         []op{put("A", 1), put("B", 2), get("B"), put("C", 3)},
			wantEvicted: []string{"B"},
			wantPresent: map[string]int{"A": 1, "C": 3},
		},
		{
			name:        "lfu evicts strictly lower frequency",
			policy:      LFU,
			ops:         []op{put("A", 1), put("B", 2), get("A"), put("C", 3)},
			wantEvicted: []string{"B"},
			wantPresent: map[string]int{"A": 1, "C": 3},
		},
		{
			name:        "lfu keeps the more frequent key on the next overflow",
			policy:      LFU,
			ops:         []op{put("A", 1), put("B", 2), get("A"), put("C", 3), put("D", 4)},
			wantEvicted: []string{"B", "C"},
			wantPresent: map[string]int{"A": 1, "D": 4},
		},
		{
			name:        "lfu breaks ties by least recent use",
			policy:      LFU,
			ops:         []op{put("A", 1), put("B", 2), get("B"), get("A"), put("C", 3)},
			wantEvicted: []string{"B"},
			wantPresent: map[string]int{"A": 1, "C": 3},
		},
		{
			name:        "lfu tie among fresh keys evicts earliest",
			policy:      LFU,
			ops:         []op{put("A", 1), put("B", 2), put("C", 3)},
			wantEvicted: []string{"A"},
			wantPresent: map[string]int{"B": 2, "C": 3},
		},
		{
			name:        "lifo re-put makes the key the next victim",
			policy:      LIFO,
			ops:         []op{put("A", 1), put("B", 2), put("A", 10), put("C", 3)},
			wantEvicted: []string{"A"},
			wantPresent: map[string]int{"B": 2, "C": 3},
		},
		{
			name:        "fifo re-put keeps insertion order",
			policy:      FIFO,
			ops:         []op{put("A", 1), put("B", 2), put("A", 10), put("C", 3)},
			wantEvicted: []string{"A"},
			wantPresent: map[string]int{"B": 2, "C": 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestCache(t, tt.policy, 2)
			run(c, tt.ops)

			if diff := cmp.Diff(tt.wantEvicted, rec.evicted()); diff != "" {
				t.Errorf("evicted mismatch (-want +got):\n%s", diff)
			}
			for _, key := range tt.wantEvicted {
				if _, stillThere := tt.wantPresent[key]; stillThere {
					continue
				}
				if _, ok := c.Get(key); ok {
					t.Errorf("Get(%q) should miss after eviction", key)
				}
			}
			for key, want := range tt.wantPresent {
				got, ok := c.Get(key)
				if !ok || got != want {
					t.Errorf("Get(%q) = %d, %v, want %d, true", key, got, ok, want)
				}
			}
		})
	}
}

// TestCache_ReferenceSequence runs the same capacity-4 workload through every
// policy and compares discards and final order.
func TestCache_ReferenceSequence(t *testing.T) {
	ops := []op{
		put("A", 1), put("B", 2), put("C", 3), put("D", 4),
		put("E", 5),
		get("B"),
		put("C", 30),
		put("F", 6),
		get("E"),
		put("G", 7),
	}

	tests := []struct {
		policy      Policy
		wantEvicted []string
		wantKeys    []string
	}{
		{FIFO, []string{"A", "B", "C"}, []string{"D", "E", "F", "G"}},
		{LIFO, []string{"D", "C", "F"}, []string{"A", "B", "E", "G"}},
		{LRU, []string{"A", "D", "B"}, []string{"C", "F", "E", "G"}},
		{MRU, []string{"D", "C", "E"}, []string{"A", "B", "F", "G"}},
		{LFU, []string{"A", "D", "F"}, []string{"G", "B", "C", "E"}},
	}

	for _, tt := range tests {
		t.Run(tt.policy.String(), func(t *testing.T) {
			c, rec := newTestCache(t, tt.policy, DefaultCapacity)
			run(c, ops)

			if diff := cmp.Diff(tt.wantEvicted, rec.evicted()); diff != "" {
				t.Errorf("evicted mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantKeys, c.Keys()); diff != "" {
				t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
			}
			if c.Len() != DefaultCapacity {
				t.Errorf("Len() = %d, want %d", c.Len(), DefaultCapacity)
			}
		})
	}
}

func TestCache_AbsentInputs(t *testing.T) {
	for _, p := range Policies() {
		t.Run(p.String(), func(t *testing.T) {
			c, err := New[string, *int](WithPolicy(p), WithCapacity(1))
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			one := 1
			c.Put("A", &one)

			c.Put("", &one)
			c.Put("B", nil)

			if c.Len() != 1 {
				t.Errorf("Len() = %d, want 1", c.Len())
			}
			if got, ok := c.Get("A"); !ok || got != &one {
				t.Errorf("Get(A) = %v, %v, want original value", got, ok)
			}
			if _, ok := c.Get(""); ok {
				t.Error("Get(\"\") should miss")
			}
			if c.Stats().Evictions != 0 {
				t.Errorf("Evictions = %d, want 0", c.Stats().Evictions)
			}
		})
	}
}

func TestCache_ZeroValueIsNotAbsent(t *testing.T) {
	c, err := New[string, int]()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	c.Put("zero", 0)
	if got, ok := c.Get("zero"); !ok || got != 0 {
		t.Errorf("Get(zero) = %d, %v, want 0, true", got, ok)
	}
}

func TestCache_RePutKeepsSize(t *testing.T) {
	for _, p := range Policies() {
		t.Run(p.String(), func(t *testing.T) {
			c, rec := newTestCache(t, p, 2)
			c.Put("A", 1)
			c.Put("B", 2)
			c.Put("A", 3)

			if c.Len() != 2 {
				t.Errorf("Len() = %d, want 2", c.Len())
			}
			if got, _ := c.Get("A"); got != 3 {
				t.Errorf("Get(A) = %d, want 3", got)
			}
			if len(rec.evicted()) != 0 {
				t.Errorf("evicted %v, want none", rec.evicted())
			}
		})
	}
}

func TestCache_PeekDoesNotTouch(t *testing.T) {
	c, rec := newTestCache(t, LRU, 2)
	c.Put("A", 1)
	c.Put("B", 2)

	if got, ok := c.Peek("A"); !ok || got != 1 {
		t.Errorf("Peek(A) = %d, %v, want 1, true", got, ok)
	}
	if !c.Contains("B") {
		t.Error("Contains(B) = false, want true")
	}
	c.Put("C", 3)

	if diff := cmp.Diff([]string{"A"}, rec.evicted()); diff != "" {
		t.Errorf("evicted mismatch (-want +got):\n%s", diff)
	}
	if s := c.Stats(); s.Hits != 0 || s.Misses != 0 {
		t.Errorf("Stats() = %+v, want no hits or misses", s)
	}
}

func TestCache_RemoveAndPurge(t *testing.T) {
	for _, p := range Policies() {
		t.Run(p.String(), func(t *testing.T) {
			c, rec := newTestCache(t, p, 2)
			c.Put("A", 1)
			c.Put("B", 2)

			if !c.Remove("A") {
				t.Error("Remove(A) = false, want true")
			}
			if c.Remove("A") {
				t.Error("second Remove(A) = true, want false")
			}

			// There is room again, so no eviction.
			c.Put("C", 3)
			if len(rec.evicted()) != 0 {
				t.Errorf("evicted %v, want none", rec.evicted())
			}
			if len(c.Keys()) != c.Len() {
				t.Errorf("len(Keys()) = %d, Len() = %d", len(c.Keys()), c.Len())
			}

			c.Purge()
			if c.Len() != 0 || len(c.Keys()) != 0 {
				t.Errorf("after Purge Len() = %d, Keys() = %v", c.Len(), c.Keys())
			}
			c.Put("D", 4)
			if got, ok := c.Get("D"); !ok || got != 4 {
				t.Errorf("Get(D) after Purge = %d, %v, want 4, true", got, ok)
			}
		})
	}
}

func TestCache_Stats(t *testing.T) {
	collector := stats.NewMemory()
	c, err := New[string, int](WithCapacity(1), WithStats(collector))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	c.Put("A", 1)
	c.Get("A")
	c.Get("B")
	c.Put("B", 2)

	s := c.Stats()
	want := Stats{Hits: 1, Misses: 1, Evictions: 1, Size: 1, Capacity: 1}
	if s != want {
		t.Errorf("Stats() = %+v, want %+v", s, want)
	}
	if s.HitRate() != 50 {
		t.Errorf("HitRate() = %v, want 50", s.HitRate())
	}

	if got := collector.Counter(stats.MetricCacheEvictions); got != 1 {
		t.Errorf("evictions metric = %d, want 1", got)
	}
	if got := collector.Counter(stats.MetricCacheHits); got != 1 {
		t.Errorf("hits metric = %d, want 1", got)
	}
	if got := collector.Gauge(stats.MetricCacheSize); got != 1 {
		t.Errorf("size metric = %d, want 1", got)
	}
}

func TestStats_HitRate(t *testing.T) {
	tests := []struct {
		name     string
		hits     int64
		misses   int64
		expected float64
	}{
		{"no requests", 0, 0, 0},
		{"all hits", 10, 0, 100},
		{"all misses", 0, 10, 0},
		{"75% hit rate", 3, 1, 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Stats{Hits: tt.hits, Misses: tt.misses}
			if got := s.HitRate(); got != tt.expected {
				t.Errorf("HitRate() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCache_LogsDiscard(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	c, err := New[string, int](
		WithPolicy(FIFO),
		WithCapacity(1),
		WithLogger(zap.New(core)),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	c.Put("A", 1)
	c.Put("B", 2)

	entries := logs.FilterMessage("discard").All()
	if len(entries) != 1 {
		t.Fatalf("logged %d discard entries, want 1", len(entries))
	}
	if got := entries[0].ContextMap()["key"]; got != "A" {
		t.Errorf("discard key = %v, want A", got)
	}
}

func TestCache_CallbackMayReenter(t *testing.T) {
	var c *Cache[string, int]
	var seen int
	c, err := NewWithEvict(func(key string, value int) {
		// The lock is released before callbacks run.
		seen = c.Len()
	}, WithCapacity(1))
	if err != nil {
		t.Fatalf("NewWithEvict() error = %v", err)
	}

	c.Put("A", 1)
	c.Put("B", 2)
	if seen != 1 {
		t.Errorf("Len() inside callback = %d, want 1", seen)
	}
}

func TestCache_ConcurrentAccess(t *testing.T) {
	for _, p := range Policies() {
		t.Run(p.String(), func(t *testing.T) {
			c, err := New[int, int](WithPolicy(p), WithCapacity(8))
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}

			var wg sync.WaitGroup
			for g := 0; g < 8; g++ {
				wg.Add(1)
				go func(g int) {
					defer wg.Done()
					for i := 1; i <= 500; i++ {
						key := (g*31+i)%20 + 1
						c.Put(key, i)
						c.Get(key - 1)
					}
				}(g)
			}
			wg.Wait()

			if c.Len() > c.Capacity() {
				t.Errorf("Len() = %d exceeds Capacity() = %d", c.Len(), c.Capacity())
			}
			if len(c.Keys()) != c.Len() {
				t.Errorf("len(Keys()) = %d, Len() = %d", len(c.Keys()), c.Len())
			}
		})
	}
}

func TestCache_SizeGaugeMatchesLen(t *testing.T) {
	for _, p := range Policies() {
		t.Run(p.String(), func(t *testing.T) {
			collector := stats.NewMemory()
			c, err := New[int, int](WithPolicy(p), WithCapacity(16), WithStats(collector))
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}

			var wg sync.WaitGroup
			for g := 0; g < 8; g++ {
				wg.Add(1)
				go func(g int) {
					defer wg.Done()
					for i := 1; i <= 300; i++ {
						key := (g*17+i)%24 + 1
						if i%3 == 0 {
							c.Remove(key)
						} else {
							c.Put(key, i)
						}
					}
				}(g)
			}
			wg.Wait()

			if got := collector.Gauge(stats.MetricCacheSize); got != int64(c.Len()) {
				t.Errorf("size gauge = %d, Len() = %d", got, c.Len())
			}
		})
	}
}
