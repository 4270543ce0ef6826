package monitor

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"

	"github.com/ygrebnov/stopwatch/metrics"
	"github.com/ygrebnov/stopwatch/unit"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNew_WellKnownInstruments(t *testing.T) {
	m := New(NewKey("checkout", ""), nil)
	require.Equal(t, Key{Name: "checkout", Category: DefaultCategory}, m.Key())
	require.Equal(t, "default/checkout", m.Key().String())

	g := m.Gauge(Concurrency)
	require.Same(t, g, m.Gauge(Concurrency))
	require.Equal(t, unit.Unary, g.Unit())

	c := m.Counter(Performances)
	require.Same(t, c, m.Counter(Performances))
	require.Equal(t, unit.Nanos, c.Unit())

	g.Increment(unit.Unary)
	require.NoError(t, c.Add(3, unit.Micros))

	s := Take(m)
	require.Equal(t, int64(1), s.Concurrency)
	require.Equal(t, int64(1), s.Performances.Count)
	require.Equal(t, int64(3000), s.Performances.Sum)
	require.Equal(t, unit.Nanos, s.Unit)

	entries := Instruments(m)
	require.Len(t, entries, 2)
	require.Equal(t, "completed execution durations", entries[0].Config.Description)
}

func TestNew_NoopProvider(t *testing.T) {
	m := New(NewKey("quiet", "jobs"), metrics.NewNoopProvider())
	m.Gauge(Concurrency).Increment(unit.Unary)
	require.Zero(t, Take(m).Concurrency)
	require.Nil(t, Instruments(m))
}

func TestNewRepository_Options(t *testing.T) {
	tests := []struct {
		name    string
		opts    []RepositoryOption
		wantErr bool
	}{
		{name: "defaults"},
		{name: "nil option ignored", opts: []RepositoryOption{nil}},
		{name: "power of two shards", opts: []RepositoryOption{WithShards(4)}},
		{name: "single shard", opts: []RepositoryOption{WithShards(1)}},
		{name: "zero shards", opts: []RepositoryOption{WithShards(0)}, wantErr: true},
		{name: "non power of two", opts: []RepositoryOption{WithShards(6)}, wantErr: true},
		{name: "nil provider func", opts: []RepositoryOption{WithProviderFunc(nil)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRepository(tt.opts...)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidConfig)
				require.Nil(t, r)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, r)
		})
	}
}

func TestRepository_GetLookupRemove(t *testing.T) {
	r, err := NewRepository(WithShards(2))
	require.NoError(t, err)

	k := NewKey("db.query", "sql")
	_, ok := r.Lookup(k)
	require.False(t, ok)

	m := r.Get(k)
	require.Same(t, m, r.Get(k))
	found, ok := r.Lookup(k)
	require.True(t, ok)
	require.Same(t, m, found)

	r.Get(NewKey("a", "http"))
	r.Get(NewKey("b", "http"))
	require.Equal(t, 3, r.Len())

	keys := make([]string, 0, 3)
	for _, mon := range r.Monitors() {
		keys = append(keys, mon.Key().String())
	}
	require.Equal(t, []string{"http/a", "http/b", "sql/db.query"}, keys)
	require.Len(t, r.Snapshots(), 3)

	require.True(t, r.Remove(k))
	require.False(t, r.Remove(k))
	require.NotSame(t, m, r.Get(k))

	r.Reset()
	require.Zero(t, r.Len())
}

func TestRepository_ProviderFunc(t *testing.T) {
	var mu sync.Mutex
	calls := map[Key]int{}
	r, err := NewRepository(WithProviderFunc(func(k Key) metrics.Provider {
		mu.Lock()
		calls[k]++
		mu.Unlock()
		return metrics.NewBasicProvider()
	}))
	require.NoError(t, err)

	k := NewKey("x", "y")
	r.Get(k)
	r.Get(k)
	require.Equal(t, 1, calls[k])
}

func TestRepository_ConcurrentGet(t *testing.T) {
	r, err := NewRepository()
	require.NoError(t, err)

	const goroutines = 32
	got := make([]Monitor, goroutines)
	var g errgroup.Group
	for i := 0; i < goroutines; i++ {
		g.Go(func() error {
			m := r.Get(NewKey("shared", "race"))
			m.Gauge(Concurrency).Increment(unit.Unary)
			got[i] = m
			return nil
		})
	}
	require.NoError(t, g.Wait())

	for i := 1; i < goroutines; i++ {
		require.Same(t, got[0], got[i])
	}
	require.Equal(t, int64(goroutines), Take(got[0]).Concurrency)
}

// stopAfterRead applies a full stop (gauge decrement, then sample) right after
// its value is read, the way a concurrent Stop could land between two reads.
type stopAfterRead struct {
	metrics.Gauge
	counter metrics.Counter
	once    sync.Once
}

func (g *stopAfterRead) Value() int64 {
	v := g.Gauge.Value()
	g.once.Do(func() {
		g.Gauge.Decrement(unit.Unary)
		_ = g.counter.Add(250, unit.Nanos)
	})
	return v
}

type interleavedMonitor struct {
	Monitor
	gauge metrics.Gauge
}

func (m interleavedMonitor) Gauge(name string) metrics.Gauge {
	if name == Concurrency {
		return m.gauge
	}
	return m.Monitor.Gauge(name)
}

func TestTake_StopBetweenReads(t *testing.T) {
	base := New(NewKey("interleaved", "test"), nil)
	base.Gauge(Concurrency).Increment(unit.Unary)
	m := interleavedMonitor{
		Monitor: base,
		gauge:   &stopAfterRead{Gauge: base.Gauge(Concurrency), counter: base.Counter(Performances)},
	}

	s := Take(m)
	require.False(t, s.Concurrency == 1 && s.Performances.Count == 1,
		"sample visible while its execution is still in flight: %+v", s)
	require.Equal(t, int64(1), s.Concurrency)
	require.Equal(t, int64(0), s.Performances.Count)

	after := Take(base)
	require.Equal(t, int64(0), after.Concurrency)
	require.Equal(t, int64(1), after.Performances.Count)
}

func TestTake_ConsistentUnderConcurrentStops(t *testing.T) {
	const executions = 2000
	m := New(NewKey("consistent", "test"), nil)
	g := m.Gauge(Concurrency)
	c := m.Counter(Performances)

	var (
		eg   errgroup.Group
		done = make(chan struct{})
	)
	for i := 0; i < 8; i++ {
		eg.Go(func() error {
			for j := 0; j < executions/8; j++ {
				g.Increment(unit.Unary)
				g.Decrement(unit.Unary)
				if err := c.Add(int64(j), unit.Nanos); err != nil {
					return err
				}
			}
			return nil
		})
	}

	var readErr error
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
			}
			s := Take(m)
			if s.Concurrency+s.Performances.Count > executions {
				readErr = fmt.Errorf("inconsistent snapshot: %+v", s)
				return
			}
		}
	}()

	require.NoError(t, eg.Wait())
	close(done)
	wg.Wait()
	require.NoError(t, readErr)
	require.Equal(t, int64(executions), Take(m).Performances.Count)
}
