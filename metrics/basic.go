package metrics

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/ygrebnov/stopwatch/internal/invariant"
	"github.com/ygrebnov/stopwatch/unit"
)

// BasicProvider is a simple in-memory implementation of Provider and Inspector.
// It is concurrency-safe and is the default backing store of monitors.
// Instruments are created on demand by name and reused for the same name.
type BasicProvider struct {
	mu       sync.RWMutex
	gauges   map[string]*BasicGauge
	counters map[string]*BasicCounter
	meta     map[string]InstrumentConfig
}

// NewBasicProvider constructs a new BasicProvider.
func NewBasicProvider() *BasicProvider {
	return &BasicProvider{
		gauges:   make(map[string]*BasicGauge),
		counters: make(map[string]*BasicCounter),
		meta:     make(map[string]InstrumentConfig),
	}
}

func metaKey(t InstrumentType, name string) string { return string(t) + ":" + name }

// Gauge returns the gauge instrument for the given name (created once).
// Options are only applied on creation.
func (p *BasicProvider) Gauge(name string, opts ...InstrumentOption) Gauge {
	p.mu.RLock()
	g, ok := p.gauges[name]
	if ok {
		p.mu.RUnlock()
		return g
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()
	// re-check after acquiring write lock
	if g, ok = p.gauges[name]; ok {
		return g
	}
	cfg := applyOptions(unit.Unary, opts)
	p.meta[metaKey(InstrumentTypeGauge, name)] = cfg
	g = NewBasicGauge(name, cfg.Unit)
	p.gauges[name] = g
	return g
}

// Counter returns the counter instrument for the given name (created once).
// Options are only applied on creation.
func (p *BasicProvider) Counter(name string, opts ...InstrumentOption) Counter {
	p.mu.RLock()
	c, ok := p.counters[name]
	if ok {
		p.mu.RUnlock()
		return c
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()
	if c, ok = p.counters[name]; ok {
		return c
	}
	cfg := applyOptions(unit.Nanos, opts)
	p.meta[metaKey(InstrumentTypeCounter, name)] = cfg
	c = NewBasicCounter(cfg.Unit)
	p.counters[name] = c
	return c
}

// List returns all instruments with their current values, sorted by type then name.
func (p *BasicProvider) List() []InstrumentEntry {
	p.mu.RLock()
	entries := make([]InstrumentEntry, 0, len(p.gauges)+len(p.counters))
	for name, g := range p.gauges {
		entries = append(entries, InstrumentEntry{
			Type:   InstrumentTypeGauge,
			Name:   name,
			Config: p.meta[metaKey(InstrumentTypeGauge, name)],
			Value:  g.Value(),
		})
	}
	for name, c := range p.counters {
		entries = append(entries, InstrumentEntry{
			Type:     InstrumentTypeCounter,
			Name:     name,
			Config:   p.meta[metaKey(InstrumentTypeCounter, name)],
			Snapshot: c.Snapshot(),
		})
	}
	p.mu.RUnlock()

	slices.SortFunc(entries, func(a, b InstrumentEntry) int {
		if c := strings.Compare(string(a.Type), string(b.Type)); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return entries
}

// BasicGauge is a thread-safe gauge backed by an atomic integer.
type BasicGauge struct {
	name string
	unit unit.Unit
	val  atomic.Int64
}

// NewBasicGauge creates a gauge storing values in u (unit.Unary when u is zero).
func NewBasicGauge(name string, u unit.Unit) *BasicGauge {
	if u.IsZero() {
		u = unit.Unary
	}
	return &BasicGauge{name: name, unit: u}
}

func (g *BasicGauge) Increment(u unit.Unit) {
	d, ok := g.delta(u)
	if !ok {
		return
	}
	g.val.Add(d)
}

func (g *BasicGauge) Decrement(u unit.Unit) {
	d, ok := g.delta(u)
	if !ok {
		return
	}
	if v := g.val.Add(-d); v < 0 {
		invariant.Report("gauge went negative", logrus.Fields{"gauge": g.name, "value": v})
	}
}

func (g *BasicGauge) delta(u unit.Unit) (int64, bool) {
	d, err := unit.Convert(1, u, g.unit)
	if err != nil {
		invariant.Report("gauge update with incompatible unit", logrus.Fields{"gauge": g.name, "error": err})
		return 0, false
	}
	return d, true
}

// Value returns the current value.
func (g *BasicGauge) Value() int64 { return g.val.Load() }

func (g *BasicGauge) Unit() unit.Unit { return g.unit }

// BasicCounter is a thread-safe aggregate tracking count, sum, min and max.
// It does not maintain buckets.
type BasicCounter struct {
	unit unit.Unit

	mu    sync.Mutex
	count int64
	sum   int64
	min   int64
	max   int64
}

// NewBasicCounter creates a counter storing values in u (unit.Nanos when u is zero).
func NewBasicCounter(u unit.Unit) *BasicCounter {
	if u.IsZero() {
		u = unit.Nanos
	}
	return &BasicCounter{unit: u}
}

// Add records a sample.
func (c *BasicCounter) Add(value int64, u unit.Unit) error {
	v, err := unit.Convert(value, u, c.unit)
	if err != nil {
		return err
	}
	if v < 0 {
		return fmt.Errorf("%w: %d%s", ErrNegativeValue, value, u)
	}

	c.mu.Lock()
	if c.count == 0 {
		// initialize min/max on first record
		c.min, c.max = v, v
	} else {
		if v < c.min {
			c.min = v
		}
		if v > c.max {
			c.max = v
		}
	}
	c.count++
	c.sum += v
	c.mu.Unlock()
	return nil
}

// Snapshot returns a copy of the counter state at the time of call.
func (c *BasicCounter) Snapshot() Snapshot {
	c.mu.Lock()
	s := Snapshot{Count: c.count, Sum: c.sum, Min: c.min, Max: c.max}
	c.mu.Unlock()
	if s.Count > 0 {
		s.Mean = float64(s.Sum) / float64(s.Count)
	}
	return s
}

func (c *BasicCounter) Unit() unit.Unit { return c.unit }
