// Package monitor defines the named targets of measurement.
//
// A Monitor is identified by a Key and resolves metric names to gauges and
// counters. Stopwatches depend on exactly two of them, looked up by the
// well-known names Concurrency and Performances.
package monitor

import (
	"github.com/ygrebnov/stopwatch/metrics"
	"github.com/ygrebnov/stopwatch/unit"
)

const (
	// Concurrency names the gauge tracking in-flight executions.
	Concurrency = "concurrency"
	// Performances names the counter receiving one duration sample per completed execution.
	Performances = "performances"
)

// DefaultCategory is used for keys created without a category.
const DefaultCategory = "default"

// Key identifies a Monitor. It is comparable and can be used as a map key.
type Key struct {
	Name     string
	Category string
}

// NewKey creates a key, substituting DefaultCategory for an empty category.
func NewKey(name, category string) Key {
	if category == "" {
		category = DefaultCategory
	}
	return Key{Name: name, Category: category}
}

func (k Key) String() string { return k.Category + "/" + k.Name }

// Monitor is the capability surface stopwatches consume.
// The same name must resolve to the same instrument for the Monitor lifetime.
type Monitor interface {
	Key() Key
	Gauge(name string) metrics.Gauge
	Counter(name string) metrics.Counter
}

type monitor struct {
	key      Key
	provider metrics.Provider
}

// New creates a Monitor backed by provider. A nil provider uses a fresh metrics.BasicProvider.
// The concurrency gauge is created in unit.Unary and the performance counter in unit.Nanos.
func New(key Key, provider metrics.Provider) Monitor {
	if provider == nil {
		provider = metrics.NewBasicProvider()
	}
	m := &monitor{key: key, provider: provider}
	provider.Gauge(Concurrency, metrics.WithUnit(unit.Unary), metrics.WithDescription("in-flight executions"))
	provider.Counter(Performances, metrics.WithUnit(unit.Nanos), metrics.WithDescription("completed execution durations"))
	return m
}

func (m *monitor) Key() Key { return m.key }

func (m *monitor) Gauge(name string) metrics.Gauge { return m.provider.Gauge(name) }

func (m *monitor) Counter(name string) metrics.Counter { return m.provider.Counter(name) }

// Instruments lists the monitor instruments when its provider supports inspection.
func (m *monitor) Instruments() []metrics.InstrumentEntry {
	if in, ok := m.provider.(metrics.Inspector); ok {
		return in.List()
	}
	return nil
}

// Snapshot is a read view of the two well-known metrics of a Monitor.
type Snapshot struct {
	Key          Key
	Concurrency  int64
	Performances metrics.Snapshot
	// Unit of the Performances sums.
	Unit unit.Unit
}

// Take reads the well-known metrics of m.
func Take(m Monitor) Snapshot {
	c := m.Counter(Performances)
	// Stop decrements the gauge before adding the sample, so reading in the
	// reverse order never shows a sample whose execution is still in flight.
	perf := c.Snapshot()
	return Snapshot{
		Key:          m.Key(),
		Concurrency:  m.Gauge(Concurrency).Value(),
		Performances: perf,
		Unit:         c.Unit(),
	}
}

// Instruments lists every instrument of m, or nil when m does not support inspection.
func Instruments(m Monitor) []metrics.InstrumentEntry {
	if in, ok := m.(interface {
		Instruments() []metrics.InstrumentEntry
	}); ok {
		return in.Instruments()
	}
	return nil
}
