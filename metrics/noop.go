package metrics

import "github.com/ygrebnov/stopwatch/unit"

// NoopProvider returns no-op instruments.
// All methods are safe for concurrent use and perform no work.
type NoopProvider struct{}

// NewNoopProvider constructs a Provider that discards all metrics.
func NewNoopProvider() NoopProvider { return NoopProvider{} }

func (NoopProvider) Gauge(_ string, opts ...InstrumentOption) Gauge {
	return noopGauge{unit: applyOptions(unit.Unary, opts).Unit}
}

func (NoopProvider) Counter(_ string, opts ...InstrumentOption) Counter {
	return noopCounter{unit: applyOptions(unit.Nanos, opts).Unit}
}

func (NoopProvider) List() []InstrumentEntry { return nil }

type noopGauge struct{ unit unit.Unit }

func (noopGauge) Increment(unit.Unit) {}
func (noopGauge) Decrement(unit.Unit) {}
func (noopGauge) Value() int64        { return 0 }
func (g noopGauge) Unit() unit.Unit   { return g.unit }

type noopCounter struct{ unit unit.Unit }

func (noopCounter) Add(int64, unit.Unit) error { return nil }
func (noopCounter) Snapshot() Snapshot         { return Snapshot{} }
func (c noopCounter) Unit() unit.Unit          { return c.unit }
