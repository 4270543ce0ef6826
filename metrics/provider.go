package metrics

import (
	"errors"

	"github.com/ygrebnov/stopwatch/unit"
)

const Namespace = "metrics"

// ErrNegativeValue is returned by Counter.Add for negative samples.
// Elapsed durations cannot be negative, so a negative sample is always rejected rather than clamped.
var ErrNegativeValue = errors.New(Namespace + ": negative value")

// Provider constructs instruments by name.
// Implementations must be safe for concurrent use and must return the same
// instance for the same name for their whole lifetime.
//
// Keep this interface minimal and stable. If you need new capabilities later,
// introduce separate optional interfaces rather than expanding this surface.
type Provider interface {
	Gauge(name string, opts ...InstrumentOption) Gauge
	Counter(name string, opts ...InstrumentOption) Counter
}

// Gauge is an instantaneous value that moves up and down (e.g., current in-flight executions).
// Methods must be safe for concurrent use; concurrent updates are never lost.
type Gauge interface {
	// Increment adds the unary equivalent of u, converted to the gauge unit.
	Increment(u unit.Unit)
	// Decrement subtracts the unary equivalent of u, converted to the gauge unit.
	Decrement(u unit.Unit)
	Value() int64
	Unit() unit.Unit
}

// Counter is an append-only aggregate of samples.
// Methods must be safe for concurrent use; concurrent samples are never lost.
type Counter interface {
	// Add records one sample. It fails with ErrNegativeValue for negative values
	// and with unit.ErrIncompatible when u cannot be converted to the counter unit.
	Add(value int64, u unit.Unit) error
	Snapshot() Snapshot
	Unit() unit.Unit
}

// Snapshot is an immutable view of a Counter. Sum, Min, Max and Mean are expressed in the counter unit.
type Snapshot struct {
	Count int64
	Sum   int64
	Min   int64
	Max   int64
	Mean  float64
}

type InstrumentType string

const (
	InstrumentTypeGauge   InstrumentType = "gauge"
	InstrumentTypeCounter InstrumentType = "counter"
)

// InstrumentConfig carries instrument metadata.
// Unit is binding: it is the unit values are stored in. Description is advisory.
type InstrumentConfig struct {
	Description string
	Unit        unit.Unit
}

// InstrumentOption mutates InstrumentConfig.
type InstrumentOption func(*InstrumentConfig)

// WithDescription sets an advisory description for the instrument.
func WithDescription(desc string) InstrumentOption {
	return func(c *InstrumentConfig) { c.Description = desc }
}

// WithUnit sets the unit the instrument stores values in.
// Gauges default to unit.Unary, counters to unit.Nanos.
func WithUnit(u unit.Unit) InstrumentOption {
	return func(c *InstrumentConfig) { c.Unit = u }
}

// applyOptions builds InstrumentConfig from options on top of the given default unit.
func applyOptions(def unit.Unit, opts []InstrumentOption) InstrumentConfig {
	cfg := InstrumentConfig{Unit: def}
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}
	if cfg.Unit.IsZero() {
		cfg.Unit = def
	}
	return cfg
}

// ApplyOptions is applyOptions for Provider implementations living outside this package.
func ApplyOptions(def unit.Unit, opts ...InstrumentOption) InstrumentConfig {
	return applyOptions(def, opts)
}
