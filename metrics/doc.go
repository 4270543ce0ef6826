// Package metrics defines the aggregation targets updated by stopwatches:
// Gauge (instantaneous concurrency) and Counter (count, sum, min and max of
// completed durations), plus an in-memory Provider creating them by name.
//
// Gauges and counters are the shared mutable state of the measurement core and
// are safe for concurrent use without caller coordination. Every value carries
// a unit.Unit; counters reject negative samples with ErrNegativeValue.
package metrics
