// Package stopwatch times code regions and attributes the timing, concurrency and
// outcome to a named monitor.
//
// Lifecycle
// A StopWatch starts running at construction and immediately increments the
// concurrency gauge of its monitor. It may be paused and resumed any number of
// times, then ends with exactly one of:
//   - Stop: the gauge is decremented, then the elapsed time (excluding pauses) is
//     added to the performance counter of the monitor.
//   - Cancel: the gauge is decremented; no duration is recorded.
//
// Once stopped or canceled a watch is terminal and further calls are no-ops, so
// several cleanup paths cannot double-count. IsStopped reports true for both
// terminal states; IsCanceled tells them apart.
//
// Scoped acquisition
// A watch never stopped nor canceled inflates the concurrency gauge forever.
// Prefer the scoped forms, which end the watch on every path including panics:
//   - Measure(ctx, m, fn): runs fn under a watch.
//   - Track(m): returns the watch and a completion function to defer.
//
// Constructors
//   - New(m): a watch with the default configuration.
//   - NewFactory(opts ...Option): a Factory with a custom clock, hooks variant,
//     leak detection or error policy.
//
// Defaults
//   - Clock: clock.System() (monotonic)
//   - Hooks: MonitorHooks (NoopHooks when the monitor is nil)
//   - LeakDetection: false
//   - CancelOnError: true
//
// Concurrency
// A StopWatch belongs to the goroutine performing the measured work and has no
// internal locking. The gauges and counters of a monitor are shared and are safe
// for concurrent use.
package stopwatch
