package stopwatch

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ygrebnov/stopwatch/internal/invariant"
	"github.com/ygrebnov/stopwatch/monitor"
	"github.com/ygrebnov/stopwatch/unit"
)

// Hooks receives the side effects of StopWatch transitions.
// OnStart is called exactly once, at construction. At most one of OnStop and
// OnCancel is called, exactly once, at the terminal transition.
// Hooks run on the goroutine driving the StopWatch.
type Hooks interface {
	OnStart()
	OnStop(elapsed time.Duration)
	OnCancel()
}

type monitorHooks struct {
	m monitor.Monitor
}

// MonitorHooks returns the default variant: it keeps the concurrency gauge of m
// balanced and records one performance sample per stopped execution.
// A nil m yields NoopHooks.
func MonitorHooks(m monitor.Monitor) Hooks {
	if m == nil {
		return NoopHooks{}
	}
	return monitorHooks{m: m}
}

func (h monitorHooks) OnStart() {
	h.m.Gauge(monitor.Concurrency).Increment(unit.Unary)
}

// OnStop decrements the gauge before recording the sample, so an observer never
// sees the duration while the execution is still counted as in flight.
func (h monitorHooks) OnStop(elapsed time.Duration) {
	h.m.Gauge(monitor.Concurrency).Decrement(unit.Unary)
	if err := h.m.Counter(monitor.Performances).Add(int64(elapsed), unit.Nanos); err != nil {
		invariant.Report("performance counter rejected sample", logrus.Fields{
			"monitor": h.m.Key().String(),
			"elapsed": int64(elapsed),
			"error":   err,
		})
	}
}

func (h monitorHooks) OnCancel() {
	h.m.Gauge(monitor.Concurrency).Decrement(unit.Unary)
}

// NoopHooks is the variant of unbound stopwatches.
type NoopHooks struct{}

func (NoopHooks) OnStart()             {}
func (NoopHooks) OnStop(time.Duration) {}
func (NoopHooks) OnCancel()            {}

// HookFuncs adapts plain functions to Hooks. Nil fields are skipped.
type HookFuncs struct {
	Start  func()
	Stop   func(elapsed time.Duration)
	Cancel func()
}

func (h HookFuncs) OnStart() {
	if h.Start != nil {
		h.Start()
	}
}

func (h HookFuncs) OnStop(elapsed time.Duration) {
	if h.Stop != nil {
		h.Stop(elapsed)
	}
}

func (h HookFuncs) OnCancel() {
	if h.Cancel != nil {
		h.Cancel()
	}
}

type chain []Hooks

// Chain calls every hook in order for each event.
func Chain(hooks ...Hooks) Hooks {
	c := make(chain, 0, len(hooks))
	for _, h := range hooks {
		if h != nil {
			c = append(c, h)
		}
	}
	return c
}

func (c chain) OnStart() {
	for _, h := range c {
		h.OnStart()
	}
}

func (c chain) OnStop(elapsed time.Duration) {
	for _, h := range c {
		h.OnStop(elapsed)
	}
}

func (c chain) OnCancel() {
	for _, h := range c {
		h.OnCancel()
	}
}

// LogHooks logs terminal transitions at debug level.
func LogHooks(m monitor.Monitor) Hooks {
	entry := log
	if m != nil {
		entry = log.WithField("monitor", m.Key().String())
	}
	return HookFuncs{
		Stop: func(elapsed time.Duration) {
			entry.WithField("elapsed", elapsed).Debug("Execution stopped")
		},
		Cancel: func() {
			entry.Debug("Execution canceled")
		},
	}
}
