package stopwatch

import (
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ygrebnov/stopwatch/clock"
	"github.com/ygrebnov/stopwatch/internal/invariant"
	"github.com/ygrebnov/stopwatch/monitor"
)

// State is the position of a StopWatch in its state machine.
type State int

const (
	Running State = iota
	Paused
	Stopped
	Canceled
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Stopped:
		return "stopped"
	case Canceled:
		return "canceled"
	default:
		return "State(" + strconv.Itoa(int(s)) + ")"
	}
}

// StopWatch times one execution attempt and reports it through its Hooks.
//
// A StopWatch is driven by a single goroutine; it has no internal locking.
// Many stopwatches may share one Monitor concurrently. Every StopWatch must end
// with exactly one effective Stop or Cancel, otherwise the concurrency gauge of
// its monitor stays inflated; Track and Measure guarantee this structurally.
// Redundant or out-of-state calls are no-ops.
type StopWatch struct {
	// noCopy prevents accidental copying of a running watch.
	//go:nocopy
	nc noCopy

	clock   clock.Clock
	monitor monitor.Monitor
	hooks   Hooks
	leak    *leakState

	startedAt int64
	// stoppedAt holds the pause instant while paused and the termination instant once terminal.
	stoppedAt  int64
	pauseDelay int64

	stopped  bool
	paused   bool
	canceled bool
}

// noCopy is a vet-recognized marker to discourage copying types with this field embedded.
// It works with the "-copylocks" analyzer via the presence of Lock/Unlock methods.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// New starts a StopWatch bound to m with the default configuration.
// A nil m is valid and disables monitoring.
func New(m monitor.Monitor) *StopWatch { return defaultFactory.Start(m) }

// Start creates a running StopWatch bound to m (which may be nil).
// The zero Factory is usable: it falls back to the system clock and MonitorHooks.
// The concurrency accounting of m starts here, before Start returns.
func (f *Factory) Start(m monitor.Monitor) *StopWatch {
	c, hooksFn := f.config.Clock, f.config.Hooks
	if c == nil {
		c = clock.System()
	}
	if hooksFn == nil {
		hooksFn = MonitorHooks
	}
	w := &StopWatch{
		clock:   c,
		monitor: m,
		hooks:   hooksFn(m),
	}
	if w.hooks == nil {
		w.hooks = NoopHooks{}
	}
	if f.config.LeakDetection {
		watchLeaks(w)
	}
	w.startedAt = w.clock.Now()
	w.hooks.OnStart()
	return w
}

// Elapsed returns the measured time excluding pauses. While running it is measured
// against the clock; while paused or once terminal it is frozen.
func (w *StopWatch) Elapsed() time.Duration {
	end := w.stoppedAt
	if !w.stopped && !w.paused {
		end = w.clock.Now()
	}
	e := end - w.startedAt - w.pauseDelay
	if e < 0 {
		invariant.Report("elapsed time is negative", logrus.Fields{
			"elapsed":     e,
			"started_at":  w.startedAt,
			"pause_delay": w.pauseDelay,
		})
		return 0
	}
	return time.Duration(e)
}

// Pause suspends time accounting. It is a no-op unless running.
func (w *StopWatch) Pause() {
	if w.paused || w.stopped {
		return
	}
	w.stoppedAt = w.clock.Now()
	w.paused = true
}

// Resume restarts time accounting. It is a no-op unless paused.
func (w *StopWatch) Resume() {
	if !w.paused || w.stopped {
		return
	}
	w.pauseDelay += w.clock.Now() - w.stoppedAt
	w.paused = false
	w.stoppedAt = 0
}

// Stop ends a normal execution: the concurrency gauge is decremented, then the
// elapsed time is recorded. It is a no-op once stopped or canceled.
func (w *StopWatch) Stop() {
	if !w.terminate(false) {
		return
	}
	w.hooks.OnStop(w.Elapsed())
}

// Cancel ends an execution that is not representative of normal cost: the
// concurrency gauge is decremented and no duration is recorded.
// It is a no-op once stopped or canceled.
func (w *StopWatch) Cancel() {
	if !w.terminate(true) {
		return
	}
	w.hooks.OnCancel()
}

// StopWith calls Cancel when canceled is true and Stop otherwise.
func (w *StopWatch) StopWith(canceled bool) {
	if canceled {
		w.Cancel()
		return
	}
	w.Stop()
}

// terminate applies the terminal transition and reports whether it was the first one.
// An in-progress pause is folded into the pause delay.
func (w *StopWatch) terminate(canceled bool) bool {
	if w.stopped {
		return false
	}
	now := w.clock.Now()
	if w.paused {
		w.pauseDelay += now - w.stoppedAt
		w.paused = false
	}
	w.stoppedAt = now
	w.stopped = true
	w.canceled = canceled
	if w.leak != nil {
		w.leak.done.Store(true)
	}
	return true
}

// IsStopped reports whether the watch is terminal, through Stop or Cancel.
func (w *StopWatch) IsStopped() bool { return w.stopped }

// IsCanceled reports whether the watch was terminated through Cancel.
func (w *StopWatch) IsCanceled() bool { return w.canceled }

func (w *StopWatch) IsPaused() bool { return w.paused }

func (w *StopWatch) State() State {
	switch {
	case w.canceled:
		return Canceled
	case w.stopped:
		return Stopped
	case w.paused:
		return Paused
	default:
		return Running
	}
}

// Monitor returns the bound monitor, or nil.
func (w *StopWatch) Monitor() monitor.Monitor { return w.monitor }

// String describes the watch for diagnostics, e.g. "Execution for http/checkout stopped after 250ns".
func (w *StopWatch) String() string {
	var b strings.Builder
	if w.monitor != nil {
		b.WriteString("Execution for ")
		b.WriteString(w.monitor.Key().String())
		b.WriteByte(' ')
	}
	state := w.State()
	b.WriteString(state.String())
	if state == Running {
		b.WriteString(" for ")
	} else {
		b.WriteString(" after ")
	}
	b.WriteString(strconv.FormatInt(int64(w.Elapsed()), 10))
	b.WriteString("ns")
	return b.String()
}
