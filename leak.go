package stopwatch

import (
	"runtime"
	"sync/atomic"
)

var leaked atomic.Int64

type leakState struct {
	monitor string
	done    atomic.Bool
}

// watchLeaks warns when w is reclaimed while neither stopped nor canceled.
// The check runs after the fact: the concurrency gauge of the monitor stays inflated.
func watchLeaks(w *StopWatch) {
	st := &leakState{}
	if w.monitor != nil {
		st.monitor = w.monitor.Key().String()
	}
	w.leak = st
	runtime.AddCleanup(w, reportLeak, st)
}

func reportLeak(st *leakState) {
	if st.done.Load() {
		return
	}
	leaked.Add(1)
	if st.monitor == "" {
		return
	}
	log.WithField("monitor", st.monitor).Warnf(
		"Execution for %s was not stopped properly, concurrency accounting is now wrong. "+
			"Use Track or Measure, or defer Stop/Cancel, to avoid this warning", st.monitor,
	)
}

// Leaked returns how many leak-detected stopwatches were reclaimed without Stop or Cancel.
func Leaked() int64 { return leaked.Load() }
