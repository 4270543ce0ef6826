package stopwatch_test

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/ygrebnov/stopwatch"
	"github.com/ygrebnov/stopwatch/clock"
	"github.com/ygrebnov/stopwatch/monitor"
)

// ExampleFactory_Start drives a watch by hand with a manual clock.
// The 50ns pause is excluded from the recorded duration.
func ExampleFactory_Start() {
	c := clock.NewManual(0)
	f, err := stopwatch.NewFactory(stopwatch.WithClock(c))
	if err != nil {
		fmt.Println(err)
		return
	}
	m := monitor.New(monitor.NewKey("checkout", "http"), nil)

	w := f.Start(m)
	_ = c.Set(100)
	w.Pause()
	_ = c.Set(150)
	w.Resume()
	_ = c.Set(300)
	w.Stop()

	fmt.Println(w)
	snap := monitor.Take(m)
	fmt.Println(snap.Concurrency, snap.Performances.Count, snap.Performances.Sum)
	// Output:
	// Execution for http/checkout stopped after 250ns
	// 0 1 250
}

// ExampleMeasure shows that a failed execution is canceled: the gauge is
// balanced but no duration is recorded.
func ExampleMeasure() {
	m := monitor.New(monitor.NewKey("load", "db"), nil)

	err := stopwatch.Measure(context.Background(), m, func(context.Context) error {
		return errors.New("connection refused")
	})
	fmt.Println(err)

	snap := monitor.Take(m)
	fmt.Println(snap.Concurrency, snap.Performances.Count)
	// Output:
	// connection refused
	// 0 0
}

// ExampleTrack measures a whole function body. done must be deferred directly.
func ExampleTrack() {
	m := monitor.New(monitor.NewKey("parse", "jobs"), nil)

	parse := func(s string) (n int, err error) {
		_, done := stopwatch.Track(m)
		defer done(&err)
		return strconv.Atoi(s)
	}

	_, _ = parse("42")
	_, _ = parse("forty-two")

	snap := monitor.Take(m)
	fmt.Println(snap.Concurrency, snap.Performances.Count)
	// Output:
	// 0 1
}

// ExampleMeasureValue returns the measured function result.
func ExampleMeasureValue() {
	m := monitor.New(monitor.NewKey("sum", "math"), nil)

	n, err := stopwatch.MeasureValue(context.Background(), nil, m, func(context.Context) (int, error) {
		return 1 + 2, nil
	})
	fmt.Println(n, err)
	// Output:
	// 3 <nil>
}

// ExampleWithCancelOnError records failed executions as ordinary samples.
func ExampleWithCancelOnError() {
	f, _ := stopwatch.NewFactory(stopwatch.WithCancelOnError(false))
	m := monitor.New(monitor.NewKey("retry", "jobs"), nil)

	_ = f.Measure(context.Background(), m, func(context.Context) error {
		return errors.New("transient")
	})

	fmt.Println(monitor.Take(m).Performances.Count)
	// Output:
	// 1
}

// ExampleWithHooks combines the default monitor accounting with a custom hook.
func ExampleWithHooks() {
	c := clock.NewManual(0)
	f, _ := stopwatch.NewFactory(
		stopwatch.WithClock(c),
		stopwatch.WithHooks(func(m monitor.Monitor) stopwatch.Hooks {
			return stopwatch.Chain(
				stopwatch.MonitorHooks(m),
				stopwatch.HookFuncs{Stop: func(d time.Duration) { fmt.Println("took", d) }},
			)
		}),
	)

	w := f.Start(nil)
	_, _ = c.Advance(1500)
	w.Stop()
	// Output:
	// took 1.5µs
}

// Example_repository shares monitors by key across callers.
func Example_repository() {
	repo, _ := monitor.NewRepository()

	for range 3 {
		stopwatch.New(repo.Get(monitor.NewKey("render", "tmpl"))).Stop()
	}
	stopwatch.New(repo.Get(monitor.NewKey("render", "tmpl"))).Cancel()

	for _, s := range repo.Snapshots() {
		fmt.Println(s.Key, s.Concurrency, s.Performances.Count)
	}
	// Output:
	// tmpl/render 0 3
}
