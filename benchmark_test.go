package stopwatch

import (
	"context"
	"testing"

	"github.com/ygrebnov/stopwatch/monitor"
)

func BenchmarkStopWatch(b *testing.B) {
	tests := []struct {
		name    string
		monitor monitor.Monitor
		drive   func(w *StopWatch)
	}{
		{"unbound_stop", nil, func(w *StopWatch) { w.Stop() }},
		{"bound_stop", monitor.New(monitor.NewKey("bench", "stop"), nil), func(w *StopWatch) { w.Stop() }},
		{"bound_cancel", monitor.New(monitor.NewKey("bench", "cancel"), nil), func(w *StopWatch) { w.Cancel() }},
		{"bound_pause_resume_stop", monitor.New(monitor.NewKey("bench", "pause"), nil), func(w *StopWatch) {
			w.Pause()
			w.Resume()
			w.Stop()
		}},
	}
	for _, test := range tests {
		b.Run(test.name, func(b *testing.B) {
			b.ReportAllocs()
			for range b.N {
				test.drive(New(test.monitor))
			}
		})
	}
}

func BenchmarkStopWatch_Parallel(b *testing.B) {
	m := monitor.New(monitor.NewKey("bench", "parallel"), nil)
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			New(m).Stop()
		}
	})
}

func BenchmarkMeasure(b *testing.B) {
	m := monitor.New(monitor.NewKey("bench", "measure"), nil)
	ctx := context.Background()
	fn := func(context.Context) error { return nil }
	b.ReportAllocs()
	for range b.N {
		_ = Measure(ctx, m, fn)
	}
}

func BenchmarkTrack(b *testing.B) {
	m := monitor.New(monitor.NewKey("bench", "track"), nil)
	b.ReportAllocs()
	for range b.N {
		func() {
			var err error
			_, done := Track(m)
			defer done(&err)
		}()
	}
}
