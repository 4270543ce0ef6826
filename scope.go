package stopwatch

import (
	"context"
	"fmt"

	"github.com/ygrebnov/stopwatch/monitor"
)

// Track starts a StopWatch and returns it with its completion function, which
// must be deferred directly:
//
//	func handle() (err error) {
//		_, done := f.Track(m)
//		defer done(&err)
//		...
//	}
//
// done stops the watch on success and cancels it when *errp is non-nil (unless
// the factory is configured WithCancelOnError(false)). When the surrounding
// function panics, done cancels the watch and re-panics with the same value.
// errp may be nil. Calling done more than once has no further effect.
//
// done cannot tell a runtime.Goexit unwind (t.FailNow, for instance) from a
// normal return, so such an exit is recorded as a success. Use Measure for
// functions that may call runtime.Goexit.
func (f *Factory) Track(m monitor.Monitor) (*StopWatch, func(errp *error)) {
	w := f.Start(m)
	return w, func(errp *error) {
		if r := recover(); r != nil {
			w.Cancel()
			panic(r)
		}
		failed := errp != nil && *errp != nil
		w.StopWith(failed && f.config.CancelOnError)
	}
}

// Measure runs fn under a StopWatch bound to m.
//
//   - fn returns nil: the watch is stopped and its duration recorded.
//   - fn returns an error: the watch is canceled (or stopped, WithCancelOnError(false)) and the error returned.
//   - fn panics: the watch is canceled and the panic is returned wrapped in ErrPanicked.
//   - fn calls runtime.Goexit: the watch is canceled before the goroutine exits.
//   - ctx is already done: fn is not called, no watch is started, ErrCanceled is returned.
func (f *Factory) Measure(ctx context.Context, m monitor.Monitor, fn func(context.Context) error) error {
	_, err := MeasureValue(ctx, f, m, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

// MeasureValue is Measure for functions returning a result.
// A nil f uses Default().
func MeasureValue[T any](ctx context.Context, f *Factory, m monitor.Monitor, fn func(context.Context) (T, error)) (result T, err error) {
	if f == nil {
		f = defaultFactory
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return result, fmt.Errorf("%w: %w", ErrCanceled, ctxErr)
	}

	w := f.Start(m)
	completed := false
	defer func() {
		if completed {
			return
		}
		// fn panicked or called runtime.Goexit.
		w.Cancel()
		if ePanic := recover(); ePanic != nil {
			var zero T
			result, err = zero, fmt.Errorf("%w: %v", ErrPanicked, ePanic)
		}
	}()

	result, err = fn(ctx)
	completed = true
	w.StopWith(err != nil && f.config.CancelOnError)
	return result, err
}

// Track is Default().Track.
func Track(m monitor.Monitor) (*StopWatch, func(errp *error)) { return defaultFactory.Track(m) }

// Measure is Default().Measure.
func Measure(ctx context.Context, m monitor.Monitor, fn func(context.Context) error) error {
	return defaultFactory.Measure(ctx, m, fn)
}
