// Package clock provides the monotonic nanosecond time sources used by stopwatches.
//
// Values returned by a Clock are only meaningful when subtracted from each other;
// they are not correlated with wall-clock time.
package clock

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"
)

const Namespace = "clock"

var ErrBackwards = errors.New(Namespace + ": monotonic clock cannot move backwards")

// Clock returns a monotonically non-decreasing count of nanoseconds since an
// arbitrary epoch. Implementations must be safe for concurrent use.
type Clock interface {
	Now() int64
}

// Func adapts a plain function to Clock.
type Func func() int64

func (f Func) Now() int64 { return f() }

type system struct {
	base time.Time
}

// Now uses the monotonic reading embedded in base, so wall-clock jumps do not affect it.
func (s system) Now() int64 { return int64(time.Since(s.base)) }

var systemClock = system{base: time.Now()}

// System returns the process-wide monotonic clock.
func System() Clock { return systemClock }

// Manual is a deterministic clock advanced explicitly by the caller.
// It is safe for concurrent use.
type Manual struct {
	now atomic.Int64
}

// NewManual creates a Manual clock reading start.
func NewManual(start int64) *Manual {
	m := &Manual{}
	m.now.Store(start)
	return m
}

func (m *Manual) Now() int64 { return m.now.Load() }

// Set moves the clock to t. Moving backwards returns ErrBackwards and leaves the clock unchanged.
func (m *Manual) Set(t int64) error {
	for {
		cur := m.now.Load()
		if t < cur {
			return fmt.Errorf("%w: %d < %d", ErrBackwards, t, cur)
		}
		if m.now.CompareAndSwap(cur, t) {
			return nil
		}
	}
}

// Advance moves the clock forward by d and returns the new reading.
// Negative durations are rejected with ErrBackwards.
func (m *Manual) Advance(d time.Duration) (int64, error) {
	if d < 0 {
		return m.Now(), fmt.Errorf("%w: advance by %s", ErrBackwards, d)
	}
	return m.now.Add(int64(d)), nil
}
