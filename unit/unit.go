// Package unit defines the scale and dimension tags carried alongside numeric
// values recorded into gauges and counters.
//
// A gauge or counter is created with an explicit unit; values passed to it in
// another unit of the same dimension are converted, values of a different
// dimension are rejected with ErrIncompatible.
package unit

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
)

const Namespace = "unit"

var ErrIncompatible = errors.New(Namespace + ": incompatible units")

// Dimension groups units that can be converted into each other.
type Dimension string

const (
	Count Dimension = "count"
	Time  Dimension = "time"
)

// Unit is an immutable scale tag. Scale is expressed relative to the
// dimension's base unit (1 for Unary and Nanos).
type Unit struct {
	name      string
	dimension Dimension
	scale     int64
}

var (
	Unary   = Unit{name: "u", dimension: Count, scale: 1}
	Nanos   = Unit{name: "ns", dimension: Time, scale: 1}
	Micros  = Unit{name: "us", dimension: Time, scale: 1_000}
	Millis  = Unit{name: "ms", dimension: Time, scale: 1_000_000}
	Seconds = Unit{name: "s", dimension: Time, scale: 1_000_000_000}
)

// New creates a custom unit. scale must be positive.
func New(name string, dimension Dimension, scale int64) (Unit, error) {
	if scale <= 0 {
		return Unit{}, fmt.Errorf("%s: invalid scale %d for %q", Namespace, scale, name)
	}
	return Unit{name: name, dimension: dimension, scale: scale}, nil
}

func (u Unit) Name() string         { return u.name }
func (u Unit) Dimension() Dimension { return u.dimension }
func (u Unit) Scale() int64         { return u.scale }

// IsZero reports whether u is the zero Unit.
func (u Unit) IsZero() bool { return u.scale == 0 }

// Compatible reports whether values in u can be converted to other.
func (u Unit) Compatible(other Unit) bool {
	return !u.IsZero() && !other.IsZero() && u.dimension == other.dimension
}

func (u Unit) String() string { return u.name }

// Convert converts v expressed in from into to, computing v*from.Scale()/to.Scale()
// without intermediate overflow. The result is truncated toward zero and saturates
// when it does not fit in an int64.
func Convert(v int64, from, to Unit) (int64, error) {
	if !from.Compatible(to) {
		return 0, fmt.Errorf("%w: %s (%s) -> %s (%s)", ErrIncompatible, from, from.dimension, to, to.dimension)
	}
	if from.scale == to.scale {
		return v, nil
	}

	neg := v < 0
	mag := uint64(v)
	if neg {
		mag = -mag
	}
	hi, lo := bits.Mul64(mag, uint64(from.scale))
	div := uint64(to.scale)
	if hi >= div {
		return saturate(neg), nil
	}
	q, _ := bits.Div64(hi, lo, div)

	if neg {
		if q >= 1<<63 {
			return math.MinInt64, nil
		}
		return -int64(q), nil
	}
	if q > math.MaxInt64 {
		return math.MaxInt64, nil
	}
	return int64(q), nil
}

func saturate(neg bool) int64 {
	if neg {
		return math.MinInt64
	}
	return math.MaxInt64
}
