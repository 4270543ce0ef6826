// Package invariant reports conditions that can only arise from a defect in the
// measurement core or in an aggregation target, never from caller misuse.
//
// In builds tagged debug, and in race-detector builds, a violation panics so tests
// fail at the offending call. Otherwise it is logged and execution continues.
package invariant

import (
	"fmt"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("prefix", "invariant")

// Violation describes one broken invariant.
type Violation struct {
	Message string
	Fields  logrus.Fields
}

func (v Violation) String() string {
	if len(v.Fields) == 0 {
		return v.Message
	}
	return fmt.Sprintf("%s %v", v.Message, v.Fields)
}

// Handler receives violations.
type Handler func(Violation)

var (
	handler atomic.Pointer[Handler]
	count   atomic.Int64
)

func defaultHandler(v Violation) {
	if failFast {
		panic("invariant violated: " + v.String())
	}
	log.WithFields(v.Fields).Warn(v.Message)
}

// Report records a violation and hands it to the current handler.
func Report(msg string, fields logrus.Fields) {
	count.Add(1)
	v := Violation{Message: msg, Fields: fields}
	if h := handler.Load(); h != nil {
		(*h)(v)
		return
	}
	defaultHandler(v)
}

// Count returns the number of violations reported since process start.
func Count() int64 { return count.Load() }

// SetHandler replaces the violation handler and returns a function restoring the previous one.
// A nil h restores the default behavior.
func SetHandler(h Handler) (restore func()) {
	var p *Handler
	if h != nil {
		p = &h
	}
	prev := handler.Swap(p)
	return func() { handler.Store(prev) }
}

// FailFast reports whether the default handler panics in this build.
func FailFast() bool { return failFast }
