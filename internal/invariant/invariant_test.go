package invariant

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func TestReport_CustomHandler(t *testing.T) {
	var got []Violation
	restore := SetHandler(func(v Violation) { got = append(got, v) })
	defer restore()

	before := Count()
	Report("gauge went negative", logrus.Fields{"value": -1})

	require.Equal(t, before+1, Count())
	require.Len(t, got, 1)
	require.Equal(t, "gauge went negative", got[0].Message)
	require.Equal(t, -1, got[0].Fields["value"])
	require.Contains(t, got[0].String(), "value:-1")
}

func TestReport_DefaultHandler(t *testing.T) {
	restore := SetHandler(nil)
	defer restore()

	if FailFast() {
		require.Panics(t, func() { Report("boom", nil) })
		return
	}

	hook := test.NewGlobal()
	defer hook.Reset()

	Report("elapsed time is negative", logrus.Fields{"elapsed": -5})

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	require.Equal(t, logrus.WarnLevel, entry.Level)
	require.Equal(t, "elapsed time is negative", entry.Message)
	require.Equal(t, "invariant", entry.Data["prefix"])
}

func TestSetHandler_Restore(t *testing.T) {
	calls := 0
	restoreOuter := SetHandler(func(Violation) { calls++ })
	restoreInner := SetHandler(func(Violation) { calls += 10 })

	Report("inner", nil)
	restoreInner()
	Report("outer", nil)
	restoreOuter()

	require.Equal(t, 11, calls)
	require.Equal(t, "plain", Violation{Message: "plain"}.String())
}
