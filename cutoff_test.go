package incr_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	incr "github.com/wcharczuk/incrgraph"
)

func TestCutoffSwallowsSmallChanges(t *testing.T) {
	e := incr.NewEngine()
	v := incr.Var(e, 100)
	baseline := 100
	cut := incr.Cutoff(e, v.Watch(), func(latest int) bool {
		diff := latest - baseline
		if diff < 0 {
			diff = -diff
		}
		propagate := diff >= 10
		if propagate {
			baseline = latest
		}
		return propagate
	})
	calls := 0
	downstream := incr.Map(e, cut, func(x int) int {
		calls++
		return x
	})

	obs := incr.Observe(e, downstream)
	defer obs.Unobserve()

	require.Equal(t, 100, obs.Value())
	require.Equal(t, 1, calls)

	v.Set(105) // within epsilon, cutoff swallows it
	require.Equal(t, 100, obs.Value())
	require.Equal(t, 1, calls)

	v.Set(200) // outside epsilon, propagates
	require.Equal(t, 200, obs.Value())
	require.Equal(t, 2, calls)
}

// TestCutoffS2 mirrors the end-to-end cutoff scenario: a fresh value whose
// absolute value is below 10 is suppressed, a value at or above 10 passes
// through.
func TestCutoffS2(t *testing.T) {
	e := incr.NewEngine()
	v := incr.Var(e, int32(0))
	c := incr.Cutoff(e, v.Watch(), func(x int32) bool {
		if x < 0 {
			x = -x
		}
		return x >= 10
	})
	n := incr.Map(e, c, func(x int32) int32 { return x + 1 })

	obs := incr.Observe(e, n)
	defer obs.Unobserve()

	require.Equal(t, int32(1), obs.Value())

	v.Set(5)
	require.Equal(t, int32(1), obs.Value())

	v.Set(11)
	require.Equal(t, int32(12), obs.Value())
}
