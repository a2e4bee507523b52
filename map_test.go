package incr_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	incr "github.com/wcharczuk/incrgraph"
)

func TestMapRecomputesOnInputChange(t *testing.T) {
	e := incr.NewEngine()
	v := incr.Var(e, 2)
	doubled := incr.Map(e, v.Watch(), func(x int) int { return x * 2 })

	obs := incr.Observe(e, doubled)
	defer obs.Unobserve()

	require.Equal(t, 4, obs.Value())

	v.Set(5)
	require.Equal(t, 10, obs.Value())
}

func TestMapCutsOffWhenOutputUnchanged(t *testing.T) {
	e := incr.NewEngine()
	v := incr.Var(e, 3)
	parity := incr.Map(e, v.Watch(), func(x int) int { return x % 2 })
	calls := 0
	downstream := incr.Map(e, parity, func(x int) int {
		calls++
		return x + 100
	})

	obs := incr.Observe(e, downstream)
	defer obs.Unobserve()

	require.Equal(t, 101, obs.Value())
	require.Equal(t, 1, calls)

	v.Set(5) // still odd: parity output unchanged, downstream should not recompute
	require.Equal(t, 101, obs.Value())
	require.Equal(t, 1, calls)

	v.Set(4) // now even: parity output changes, downstream recomputes
	require.Equal(t, 100, obs.Value())
	require.Equal(t, 2, calls)
}

func TestMap2CombinesTwoInputs(t *testing.T) {
	e := incr.NewEngine()
	a := incr.Var(e, "foo")
	b := incr.Var(e, "bar")
	both := incr.Map2(e, a.Watch(), b.Watch(), func(x, y string) string { return x + y })

	obs := incr.Observe(e, both)
	defer obs.Unobserve()

	require.Equal(t, "foobar", obs.Value())

	b.Set("baz")
	require.Equal(t, "foobaz", obs.Value())
}
