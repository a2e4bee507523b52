package incr_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	incr "github.com/wcharczuk/incrgraph"
)

func TestStabilizeStatsTrackRecomputesAndChanges(t *testing.T) {
	e := incr.NewEngine()
	v := incr.Var(e, 1)
	doubled := incr.Map(e, v.Watch(), func(x int) int { return x * 2 })

	obs := incr.Observe(e, doubled)
	defer obs.Unobserve()

	require.Equal(t, 2, obs.Value())

	stats := e.Stats()
	require.EqualValues(t, 1, stats.StabilizationNum)
	require.EqualValues(t, 2, stats.NumNodesRecomputed) // v and doubled
	require.EqualValues(t, 2, stats.NumNodesChanged)

	v.Set(3)
	require.Equal(t, 6, obs.Value())

	stats = e.Stats()
	require.EqualValues(t, 2, stats.StabilizationNum)
	require.EqualValues(t, 4, stats.NumNodesRecomputed)
	require.EqualValues(t, 4, stats.NumNodesChanged)
}

func TestRepeatedGetWithNoSetIsIdempotent(t *testing.T) {
	e := incr.NewEngine()
	v := incr.Var(e, 1)
	doubled := incr.Map(e, v.Watch(), func(x int) int { return x * 2 })

	obs := incr.Observe(e, doubled)
	defer obs.Unobserve()

	first := obs.Value()
	statsAfterFirst := e.Stats()

	second := obs.Value()
	statsAfterSecond := e.Stats()

	require.Equal(t, first, second)
	require.Equal(t, statsAfterFirst, statsAfterSecond)
}

func TestDiamondDependencyRecomputesSharedInputOnce(t *testing.T) {
	e := incr.NewEngine()
	v := incr.Var(e, 10)
	left := incr.Map(e, v.Watch(), func(x int) int { return x * 2 })
	right := incr.Map(e, v.Watch(), func(x int) int { return x + 1 })
	sum := incr.Map2(e, left, right, func(a, b int) int { return a + b })

	obs := incr.Observe(e, sum)
	defer obs.Unobserve()

	require.Equal(t, 31, obs.Value())

	v.Set(20)
	require.Equal(t, 61, obs.Value())

	stats := e.Stats()
	// v, left, right, sum recomputed exactly once per stabilize round.
	require.EqualValues(t, 8, stats.NumNodesRecomputed)
}

func TestLinearChainOfMaps(t *testing.T) {
	e := incr.NewEngine()
	v := incr.Var(e, uint64(0))

	n := v.Watch()
	for i := 0; i < 100; i++ {
		n = incr.Map(e, n, func(x uint64) uint64 { return x + 1 })
	}

	obs := incr.Observe(e, n)
	defer obs.Unobserve()

	require.EqualValues(t, 100, obs.Value())

	v.Set(5)
	require.EqualValues(t, 105, obs.Value())
}

func TestChainAboveMaxHeightPanics(t *testing.T) {
	e := incr.NewEngine(incr.WithMaxHeight(8))
	v := incr.Var(e, 0)

	n := v.Watch()
	require.Panics(t, func() {
		for i := 0; i < 16; i++ {
			n = incr.Map(e, n, func(x int) int { return x + 1 })
		}
	})
}
