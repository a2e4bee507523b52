package incr_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	incr "github.com/wcharczuk/incrgraph"
)

func TestDiffMapAddedReportsInitialAndNewKeys(t *testing.T) {
	e := incr.NewEngine()
	m := incr.Var(e, map[string]int{"a": 1, "b": 2})
	added := incr.DiffMapAdded(e, m.Watch())

	obs := incr.Observe(e, added)
	defer obs.Unobserve()

	require.Equal(t, map[string]int{"a": 1, "b": 2}, obs.Value())

	m.Set(map[string]int{"a": 1, "b": 2, "c": 3})
	require.Equal(t, map[string]int{"c": 3}, obs.Value())

	m.Set(map[string]int{"a": 1, "b": 2, "c": 3})
	require.Equal(t, map[string]int{}, obs.Value())
}

func TestDiffMapRemovedReportsDroppedKeys(t *testing.T) {
	e := incr.NewEngine()
	m := incr.Var(e, map[string]int{"a": 1, "b": 2, "c": 3})
	removed := incr.DiffMapRemoved(e, m.Watch())

	obs := incr.Observe(e, removed)
	defer obs.Unobserve()

	require.Equal(t, map[string]int{}, obs.Value())

	m.Set(map[string]int{"a": 1, "c": 3})
	require.Equal(t, map[string]int{"b": 2}, obs.Value())

	m.Set(map[string]int{"a": 1, "c": 3})
	require.Equal(t, map[string]int{}, obs.Value())
}
