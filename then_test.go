package incr_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	incr "github.com/wcharczuk/incrgraph"
)

func TestThenRebindsOnInputChange(t *testing.T) {
	e := incr.NewEngine()

	useFirst := incr.Var(e, true)
	first := incr.Var(e, "first-value")
	second := incr.Var(e, "second-value")

	selected := incr.Then(e, useFirst.Watch(), func(use bool) incr.Anchor[string] {
		if use {
			return first.Watch()
		}
		return second.Watch()
	})

	obs := incr.Observe(e, selected)
	defer obs.Unobserve()

	require.Equal(t, "first-value", obs.Value())

	first.Set("first-value-2")
	require.Equal(t, "first-value-2", obs.Value())

	useFirst.Set(false)
	require.Equal(t, "second-value", obs.Value())

	// first is no longer bound; changing it must not affect the result.
	first.Set("first-value-3")
	require.Equal(t, "second-value", obs.Value())

	second.Set("second-value-2")
	require.Equal(t, "second-value-2", obs.Value())
}
