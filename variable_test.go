package incr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	incr "github.com/wcharczuk/incrgraph"
)

func TestVariableSetAndStabilize(t *testing.T) {
	e := incr.NewEngine()
	v := incr.Var(e, 1)

	obs := incr.Observe(e, v.Watch())
	defer obs.Unobserve()

	require.Equal(t, 1, obs.Value())

	v.Set(2)
	require.Equal(t, 2, obs.Value())
}

func TestVariableSetInternalValueDoesNotMarkDirty(t *testing.T) {
	e := incr.NewEngine()
	v := incr.Var(e, "a")

	obs := incr.Observe(e, v.Watch())
	defer obs.Unobserve()

	require.Equal(t, "a", obs.Value())

	v.SetInternalValue("b")
	assert.Equal(t, "b", v.Value())
}
