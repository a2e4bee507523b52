package incr_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	incr "github.com/wcharczuk/incrgraph"
)

// TestThenSelfCycleDetected builds a Then node whose chosen branch
// transitively depends on the Then node itself. The engine has no way to
// discover this is circular until it actually tries to raise heights across
// the two halves of the cycle, at which point it must panic rather than
// hang: either immediately, via *incr.CycleError, if the offending edge
// closes within a single height-raising walk, or via
// *incr.MaxHeightExceededError if the two nodes ping-pong heights upward
// across separate stabilization rounds until the graph's height ceiling is
// hit. Both are acceptable: the invariant under test is termination with a
// diagnostic error, not deadlock or unbounded node creation.
func TestThenSelfCycleDetected(t *testing.T) {
	e := incr.NewEngine(incr.WithMaxHeight(64))
	trigger := incr.Var(e, 0)

	var self incr.Anchor[int]
	bound := incr.Then(e, trigger.Watch(), func(int) incr.Anchor[int] {
		return incr.Map(e, self, func(x int) int { return x + 1 })
	})
	self = bound

	obs := incr.Observe(e, bound)
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic due to a self-referential cycle")
		switch r.(type) {
		case *incr.CycleError, *incr.MaxHeightExceededError:
		default:
			t.Fatalf("expected *incr.CycleError or *incr.MaxHeightExceededError, got %T: %v", r, r)
		}
	}()
	obs.Value()
}
