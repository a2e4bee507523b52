package incr

// constantComputation never changes after its first poll. Grounded on
// original_source/src/core/constant.rs: Updated once, Unchanged forever
// after.
type constantComputation[T any] struct {
	value T
	first bool
}

func (c *constantComputation[T]) MarkDirty(AnchorKey) {
	panic(&ProtocolError{Reason: "a Constant has no inputs and should never receive MarkDirty"})
}

func (c *constantComputation[T]) PollUpdated(*UpdateContext) Poll {
	if !c.first {
		c.first = true
		return Updated
	}
	return Unchanged
}

func (c *constantComputation[T]) Output(*OutputContext) any { return c.value }

func (c *constantComputation[T]) Kind() string { return "constant" }

// Constant wraps a fixed value as an anchor. It participates in the graph
// exactly like any other node (height 0, has a real AnchorKey) but never
// needs recomputation beyond its first poll.
func Constant[T any](e *Engine, value T) Anchor[T] {
	c := &constantComputation[T]{value: value}
	n := e.graph.alloc(c, "constant")
	return newAnchor[T](newAnchorHandle(e, key(n)))
}
