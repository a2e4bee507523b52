package incr

// Variable is the leaf computation of the graph: a mutable cell with no
// inputs. Set marks it dirty for the next Stabilize; it never recomputes on
// its own initiative.
type Variable[T any] struct {
	engine      *Engine
	anchor      Anchor[T]
	computation *variableComputation[T]
}

type variableComputation[T any] struct {
	value        T
	valueChanged bool
	dirty        *DirtyHandle
}

func (c *variableComputation[T]) MarkDirty(AnchorKey) {
	panic(&ProtocolError{Reason: "a Variable has no inputs and should never receive MarkDirty"})
}

func (c *variableComputation[T]) PollUpdated(ctx *UpdateContext) Poll {
	if c.dirty == nil {
		h := ctx.DirtyHandle()
		c.dirty = &h
	}
	if c.valueChanged {
		c.valueChanged = false
		return Updated
	}
	return Unchanged
}

func (c *variableComputation[T]) Output(*OutputContext) any { return c.value }

func (c *variableComputation[T]) Kind() string { return "var" }

// Var constructs a new Variable seeded with value, observed by no one until
// MarkObserved (directly or via GetValue) is called on it.
func Var[T any](e *Engine, value T) Variable[T] {
	c := &variableComputation[T]{value: value, valueChanged: true}
	n := e.graph.alloc(c, "var")
	return Variable[T]{
		engine:      e,
		anchor:      newAnchor[T](newAnchorHandle(e, key(n))),
		computation: c,
	}
}

// Watch returns the anchor this variable presents to the rest of the graph.
func (v Variable[T]) Watch() Anchor[T] { return v.anchor }

// Set replaces the variable's value and unconditionally marks it dirty, even
// if newValue is equal to the current value; T is not constrained to
// comparable, so Variable itself never tries to cut that off. Wrap the
// anchor in Cutoff if that's needed. SetInternalValue bypasses dirtying
// entirely, for callers that already know better (e.g. replay of previously
// observed values).
func (v Variable[T]) Set(newValue T) {
	v.computation.value = newValue
	v.computation.valueChanged = true
	if v.computation.dirty != nil {
		v.computation.dirty.MarkDirty()
	}
}

// SetInternalValue overwrites the backing value without marking the node
// dirty or triggering recomputation. Intended for replay/deserialization
// code paths that are reconstructing previously-observed state and must not
// re-trigger propagation to parents.
func (v Variable[T]) SetInternalValue(newValue T) {
	v.computation.value = newValue
}

// Value returns the variable's current value directly, without going
// through the engine. Useful for tests and debug tooling; does not
// stabilize anything. It reflects the latest Set or SetInternalValue
// immediately, whether or not that change has propagated to dependents yet.
func (v Variable[T]) Value() T { return v.computation.value }
