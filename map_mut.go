package incr

// mapMutComputation is Map's caller-determined-change sibling: fn mutates
// value in place and reports whether it actually changed, rather than the
// engine deciding via equality. Useful when B is not (cheaply) comparable,
// e.g. a slice or map being mutated incrementally. Grounded on
// original_source/src/core/map_mut.rs.
type mapMutComputation[A, B any] struct {
	aKey     AnchorKey
	fn       func(a A, out *B) bool
	value    B
	hasValue bool
}

func (c *mapMutComputation[A, B]) MarkDirty(AnchorKey) {}

func (c *mapMutComputation[A, B]) PollUpdated(ctx *UpdateContext) Poll {
	p := ctx.Request(c.aKey, true)
	if p == Pending {
		return Pending
	}
	if p == Unchanged && c.hasValue {
		return Unchanged
	}
	a := ctx.Get(c.aKey).(A)
	changed := c.fn(a, &c.value)
	c.hasValue = true
	if changed {
		return Updated
	}
	return Unchanged
}

func (c *mapMutComputation[A, B]) Output(*OutputContext) any { return c.value }

func (c *mapMutComputation[A, B]) Kind() string { return "map_mut" }

// MapMut builds a node whose output B is mutated in place by fn each time a
// changes; fn reports whether the mutation actually changed B, since the
// engine has no way to compare two B values for itself.
func MapMut[A, B any](e *Engine, a Anchor[A], fn func(a A, out *B) bool) Anchor[B] {
	c := &mapMutComputation[A, B]{aKey: a.Key(), fn: fn}
	n := e.graph.alloc(c, "map_mut")
	if _, err := e.graph.ensureHeightIncreases(mustResolve(a.Key()), n); err != nil {
		panic(err)
	}
	return newAnchor[B](newAnchorHandle(e, key(n)))
}
