package incr

// refMapComputation never caches an output of its own: PollUpdated simply
// forwards whatever Poll its input produces, and Output applies fn lazily,
// every time it's read, against the input's current value. Useful for
// cheap projections (field access, slicing) where materializing and
// comparing a B would cost more than just recomputing it on demand.
// Grounded on original_source/src/core/refmap.rs.
type refMapComputation[A, B any] struct {
	aKey AnchorKey
	fn   func(A) B
}

func (c *refMapComputation[A, B]) MarkDirty(AnchorKey) {}

func (c *refMapComputation[A, B]) PollUpdated(ctx *UpdateContext) Poll {
	return ctx.Request(c.aKey, true)
}

func (c *refMapComputation[A, B]) Output(ctx *OutputContext) any {
	a := ctx.Get(c.aKey).(A)
	return c.fn(a)
}

func (c *refMapComputation[A, B]) Kind() string { return "refmap" }

// RefMap projects a's value through fn without ever caching the result.
func RefMap[A, B any](e *Engine, a Anchor[A], fn func(A) B) Anchor[B] {
	c := &refMapComputation[A, B]{aKey: a.Key(), fn: fn}
	n := e.graph.alloc(c, "refmap")
	if _, err := e.graph.ensureHeightIncreases(mustResolve(a.Key()), n); err != nil {
		panic(err)
	}
	return newAnchor[B](newAnchorHandle(e, key(n)))
}
