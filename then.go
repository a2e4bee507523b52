package incr

// thenComputation dynamically selects which anchor to depend on by calling
// fn against its own input's latest value. It only calls fn again when the
// input actually changed (or on the very first poll); whenever fn's result
// names a different anchor than before, the old one is Unrequested before
// the new one is Requested, keeping the necessary-child bookkeeping exact
// even as the graph's shape changes at runtime. Grounded on the teacher's
// bind.go (the closest Go analogue in the pack) and original_source's
// src/core/then.rs, which is the literal source both are named after.
type thenComputation[A, B any] struct {
	aKey  AnchorKey
	fn    func(A) Anchor[B]
	inner *Anchor[B]

	// boundGen is the generation fn was last invoked in. Without it, every
	// retry of a Pending poll within the same generation would see the same
	// "input updated" signal and re-invoke fn again, which is wrong: fn must
	// run at most once per generation, exactly when the input's value
	// actually advanced since the last one we bound against.
	boundGen  uint64
	everBound bool
}

func (c *thenComputation[A, B]) MarkDirty(AnchorKey) {}

func (c *thenComputation[A, B]) PollUpdated(ctx *UpdateContext) Poll {
	pa := ctx.Request(c.aKey, true)
	if pa == Pending {
		return Pending
	}

	gen := ctx.Generation()
	if !c.everBound || (pa == Updated && gen != c.boundGen) {
		aVal := ctx.Get(c.aKey).(A)
		next := c.fn(aVal)
		c.boundGen = gen
		c.everBound = true
		if c.inner == nil || c.inner.Key() != next.Key() {
			if c.inner != nil {
				ctx.Unrequest(c.inner.Key())
			}
			c.inner = &next
		}
	}

	return ctx.Request(c.inner.Key(), true)
}

func (c *thenComputation[A, B]) Output(ctx *OutputContext) any {
	return ctx.Get(c.inner.Key())
}

func (c *thenComputation[A, B]) Kind() string { return "then" }

// Then dynamically rebinds to a new anchor, chosen by fn from a's current
// value, any time a changes. This is the engine's only mechanism for a
// graph shape that changes at runtime: every other combinator has a fixed
// set of dependencies decided at construction time.
func Then[A, B any](e *Engine, a Anchor[A], fn func(A) Anchor[B]) Anchor[B] {
	c := &thenComputation[A, B]{aKey: a.Key(), fn: fn}
	n := e.graph.alloc(c, "then")
	if _, err := e.graph.ensureHeightIncreases(mustResolve(a.Key()), n); err != nil {
		panic(err)
	}
	return newAnchor[B](newAnchorHandle(e, key(n)))
}
