package incr

// cutoffComputation passes its input's value straight through, except that
// when the input reports Updated, fn gets a chance to veto the propagation:
// fn(&new) is evaluated against the fresh value, and only a true result lets
// the update ripple to this node's parents; false reports Unchanged instead,
// stopping the wave here. Grounded on original_source's src/core/cutoff.rs
// (`(self.f)(val)` on the single fresh value, no previous-value argument).
type cutoffComputation[A any] struct {
	aKey     AnchorKey
	fn       func(latest A) bool
	value    A
	hasValue bool
}

func (c *cutoffComputation[A]) MarkDirty(AnchorKey) {}

func (c *cutoffComputation[A]) PollUpdated(ctx *UpdateContext) Poll {
	p := ctx.Request(c.aKey, true)
	if p != Updated {
		return p
	}
	latest := ctx.Get(c.aKey).(A)
	c.value = latest
	// The very first value has no baseline to be cut off against: fn's
	// verdict only applies once there's a prior propagated value to compare
	// against in the caller's own mind, so the first call always propagates.
	first := !c.hasValue
	c.hasValue = true
	if first || c.fn(latest) {
		return Updated
	}
	return Unchanged
}

func (c *cutoffComputation[A]) Output(*OutputContext) any { return c.value }

func (c *cutoffComputation[A]) Kind() string { return "cutoff" }

// Cutoff wraps a, suppressing propagation of an Updated result whenever
// fn(latest) returns false. Useful when equality is too strict a cutoff
// criterion, e.g. "only propagate if the value is at least some threshold".
func Cutoff[A any](e *Engine, a Anchor[A], fn func(latest A) bool) Anchor[A] {
	c := &cutoffComputation[A]{aKey: a.Key(), fn: fn}
	n := e.graph.alloc(c, "cutoff")
	if _, err := e.graph.ensureHeightIncreases(mustResolve(a.Key()), n); err != nil {
		panic(err)
	}
	return newAnchor[A](newAnchorHandle(e, key(n)))
}
