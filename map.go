package incr

// mapComputation applies fn to its single input's value, cutting off
// propagation when the freshly computed output equals the previous one
// (requires the output type to be comparable). Grounded on
// original_source/src/core/map.rs and the teacher's general Map shape
// (cutoff.go shows the same "compare to last value" pattern for Cutoff).
type mapComputation[A any, B comparable] struct {
	aKey     AnchorKey
	fn       func(A) B
	value    B
	hasValue bool
}

func (c *mapComputation[A, B]) MarkDirty(AnchorKey) {}

func (c *mapComputation[A, B]) PollUpdated(ctx *UpdateContext) Poll {
	p := ctx.Request(c.aKey, true)
	if p == Pending {
		return Pending
	}
	if p == Unchanged && c.hasValue {
		return Unchanged
	}
	a := ctx.Get(c.aKey).(A)
	newVal := c.fn(a)
	if c.hasValue && newVal == c.value {
		return Unchanged
	}
	c.value = newVal
	c.hasValue = true
	return Updated
}

func (c *mapComputation[A, B]) Output(*OutputContext) any { return c.value }

func (c *mapComputation[A, B]) Kind() string { return "map" }

// Map builds a new anchor whose value is always fn(a's value), recomputed
// only when a changes and cut off if fn happens to produce the same B as
// last time.
func Map[A any, B comparable](e *Engine, a Anchor[A], fn func(A) B) Anchor[B] {
	c := &mapComputation[A, B]{aKey: a.Key(), fn: fn}
	n := e.graph.alloc(c, "map")
	if _, err := e.graph.ensureHeightIncreases(mustResolve(a.Key()), n); err != nil {
		panic(err)
	}
	return newAnchor[B](newAnchorHandle(e, key(n)))
}

// map2Computation is the binary-arity sibling of mapComputation.
type map2Computation[A, B any, C comparable] struct {
	aKey, bKey AnchorKey
	fn         func(A, B) C
	value      C
	hasValue   bool
}

func (c *map2Computation[A, B, C]) MarkDirty(AnchorKey) {}

func (c *map2Computation[A, B, C]) PollUpdated(ctx *UpdateContext) Poll {
	pa := ctx.Request(c.aKey, true)
	pb := ctx.Request(c.bKey, true)
	if pa == Pending || pb == Pending {
		return Pending
	}
	if pa == Unchanged && pb == Unchanged && c.hasValue {
		return Unchanged
	}
	a := ctx.Get(c.aKey).(A)
	b := ctx.Get(c.bKey).(B)
	newVal := c.fn(a, b)
	if c.hasValue && newVal == c.value {
		return Unchanged
	}
	c.value = newVal
	c.hasValue = true
	return Updated
}

func (c *map2Computation[A, B, C]) Output(*OutputContext) any { return c.value }

func (c *map2Computation[A, B, C]) Kind() string { return "map2" }

// Map2 is the two-input form of Map.
func Map2[A, B any, C comparable](e *Engine, a Anchor[A], b Anchor[B], fn func(A, B) C) Anchor[C] {
	c := &map2Computation[A, B, C]{aKey: a.Key(), bKey: b.Key(), fn: fn}
	n := e.graph.alloc(c, "map2")
	if _, err := e.graph.ensureHeightIncreases(mustResolve(a.Key()), n); err != nil {
		panic(err)
	}
	if _, err := e.graph.ensureHeightIncreases(mustResolve(b.Key()), n); err != nil {
		panic(err)
	}
	return newAnchor[C](newAnchorHandle(e, key(n)))
}

// mustResolve panics with a *ProtocolError if key refers to a freed node.
// Constructors use it to fail fast on a caller passing a stale anchor,
// rather than silently building a node whose first poll will panic instead.
func mustResolve(k AnchorKey) *Node {
	n, ok := k.resolve()
	if !ok {
		panic(&ProtocolError{Reason: "constructor given a stale or freed anchor"})
	}
	return n
}
