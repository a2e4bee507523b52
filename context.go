package incr

// UpdateContext is passed to Computation.PollUpdated. It mediates every
// dependency a node touches during recomputation, so the engine always
// knows the node's current edge set without the node manipulating the graph
// directly.
type UpdateContext struct {
	engine *Engine
	self   *Node
}

// Generation returns the engine's current stabilization generation. A
// computation that dynamically rebinds (Then) uses this to tell "the input
// changed since I last rebound" apart from "I am simply being re-polled
// after returning Pending earlier in this same generation".
func (c *UpdateContext) Generation() uint64 { return uint64(c.engine.generation) }

// Request polls child for its latest output, establishing (or refreshing) a
// dependency edge from self to child. necessary controls whether that edge
// also counts as a necessary edge (keeping child alive / recomputed on
// self's behalf) versus a purely informational "clean parent" edge used for
// dirty propagation only.
//
// The returned Poll is Pending if child is not ready yet, or if this call
// had to raise self's height to place the edge (either way self must also
// return Pending from this PollUpdated call, and will be resumed later);
// otherwise Updated if child's output differs from what self last observed,
// Unchanged if identical.
func (c *UpdateContext) Request(key AnchorKey, necessary bool) Poll {
	return c.engine.request(c.self, key, necessary)
}

// Unrequest tells the engine self no longer depends on child. Used by
// dynamic nodes (Then) when the chosen dependency changes between polls.
func (c *UpdateContext) Unrequest(key AnchorKey) {
	c.engine.unrequest(c.self, key)
}

// Get returns child's last-known output without establishing any new edge.
// Only legal for children already Request-ed to Updated or Unchanged this
// pass; mirrors the Rust source's `ctx.get` used by RefMap.
func (c *UpdateContext) Get(key AnchorKey) any {
	return c.engine.peek(key)
}

// DirtyHandle returns a handle self can use, outside of PollUpdated, to tell
// the engine it has new work pending (the pattern a Variable uses: install
// the handle on first poll, then call it from Set).
func (c *UpdateContext) DirtyHandle() DirtyHandle {
	return DirtyHandle{engine: c.engine, node: c.self}
}

// Node returns the node currently being polled.
func (c *UpdateContext) Node() *Node { return c.self }

// OutputContext is passed to Computation.Output. It is deliberately a
// narrower interface than UpdateContext: output functions must not create
// new dependency edges, only read ones already established by PollUpdated.
type OutputContext struct {
	engine *Engine
	self   *Node
}

// Get returns child's current output. Panics with *ProtocolError if child's
// key is stale or child is not Ready.
func (c *OutputContext) Get(key AnchorKey) any {
	return c.engine.peek(key)
}

// DirtyHandle lets code outside of a PollUpdated call (e.g. Variable.Set)
// tell the engine that a node has new work, without needing a live
// UpdateContext.
type DirtyHandle struct {
	engine *Engine
	node   *Node
}

// MarkDirty records the node for dirty-propagation on the engine's next
// Stabilize; see Engine.markDirtyHandle.
func (h DirtyHandle) MarkDirty() {
	h.engine.markDirtyHandle(h.node)
}
