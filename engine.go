package incr

// Engine drives recomputation over a Graph: it tracks the current
// generation, the set of nodes explicitly marked dirty since the last
// Stabilize, and mediates every Request/Get a Computation makes during
// PollUpdated.
//
// One Engine owns exactly one Graph for its lifetime.
type Engine struct {
	graph      *Graph
	generation generation
	dirty      []*Node

	stabilizationNum   uint64
	numNodesRecomputed uint64
	numNodesChanged    uint64
}

// NewEngine constructs an Engine around a fresh Graph.
func NewEngine(opts ...GraphOption) *Engine {
	return &Engine{graph: NewGraph(opts...)}
}

// Graph returns the engine's underlying graph.
func (e *Engine) Graph() *Graph { return e.graph }

//
// Observation lifecycle
//

// MarkObserved flips the node identified by key to Observed and returns a
// handle the caller must eventually Release, which flips it back off (absent
// any other outstanding observing handle on the same node) and propagates
// unnecessary-ness to anything that was only Necessary because of it.
// Observed is independent of simply holding an Anchor: constructing one and
// keeping it around does not, by itself, make the engine recompute it.
func (e *Engine) MarkObserved(key AnchorKey) AnchorHandle {
	return newObservingHandle(e, key)
}

// markUnobserved is called whenever an observing or necessary edge into n is
// dropped (an Observer released, or a parent's necessary child relationship
// cut). If n is no longer Observed or Necessary to anything, its own
// necessary edges are dropped too — which may cascade the same loss of
// demand down to its children — and it is dequeued from the recalc queue.
//
// A node's arena slot is only actually freed here if, in addition, it has no
// outstanding AnchorHandle: a parent computation holding a bare AnchorKey
// (not a cloned handle) to one of its necessary children must be able to
// rely on that key staying valid for as long as the edge exists, even though
// no handle backs it directly. So the slot is freed the moment BOTH
// conditions hold, whichever order they're reached in — here, or in
// releaseHandle when handleCount itself reaches zero on an already
// unnecessary node.
func (e *Engine) markUnobserved(n *Node) {
	if n.isObservedOrNecessary() {
		return
	}
	e.graph.queue.remove(n)
	for _, child := range n.drainNecessaryChildren() {
		if !child.isObservedOrNecessary() {
			e.markUnobserved(child)
		}
	}
	if n.handleCount <= 0 {
		e.graph.free(n)
	}
}

// becameNecessary records that parent now necessarily depends on child, and
// enqueues child for recomputation if it had no demand before and isn't
// ready. Child's own dependencies are not visited here; they become
// necessary when child next Requests them.
func (e *Engine) becameNecessary(parent, child *Node) {
	wasNecessary := child.isObservedOrNecessary()
	parent.addNecessaryChild(child)
	if !wasNecessary {
		e.enqueueIfNeeded(child)
	}
}

func (e *Engine) enqueueIfNeeded(n *Node) {
	if n.recalcState == recalcNeeded {
		e.graph.queue.push(n)
	}
}

//
// Dirty propagation
//

// markDirtyHandle is called by a DirtyHandle, typically from Variable.Set,
// to say "this node has new work" outside of any PollUpdated call. The node
// is recorded and only actually pushed into the recalc queue (and its
// parents' MarkDirty invoked) the next time Stabilize runs, matching the
// teacher's and the Rust source's "accumulate, then propagate in one pass"
// structure.
func (e *Engine) markDirtyHandle(n *Node) {
	if n.recalcState == recalcReady {
		n.recalcState = recalcNeeded
	}
	e.dirty = append(e.dirty, n)
}

// applyDirtyMarks drains the accumulated dirty set, propagating MarkDirty to
// every clean parent of every dirty node (transitively) and enqueuing any
// node that is itself necessary.
func (e *Engine) applyDirtyMarks() {
	marks := e.dirty
	e.dirty = nil
	for _, n := range marks {
		e.propagateDirty(n)
	}
}

func (e *Engine) propagateDirty(n *Node) {
	if n.isObservedOrNecessary() {
		e.enqueueIfNeeded(n)
	}
	childKey := key(n)
	for _, parent := range n.drainCleanParents() {
		parent.computation.MarkDirty(childKey)
		// MarkDirty tells parent it has new work; a parent left over from
		// the previous stabilization is sitting at recalcReady, which would
		// make the enqueueIfNeeded inside the recursive call below a no-op.
		if parent.recalcState == recalcReady {
			parent.recalcState = recalcNeeded
		}
		e.propagateDirty(parent)
	}
}

//
// Request / Unrequest / Get, the UpdateContext primitives
//

// request implements the edge-establishment algorithm: raise height, check
// readiness, and either enqueue-and-return-Pending or link-as-clean-parent
// and return the child's last-known Poll.
func (e *Engine) request(self *Node, childKey AnchorKey, necessary bool) Poll {
	child, ok := childKey.resolve()
	if !ok {
		panic(&ProtocolError{Node: self, Reason: "request referenced a stale or freed node"})
	}

	alreadyValid, err := e.graph.ensureHeightIncreases(child, self)
	if err != nil {
		panic(err)
	}

	selfNecessary := self.isObservedOrNecessary()

	if child.recalcState != recalcReady {
		if selfNecessary && necessary {
			e.becameNecessary(self, child)
		} else {
			e.enqueueIfNeeded(child)
		}
		return Pending
	}

	if !alreadyValid {
		// child is Ready, but only because it settled before this edge
		// existed: the height raise just above proves self didn't depend on
		// it yet at that point. self must wait for the next stabilization
		// pass to see child's output with the edge in place.
		return Pending
	}

	child.addCleanParent(self)
	if selfNecessary && necessary {
		e.becameNecessary(self, child)
	}

	// child is Ready. It counts as Updated for self's purposes only if it
	// changed strictly after the last generation self itself finished a
	// poll in; otherwise self already observed this exact value before, even
	// if child was just re-confirmed Unchanged this very pass.
	if child.lastUpdate > self.lastReady {
		return Updated
	}
	return Unchanged
}

// unrequest removes the necessary-child bookkeeping between self and child,
// used when a Then-style node rebinds to a different dependency.
func (e *Engine) unrequest(self *Node, childKey AnchorKey) {
	child, ok := childKey.resolve()
	if !ok {
		return
	}
	self.removeNecessaryChild(child)
	child.removeCleanParent(self)
	e.markUnobserved(child)
}

// peek returns a node's current output without creating any new edge. The
// node must already be Ready.
func (e *Engine) peek(childKey AnchorKey) any {
	child, ok := childKey.resolve()
	if !ok {
		panic(&ProtocolError{Reason: "Get referenced a stale or freed node"})
	}
	if child.recalcState != recalcReady {
		panic(&ProtocolError{Node: child, Reason: "Get called on a node that has not completed this pass"})
	}
	return child.computation.Output(&OutputContext{engine: e, self: child})
}

//
// Public Get / GetValue
//

// get stabilizes the engine as needed to make key's node Ready, then returns
// its output. If the node has no demand on it yet (neither Observed nor
// Necessary to anything), it is temporarily marked observed for the
// duration of this call only, matching the teacher's "observing implicitly
// via Get" convenience.
func (e *Engine) get(k AnchorKey) any {
	n, ok := k.resolve()
	if !ok {
		panic(&ProtocolError{Reason: "Get referenced a stale or freed node"})
	}
	if !n.isObservedOrNecessary() {
		h := e.MarkObserved(k)
		defer h.Release()
		e.Stabilize()
		return n.computation.Output(&OutputContext{engine: e, self: n})
	}
	if n.recalcState != recalcReady || len(e.dirty) > 0 {
		e.Stabilize()
	}
	return n.computation.Output(&OutputContext{engine: e, self: n})
}

//
// Stabilization
//

// Stabilize drains the dirty-mark queue, advances the generation, and
// recomputes every pending node in non-decreasing height order until the
// recalc queue is empty.
func (e *Engine) Stabilize() {
	e.applyDirtyMarks()
	e.generation = e.generation.next()
	e.stabilizationNum++

	for {
		n := e.graph.queue.popMin()
		if n == nil {
			break
		}
		e.recalculate(n)
	}
}

// recalculate polls a single node once. Updated and Unchanged results mark
// it Ready and count towards the recompute stats. A Pending result is
// accepted as is: the engine does not check whether the computation actually
// Requested a dependency that returned Pending before returning it.
func (e *Engine) recalculate(n *Node) {
	ctx := &UpdateContext{engine: e, self: n}
	poll := n.computation.PollUpdated(ctx)

	switch poll {
	case Pending:
		// The dependency request that returned Pending has already queued
		// the dependency at a lower height; requeue n itself (if it still
		// has demand) so it is polled again once that dependency is Ready.
		n.recalcState = recalcNeeded
		if n.isObservedOrNecessary() {
			e.enqueueIfNeeded(n)
		}
	case Updated:
		n.numRecomputes++
		e.numNodesRecomputed++
		n.recalcState = recalcReady
		n.lastUpdate = e.generation
		n.lastReady = e.generation
		n.numChanges++
		e.numNodesChanged++
		e.notifyParents(n)
	case Unchanged:
		n.numRecomputes++
		e.numNodesRecomputed++
		n.recalcState = recalcReady
		n.lastReady = e.generation
	default:
		panic(&ProtocolError{Node: n, Reason: "PollUpdated returned an invalid Poll"})
	}
}

// notifyParents marks every clean parent of n dirty in response to n
// actually having changed, so the next time they're polled they know to
// re-request n instead of trusting a cached Unchanged.
func (e *Engine) notifyParents(n *Node) {
	childKey := key(n)
	for _, parent := range n.drainCleanParents() {
		parent.computation.MarkDirty(childKey)
		// parent may already be sitting at recalcReady from a prior round
		// (this is the first time it's heard about n's change this pass);
		// without this it would never be requeued below.
		if parent.recalcState == recalcReady {
			parent.recalcState = recalcNeeded
		}
		if parent.isObservedOrNecessary() {
			e.enqueueIfNeeded(parent)
		}
	}
}
