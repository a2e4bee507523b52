package incr

import "runtime"

// AnchorKey is a comparable, type-erased reference to a node's slot in a
// graph's arena. It carries the token the slot held at allocation time, so a
// stale key (held across a free + reuse) can be detected rather than
// silently resolving to whatever now occupies the slot.
type AnchorKey struct {
	node  *Node
	token uint64
}

// resolve returns the node a key refers to, or ok=false if the key is stale
// (the node has since been freed and its slot reused).
func (k AnchorKey) resolve() (n *Node, ok bool) {
	if k.node == nil || k.node.token != k.token || k.node.graph == nil {
		return nil, false
	}
	return k.node, true
}

func (k AnchorKey) String() string {
	if k.node == nil {
		return "<nil-key>"
	}
	return k.node.String()
}

// AnchorHandle is an external, reference-counted handle to a node, keeping it
// (and thus its arena slot) alive for as long as the handle is. Every live
// AnchorHandle, including ones produced by Clone, counts independently
// against the node's handleCount; each must be Released exactly once
// (double-Release is a safe no-op, tracked via the released flag, rather
// than a double-decrement). Go has no Drop, so a runtime.SetFinalizer is
// installed as a safety net for handles that are simply dropped on the
// floor, matching the "it still gets cleaned up eventually, just later and
// under GC pressure instead of deterministically" tradeoff that is
// unavoidable without RAII.
//
// Holding a plain AnchorHandle does NOT make a node Observed — that is a
// separate, independently reference-counted flag flipped only by
// Engine.MarkObserved/markUnobserved (see observing below). Every
// constructor builds its own returned Anchor's handle as a plain one, so
// merely constructing and holding onto an anchor never makes it Observed by
// itself; a node is only ever recomputed because it is Observed, or
// Necessary to something that is.
type AnchorHandle struct {
	key       AnchorKey
	engine    *Engine
	released  *bool
	observing bool
}

func newAnchorHandle(e *Engine, key AnchorKey) AnchorHandle {
	return newHandle(e, key, false)
}

// newObservingHandle is Engine.MarkObserved's building block: like
// newAnchorHandle, it's a plain lifetime-keeping handle, but it additionally
// bumps the node's independent observedCount and enqueues it if it isn't
// already ready. Releasing the returned handle later undoes exactly that
// increment, alongside the ordinary handleCount decrement every handle does.
func newObservingHandle(e *Engine, key AnchorKey) AnchorHandle {
	return newHandle(e, key, true)
}

func newHandle(e *Engine, key AnchorKey, observing bool) AnchorHandle {
	n, ok := key.resolve()
	if ok {
		n.handleCount++
		if observing {
			n.observedCount++
			e.enqueueIfNeeded(n)
		}
	}
	released := new(bool)
	h := AnchorHandle{key: key, engine: e, released: released, observing: observing}
	runtime.SetFinalizer(released, func(r *bool) {
		e.releaseHandle(key, r, observing)
	})
	return h
}

// Key returns the underlying AnchorKey, usable to compare identity across
// handles without retaining a clone.
func (h AnchorHandle) Key() AnchorKey { return h.key }

// Clone returns a new handle referring to the same node, bumping its
// reference count. The returned handle must itself eventually be released,
// independently of h. A clone of a handle obtained via MarkObserved is
// itself an observing handle.
func (h AnchorHandle) Clone() AnchorHandle {
	return newHandle(h.engine, h.key, h.observing)
}

// Release decrements the node's handle count (and, if this handle came from
// MarkObserved, its independent observed count too), potentially making it
// Unnecessary and freeing it. Safe, and a no-op, to call more than once on
// the same handle.
func (h AnchorHandle) Release() {
	h.engine.releaseHandle(h.key, h.released, h.observing)
}

func (e *Engine) releaseHandle(key AnchorKey, released *bool, observing bool) {
	if *released {
		return
	}
	*released = true
	runtime.SetFinalizer(released, nil)

	n, ok := key.resolve()
	if !ok {
		return
	}
	n.handleCount--
	if n.handleCount < 0 {
		n.handleCount = 0
	}
	if observing {
		n.observedCount--
		if n.observedCount < 0 {
			n.observedCount = 0
		}
	}
	e.markUnobserved(n)
}

// Anchor[T] is a typed wrapper over an AnchorHandle. It is the external,
// user-facing reference returned by every constructor (Constant, Map, Then,
// ...) and by Variable.Watch; typed retrieval happens through the free
// function GetValue,
// since Go does not allow a method to introduce a new type parameter.
type Anchor[T any] struct {
	handle AnchorHandle
}

func newAnchor[T any](handle AnchorHandle) Anchor[T] {
	return Anchor[T]{handle: handle}
}

// Key returns the type-erased key underlying this anchor.
func (a Anchor[T]) Key() AnchorKey { return a.handle.Key() }

// Handle returns the underlying reference-counted handle.
func (a Anchor[T]) Handle() AnchorHandle { return a.handle }

// Clone returns a new Anchor[T] referring to the same node, with its own
// independent handle reference count.
func (a Anchor[T]) Clone() Anchor[T] {
	return Anchor[T]{handle: a.handle.Clone()}
}

// Release releases the anchor's underlying handle. See AnchorHandle.Release.
func (a Anchor[T]) Release() { a.handle.Release() }

// GetValue stabilizes the engine if needed and returns the anchor's current
// output, asserting it to T. Panics with a *ProtocolError if the
// computation's Output does not actually produce a T, which would mean a
// constructor installed the wrong Computation for this Anchor[T].
func GetValue[T any](e *Engine, a Anchor[T]) T {
	out := e.get(a.Key())
	typed, ok := out.(T)
	if !ok {
		n, _ := a.Key().resolve()
		panic(&ProtocolError{Node: n, Reason: "Output did not produce the anchor's declared type"})
	}
	return typed
}
