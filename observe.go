package incr

// Observer is an ergonomic wrapper over an AnchorHandle: a named, typed
// reference that keeps its target Observed (and, transitively, everything it
// depends on Necessary) for as long as the Observer is alive, mirroring the
// teacher's Observe/ObserveIncr naming.
type Observer[T any] struct {
	engine *Engine
	anchor Anchor[T]
}

// Observe marks a as Observed and returns an Observer that keeps it so
// until Unobserve is called. This is the usual entry point for attaching a
// subgraph to an engine: nothing is ever recomputed unless it is Observed or
// Necessary to something that is. Merely holding a's own Anchor value (as
// returned by its constructor) does not do this — that handle keeps the
// node alive but carries no observation demand of its own.
func Observe[T any](e *Engine, a Anchor[T]) Observer[T] {
	h := e.MarkObserved(a.Key())
	return Observer[T]{engine: e, anchor: newAnchor[T](h)}
}

// Value stabilizes the engine as needed and returns the observed anchor's
// current value.
func (o Observer[T]) Value() T {
	return GetValue(o.engine, o.anchor)
}

// Anchor returns the underlying anchor being observed.
func (o Observer[T]) Anchor() Anchor[T] { return o.anchor }

// Unobserve releases the Observer's hold on its anchor. The anchor (and
// anything that was only Necessary because of it) may become Unnecessary
// and stop being recomputed.
func (o Observer[T]) Unobserve() {
	o.anchor.Release()
}
