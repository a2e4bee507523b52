package incr

// Poll is the result of polling a node for an updated value. It is
// returned by PollUpdated and by UpdateContext.Request.
type Poll int

const (
	// Pending indicates the polled value is not ready for reading, but has
	// been queued for recalculation. The caller will eventually be resumed
	// once the dependency it is waiting on becomes Ready.
	Pending Poll = iota
	// Updated indicates the polled value is ready for reading, and differs
	// from the previous read (or this is the first read).
	Updated
	// Unchanged indicates the polled value is ready for reading and is
	// identical to the previous read.
	Unchanged
)

func (p Poll) String() string {
	switch p {
	case Pending:
		return "Pending"
	case Updated:
		return "Updated"
	case Unchanged:
		return "Unchanged"
	default:
		return "Invalid"
	}
}

// Computation is the type-erased contract every node in the graph
// implements. It is the Go analogue of the teacher's GenericAnchor /
// AnchorCore split (see node.go / bind.go / cutoff.go) and of
// `AnchorCore<E>` in original_source/src/core.rs. Outputs are type-erased
// to `any` here; the generic Anchor[T] wrapper recovers the concrete type
// with a checked assertion in GetValue.
type Computation interface {
	// MarkDirty is invoked by the engine to tell the node that one of its
	// previously-requested inputs, identified by key, may have changed. The
	// node should remember this and re-request that input on its next
	// PollUpdated. Implementations that have no inputs (Variable, Constant)
	// must never receive this call; receiving one is a programmer error.
	MarkDirty(child AnchorKey)

	// PollUpdated advances recomputation. It may call ctx.Request on zero or
	// more dependencies, and must return Pending only after requesting at
	// least one dependency that itself returned Pending.
	PollUpdated(ctx *UpdateContext) Poll

	// Output returns the current output value. Only legal after the most
	// recent PollUpdated reported Updated or Unchanged, and before any
	// subsequent MarkDirty.
	Output(ctx *OutputContext) any

	// Kind names the computation for debug output, e.g. "var", "map",
	// "cutoff". Mirrors the teacher's FormatNode(n, "kind") convention.
	Kind() string
}

// Always is an optional refinement of Computation, named after the teacher's
// IAlways / node.always detection in node.go's detectAlways. The engine does
// not consult it: implementing it does not change when a node is recomputed.
type Always interface {
	AlwaysRecompute() bool
}
