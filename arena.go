package incr

// NodeGuard is a scoped, checked reference to a live Node. In the Rust
// source this type's whole reason for existing was to carry a lifetime that
// proved the underlying arena outlived the guard, so that the raw NodePtr
// inside it could be dereferenced without `unsafe`. Go's garbage collector
// already gives every *Node that stable-address, outlives-its-references
// guarantee for free, so NodeGuard here is a thin wrapper whose only job is
// to keep the "you must go through a guard to touch a node" calling
// convention recognizable to anyone who has read the original.
type NodeGuard struct {
	node *Node
}

func newNodeGuard(n *Node) NodeGuard { return NodeGuard{node: n} }

// Valid reports whether the guard still points at a live, unfree'd node.
func (g NodeGuard) Valid() bool { return g.node != nil && g.node.graph != nil }

// Node returns the underlying node. Panics if the guard is invalid.
func (g NodeGuard) Node() *Node {
	if !g.Valid() {
		panic("incrgraph: use of invalid NodeGuard")
	}
	return g.node
}

// arena is the append-only backing store nodes are allocated from. Freed
// nodes are never removed from this slice (their storage is kept so the
// *Node pointer stays valid forever); reuse happens through the graph's free
// list instead, which threads live Node structs back into rotation via
// recalcNext/recalcPrev.
type arena struct {
	nodes []*Node
}

// alloc appends a brand new Node to the arena and returns it. Called only
// when the free list is empty.
func (a *arena) alloc(computation Computation, kind string) *Node {
	n := newNode(computation, kind)
	a.nodes = append(a.nodes, n)
	return n
}

// len returns the number of node slots the arena has ever allocated,
// including freed ones.
func (a *arena) len() int { return len(a.nodes) }
