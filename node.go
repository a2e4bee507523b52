package incr

import (
	"fmt"
	"sort"
)

// recalcState is the per-node recomputation state machine.
type recalcState int

const (
	// recalcNeeded means the node is not queued and not known-current; it
	// will be queued the next time something requests or observes it.
	recalcNeeded recalcState = iota
	// recalcPending means the node is currently linked into exactly one
	// height bucket of the graph's recalc queue.
	recalcPending
	// recalcReady means the node was polled to completion (Updated or
	// Unchanged) and has not been dirtied since, so its Output is safe to
	// read. It stays Ready across stabilization passes until dirtied.
	recalcReady
)

func (s recalcState) String() string {
	switch s {
	case recalcNeeded:
		return "Needed"
	case recalcPending:
		return "Pending"
	case recalcReady:
		return "Ready"
	default:
		return "Invalid"
	}
}

// debugInfo is captured at node-construction time, the Go stand-in for the
// Rust source's call-site-captured AnchorDebugInfo.
type debugInfo struct {
	kind  string
	label string
}

// Node is the bookkeeping record shared by every computation in the graph.
// Its fields never change shape across a free-list reuse; only their
// contents are reset (see Graph.alloc).
type Node struct {
	id    Identifier
	graph *Graph

	debug debugInfo

	// token distinguishes this incarnation of the node's arena slot from any
	// future incarnation that reuses the same *Node after a free. Bumped on
	// every allocation, including the first.
	token uint64

	// seq is the allocation order of this incarnation. It gives
	// necessaryChildren a total, stable sort key without resorting to
	// pointer-address comparisons.
	seq uint64

	// observedCount counts independent MarkObserved handles outstanding on
	// this node (distinct from handleCount, which every Anchor contributes
	// to regardless of whether it came from MarkObserved). A node with
	// observedCount == 0 can still be handleCount > 0 — merely constructing
	// an anchor and holding onto it does not make it Observed.
	observedCount  int
	visited        bool
	necessaryCount int
	height         int
	recalcState    recalcState

	lastReady  generation
	lastUpdate generation

	numRecomputes uint64
	numChanges    uint64

	// cleanParent0 + cleanParents mirror the teacher's "first inline, rest
	// spilled" layout: most nodes have exactly one parent, so the common
	// case allocates nothing.
	cleanParent0 *Node
	cleanParents []*Node

	// necessaryChildren is kept sorted by seq for O(log n) membership
	// tests.
	necessaryChildren []*Node

	// recalcPrev/recalcNext thread this node into its height bucket's
	// intrusive doubly linked list while recalcState == recalcPending, and
	// are reused to thread the graph's free list while the node is dead.
	recalcPrev, recalcNext *Node

	handleCount int

	computation Computation
}

// newNode allocates node bookkeeping around a computation. Graph.alloc is
// responsible for either returning one of these (fresh) or reinitializing a
// freed node in place; application code never calls this directly.
func newNode(computation Computation, kind string) *Node {
	return &Node{
		id:          NewIdentifier(),
		debug:       debugInfo{kind: kind},
		computation: computation,
	}
}

// reset restores a freed node to the state a fresh allocation would have,
// short of the token/seq (Graph.alloc stamps those) and the computation
// (the caller installs the new one).
func (n *Node) reset() {
	n.observedCount = 0
	n.visited = false
	n.necessaryCount = 0
	n.height = 0
	n.recalcState = recalcNeeded
	n.lastReady = 0
	n.lastUpdate = 0
	n.cleanParent0 = nil
	n.cleanParents = nil
	n.necessaryChildren = nil
	n.recalcPrev = nil
	n.recalcNext = nil
	n.handleCount = 0
	n.numRecomputes = 0
	n.numChanges = 0
}

// ID returns the node's unique identifier.
func (n *Node) ID() Identifier { return n.id }

// Label returns the user-assigned debug label, if any.
func (n *Node) Label() string { return n.debug.label }

// SetLabel sets a descriptive label used in String().
func (n *Node) SetLabel(label string) { n.debug.label = label }

// Kind returns the computation kind, e.g. "var", "map", "cutoff".
func (n *Node) Kind() string { return n.debug.kind }

func (n *Node) String() string {
	if n.debug.label != "" {
		return fmt.Sprintf("%s[%s]:%s@%d", n.debug.kind, n.id.Short(), n.debug.label, n.height)
	}
	return fmt.Sprintf("%s[%s]@%d", n.debug.kind, n.id.Short(), n.height)
}

// Height returns the node's current pseudo-height.
func (n *Node) Height() int { return n.height }

// RecalcState exposes the node's recalculation state, mostly for tests and
// debug tooling.
func (n *Node) RecalcState() string { return n.recalcState.String() }

// isObservedOrNecessary reports whether the node currently has demand on it,
// either directly (Observed) or transitively (Necessary).
func (n *Node) isObservedOrNecessary() bool {
	return n.observedCount > 0 || n.necessaryCount > 0
}

// ObservedState classifies a node's demand status.
type ObservedState int

const (
	// Unnecessary means no observed node depends, even transitively, on
	// this node's output.
	Unnecessary ObservedState = iota
	// Necessary means the node is not itself Observed, but some Observed
	// node depends on it through a necessary edge.
	Necessary
	// Observed means the node was explicitly marked with MarkObserved.
	Observed
)

func (s ObservedState) String() string {
	switch s {
	case Observed:
		return "Observed"
	case Necessary:
		return "Necessary"
	default:
		return "Unnecessary"
	}
}

func (n *Node) observedState() ObservedState {
	if n.observedCount > 0 {
		return Observed
	}
	if n.necessaryCount > 0 {
		return Necessary
	}
	return Unnecessary
}

//
// clean-parent bookkeeping
//

func (n *Node) addCleanParent(parent *Node) {
	if n.cleanParent0 == nil {
		n.cleanParent0 = parent
		return
	}
	n.cleanParents = append(n.cleanParents, parent)
}

// drainCleanParents removes and returns every clean parent recorded on n.
func (n *Node) drainCleanParents() []*Node {
	if n.cleanParent0 == nil {
		return nil
	}
	out := make([]*Node, 0, 1+len(n.cleanParents))
	out = append(out, n.cleanParent0)
	out = append(out, n.cleanParents...)
	n.cleanParent0 = nil
	n.cleanParents = nil
	return out
}

// removeCleanParent unlinks a single clean parent, used when a dynamic
// (Then) node drops a dependency it no longer requests. A no-op if parent
// was not recorded.
func (n *Node) removeCleanParent(parent *Node) {
	if n.cleanParent0 == parent {
		n.cleanParent0 = nil
		return
	}
	for i, p := range n.cleanParents {
		if p == parent {
			n.cleanParents = append(n.cleanParents[:i], n.cleanParents[i+1:]...)
			return
		}
	}
}

//
// necessary-children bookkeeping
//

func (n *Node) necessaryChildIndex(child *Node) (int, bool) {
	i := sort.Search(len(n.necessaryChildren), func(i int) bool {
		return n.necessaryChildren[i].seq >= child.seq
	})
	if i < len(n.necessaryChildren) && n.necessaryChildren[i] == child {
		return i, true
	}
	return i, false
}

// addNecessaryChild records child as kept alive by n, incrementing the
// child's necessaryCount exactly once no matter how many times this is
// called for the same pair.
func (n *Node) addNecessaryChild(child *Node) {
	i, found := n.necessaryChildIndex(child)
	if found {
		return
	}
	n.necessaryChildren = append(n.necessaryChildren, nil)
	copy(n.necessaryChildren[i+1:], n.necessaryChildren[i:])
	n.necessaryChildren[i] = child
	child.necessaryCount++
}

// removeNecessaryChild undoes addNecessaryChild. It is a no-op if child was
// not recorded.
func (n *Node) removeNecessaryChild(child *Node) {
	i, found := n.necessaryChildIndex(child)
	if !found {
		return
	}
	n.necessaryChildren = append(n.necessaryChildren[:i], n.necessaryChildren[i+1:]...)
	child.necessaryCount--
}

// drainNecessaryChildren removes and returns every necessary child,
// decrementing each one's necessaryCount. Used when freeing a node.
func (n *Node) drainNecessaryChildren() []*Node {
	children := n.necessaryChildren
	n.necessaryChildren = nil
	for _, c := range children {
		c.necessaryCount--
	}
	return children
}
