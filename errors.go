package incr

import "fmt"

// CycleError is raised when raising a node's height in response to a new
// request edge would have to pass back through a node already on the
// in-progress height-raising walk, i.e. the edge would close a cycle.
//
// This is always a programmer error: cycles can only be introduced by a
// `then`/Bind-style node returning an anchor that (transitively) depends on
// itself. The engine panics with this error rather than returning it.
type CycleError struct {
	Offender *Node
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("incrgraph: cycle detected while raising height through %s", e.Offender)
}

// MaxHeightExceededError is raised when a node's height would have to be
// raised to or past the graph's configured maximum height.
type MaxHeightExceededError struct {
	Height    int
	MaxHeight int
}

func (e *MaxHeightExceededError) Error() string {
	return fmt.Sprintf("incrgraph: height %d reaches or exceeds graph max height %d", e.Height, e.MaxHeight)
}

// ProtocolError is raised when a computation violates the node contract,
// e.g. calling Get on a node that is not Ready, or delivering MarkDirty to a
// Variable or Constant. A Pending return from PollUpdated is not checked
// against the requests made during that call.
type ProtocolError struct {
	Node   *Node
	Reason string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("incrgraph: protocol violation at %s: %s", e.Node, e.Reason)
}
