package incr

// NodeStats are per-node recomputation counters, exposed mostly for tests
// and debug tooling. Grounded on the teacher's stats.go (same fields;
// children/parents is replaced by necessary-child count since that's the
// edge kind this engine actually tracks a count for).
type NodeStats struct {
	Recomputes        uint64
	Changes           uint64
	NecessaryChildren int
	Height            int
}

// Stats returns a snapshot of a node's recomputation counters.
func (n *Node) Stats() NodeStats {
	return NodeStats{
		Recomputes:        n.numRecomputes,
		Changes:           n.numChanges,
		NecessaryChildren: len(n.necessaryChildren),
		Height:            n.height,
	}
}

// EngineStats are graph-wide recomputation counters.
type EngineStats struct {
	StabilizationNum   uint64
	NumNodes           int
	NumNodesRecomputed uint64
	NumNodesChanged    uint64
}

// Stats returns a snapshot of the engine's graph-wide counters.
func (e *Engine) Stats() EngineStats {
	return EngineStats{
		StabilizationNum:   e.stabilizationNum,
		NumNodes:           e.graph.NumNodes(),
		NumNodesRecomputed: e.numNodesRecomputed,
		NumNodesChanged:    e.numNodesChanged,
	}
}
