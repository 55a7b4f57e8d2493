package reago

// Batch groups multiple writes into a single propagation pass. Nodes
// marked dirty inside fn stay queued until the outermost batch exits,
// then one pass drains them; a node reached through several written
// sources still updates only once. Batches nest.
func (rt *Runtime) Batch(fn func()) {
	rt.batchDepth++
	defer func() {
		rt.batchDepth--
		if rt.batchDepth == 0 {
			rt.drain(NoNode)
		}
	}()
	fn()
}
