package reago

import "sort"

// NodeInfo describes one live node for introspection.
type NodeInfo struct {
	ID          NodeID   `json:"id"`
	Kind        string   `json:"kind"`
	Scope       ScopeID  `json:"scope"`
	State       string   `json:"state"`
	Subscribers []NodeID `json:"subscribers,omitempty"`
	Sources     []NodeID `json:"sources,omitempty"`
}

// Snapshot is a point-in-time copy of the dependency graph.
type Snapshot struct {
	Nodes []NodeInfo `json:"nodes"`
}

// Snapshot copies the current graph structure. Must be called on the
// runtime's goroutine like every other runtime operation; the returned
// value shares no state with the runtime and may cross goroutines.
func (rt *Runtime) Snapshot() Snapshot {
	nodes := make([]NodeInfo, 0, len(rt.nodes))
	for _, n := range rt.nodes {
		info := NodeInfo{
			ID:    n.id,
			Kind:  n.kind.String(),
			Scope: n.scope.id,
			State: n.state.String(),
		}
		if len(n.subscribers) > 0 {
			info.Subscribers = append([]NodeID(nil), n.subscribers...)
		}
		if len(n.sources) > 0 {
			info.Sources = append([]NodeID(nil), n.sources...)
		}
		nodes = append(nodes, info)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
	return Snapshot{Nodes: nodes}
}
