package reago

// NodeID is the stable identifier of a node in the runtime's arena.
// IDs are monotonically increasing and never reused, so a dangling
// handle can always be detected by an arena miss.
type NodeID uint64

// NoNode is the zero NodeID. It never names a live node.
const NoNode NodeID = 0

// NodeKind discriminates the three node variants.
type NodeKind uint8

const (
	KindSignal NodeKind = iota + 1
	KindMemo
	KindEffect
)

// String returns a human-readable name for the node kind.
func (k NodeKind) String() string {
	switch k {
	case KindSignal:
		return "signal"
	case KindMemo:
		return "memo"
	case KindEffect:
		return "effect"
	default:
		return "unknown"
	}
}

// nodeState is the per-node propagation state machine:
// clean -> dirty (queued) -> running -> clean.
type nodeState uint8

const (
	stateClean nodeState = iota
	stateDirty
	stateRunning
)

func (s nodeState) String() string {
	switch s {
	case stateClean:
		return "clean"
	case stateDirty:
		return "dirty"
	case stateRunning:
		return "running"
	default:
		return "unknown"
	}
}

// node is one arena slot. Edges are plain ID pairs held in per-node
// slices; they establish relation and lookup, never ownership. A node's
// lifetime is determined solely by its owning scope.
type node struct {
	id    NodeID
	kind  NodeKind
	scope *Scope
	state nodeState

	// value holds the signal's current value, the memo's cached result,
	// or the effect's previous return value.
	value any

	// run recomputes the node from its previous value. nil for signals.
	// first is true until the node has completed a run, so a nil-valued
	// previous result is not mistaken for the initial run.
	run func(prev any, first bool) any

	// equals decides whether a recomputed memo value propagates.
	equals func(a, b any) bool

	// subscribers are nodes that read this node while tracking.
	subscribers []NodeID

	// sources are nodes this node read during its last run. Used to
	// sever stale edges before the next run.
	sources []NodeID

	// ran reports whether run has completed at least once.
	ran bool
}

// addSubscriber registers a subscriber edge, deduplicating by ID.
func (n *node) addSubscriber(id NodeID) {
	for _, existing := range n.subscribers {
		if existing == id {
			return
		}
	}
	n.subscribers = append(n.subscribers, id)
}

// removeSubscriber drops a subscriber edge if present.
func (n *node) removeSubscriber(id NodeID) {
	for i, existing := range n.subscribers {
		if existing == id {
			n.subscribers = append(n.subscribers[:i], n.subscribers[i+1:]...)
			return
		}
	}
}

// addSource registers a source edge, deduplicating by ID.
func (n *node) addSource(id NodeID) {
	for _, existing := range n.sources {
		if existing == id {
			return
		}
	}
	n.sources = append(n.sources, id)
}

// removeSource drops a source edge if present.
func (n *node) removeSource(id NodeID) {
	for i, existing := range n.sources {
		if existing == id {
			n.sources = append(n.sources[:i], n.sources[i+1:]...)
			return
		}
	}
}
