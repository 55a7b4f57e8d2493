package reago

import "fmt"

// defaultMaxPassUpdates bounds the number of node updates a single
// propagation pass may perform before the runtime assumes a dependency
// cycle and fails loudly.
const defaultMaxPassUpdates = 100_000

// Runtime owns the node arena, the observer stack, and the propagation
// queue. All graph mutation and recomputation happen synchronously on
// the goroutine that calls into the Runtime; a multi-goroutine embedding
// must serialize access externally.
type Runtime struct {
	// nodes is the arena, keyed by stable IDs that are never reused.
	nodes     map[NodeID]*node
	nextNode  NodeID
	nextScope ScopeID

	// observers is the stack of computations currently being evaluated,
	// innermost last. Tracked reads register an edge against the top.
	observers []NodeID

	// untracked suppresses edge registration while positive.
	untracked int

	// queue is the propagation work list. An explicit list drained by
	// one loop, so re-entrant writes enqueue work instead of recursing.
	queue       []NodeID
	propagating bool
	batchDepth  int

	maxPassUpdates int
	hooks          Hooks
}

// Option configures a Runtime at construction.
type Option func(*Runtime)

// WithMaxPassUpdates caps the number of node updates per propagation
// pass. Exceeding the cap panics with a cycle diagnostic instead of
// looping forever. n must be positive.
func WithMaxPassUpdates(n int) Option {
	return func(rt *Runtime) {
		if n > 0 {
			rt.maxPassUpdates = n
		}
	}
}

// WithHooks installs instrumentation hooks. Hooks are invoked
// synchronously on the runtime's goroutine and must not call back into
// the Runtime.
func WithHooks(h Hooks) Option {
	return func(rt *Runtime) {
		rt.hooks = h
	}
}

// NewRuntime creates an empty runtime.
func NewRuntime(opts ...Option) *Runtime {
	rt := &Runtime{
		nodes:          make(map[NodeID]*node),
		maxPassUpdates: defaultMaxPassUpdates,
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// newNode allocates an arena slot owned by cx.
func (rt *Runtime) newNode(cx *Scope, kind NodeKind) *node {
	if cx == nil {
		panic("[REAGO E005] nil scope passed to Create" + titleKind(kind))
	}
	if cx.disposed {
		panic(fmt.Sprintf("[REAGO E002] Create%s on disposed scope %d", titleKind(kind), cx.id))
	}
	rt.nextNode++
	n := &node{
		id:    rt.nextNode,
		kind:  kind,
		scope: cx,
	}
	rt.nodes[n.id] = n
	cx.nodes = append(cx.nodes, n.id)
	if rt.hooks.OnNodeCreated != nil {
		rt.hooks.OnNodeCreated(n.id, kind)
	}
	return n
}

// removeNode severs a node's edges and frees its arena slot.
// Called only from scope disposal.
func (rt *Runtime) removeNode(id NodeID) {
	n := rt.nodes[id]
	if n == nil {
		return
	}
	for _, sid := range n.sources {
		if s := rt.nodes[sid]; s != nil {
			s.removeSubscriber(id)
		}
	}
	for _, sid := range n.subscribers {
		if s := rt.nodes[sid]; s != nil {
			s.removeSource(id)
		}
	}
	n.sources = nil
	n.subscribers = nil
	delete(rt.nodes, id)
	if rt.hooks.OnNodeRemoved != nil {
		rt.hooks.OnNodeRemoved(id, n.kind)
	}
}

// readNode returns the current value of id, registering a dependency
// edge on the running computation when tracked is true. A dirty memo is
// brought up to date before its value is returned, so a reader never
// observes a stale mix of upstream state. ok is false when the node's
// owning scope has been disposed.
func (rt *Runtime) readNode(id NodeID, tracked bool) (value any, ok bool) {
	n := rt.nodes[id]
	if n == nil {
		return nil, false
	}
	if n.state == stateRunning {
		panic(fmt.Sprintf("[REAGO E004] cyclic read of %s %d during its own evaluation", n.kind, id))
	}
	if n.kind == KindMemo && n.state == stateDirty {
		rt.update(n)
	}
	if tracked {
		rt.track(n)
	}
	return n.value, true
}

// write stores a new signal value and drives propagation synchronously.
// There is no diffing: every write is assumed to have produced a
// materially new value.
func (rt *Runtime) write(n *node, value any) {
	n.value = value
	if rt.hooks.OnWrite != nil {
		rt.hooks.OnWrite(n.id)
	}
	rt.markSubscribers(n)
	rt.drain(n.id)
}

// NodeCount reports the number of live nodes in the arena.
func (rt *Runtime) NodeCount() int {
	return len(rt.nodes)
}

func titleKind(kind NodeKind) string {
	switch kind {
	case KindSignal:
		return "Signal"
	case KindMemo:
		return "Memo"
	case KindEffect:
		return "Effect"
	default:
		return "Node"
	}
}
