package reago

// ScopeID is the stable identifier of a scope.
type ScopeID uint64

// Scope is a disposable ownership boundary. It owns the nodes created
// within it, its child scopes, and a list of cleanup callbacks.
// Disposing a scope disposes all descendants, removes every owned node
// from the runtime's arena, and runs the cleanups in reverse
// registration order. A node's owning scope never changes.
type Scope struct {
	id      ScopeID
	runtime *Runtime
	parent  *Scope

	children []*Scope
	cleanups []func()
	nodes    []NodeID

	disposed bool
}

// CreateScope allocates a new scope under parent. A nil parent creates
// a root scope.
func (rt *Runtime) CreateScope(parent *Scope) *Scope {
	if parent != nil && parent.disposed {
		panic("[REAGO E002] CreateScope on disposed scope")
	}
	rt.nextScope++
	cx := &Scope{
		id:      rt.nextScope,
		runtime: rt,
		parent:  parent,
	}
	if parent != nil {
		parent.children = append(parent.children, cx)
	}
	if rt.hooks.OnScopeCreated != nil {
		rt.hooks.OnScopeCreated(cx.id)
	}
	return cx
}

// Child creates a scope owned by cx.
func (cx *Scope) Child() *Scope {
	return cx.runtime.CreateScope(cx)
}

// ID returns the scope's identifier.
func (cx *Scope) ID() ScopeID {
	return cx.id
}

// Runtime returns the runtime this scope belongs to.
func (cx *Scope) Runtime() *Runtime {
	return cx.runtime
}

// Parent returns the parent scope, or nil for a root scope.
func (cx *Scope) Parent() *Scope {
	return cx.parent
}

// IsDisposed reports whether the scope has been disposed.
func (cx *Scope) IsDisposed() bool {
	return cx.disposed
}

// OnCleanup registers fn to run when the scope is disposed. Cleanups
// run exactly once, in reverse registration order. Registering on an
// already-disposed scope runs fn immediately.
func (cx *Scope) OnCleanup(fn func()) {
	if cx.disposed {
		fn()
		return
	}
	cx.cleanups = append(cx.cleanups, fn)
}

// Dispose tears the scope down: children first (most recently created
// first), then the owned nodes leave the arena with their edges
// severed, then the cleanups fire in reverse order. Disposal is
// idempotent and monotone; a disposed scope cannot be reused.
func (cx *Scope) Dispose() {
	if cx.disposed {
		return
	}
	cx.disposed = true

	if cx.parent != nil {
		cx.parent.removeChild(cx)
	}

	children := cx.children
	cx.children = nil
	for i := len(children) - 1; i >= 0; i-- {
		children[i].Dispose()
	}

	rt := cx.runtime
	nodes := cx.nodes
	cx.nodes = nil
	for i := len(nodes) - 1; i >= 0; i-- {
		rt.removeNode(nodes[i])
	}

	cleanups := cx.cleanups
	cx.cleanups = nil
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}

	if rt.hooks.OnScopeDisposed != nil {
		rt.hooks.OnScopeDisposed(cx.id)
	}
}

// removeChild drops a child scope from cx's children.
func (cx *Scope) removeChild(child *Scope) {
	for i, c := range cx.children {
		if c == child {
			cx.children = append(cx.children[:i], cx.children[i+1:]...)
			return
		}
	}
}
