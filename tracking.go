package reago

// track registers an edge from source to the computation currently on
// top of the observer stack. No edge is created outside a computation
// or inside an untracked region.
func (rt *Runtime) track(source *node) {
	if rt.untracked > 0 || len(rt.observers) == 0 {
		return
	}
	obs := rt.observers[len(rt.observers)-1]
	if obs == source.id {
		return
	}
	o := rt.nodes[obs]
	if o == nil {
		return
	}
	source.addSubscriber(obs)
	o.addSource(source.id)
}

// withObserver runs fn with id on top of the observer stack. The stack
// and the untracked depth unwind even if fn panics, so an abnormal
// computation cannot leave tracking state behind.
func (rt *Runtime) withObserver(id NodeID, fn func()) {
	rt.observers = append(rt.observers, id)
	saved := rt.untracked
	rt.untracked = 0
	defer func() {
		rt.untracked = saved
		rt.observers = rt.observers[:len(rt.observers)-1]
	}()
	fn()
}

// Untracked runs fn with dependency tracking suspended: reads performed
// inside fn never register edges on the running computation. For single
// reads, GetUntracked is the lighter entry point.
func Untracked(cx *Scope, fn func()) {
	rt := cx.runtime
	rt.untracked++
	defer func() { rt.untracked-- }()
	fn()
}
