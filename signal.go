package reago

import "fmt"

// ReadSignal is the readable half of a signal. It is a small value
// handle (runtime pointer plus node ID) and is freely copyable.
type ReadSignal[T any] struct {
	rt *Runtime
	id NodeID
}

// WriteSignal is the writable half of a signal.
type WriteSignal[T any] struct {
	rt *Runtime
	id NodeID
}

// CreateSignal allocates a signal owned by cx and returns its read and
// write handles.
func CreateSignal[T any](cx *Scope, initial T) (ReadSignal[T], WriteSignal[T]) {
	n := cx.runtime.newNode(cx, KindSignal)
	n.value = initial
	n.ran = true
	return ReadSignal[T]{rt: cx.runtime, id: n.id},
		WriteSignal[T]{rt: cx.runtime, id: n.id}
}

// Get returns the current value. Called during a computation, it
// registers a dependency edge from this signal to that computation.
// Get panics if the owning scope has been disposed; use TryGet to
// probe liveness instead.
func (s ReadSignal[T]) Get() T {
	v, ok := s.rt.readNode(s.id, true)
	if !ok {
		panic(disposedAccess("Get", KindSignal, s.id))
	}
	return v.(T)
}

// GetUntracked returns the current value without registering an edge.
func (s ReadSignal[T]) GetUntracked() T {
	v, ok := s.rt.readNode(s.id, false)
	if !ok {
		panic(disposedAccess("GetUntracked", KindSignal, s.id))
	}
	return v.(T)
}

// TryGet is Get for handles that may have outlived their scope. ok is
// false when the owning scope has been disposed.
func (s ReadSignal[T]) TryGet() (value T, ok bool) {
	v, ok := s.rt.readNode(s.id, true)
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

// TryGetUntracked is GetUntracked with disposed-access reported as ok
// == false instead of a panic.
func (s ReadSignal[T]) TryGetUntracked() (value T, ok bool) {
	v, ok := s.rt.readNode(s.id, false)
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

// ID returns the signal's node ID.
func (s ReadSignal[T]) ID() NodeID {
	return s.id
}

func (s ReadSignal[T]) ref() handleRef {
	return handleRef{rt: s.rt, id: s.id}
}

// Set stores value and drives a propagation pass synchronously before
// returning. Unlike memos, signals never suppress notification: every
// Set is treated as a material change, and avoiding redundant writes is
// the caller's concern. Set panics on a disposed handle.
func (s WriteSignal[T]) Set(value T) {
	n := s.rt.nodes[s.id]
	if n == nil {
		panic(disposedAccess("Set", KindSignal, s.id))
	}
	s.rt.write(n, value)
}

// TrySet is Set for handles that may have outlived their scope. It
// reports whether the write happened.
func (s WriteSignal[T]) TrySet(value T) bool {
	n := s.rt.nodes[s.id]
	if n == nil {
		return false
	}
	s.rt.write(n, value)
	return true
}

// Update replaces the value with fn applied to the current value, then
// propagates. The read is untracked.
func (s WriteSignal[T]) Update(fn func(T) T) {
	n := s.rt.nodes[s.id]
	if n == nil {
		panic(disposedAccess("Update", KindSignal, s.id))
	}
	s.rt.write(n, fn(n.value.(T)))
}

// ID returns the signal's node ID.
func (s WriteSignal[T]) ID() NodeID {
	return s.id
}

func disposedAccess(op string, kind NodeKind, id NodeID) string {
	return fmt.Sprintf("[REAGO E001] %s on disposed %s %d: the owning scope was disposed (use the Try variant to degrade gracefully)",
		op, kind, id)
}
