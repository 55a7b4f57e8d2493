package reago

// Memo is a handle to a cached derived value.
//
// A memo comes with two guarantees a plain derived function does not:
//
//  1. It recomputes at most once per change, no matter how many nodes
//     read it afterward. The first computation happens eagerly at
//     creation, so the value is always present.
//  2. It notifies its own subscribers only when the recomputed value
//     differs from the previous one under the memo's equality
//     predicate. Equal results are absorbed and downstream nodes do
//     not rerun.
type Memo[T any] struct {
	rt *Runtime
	id NodeID
}

// CreateMemo allocates a memo owned by cx and evaluates f immediately.
// f receives the previously computed value, nil on the first run.
// Reads performed by f while it runs register this memo's source edges;
// the source set is rebuilt on every run, so a branch that reads
// different nodes in different runs sheds its stale edges.
//
// Values are compared with a type-appropriate default equality (== for
// common comparable types, reflect.DeepEqual otherwise); use WithEquals
// to override.
func CreateMemo[T any](cx *Scope, f func(prev *T) T) Memo[T] {
	rt := cx.runtime
	n := rt.newNode(cx, KindMemo)
	n.equals = func(a, b any) bool {
		return defaultEquals(a.(T), b.(T))
	}
	n.run = func(prev any, first bool) any {
		if first {
			return f(nil)
		}
		p := prev.(T)
		return f(&p)
	}
	rt.update(n)
	return Memo[T]{rt: rt, id: n.id}
}

// WithEquals replaces the memo's equality predicate and returns the
// same handle. The predicate only gates propagation; it does not affect
// whether the memo itself recomputes.
func (m Memo[T]) WithEquals(fn func(a, b T) bool) Memo[T] {
	if n := m.rt.nodes[m.id]; n != nil {
		n.equals = func(a, b any) bool {
			return fn(a.(T), b.(T))
		}
	}
	return m
}

// Get returns the cached value, registering a dependency edge on the
// running computation. The value is always present for a live memo, so
// Get never recomputes unless an upstream change is still being
// propagated. Get panics if the owning scope has been disposed.
func (m Memo[T]) Get() T {
	v, ok := m.rt.readNode(m.id, true)
	if !ok {
		panic(disposedAccess("Get", KindMemo, m.id))
	}
	return v.(T)
}

// GetUntracked returns the cached value without registering an edge.
func (m Memo[T]) GetUntracked() T {
	v, ok := m.rt.readNode(m.id, false)
	if !ok {
		panic(disposedAccess("GetUntracked", KindMemo, m.id))
	}
	return v.(T)
}

// TryGet is Get with disposed-access reported as ok == false instead
// of a panic. It never reports absent for a live memo.
func (m Memo[T]) TryGet() (value T, ok bool) {
	v, ok := m.rt.readNode(m.id, true)
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

// TryGetUntracked is GetUntracked with disposed-access reported as ok
// == false.
func (m Memo[T]) TryGetUntracked() (value T, ok bool) {
	v, ok := m.rt.readNode(m.id, false)
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

// ID returns the memo's node ID.
func (m Memo[T]) ID() NodeID {
	return m.id
}

func (m Memo[T]) ref() handleRef {
	return handleRef{rt: m.rt, id: m.id}
}
