package reago

// handleRef identifies a node through its runtime. It is the unexported
// plumbing that closes the Readable interface over this package's
// handle types.
type handleRef struct {
	rt *Runtime
	id NodeID
}

// Readable is the read capability shared by ReadSignal and Memo: the
// four-way {tracked, untracked} x {value, callback} access surface plus
// the stream adapter. The variant set is closed; only handle types
// defined in this package implement it.
type Readable[T any] interface {
	Get() T
	GetUntracked() T
	TryGet() (value T, ok bool)
	TryGetUntracked() (value T, ok bool)
	ID() NodeID

	ref() handleRef
}

// With applies f to the current value and returns f's result. The read
// is tracked: inside a computation it registers a dependency edge
// exactly as Get does.
func With[T, O any](r Readable[T], f func(T) O) O {
	return f(r.Get())
}

// WithUntracked applies f to the current value without registering an
// edge.
func WithUntracked[T, O any](r Readable[T], f func(T) O) O {
	return f(r.GetUntracked())
}

// TryWith is With for handles that may have outlived their scope; ok
// is false and f is not called when the owning scope has been disposed.
func TryWith[T, O any](r Readable[T], f func(T) O) (out O, ok bool) {
	v, ok := r.TryGet()
	if !ok {
		var zero O
		return zero, false
	}
	return f(v), true
}

// TryWithUntracked is WithUntracked with disposed-access reported as
// ok == false.
func TryWithUntracked[T, O any](r Readable[T], f func(T) O) (out O, ok bool) {
	v, ok := r.TryGetUntracked()
	if !ok {
		var zero O
		return zero, false
	}
	return f(v), true
}

var (
	_ Readable[int] = ReadSignal[int]{}
	_ Readable[int] = Memo[int]{}
)
