package reago

// CreateEffect allocates an effect owned by cx and runs f immediately.
// f receives its own previous return value, nil on the first run; the
// return value is runtime-private state threaded between runs, never
// readable by other nodes.
//
// Every node read during a run subscribes the effect to that node, and
// the effect reruns whenever any of them changes. Dependencies are
// rediscovered on each run exactly as for memos. Effects are
// propagation sinks: they have no subscribers of their own.
//
// A write performed inside f while a pass is draining is appended to
// the same pass's queue; a true write-back cycle trips the runtime's
// per-pass update cap.
func CreateEffect[S any](cx *Scope, f func(prev *S) S) {
	rt := cx.runtime
	n := rt.newNode(cx, KindEffect)
	n.run = func(prev any, first bool) any {
		if first {
			return f(nil)
		}
		p := prev.(S)
		return f(&p)
	}
	rt.update(n)
}
