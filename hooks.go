package reago

import "time"

// PassStats summarizes one completed propagation pass.
type PassStats struct {
	// Origin is the node whose write started the pass, or NoNode for a
	// pass drained at the end of a batch.
	Origin NodeID

	// Updates is the number of node re-evaluations the pass performed.
	Updates int

	// Duration is the wall time the pass took to drain.
	Duration time.Duration
}

// Hooks receives runtime lifecycle notifications. Every field is
// optional. Hooks run synchronously on the runtime's goroutine; they
// must return quickly and must not call back into the Runtime.
//
// The telemetry and inspector packages are built on these.
type Hooks struct {
	OnNodeCreated   func(id NodeID, kind NodeKind)
	OnNodeRemoved   func(id NodeID, kind NodeKind)
	OnScopeCreated  func(id ScopeID)
	OnScopeDisposed func(id ScopeID)

	// OnWrite fires for every signal write, before propagation.
	OnWrite func(id NodeID)

	// OnNodeUpdate fires after each memo recomputation or effect run.
	OnNodeUpdate func(id NodeID, kind NodeKind, d time.Duration)

	OnPassStart func(origin NodeID)
	OnPassEnd   func(stats PassStats)
}

// CombineHooks fans every notification out to each of hs in order.
func CombineHooks(hs ...Hooks) Hooks {
	var out Hooks
	out.OnNodeCreated = func(id NodeID, kind NodeKind) {
		for _, h := range hs {
			if h.OnNodeCreated != nil {
				h.OnNodeCreated(id, kind)
			}
		}
	}
	out.OnNodeRemoved = func(id NodeID, kind NodeKind) {
		for _, h := range hs {
			if h.OnNodeRemoved != nil {
				h.OnNodeRemoved(id, kind)
			}
		}
	}
	out.OnScopeCreated = func(id ScopeID) {
		for _, h := range hs {
			if h.OnScopeCreated != nil {
				h.OnScopeCreated(id)
			}
		}
	}
	out.OnScopeDisposed = func(id ScopeID) {
		for _, h := range hs {
			if h.OnScopeDisposed != nil {
				h.OnScopeDisposed(id)
			}
		}
	}
	out.OnWrite = func(id NodeID) {
		for _, h := range hs {
			if h.OnWrite != nil {
				h.OnWrite(id)
			}
		}
	}
	out.OnNodeUpdate = func(id NodeID, kind NodeKind, d time.Duration) {
		for _, h := range hs {
			if h.OnNodeUpdate != nil {
				h.OnNodeUpdate(id, kind, d)
			}
		}
	}
	out.OnPassStart = func(origin NodeID) {
		for _, h := range hs {
			if h.OnPassStart != nil {
				h.OnPassStart(origin)
			}
		}
	}
	out.OnPassEnd = func(stats PassStats) {
		for _, h := range hs {
			if h.OnPassEnd != nil {
				h.OnPassEnd(stats)
			}
		}
	}
	return out
}
