package reago

import (
	"fmt"
	"time"
)

// markSubscribers moves the direct subscribers of n from clean to dirty
// and enqueues them. A node already dirty stays queued once; a running
// node that is notified (a write to one of its own sources) is
// re-enqueued and runs again in the same pass, bounded by the per-pass
// update cap.
func (rt *Runtime) markSubscribers(n *node) {
	for _, sid := range n.subscribers {
		s := rt.nodes[sid]
		if s == nil || s.state == stateDirty {
			continue
		}
		s.state = stateDirty
		rt.queue = append(rt.queue, sid)
	}
}

// drain runs the propagation pass: an explicit FIFO work list consumed
// by one loop. Each dirty node is updated at most once; nodes forced up
// to date earlier in the pass (by a read that pulled a dirty memo) are
// skipped when dequeued. Writes issued mid-pass append to the same
// queue rather than starting a nested pass.
func (rt *Runtime) drain(origin NodeID) {
	if rt.propagating || rt.batchDepth > 0 || len(rt.queue) == 0 {
		return
	}
	rt.propagating = true
	defer func() { rt.propagating = false }()

	var start time.Time
	if rt.hooks.OnPassEnd != nil {
		start = time.Now()
	}
	if rt.hooks.OnPassStart != nil {
		rt.hooks.OnPassStart(origin)
	}

	updates := 0
	for len(rt.queue) > 0 {
		id := rt.queue[0]
		rt.queue = rt.queue[1:]
		n := rt.nodes[id]
		if n == nil || n.state != stateDirty {
			// Disposed mid-pass, or already brought up to date.
			continue
		}
		updates++
		if updates > rt.maxPassUpdates {
			panic(fmt.Sprintf(
				"[REAGO E003] propagation pass exceeded %d updates (origin node %d): dependency cycle suspected",
				rt.maxPassUpdates, origin))
		}
		rt.update(n)
	}
	if len(rt.queue) == 0 {
		rt.queue = nil
	}

	if rt.hooks.OnPassEnd != nil {
		rt.hooks.OnPassEnd(PassStats{
			Origin:   origin,
			Updates:  updates,
			Duration: time.Since(start),
		})
	}
}

// update re-evaluates a memo or effect. Dependency edges are rebuilt
// from scratch: the source set after the run equals exactly what the
// run read. A memo whose recomputed value equals the previous one does
// not notify its subscribers.
func (rt *Runtime) update(n *node) {
	var start time.Time
	if rt.hooks.OnNodeUpdate != nil {
		start = time.Now()
	}

	n.state = stateRunning
	rt.clearSources(n)

	var prev any
	if n.ran {
		prev = n.value
	}
	var next any
	rt.withObserver(n.id, func() {
		next = n.run(prev, !n.ran)
	})

	changed := true
	if n.kind == KindMemo && n.ran {
		changed = !n.equals(prev, next)
	}
	n.value = next
	n.ran = true

	// A notification delivered mid-run re-dirtied the node; leave it
	// queued so it runs again this pass.
	if n.state == stateRunning {
		n.state = stateClean
	}

	if rt.hooks.OnNodeUpdate != nil {
		rt.hooks.OnNodeUpdate(n.id, n.kind, time.Since(start))
	}

	if n.kind == KindMemo && changed {
		rt.markSubscribers(n)
	}
}

// clearSources severs the stale source edges left by the previous run.
func (rt *Runtime) clearSources(n *node) {
	for _, sid := range n.sources {
		if s := rt.nodes[sid]; s != nil {
			s.removeSubscriber(n.id)
		}
	}
	n.sources = n.sources[:0]
}
