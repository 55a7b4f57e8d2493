// Package reago is a fine-grained reactive dependency-tracking runtime:
// a graph of observable values and derived or side-effecting
// computations that re-evaluate automatically, and minimally, when
// their inputs change.
//
// # Core Types
//
// Signals are leaf state cells, created as a read/write handle pair:
//
//	rt := reago.NewRuntime()
//	cx := rt.CreateScope(nil)
//	count, setCount := reago.CreateSignal(cx, 0)
//	setCount.Set(5)
//	_ = count.Get()
//
// Memos are cached derived values. The computation runs eagerly at
// creation and again whenever a tracked source changes; subscribers are
// notified only when the result actually differs:
//
//	doubled := reago.CreateMemo(cx, func(_ *int) int { return count.Get() * 2 })
//
// Effects are terminal subscribers that run for their side effects,
// immediately at creation and after any tracked source changes:
//
//	reago.CreateEffect(cx, func(_ *struct{}) struct{} {
//		fmt.Println("doubled =", doubled.Get())
//		return struct{}{}
//	})
//
// Dependencies are discovered dynamically: whatever a computation reads
// during a run becomes exactly its source set for that run, so
// conditional reads shed stale edges on the next run. Reads through the
// untracked entry points (GetUntracked, WithUntracked, Untracked) never
// register edges.
//
// # Scopes
//
// Every node is owned by exactly one Scope for its whole life. Disposing
// a scope disposes its descendant scopes, removes every owned node from
// the runtime, and runs cleanup callbacks in reverse registration
// order. Disposal is idempotent; reads through handles whose scope is
// gone panic, while the Try variants report absence instead.
//
// # Propagation
//
// A write drives a synchronous propagation pass that fully drains
// before Set returns: direct subscribers are marked dirty and queued,
// and the scheduler re-evaluates each dirty node at most once, always
// against fully-updated upstream values (glitch-free). Writes issued
// from inside a running effect append to the live queue instead of
// recursing. Runtime.Batch coalesces several writes into one pass.
//
// # Concurrency
//
// A Runtime is single-threaded by design: all operations on it must be
// issued from one goroutine, or be serialized externally. The only
// concurrency in the package is the stream adapter (ToStream), which
// funnels notifications into a channel for an asynchronous consumer.
package reago
