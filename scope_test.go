package reago

import "testing"

func TestScopeCleanupReverseOrder(t *testing.T) {
	_, cx := newTestScope()

	var order []string
	cx.OnCleanup(func() { order = append(order, "first") })
	cx.OnCleanup(func() { order = append(order, "second") })
	cx.OnCleanup(func() { order = append(order, "third") })

	cx.Dispose()

	want := []string{"third", "second", "first"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("cleanup order %v, want %v", order, want)
		}
	}
}

func TestScopeDisposeIdempotent(t *testing.T) {
	_, cx := newTestScope()

	runs := 0
	cx.OnCleanup(func() { runs++ })

	cx.Dispose()
	cx.Dispose()

	if runs != 1 {
		t.Errorf("cleanup must run exactly once, got %d", runs)
	}
	if !cx.IsDisposed() {
		t.Errorf("scope must report disposed")
	}
}

func TestScopeDisposeCascades(t *testing.T) {
	rt, root := newTestScope()
	child := root.Child()
	grandchild := child.Child()

	var order []string
	child.OnCleanup(func() { order = append(order, "child") })
	grandchild.OnCleanup(func() { order = append(order, "grandchild") })

	sig, _ := CreateSignal(grandchild, 1)

	child.Dispose()

	if !grandchild.IsDisposed() {
		t.Errorf("descendant scopes must be disposed")
	}
	if len(order) != 2 || order[0] != "grandchild" || order[1] != "child" {
		t.Errorf("children dispose before their parent finishes: %v", order)
	}
	if _, ok := sig.TryGet(); ok {
		t.Errorf("nodes of disposed descendants must leave the arena")
	}
	if rt.NodeCount() != 0 {
		t.Errorf("expected empty arena, got %d nodes", rt.NodeCount())
	}
	if root.IsDisposed() {
		t.Errorf("parent scope must stay live")
	}
}

func TestScopeOnCleanupAfterDisposeRunsImmediately(t *testing.T) {
	_, cx := newTestScope()
	cx.Dispose()

	ran := false
	cx.OnCleanup(func() { ran = true })
	if !ran {
		t.Errorf("cleanup registered on a disposed scope must run immediately")
	}
}

func TestScopeDisposalSeversEdges(t *testing.T) {
	rt, root := newTestScope()
	cx := rt.CreateScope(root)

	count, setCount := CreateSignal(root, 0)
	runs := 0
	CreateEffect(cx, func(_ *struct{}) struct{} {
		_ = count.Get()
		runs++
		return struct{}{}
	})

	cx.Dispose()
	setCount.Set(1)

	if runs != 1 {
		t.Errorf("edge to disposed subscriber must be severed, got %d runs", runs)
	}

	// The surviving signal carries no subscriber edges anymore.
	for _, n := range rt.Snapshot().Nodes {
		if n.ID == count.ID() && len(n.Subscribers) != 0 {
			t.Errorf("expected no subscribers, got %v", n.Subscribers)
		}
	}
}

func TestCreateOnDisposedScopePanics(t *testing.T) {
	_, cx := newTestScope()
	cx.Dispose()

	assertPanics(t, "CreateSignal", func() { CreateSignal(cx, 0) })
	assertPanics(t, "CreateScope", func() { cx.Child() })
}
