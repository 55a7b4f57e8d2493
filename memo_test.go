package reago

import "testing"

func TestMemoEagerInitialValue(t *testing.T) {
	_, cx := newTestScope()
	count, _ := CreateSignal(cx, 21)

	computations := 0
	doubled := CreateMemo(cx, func(_ *int) int {
		computations++
		return count.Get() * 2
	})

	if computations != 1 {
		t.Fatalf("memo must evaluate eagerly at creation: got %d computations", computations)
	}
	if got := doubled.Get(); got != 42 {
		t.Errorf("expected 42, got %d", got)
	}
	if computations != 1 {
		t.Errorf("first read must be free: got %d computations", computations)
	}
	if v, ok := doubled.TryGet(); !ok || v != 42 {
		t.Errorf("TryGet on a live memo never reports absent: got (%d, %v)", v, ok)
	}
}

func TestMemoRecomputesOncePerWrite(t *testing.T) {
	_, cx := newTestScope()
	count, setCount := CreateSignal(cx, 0)

	computations := 0
	doubled := CreateMemo(cx, func(_ *int) int {
		computations++
		return count.Get() * 2
	})

	// Several readers do not cause extra computations.
	CreateEffect(cx, func(_ *struct{}) struct{} {
		_ = doubled.Get()
		return struct{}{}
	})
	CreateEffect(cx, func(_ *struct{}) struct{} {
		_ = doubled.Get()
		return struct{}{}
	})

	setCount.Set(5)
	if computations != 2 {
		t.Errorf("expected exactly 1 recomputation per write, got %d total", computations)
	}
	if got := doubled.Get(); got != 10 {
		t.Errorf("expected 10, got %d", got)
	}
}

func TestMemoChangeSuppression(t *testing.T) {
	_, cx := newTestScope()
	count, setCount := CreateSignal(cx, 0)
	parity := CreateMemo(cx, func(_ *int) int { return count.Get() % 2 })

	var log []int
	CreateEffect(cx, func(_ *struct{}) struct{} {
		log = append(log, parity.Get())
		return struct{}{}
	})

	setCount.Set(1)
	if len(log) != 2 || log[1] != 1 {
		t.Fatalf("expected effect rerun with parity 1, log %v", log)
	}

	// 3 %% 2 == 1 again: the memo recomputes but must not notify.
	setCount.Set(3)
	if len(log) != 2 {
		t.Errorf("equal memo value must suppress downstream rerun, log %v", log)
	}
	if got := parity.GetUntracked(); got != 1 {
		t.Errorf("expected parity 1, got %d", got)
	}
}

func TestMemoPreviousValueArgument(t *testing.T) {
	_, cx := newTestScope()
	count, setCount := CreateSignal(cx, 1)

	var prevs []int
	sum := CreateMemo(cx, func(prev *int) int {
		if prev == nil {
			prevs = append(prevs, -1)
			return count.Get()
		}
		prevs = append(prevs, *prev)
		return *prev + count.Get()
	})

	setCount.Set(2)
	setCount.Set(3)

	if got := sum.Get(); got != 6 {
		t.Errorf("expected running sum 6, got %d", got)
	}
	want := []int{-1, 1, 3}
	for i := range want {
		if prevs[i] != want[i] {
			t.Fatalf("prev sequence %v, want %v", prevs, want)
		}
	}
}

func TestMemoCustomEquality(t *testing.T) {
	_, cx := newTestScope()
	word, setWord := CreateSignal(cx, "go")

	length := CreateMemo(cx, func(_ *int) int { return len(word.Get()) }).
		WithEquals(func(a, b int) bool { return a == b })

	runs := 0
	CreateEffect(cx, func(_ *struct{}) struct{} {
		_ = length.Get()
		runs++
		return struct{}{}
	})

	setWord.Set("rx") // same length, suppressed
	if runs != 1 {
		t.Errorf("expected suppression under custom equality, got %d runs", runs)
	}
	setWord.Set("три")
	if runs != 2 {
		t.Errorf("expected rerun on changed length, got %d runs", runs)
	}
}

func TestMemoDynamicDependencyRediscovery(t *testing.T) {
	rt, cx := newTestScope()
	flag, setFlag := CreateSignal(cx, true)
	x, setX := CreateSignal(cx, 10)
	y, setY := CreateSignal(cx, 20)

	computations := 0
	picked := CreateMemo(cx, func(_ *int) int {
		computations++
		if flag.Get() {
			return x.Get()
		}
		return y.Get()
	})

	if got := picked.Get(); got != 10 {
		t.Fatalf("expected 10, got %d", got)
	}

	// While flag is true, y must not be an edge.
	setY.Set(21)
	if computations != 1 {
		t.Fatalf("write to unread source must not recompute, got %d computations", computations)
	}

	setFlag.Set(false)
	if got := picked.Get(); got != 21 {
		t.Fatalf("expected 21 after branch switch, got %d", got)
	}

	// The stale edge to x must be gone after the branch switch.
	setX.Set(11)
	if computations != 2 {
		t.Errorf("stale edge not severed: got %d computations", computations)
	}

	// The snapshot agrees: picked's sources are exactly {flag, y}.
	snap := rt.Snapshot()
	for _, n := range snap.Nodes {
		if n.ID != picked.ID() {
			continue
		}
		if len(n.Sources) != 2 {
			t.Fatalf("expected 2 sources, got %v", n.Sources)
		}
		for _, src := range n.Sources {
			if src == x.ID() {
				t.Errorf("x is still a source after branch switch")
			}
		}
	}
}

func TestMemoChain(t *testing.T) {
	_, cx := newTestScope()
	count, setCount := CreateSignal(cx, 1)
	doubled := CreateMemo(cx, func(_ *int) int { return count.Get() * 2 })
	squared := CreateMemo(cx, func(_ *int) int { d := doubled.Get(); return d * d })

	if got := squared.Get(); got != 4 {
		t.Fatalf("expected 4, got %d", got)
	}
	setCount.Set(3)
	if got := squared.Get(); got != 36 {
		t.Errorf("expected 36, got %d", got)
	}
}

func TestMemoTryGetAfterDispose(t *testing.T) {
	rt, root := newTestScope()
	cx := rt.CreateScope(root)
	count, _ := CreateSignal(root, 0)
	doubled := CreateMemo(cx, func(_ *int) int { return count.Get() * 2 })

	cx.Dispose()

	if _, ok := doubled.TryGet(); ok {
		t.Errorf("TryGet on disposed memo must report absent")
	}
	assertPanics(t, "Get", func() { _ = doubled.Get() })
}
