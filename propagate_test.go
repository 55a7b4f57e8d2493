package reago

import (
	"strings"
	"testing"
)

// A diamond: effect reads both a signal and a memo derived from it. One
// write must produce exactly one effect run, observing the fully
// updated pair, never a torn old/new mix.
func TestPropagationGlitchFree(t *testing.T) {
	_, cx := newTestScope()
	a, setA := CreateSignal(cx, 1)
	b := CreateMemo(cx, func(_ *int) int { return a.Get() * 10 })

	type pair struct{ a, b int }
	var seen []pair
	CreateEffect(cx, func(_ *struct{}) struct{} {
		seen = append(seen, pair{a.Get(), b.Get()})
		return struct{}{}
	})
	var seen2 []pair
	CreateEffect(cx, func(_ *struct{}) struct{} {
		// Opposite read order from the first effect.
		vb := b.Get()
		va := a.Get()
		seen2 = append(seen2, pair{va, vb})
		return struct{}{}
	})

	setA.Set(2)

	if len(seen) != 2 || len(seen2) != 2 {
		t.Fatalf("each effect must run exactly once per pass: %d and %d runs", len(seen), len(seen2))
	}
	for _, p := range [][]pair{seen, seen2} {
		got := p[1]
		if got.a != 2 || got.b != 20 {
			t.Errorf("torn read: observed (a=%d, b=%d), want (2, 20)", got.a, got.b)
		}
	}
}

func TestPropagationAtMostOncePerPass(t *testing.T) {
	_, cx := newTestScope()
	a, setA := CreateSignal(cx, 1)

	// Two paths from a to the final memo.
	left := CreateMemo(cx, func(_ *int) int { return a.Get() + 1 })
	right := CreateMemo(cx, func(_ *int) int { return a.Get() * 2 })

	computations := 0
	total := CreateMemo(cx, func(_ *int) int {
		computations++
		return left.Get() + right.Get()
	})
	CreateEffect(cx, func(_ *struct{}) struct{} {
		_ = total.Get()
		return struct{}{}
	})

	setA.Set(3)

	if computations != 2 {
		t.Errorf("node with two dependency paths must update once per pass, got %d computations", computations)
	}
	if got := total.GetUntracked(); got != 10 {
		t.Errorf("expected 10, got %d", got)
	}
}

func TestBatchCoalescesWrites(t *testing.T) {
	rt, cx := newTestScope()
	first, setFirst := CreateSignal(cx, "ada")
	last, setLast := CreateSignal(cx, "lovelace")

	runs := 0
	var full string
	CreateEffect(cx, func(_ *struct{}) struct{} {
		full = first.Get() + " " + last.Get()
		runs++
		return struct{}{}
	})

	rt.Batch(func() {
		setFirst.Set("grace")
		setLast.Set("hopper")
		if runs != 1 {
			t.Errorf("no propagation inside a batch, got %d runs", runs)
		}
	})

	if runs != 2 {
		t.Errorf("batch must drain once, got %d runs", runs)
	}
	if full != "grace hopper" {
		t.Errorf("expected both writes visible, got %q", full)
	}
}

func TestBatchNested(t *testing.T) {
	rt, cx := newTestScope()
	count, setCount := CreateSignal(cx, 0)

	runs := 0
	CreateEffect(cx, func(_ *struct{}) struct{} {
		_ = count.Get()
		runs++
		return struct{}{}
	})

	rt.Batch(func() {
		setCount.Set(1)
		rt.Batch(func() {
			setCount.Set(2)
		})
		if runs != 1 {
			t.Errorf("inner batch exit must not drain, got %d runs", runs)
		}
	})

	if runs != 2 {
		t.Errorf("expected one drain at outermost exit, got %d runs", runs)
	}
}

// An effect that writes back into its own source would requeue itself
// forever; the per-pass cap must fail loudly instead.
func TestWriteBackCycleFailsLoudly(t *testing.T) {
	rt := NewRuntime(WithMaxPassUpdates(64))
	cx := rt.CreateScope(nil)
	count, setCount := CreateSignal(cx, 0)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected cycle panic")
		}
		msg, ok := r.(string)
		if !ok || !strings.Contains(msg, "E003") {
			t.Fatalf("expected E003 cycle diagnostic, got %v", r)
		}
	}()

	CreateEffect(cx, func(_ *struct{}) struct{} {
		setCount.Set(count.Get() + 1)
		return struct{}{}
	})
	setCount.Set(100)
}

func TestCyclicReadFailsLoudly(t *testing.T) {
	_, cx := newTestScope()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected cyclic read panic")
		}
		if msg, ok := r.(string); !ok || !strings.Contains(msg, "E004") {
			t.Fatalf("expected E004 diagnostic, got %v", r)
		}
	}()

	tick, setTick := CreateSignal(cx, 0)
	ready := false
	var self Memo[int]
	self = CreateMemo(cx, func(_ *int) int {
		_ = tick.Get()
		if ready {
			return self.Get()
		}
		return 0
	})
	ready = true

	// Recompute; the body now reads the memo during its own evaluation.
	setTick.Set(1)
	t.Fatalf("expected panic before this point")
}
