package reago

import (
	"testing"
	"time"
)

func recvTimeout(t *testing.T, ch <-chan int) (int, bool) {
	t.Helper()
	select {
	case v, ok := <-ch:
		return v, ok
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting on stream")
		return 0, false
	}
}

func TestStreamEmitsInitialAndSubsequentValues(t *testing.T) {
	_, cx := newTestScope()
	count, setCount := CreateSignal(cx, 1)

	ch := ToStream[int](cx, count)

	if v, ok := recvTimeout(t, ch); !ok || v != 1 {
		t.Fatalf("expected initial emission 1, got (%d, %v)", v, ok)
	}

	setCount.Set(2)
	if v, ok := recvTimeout(t, ch); !ok || v != 2 {
		t.Fatalf("expected 2, got (%d, %v)", v, ok)
	}

	setCount.Set(3)
	setCount.Set(4)
	if v, _ := recvTimeout(t, ch); v != 3 {
		t.Fatalf("expected buffered 3, got %d", v)
	}
	if v, _ := recvTimeout(t, ch); v != 4 {
		t.Fatalf("expected buffered 4, got %d", v)
	}
}

func TestStreamTerminatesOnDispose(t *testing.T) {
	rt, root := newTestScope()
	cx := rt.CreateScope(root)
	count, _ := CreateSignal(root, 0)
	doubled := CreateMemo(cx, func(_ *int) int { return count.Get() * 2 })

	ch := ToStream[int](cx, doubled)
	if v, ok := recvTimeout(t, ch); !ok || v != 0 {
		t.Fatalf("expected initial emission, got (%d, %v)", v, ok)
	}

	cx.Dispose()

	for {
		_, ok := recvTimeout(t, ch)
		if !ok {
			break
		}
	}

	if _, ok := doubled.TryGet(); ok {
		t.Errorf("memo must be absent after scope disposal")
	}
}

func TestStreamIndependentPerCall(t *testing.T) {
	_, cx := newTestScope()
	count, setCount := CreateSignal(cx, 0)

	a := ToStream[int](cx, count)
	b := ToStream[int](cx, count)

	if v, _ := recvTimeout(t, a); v != 0 {
		t.Fatalf("stream a: expected 0, got %d", v)
	}

	setCount.Set(5)

	// b has consumed nothing yet; both initial and new value are buffered.
	if v, _ := recvTimeout(t, b); v != 0 {
		t.Fatalf("stream b: expected buffered 0, got %d", v)
	}
	if v, _ := recvTimeout(t, b); v != 5 {
		t.Fatalf("stream b: expected 5, got %d", v)
	}
	if v, _ := recvTimeout(t, a); v != 5 {
		t.Fatalf("stream a: expected 5, got %d", v)
	}
}
