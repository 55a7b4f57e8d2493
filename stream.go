package reago

import "sync"

// ToStream bridges the push model to a pull-based sequence: it returns
// a channel that carries the current value of r at creation and after
// every subsequent change. Emission is driven by an effect owned by cx;
// disposing cx ends the stream and closes the channel.
//
// Each call creates an independent effect/channel pair, so two streams
// over the same node are independently paced. The sequence is
// open-ended and not restartable.
//
// Values are buffered without bound between the emitting effect and the
// consumer, so a slow consumer never stalls a propagation pass. Values
// still buffered when the scope is disposed may be dropped.
func ToStream[T any](cx *Scope, r Readable[T]) <-chan T {
	out := make(chan T)
	q := &streamQueue[T]{
		notify: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}

	CreateEffect(cx, func(_ *struct{}) struct{} {
		q.push(r.Get())
		return struct{}{}
	})
	cx.OnCleanup(q.close)

	go func() {
		defer close(out)
		for {
			v, ok := q.pop()
			if ok {
				select {
				case out <- v:
				case <-q.done:
					return
				}
				continue
			}
			select {
			case <-q.notify:
			case <-q.done:
				return
			}
		}
	}()

	return out
}

// streamQueue is the unbounded buffer between the runtime goroutine
// (push, close) and a stream's forwarder goroutine (pop).
type streamQueue[T any] struct {
	mu     sync.Mutex
	items  []T
	closed bool

	notify chan struct{}
	done   chan struct{}
	once   sync.Once
}

func (q *streamQueue[T]) push(v T) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.items = append(q.items, v)
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
}

func (q *streamQueue[T]) pop() (v T, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		var zero T
		return zero, false
	}
	v = q.items[0]
	q.items = q.items[1:]
	return v, true
}

func (q *streamQueue[T]) close() {
	q.mu.Lock()
	q.closed = true
	q.items = nil
	q.mu.Unlock()
	q.once.Do(func() { close(q.done) })
}
