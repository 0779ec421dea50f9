// Package eventbus provides the unbounded multi-producer queue that carries
// encoder events to the single control loop.
package eventbus

import "sync"

// Queue is an unbounded FIFO. Send never blocks and is safe for concurrent
// producers; receive operations never block and are meant for one consumer.
type Queue[T any] struct {
	mu    sync.Mutex
	items []T
	ready chan struct{}
}

// New constructs an empty queue.
func New[T any]() *Queue[T] {
	return &Queue[T]{ready: make(chan struct{}, 1)}
}

// Send appends item and wakes a waiting consumer.
func (q *Queue[T]) Send(item T) {
	if q == nil {
		return
	}
	q.mu.Lock()
	q.items = append(q.items, item)
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// TryRecv removes and returns the oldest item, or false if the queue is empty.
func (q *Queue[T]) TryRecv() (T, bool) {
	var zero T
	if q == nil {
		return zero, false
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return zero, false
	}
	item := q.items[0]
	q.items[0] = zero
	q.items = q.items[1:]
	if len(q.items) == 0 {
		q.items = nil
	}
	return item, true
}

// Drain removes and returns every pending item in send order.
func (q *Queue[T]) Drain() []T {
	if q == nil {
		return nil
	}
	q.mu.Lock()
	items := q.items
	q.items = nil
	q.mu.Unlock()
	return items
}

// Len reports the number of pending items.
func (q *Queue[T]) Len() int {
	if q == nil {
		return 0
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Ready returns a channel that receives after one or more sends. Signals
// coalesce, so a receive means "check the queue", not "exactly one item".
func (q *Queue[T]) Ready() <-chan struct{} {
	return q.ready
}
