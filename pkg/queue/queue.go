// Package queue provides a mutex-guarded multi-producer, single-consumer
// queue used to hand work from other goroutines to the frame loop.
package queue

import "sync"

// Queue collects items pushed from any goroutine. A single consumer drains
// them once per frame.
type Queue[T any] struct {
	mu    sync.Mutex
	items []T

	// spare is only touched by the consumer.
	spare []T
}

// New creates a queue with room for capacity pending items.
func New[T any](capacity int) *Queue[T] {
	return &Queue[T]{
		items: make([]T, 0, capacity),
		spare: make([]T, 0, capacity),
	}
}

// Push appends an item. Safe for concurrent use.
func (q *Queue[T]) Push(item T) {
	q.mu.Lock()
	q.items = append(q.items, item)
	q.mu.Unlock()
}

// Pop removes and returns the oldest pending item.
func (q *Queue[T]) Pop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	var zero T
	if len(q.items) == 0 {
		return zero, false
	}
	item := q.items[0]
	q.items[0] = zero
	q.items = q.items[1:]
	return item, true
}

// Len returns the number of pending items.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Drain swaps out every pending item under the lock and then calls fn for
// each of them without holding it, so producers never wait on fn. Items
// pushed while fn runs are left for the next Drain. Drain must only be
// called from one goroutine.
func (q *Queue[T]) Drain(fn func(T)) int {
	q.mu.Lock()
	pending := q.items
	q.items = q.spare[:0]
	q.mu.Unlock()

	for _, item := range pending {
		fn(item)
	}

	n := len(pending)
	clear(pending)
	q.spare = pending[:0]
	return n
}
