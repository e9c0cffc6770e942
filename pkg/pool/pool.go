// Package pool implements a capacity-doubling slot allocator for reusable
// resource handles.
//
// A Pool keeps three counters: capacity (backing array length), count (entries
// built by the construct callback) and last (live entries). Released entries
// stay constructed and are handed out again by the next Request, so the
// destroy callback only runs from Clear.
package pool

// Slot indexes a live pool entry.
//
// A Slot is only valid until the next Release on the same pool: Release
// moves the last live entry into the released position. Code that needs a
// handle across frames should go through Keyed instead of caching a Slot.
type Slot int

// Pool is a slot allocator over pre-constructed values of T. It is not safe
// for concurrent use.
type Pool[T any] struct {
	items     []T
	count     int
	last      int
	construct func() T
	destroy   func(*T)
}

// New creates a pool with room for capacity entries. construct builds a new
// entry when no released one is available; destroy is called by Clear on
// every constructed entry, live or released. Either callback may be nil.
func New[T any](capacity int, construct func() T, destroy func(*T)) *Pool[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Pool[T]{
		items:     make([]T, capacity),
		construct: construct,
		destroy:   destroy,
	}
}

// Request returns the slot of an available entry, reusing a released entry
// when there is one and constructing a new one otherwise. Capacity doubles
// when the pool is full.
func (p *Pool[T]) Request() Slot {
	idx := p.last
	if idx < p.count {
		p.last++
		return Slot(idx)
	}

	if idx >= len(p.items) {
		grown := make([]T, len(p.items)*2)
		copy(grown, p.items)
		p.items = grown
	}

	if p.construct != nil {
		p.items[idx] = p.construct()
	}
	p.count++
	p.last++
	return Slot(idx)
}

// Release returns slot to the pool by swapping it with the last live entry.
// Slots outside the live range are ignored, which makes double release a
// no-op. After Release the entry that was at Len()-1 lives at slot.
func (p *Pool[T]) Release(slot Slot) {
	idx := int(slot)
	if idx < 0 || idx >= p.last {
		return
	}
	end := p.last - 1
	p.items[idx], p.items[end] = p.items[end], p.items[idx]
	p.last--
}

// Get returns the live entry at slot, or nil outside the live range.
func (p *Pool[T]) Get(slot Slot) *T {
	idx := int(slot)
	if idx < 0 || idx >= p.last {
		return nil
	}
	return &p.items[idx]
}

// ForEach calls fn for every live entry in slot order.
func (p *Pool[T]) ForEach(fn func(Slot, *T)) {
	for i := 0; i < p.last; i++ {
		fn(Slot(i), &p.items[i])
	}
}

// Clear destroys every constructed entry and resets the counters. Capacity
// is kept.
func (p *Pool[T]) Clear() {
	var zero T
	for i := 0; i < p.count; i++ {
		if p.destroy != nil {
			p.destroy(&p.items[i])
		}
		p.items[i] = zero
	}
	p.count = 0
	p.last = 0
}

// Len returns the number of live entries.
func (p *Pool[T]) Len() int { return p.last }

// Count returns the number of constructed entries.
func (p *Pool[T]) Count() int { return p.count }

// Cap returns the backing capacity.
func (p *Pool[T]) Cap() int { return len(p.items) }
