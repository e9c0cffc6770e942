package pool

// Keyed hands out pool entries to stable owner keys and keeps the
// key-to-slot mapping correct across swap-on-release relocations.
type Keyed[K comparable, T any] struct {
	pool   *Pool[T]
	slots  map[K]Slot
	owners []K
}

// NewKeyed creates a keyed pool; the callbacks behave as in New.
func NewKeyed[K comparable, T any](capacity int, construct func() T, destroy func(*T)) *Keyed[K, T] {
	return &Keyed[K, T]{
		pool:  New(capacity, construct, destroy),
		slots: make(map[K]Slot),
	}
}

// Acquire returns the entry owned by key, requesting a slot on first use.
// The second result is true when a new slot was requested.
func (k *Keyed[K, T]) Acquire(key K) (*T, bool) {
	if slot, ok := k.slots[key]; ok {
		return k.pool.Get(slot), false
	}
	slot := k.pool.Request()
	k.slots[key] = slot
	if int(slot) < len(k.owners) {
		k.owners[slot] = key
	} else {
		k.owners = append(k.owners, key)
	}
	return k.pool.Get(slot), true
}

// Get returns the entry owned by key, or nil.
func (k *Keyed[K, T]) Get(key K) *T {
	slot, ok := k.slots[key]
	if !ok {
		return nil
	}
	return k.pool.Get(slot)
}

// Release gives the entry owned by key back to the pool and re-points the
// owner of the relocated entry. Unknown keys are ignored.
func (k *Keyed[K, T]) Release(key K) bool {
	slot, ok := k.slots[key]
	if !ok {
		return false
	}
	end := Slot(k.pool.Len() - 1)
	moved := k.owners[end]

	k.pool.Release(slot)
	delete(k.slots, key)

	if moved != key {
		k.slots[moved] = slot
		k.owners[slot] = moved
	}
	var zero K
	k.owners[end] = zero
	return true
}

// ForEach calls fn for every owner and its entry in slot order.
func (k *Keyed[K, T]) ForEach(fn func(K, *T)) {
	k.pool.ForEach(func(s Slot, v *T) {
		fn(k.owners[s], v)
	})
}

// Has reports whether key currently owns an entry.
func (k *Keyed[K, T]) Has(key K) bool {
	_, ok := k.slots[key]
	return ok
}

// Len returns the number of owned entries.
func (k *Keyed[K, T]) Len() int { return k.pool.Len() }

// Count returns the number of constructed entries, owned or spare.
func (k *Keyed[K, T]) Count() int { return k.pool.Count() }

// Clear destroys every constructed entry and forgets all owners.
func (k *Keyed[K, T]) Clear() {
	k.pool.Clear()
	clear(k.slots)
	k.owners = k.owners[:0]
}
