// Package handle implements a generational-handle arena, the
// replacement strategy Design Notes §9 prescribes for the source's
// magic-number pointer validation: a weak reference is an
// (index, generation) pair; dereferencing verifies the arena slot's
// generation still matches before yielding the value. Freed slots are
// recycled by index but never by generation, so a stale handle always
// fails lookup instead of aliasing a reused slot.
package handle

// Handle is an opaque weak reference into an Arena.
type Handle struct {
	Index      uint32
	Generation uint32
}

// Valid reports whether h could ever have been issued by an arena
// (the zero Handle is reserved as "no reference").
func (h Handle) Valid() bool {
	return h.Generation != 0
}

type slot[T any] struct {
	value      T
	generation uint32
	occupied   bool
}

// Arena owns a dense collection of T, addressed by generational
// handles so cross-references between managers never dereference a
// freed slot.
type Arena[T any] struct {
	slots    []slot[T]
	freeList []uint32
}

func NewArena[T any]() *Arena[T] {
	return &Arena[T]{}
}

// Insert stores value in a free slot (recycled or newly appended) and
// returns a handle that is valid until the slot is next removed.
func (a *Arena[T]) Insert(value T) Handle {
	if n := len(a.freeList); n > 0 {
		idx := a.freeList[n-1]
		a.freeList = a.freeList[:n-1]
		s := &a.slots[idx]
		s.value = value
		s.occupied = true
		return Handle{Index: idx, Generation: s.generation}
	}

	idx := uint32(len(a.slots))
	a.slots = append(a.slots, slot[T]{value: value, generation: 1, occupied: true})
	return Handle{Index: idx, Generation: 1}
}

// Get returns a pointer to the live value referenced by h, or false
// if h is stale (the slot was removed, or never existed).
func (a *Arena[T]) Get(h Handle) (*T, bool) {
	if !h.Valid() || int(h.Index) >= len(a.slots) {
		return nil, false
	}
	s := &a.slots[h.Index]
	if !s.occupied || s.generation != h.Generation {
		return nil, false
	}
	return &s.value, true
}

// Remove invalidates h's slot, bumping its generation so any other
// outstanding copy of h fails future Get calls, and returns the slot
// to the free list for reuse.
func (a *Arena[T]) Remove(h Handle) bool {
	if !h.Valid() || int(h.Index) >= len(a.slots) {
		return false
	}
	s := &a.slots[h.Index]
	if !s.occupied || s.generation != h.Generation {
		return false
	}
	var zero T
	s.value = zero
	s.occupied = false
	s.generation++
	a.freeList = append(a.freeList, h.Index)
	return true
}

// Len returns the number of currently occupied slots.
func (a *Arena[T]) Len() int {
	n := 0
	for i := range a.slots {
		if a.slots[i].occupied {
			n++
		}
	}
	return n
}

// Each calls fn for every occupied slot's current value and handle,
// in slot order. fn must not call Insert or Remove on the same arena.
func (a *Arena[T]) Each(fn func(h Handle, value *T)) {
	for i := range a.slots {
		if a.slots[i].occupied {
			fn(Handle{Index: uint32(i), Generation: a.slots[i].generation}, &a.slots[i].value)
		}
	}
}
