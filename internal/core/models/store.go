package models

// Handle addresses a slot in a Store. A handle whose generation no longer matches
// the slot refers to a removed value and resolves to nothing.
type Handle struct {
	Index      uint32
	Generation uint32
}

// Nil is the zero handle, never issued by a Store.
var Nil Handle

// IsNil reports whether h is the zero handle.
func (h Handle) IsNil() bool { return h == Nil }

type slot[T any] struct {
	generation uint32
	alive      bool
	value      T
}

// Store is a contiguous generational arena. Values live in one slice and callers
// hold handles instead of pointers, so a stale reference can always be detected.
type Store[T any] struct {
	slots []slot[T]
	free  []uint32
	count int
}

// NewStore returns an empty store with room for capacity values.
func NewStore[T any](capacity int) *Store[T] {
	return &Store[T]{slots: make([]slot[T], 0, capacity)}
}

// Insert stores v and returns its handle.
func (s *Store[T]) Insert(v T) Handle {
	s.count++
	if n := len(s.free); n > 0 {
		idx := s.free[n-1]
		s.free = s.free[:n-1]
		sl := &s.slots[idx]
		sl.alive = true
		sl.value = v
		return Handle{Index: idx, Generation: sl.generation}
	}
	s.slots = append(s.slots, slot[T]{generation: 1, alive: true, value: v})
	return Handle{Index: uint32(len(s.slots) - 1), Generation: 1}
}

// Get resolves h. The returned pointer is valid until the next Insert.
func (s *Store[T]) Get(h Handle) (*T, bool) {
	if int(h.Index) >= len(s.slots) {
		return nil, false
	}
	sl := &s.slots[h.Index]
	if !sl.alive || sl.generation != h.Generation {
		return nil, false
	}
	return &sl.value, true
}

// Contains reports whether h still resolves.
func (s *Store[T]) Contains(h Handle) bool {
	_, ok := s.Get(h)
	return ok
}

// Remove frees the slot behind h. Removing a stale handle is a no-op.
func (s *Store[T]) Remove(h Handle) bool {
	if !s.Contains(h) {
		return false
	}
	sl := &s.slots[h.Index]
	var zero T
	sl.value = zero
	sl.alive = false
	sl.generation++
	s.free = append(s.free, h.Index)
	s.count--
	return true
}

// Len returns the number of live values.
func (s *Store[T]) Len() int { return s.count }

// Each calls fn for every live value in slot order until fn returns false.
func (s *Store[T]) Each(fn func(Handle, *T) bool) {
	for i := range s.slots {
		sl := &s.slots[i]
		if !sl.alive {
			continue
		}
		if !fn(Handle{Index: uint32(i), Generation: sl.generation}, &sl.value) {
			return
		}
	}
}

// Clear drops every value. Outstanding handles stop resolving.
func (s *Store[T]) Clear() {
	for i := range s.slots {
		if s.slots[i].alive {
			var zero T
			s.slots[i].value = zero
			s.slots[i].alive = false
			s.slots[i].generation++
			s.free = append(s.free, uint32(i))
		}
	}
	s.count = 0
}
