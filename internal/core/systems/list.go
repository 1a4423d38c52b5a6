package systems

import "slices"

// List is an ordered set of entities owned by one system. Iteration runs over a
// snapshot, so entities may be added or removed while Each is running.
type List[E comparable] struct {
	items []E
}

// Add appends e.
func (l *List[E]) Add(e E) {
	l.items = append(l.items, e)
}

// Remove deletes the first occurrence of e, preserving the order of the rest.
func (l *List[E]) Remove(e E) bool {
	i := slices.Index(l.items, e)
	if i < 0 {
		return false
	}
	l.items = slices.Delete(l.items, i, i+1)
	return true
}

// Contains reports whether e is in the list.
func (l *List[E]) Contains(e E) bool {
	return slices.Contains(l.items, e)
}

// Len returns the number of entities.
func (l *List[E]) Len() int { return len(l.items) }

// Items returns a snapshot of the entities.
func (l *List[E]) Items() []E {
	return slices.Clone(l.items)
}

// Each calls fn for every entity of a snapshot taken at call time.
func (l *List[E]) Each(fn func(E)) {
	for _, e := range l.Items() {
		fn(e)
	}
}

// First returns the oldest entity.
func (l *List[E]) First() (E, bool) {
	if len(l.items) == 0 {
		var zero E
		return zero, false
	}
	return l.items[0], true
}

// Clear drops every entity.
func (l *List[E]) Clear() {
	clear(l.items)
	l.items = l.items[:0]
}
