package models

// EntityID identifies a simulation object for the lifetime of one engine session.
type EntityID uint64

// Object is anything that can own other objects and be destroyed.
// Destroy must be idempotent.
type Object interface {
	ID() EntityID
	Alive() bool
	Parent() Object
	Destroy()
}

// Entity is the embeddable base for every simulation object: identity, a single-level
// ownership link used for destroy cascades, and a liveness flag.
type Entity struct {
	id     EntityID
	parent Object
	dead   bool
}

// NewEntity returns a live entity with the given id.
func NewEntity(id EntityID) Entity {
	return Entity{id: id}
}

func (e *Entity) ID() EntityID { return e.id }

func (e *Entity) Alive() bool { return e != nil && !e.dead }

func (e *Entity) Parent() Object { return e.parent }

// SetParent links e to its logical owner.
func (e *Entity) SetParent(parent Object) { e.parent = parent }

// MarkDestroyed flips the liveness flag and reports whether this call did it.
// Destroy implementations use it to run their cascade exactly once.
func (e *Entity) MarkDestroyed() bool {
	if e.dead {
		return false
	}
	e.dead = true
	return true
}

// TopParent walks the parent chain and returns the outermost owner of o.
func TopParent(o Object) Object {
	top := o
	for p := top.Parent(); p != nil; p = top.Parent() {
		top = p
	}
	return top
}

// Ancestors returns o followed by each of its owners, innermost first.
func Ancestors(o Object) []Object {
	out := []Object{o}
	for p := o.Parent(); p != nil; p = p.Parent() {
		out = append(out, p)
	}
	return out
}

// IDSource hands out monotonically increasing entity ids.
type IDSource struct {
	next EntityID
}

// Next returns a fresh id; zero is never returned.
func (s *IDSource) Next() EntityID {
	s.next++
	return s.next
}
