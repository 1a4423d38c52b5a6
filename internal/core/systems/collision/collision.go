// Package collision is the spatial index of the simulation.
//
// Space is cut into level.TileSize cells. Immovable collidables are put once into a
// static grid; movable receivers (agents) are re-inserted into a dynamic grid at the
// start of every tick. Each tick every hitter is tested against the cells its shape
// covers: static occupants collide on cell membership alone, dynamic occupants go
// through a distance check against the receiver radius.
package collision

import (
	"github.com/zeusync/darkzone/internal/core/systems"
	"github.com/zeusync/darkzone/internal/core/systems/velocity"
	"github.com/zeusync/darkzone/pkg/generic"
)

// Event is one confirmed collision.
type Event struct {
	Hitter   *Collidable
	Receiver *Collidable
}

// Listener reacts to collisions of one hitter kind.
type Listener func(Event)

type pair struct {
	hitter, receiver *Collidable
}

type scratch struct {
	pairs []pair
	cells []int
	seen  map[*Collidable]struct{}
}

func newScratch() *scratch {
	return &scratch{seen: make(map[*Collidable]struct{})}
}

// reset drops the collidable references a finished tick leaves behind.
func (sc *scratch) reset() {
	clear(sc.pairs)
	sc.pairs = sc.pairs[:0]
	clear(sc.seen)
}

// Stats counts collision work since the system was created.
type Stats struct {
	Ticks      uint64
	Candidates uint64
	Collisions uint64
	Decoupled  uint64
}

// System is the collision index.
type System struct {
	bodies *velocity.System

	static       grid
	dynamic      grid
	barrierCells map[int]int

	hitters   systems.List[*Collidable]
	receivers systems.List[*Collidable]
	listeners map[Kind][]Listener

	scratch *generic.Pool[*scratch]
	stats   Stats
}

func New() *System {
	return &System{
		static:       make(grid),
		dynamic:      make(grid),
		barrierCells: make(map[int]int),
		listeners:    make(map[Kind][]Listener),
		scratch:      generic.NewHotPool(newScratch, (*scratch).reset, 1),
	}
}

func (s *System) Name() string { return "collision" }

func (s *System) Init(engine *systems.Engine) error {
	s.bodies = systems.MustGet[*velocity.System](engine)
	return nil
}

// Add registers a collidable. Static or dynamic membership is decided here, once,
// from the mask: movable masks make a dynamic receiver, any other non-empty mask a
// static occupant. A non-empty CanHit makes it a hitter.
func (s *System) Add(opts Options) *Collidable {
	c := &Collidable{
		Kind:           opts.Kind,
		Owner:          opts.Owner,
		Shape:          opts.Shape,
		Radius:         opts.Radius,
		ShouldDecouple: opts.ShouldDecouple,
		Mask:           opts.Mask,
		CanHit:         opts.CanHit,
		body:           opts.Body,
		fixed:          opts.Pos,
		sys:            s,
	}

	switch {
	case c.Mask.Has(MaskAgents):
		c.receiver = true
		s.receivers.Add(c)
	case c.Mask != MaskNone:
		c.static = true
		c.staticCells = cellsOf(c.Shape, c.Pos(), c.Radius, nil)
		for _, cell := range c.staticCells {
			s.static.add(cell, c)
			if c.Mask.Has(MaskBarrier) {
				s.barrierCells[cell]++
			}
		}
	}

	if c.CanHit != MaskNone {
		c.hitter = true
		s.hitters.Add(c)
	}
	return c
}

// Remove unregisters c. Removing twice is a no-op.
func (s *System) Remove(c *Collidable) {
	if c == nil || c.removed {
		return
	}
	c.removed = true
	if c.hitter {
		s.hitters.Remove(c)
	}
	if c.receiver {
		s.receivers.Remove(c)
	}
	if c.static {
		for _, cell := range c.staticCells {
			s.static.remove(cell, c)
			if c.Mask.Has(MaskBarrier) {
				if s.barrierCells[cell]--; s.barrierCells[cell] <= 0 {
					delete(s.barrierCells, cell)
				}
			}
		}
	}
}

// Listen registers fn for collisions whose hitter has the given kind.
func (s *System) Listen(kind Kind, fn Listener) {
	s.listeners[kind] = append(s.listeners[kind], fn)
}

// Update rebuilds the dynamic grid and runs the broad and narrow phases.
func (s *System) Update(*systems.Engine) error {
	s.stats.Ticks++

	s.dynamic.reset()
	sc := s.scratch.Get()
	defer s.scratch.Put(sc)

	s.receivers.Each(func(c *Collidable) {
		sc.cells = cellsOf(c.Shape, c.Pos(), c.Radius, sc.cells)
		for _, cell := range sc.cells {
			s.dynamic.add(cell, c)
		}
	})

	sc.pairs = sc.pairs[:0]
	s.hitters.Each(func(h *Collidable) {
		s.broadPhase(h, sc)
	})

	for _, p := range sc.pairs {
		if p.hitter.removed || p.receiver.removed {
			continue
		}
		if p.hitter.Pos().DistanceTo(p.receiver.Pos()) < p.receiver.Radius {
			s.collide(p.hitter, p.receiver)
		}
	}
	return nil
}

func (s *System) broadPhase(h *Collidable, sc *scratch) {
	if h.removed {
		return
	}
	clear(sc.seen)
	checkDynamic := h.CanHit.Has(MaskAgents)

	sc.cells = cellsOf(h.Shape, h.Pos(), h.Radius, sc.cells)
	for _, cell := range sc.cells {
		for _, r := range s.static[cell] {
			if h.removed {
				return
			}
			if r.removed || !r.Mask.Has(h.CanHit) {
				continue
			}
			if _, dup := sc.seen[r]; dup {
				continue
			}
			sc.seen[r] = struct{}{}
			s.collide(h, r)
		}

		if !checkDynamic {
			continue
		}
		for _, r := range s.dynamic[cell] {
			if r == h || !r.Mask.Has(h.CanHit) {
				continue
			}
			if _, dup := sc.seen[r]; dup {
				continue
			}
			sc.seen[r] = struct{}{}
			s.stats.Candidates++
			sc.pairs = append(sc.pairs, pair{hitter: h, receiver: r})
		}
	}
}

func (s *System) collide(h, r *Collidable) {
	s.stats.Collisions++
	if h.ShouldDecouple {
		s.Decouple(h)
	}
	ev := Event{Hitter: h, Receiver: r}
	for _, fn := range s.listeners[h.Kind] {
		if h.removed {
			return
		}
		fn(ev)
	}
}

// Stats returns the collision counters.
func (s *System) Stats() Stats { return s.stats }

// Len returns the number of hitters processed per tick.
func (s *System) Len() int { return s.hitters.Len() }

// Receivers returns the number of dynamic receivers.
func (s *System) Receivers() int { return s.receivers.Len() }

func (s *System) Clear() {
	for _, c := range s.hitters.Items() {
		c.removed = true
	}
	for _, c := range s.receivers.Items() {
		c.removed = true
	}
	for _, list := range s.static {
		for _, c := range list {
			c.removed = true
		}
	}
	s.hitters.Clear()
	s.receivers.Clear()
	clear(s.static)
	clear(s.dynamic)
	clear(s.barrierCells)
	clear(s.listeners)
}
