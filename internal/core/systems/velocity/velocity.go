// Package velocity integrates body positions once per tick.
//
// Every body keeps a float shadow position next to the integer position the rest of
// the simulation reads. Motion stays sub-pixel accurate while collision works on
// stable, rounded coordinates.
package velocity

import (
	"github.com/zeusync/darkzone/internal/core/models"
	"github.com/zeusync/darkzone/internal/core/physics"
	"github.com/zeusync/darkzone/internal/core/systems"
)

// Handle addresses a body in the arena.
type Handle = models.Handle

// Body is one integrated position.
type Body struct {
	FloatPos physics.Vec2
	Pos      physics.Vec2
	Vel      physics.Vec2
	// Friction divides the velocity every tick; 1 means no decay.
	Friction float64
}

// Sync recomputes the rounded position from the float shadow.
func (b *Body) Sync() {
	b.Pos = b.FloatPos.Rounded()
}

// System owns the body arena.
type System struct {
	bodies *models.Store[Body]
}

func New() *System {
	return &System{bodies: models.NewStore[Body](256)}
}

func (s *System) Name() string { return "velocity" }

func (s *System) Init(*systems.Engine) error { return nil }

// Add creates a body at pos with zero velocity. Friction below 1 is raised to 1.
func (s *System) Add(pos physics.Vec2, friction float64) Handle {
	return s.bodies.Insert(Body{
		FloatPos: pos,
		Pos:      pos.Rounded(),
		Friction: max(friction, 1),
	})
}

// Body resolves h. The pointer is valid until the next Add.
func (s *System) Body(h Handle) (*Body, bool) {
	return s.bodies.Get(h)
}

// Pos returns the rounded position of h, or the zero vector for a removed body.
func (s *System) Pos(h Handle) physics.Vec2 {
	if b, ok := s.bodies.Get(h); ok {
		return b.Pos
	}
	return physics.Vec2{}
}

// Vel returns the velocity of h, or the zero vector for a removed body.
func (s *System) Vel(h Handle) physics.Vec2 {
	if b, ok := s.bodies.Get(h); ok {
		return b.Vel
	}
	return physics.Vec2{}
}

// SetVel replaces the velocity of h.
func (s *System) SetVel(h Handle, vel physics.Vec2) {
	if b, ok := s.bodies.Get(h); ok {
		b.Vel = vel
	}
}

// Remove deletes the body behind h.
func (s *System) Remove(h Handle) bool {
	return s.bodies.Remove(h)
}

// Update advances every body: floatPos += vel, pos = round(floatPos), vel /= friction.
func (s *System) Update(*systems.Engine) error {
	s.bodies.Each(func(_ Handle, b *Body) bool {
		b.FloatPos.Add(b.Vel)
		b.Sync()
		b.Vel.Mul(1 / b.Friction)
		return true
	})
	return nil
}

func (s *System) Len() int { return s.bodies.Len() }

func (s *System) Clear() { s.bodies.Clear() }
