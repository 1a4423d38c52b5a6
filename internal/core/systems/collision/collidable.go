package collision

import (
	"github.com/zeusync/darkzone/internal/core/physics"
	"github.com/zeusync/darkzone/internal/core/systems/velocity"
)

// Options describes a collidable at creation.
type Options struct {
	Kind Kind
	// Owner is the logical owner handed to listeners, e.g. *game.Agent.
	Owner          any
	Shape          Shape
	Radius         float64
	ShouldDecouple bool
	Mask           Mask
	CanHit         Mask
	// Body makes the collidable follow a velocity body. When nil, Pos is fixed.
	Body velocity.Handle
	Pos  physics.Vec2
}

// Collidable is one shape registered with the collision system.
type Collidable struct {
	Kind           Kind
	Owner          any
	Shape          Shape
	Radius         float64
	ShouldDecouple bool
	Mask           Mask
	CanHit         Mask

	body  velocity.Handle
	fixed physics.Vec2
	sys   *System

	static      bool
	receiver    bool
	hitter      bool
	staticCells []int
	removed     bool
}

// Pos returns the current rounded position.
func (c *Collidable) Pos() physics.Vec2 {
	if c.body.IsNil() {
		return c.fixed
	}
	return c.sys.bodies.Pos(c.body)
}

// Body returns the velocity body the collidable follows, if any.
func (c *Collidable) Body() velocity.Handle { return c.body }

// Static reports whether the collidable lives in the static grid.
func (c *Collidable) Static() bool { return c.static }

// Removed reports whether the collidable was removed from its system.
func (c *Collidable) Removed() bool { return c.removed }
