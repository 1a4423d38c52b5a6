package collision

import (
	"math"

	"github.com/zeusync/darkzone/internal/core/level"
	"github.com/zeusync/darkzone/internal/core/physics"
)

// Decouple pushes a body-backed collidable out of barrier cells.
//
// The float position is snapped to the centre of its current cell. Then, per axis,
// the point original + vel + radius*dir is probed (dir is +1 for positive velocity,
// -1 otherwise). A barrier there blocks the axis: its velocity is zeroed and the
// snapped coordinate is kept. A free probe restores the original coordinate, so
// the snap never shoves the body along an axis it may keep moving on. The y probe
// uses the x coordinate resolved by the first step. Finally the rounded position is
// recomputed.
func (s *System) Decouple(c *Collidable) {
	if c.body.IsNil() {
		return
	}
	b, ok := s.bodies.Body(c.body)
	if !ok {
		return
	}
	s.stats.Decoupled++

	original := b.FloatPos
	pos := &b.FloatPos
	vel := &b.Vel
	pos.X = snap(pos.X)
	pos.Y = snap(pos.Y)

	x := original.X + vel.X + c.Radius*direction(vel.X)
	if s.IsBarrierAt(physics.V(x, pos.Y)) {
		vel.X = 0
	} else {
		pos.X = original.X
	}

	y := original.Y + vel.Y + c.Radius*direction(vel.Y)
	if s.IsBarrierAt(physics.V(pos.X, y)) {
		vel.Y = 0
	} else {
		pos.Y = original.Y
	}

	b.Sync()
}

// IsBarrierAt reports whether pos falls into a cell holding a barrier.
func (s *System) IsBarrierAt(pos physics.Vec2) bool {
	return s.barrierCells[CellOf(pos)] > 0
}

// IsBarrierCell reports whether tile (x, y) holds a barrier.
func (s *System) IsBarrierCell(x, y int) bool {
	return s.barrierCells[CellIndex(x, y)] > 0
}

func snap(v float64) float64 {
	return math.Floor(v/level.TileSize)*level.TileSize + level.TileSize/2
}

func direction(v float64) float64 {
	if v > 0 {
		return 1
	}
	return -1
}
