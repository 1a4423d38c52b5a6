package collision

import (
	"math"

	"github.com/zeusync/darkzone/internal/core/level"
	"github.com/zeusync/darkzone/internal/core/physics"
)

// RaySamplesPerTile is the oversampling factor of CastRay. One sample per pixel
// keeps rays from tunnelling through a single barrier cell.
const RaySamplesPerTile = 20

// CastRay walks from towards to in fixed sub-tile steps and returns the first sample
// that falls into a barrier cell. Only static barriers block; agents never occlude.
func (s *System) CastRay(from, to physics.Vec2) (physics.Vec2, bool) {
	length := from.DistanceTo(to)
	steps := length / level.TileSize * RaySamplesPerTile
	if steps <= 0 {
		return to, false
	}

	delta := to.Minus(from)
	n := int(math.Ceil(steps))
	for i := 1; i <= n; i++ {
		t := math.Min(float64(i)/steps, 1)
		p := from.Plus(delta.Scaled(t))
		if s.IsBarrierAt(p) {
			return p, true
		}
	}
	return to, false
}

// Visible reports whether the segment between a and b is free of barriers.
func (s *System) Visible(a, b physics.Vec2) bool {
	_, blocked := s.CastRay(a, b)
	return !blocked
}

// CastFan casts the given number of rays of length radius from origin, spread over arc
// radians centred on the heading centre, and returns the end point of each: the
// first blocked sample or the full-length target. An arc of 2π or more covers the
// whole circle without repeating the seam ray.
func (s *System) CastFan(origin physics.Vec2, centre, arc, radius float64, rays int) []physics.Vec2 {
	if rays < 1 {
		return nil
	}
	out := make([]physics.Vec2, 0, rays)
	if rays == 1 {
		hit, _ := s.CastRay(origin, origin.Plus(physics.Heading(centre).Scaled(radius)))
		return append(out, hit)
	}

	full := arc >= 2*math.Pi
	step := arc / float64(rays-1)
	if full {
		step = 2 * math.Pi / float64(rays)
	}
	start := centre - arc/2
	for i := range rays {
		angle := start + step*float64(i)
		target := origin.Plus(physics.Heading(angle).Scaled(radius))
		hit, _ := s.CastRay(origin, target)
		out = append(out, hit)
	}
	return out
}
