package physics

import "math"

// Vec2 is a mutable 2D point or vector.
// Methods with pointer receivers mutate in place and return the receiver for chaining,
// value receiver methods never mutate.
type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// V is a shorthand constructor.
func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

// Add adds o to v.
func (v *Vec2) Add(o Vec2) *Vec2 {
	v.X += o.X
	v.Y += o.Y
	return v
}

// Mul scales v.
func (v *Vec2) Mul(s float64) *Vec2 {
	v.X *= s
	v.Y *= s
	return v
}

// Rotate rotates v around the origin by angle radians.
func (v *Vec2) Rotate(angle float64) *Vec2 {
	sin, cos := math.Sincos(angle)
	nx := v.X*cos - v.Y*sin
	ny := v.X*sin + v.Y*cos
	v.X, v.Y = nx, ny
	return v
}

// Normalize scales v to unit length. A zero vector stays zero.
func (v *Vec2) Normalize() *Vec2 {
	l := v.Length()
	if l == 0 {
		return v
	}
	v.X /= l
	v.Y /= l
	return v
}

// Zero resets both components.
func (v *Vec2) Zero() {
	v.X, v.Y = 0, 0
}

// Plus returns v+o.
func (v Vec2) Plus(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }

// Minus returns v-o.
func (v Vec2) Minus(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }

// Scaled returns v*s.
func (v Vec2) Scaled(s float64) Vec2 { return Vec2{X: v.X * s, Y: v.Y * s} }

// Rotated returns v rotated by angle.
func (v Vec2) Rotated(angle float64) Vec2 {
	out := v
	out.Rotate(angle)
	return out
}

// Rounded returns v with both components rounded to the nearest integer, halves up.
func (v Vec2) Rounded() Vec2 { return Vec2{X: math.Floor(v.X + 0.5), Y: math.Floor(v.Y + 0.5)} }

// Length returns the Euclidean norm.
func (v Vec2) Length() float64 { return math.Hypot(v.X, v.Y) }

// DistanceTo returns the Euclidean distance between v and o.
func (v Vec2) DistanceTo(o Vec2) float64 { return Distance2(v.X, v.Y, o.X, o.Y) }

// DirectionTo returns the heading from v towards o in [0, 2π).
//
// Headings follow the simulation convention: angle 0 points along +Y and a heading a
// corresponds to the unit vector (0, 1) rotated by a.
func (v Vec2) DirectionTo(o Vec2) float64 {
	return NormalizeAngle(math.Atan2(-(o.X - v.X), o.Y-v.Y))
}

// Heading returns the unit vector for the given heading.
func Heading(angle float64) Vec2 {
	return Vec2{X: 0, Y: 1}.Rotated(angle)
}

// NormalizeAngle wraps an angle into [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	if a >= 2*math.Pi {
		return 0
	}
	return a
}

// AngleDiff returns the smallest absolute difference between two headings, in [0, π].
func AngleDiff(a, b float64) float64 {
	d := math.Abs(NormalizeAngle(a) - NormalizeAngle(b))
	return math.Min(d, 2*math.Pi-d)
}

// Distance2 computes Euclidean distance between two 2D points.
func Distance2(x1, y1, x2, y2 float64) float64 { return math.Hypot(x2-x1, y2-y1) }
