package game

import "github.com/zeusync/darkzone/internal/core/physics"

// DefaultAmbientLight is the light level of a spot no light reaches.
const DefaultAmbientLight = 10

// LightingSampler computes the light level at a point from the lights of the
// World: every enabled light with a clear line to the point adds up to 255,
// falling off linearly to zero at its radius.
type LightingSampler struct {
	w       *World
	Ambient uint8
}

func (l *LightingSampler) Sample(pos physics.Vec2) uint8 {
	total := float64(l.Ambient)
	l.w.Lights.Each(func(light *Light) {
		radius := light.lit()
		if radius <= 0 {
			return
		}
		d := light.Pos.DistanceTo(pos)
		if d >= radius || !l.w.Collision.Visible(light.Pos, pos) {
			return
		}
		total += 255 * (1 - d/radius)
	})
	return uint8(min(total, 255))
}
