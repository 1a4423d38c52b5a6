package game

import (
	"math"

	"github.com/zeusync/darkzone/internal/core/models"
	"github.com/zeusync/darkzone/internal/core/physics"
	"github.com/zeusync/darkzone/internal/core/sinks"
	"github.com/zeusync/darkzone/internal/core/systems"
)

// Flashlight cone shape.
const (
	FlashlightArc    = math.Pi / 3
	FlashlightRadius = 150.0
	FlashlightRays   = 24
)

// Flashlight is a cone of light carried by an agent. Its outline is rebuilt from a
// ray fan whenever the agent moves or turns.
type Flashlight struct {
	models.Entity
	Agent   *Agent
	Enabled bool
	Polygon []physics.Vec2

	lastPos physics.Vec2
	lastRot float64
	dirty   bool
	sys     *FlashlightSystem
}

// Toggle switches the flashlight and plays the switch click.
func (f *Flashlight) Toggle() {
	if !f.Alive() {
		return
	}
	f.Enabled = !f.Enabled
	f.dirty = true
	f.sys.w.play("flashlight")
	if !f.Enabled {
		f.Polygon = nil
		f.sys.w.Sinks.Visual.Remove(uint64(f.ID()))
	}
}

// Contains reports whether pos is lit by the cone.
func (f *Flashlight) Contains(pos physics.Vec2) bool {
	if !f.Enabled || !f.Agent.Alive() {
		return false
	}
	origin := f.Agent.Pos()
	if origin.DistanceTo(pos) >= FlashlightRadius {
		return false
	}
	if physics.AngleDiff(origin.DirectionTo(pos), f.Agent.Rot) > FlashlightArc/2 {
		return false
	}
	return f.sys.w.Collision.Visible(origin, pos)
}

func (f *Flashlight) Destroy() {
	if !f.MarkDestroyed() {
		return
	}
	f.sys.list.Remove(f)
	f.sys.w.Sinks.Visual.Remove(uint64(f.ID()))
	if f.Agent.Flashlight == f {
		f.Agent.Flashlight = nil
	}
}

type FlashlightSystem struct {
	w    *World
	list systems.List[*Flashlight]
}

func (s *FlashlightSystem) Name() string               { return "flashlights" }
func (s *FlashlightSystem) Init(*systems.Engine) error { return nil }

// Update recasts the cone of every lit flashlight that moved.
func (s *FlashlightSystem) Update(*systems.Engine) error {
	s.list.Each(func(f *Flashlight) {
		if !f.Enabled || !f.Agent.Alive() {
			return
		}
		pos, rot := f.Agent.Pos(), f.Agent.Rot
		if !f.dirty && pos == f.lastPos && rot == f.lastRot {
			return
		}
		f.lastPos, f.lastRot, f.dirty = pos, rot, false
		f.Polygon = s.w.Collision.CastFan(pos, rot, FlashlightArc, FlashlightRadius, FlashlightRays)
		s.w.Sinks.Visual.Spawn(sinks.VisualCue{
			Kind:    sinks.VisualFlashlight,
			ID:      uint64(f.ID()),
			Pos:     pos,
			Rot:     rot,
			Polygon: f.Polygon,
		})
	})
	return nil
}

func (s *FlashlightSystem) Len() int { return s.list.Len() }
func (s *FlashlightSystem) Clear()   { s.list.Clear() }

// Attach mounts a lit flashlight on a.
func (s *FlashlightSystem) Attach(a *Agent) *Flashlight {
	f := &Flashlight{Entity: s.w.NewEntity(), Agent: a, Enabled: true, dirty: true, sys: s}
	f.SetParent(a)
	s.list.Add(f)
	s.w.play("flashlight")
	return f
}
