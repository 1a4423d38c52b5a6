package game

import (
	"math"

	"github.com/zeusync/darkzone/internal/core/models"
	"github.com/zeusync/darkzone/internal/core/physics"
	"github.com/zeusync/darkzone/internal/core/systems"
	"github.com/zeusync/darkzone/internal/core/systems/collision"
)

// Barrier is one impassable tile: a wall or a crate.
type Barrier struct {
	models.Entity
	Pos        physics.Vec2
	Collidable *collision.Collidable
	Prop       *Prop

	sys *BarrierSystem
}

func (b *Barrier) Destroy() {
	if !b.MarkDestroyed() {
		return
	}
	b.sys.w.Collision.Remove(b.Collidable)
	b.Prop.Destroy()
	b.sys.list.Remove(b)
}

type BarrierSystem struct {
	w    *World
	list systems.List[*Barrier]
}

func (s *BarrierSystem) Name() string                 { return "barriers" }
func (s *BarrierSystem) Init(*systems.Engine) error   { return nil }
func (s *BarrierSystem) Update(*systems.Engine) error { return nil }
func (s *BarrierSystem) Len() int                     { return s.list.Len() }
func (s *BarrierSystem) Clear()                       { s.list.Clear() }

// Add places a barrier filling the tile whose top-left corner is pos.
func (s *BarrierSystem) Add(pos physics.Vec2, sprite string) *Barrier {
	b := &Barrier{Entity: s.w.NewEntity(), Pos: pos, sys: s}
	b.Collidable = s.w.Collision.Add(collision.Options{
		Kind:  collision.KindBarrier,
		Owner: b,
		Shape: collision.ShapeGridCell,
		Mask:  collision.MaskBarrier,
		Pos:   pos,
	})
	b.Prop = s.w.Props.Spawn(PropOptions{Pos: pos, Sprite: sprite})
	s.list.Add(b)
	return b
}

// EmitDebris throws grey chips back along the path of a bullet that hit a wall.
func (s *BarrierSystem) EmitDebris(pos, vel physics.Vec2) {
	s.w.Particles.Emit(ParticleOptions{
		Pos:      pos,
		Color:    "gray",
		Lifetime: 300,
	}, EmitOptions{
		Count:          int(math.Ceil(s.w.Rand() * 25)),
		Direction:      vel.Scaled(-0.3),
		Spread:         math.Pi,
		SpeedSpread:    0.5,
		LifetimeSpread: 0.5,
	})
}
