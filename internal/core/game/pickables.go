package game

import (
	"github.com/zeusync/darkzone/internal/core/models"
	"github.com/zeusync/darkzone/internal/core/physics"
	"github.com/zeusync/darkzone/internal/core/systems"
)

const (
	PickupRadius = 10.0
	// PickupAmmoMultiplier scales the ammo taken from a picked-up gun.
	PickupAmmoMultiplier = 0.4

	pickableSpin = 0.03
)

// Pickable is a gun lying on the floor.
type Pickable struct {
	models.Entity
	Pos  physics.Vec2
	Gun  *Gun
	Prop *Prop

	sys *PickableSystem
}

func (p *Pickable) Destroy() {
	if !p.MarkDestroyed() {
		return
	}
	p.Prop.Destroy()
	p.sys.list.Remove(p)
}

type PickableSystem struct {
	w    *World
	list systems.List[*Pickable]
}

func (s *PickableSystem) Name() string               { return "pickables" }
func (s *PickableSystem) Init(*systems.Engine) error { return nil }

// Update spins the pickables and hands the ones the player stands on over to the
// player.
func (s *PickableSystem) Update(*systems.Engine) error {
	player := s.w.Player()
	if player == nil {
		return nil
	}
	agent := player.Agent
	pos := agent.Pos()
	s.list.Each(func(p *Pickable) {
		p.Prop.Rot += pickableSpin
		if pos.DistanceTo(p.Pos) >= PickupRadius {
			return
		}
		if !agent.HasWeapon(p.Gun.Options.Code) && s.w.OnNewWeapon != nil {
			s.w.OnNewWeapon(p.Gun.Options)
		}
		agent.AddWeapon(p.Gun, PickupAmmoMultiplier)
		p.Destroy()
		s.w.play("collect")
	})
	return nil
}

func (s *PickableSystem) Len() int { return s.list.Len() }
func (s *PickableSystem) Clear()   { s.list.Clear() }

// Spawn drops g on the floor at pos.
func (s *PickableSystem) Spawn(pos physics.Vec2, g *Gun) *Pickable {
	p := &Pickable{Entity: s.w.NewEntity(), Pos: pos, Gun: g, sys: s}
	p.Prop = s.w.Props.Spawn(PropOptions{Pos: pos, Sprite: "pickable" + g.Options.Code})
	s.list.Add(p)
	return p
}
