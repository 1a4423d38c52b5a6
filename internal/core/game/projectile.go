package game

import (
	"github.com/zeusync/darkzone/internal/core/models"
	"github.com/zeusync/darkzone/internal/core/physics"
	"github.com/zeusync/darkzone/internal/core/systems"
	"github.com/zeusync/darkzone/internal/core/systems/collision"
)

// Projectile is a bullet or a flame tongue. It rides on a particle that owns the
// body and the collidable; the particle's lifetime expiry destroys the projectile.
type Projectile struct {
	models.Entity
	Particle *Particle
	Shooter  *Agent

	sys *ProjectileSystem
}

// ProjectileOptions describes a new projectile.
type ProjectileOptions struct {
	Pos      physics.Vec2
	Vel      physics.Vec2
	Lifetime float64
	CanHit   collision.Mask
	Shooter  *Agent
	Color    string
}

func (p *Projectile) Destroy() {
	if !p.MarkDestroyed() {
		return
	}
	p.sys.list.Remove(p)
	p.Particle.Destroy()
}

type ProjectileSystem struct {
	w    *World
	list systems.List[*Projectile]
}

func (s *ProjectileSystem) Name() string { return "projectiles" }

func (s *ProjectileSystem) Init(*systems.Engine) error {
	s.w.Collision.Listen(collision.KindProjectile, s.onCollision)
	return nil
}

func (s *ProjectileSystem) Update(*systems.Engine) error { return nil }
func (s *ProjectileSystem) Len() int                     { return s.list.Len() }
func (s *ProjectileSystem) Clear()                       { s.list.Clear() }

// Spawn fires a projectile.
func (s *ProjectileSystem) Spawn(opts ProjectileOptions) *Projectile {
	color := opts.Color
	if color == "" {
		color = "red"
	}
	p := &Projectile{Entity: s.w.NewEntity(), Shooter: opts.Shooter, sys: s}
	p.Particle = s.w.Particles.Spawn(ParticleOptions{
		Pos:      opts.Pos,
		Vel:      opts.Vel,
		Color:    color,
		Lifetime: opts.Lifetime,
		CanHit:   opts.CanHit,
		kind:     collision.KindProjectile,
		owner:    p,
	})
	p.Particle.SetParent(p)
	s.list.Add(p)
	return p
}

func (s *ProjectileSystem) onCollision(ev collision.Event) {
	p, ok := ev.Hitter.Owner.(*Projectile)
	if !ok || !p.Alive() {
		return
	}
	pos, vel := p.Particle.Pos(), p.Particle.Vel()

	switch ev.Receiver.Kind {
	case collision.KindAgent:
		agent := ev.Receiver.Owner.(*Agent)
		s.w.Blood.EmitBlood(pos, vel)
		agent.DecreaseHealth()
	case collision.KindBarrier, collision.KindDoor:
		s.w.Barriers.EmitDebris(pos, vel)
	case collision.KindLight:
		ev.Receiver.Owner.(*Light).Break()
	}
	p.Destroy()
}
