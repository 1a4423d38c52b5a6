package game

import (
	"github.com/zeusync/darkzone/internal/core/models"
	"github.com/zeusync/darkzone/internal/core/physics"
	"github.com/zeusync/darkzone/internal/core/sinks"
	"github.com/zeusync/darkzone/internal/core/systems"
	"github.com/zeusync/darkzone/internal/core/systems/collision"
	"github.com/zeusync/darkzone/internal/core/systems/velocity"
)

// Particle is a short-lived point: blood drops, debris, sparks and bullets.
// Particles with a parent (projectiles) are never dropped by the soft cap.
type Particle struct {
	models.Entity
	Body       velocity.Handle
	Collidable *collision.Collidable
	Color      string
	Lifetime   float64
	BornAt     float64
	OnDeath    func(pos physics.Vec2)

	sys *ParticlesSystem
}

// ParticleOptions describes one particle.
type ParticleOptions struct {
	Pos      physics.Vec2
	Vel      physics.Vec2
	Color    string
	Lifetime float64
	CanHit   collision.Mask
	// Friction defaults to 1, no decay.
	Friction float64
	OnDeath  func(pos physics.Vec2)

	kind  collision.Kind
	owner any
}

// EmitOptions shapes a burst of particles.
type EmitOptions struct {
	Direction physics.Vec2
	Count     int
	// Spread is the full angle of the burst around Direction.
	Spread float64
	// SpeedSpread and LifetimeSpread scale speed and lifetime by (rand+0.5)*spread.
	SpeedSpread    float64
	LifetimeSpread float64
}

// Pos returns the rounded position.
func (p *Particle) Pos() physics.Vec2 { return p.sys.w.Velocity.Pos(p.Body) }

// Vel returns the velocity.
func (p *Particle) Vel() physics.Vec2 { return p.sys.w.Velocity.Vel(p.Body) }

// Destroy removes the particle and runs OnDeath with its last position.
func (p *Particle) Destroy() {
	if !p.MarkDestroyed() {
		return
	}
	pos := p.Pos()
	w := p.sys.w
	w.Velocity.Remove(p.Body)
	w.Collision.Remove(p.Collidable)
	p.sys.list.Remove(p)
	w.Sinks.Visual.Remove(uint64(p.ID()))
	if p.OnDeath != nil {
		p.OnDeath(pos)
	}
}

type ParticlesSystem struct {
	w *World
	// Max is the soft cap on live particles.
	Max int

	list    systems.List[*Particle]
	dropped uint64
}

func (s *ParticlesSystem) Name() string { return "particles" }

func (s *ParticlesSystem) Init(*systems.Engine) error {
	s.w.Collision.Listen(collision.KindParticle, func(ev collision.Event) {
		ev.Hitter.Owner.(*Particle).Destroy()
	})
	return nil
}

// Update expires particles whose lifetime is over. Expiry destroys the outermost
// owner, so a projectile goes together with its particle.
func (s *ParticlesSystem) Update(e *systems.Engine) error {
	s.list.Each(func(p *Particle) {
		if p.Alive() && e.Time > p.BornAt+p.Lifetime {
			models.TopParent(p).Destroy()
		}
	})
	return nil
}

func (s *ParticlesSystem) Len() int { return s.list.Len() }

// Dropped returns how many particles the soft cap has removed.
func (s *ParticlesSystem) Dropped() uint64 { return s.dropped }

func (s *ParticlesSystem) Clear() { s.list.Clear() }

// Spawn creates one particle. At the cap the oldest parentless particle is dropped
// first.
func (s *ParticlesSystem) Spawn(opts ParticleOptions) *Particle {
	if s.Max > 0 && s.list.Len() >= s.Max {
		s.dropOldest()
	}
	friction := opts.Friction
	if friction == 0 {
		friction = 1
	}
	kind := opts.kind
	if kind == collision.KindNone {
		kind = collision.KindParticle
	}

	p := &Particle{
		Entity:   s.w.NewEntity(),
		Color:    opts.Color,
		Lifetime: opts.Lifetime,
		BornAt:   s.w.Now(),
		OnDeath:  opts.OnDeath,
		sys:      s,
	}
	p.Body = s.w.Velocity.Add(opts.Pos, friction)
	s.w.Velocity.SetVel(p.Body, opts.Vel)

	if opts.CanHit != collision.MaskNone {
		owner := opts.owner
		if owner == nil {
			owner = p
		}
		p.Collidable = s.w.Collision.Add(collision.Options{
			Kind:   kind,
			Owner:  owner,
			Shape:  collision.ShapePoint,
			CanHit: opts.CanHit,
			Body:   p.Body,
		})
	}
	s.list.Add(p)

	s.w.Sinks.Visual.Spawn(sinks.VisualCue{
		Kind:  sinks.VisualParticle,
		ID:    uint64(p.ID()),
		Pos:   opts.Pos,
		Vel:   opts.Vel,
		Color: opts.Color,
	})
	return p
}

// Emit spawns a burst. Each particle gets Direction rotated by a random angle
// within Spread and scaled by SpeedSpread, and a lifetime scaled by LifetimeSpread.
func (s *ParticlesSystem) Emit(opts ParticleOptions, emit EmitOptions) {
	base := opts.Lifetime
	for range emit.Count {
		vel := emit.Direction.Rotated((s.w.Rand() - 0.5) * emit.Spread)
		opts.Vel = vel.Scaled((s.w.Rand() + 0.5) * emit.SpeedSpread)
		opts.Lifetime = base * (s.w.Rand() + 0.5) * emit.LifetimeSpread
		s.Spawn(opts)
	}
}

func (s *ParticlesSystem) dropOldest() {
	for _, p := range s.list.Items() {
		if p.Parent() == nil {
			s.dropped++
			p.Destroy()
			return
		}
	}
}
