package game

import (
	"math"

	"github.com/zeusync/darkzone/internal/core/physics"
	"github.com/zeusync/darkzone/internal/core/sinks"
	"github.com/zeusync/darkzone/internal/core/systems"
	"github.com/zeusync/darkzone/internal/core/systems/collision"
)

const (
	// LeakInterval is how often a corpse pool grows.
	LeakInterval = 300.0
	corpseLeaks  = 3
)

// Leak is a growing blood pool under a corpse.
type Leak struct {
	Pos      physics.Vec2
	Size     float64
	MaxSize  float64
	LastLeak float64
	id       uint64
}

// BloodSystem spawns blood sprays, turns landed drops into stains and grows the
// pools under corpses.
type BloodSystem struct {
	w      *World
	leaks  []*Leak
	stains int
}

func (s *BloodSystem) Name() string               { return "blood" }
func (s *BloodSystem) Init(*systems.Engine) error { return nil }

// Update grows every pool once per LeakInterval and retires it past its size.
func (s *BloodSystem) Update(e *systems.Engine) error {
	kept := s.leaks[:0]
	for _, l := range s.leaks {
		if e.Time-l.LastLeak > LeakInterval {
			l.LastLeak = e.Time
			l.Size++
			s.w.Sinks.Visual.Spawn(sinks.VisualCue{
				Kind:  sinks.VisualStain,
				ID:    l.id,
				Pos:   l.Pos,
				Color: "red",
				Size:  l.Size,
			})
			if l.Size > l.MaxSize {
				continue
			}
		}
		kept = append(kept, l)
	}
	clear(s.leaks[len(kept):])
	s.leaks = kept
	return nil
}

// Len returns the number of growing pools.
func (s *BloodSystem) Len() int { return len(s.leaks) }

// Stains returns how many blood drops have landed.
func (s *BloodSystem) Stains() int { return s.stains }

func (s *BloodSystem) Clear() {
	s.leaks = nil
	s.stains = 0
}

// EmitBlood sprays drops along vel from a wound at pos. Drops stop at walls and
// leave a stain where they land.
func (s *BloodSystem) EmitBlood(pos, vel physics.Vec2) {
	s.w.Particles.Emit(ParticleOptions{
		Pos:      pos,
		Color:    "red",
		Lifetime: 800,
		CanHit:   collision.MaskBarrier,
		OnDeath:  s.stain,
	}, EmitOptions{
		Count:          int(math.Ceil(s.w.Rand() * 50)),
		Direction:      vel.Scaled(0.2),
		Spread:         0.9,
		SpeedSpread:    0.5,
		LifetimeSpread: 0.5,
	})
}

// LeakFromCorpse starts the pools around a corpse.
func (s *BloodSystem) LeakFromCorpse(pos physics.Vec2) {
	for range corpseLeaks {
		offset := physics.V(6-s.w.Rand()*12, 6-s.w.Rand()*12)
		s.leaks = append(s.leaks, &Leak{
			Pos:     pos.Plus(offset),
			MaxSize: s.w.Rand()*5 + 3,
			id:      uint64(s.w.ids.Next()),
		})
	}
}

func (s *BloodSystem) stain(pos physics.Vec2) {
	s.stains++
	s.w.Sinks.Visual.Spawn(sinks.VisualCue{
		Kind:  sinks.VisualStain,
		ID:    uint64(s.w.ids.Next()),
		Pos:   pos,
		Color: "red",
		Size:  1,
	})
}
