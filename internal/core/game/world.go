// Package game holds the gameplay systems of darkzone: agents and their weapons,
// projectiles and particles, level furniture, the enemy AI and the player
// controller.
//
// A World is built per level. It registers every system with the engine in update
// order and keeps a typed reference to each, so systems reach their siblings
// through the World instead of looking them up by type at runtime.
package game

import (
	"fmt"

	"github.com/zeusync/darkzone/internal/core/config"
	"github.com/zeusync/darkzone/internal/core/models"
	"github.com/zeusync/darkzone/internal/core/observability/log"
	"github.com/zeusync/darkzone/internal/core/sinks"
	"github.com/zeusync/darkzone/internal/core/systems"
	"github.com/zeusync/darkzone/internal/core/systems/collision"
	"github.com/zeusync/darkzone/internal/core/systems/timer"
	"github.com/zeusync/darkzone/internal/core/systems/velocity"
)

// Options configures a World.
type Options struct {
	// Config supplies the difficulty, the weapon catalog and the particle cap.
	// Defaults to config.Default().
	Config *config.Config
	// Sinks are the presentation collaborators. Missing ones are headless; a missing
	// visibility sampler is replaced by the World's own lighting sampler.
	Sinks  sinks.Sinks
	Logger log.Log
}

// World is the typed registry of one level's systems.
type World struct {
	Engine     *systems.Engine
	Config     *config.Config
	Difficulty config.Difficulty
	Sinks      sinks.Sinks
	Logger     log.Log

	Timers      *timer.System
	Props       *PropsSystem
	Barriers    *BarrierSystem
	Agents      *AgentSystem
	Players     *PlayerSystem
	Velocity    *velocity.System
	Projectiles *ProjectileSystem
	Collision   *collision.System
	AI          *AISystem
	Lights      *LightsSystem
	Particles   *ParticlesSystem
	Blood       *BloodSystem
	Actions     *ActionsSystem
	Doors       *DoorsSystem
	Flashlights *FlashlightSystem
	Pickables   *PickableSystem

	Lighting *LightingSampler

	// OnNewWeapon fires when the player picks up a weapon type it did not own.
	OnNewWeapon func(config.Weapon)

	ids models.IDSource
}

// NewWorld builds the systems of one level and registers them with engine in
// update order. The caller runs engine.Init afterwards.
func NewWorld(engine *systems.Engine, opts Options) *World {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = engine.Logger()
	}

	w := &World{
		Engine:     engine,
		Config:     cfg,
		Difficulty: cfg.Difficulty(),
		Logger:     logger.With(log.String("component", "game")),
	}
	w.Lighting = &LightingSampler{w: w, Ambient: DefaultAmbientLight}
	if opts.Sinks.Visibility == nil {
		opts.Sinks.Visibility = w.Lighting
	}
	w.Sinks = opts.Sinks.WithDefaults()

	w.Timers = timer.New()
	w.Props = &PropsSystem{w: w}
	w.Barriers = &BarrierSystem{w: w}
	w.Agents = &AgentSystem{w: w}
	w.Players = &PlayerSystem{w: w}
	w.Velocity = velocity.New()
	w.Projectiles = &ProjectileSystem{w: w}
	w.Collision = collision.New()
	w.AI = &AISystem{w: w}
	w.Lights = &LightsSystem{w: w}
	w.Particles = &ParticlesSystem{w: w, Max: cfg.Engine.MaxParticles}
	w.Blood = &BloodSystem{w: w}
	w.Actions = &ActionsSystem{w: w}
	w.Doors = &DoorsSystem{w: w}
	w.Flashlights = &FlashlightSystem{w: w}
	w.Pickables = &PickableSystem{w: w}

	for _, s := range []systems.System{
		w.Timers,
		w.Props,
		w.Barriers,
		w.Agents,
		w.Players,
		w.Velocity,
		w.Projectiles,
		w.Collision,
		w.AI,
		w.Lights,
		w.Particles,
		w.Blood,
		w.Actions,
		w.Doors,
		w.Flashlights,
		w.Pickables,
	} {
		engine.Register(s)
	}
	return w
}

// Now returns the simulation time in milliseconds.
func (w *World) Now() float64 { return w.Engine.Time }

// Rand returns a uniform float in [0, 1) from the engine RNG.
func (w *World) Rand() float64 { return w.Engine.Rand().Float64() }

// NewEntity returns a fresh live entity base.
func (w *World) NewEntity() models.Entity {
	return models.NewEntity(w.ids.Next())
}

// MustWeapon returns the catalog entry for code. An unknown code is a wiring bug.
func (w *World) MustWeapon(code string) config.Weapon {
	opts, ok := w.Config.Weapons[code]
	if !ok {
		panic(fmt.Sprintf("game: weapon %q is not in the catalog", code))
	}
	return opts
}

// Player returns the live player, if any.
func (w *World) Player() *Player { return w.Players.Player() }

func (w *World) play(cue string) { w.Sinks.Audio.Play(cue) }
