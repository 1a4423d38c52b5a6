package game

import (
	"math"

	"github.com/zeusync/darkzone/internal/core/level"
	"github.com/zeusync/darkzone/internal/core/models"
	"github.com/zeusync/darkzone/internal/core/physics"
	"github.com/zeusync/darkzone/internal/core/sinks"
	"github.com/zeusync/darkzone/internal/core/systems"
	"github.com/zeusync/darkzone/internal/core/systems/collision"
)

const (
	DefaultLightRadius = 250.0
	LightFixtureRadius = 5.0

	// breakChance is the chance a shot light stays broken instead of just going out.
	breakChance = 0.3
	// flickerChance is the per-tick chance a broken light toggles.
	flickerChance = 0.1
)

// Light is a light source. Physical lights are wall fixtures: they can be switched,
// shot out and flicker once broken. Muzzle flashes are non-physical.
type Light struct {
	models.Entity
	Pos      physics.Vec2
	Radius   float64
	Enabled  bool
	Broken   bool
	Physical bool
	Color    string
	// Direction points away from the wall the fixture hangs on.
	Direction physics.Vec2

	Collidable  *collision.Collidable
	Prop        *Prop
	Action      *Action
	LastUpdated float64

	sys *LightsSystem
}

// LightOptions describes a new light.
type LightOptions struct {
	Pos      physics.Vec2
	Radius   float64
	Enabled  bool
	Broken   bool
	Physical bool
	// Wall is the side of the tile the fixture is mounted on.
	Wall level.Direction
}

// Toggle switches the light. Broken lights spark when they do.
func (l *Light) Toggle() {
	if !l.Alive() {
		return
	}
	l.Enabled = !l.Enabled
	l.LastUpdated = l.sys.w.Now()
	if l.Prop != nil {
		if l.Enabled {
			l.Prop.SetSprite("light")
		} else {
			l.Prop.SetSprite("lightBroken")
		}
	}
	l.publish()
	if l.Broken {
		l.EmitSparks(1)
	}
}

// Break is what a bullet does to a lit fixture: the light goes out and, with some
// chance, stays broken with half the radius.
func (l *Light) Break() {
	if !l.Alive() || !l.Enabled || l.Broken {
		return
	}
	if l.Action != nil {
		l.Action.Destroy()
		l.Action = nil
	}
	if l.sys.w.Rand() < breakChance {
		l.Broken = true
		l.Radius /= 2
		l.Color = "#aaa"
	}
	l.Toggle()
	l.EmitSparks(2)
}

// EmitSparks throws white sparks away from the wall.
func (l *Light) EmitSparks(multiplier float64) {
	w := l.sys.w
	w.Particles.Emit(ParticleOptions{
		Pos:      l.Pos,
		Color:    "white",
		Lifetime: 400,
		Friction: 1.1,
	}, EmitOptions{
		Count:          int(math.Ceil(w.Rand() * 10 * multiplier)),
		Direction:      l.Direction.Scaled(5 * multiplier),
		Spread:         math.Pi,
		SpeedSpread:    0.5,
		LifetimeSpread: 0.5,
	})
}

func (l *Light) Destroy() {
	if !l.MarkDestroyed() {
		return
	}
	w := l.sys.w
	w.Collision.Remove(l.Collidable)
	if l.Prop != nil {
		l.Prop.Destroy()
	}
	if l.Action != nil {
		l.Action.Destroy()
	}
	l.sys.list.Remove(l)
	w.Sinks.Visual.Remove(uint64(l.ID()))
}

func (l *Light) publish() {
	l.sys.w.Sinks.Visual.Spawn(sinks.VisualCue{
		Kind:  sinks.VisualLight,
		ID:    uint64(l.ID()),
		Pos:   l.Pos,
		Color: l.Color,
		Size:  l.lit(),
	})
}

// lit is the effective radius: zero when switched off.
func (l *Light) lit() float64 {
	if !l.Enabled {
		return 0
	}
	return l.Radius
}

type LightsSystem struct {
	w    *World
	list systems.List[*Light]
}

func (s *LightsSystem) Name() string               { return "lights" }
func (s *LightsSystem) Init(*systems.Engine) error { return nil }

// Update lets broken lights flicker.
func (s *LightsSystem) Update(*systems.Engine) error {
	s.list.Each(func(l *Light) {
		if l.Alive() && l.Broken && s.w.Rand() < flickerChance {
			l.Toggle()
		}
	})
	return nil
}

func (s *LightsSystem) Len() int { return s.list.Len() }
func (s *LightsSystem) Clear()   { s.list.Clear() }

// Each calls fn for every light.
func (s *LightsSystem) Each(fn func(*Light)) { s.list.Each(fn) }

// Spawn creates a light. A physical light at a tile origin is moved onto the wall
// it hangs on and gets a fixture collidable, a prop and, unless broken, a toggle
// action.
func (s *LightsSystem) Spawn(opts LightOptions) *Light {
	radius := opts.Radius
	if radius == 0 {
		radius = DefaultLightRadius
	}
	l := &Light{
		Entity:   s.w.NewEntity(),
		Pos:      opts.Pos,
		Radius:   radius,
		Enabled:  opts.Enabled,
		Broken:   opts.Broken,
		Physical: opts.Physical,
		Color:    "white",
		sys:      s,
	}
	if l.Broken {
		l.Radius /= 2
		l.Color = "#aaa"
	}

	if l.Physical {
		var rot float64
		const half = level.TileSize / 2
		switch opts.Wall {
		case level.DirUp:
			rot = math.Pi / 2
			l.Pos.Add(physics.V(half, 0))
			l.Direction = physics.V(0, 1)
		case level.DirRight:
			rot = math.Pi
			l.Pos.Add(physics.V(level.TileSize, half))
			l.Direction = physics.V(-1, 0)
		case level.DirDown:
			rot = -math.Pi / 2
			l.Pos.Add(physics.V(half, level.TileSize))
			l.Direction = physics.V(0, -1)
		case level.DirLeft:
			l.Pos.Add(physics.V(0, half))
			l.Direction = physics.V(1, 0)
		default:
			l.Pos.Add(physics.V(half, half))
		}

		l.Collidable = s.w.Collision.Add(collision.Options{
			Kind:   collision.KindLight,
			Owner:  l,
			Shape:  collision.ShapeCircle,
			Radius: LightFixtureRadius,
			Mask:   collision.MaskObstacle,
			Pos:    l.Pos,
		})
		sprite := "light"
		if !l.Enabled {
			sprite = "lightBroken"
		}
		l.Prop = s.w.Props.Spawn(PropOptions{Pos: l.Pos, Rot: rot, Sprite: sprite, AboveLevel: true})
		if !l.Broken {
			l.Action = s.w.Actions.Add(ActionOptions{
				Pos:  l.Pos,
				Text: "toggle",
				Fn:   func(models.Object) { l.Toggle() },
			})
		}
	}

	s.list.Add(l)
	l.publish()
	return l
}
