package game

import (
	"math"
	"slices"

	"github.com/zeusync/darkzone/internal/core/level"
	"github.com/zeusync/darkzone/internal/core/models"
	"github.com/zeusync/darkzone/internal/core/physics"
	"github.com/zeusync/darkzone/internal/core/systems"
	"github.com/zeusync/darkzone/internal/core/systems/collision"
	"github.com/zeusync/darkzone/internal/core/systems/velocity"
)

// Movement and melee tuning shared by the player and the AI.
const (
	Acceleration  = 0.2
	RunSpeed      = 3.0
	WalkSpeed     = 1.5
	AgentFriction = 1.1
	AgentRadius   = level.TileSize / 2

	FistCooldown = 500.0
	FistReach    = 30.0
	FistAngle    = 1.0
)

// Agent is a body that moves, fights and dies: the player or an enemy.
type Agent struct {
	models.Entity
	Body       velocity.Handle
	Collidable *collision.Collidable
	Rot        float64
	MaxSpeed   float64
	Health     float64
	MaxHealth  float64
	Mask       collision.Mask
	Flashlight *Flashlight
	// OnHit runs after every hit the agent survives.
	OnHit func()
	// LastShotAt is the time of the last shot or swing.
	LastShotAt float64

	weapons  []*Gun
	byCode   map[string]*Gun
	current  int
	lastFist float64

	sys *AgentSystem
}

// AgentOptions describes a new agent.
type AgentOptions struct {
	Pos       physics.Vec2
	MaxHealth float64
	Mask      collision.Mask
}

// Pos returns the rounded position.
func (a *Agent) Pos() physics.Vec2 { return a.sys.w.Velocity.Pos(a.Body) }

// Vel returns the velocity.
func (a *Agent) Vel() physics.Vec2 { return a.sys.w.Velocity.Vel(a.Body) }

// Run switches to full speed.
func (a *Agent) Run() { a.MaxSpeed = RunSpeed }

// Walk switches to the quiet speed.
func (a *Agent) Walk() { a.MaxSpeed = WalkSpeed }

// Walking reports whether the agent moves at walking speed.
func (a *Agent) Walking() bool { return a.MaxSpeed <= WalkSpeed }

// Weight is the load factor of the equipped weapon; fists weigh 1.
func (a *Agent) Weight() float64 {
	if g := a.CurrentWeapon(); g != nil && g.Options.Weight > 0 {
		return g.Options.Weight
	}
	return 1
}

// MoveToDirection accelerates towards angle. Each axis is clamped to
// ±MaxSpeed/Weight independently, so diagonal movement is faster than straight.
func (a *Agent) MoveToDirection(angle float64) {
	b, ok := a.sys.w.Velocity.Body(a.Body)
	if !ok {
		return
	}
	acc := physics.Heading(angle).Scaled(Acceleration)
	limit := a.MaxSpeed / a.Weight()
	b.Vel.X = clamp(b.Vel.X+acc.X, -limit, limit)
	b.Vel.Y = clamp(b.Vel.Y+acc.Y, -limit, limit)
}

// Shoot fires the equipped gun or swings the fists.
func (a *Agent) Shoot() bool {
	if !a.Alive() {
		return false
	}
	if g := a.CurrentWeapon(); g != nil {
		return g.Shoot()
	}
	return a.punch()
}

func (a *Agent) punch() bool {
	w := a.sys.w
	if w.Now()-a.lastFist < FistCooldown {
		return false
	}
	a.lastFist = w.Now()
	a.LastShotAt = w.Now()
	w.play("punch")

	pos := a.Pos()
	a.sys.list.Each(func(other *Agent) {
		if other == a || !other.Alive() || other.Mask == a.Mask {
			return
		}
		target := other.Pos()
		if pos.DistanceTo(target) >= FistReach {
			return
		}
		if physics.AngleDiff(pos.DirectionTo(target), a.Rot) >= FistAngle {
			return
		}
		w.Blood.EmitBlood(target, physics.Heading(a.Rot).Scaled(RunSpeed))
		other.DecreaseHealth()
	})
	return true
}

// DecreaseHealth applies one hit. The hit that takes health to zero destroys the
// agent's outermost owner; later hits are ignored.
func (a *Agent) DecreaseHealth() {
	if !a.Alive() {
		return
	}
	a.Health--
	if a.Health <= 0 {
		models.TopParent(a).Destroy()
		return
	}
	if a.OnHit != nil {
		a.OnHit()
	}
}

// Destroy leaves a corpse and leaking blood, drops the equipped gun and tears down
// the collidable, body and flashlight.
func (a *Agent) Destroy() {
	if !a.MarkDestroyed() {
		return
	}
	w := a.sys.w
	pos := a.Pos()

	w.Blood.LeakFromCorpse(pos)
	w.Props.Spawn(PropOptions{
		Pos:        pos,
		Rot:        w.Rand() * 2 * math.Pi,
		Sprite:     "corpse",
		AboveLevel: true,
	})
	if g := a.CurrentWeapon(); g != nil {
		g.detach()
		if g.TotalBullets > 0 {
			w.Pickables.Spawn(pos, g)
		}
	}
	if a.Flashlight != nil {
		a.Flashlight.Destroy()
	}
	w.Collision.Remove(a.Collidable)
	w.Velocity.Remove(a.Body)
	a.sys.list.Remove(a)
}

// AddWeapon puts g into the inventory. A weapon type already owned is topped up
// with g's ammo scaled by ammoMultiplier instead. The new weapon is equipped only
// when its priority beats the equipped one. It reports whether g was added.
func (a *Agent) AddWeapon(g *Gun, ammoMultiplier float64) bool {
	code := g.Options.Code
	if owned, ok := a.byCode[code]; ok {
		owned.TotalBullets += int(math.Ceil(float64(g.TotalBullets) * ammoMultiplier))
		return false
	}
	if a.byCode == nil {
		a.byCode = make(map[string]*Gun)
	}
	g.attach(a)
	a.weapons = append(a.weapons, g)
	a.byCode[code] = g

	if cur := a.CurrentWeapon(); cur == nil || g.Options.Priority > cur.Options.Priority {
		a.current = len(a.weapons) - 1
	}
	return true
}

// HasWeapon reports whether a weapon of this code is in the inventory.
func (a *Agent) HasWeapon(code string) bool {
	_, ok := a.byCode[code]
	return ok
}

// Weapons returns the inventory in pickup order.
func (a *Agent) Weapons() []*Gun { return slices.Clone(a.weapons) }

// CurrentWeapon returns the equipped gun, or nil for fists.
func (a *Agent) CurrentWeapon() *Gun {
	if a.current < 0 || a.current >= len(a.weapons) {
		return nil
	}
	return a.weapons[a.current]
}

// NextWeapon cycles through the inventory; past the last gun come the fists.
func (a *Agent) NextWeapon() {
	a.current++
	if a.current >= len(a.weapons) {
		a.current = -1
	}
}

// DiscardWeapon throws g away without dropping it as a pickable.
func (a *Agent) DiscardWeapon(g *Gun) {
	i := slices.Index(a.weapons, g)
	if i < 0 {
		return
	}
	cur := a.CurrentWeapon()
	g.detach()
	a.weapons = slices.Delete(a.weapons, i, i+1)
	delete(a.byCode, g.Options.Code)

	a.current = -1
	if cur != g {
		a.current = slices.Index(a.weapons, cur)
	}
}

// ToggleFlashlight switches the flashlight, mounting one on first use.
func (a *Agent) ToggleFlashlight() {
	if !a.Alive() {
		return
	}
	if a.Flashlight == nil {
		a.Flashlight = a.sys.w.Flashlights.Attach(a)
		return
	}
	a.Flashlight.Toggle()
}

// FlashlightOn reports whether the agent carries a lit flashlight.
func (a *Agent) FlashlightOn() bool {
	return a.Flashlight != nil && a.Flashlight.Enabled
}

type AgentSystem struct {
	w    *World
	list systems.List[*Agent]
}

func (s *AgentSystem) Name() string                 { return "agents" }
func (s *AgentSystem) Init(*systems.Engine) error   { return nil }
func (s *AgentSystem) Update(*systems.Engine) error { return nil }
func (s *AgentSystem) Len() int                     { return s.list.Len() }
func (s *AgentSystem) Clear()                       { s.list.Clear() }

// Spawn creates an agent with a body, a decoupling circle collidable and full health.
func (s *AgentSystem) Spawn(opts AgentOptions) *Agent {
	a := &Agent{
		Entity:     s.w.NewEntity(),
		MaxSpeed:   RunSpeed,
		Health:     opts.MaxHealth,
		MaxHealth:  opts.MaxHealth,
		Mask:       opts.Mask,
		current:    -1,
		lastFist:   math.Inf(-1),
		LastShotAt: math.Inf(-1),
		sys:        s,
	}
	a.Body = s.w.Velocity.Add(opts.Pos, AgentFriction)
	a.Collidable = s.w.Collision.Add(collision.Options{
		Kind:           collision.KindAgent,
		Owner:          a,
		Shape:          collision.ShapeCircle,
		Radius:         AgentRadius,
		ShouldDecouple: true,
		Mask:           opts.Mask,
		CanHit:         collision.MaskBarrier,
		Body:           a.Body,
	})
	s.list.Add(a)
	return a
}

// Each calls fn for every live agent.
func (s *AgentSystem) Each(fn func(*Agent)) { s.list.Each(fn) }

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
