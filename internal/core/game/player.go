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
	StepInterval       = 270.0
	StepMinSpeed       = 1.0
	VisibilityInterval = 200.0
	// NoisyShotWindow is how long a shot keeps the player audible.
	NoisyShotWindow = 300.0
)

// Movement headings of the WASD keys.
var moveKeys = [...]struct {
	key   string
	angle float64
}{
	{sinks.KeyUp, math.Pi},
	{sinks.KeyLeft, math.Pi / 2},
	{sinks.KeyDown, 0},
	{sinks.KeyRight, 3 * math.Pi / 2},
}

// Player is the agent steered by the input sink.
type Player struct {
	models.Entity
	Agent *Agent
	// Visibility is the last sampled light level at the player.
	Visibility uint8

	lastStep   float64
	lastSample float64
	stepAlt    bool
	pressed    map[string]bool
	sys        *PlayerSystem
}

// IsNoisy reports whether AIs in range can hear the player: running faster than a
// walk, or shortly after a shot or swing.
func (p *Player) IsNoisy() bool {
	a := p.Agent
	if !a.Walking() && a.Vel().Length() > WalkSpeed {
		return true
	}
	return p.sys.w.Now()-a.LastShotAt < NoisyShotWindow
}

// IsVisible reports whether AIs facing the player can see it.
func (p *Player) IsVisible() bool {
	return p.Visibility > p.sys.w.Difficulty.VisibilityLevel || p.Agent.FlashlightOn()
}

// Destroy kills the player.
func (p *Player) Destroy() {
	if !p.MarkDestroyed() {
		return
	}
	if p.sys.player == p {
		p.sys.player = nil
	}
	p.sys.w.play("death")
	p.Agent.Destroy()
}

func (p *Player) update() {
	w := p.sys.w
	in := w.Sinks.Input
	a := p.Agent

	a.Rot = physics.NormalizeAngle(in.AimRotation())
	if in.KeyDown(sinks.KeyWalk) {
		a.Walk()
	} else {
		a.Run()
	}
	for _, m := range moveKeys {
		if in.KeyDown(m.key) {
			a.MoveToDirection(m.angle)
		}
	}
	if in.MouseDown(sinks.MouseLeft) || in.KeyDown(sinks.KeyFire) {
		a.Shoot()
	}

	next, reload, action, flashlight := p.pressedNow(sinks.KeyNextWeapon),
		p.pressedNow(sinks.KeyReload),
		p.pressedNow(sinks.KeyAction),
		p.pressedNow(sinks.KeyFlashlight)
	if next {
		a.NextWeapon()
	}
	if reload {
		if g := a.CurrentWeapon(); g != nil {
			g.Reload()
		}
	}
	if action {
		w.Actions.TriggerCurrent()
	}
	// the action may have killed or replaced the player
	if !p.Alive() {
		return
	}
	if flashlight {
		a.ToggleFlashlight()
	}

	p.footsteps()
	if w.Now()-p.lastSample >= VisibilityInterval {
		p.sample()
	}
}

// pressedNow reports a rising edge of key since the previous tick.
func (p *Player) pressedNow(key string) bool {
	down := p.sys.w.Sinks.Input.KeyDown(key)
	was := p.pressed[key]
	p.pressed[key] = down
	return down && !was
}

func (p *Player) footsteps() {
	w := p.sys.w
	now := w.Now()
	if p.Agent.Vel().Length() <= StepMinSpeed || now-p.lastStep < StepInterval {
		return
	}
	p.lastStep = now
	p.stepAlt = !p.stepAlt
	n := "2"
	if p.stepAlt {
		n = "1"
	}
	w.play(p.floor() + "Step" + n)
}

// floor names the material under the player: wood or stone.
func (p *Player) floor() string {
	grid := p.sys.w.Engine.Level
	if grid == nil {
		return "stone"
	}
	x, y := level.TileOf(p.Agent.Pos())
	if grid.Floor(x, y) == level.Wood {
		return "wood"
	}
	return "stone"
}

func (p *Player) sample() {
	w := p.sys.w
	p.Visibility = w.Sinks.Visibility.Sample(p.Agent.Pos())
	p.lastSample = w.Now()
}

// PlayerSystem owns the single player.
type PlayerSystem struct {
	w      *World
	player *Player
}

func (s *PlayerSystem) Name() string               { return "player" }
func (s *PlayerSystem) Init(*systems.Engine) error { return nil }

func (s *PlayerSystem) Update(*systems.Engine) error {
	if s.player != nil {
		s.player.update()
	}
	return nil
}

func (s *PlayerSystem) Len() int {
	if s.player == nil {
		return 0
	}
	return 1
}

func (s *PlayerSystem) Clear() { s.player = nil }

// Player returns the live player or nil.
func (s *PlayerSystem) Player() *Player { return s.player }

// Spawn places the player at pos with the configured starting weapon. An existing
// player is replaced.
func (s *PlayerSystem) Spawn(pos physics.Vec2) *Player {
	if s.player != nil {
		s.player.Destroy()
	}
	w := s.w
	agent := w.Agents.Spawn(AgentOptions{
		Pos:       pos,
		MaxHealth: w.Config.Game.PlayerHealth * w.Difficulty.PlayerHealthMultiplier,
		Mask:      collision.MaskPlayer,
	})
	p := &Player{
		Entity:   w.NewEntity(),
		Agent:    agent,
		lastStep: math.Inf(-1),
		pressed:  make(map[string]bool),
		sys:      s,
	}
	agent.SetParent(p)
	if code := w.Config.Game.StartWeapon; code != "" {
		agent.AddWeapon(w.NewGun(w.MustWeapon(code)), 1)
	}
	s.player = p
	p.sample()
	return p
}
