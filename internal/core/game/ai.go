package game

import (
	"math"

	"github.com/zeusync/darkzone/internal/core/models"
	"github.com/zeusync/darkzone/internal/core/observability/log"
	"github.com/zeusync/darkzone/internal/core/physics"
	"github.com/zeusync/darkzone/internal/core/systems"
	"github.com/zeusync/darkzone/internal/core/systems/collision"
	"github.com/zeusync/darkzone/pkg/sequence"
)

// AIState is the state of an enemy.
type AIState uint8

const (
	StateIdle AIState = iota
	StatePatrolling
	StateAlerted
	StateChasing
	StateFighting
)

func (s AIState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePatrolling:
		return "patrolling"
	case StateAlerted:
		return "alerted"
	case StateChasing:
		return "chasing"
	case StateFighting:
		return "fighting"
	default:
		return "unknown"
	}
}

// AI timing and perception tuning. Times are milliseconds.
const (
	AlertTime          = 7000.0
	AlertRetargetTime  = 1500.0
	IdleLookAroundTime = 3000.0
	MoveTargetReached  = 20.0
	MeleeApproach      = 25.0
	SightAngle         = 1.2
	AlertRadius        = 80.0
	WanderRange        = 200.0
	PatrolSearchLimit  = 1000.0

	rotSpeedIdle     = 0.02
	rotSpeedFighting = 0.1
	rotSpeedAlerted  = 10.0
	rotSnap          = 0.05
)

// Sighting is what an AI learns about the player when it thinks.
type Sighting struct {
	Pos, Vel physics.Vec2
	// Visible is the player's lighting-based visibility, not line of sight.
	Visible bool
}

// AI drives one enemy agent.
type AI struct {
	models.Entity
	Agent             *Agent
	State             AIState
	CanPatrol         bool
	CanBeAssassinated bool

	PlayerInRange bool
	SeePlayer     bool
	HearPlayer    bool
	IsShooting    bool
	PlayerPos     physics.Vec2
	PlayerVel     physics.Vec2
	RotTarget     float64

	moveTarget      physics.Vec2
	hasMoveTarget   bool
	rotSpeed        float64
	lastThinking    float64
	lastRotChange   float64
	alertedAt       float64
	changedTargetAt float64
	visits          map[int]int
	action          *Action

	sys *AISystem
}

// AIOptions describes a new enemy.
type AIOptions struct {
	Pos physics.Vec2
	// Rot is the initial facing.
	Rot float64
	// Weapon is a catalog code; empty means unarmed.
	Weapon    string
	CanPatrol bool
	// MaxHealth is the base health before the difficulty multiplier. Zero takes the
	// configured default.
	MaxHealth float64
	// NoTakedown disables the stealth kill action.
	NoTakedown bool
}

// MoveTarget returns where the AI is heading, if anywhere.
func (ai *AI) MoveTarget() (physics.Vec2, bool) { return ai.moveTarget, ai.hasMoveTarget }

// SetMoveTarget sends the AI towards pos.
func (ai *AI) SetMoveTarget(pos physics.Vec2) {
	ai.moveTarget, ai.hasMoveTarget = pos, true
}

func (ai *AI) clearMoveTarget() { ai.hasMoveTarget = false }

// Action returns the stealth kill action; only idle AIs have one.
func (ai *AI) Action() *Action { return ai.action }

// Think runs one step of the state machine on the current perception flags.
func (ai *AI) Think(p Sighting) {
	if ai.PlayerInRange {
		ai.PlayerPos, ai.PlayerVel = p.Pos, p.Vel
	}
	ai.IsShooting = ai.SeePlayer && p.Visible

	switch ai.State {
	case StateIdle:
		ai.whenIdle()
	case StatePatrolling:
		ai.whenPatrolling()
	case StateFighting:
		ai.whenFighting()
	case StateChasing:
		ai.whenChasing()
	case StateAlerted:
		ai.whenAlerted()
	}
}

func (ai *AI) whenIdle() {
	now := ai.sys.w.Now()
	if now-ai.lastRotChange > IdleLookAroundTime {
		ai.RotTarget = ai.sys.w.Rand() * 2 * math.Pi
		ai.lastRotChange = now
	}

	if ai.SeePlayer || ai.HearPlayer {
		ai.goFighting()
		ai.clearMoveTarget()
		ai.notifyNeighbours(ai.PlayerPos)
		return
	}
	if ai.CanPatrol && ai.State == StateIdle {
		ai.setState(StatePatrolling)
		ai.Agent.Walk()
	}
}

func (ai *AI) whenPatrolling() {
	ai.whenIdle()
	if ai.State != StatePatrolling {
		return
	}
	pos := ai.Agent.Pos()
	if !ai.hasMoveTarget {
		if point, ok := ai.sys.nextPatrolPoint(pos, ai.visits); ok {
			ai.visits[point.idx]++
			ai.SetMoveTarget(point.pos)
		}
	}
	if ai.hasMoveTarget {
		ai.RotTarget = pos.DirectionTo(ai.moveTarget)
	}
}

func (ai *AI) whenFighting() {
	ai.Agent.Run()
	if ai.PlayerInRange {
		ai.IsShooting = true
		return
	}
	ai.setState(StateChasing)
	ai.SetMoveTarget(ai.PlayerPos)
}

func (ai *AI) whenChasing() {
	if ai.PlayerInRange {
		ai.goFighting()
	} else if !ai.hasMoveTarget {
		ai.goAlerted()
	}
}

func (ai *AI) whenAlerted() {
	w := ai.sys.w
	now := w.Now()
	ai.RotTarget = w.Rand() * 2 * math.Pi
	if ai.SeePlayer || ai.HearPlayer {
		ai.goFighting()
		return
	}
	if now-ai.alertedAt > AlertTime {
		ai.goIdle()
		return
	}
	if now-ai.changedTargetAt > AlertRetargetTime {
		offset := physics.V((0.5-w.Rand())*WanderRange, (0.5-w.Rand())*WanderRange)
		ai.SetMoveTarget(ai.Agent.Pos().Plus(offset))
		ai.changedTargetAt = now
	}
}

func (ai *AI) goIdle() {
	ai.setState(StateIdle)
	ai.rotSpeed = rotSpeedIdle
	if ai.CanBeAssassinated && ai.action == nil {
		ai.action = ai.sys.w.Actions.Add(ActionOptions{
			Follow: ai.Agent.Pos,
			Text:   "kill",
			Fn: func(models.Object) {
				ai.sys.w.play("kill")
				ai.Destroy()
			},
		})
	}
}

func (ai *AI) goFighting() {
	ai.setState(StateFighting)
	ai.rotSpeed = rotSpeedFighting
}

func (ai *AI) goAlerted() {
	now := ai.sys.w.Now()
	ai.setState(StateAlerted)
	ai.rotSpeed = rotSpeedAlerted
	ai.alertedAt = now
	ai.changedTargetAt = now
	ai.destroyAction()
}

// setState moves to next; leaving idle tears the kill action down.
func (ai *AI) setState(next AIState) {
	if ai.State == next {
		return
	}
	if ai.State == StateIdle {
		ai.destroyAction()
	}
	ai.sys.w.Logger.Debug("ai state changed",
		log.Uint64("ai", uint64(ai.ID())),
		log.Stringer("from", ai.State),
		log.Stringer("to", next),
	)
	ai.State = next
}

// notifyNeighbours alerts unaware AIs close by and sends them to pos.
func (ai *AI) notifyNeighbours(pos physics.Vec2) {
	origin := ai.Agent.Pos()
	ai.sys.list.Each(func(other *AI) {
		if other == ai || !other.Alive() {
			return
		}
		if other.State != StateIdle && other.State != StatePatrolling {
			return
		}
		if origin.DistanceTo(other.Agent.Pos()) < AlertRadius {
			other.goAlerted()
			other.SetMoveTarget(pos)
		}
	})
}

func (ai *AI) onHit() {
	if ai.State == StateIdle || ai.State == StatePatrolling {
		ai.goAlerted()
	}
}

func (ai *AI) destroyAction() {
	if ai.action != nil {
		ai.action.Destroy()
		ai.action = nil
	}
}

func (ai *AI) shootAt(pos physics.Vec2) {
	a := ai.Agent
	a.Rot = a.Pos().DirectionTo(pos)
	ai.RotTarget = a.Rot
	if g := a.CurrentWeapon(); g == nil || !g.Reloading {
		a.Shoot()
	}
}

// shootAtPlayer leads the shot by the bullet travel time. Unarmed AIs close in
// to melee range first; an empty gun is thrown away.
func (ai *AI) shootAtPlayer() {
	a := ai.Agent
	g := a.CurrentWeapon()
	if g != nil && g.TotalBullets == 0 {
		a.DiscardWeapon(g)
		g = nil
	}

	target := ai.PlayerPos
	distance := a.Pos().DistanceTo(ai.PlayerPos)
	switch {
	case g != nil:
		travel := distance / g.Options.BulletSpeed
		ai.shootAt(target.Plus(ai.PlayerVel.Scaled(travel)))
	case distance > MeleeApproach:
		ai.SetMoveTarget(target)
	default:
		ai.shootAt(target)
	}
}

// turn steps the agent rotation towards RotTarget along the shorter way round.
func (ai *AI) turn() {
	a := ai.Agent
	if a.Rot == ai.RotTarget {
		return
	}
	if physics.AngleDiff(a.Rot, ai.RotTarget) <= max(ai.rotSpeed, rotSnap) {
		a.Rot = ai.RotTarget
		return
	}
	diff := ai.RotTarget - a.Rot
	dir := 1.0
	if math.Abs(diff) > math.Pi {
		dir = -dir
	}
	if ai.RotTarget < a.Rot {
		dir = -dir
	}
	a.Rot = physics.NormalizeAngle(a.Rot + ai.rotSpeed*dir)
}

// Destroy removes the AI together with its agent.
func (ai *AI) Destroy() {
	if !ai.MarkDestroyed() {
		return
	}
	ai.sys.list.Remove(ai)
	ai.destroyAction()
	ai.Agent.Destroy()
}

type patrolPoint struct {
	idx int
	pos physics.Vec2
}

// AISystem perceives for and drives every enemy.
type AISystem struct {
	w      *World
	list   systems.List[*AI]
	points []patrolPoint
}

func (s *AISystem) Name() string               { return "ai" }
func (s *AISystem) Init(*systems.Engine) error { return nil }

// Update lets every AI perceive and think once per reaction interval, then moves,
// aims and fires every tick.
func (s *AISystem) Update(e *systems.Engine) error {
	react := s.w.Difficulty.AIReactionTime
	s.list.Each(func(ai *AI) {
		player := s.w.Player()
		if player == nil || !ai.Alive() {
			return
		}
		if e.Time-ai.lastThinking > react {
			s.process(ai, player)
			ai.lastThinking = e.Time
		}
		if ai.IsShooting {
			ai.PlayerPos = player.Agent.Pos()
			ai.shootAtPlayer()
		}
		if ai.hasMoveTarget {
			pos := ai.Agent.Pos()
			ai.Agent.MoveToDirection(pos.DirectionTo(ai.moveTarget))
			if pos.DistanceTo(ai.moveTarget) < MoveTargetReached {
				ai.clearMoveTarget()
			}
		}
		ai.turn()
	})
	return nil
}

// process refreshes the perception flags and runs the state machine.
func (s *AISystem) process(ai *AI, player *Player) {
	pos, playerPos := ai.Agent.Pos(), player.Agent.Pos()
	visible := player.IsVisible()

	ai.PlayerInRange = s.w.Collision.Visible(pos, playerPos)
	ai.HearPlayer = ai.PlayerInRange && player.IsNoisy()
	ai.SeePlayer = ai.PlayerInRange &&
		physics.AngleDiff(pos.DirectionTo(playerPos), ai.Agent.Rot) < SightAngle &&
		visible

	ai.Think(Sighting{Pos: playerPos, Vel: player.Agent.Vel(), Visible: visible})
}

func (s *AISystem) Len() int { return s.list.Len() }

func (s *AISystem) Clear() {
	s.list.Clear()
	s.points = nil
}

// Each calls fn for every AI.
func (s *AISystem) Each(fn func(*AI)) { s.list.Each(fn) }

// Spawn creates an enemy. It starts idle; patrollers carry a lit flashlight.
func (s *AISystem) Spawn(opts AIOptions) *AI {
	w := s.w
	health := opts.MaxHealth
	if health == 0 {
		health = w.Config.Game.EnemyHealth
	}
	agent := w.Agents.Spawn(AgentOptions{
		Pos:       opts.Pos,
		MaxHealth: health * w.Difficulty.EnemyHealthMultiplier,
		Mask:      collision.MaskEnemy,
	})
	ai := &AI{
		Entity:            w.NewEntity(),
		Agent:             agent,
		CanPatrol:         opts.CanPatrol,
		CanBeAssassinated: !opts.NoTakedown,
		lastThinking:      w.Now() + w.Difficulty.AIReactionTime*w.Rand(),
		visits:            make(map[int]int),
		sys:               s,
	}
	agent.SetParent(ai)
	agent.OnHit = ai.onHit
	agent.Rot = physics.NormalizeAngle(opts.Rot)
	ai.RotTarget = agent.Rot
	if opts.Weapon != "" {
		agent.AddWeapon(w.NewGun(w.MustWeapon(opts.Weapon)), 1)
	}
	if ai.CanPatrol {
		agent.ToggleFlashlight()
	}
	ai.goIdle()
	s.list.Add(ai)
	return ai
}

// AddPatrolPoint registers a waypoint for patrollers.
func (s *AISystem) AddPatrolPoint(pos physics.Vec2) {
	s.points = append(s.points, patrolPoint{idx: len(s.points), pos: pos})
}

// VisiblePatrolPoints returns the waypoints with a clear line from pos.
func (s *AISystem) VisiblePatrolPoints(pos physics.Vec2) []physics.Vec2 {
	it := s.visiblePoints(pos)
	return sequence.Map(it, func(p patrolPoint) physics.Vec2 { return p.pos }).Collect()
}

func (s *AISystem) visiblePoints(pos physics.Vec2) *sequence.Iterator[patrolPoint] {
	return sequence.From(s.points).Filter(func(p patrolPoint) bool {
		return s.w.Collision.Visible(pos, p.pos)
	})
}

// nextPatrolPoint picks the least visited visible waypoint, the closest on ties.
func (s *AISystem) nextPatrolPoint(pos physics.Vec2, visits map[int]int) (patrolPoint, bool) {
	least := sequence.MinBy(s.visiblePoints(pos), func(p patrolPoint) int { return visits[p.idx] })
	return sequence.Closest(sequence.From(least), PatrolSearchLimit, func(p patrolPoint) float64 {
		return pos.DistanceTo(p.pos)
	})
}
