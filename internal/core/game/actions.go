package game

import (
	"github.com/zeusync/darkzone/internal/core/models"
	"github.com/zeusync/darkzone/internal/core/physics"
	"github.com/zeusync/darkzone/internal/core/sinks"
	"github.com/zeusync/darkzone/internal/core/systems"
)

// ActionRadius is how close the player must be to use an action.
const ActionRadius = 40.0

// Action is something the player can do to a nearby object: open a door, switch a
// light, take down an unaware enemy.
type Action struct {
	models.Entity
	Text string
	Fn   func(by models.Object)

	pos   func() physics.Vec2
	fixed physics.Vec2
	sys   *ActionsSystem
}

// ActionOptions describes a new action. Follow, when set, tracks a moving target;
// otherwise the action sits at Pos.
type ActionOptions struct {
	Pos    physics.Vec2
	Follow func() physics.Vec2
	Text   string
	Fn     func(by models.Object)
}

// Pos returns the current anchor of the action.
func (a *Action) Pos() physics.Vec2 {
	if a.pos != nil {
		return a.pos()
	}
	return a.fixed
}

// Trigger runs the action on behalf of by.
func (a *Action) Trigger(by models.Object) bool {
	if !a.Alive() {
		return false
	}
	a.Fn(by)
	return true
}

func (a *Action) Destroy() {
	if !a.MarkDestroyed() {
		return
	}
	a.sys.list.Remove(a)
	if a.sys.current == a {
		a.sys.current = nil
	}
}

type ActionsSystem struct {
	w       *World
	list    systems.List[*Action]
	current *Action
	shown   *Action
}

func (s *ActionsSystem) Name() string               { return "actions" }
func (s *ActionsSystem) Init(*systems.Engine) error { return nil }

// Update selects the action closest to the player within ActionRadius.
func (s *ActionsSystem) Update(*systems.Engine) error {
	s.current = nil
	if p := s.w.Player(); p != nil {
		pos := p.Agent.Pos()
		best := ActionRadius
		s.list.Each(func(a *Action) {
			if d := pos.DistanceTo(a.Pos()); d < best {
				best = d
				s.current = a
			}
		})
	}
	s.notice()
	return nil
}

func (s *ActionsSystem) notice() {
	if s.current == s.shown {
		return
	}
	const noticeID = 0
	if s.current == nil {
		s.w.Sinks.Visual.Remove(noticeID)
	} else {
		s.w.Sinks.Visual.Spawn(sinks.VisualCue{
			Kind: sinks.VisualNotice,
			ID:   noticeID,
			Pos:  s.current.Pos(),
			Text: s.current.Text,
		})
	}
	s.shown = s.current
}

func (s *ActionsSystem) Len() int { return s.list.Len() }

func (s *ActionsSystem) Clear() {
	s.list.Clear()
	s.current, s.shown = nil, nil
}

// Add registers an action.
func (s *ActionsSystem) Add(opts ActionOptions) *Action {
	a := &Action{
		Entity: s.w.NewEntity(),
		Text:   opts.Text,
		Fn:     opts.Fn,
		pos:    opts.Follow,
		fixed:  opts.Pos,
		sys:    s,
	}
	s.list.Add(a)
	return a
}

// Current returns the action the player would trigger now.
func (s *ActionsSystem) Current() *Action { return s.current }

// TriggerCurrent runs the selected action for the player.
func (s *ActionsSystem) TriggerCurrent() bool {
	a, p := s.current, s.w.Player()
	if a == nil || p == nil {
		return false
	}
	s.current = nil
	return a.Trigger(p)
}
