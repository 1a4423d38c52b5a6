package game

import (
	"github.com/zeusync/darkzone/internal/core/models"
	"github.com/zeusync/darkzone/internal/core/physics"
	"github.com/zeusync/darkzone/internal/core/sinks"
	"github.com/zeusync/darkzone/internal/core/systems"
)

// Prop is a passive sprite: walls, corpses, door leaves, dropped guns.
type Prop struct {
	models.Entity
	Pos        physics.Vec2
	Rot        float64
	Sprite     string
	AboveLevel bool

	sys *PropsSystem
}

// PropOptions describes a new prop.
type PropOptions struct {
	Pos        physics.Vec2
	Rot        float64
	Sprite     string
	AboveLevel bool
}

// SetRot turns the prop and republishes it.
func (p *Prop) SetRot(rot float64) {
	p.Rot = rot
	p.publish()
}

// SetSprite swaps the sprite and republishes the prop.
func (p *Prop) SetSprite(sprite string) {
	p.Sprite = sprite
	p.publish()
}

func (p *Prop) Destroy() {
	if !p.MarkDestroyed() {
		return
	}
	p.sys.list.Remove(p)
	p.sys.w.Sinks.Visual.Remove(uint64(p.ID()))
}

func (p *Prop) publish() {
	if !p.Alive() {
		return
	}
	p.sys.w.Sinks.Visual.Spawn(sinks.VisualCue{
		Kind:   sinks.VisualProp,
		ID:     uint64(p.ID()),
		Pos:    p.Pos,
		Rot:    p.Rot,
		Sprite: p.Sprite,
	})
}

type PropsSystem struct {
	w    *World
	list systems.List[*Prop]
}

func (s *PropsSystem) Name() string                 { return "props" }
func (s *PropsSystem) Init(*systems.Engine) error   { return nil }
func (s *PropsSystem) Update(*systems.Engine) error { return nil }
func (s *PropsSystem) Len() int                     { return s.list.Len() }
func (s *PropsSystem) Clear()                       { s.list.Clear() }

// Spawn creates a prop and publishes it.
func (s *PropsSystem) Spawn(opts PropOptions) *Prop {
	p := &Prop{
		Entity:     s.w.NewEntity(),
		Pos:        opts.Pos,
		Rot:        opts.Rot,
		Sprite:     opts.Sprite,
		AboveLevel: opts.AboveLevel,
		sys:        s,
	}
	s.list.Add(p)
	p.publish()
	return p
}

// Count returns the live props using sprite.
func (s *PropsSystem) Count(sprite string) int {
	n := 0
	s.list.Each(func(p *Prop) {
		if p.Sprite == sprite {
			n++
		}
	})
	return n
}
