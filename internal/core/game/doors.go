package game

import (
	"math"

	"github.com/zeusync/darkzone/internal/core/level"
	"github.com/zeusync/darkzone/internal/core/models"
	"github.com/zeusync/darkzone/internal/core/physics"
	"github.com/zeusync/darkzone/internal/core/systems"
	"github.com/zeusync/darkzone/internal/core/systems/collision"
)

type DoorOrientation uint8

const (
	DoorVertical DoorOrientation = iota
	DoorHorizontal
)

// Door blocks its tile until opened. Opening is one-way.
type Door struct {
	models.Entity
	Pos         physics.Vec2
	Orientation DoorOrientation
	Opened      bool
	Collidable  *collision.Collidable
	Prop        *Prop
	Action      *Action

	sys *DoorsSystem
}

// Open swings the door and frees its tile for movement and sight.
func (d *Door) Open() bool {
	if !d.Alive() || d.Opened {
		return false
	}
	d.Opened = true
	d.Prop.SetRot(d.Prop.Rot + math.Pi/2)
	d.sys.w.Collision.Remove(d.Collidable)
	d.Action.Destroy()
	d.sys.w.play("door")
	return true
}

func (d *Door) Destroy() {
	if !d.MarkDestroyed() {
		return
	}
	d.sys.w.Collision.Remove(d.Collidable)
	d.Action.Destroy()
	d.Prop.Destroy()
	d.sys.list.Remove(d)
}

type DoorsSystem struct {
	w    *World
	list systems.List[*Door]
}

func (s *DoorsSystem) Name() string                 { return "doors" }
func (s *DoorsSystem) Init(*systems.Engine) error   { return nil }
func (s *DoorsSystem) Update(*systems.Engine) error { return nil }
func (s *DoorsSystem) Len() int                     { return s.list.Len() }
func (s *DoorsSystem) Clear()                       { s.list.Clear() }

// Add places a closed door on the tile whose top-left corner is pos.
func (s *DoorsSystem) Add(pos physics.Vec2, orientation DoorOrientation) *Door {
	d := &Door{Entity: s.w.NewEntity(), Pos: pos, Orientation: orientation, sys: s}
	d.Collidable = s.w.Collision.Add(collision.Options{
		Kind:  collision.KindDoor,
		Owner: d,
		Shape: collision.ShapeGridCell,
		Mask:  collision.MaskBarrier,
		Pos:   pos,
	})
	rot := math.Pi / 2
	if orientation == DoorHorizontal {
		rot = 0
	}
	d.Prop = s.w.Props.Spawn(PropOptions{Pos: pos, Rot: rot, Sprite: "door"})
	d.Action = s.w.Actions.Add(ActionOptions{
		Pos:  pos.Plus(physics.V(level.TileSize/2, level.TileSize/2)),
		Text: "open",
		Fn:   func(models.Object) { d.Open() },
	})
	s.list.Add(d)
	return d
}

// Each calls fn for every door.
func (s *DoorsSystem) Each(fn func(*Door)) { s.list.Each(fn) }
