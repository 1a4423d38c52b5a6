// Package sinks defines the boundary between the simulation and its presentation:
// the simulation reads input and light levels through these interfaces and reports
// sounds and visual effects as fire-and-forget cues.
package sinks

//go:generate go run go.uber.org/mock/mockgen -destination=./mocks/sinks_mock.go -package=mocks . Input,AudioSink,VisualSink,VisibilitySampler

import "github.com/zeusync/darkzone/internal/core/physics"

// Key names read by the player controller.
const (
	KeyUp         = "w"
	KeyLeft       = "a"
	KeyDown       = "s"
	KeyRight      = "d"
	KeyWalk       = "shift"
	KeyFire       = " "
	KeyNextWeapon = "q"
	KeyReload     = "r"
	KeyAction     = "e"
	KeyFlashlight = "f"

	MouseLeft = 0
)

// Input is the current state of the input devices. It is polled once per tick.
type Input interface {
	KeyDown(key string) bool
	MouseDown(button int) bool
	// AimRotation is the angle from the screen centre to the cursor.
	AimRotation() float64
}

// AudioSink plays named sound cues.
type AudioSink interface {
	Play(cue string)
}

// VisualKind classifies a visual cue.
type VisualKind uint8

const (
	VisualProp VisualKind = iota
	VisualParticle
	VisualLight
	VisualStain
	VisualFlashlight
	VisualNotice
)

func (k VisualKind) String() string {
	switch k {
	case VisualProp:
		return "prop"
	case VisualParticle:
		return "particle"
	case VisualLight:
		return "light"
	case VisualStain:
		return "stain"
	case VisualFlashlight:
		return "flashlight"
	case VisualNotice:
		return "notice"
	default:
		return "unknown"
	}
}

// VisualCue describes something the presentation layer should draw. Cues with the
// same ID replace each other; Remove drops it.
type VisualCue struct {
	Kind    VisualKind     `json:"kind"`
	ID      uint64         `json:"id"`
	Pos     physics.Vec2   `json:"pos"`
	Vel     physics.Vec2   `json:"vel,omitzero"`
	Rot     float64        `json:"rot,omitempty"`
	Sprite  string         `json:"sprite,omitempty"`
	Color   string         `json:"color,omitempty"`
	Size    float64        `json:"size,omitempty"`
	Text    string         `json:"text,omitempty"`
	Polygon []physics.Vec2 `json:"polygon,omitempty"`
}

// VisualSink receives visual cues.
type VisualSink interface {
	Spawn(cue VisualCue)
	Remove(id uint64)
}

// VisibilitySampler returns the light level (0-255) at a world position.
type VisibilitySampler interface {
	Sample(pos physics.Vec2) uint8
}

// Sinks bundles the collaborators of one session.
type Sinks struct {
	Input      Input
	Audio      AudioSink
	Visual     VisualSink
	Visibility VisibilitySampler
}

// WithDefaults fills every nil collaborator with its headless implementation.
func (s Sinks) WithDefaults() Sinks {
	if s.Input == nil {
		s.Input = IdleInput{}
	}
	if s.Audio == nil {
		s.Audio = NopAudio{}
	}
	if s.Visual == nil {
		s.Visual = NopVisual{}
	}
	if s.Visibility == nil {
		s.Visibility = FixedVisibility(255)
	}
	return s
}
