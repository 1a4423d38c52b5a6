package sinks

import "github.com/zeusync/darkzone/internal/core/physics"

// IdleInput never presses anything.
type IdleInput struct{}

func (IdleInput) KeyDown(string) bool  { return false }
func (IdleInput) MouseDown(int) bool   { return false }
func (IdleInput) AimRotation() float64 { return 0 }

type NopAudio struct{}

func (NopAudio) Play(string) {}

type NopVisual struct{}

func (NopVisual) Spawn(VisualCue) {}
func (NopVisual) Remove(uint64)   {}

// FixedVisibility reports the same light level everywhere.
type FixedVisibility uint8

func (f FixedVisibility) Sample(physics.Vec2) uint8 { return uint8(f) }

// Fanout forwards audio and visual cues to several sinks in order.
type Fanout []any

func (f Fanout) Play(cue string) {
	for _, s := range f {
		if a, ok := s.(AudioSink); ok {
			a.Play(cue)
		}
	}
}

func (f Fanout) Spawn(cue VisualCue) {
	for _, s := range f {
		if v, ok := s.(VisualSink); ok {
			v.Spawn(cue)
		}
	}
}

func (f Fanout) Remove(id uint64) {
	for _, s := range f {
		if v, ok := s.(VisualSink); ok {
			v.Remove(id)
		}
	}
}
