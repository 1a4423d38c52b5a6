package sinks

import (
	"github.com/zeusync/darkzone/internal/core/events/bus"
	"github.com/zeusync/darkzone/internal/core/observability/log"
)

// Event types published by BusSink.
const (
	EventAudio        = "cue.audio"
	EventVisualSpawn  = "cue.visual.spawn"
	EventVisualRemove = "cue.visual.remove"
)

// AudioCue is the payload of EventAudio.
type AudioCue struct {
	Name string `json:"name"`
}

// RemoveCue is the payload of EventVisualRemove.
type RemoveCue struct {
	ID uint64 `json:"id"`
}

// BusSink publishes cues on an event bus so consumers outside the simulation
// goroutine can pick them up. Handler errors are logged, never returned to the
// simulation.
type BusSink struct {
	bus    bus.EventBus
	source string
	logger log.Log
}

func NewBusSink(b bus.EventBus, source string, logger log.Log) *BusSink {
	if logger == nil {
		logger = log.NewNop()
	}
	return &BusSink{bus: b, source: source, logger: logger}
}

func (s *BusSink) Play(cue string) {
	s.publish(EventAudio, AudioCue{Name: cue})
}

func (s *BusSink) Spawn(cue VisualCue) {
	s.publish(EventVisualSpawn, cue)
}

func (s *BusSink) Remove(id uint64) {
	s.publish(EventVisualRemove, RemoveCue{ID: id})
}

func (s *BusSink) publish(typ string, data any) {
	if err := s.bus.Publish(bus.NewEvent(typ, s.source, data)); err != nil {
		s.logger.Warn("cue delivery failed", log.String("type", typ), log.Error(err))
	}
}
