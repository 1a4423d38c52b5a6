package systems

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/zeusync/darkzone/internal/core/observability/log"
)

// DefaultStep is one 60 Hz simulation step in milliseconds.
const DefaultStep = 1000.0 / 60.0

// LoopOptions configures a fixed-step Loop.
type LoopOptions struct {
	// Step is the fixed simulation step in milliseconds. Defaults to DefaultStep.
	Step float64
	// MaxSteps caps the steps run for one frame; leftover time is dropped. Defaults to 10.
	MaxSteps int
	// Frame is the wall-clock frame interval used by Run. Defaults to Step.
	Frame time.Duration
	// BeforeFrame runs once per frame before any step, e.g. win-condition checks.
	BeforeFrame func()
}

// Loop turns wall-clock frame deltas into fixed simulation steps.
type Loop struct {
	engine *Engine
	opts   LoopOptions
	acc    float64
}

// NewLoop returns a loop driving engine.
func NewLoop(engine *Engine, opts LoopOptions) *Loop {
	if opts.Step <= 0 {
		opts.Step = DefaultStep
	}
	if opts.MaxSteps <= 0 {
		opts.MaxSteps = 10
	}
	if opts.Frame <= 0 {
		opts.Frame = time.Duration(opts.Step * float64(time.Millisecond))
	}
	return &Loop{engine: engine, opts: opts}
}

// Step returns the fixed step in milliseconds.
func (l *Loop) Step() float64 { return l.opts.Step }

// Advance feeds elapsed wall-clock milliseconds into the accumulator and runs as many
// whole steps as fit. A paused engine accumulates nothing.
func (l *Loop) Advance(elapsed float64) (int, error) {
	if l.engine.Paused {
		l.acc = 0
		return 0, nil
	}
	if l.opts.BeforeFrame != nil {
		l.opts.BeforeFrame()
	}

	l.acc += elapsed
	steps := int(math.Floor(l.acc / l.opts.Step))
	if steps > l.opts.MaxSteps {
		l.engine.Logger().Warn("simulation falling behind, dropping time",
			log.Int("steps", steps),
			log.Int("max_steps", l.opts.MaxSteps),
		)
		steps = l.opts.MaxSteps
		l.acc = 0
	} else {
		l.acc -= float64(steps) * l.opts.Step
	}

	var all error
	for range steps {
		if err := l.engine.Update(l.opts.Step); err != nil {
			all = errors.Join(all, err)
		}
	}
	return steps, all
}

// Run drives the loop from a ticker until ctx is cancelled. System errors are logged
// by the engine and do not stop the loop.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.opts.Frame)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			elapsed := float64(now.Sub(last)) / float64(time.Millisecond)
			last = now
			_, _ = l.Advance(elapsed)
		}
	}
}
