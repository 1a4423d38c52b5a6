package systems

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/zeusync/darkzone/internal/core/level"
	"github.com/zeusync/darkzone/internal/core/observability/log"
)

// Engine is the simulation context of one game session: the ordered systems, the
// simulation clock and the active level.
type Engine struct {
	systems []System
	metrics []Metrics

	// Time is the simulation time in milliseconds, advanced by Update.
	Time float64
	// Epoch is bumped by every Clear so deferred work from a previous level can be
	// recognised and dropped.
	Epoch uint64
	// Level is the active tile grid; nil until a level is loaded.
	Level *level.Grid
	// WorldWidth and WorldHeight are the level size in pixels.
	WorldWidth, WorldHeight float64
	// Paused engines are not advanced by a Loop.
	Paused bool

	rng         *rand.Rand
	logger      log.Log
	initialized bool
}

// Options configures a new Engine.
type Options struct {
	Logger log.Log
	Seed   uint64
}

// NewEngine returns an empty engine.
func NewEngine(opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewNop()
	}
	e := &Engine{logger: logger.With(log.String("component", "engine"))}
	e.Reseed(opts.Seed)
	return e
}

// Logger returns the engine logger.
func (e *Engine) Logger() log.Log { return e.logger }

// Rand returns the deterministic simulation RNG.
func (e *Engine) Rand() *rand.Rand { return e.rng }

// Reseed restarts the simulation RNG from seed.
func (e *Engine) Reseed(seed uint64) {
	e.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Register appends a system. Registration order is update order.
func (e *Engine) Register(system System) {
	e.systems = append(e.systems, system)
	e.metrics = append(e.metrics, Metrics{})
	e.initialized = false
}

// Systems returns the registered systems in update order.
func (e *Engine) Systems() []System {
	out := make([]System, len(e.systems))
	copy(out, e.systems)
	return out
}

// Init calls Init on every registered system, in order, exactly once.
func (e *Engine) Init() error {
	if e.initialized {
		return nil
	}
	for _, s := range e.systems {
		if err := s.Init(e); err != nil {
			return fmt.Errorf("init system %s: %w", s.Name(), err)
		}
	}
	e.initialized = true
	e.logger.Debug("engine initialized", log.Int("systems", len(e.systems)))
	return nil
}

// Update advances the clock by dt milliseconds and runs every system once, in
// registration order. A failing system does not stop the tick: errors are logged,
// recorded in the system metrics and returned joined.
func (e *Engine) Update(dt float64) error {
	e.Time += dt

	var all error
	for i, s := range e.systems {
		started := time.Now()
		err := s.Update(e)
		entities := 0
		if sized, ok := s.(Sized); ok {
			entities = sized.Len()
		}
		e.metrics[i].record(started, time.Since(started), entities, err)
		if err != nil {
			e.logger.Error("system update failed",
				log.String("system", s.Name()),
				log.Float64("time", e.Time),
				log.Error(err),
			)
			all = errors.Join(all, fmt.Errorf("%s: %w", s.Name(), err))
		}
	}
	return all
}

// Clear drops every system. References to pre-clear systems must not be used afterwards.
func (e *Engine) Clear() {
	for _, s := range e.systems {
		s.Clear()
	}
	e.systems = nil
	e.metrics = nil
	e.initialized = false
	e.Epoch++
	e.Time = 0
	e.Level = nil
	e.WorldWidth, e.WorldHeight = 0, 0
}

// SetLevel installs the active level grid and the world size derived from it.
func (e *Engine) SetLevel(g *level.Grid) {
	e.Level = g
	if g == nil {
		e.WorldWidth, e.WorldHeight = 0, 0
		return
	}
	e.WorldWidth, e.WorldHeight = g.PixelSize()
}

// Metrics returns a snapshot of per-system execution metrics keyed by system name.
func (e *Engine) Metrics() map[string]Metrics {
	out := make(map[string]Metrics, len(e.systems))
	for i, s := range e.systems {
		out[s.Name()] = e.metrics[i]
	}
	return out
}

// Get returns the first registered system of type T.
func Get[T System](e *Engine) (T, bool) {
	for _, s := range e.systems {
		if typed, ok := s.(T); ok {
			return typed, true
		}
	}
	var zero T
	return zero, false
}

// MustGet is Get for wiring: a missing system is a programming error and panics.
func MustGet[T System](e *Engine) T {
	s, ok := Get[T](e)
	if !ok {
		var zero T
		panic(fmt.Sprintf("systems: %T is not registered", zero))
	}
	return s
}
