// Package timer runs deferred simulation callbacks at a fixed point of the tick.
//
// Callbacks never fire outside Engine.Update: the timer system is registered first,
// so everything scheduled during tick N with a delay d runs at the start of the first
// tick whose time reaches schedule time + d. A callback is dropped when its owner is
// no longer alive or when the engine was cleared after it was scheduled.
package timer

import (
	"github.com/zeusync/darkzone/internal/core/systems"
	"github.com/zeusync/darkzone/pkg/sequence"
)

// Owner is anything with a liveness flag, typically a models.Entity.
type Owner interface {
	Alive() bool
}

type entry struct {
	due   float64
	seq   uint64
	epoch uint64
	owner Owner
	fn    func()
}

// Handle cancels a scheduled callback.
type Handle struct {
	item *sequence.PriorityItem[*entry]
}

// System is the deferred-callback queue.
type System struct {
	engine *systems.Engine
	queue  *sequence.PriorityQueue[*entry]
	seq    uint64
	fired  uint64
}

// New returns an empty timer system.
func New() *System {
	return &System{queue: sequence.NewPriorityQueue(less)}
}

func less(a, b *entry) bool {
	if a.due != b.due {
		return a.due < b.due
	}
	return a.seq < b.seq
}

func (s *System) Name() string { return "timers" }

func (s *System) Init(engine *systems.Engine) error {
	s.engine = engine
	return nil
}

// After schedules fn to run delay milliseconds of simulation time from now.
// A nil owner is always considered alive.
func (s *System) After(delay float64, owner Owner, fn func()) Handle {
	s.seq++
	e := &entry{
		due:   s.engine.Time + max(delay, 0),
		seq:   s.seq,
		epoch: s.engine.Epoch,
		owner: owner,
		fn:    fn,
	}
	return Handle{item: s.queue.Enqueue(e)}
}

// Cancel drops a pending callback. Cancelling a fired or cancelled handle is a no-op.
func (s *System) Cancel(h Handle) bool {
	return s.queue.Remove(h.item)
}

// Update fires every callback that is due. Callbacks scheduled while firing wait
// for the next tick even with a zero delay.
func (s *System) Update(engine *systems.Engine) error {
	limit := s.seq
	for {
		next, ok := s.queue.Peek()
		if !ok || next.due > engine.Time || next.seq > limit {
			return nil
		}
		_, _ = s.queue.Dequeue()
		if next.epoch != engine.Epoch {
			continue
		}
		if next.owner != nil && !next.owner.Alive() {
			continue
		}
		s.fired++
		next.fn()
	}
}

// Len returns the number of pending callbacks.
func (s *System) Len() int { return s.queue.Len() }

// Fired returns how many callbacks have run.
func (s *System) Fired() uint64 { return s.fired }

func (s *System) Clear() {
	s.queue.Clear()
}
