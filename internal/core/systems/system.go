package systems

import (
	"time"
)

// System is one per-tick processor of the simulation. Systems run in registration
// order; Init is called once after every system of the session is registered, so a
// system may resolve its siblings there.
type System interface {
	// Name identifies the system in logs and metrics.
	Name() string
	Init(engine *Engine) error
	Update(engine *Engine) error
	// Clear drops all entities; called when the engine is cleared.
	Clear()
}

// Sized is implemented by systems that track a countable set of entities.
// The engine uses it to fill Metrics.EntitiesProcessed.
type Sized interface {
	Len() int
}

// Metrics provides runtime metrics for a system
type Metrics struct {
	ExecutionCount       uint64
	TotalExecutionTime   time.Duration
	AverageExecutionTime time.Duration
	MaxExecutionTime     time.Duration
	MinExecutionTime     time.Duration
	ErrorCount           uint64
	LastError            error
	LastExecutionTime    time.Time
	EntitiesProcessed    uint64
}

func (m *Metrics) record(started time.Time, took time.Duration, entities int, err error) {
	m.ExecutionCount++
	m.TotalExecutionTime += took
	m.AverageExecutionTime = m.TotalExecutionTime / time.Duration(m.ExecutionCount)
	if took > m.MaxExecutionTime {
		m.MaxExecutionTime = took
	}
	if m.ExecutionCount == 1 || took < m.MinExecutionTime {
		m.MinExecutionTime = took
	}
	m.LastExecutionTime = started
	m.EntitiesProcessed += uint64(entities)
	if err != nil {
		m.ErrorCount++
		m.LastError = err
	}
}
