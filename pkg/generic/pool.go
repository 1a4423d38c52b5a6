// Package generic holds small typed wrappers over standard library containers.
package generic

import (
	"sync"
	"sync/atomic"
)

// Pool is a typed sync.Pool. A value handed back with Put is reset first, so Get
// always returns a clean value.
type Pool[T any] struct {
	pool  sync.Pool
	reset func(T)
	made  atomic.Uint64
}

func NewPool[T any](generate func() T, reset func(T)) *Pool[T] {
	p := &Pool[T]{reset: reset}
	p.pool.New = func() any {
		p.made.Add(1)
		return generate()
	}
	return p
}

// NewHotPool is NewPool with hotSize values allocated up front.
func NewHotPool[T any](generate func() T, reset func(T), hotSize int) *Pool[T] {
	p := NewPool(generate, reset)
	for range hotSize {
		p.pool.Put(p.pool.New())
	}
	return p
}

func (p *Pool[T]) Get() T {
	return p.pool.Get().(T)
}

func (p *Pool[T]) Put(value T) {
	if p.reset != nil {
		p.reset(value)
	}
	p.pool.Put(value)
}

// Allocated counts the values the pool had to create.
func (p *Pool[T]) Allocated() uint64 { return p.made.Load() }
