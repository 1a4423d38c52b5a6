package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/darkzone/internal/core/models"
	"github.com/zeusync/darkzone/internal/core/systems"
)

func newEngine(t *testing.T) (*systems.Engine, *System) {
	t.Helper()
	e := systems.NewEngine(systems.Options{})
	s := New()
	e.Register(s)
	require.NoError(t, e.Init())
	return e, s
}

func TestTimer_FiresWhenDue(t *testing.T) {
	e, s := newEngine(t)
	var fired []float64
	s.After(25, nil, func() { fired = append(fired, e.Time) })

	for range 5 {
		require.NoError(t, e.Update(10))
	}
	assert.Equal(t, []float64{30}, fired)
	assert.Zero(t, s.Len())
	assert.Equal(t, uint64(1), s.Fired())
}

func TestTimer_OrderByDueThenSchedule(t *testing.T) {
	e, s := newEngine(t)
	var order []string
	s.After(10, nil, func() { order = append(order, "b") })
	s.After(5, nil, func() { order = append(order, "a") })
	s.After(10, nil, func() { order = append(order, "c") })

	require.NoError(t, e.Update(10))
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestTimer_ZeroDelayWaitsForNextTick(t *testing.T) {
	e, s := newEngine(t)
	var order []string
	s.After(0, nil, func() {
		order = append(order, "outer")
		s.After(0, nil, func() { order = append(order, "inner") })
	})

	require.NoError(t, e.Update(1))
	assert.Equal(t, []string{"outer"}, order)
	require.NoError(t, e.Update(1))
	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestTimer_SkipsDeadOwner(t *testing.T) {
	e, s := newEngine(t)
	owner := models.NewEntity(1)
	called := false
	s.After(5, &owner, func() { called = true })

	owner.MarkDestroyed()
	require.NoError(t, e.Update(10))
	assert.False(t, called)
	assert.Zero(t, s.Len())
}

func TestTimer_SkipsStaleEpoch(t *testing.T) {
	e, s := newEngine(t)
	called := false
	s.After(5, nil, func() { called = true })

	// simulate a level reload that kept this queue alive
	e.Epoch++
	require.NoError(t, e.Update(10))
	assert.False(t, called)
}

func TestTimer_Cancel(t *testing.T) {
	e, s := newEngine(t)
	called := false
	h := s.After(5, nil, func() { called = true })

	assert.True(t, s.Cancel(h))
	assert.False(t, s.Cancel(h))
	require.NoError(t, e.Update(10))
	assert.False(t, called)
}

func TestTimer_ClearDropsPending(t *testing.T) {
	e, s := newEngine(t)
	s.After(5, nil, func() {})
	s.After(50, nil, func() {})
	e.Clear()
	assert.Zero(t, s.Len())
}
