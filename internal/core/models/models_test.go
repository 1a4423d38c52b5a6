package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type node struct {
	Entity
	destroyed int
}

func (n *node) Destroy() {
	if n.MarkDestroyed() {
		n.destroyed++
	}
}

func TestEntity_MarkDestroyedOnce(t *testing.T) {
	n := &node{Entity: NewEntity(3)}
	assert.True(t, n.Alive())
	n.Destroy()
	n.Destroy()
	assert.False(t, n.Alive())
	assert.Equal(t, 1, n.destroyed)
	assert.Equal(t, EntityID(3), n.ID())
}

func TestTopParent_WalksWholeChain(t *testing.T) {
	root := &node{Entity: NewEntity(1)}
	mid := &node{Entity: NewEntity(2)}
	leaf := &node{Entity: NewEntity(3)}
	mid.SetParent(root)
	leaf.SetParent(mid)

	assert.Same(t, root, TopParent(leaf).(*node))
	assert.Same(t, root, TopParent(root).(*node))

	chain := Ancestors(leaf)
	require.Len(t, chain, 3)
	assert.Equal(t, EntityID(3), chain[0].ID())
	assert.Equal(t, EntityID(2), chain[1].ID())
	assert.Equal(t, EntityID(1), chain[2].ID())
}

func TestIDSource(t *testing.T) {
	var ids IDSource
	assert.Equal(t, EntityID(1), ids.Next())
	assert.Equal(t, EntityID(2), ids.Next())
}

func TestStore_GenerationalHandles(t *testing.T) {
	s := NewStore[string](0)
	a := s.Insert("a")
	b := s.Insert("b")
	assert.False(t, a.IsNil())
	assert.Equal(t, 2, s.Len())

	v, ok := s.Get(a)
	require.True(t, ok)
	assert.Equal(t, "a", *v)

	require.True(t, s.Remove(a))
	assert.False(t, s.Contains(a))
	assert.False(t, s.Remove(a))

	c := s.Insert("c")
	assert.Equal(t, a.Index, c.Index)
	_, ok = s.Get(a)
	assert.False(t, ok, "stale handle must not resolve to the reused slot")

	var seen []string
	s.Each(func(_ Handle, v *string) bool {
		seen = append(seen, *v)
		return true
	})
	assert.Equal(t, []string{"c", "b"}, seen)

	s.Clear()
	assert.Zero(t, s.Len())
	assert.False(t, s.Contains(b))
	_, ok = s.Get(Handle{Index: 99, Generation: 1})
	assert.False(t, ok)
}
