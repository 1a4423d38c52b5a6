package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zeusync/darkzone/internal/core/config"
	"github.com/zeusync/darkzone/internal/core/physics"
	"github.com/zeusync/darkzone/internal/core/systems/collision"
)

func TestAgent_HigherPriorityWeaponIsEquipped(t *testing.T) {
	w := newTestWorld(t)
	a := spawnAgent(w, physics.V(100, 100), collision.MaskPlayer)

	pistol := w.NewGun(w.MustWeapon(config.Pistol))
	mg := w.NewGun(w.MustWeapon(config.MG))
	require.True(t, a.AddWeapon(pistol, 1))
	assert.Same(t, pistol, a.CurrentWeapon())
	require.True(t, a.AddWeapon(mg, 1))
	assert.Same(t, mg, a.CurrentWeapon())

	assert.False(t, a.AddWeapon(w.NewGun(w.MustWeapon(config.Pistol)), 1))
	assert.Same(t, mg, a.CurrentWeapon())
	assert.Equal(t, 120, pistol.TotalBullets)
	assert.Len(t, a.Weapons(), 2)
	assert.Same(t, a, pistol.Owner())
}

func TestAgent_AmmoTopUpIsScaledAndRoundedUp(t *testing.T) {
	w := newTestWorld(t)
	a := spawnAgent(w, physics.V(100, 100), collision.MaskPlayer)
	pistol := w.NewGun(w.MustWeapon(config.Pistol))
	a.AddWeapon(pistol, 1)

	extra := w.NewGun(w.MustWeapon(config.Pistol))
	extra.TotalBullets = 7
	a.AddWeapon(extra, PickupAmmoMultiplier)
	assert.Equal(t, 60+3, pistol.TotalBullets)
}

func TestAgent_NextWeaponCyclesThroughFists(t *testing.T) {
	w := newTestWorld(t)
	a := spawnAgent(w, physics.V(100, 100), collision.MaskPlayer)
	assert.Nil(t, a.CurrentWeapon())

	pistol := w.NewGun(w.MustWeapon(config.Pistol))
	mg := w.NewGun(w.MustWeapon(config.MG))
	a.AddWeapon(pistol, 1)
	a.AddWeapon(mg, 1)

	a.NextWeapon()
	assert.Nil(t, a.CurrentWeapon())
	a.NextWeapon()
	assert.Same(t, pistol, a.CurrentWeapon())
	a.NextWeapon()
	assert.Same(t, mg, a.CurrentWeapon())
}

func TestAgent_DiscardWeapon(t *testing.T) {
	w := newTestWorld(t)
	a := spawnAgent(w, physics.V(100, 100), collision.MaskPlayer)
	pistol := w.NewGun(w.MustWeapon(config.Pistol))
	mg := w.NewGun(w.MustWeapon(config.MG))
	a.AddWeapon(pistol, 1)
	a.AddWeapon(mg, 1)

	a.DiscardWeapon(pistol)
	assert.Same(t, mg, a.CurrentWeapon(), "discarding another gun keeps the equipped one")
	assert.False(t, a.HasWeapon(config.Pistol))
	assert.Nil(t, pistol.Owner())

	a.DiscardWeapon(mg)
	assert.Nil(t, a.CurrentWeapon())
	assert.Empty(t, a.Weapons())
	a.DiscardWeapon(mg)
}

func TestAgent_MoveToDirectionClampsEachAxis(t *testing.T) {
	w := newTestWorld(t)
	a := spawnAgent(w, physics.V(100, 100), collision.MaskPlayer)
	for range 40 {
		a.MoveToDirection(3 * math.Pi / 2)
	}
	assert.InDelta(t, RunSpeed, a.Vel().X, 1e-9)
	assert.InDelta(t, 0, a.Vel().Y, 1e-9)

	a.Walk()
	a.AddWeapon(w.NewGun(w.MustWeapon(config.Minigun)), 1)
	a.MoveToDirection(3 * math.Pi / 2)
	assert.InDelta(t, WalkSpeed/1.8, a.Vel().X, 1e-9)
}

func TestAgent_Punch(t *testing.T) {
	w := newTestWorld(t)
	a := spawnAgent(w, physics.V(100, 100), collision.MaskPlayer)
	front := spawnAgent(w, physics.V(120, 100), collision.MaskEnemy)
	behind := spawnAgent(w, physics.V(80, 100), collision.MaskEnemy)
	friend := spawnAgent(w, physics.V(115, 100), collision.MaskPlayer)
	a.Rot = a.Pos().DirectionTo(front.Pos())

	require.True(t, a.Shoot())
	assert.Equal(t, 4.0, front.Health)
	assert.Equal(t, 5.0, behind.Health)
	assert.Equal(t, 5.0, friend.Health)

	assert.False(t, a.Shoot(), "fists cool down")
	step(t, w, 1, FistCooldown)
	assert.True(t, a.Shoot())
	assert.Equal(t, 3.0, front.Health)
}

func TestAgent_DecreaseHealthDestroysOnce(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		w := newTestWorld(t)
		h := rapid.IntRange(1, 10).Draw(t, "health")
		k := rapid.IntRange(h, 25).Draw(t, "hits")

		a := w.Agents.Spawn(AgentOptions{Pos: physics.V(200, 200), MaxHealth: float64(h), Mask: collision.MaskEnemy})
		a.AddWeapon(w.NewGun(w.MustWeapon(config.Pistol)), 1)
		hits := 0
		a.OnHit = func() { hits++ }

		for range k {
			a.DecreaseHealth()
		}

		if a.Alive() {
			t.Fatal("agent survived")
		}
		if n := w.Props.Count("corpse"); n != 1 {
			t.Fatalf("%d corpses after %d hits on %d health", n, k, h)
		}
		if hits != h-1 {
			t.Fatalf("OnHit ran %d times, want %d", hits, h-1)
		}
		if a.Health != 0 || w.Agents.Len() != 0 || w.Pickables.Len() != 1 {
			t.Fatalf("health %v, agents %d, pickables %d", a.Health, w.Agents.Len(), w.Pickables.Len())
		}
	})
}

func TestAgent_DestroyTearsDownBodyAndCollidable(t *testing.T) {
	w := newTestWorld(t)
	a := spawnAgent(w, physics.V(100, 100), collision.MaskPlayer)
	a.ToggleFlashlight()
	require.True(t, a.FlashlightOn())

	a.Destroy()
	a.Destroy()
	assert.True(t, a.Collidable.Removed())
	_, ok := w.Velocity.Body(a.Body)
	assert.False(t, ok)
	assert.Zero(t, w.Flashlights.Len())
	assert.Zero(t, w.Collision.Receivers())
	assert.Equal(t, 3, w.Blood.Len())
	assert.False(t, a.Shoot())
}
