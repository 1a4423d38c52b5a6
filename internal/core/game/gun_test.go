package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zeusync/darkzone/internal/core/config"
	"github.com/zeusync/darkzone/internal/core/physics"
	"github.com/zeusync/darkzone/internal/core/systems/collision"
)

func TestGun_SixShotsEmptyTheMagazineAndReload(t *testing.T) {
	audio := &cueRecorder{}
	w := newTestWorld(t, func(o *Options) { o.Sinks.Audio = audio })
	a := spawnAgent(w, physics.V(100, 100), collision.MaskPlayer)

	opts := w.MustWeapon(config.Pistol)
	opts.Ammo = 6
	g := w.NewGun(opts)
	require.True(t, a.AddWeapon(g, 1))
	require.Equal(t, 6, g.BulletsInMagazine)
	require.Equal(t, 6, g.TotalBullets)

	for i := range 6 {
		require.True(t, g.Shoot(), "shot %d", i+1)
		step(t, w, 1, opts.ShootInterval)
	}
	assert.Zero(t, g.BulletsInMagazine)
	assert.Zero(t, g.TotalBullets)
	assert.True(t, g.Reloading, "emptying the magazine starts a reload")
	assert.False(t, g.Shoot(), "no shot while reloading")
	assert.Equal(t, 6, w.Projectiles.Len())
	assert.Equal(t, 6, audio.count("pistolShot"))
	assert.Equal(t, 1, audio.count("reload"))

	step(t, w, 1, opts.ReloadTime)
	assert.False(t, g.Reloading)
	assert.Zero(t, g.BulletsInMagazine, "nothing left to load")
}

func TestGun_Cooldown(t *testing.T) {
	w := newTestWorld(t)
	a := spawnAgent(w, physics.V(100, 100), collision.MaskPlayer)
	g := w.NewGun(w.MustWeapon(config.Pistol))
	a.AddWeapon(g, 1)

	require.True(t, g.Shoot())
	assert.False(t, g.Shoot())
	step(t, w, 1, g.Options.ShootInterval/2)
	assert.False(t, g.Shoot())
	step(t, w, 1, g.Options.ShootInterval/2)
	assert.True(t, g.Shoot())
	assert.Equal(t, w.Now(), a.LastShotAt)
}

func TestGun_DryFireIsRateLimited(t *testing.T) {
	audio := &cueRecorder{}
	w := newTestWorld(t, func(o *Options) { o.Sinks.Audio = audio })
	a := spawnAgent(w, physics.V(100, 100), collision.MaskPlayer)
	g := w.NewGun(w.MustWeapon(config.Pistol))
	a.AddWeapon(g, 1)
	g.BulletsInMagazine = 0

	assert.False(t, g.Shoot())
	assert.False(t, g.Shoot())
	assert.Equal(t, 1, audio.count("dryFire"))
	step(t, w, 1, DryFireInterval)
	assert.False(t, g.Shoot())
	assert.Equal(t, 2, audio.count("dryFire"))
}

func TestGun_ReloadRejections(t *testing.T) {
	w := newTestWorld(t)
	g := w.NewGun(w.MustWeapon(config.Pistol))
	assert.False(t, g.Reload(), "no owner")
	assert.False(t, g.Shoot(), "no owner")

	a := spawnAgent(w, physics.V(100, 100), collision.MaskPlayer)
	a.AddWeapon(g, 1)
	assert.False(t, g.Reload(), "magazine is full")

	g.BulletsInMagazine = 2
	assert.True(t, g.Reload())
	assert.False(t, g.Reload(), "already reloading")
}

func TestGun_DroppedGunStopsReloading(t *testing.T) {
	w := newTestWorld(t)
	a := spawnAgent(w, physics.V(100, 100), collision.MaskPlayer)
	g := w.NewGun(w.MustWeapon(config.Pistol))
	a.AddWeapon(g, 1)
	g.BulletsInMagazine = 1
	require.True(t, g.Reload())

	a.DiscardWeapon(g)
	assert.False(t, g.Reloading)
	step(t, w, 1, g.Options.ReloadTime+1)
	assert.Equal(t, 1, g.BulletsInMagazine)
}

func TestGun_CanHitTheOtherSide(t *testing.T) {
	w := newTestWorld(t)
	enemyGun := w.NewGun(w.MustWeapon(config.Pistol))
	spawnAgent(w, physics.V(0, 0), collision.MaskEnemy).AddWeapon(enemyGun, 1)
	playerGun := w.NewGun(w.MustWeapon(config.Pistol))
	spawnAgent(w, physics.V(0, 0), collision.MaskPlayer).AddWeapon(playerGun, 1)

	assert.True(t, enemyGun.CanHit().Has(collision.MaskPlayer))
	assert.Equal(t, collision.MaskNone, enemyGun.CanHit()&collision.MaskEnemy)
	assert.True(t, playerGun.CanHit().Has(collision.MaskEnemy))
	assert.Equal(t, collision.MaskNone, playerGun.CanHit()&collision.MaskPlayer)
	assert.True(t, playerGun.CanHit().Has(collision.MaskObstacle))
}

func TestGun_AmmoConservation(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		w := newTestWorld(t)
		a := spawnAgent(w, physics.V(100, 100), collision.MaskPlayer)
		code := rapid.SampledFrom([]string{config.Pistol, config.MG, config.Minigun}).Draw(t, "weapon")
		g := w.NewGun(w.MustWeapon(code))
		a.AddWeapon(g, 1)
		capacity := g.Options.MagazineCapacity

		ops := rapid.SliceOfN(rapid.IntRange(0, 2), 1, 80).Draw(t, "ops")
		for i, op := range ops {
			mag, total := g.BulletsInMagazine, g.TotalBullets
			switch op {
			case 0:
				fired := g.Shoot()
				if fired && (g.BulletsInMagazine != mag-1 || g.TotalBullets != total-1) {
					t.Fatalf("op %d: shot changed ammo %d/%d -> %d/%d", i, mag, total, g.BulletsInMagazine, g.TotalBullets)
				}
				if !fired && (g.BulletsInMagazine != mag || g.TotalBullets != total) {
					t.Fatalf("op %d: failed shot changed ammo", i)
				}
			case 1:
				g.Reload()
				if g.BulletsInMagazine != mag || g.TotalBullets != total {
					t.Fatalf("op %d: starting a reload changed ammo", i)
				}
			case 2:
				dt := rapid.Float64Range(0, 3000).Draw(t, "dt")
				if err := w.Engine.Update(dt); err != nil {
					t.Fatal(err)
				}
				if g.TotalBullets != total {
					t.Fatalf("op %d: a tick changed the total", i)
				}
			}

			if g.BulletsInMagazine < 0 || g.BulletsInMagazine > capacity || g.BulletsInMagazine > g.TotalBullets {
				t.Fatalf("op %d: magazine %d out of bounds (capacity %d, total %d)",
					i, g.BulletsInMagazine, capacity, g.TotalBullets)
			}
		}
	})
}
