package game

import (
	"math"

	"github.com/zeusync/darkzone/internal/core/config"
	"github.com/zeusync/darkzone/internal/core/physics"
	"github.com/zeusync/darkzone/internal/core/systems/collision"
	"github.com/zeusync/darkzone/internal/core/systems/timer"
)

const (
	// DryFireInterval rate-limits the empty-magazine click.
	DryFireInterval = 300.0
	MuzzleFlashSize = 50.0

	muzzleOffset = 11.0
	flashOffset  = 13.0
)

// Gun is one weapon instance. BulletsInMagazine never exceeds the magazine
// capacity or TotalBullets, which counts the magazine too.
type Gun struct {
	Options           config.Weapon
	BulletsInMagazine int
	TotalBullets      int
	Reloading         bool

	owner    *Agent
	w        *World
	lastShot float64
	lastDry  float64
	reload   timer.Handle
}

// NewGun returns a full gun of the given catalog entry.
func (w *World) NewGun(opts config.Weapon) *Gun {
	return &Gun{
		Options:           opts,
		BulletsInMagazine: min(opts.MagazineCapacity, opts.Ammo),
		TotalBullets:      opts.Ammo,
		w:                 w,
		lastShot:          math.Inf(-1),
		lastDry:           math.Inf(-1),
	}
}

// Owner returns the agent holding the gun, nil when lying on the floor.
func (g *Gun) Owner() *Agent { return g.owner }

// CanHit is the mask bullets of this gun strike: everything but the owner's side.
func (g *Gun) CanHit() collision.Mask {
	if g.owner != nil && g.owner.Mask == collision.MaskEnemy {
		return collision.MaskBarrierOrPlayer | collision.MaskObstacle
	}
	return collision.MaskBarrierOrEnemy | collision.MaskObstacle
}

// Shoot fires one projectile. It fails on cooldown, while reloading and on an empty
// magazine; an empty magazine clicks, at most once per DryFireInterval.
func (g *Gun) Shoot() bool {
	a := g.owner
	if a == nil || !a.Alive() {
		return false
	}
	now := g.w.Now()
	if now-g.lastShot < g.Options.ShootInterval || g.Reloading {
		return false
	}
	if g.BulletsInMagazine == 0 {
		if now-g.lastDry >= DryFireInterval {
			g.lastDry = now
			g.w.play("dryFire")
		}
		return false
	}

	rot := a.Rot + (g.w.Rand()-0.5)*g.Options.Spread
	pos := a.Pos()
	color := "red"
	if g.Options.Flame {
		color = "orange"
	}
	g.w.Projectiles.Spawn(ProjectileOptions{
		Pos:      pos.Plus(physics.Heading(a.Rot).Scaled(muzzleOffset)),
		Vel:      physics.Heading(rot).Scaled(g.Options.BulletSpeed),
		Lifetime: g.Options.BulletLifetime,
		CanHit:   g.CanHit(),
		Shooter:  a,
		Color:    color,
	})

	g.BulletsInMagazine--
	g.TotalBullets--
	g.lastShot = now
	a.LastShotAt = now

	g.muzzleFlash(pos.Plus(physics.Heading(a.Rot).Scaled(flashOffset)))
	g.w.play(g.Options.Code + "Shot")

	if g.BulletsInMagazine == 0 {
		g.Reload()
	}
	return true
}

// Reload starts refilling the magazine. The magazine is refilled after ReloadTime
// unless the owner died or dropped the gun first.
func (g *Gun) Reload() bool {
	a := g.owner
	if a == nil || !a.Alive() || g.Reloading || g.BulletsInMagazine == g.Options.MagazineCapacity {
		return false
	}
	g.Reloading = true
	g.w.play("reload")
	g.reload = g.w.Timers.After(g.Options.ReloadTime, a, func() {
		if g.owner != a {
			return
		}
		g.BulletsInMagazine = min(g.Options.MagazineCapacity, g.TotalBullets)
		g.Reloading = false
	})
	return true
}

func (g *Gun) muzzleFlash(pos physics.Vec2) {
	light := g.w.Lights.Spawn(LightOptions{
		Pos:     pos,
		Enabled: true,
		Radius:  MuzzleFlashSize,
	})
	g.w.Timers.After(0, light, light.Destroy)
}

func (g *Gun) attach(a *Agent) {
	g.detach()
	g.owner = a
}

func (g *Gun) detach() {
	if g.Reloading {
		g.w.Timers.Cancel(g.reload)
		g.Reloading = false
	}
	g.owner = nil
}
