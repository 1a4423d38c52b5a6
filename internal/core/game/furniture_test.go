package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/darkzone/internal/core/config"
	"github.com/zeusync/darkzone/internal/core/level"
	"github.com/zeusync/darkzone/internal/core/physics"
	"github.com/zeusync/darkzone/internal/core/systems/collision"
)

func TestDoor_OpensOnce(t *testing.T) {
	rec := &cueRecorder{}
	w := newTestWorld(t, func(o *Options) { o.Sinks.Audio = rec })
	d := w.Doors.Add(level.TileOrigin(3, 3), DoorVertical)

	assert.True(t, w.Collision.IsBarrierCell(3, 3))
	assert.Equal(t, math.Pi/2, d.Prop.Rot)
	assert.Equal(t, level.TileCenter(3, 3), d.Action.Pos())
	assert.False(t, w.Collision.Visible(level.TileCenter(2, 3), level.TileCenter(4, 3)))

	require.True(t, d.Open())
	assert.False(t, d.Open())
	assert.True(t, d.Opened)
	assert.Equal(t, math.Pi, d.Prop.Rot)
	assert.False(t, w.Collision.IsBarrierCell(3, 3))
	assert.True(t, w.Collision.Visible(level.TileCenter(2, 3), level.TileCenter(4, 3)))
	assert.Zero(t, w.Actions.Len())
	assert.Equal(t, 1, rec.count("door"))
}

func TestDoor_HorizontalIsUnrotated(t *testing.T) {
	w := newTestWorld(t)
	d := w.Doors.Add(level.TileOrigin(1, 1), DoorHorizontal)
	assert.Zero(t, d.Prop.Rot)

	d.Destroy()
	assert.Zero(t, w.Doors.Len())
	assert.False(t, d.Open(), "a destroyed door stays shut")
	assert.False(t, w.Collision.IsBarrierCell(1, 1))
}

func TestLight_Toggle(t *testing.T) {
	w := newTestWorld(t)
	l := w.Lights.Spawn(LightOptions{Pos: level.TileOrigin(2, 2), Enabled: true, Physical: true, Wall: level.DirLeft})

	assert.Equal(t, physics.V(40, 50), l.Pos)
	assert.Equal(t, physics.V(1, 0), l.Direction)
	assert.Equal(t, "light", l.Prop.Sprite)
	require.NotNil(t, l.Action)

	require.True(t, l.Action.Trigger(nil))
	assert.False(t, l.Enabled)
	assert.Zero(t, l.lit())
	assert.Equal(t, "lightBroken", l.Prop.Sprite)

	l.Toggle()
	assert.True(t, l.Enabled)
	assert.Equal(t, DefaultLightRadius, l.lit())
}

func TestLight_BreakWhenShot(t *testing.T) {
	w := newTestWorld(t)
	l := w.Lights.Spawn(LightOptions{Pos: level.TileOrigin(2, 2), Enabled: true, Physical: true, Wall: level.DirUp})
	l.Break()

	assert.False(t, l.Enabled)
	assert.Nil(t, l.Action)
	assert.Zero(t, w.Actions.Len())
	if l.Broken {
		assert.Equal(t, DefaultLightRadius/2, l.Radius)
	} else {
		assert.Equal(t, DefaultLightRadius, l.Radius)
	}
	assert.Positive(t, w.Particles.Len(), "sparks")

	radius := l.Radius
	l.Break()
	assert.Equal(t, radius, l.Radius, "a dark fixture cannot break again")
}

func TestLight_BulletBreaksFixture(t *testing.T) {
	w := newTestWorld(t)
	l := w.Lights.Spawn(LightOptions{Pos: level.TileOrigin(5, 5), Enabled: true, Physical: true})
	w.Projectiles.Spawn(ProjectileOptions{
		Pos:      l.Pos,
		Lifetime: 1000,
		CanHit:   collision.MaskBarrierOrEnemy | collision.MaskObstacle,
	})
	step(t, w, 1, 10)

	assert.False(t, l.Enabled)
	assert.Zero(t, w.Projectiles.Len())
}

func TestLighting_Sample(t *testing.T) {
	w := newTestWorld(t)
	w.Lights.Spawn(LightOptions{Pos: physics.V(100, 100), Radius: 100, Enabled: true})

	assert.Equal(t, uint8(137), w.Lighting.Sample(physics.V(100, 150)))
	assert.Equal(t, uint8(DefaultAmbientLight), w.Lighting.Sample(physics.V(100, 250)), "out of reach")

	w.Lights.Spawn(LightOptions{Pos: physics.V(100, 100), Radius: 100, Enabled: true})
	assert.Equal(t, uint8(255), w.Lighting.Sample(physics.V(100, 100)), "saturates")
}

func TestLighting_WallsCastShadows(t *testing.T) {
	w := newTestWorld(t)
	w.Lights.Spawn(LightOptions{Pos: physics.V(100, 100), Radius: 100, Enabled: true})
	w.Barriers.Add(level.TileOrigin(5, 6), "wall")

	assert.Equal(t, uint8(DefaultAmbientLight), w.Lighting.Sample(physics.V(100, 150)))
}

func TestLighting_SwitchedOffLightIsDark(t *testing.T) {
	w := newTestWorld(t)
	l := w.Lights.Spawn(LightOptions{Pos: physics.V(100, 100), Radius: 100, Enabled: true})
	l.Toggle()
	assert.Equal(t, uint8(DefaultAmbientLight), w.Lighting.Sample(physics.V(100, 110)))
}

func TestProjectile_LifetimeExpiry(t *testing.T) {
	w := newTestWorld(t)
	step(t, w, 5, 100)
	born := w.Now()
	p := w.Projectiles.Spawn(ProjectileOptions{Pos: physics.V(100, 100), Vel: physics.V(1, 0), Lifetime: 1000})

	step(t, w, 10, 100)
	require.Equal(t, born+1000, w.Now())
	assert.True(t, p.Alive(), "still alive at exactly its lifetime")
	assert.Equal(t, 1, w.Projectiles.Len())

	step(t, w, 1, 100)
	assert.False(t, p.Alive())
	assert.False(t, p.Particle.Alive())
	assert.Zero(t, w.Projectiles.Len())
	assert.Zero(t, w.Particles.Len())
}

func TestProjectile_HitsAgentOnce(t *testing.T) {
	w := newTestWorld(t)
	target := spawnAgent(w, physics.V(200, 200), collision.MaskEnemy)
	w.Projectiles.Spawn(ProjectileOptions{
		Pos:      physics.V(200, 203),
		Lifetime: 1000,
		CanHit:   collision.MaskBarrierOrEnemy,
	})
	step(t, w, 3, 10)

	assert.Equal(t, target.MaxHealth-1, target.Health)
	assert.Zero(t, w.Projectiles.Len())
}

func TestProjectile_WallStopsBullet(t *testing.T) {
	w := newTestWorld(t)
	w.Barriers.Add(level.TileOrigin(5, 5), "wall")
	w.Projectiles.Spawn(ProjectileOptions{
		Pos:      level.TileCenter(5, 4),
		Vel:      physics.V(0, 6),
		Lifetime: 1000,
		CanHit:   collision.MaskBarrierOrPlayer,
	})
	step(t, w, 5, 10)
	assert.Zero(t, w.Projectiles.Len())
}

func TestParticles_SoftCapDropsOldestParentless(t *testing.T) {
	w := newTestWorld(t, func(o *Options) {
		cfg := config.Default()
		cfg.Engine.MaxParticles = 3
		o.Config = cfg
	})
	first := w.Particles.Spawn(ParticleOptions{Pos: physics.V(10, 10), Lifetime: 1000})
	bullet := w.Projectiles.Spawn(ProjectileOptions{Pos: physics.V(10, 10), Lifetime: 1000})
	second := w.Particles.Spawn(ParticleOptions{Pos: physics.V(10, 10), Lifetime: 1000})
	require.Equal(t, 3, w.Particles.Len())

	w.Particles.Spawn(ParticleOptions{Pos: physics.V(10, 10), Lifetime: 1000})
	assert.False(t, first.Alive())
	assert.True(t, bullet.Particle.Alive())
	assert.Equal(t, 3, w.Particles.Len())

	w.Particles.Spawn(ParticleOptions{Pos: physics.V(10, 10), Lifetime: 1000})
	assert.False(t, second.Alive())
	assert.True(t, bullet.Particle.Alive(), "projectile particles are never dropped")
	assert.Equal(t, uint64(2), w.Particles.Dropped())
}

func TestBlood_DropsLeaveStains(t *testing.T) {
	w := newTestWorld(t)
	w.Blood.EmitBlood(physics.V(200, 200), physics.V(6, 0))
	drops := w.Particles.Len()
	require.Positive(t, drops)

	step(t, w, 40, 20)
	assert.Zero(t, w.Particles.Len())
	assert.Equal(t, drops, w.Blood.Stains())
}

func TestBlood_CorpsePoolsGrowThenStop(t *testing.T) {
	w := newTestWorld(t)
	w.Blood.LeakFromCorpse(physics.V(200, 200))
	require.Equal(t, 3, w.Blood.Len())
	for _, l := range w.Blood.leaks {
		assert.GreaterOrEqual(t, l.MaxSize, 3.0)
		assert.Less(t, l.MaxSize, 8.0)
	}

	step(t, w, 1, LeakInterval+1)
	for _, l := range w.Blood.leaks {
		assert.Equal(t, 1.0, l.Size)
	}

	step(t, w, 10, LeakInterval+1)
	assert.Zero(t, w.Blood.Len())
}

func TestFlashlight_Cone(t *testing.T) {
	w := newTestWorld(t)
	a := spawnAgent(w, level.TileCenter(5, 5), collision.MaskEnemy)
	a.ToggleFlashlight()
	require.True(t, a.FlashlightOn())

	step(t, w, 1, 10)
	f := a.Flashlight
	assert.Len(t, f.Polygon, FlashlightRays)

	ahead := a.Pos().Plus(physics.Heading(a.Rot).Scaled(50))
	behind := a.Pos().Plus(physics.Heading(a.Rot + math.Pi).Scaled(50))
	far := a.Pos().Plus(physics.Heading(a.Rot).Scaled(FlashlightRadius + 10))
	assert.True(t, f.Contains(ahead))
	assert.False(t, f.Contains(behind))
	assert.False(t, f.Contains(far))

	a.ToggleFlashlight()
	assert.False(t, a.FlashlightOn())
	assert.Nil(t, f.Polygon)
	assert.False(t, f.Contains(ahead))
}

func TestFlashlight_BlockedByWall(t *testing.T) {
	w := newTestWorld(t)
	a := spawnAgent(w, level.TileCenter(5, 5), collision.MaskEnemy)
	a.ToggleFlashlight()
	w.Barriers.Add(level.TileOrigin(5, 7), "wall")

	ahead := a.Pos().Plus(physics.Heading(a.Rot).Scaled(80))
	assert.False(t, a.Flashlight.Contains(ahead))

	step(t, w, 1, 10)
	centre := a.Flashlight.Polygon[FlashlightRays/2]
	assert.Less(t, a.Pos().DistanceTo(centre), FlashlightRadius)
}

func TestPickable_TopUpOwnedWeapon(t *testing.T) {
	rec := &cueRecorder{}
	w := newTestWorld(t, func(o *Options) { o.Sinks.Audio = rec })
	p := w.Players.Spawn(level.TileOrigin(5, 5))
	pistol := p.Agent.CurrentWeapon()
	require.NotNil(t, pistol)
	require.Equal(t, 60, pistol.TotalBullets)

	var fresh []string
	w.OnNewWeapon = func(wp config.Weapon) { fresh = append(fresh, wp.Code) }
	w.Pickables.Spawn(p.Agent.Pos(), w.NewGun(w.MustWeapon(config.Pistol)))
	step(t, w, 1, 10)

	assert.Zero(t, w.Pickables.Len())
	assert.Equal(t, 84, pistol.TotalBullets)
	assert.Len(t, p.Agent.Weapons(), 1)
	assert.Empty(t, fresh)
	assert.Equal(t, 1, rec.count("collect"))
}

func TestPickable_NewWeaponKeepsItsAmmo(t *testing.T) {
	w := newTestWorld(t)
	p := w.Players.Spawn(level.TileOrigin(5, 5))

	var fresh []string
	w.OnNewWeapon = func(wp config.Weapon) { fresh = append(fresh, wp.Code) }
	mg := w.NewGun(w.MustWeapon(config.MG))
	w.Pickables.Spawn(p.Agent.Pos(), mg)
	step(t, w, 1, 10)

	assert.Equal(t, []string{config.MG}, fresh)
	assert.Same(t, mg, p.Agent.CurrentWeapon(), "higher priority is equipped")
	assert.Equal(t, w.MustWeapon(config.MG).Ammo, mg.TotalBullets)
}

func TestPickable_OutOfReach(t *testing.T) {
	w := newTestWorld(t)
	p := w.Players.Spawn(level.TileOrigin(5, 5))
	w.Pickables.Spawn(p.Agent.Pos().Plus(physics.V(PickupRadius, 0)), w.NewGun(w.MustWeapon(config.MG)))
	step(t, w, 1, 10)

	assert.Equal(t, 1, w.Pickables.Len())
	assert.False(t, p.Agent.HasWeapon(config.MG))
}
