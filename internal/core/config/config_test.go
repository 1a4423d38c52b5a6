package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, "normal", c.Difficulty().Name)
	assert.Equal(t, uint8(70), c.Difficulty().VisibilityLevel)
	assert.Equal(t, 2000, c.Engine.MaxParticles)
	assert.Equal(t, []string{"easy", "normal", "hard"}, c.DifficultyNames())

	pistol := c.Weapons[Pistol]
	assert.Equal(t, 6, pistol.MagazineCapacity)
	assert.Less(t, pistol.Priority, c.Weapons[MG].Priority)
}

func TestDecode_OverridesOnTopOfDefaults(t *testing.T) {
	c, err := Decode(strings.NewReader(`
engine:
  seed: 42
game:
  difficulty: hard
  levels: [level2]
weapons:
  pistol:
    magazine_capacity: 8
    reload_time: 1500
    shoot_interval: 200
    bullet_speed: 7
    bullet_lifetime: 5000
    ammo: 40
    priority: 1
    weight: 1
difficulties:
  nightmare:
    player_health_multiplier: 0.25
    enemy_health_multiplier: 3
    visibility_level: 20
    ai_reaction_time: 100
`))
	require.NoError(t, err)

	assert.Equal(t, uint64(42), c.Engine.Seed)
	assert.Equal(t, 1000.0/60.0, c.Engine.Step)
	assert.Equal(t, "hard", c.Difficulty().Name)
	assert.Equal(t, []string{"level2"}, c.Game.Levels)

	pistol := c.Weapons[Pistol]
	assert.Equal(t, 8, pistol.MagazineCapacity)
	assert.Equal(t, Pistol, pistol.Code)
	assert.Equal(t, Pistol, pistol.Name)
	assert.Contains(t, c.Weapons, MG)

	assert.Equal(t, "nightmare", c.Difficulties["nightmare"].Name)
	assert.Equal(t, []string{"easy", "normal", "hard", "nightmare"}, c.DifficultyNames())
}

func TestDecode_Empty(t *testing.T) {
	c, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default().Game, c.Game)
}

func TestDecode_UnknownField(t *testing.T) {
	_, err := Decode(strings.NewReader("engine:\n  stepp: 3\n"))
	require.Error(t, err)
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero step", func(c *Config) { c.Engine.Step = 0 }},
		{"no particles", func(c *Config) { c.Engine.MaxParticles = 0 }},
		{"no levels", func(c *Config) { c.Game.Levels = nil }},
		{"unknown difficulty", func(c *Config) { c.Game.Difficulty = "insane" }},
		{"unknown start weapon", func(c *Config) { c.Game.StartWeapon = "bazooka" }},
		{"server path", func(c *Config) { c.Server.Enabled = true; c.Server.Path = "cues" }},
		{"light weapon", func(c *Config) {
			w := c.Weapons[MG]
			w.Weight = 0.5
			c.Weapons[MG] = w
		}},
		{"short ammo", func(c *Config) {
			w := c.Weapons[Pistol]
			w.Ammo = 2
			c.Weapons[Pistol] = w
		}},
		{"zero reaction", func(c *Config) {
			d := c.Difficulties["easy"]
			d.AIReactionTime = 0
			c.Difficulties["easy"] = d
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			assert.ErrorIs(t, c.Validate(), ErrInvalidConfig)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "darkzone.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", c.Log.Level)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
