// Package config holds the runtime configuration of a darkzone session.
//
// Configuration is read from YAML. Every field has a default (see Default) and a
// file only needs to name what it overrides.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config is the root document.
type Config struct {
	Engine       EngineConfig          `json:"engine" yaml:"engine"`
	Log          LogConfig             `json:"log" yaml:"log"`
	Server       ServerConfig          `json:"server" yaml:"server"`
	Game         GameConfig            `json:"game" yaml:"game"`
	Difficulties map[string]Difficulty `json:"difficulties" yaml:"difficulties"`
	Weapons      map[string]Weapon     `json:"weapons" yaml:"weapons"`
}

// EngineConfig tunes the fixed-step simulation.
type EngineConfig struct {
	// Step is the fixed tick length in milliseconds.
	Step float64 `json:"step" yaml:"step"`
	// MaxSteps caps the ticks run for one frame; the rest of the backlog is dropped.
	MaxSteps int `json:"max_steps" yaml:"max_steps"`
	// MaxParticles is the particle soft cap. The oldest particle is dropped first.
	MaxParticles int `json:"max_particles" yaml:"max_particles"`
	// Seed fixes the RNG. Zero derives the seed from the level fingerprint.
	Seed uint64 `json:"seed,omitempty" yaml:"seed,omitempty"`
}

type LogConfig struct {
	Level       string   `json:"level" yaml:"level"`
	Encoding    string   `json:"encoding" yaml:"encoding"`
	OutputPaths []string `json:"output_paths,omitempty" yaml:"output_paths,omitempty"`
}

// ServerConfig configures the cue stream.
type ServerConfig struct {
	Enabled      bool          `json:"enabled" yaml:"enabled"`
	Addr         string        `json:"addr" yaml:"addr"`
	Path         string        `json:"path" yaml:"path"`
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout"`
	// Buffer is the per-client cue backlog. Slow clients lose the overflow.
	Buffer int `json:"buffer" yaml:"buffer"`
	// Token, when set, must be presented by clients as ?token= or a bearer header.
	Token string `json:"token,omitempty" yaml:"token,omitempty"`
}

// GameConfig selects what is played.
type GameConfig struct {
	Difficulty string `json:"difficulty" yaml:"difficulty"`
	// Levels is the campaign order. Names resolve to <name>.txt.
	Levels []string `json:"levels" yaml:"levels"`
	// LevelDir overrides the embedded levels.
	LevelDir string `json:"level_dir,omitempty" yaml:"level_dir,omitempty"`
	// PlayerHealth is the base player health before the difficulty multiplier.
	PlayerHealth float64 `json:"player_health" yaml:"player_health"`
	// EnemyHealth is the base AI health before the difficulty multiplier.
	EnemyHealth float64 `json:"enemy_health" yaml:"enemy_health"`
	// StartWeapon is handed to the player on spawn; empty starts unarmed.
	StartWeapon string `json:"start_weapon,omitempty" yaml:"start_weapon,omitempty"`
	// SaveDir holds the persisted progress. Empty keeps best times in memory.
	SaveDir string `json:"save_dir,omitempty" yaml:"save_dir,omitempty"`
}

// Difficulty is one named preset.
type Difficulty struct {
	Name                   string  `json:"name" yaml:"name"`
	PlayerHealthMultiplier float64 `json:"player_health_multiplier" yaml:"player_health_multiplier"`
	EnemyHealthMultiplier  float64 `json:"enemy_health_multiplier" yaml:"enemy_health_multiplier"`
	// VisibilityLevel is the light level (0-255) above which AI can see the player.
	VisibilityLevel uint8 `json:"visibility_level" yaml:"visibility_level"`
	// AIReactionTime is the perception interval in milliseconds.
	AIReactionTime float64 `json:"ai_reaction_time" yaml:"ai_reaction_time"`
}

// Weapon is one entry of the gun catalog. Times are milliseconds, speeds pixels
// per tick.
type Weapon struct {
	Code             string  `json:"code" yaml:"code"`
	Name             string  `json:"name" yaml:"name"`
	MagazineCapacity int     `json:"magazine_capacity" yaml:"magazine_capacity"`
	ReloadTime       float64 `json:"reload_time" yaml:"reload_time"`
	ShootInterval    float64 `json:"shoot_interval" yaml:"shoot_interval"`
	BulletSpeed      float64 `json:"bullet_speed" yaml:"bullet_speed"`
	BulletLifetime   float64 `json:"bullet_lifetime" yaml:"bullet_lifetime"`
	Spread           float64 `json:"spread" yaml:"spread"`
	Ammo             int     `json:"ammo" yaml:"ammo"`
	Priority         int     `json:"priority" yaml:"priority"`
	Weight           float64 `json:"weight" yaml:"weight"`
	// Flame weapons emit short-lived fire particles instead of bullets.
	Flame bool `json:"flame,omitempty" yaml:"flame,omitempty"`
}

// Load reads a YAML file on top of Default and validates the result.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return Decode(f)
}

// Decode reads YAML from r on top of Default and validates the result.
func Decode(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	c.fillNames()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Difficulty returns the selected preset.
func (c *Config) Difficulty() Difficulty {
	return c.Difficulties[c.Game.Difficulty]
}

// DifficultyNames returns the preset names in rotation order (easy, normal, hard,
// then any custom ones sorted).
func (c *Config) DifficultyNames() []string {
	order := []string{"easy", "normal", "hard"}
	names := make([]string, 0, len(c.Difficulties))
	for _, n := range order {
		if _, ok := c.Difficulties[n]; ok {
			names = append(names, n)
		}
	}
	var custom []string
	for n := range c.Difficulties {
		if !slices.Contains(order, n) {
			custom = append(custom, n)
		}
	}
	slices.Sort(custom)
	return append(names, custom...)
}

func (c *Config) fillNames() {
	for k, d := range c.Difficulties {
		if d.Name == "" {
			d.Name = k
			c.Difficulties[k] = d
		}
	}
	for k, w := range c.Weapons {
		if w.Code == "" {
			w.Code = k
		}
		if w.Name == "" {
			w.Name = k
		}
		c.Weapons[k] = w
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Engine.Step <= 0 {
		return fmt.Errorf("%w: engine.step must be positive", ErrInvalidConfig)
	}
	if c.Engine.MaxSteps < 1 {
		return fmt.Errorf("%w: engine.max_steps must be at least 1", ErrInvalidConfig)
	}
	if c.Engine.MaxParticles < 1 {
		return fmt.Errorf("%w: engine.max_particles must be at least 1", ErrInvalidConfig)
	}
	if c.Server.Enabled && c.Server.Addr == "" {
		return fmt.Errorf("%w: server.addr is required", ErrInvalidConfig)
	}
	if c.Server.Enabled && !strings.HasPrefix(c.Server.Path, "/") {
		return fmt.Errorf("%w: server.path must start with /", ErrInvalidConfig)
	}
	if len(c.Game.Levels) == 0 {
		return fmt.Errorf("%w: game.levels is empty", ErrInvalidConfig)
	}
	if c.Game.PlayerHealth <= 0 || c.Game.EnemyHealth <= 0 {
		return fmt.Errorf("%w: base health must be positive", ErrInvalidConfig)
	}
	if _, ok := c.Difficulties[c.Game.Difficulty]; !ok {
		return fmt.Errorf("%w: unknown difficulty %q", ErrInvalidConfig, c.Game.Difficulty)
	}
	for name, d := range c.Difficulties {
		if err := d.Validate(); err != nil {
			return fmt.Errorf("difficulty %s: %w", name, err)
		}
	}
	if c.Game.StartWeapon != "" {
		if _, ok := c.Weapons[c.Game.StartWeapon]; !ok {
			return fmt.Errorf("%w: unknown start weapon %q", ErrInvalidConfig, c.Game.StartWeapon)
		}
	}
	for name, w := range c.Weapons {
		if err := w.Validate(); err != nil {
			return fmt.Errorf("weapon %s: %w", name, err)
		}
	}
	return nil
}

// Validate checks a difficulty preset.
func (d Difficulty) Validate() error {
	if d.PlayerHealthMultiplier <= 0 || d.EnemyHealthMultiplier <= 0 {
		return fmt.Errorf("%w: health multipliers must be positive", ErrInvalidConfig)
	}
	if d.AIReactionTime <= 0 {
		return fmt.Errorf("%w: ai_reaction_time must be positive", ErrInvalidConfig)
	}
	return nil
}

// Validate checks a catalog entry.
func (w Weapon) Validate() error {
	switch {
	case w.MagazineCapacity < 1:
		return fmt.Errorf("%w: magazine_capacity must be at least 1", ErrInvalidConfig)
	case w.ReloadTime <= 0:
		return fmt.Errorf("%w: reload_time must be positive", ErrInvalidConfig)
	case w.ShootInterval < 0:
		return fmt.Errorf("%w: shoot_interval must not be negative", ErrInvalidConfig)
	case w.BulletSpeed <= 0 || w.BulletLifetime <= 0:
		return fmt.Errorf("%w: bullet speed and lifetime must be positive", ErrInvalidConfig)
	case w.Ammo < w.MagazineCapacity:
		return fmt.Errorf("%w: ammo must cover one magazine", ErrInvalidConfig)
	case w.Weight < 1:
		return fmt.Errorf("%w: weight must be at least 1", ErrInvalidConfig)
	}
	return nil
}
