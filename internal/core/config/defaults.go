package config

import (
	"math"
	"time"
)

// Weapon codes of the built-in catalog.
const (
	Pistol       = "pistol"
	MG           = "mg"
	Minigun      = "minigun"
	Flamethrower = "flamethrower"
)

// Default returns the built-in configuration. Map entries named in a file replace
// the default entry as a whole.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			Step:         1000.0 / 60.0,
			MaxSteps:     10,
			MaxParticles: 2000,
		},
		Log: LogConfig{
			Level:    "info",
			Encoding: "json",
		},
		Server: ServerConfig{
			Addr:         ":8089",
			Path:         "/cues",
			WriteTimeout: 5 * time.Second,
			Buffer:       256,
		},
		Game: GameConfig{
			Difficulty:   "normal",
			Levels:       []string{"level1", "level2", "level3"},
			PlayerHealth: 30,
			EnemyHealth:  5,
			StartWeapon:  Pistol,
		},
		Difficulties: DefaultDifficulties(),
		Weapons:      DefaultWeapons(),
	}
}

func DefaultDifficulties() map[string]Difficulty {
	return map[string]Difficulty{
		"easy": {
			Name:                   "easy",
			PlayerHealthMultiplier: 2,
			EnemyHealthMultiplier:  0.4,
			VisibilityLevel:        100,
			AIReactionTime:         1000,
		},
		"normal": {
			Name:                   "normal",
			PlayerHealthMultiplier: 1,
			EnemyHealthMultiplier:  1,
			VisibilityLevel:        70,
			AIReactionTime:         500,
		},
		"hard": {
			Name:                   "hard",
			PlayerHealthMultiplier: 0.5,
			EnemyHealthMultiplier:  2,
			VisibilityLevel:        40,
			AIReactionTime:         250,
		},
	}
}

func DefaultWeapons() map[string]Weapon {
	return map[string]Weapon{
		Pistol: {
			Code:             Pistol,
			Name:             "pistol",
			MagazineCapacity: 6,
			ReloadTime:       2000,
			ShootInterval:    250,
			BulletSpeed:      6,
			BulletLifetime:   10000,
			Spread:           math.Pi / 25,
			Ammo:             60,
			Priority:         1,
			Weight:           1,
		},
		MG: {
			Code:             MG,
			Name:             "MG",
			MagazineCapacity: 30,
			ReloadTime:       3000,
			ShootInterval:    80,
			BulletSpeed:      8,
			BulletLifetime:   15000,
			Spread:           math.Pi / 20,
			Ammo:             150,
			Priority:         2,
			Weight:           1.2,
		},
		Minigun: {
			Code:             Minigun,
			Name:             "minigun",
			MagazineCapacity: 500,
			ReloadTime:       5000,
			ShootInterval:    0,
			BulletSpeed:      10,
			BulletLifetime:   15000,
			Spread:           math.Pi / 15,
			Ammo:             1000,
			Priority:         3,
			Weight:           1.8,
		},
		Flamethrower: {
			Code:             Flamethrower,
			Name:             "flamethrower",
			MagazineCapacity: 30000,
			ReloadTime:       1,
			ShootInterval:    0,
			BulletSpeed:      3.5,
			BulletLifetime:   600,
			Spread:           math.Pi / 6,
			Ammo:             30000,
			Priority:         4,
			Weight:           1.5,
			Flame:            true,
		},
	}
}
