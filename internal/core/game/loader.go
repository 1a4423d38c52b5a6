package game

import (
	"github.com/zeusync/darkzone/internal/core/config"
	"github.com/zeusync/darkzone/internal/core/level"
	"github.com/zeusync/darkzone/internal/core/observability/log"
)

// Enemy loadouts by level cell.
var enemies = map[level.Cell]AIOptions{
	level.Enemy:        {Weapon: config.Pistol},
	level.UnarmedEnemy: {},
	level.GunnerEnemy:  {Weapon: config.MG},
	level.Patroller:    {Weapon: config.Pistol, CanPatrol: true},
}

var pickups = map[level.Cell]string{
	level.PistolPickup:  config.Pistol,
	level.MGPickup:      config.MG,
	level.MinigunPickup: config.Minigun,
	level.FlamerPickup:  config.Flamethrower,
}

// LoadLevel installs grid as the active level of w and populates it: walls and
// crates, floors, doors, lights, pickups, patrol points, enemies and the player.
// Everything is placed at the top-left corner of its tile.
func LoadLevel(w *World, grid *level.Grid) {
	w.Engine.SetLevel(grid)
	start := grid.PlayerStart()

	grid.Each(func(x, y int, c level.Cell) {
		pos := level.TileOrigin(x, y)
		switch c {
		case level.Wall:
			w.Barriers.Add(pos, "wall")
			return
		case level.Empty:
			return
		}

		w.Props.Spawn(PropOptions{Pos: pos, Sprite: floorSprite(grid.Floor(x, y))})

		switch c {
		case level.Crate:
			w.Barriers.Add(pos, "crate")
		case level.Start:
			if pos == start {
				w.Players.Spawn(pos)
			}
		case level.PatrolPoint:
			w.AI.AddPatrolPoint(pos)
		case level.Light, level.BrokenLight:
			w.Lights.Spawn(LightOptions{
				Pos:      pos,
				Enabled:  true,
				Broken:   c == level.BrokenLight,
				Physical: true,
				Wall:     grid.WallDirection(x, y),
			})
		case level.DoorVertical:
			w.Doors.Add(pos, DoorVertical)
		case level.DoorHorizontal:
			w.Doors.Add(pos, DoorHorizontal)
		}

		if opts, ok := enemies[c]; ok {
			opts.Pos = pos
			w.AI.Spawn(opts)
		}
		if code, ok := pickups[c]; ok {
			w.Pickables.Spawn(pos, w.NewGun(w.MustWeapon(code)))
		}
	})

	w.Logger.Info("level loaded",
		log.String("level", grid.Name()),
		log.Int("width", grid.Width()),
		log.Int("height", grid.Height()),
		log.Int("enemies", w.AI.Len()),
		log.Int("lights", w.Lights.Len()),
		log.Int("doors", w.Doors.Len()),
	)
}

func floorSprite(c level.Cell) string {
	if c == level.Wood {
		return "woodFloor"
	}
	return "floor"
}
