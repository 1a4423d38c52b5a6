package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/darkzone/internal/core/config"
	"github.com/zeusync/darkzone/internal/core/level"
	"github.com/zeusync/darkzone/internal/core/physics"
)

const everyCell = `XXXXXXXX
XS.-P.LX
X.C|_..X
XEUMW12X
X34B...X
XXXXXXXX
`

func TestLoadLevel_PopulatesEveryCell(t *testing.T) {
	grid, err := level.ParseString("every", everyCell)
	require.NoError(t, err)
	w := newTestWorld(t)
	LoadLevel(w, grid)

	assert.Same(t, grid, w.Engine.Level)
	assert.Equal(t, 25, w.Barriers.Len(), "24 walls and a crate")
	assert.Equal(t, 24, w.Props.Count("floor")+w.Props.Count("woodFloor"))
	assert.Equal(t, 2, w.Props.Count("woodFloor"), "the wood tile and the door next to it")
	assert.Equal(t, 4, w.AI.Len())
	assert.Equal(t, 2, w.Lights.Len())
	assert.Equal(t, 2, w.Doors.Len())
	assert.Equal(t, 4, w.Pickables.Len())
	assert.Len(t, w.AI.points, 1)
	// two doors, the intact light and a takedown per enemy
	assert.Equal(t, 7, w.Actions.Len())

	p := w.Player()
	require.NotNil(t, p)
	assert.Equal(t, level.TileOrigin(1, 1), p.Agent.Pos())

	var weapons []string
	patrollers := 0
	w.AI.Each(func(ai *AI) {
		if g := ai.Agent.CurrentWeapon(); g != nil {
			weapons = append(weapons, g.Options.Code)
		}
		if ai.CanPatrol {
			patrollers++
		}
	})
	assert.ElementsMatch(t, []string{config.Pistol, config.MG, config.Pistol}, weapons)
	assert.Equal(t, 1, patrollers)
}

func TestLoadLevel_LightsHangOnWalls(t *testing.T) {
	grid, err := level.ParseString("every", everyCell)
	require.NoError(t, err)
	w := newTestWorld(t)
	LoadLevel(w, grid)

	var intact, broken *Light
	w.Lights.Each(func(l *Light) {
		if l.Broken {
			broken = l
		} else {
			intact = l
		}
	})
	require.NotNil(t, intact)
	require.NotNil(t, broken)

	assert.Equal(t, physics.V(130, 20), intact.Pos, "top edge of tile (6,1)")
	assert.Equal(t, physics.V(0, 1), intact.Direction)
	assert.NotNil(t, intact.Action)

	assert.Equal(t, physics.V(70, 100), broken.Pos, "bottom edge of tile (3,4)")
	assert.Equal(t, physics.V(0, -1), broken.Direction)
	assert.Equal(t, DefaultLightRadius/2, broken.Radius)
	assert.Nil(t, broken.Action)
}

func TestLoadLevel_DuplicateStartSpawnsOnePlayer(t *testing.T) {
	grid, err := level.ParseString("twice", "XXXXX\nXS.SX\nXXXXX\n")
	require.NoError(t, err)
	w := newTestWorld(t)
	LoadLevel(w, grid)

	assert.Equal(t, 1, w.Players.Len())
	assert.Equal(t, level.TileOrigin(1, 1), w.Player().Agent.Pos())
}
