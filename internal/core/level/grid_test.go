package level

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zeusync/darkzone/internal/core/physics"
)

const small = "XXXXX\r\nX.S-X\nX-L\nXXXXX\n\n"

func TestParse_PadsAndLocatesStart(t *testing.T) {
	g, err := ParseString("small", small)
	require.NoError(t, err)

	assert.Equal(t, "small", g.Name())
	assert.Equal(t, 5, g.Width())
	assert.Equal(t, 4, g.Height())
	assert.Equal(t, Empty, g.At(3, 2))
	assert.Equal(t, Empty, g.At(4, 2))
	assert.Equal(t, physics.V(40, 20), g.PlayerStart())

	w, h := g.PixelSize()
	assert.Equal(t, 100.0, w)
	assert.Equal(t, 80.0, h)
}

func TestParse_Errors(t *testing.T) {
	_, err := ParseString("empty", "\n\n")
	assert.True(t, errors.Is(err, ErrEmptyLevel))

	_, err = ParseString("nostart", "XXX\nX.X\nXXX")
	assert.True(t, errors.Is(err, ErrNoPlayerStart))

	_, err = ParseString("wide", "S"+strings.Repeat(".", MaxWidth))
	assert.True(t, errors.Is(err, ErrLevelTooWide))
}

func TestGrid_ClampsAtEdges(t *testing.T) {
	g, err := ParseString("small", small)
	require.NoError(t, err)

	assert.Equal(t, Wall, g.At(-5, -5))
	assert.Equal(t, Wall, g.At(100, 100))
	assert.Equal(t, g.At(0, 1), g.At(-1, 1))
	assert.Equal(t, Start, g.AtPos(physics.V(45, 25)))
	assert.False(t, g.InBounds(-1, 0))
	assert.True(t, g.InBounds(4, 3))
}

func TestGrid_FloorAndWallDirection(t *testing.T) {
	g, err := ParseString("small", small)
	require.NoError(t, err)

	assert.Equal(t, Stone, g.Floor(1, 1))
	assert.Equal(t, Wood, g.Floor(3, 1))
	// start tile: up is a wall, right is wood
	assert.Equal(t, Wood, g.Floor(2, 1))
	// light: up is the start tile, right is empty, down is a wall, left is wood
	assert.Equal(t, Wood, g.Floor(2, 2))
	assert.Equal(t, DirDown, g.WallDirection(2, 2))
	assert.Equal(t, DirUp, g.WallDirection(1, 1))
	// a corner wall clamps onto itself and never panics
	assert.NotPanics(t, func() { g.Floor(0, 0); g.WallDirection(0, 0) })
}

func TestGrid_Fingerprint(t *testing.T) {
	a, err := ParseString("a", small)
	require.NoError(t, err)
	b, err := ParseString("b", small)
	require.NoError(t, err)
	c, err := ParseString("c", strings.Replace(small, "L", "B", 1))
	require.NoError(t, err)

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}

func TestTileOf_FloorsNegatives(t *testing.T) {
	x, y := TileOf(physics.V(-0.5, 39.9))
	assert.Equal(t, -1, x)
	assert.Equal(t, 1, y)
	assert.Equal(t, physics.V(30, 50), TileCenter(1, 2))
}

func TestTileOf_CenterRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		x := rapid.IntRange(-500, 500).Draw(t, "x")
		y := rapid.IntRange(-500, 500).Draw(t, "y")
		gx, gy := TileOf(TileCenter(x, y))
		if gx != x || gy != y {
			t.Fatalf("tile (%d,%d) centre maps to (%d,%d)", x, y, gx, gy)
		}
	})
}

func TestLoad_BuiltinLevelsParse(t *testing.T) {
	fsys := Builtin()
	names, err := Names(fsys)
	require.NoError(t, err)
	require.NotEmpty(t, names)
	for _, name := range names {
		g, err := Load(fsys, name)
		require.NoError(t, err, name)
		assert.Equal(t, 1, g.Count(Start), name)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(fstest.MapFS{}, "nope")
	assert.Error(t, err)
}

func TestLoadAll_KeepsCampaignOrder(t *testing.T) {
	fsys := fstest.MapFS{
		"b.txt": {Data: []byte("S.\n")},
		"a.txt": {Data: []byte(".S\n")},
	}
	grids, err := LoadAll(context.Background(), fsys, []string{"b", "a", "b"})
	require.NoError(t, err)
	require.Len(t, grids, 3)
	assert.Equal(t, "b", grids[0].Name())
	assert.Equal(t, "a", grids[1].Name())
	assert.Equal(t, grids[0].Fingerprint(), grids[2].Fingerprint())

	_, err = LoadAll(context.Background(), fsys, []string{"a", "missing"})
	assert.Error(t, err)

	fsys["broken.txt"] = &fstest.MapFile{Data: []byte("...\n")}
	_, err = LoadAll(context.Background(), fsys, []string{"a", "broken"})
	assert.ErrorIs(t, err, ErrNoPlayerStart)
}
