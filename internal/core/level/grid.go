package level

import (
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/zeusync/darkzone/internal/core/physics"
)

// TileSize is the edge of one grid cell in pixels.
const TileSize = 20

// Cell is one tile character of a level file.
type Cell byte

const (
	Empty          Cell = ' '
	Stone          Cell = '.'
	Wood           Cell = '-'
	Wall           Cell = 'X'
	Start          Cell = 'S'
	Enemy          Cell = 'E'
	UnarmedEnemy   Cell = 'U'
	GunnerEnemy    Cell = 'M'
	Patroller      Cell = 'W'
	PatrolPoint    Cell = 'P'
	Light          Cell = 'L'
	BrokenLight    Cell = 'B'
	DoorVertical   Cell = '|'
	DoorHorizontal Cell = '_'
	PistolPickup   Cell = '1'
	MGPickup       Cell = '2'
	MinigunPickup  Cell = '3'
	FlamerPickup   Cell = '4'
	Crate          Cell = 'C'
)

// IsFloor reports whether c is a walkable floor material.
func (c Cell) IsFloor() bool { return c == Stone || c == Wood }

// Direction names the side of a tile a wall-mounted object hangs on.
type Direction uint8

const (
	DirNone Direction = iota
	DirUp
	DirRight
	DirDown
	DirLeft
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	default:
		return "none"
	}
}

// Grid is a rectangular tile map. Rows shorter than the widest row are padded with Empty.
type Grid struct {
	name   string
	cells  [][]Cell
	width  int
	height int
	start  physics.Vec2
}

// Name returns the level name the grid was loaded under.
func (g *Grid) Name() string { return g.name }

// Width returns the width in tiles.
func (g *Grid) Width() int { return g.width }

// Height returns the height in tiles.
func (g *Grid) Height() int { return g.height }

// PixelSize returns the world dimensions in pixels.
func (g *Grid) PixelSize() (float64, float64) {
	return float64(g.width * TileSize), float64(g.height * TileSize)
}

// PlayerStart returns the top-left pixel corner of the start tile.
func (g *Grid) PlayerStart() physics.Vec2 { return g.start }

// InBounds reports whether (x, y) is a tile of the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

// At returns the tile at (x, y), clamping both coordinates to the grid edges.
func (g *Grid) At(x, y int) Cell {
	if g.width == 0 || g.height == 0 {
		return Empty
	}
	x = clamp(x, 0, g.width-1)
	y = clamp(y, 0, g.height-1)
	return g.cells[y][x]
}

// AtPos returns the tile under a pixel position, clamped.
func (g *Grid) AtPos(pos physics.Vec2) Cell {
	x, y := TileOf(pos)
	return g.At(x, y)
}

// Floor resolves the floor material of a tile: the tile itself when it is floor,
// otherwise the first floor neighbour (up, right, down, left), otherwise Stone.
func (g *Grid) Floor(x, y int) Cell {
	if c := g.At(x, y); c.IsFloor() {
		return c
	}
	for _, n := range g.neighbours(x, y) {
		if n.cell.IsFloor() {
			return n.cell
		}
	}
	return Stone
}

// WallDirection returns the side of (x, y) touching a wall, checked up, right, down, left.
func (g *Grid) WallDirection(x, y int) Direction {
	for _, n := range g.neighbours(x, y) {
		if n.cell == Wall {
			return n.dir
		}
	}
	return DirNone
}

// Each visits every tile row by row.
func (g *Grid) Each(fn func(x, y int, c Cell)) {
	for y, row := range g.cells {
		for x, c := range row {
			fn(x, y, c)
		}
	}
}

// Count returns how many tiles hold c.
func (g *Grid) Count(c Cell) int {
	n := 0
	g.Each(func(_, _ int, v Cell) {
		if v == c {
			n++
		}
	})
	return n
}

// Fingerprint hashes the tile contents. Equal layouts give equal fingerprints, which
// makes the value usable as a deterministic RNG seed for a level.
func (g *Grid) Fingerprint() uint64 {
	d := xxhash.New()
	for _, row := range g.cells {
		buf := make([]byte, len(row)+1)
		for i, c := range row {
			buf[i] = byte(c)
		}
		buf[len(row)] = '\n'
		_, _ = d.Write(buf)
	}
	return d.Sum64()
}

type neighbour struct {
	dir  Direction
	cell Cell
}

// neighbours returns the four orthogonal neighbours; lookups past the edge clamp
// back onto the border tile.
func (g *Grid) neighbours(x, y int) [4]neighbour {
	return [4]neighbour{
		{DirUp, g.At(x, y-1)},
		{DirRight, g.At(x+1, y)},
		{DirDown, g.At(x, y+1)},
		{DirLeft, g.At(x-1, y)},
	}
}

// TileOf returns the tile coordinates containing a pixel position.
func TileOf(pos physics.Vec2) (int, int) {
	return floorDiv(pos.X), floorDiv(pos.Y)
}

// TileOrigin returns the top-left pixel corner of a tile.
func TileOrigin(x, y int) physics.Vec2 {
	return physics.V(float64(x*TileSize), float64(y*TileSize))
}

// TileCenter returns the pixel centre of a tile.
func TileCenter(x, y int) physics.Vec2 {
	return physics.V(float64(x*TileSize)+TileSize/2, float64(y*TileSize)+TileSize/2)
}

func floorDiv(v float64) int {
	return int(math.Floor(v / TileSize))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
