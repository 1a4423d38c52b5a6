package collision

import (
	"math"

	"github.com/zeusync/darkzone/internal/core/level"
	"github.com/zeusync/darkzone/internal/core/physics"
)

// CellStride separates grid columns in a cell index. Worlds are limited to
// CellStride cells on the y axis.
const CellStride = 1000

// CellIndex packs tile coordinates into one key.
func CellIndex(x, y int) int {
	return x*CellStride + y
}

// CellOf returns the index of the cell containing pos.
func CellOf(pos physics.Vec2) int {
	return CellIndex(tile(pos.X), tile(pos.Y))
}

func tile(v float64) int {
	return int(math.Floor(v / level.TileSize))
}

type grid map[int][]*Collidable

func (g grid) add(cell int, c *Collidable) {
	g[cell] = append(g[cell], c)
}

func (g grid) remove(cell int, c *Collidable) {
	list := g[cell]
	for i, o := range list {
		if o == c {
			list = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(list) == 0 {
		delete(g, cell)
		return
	}
	g[cell] = list
}

// reset empties every cell but keeps the backing slices for reuse.
func (g grid) reset() {
	for k, v := range g {
		clear(v)
		g[k] = v[:0]
	}
}

// cellsOf lists the cells a collidable at pos touches.
func cellsOf(shape Shape, pos physics.Vec2, radius float64, out []int) []int {
	out = out[:0]
	if shape != ShapeCircle {
		return append(out, CellOf(pos))
	}
	minX := tile(pos.X - radius)
	maxX := tile(pos.X + radius - 1)
	minY := tile(pos.Y - radius)
	maxY := tile(pos.Y + radius - 1)
	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			out = append(out, CellIndex(x, y))
		}
	}
	return out
}
