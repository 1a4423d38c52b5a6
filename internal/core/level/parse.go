package level

import (
	"bufio"
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"runtime"
	"strings"

	"github.com/zeusync/darkzone/pkg/concurrent"
	"github.com/zeusync/darkzone/pkg/sequence"
)

var (
	ErrEmptyLevel    = errors.New("level has no tiles")
	ErrNoPlayerStart = errors.New("level has no player start")
	ErrLevelTooWide  = errors.New("level exceeds the supported grid width")
)

// MaxWidth bounds the tile grid so that collision cell indices stay unique.
const MaxWidth = 1000

//go:embed levels/*.txt
var builtin embed.FS

// Builtin returns the levels shipped with the binary.
func Builtin() fs.FS {
	sub, err := fs.Sub(builtin, "levels")
	if err != nil {
		panic(err)
	}
	return sub
}

// Parse reads a level from text: one row per line, one tile per byte.
func Parse(name string, r io.Reader) (*Grid, error) {
	var rows [][]Cell
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		row := make([]Cell, len(line))
		for i := 0; i < len(line); i++ {
			row[i] = Cell(line[i])
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read level %s: %w", name, err)
	}

	for len(rows) > 0 && len(rows[len(rows)-1]) == 0 {
		rows = rows[:len(rows)-1]
	}

	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}
	if width == 0 {
		return nil, fmt.Errorf("parse level %s: %w", name, ErrEmptyLevel)
	}
	if width >= MaxWidth || len(rows) >= MaxWidth {
		return nil, fmt.Errorf("parse level %s (%dx%d): %w", name, width, len(rows), ErrLevelTooWide)
	}

	g := &Grid{name: name, width: width, height: len(rows)}
	g.cells = make([][]Cell, len(rows))
	found := false
	for y, row := range rows {
		padded := make([]Cell, width)
		for x := range padded {
			padded[x] = Empty
		}
		copy(padded, row)
		g.cells[y] = padded
		for x, c := range padded {
			if c == Start && !found {
				g.start = TileOrigin(x, y)
				found = true
			}
		}
	}
	if !found {
		return nil, fmt.Errorf("parse level %s: %w", name, ErrNoPlayerStart)
	}
	return g, nil
}

// ParseString is Parse over an in-memory level.
func ParseString(name, data string) (*Grid, error) {
	return Parse(name, strings.NewReader(data))
}

// Load opens <name>.txt from fsys and parses it.
func Load(fsys fs.FS, name string) (*Grid, error) {
	f, err := fsys.Open(name + ".txt")
	if err != nil {
		return nil, fmt.Errorf("open level %s: %w", name, err)
	}
	defer f.Close()
	return Parse(name, f)
}

// LoadAll parses the named levels of fsys in parallel and returns them in the
// order given. The first failure aborts the rest.
func LoadAll(ctx context.Context, fsys fs.FS, names []string) ([]*Grid, error) {
	return concurrent.ParallelMap(ctx, sequence.From(names), runtime.GOMAXPROCS(0),
		func(_ context.Context, name string) (*Grid, error) {
			return Load(fsys, name)
		})
}

// Names lists the level names available in fsys, sorted.
func Names(fsys fs.FS) ([]string, error) {
	matches, err := fs.Glob(fsys, "*.txt")
	if err != nil {
		return nil, err
	}
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = strings.TrimSuffix(m, ".txt")
	}
	return names, nil
}
