package fpga

import (
	"github.com/matzehuels/floorplan/pkg/errors"
)

// Grid is the immutable description of the fabric. The zero value is not
// usable; build grids with [NewGrid].
type Grid struct {
	rows, cols  int
	tiles       []Tile // row-major
	validLeft   []bool
	validRight  []bool
	clockHeight int // 0 when the grid has no clock regions

	firstLeft, lastRight int
}

// NewGrid validates its arguments and builds a Grid. The slices are copied,
// so later changes by the caller do not affect the grid.
//
// A clockHeight of 0 means the grid has no clock regions.
//
// The returned error carries [errors.ErrCodeMalformedGrid] when the tile
// matrix or the masks disagree with rows and cols, when no column is a
// valid left edge or none is a valid right edge, or when clockHeight is
// negative. A clock region taller than the grid is allowed and leaves no
// bands to place into.
func NewGrid(rows, cols int, tiles [][]Tile, validLeft, validRight []bool, clockHeight int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, errors.New(errors.ErrCodeMalformedGrid, "grid must have positive dimensions, got %dx%d", rows, cols)
	}
	if len(tiles) != rows {
		return nil, errors.New(errors.ErrCodeMalformedGrid, "grid has %d tile rows, want %d", len(tiles), rows)
	}
	if len(validLeft) != cols {
		return nil, errors.New(errors.ErrCodeMalformedGrid, "valid-left mask has %d entries, want %d", len(validLeft), cols)
	}
	if len(validRight) != cols {
		return nil, errors.New(errors.ErrCodeMalformedGrid, "valid-right mask has %d entries, want %d", len(validRight), cols)
	}
	if clockHeight < 0 {
		return nil, errors.New(errors.ErrCodeMalformedGrid, "clock region height %d is negative", clockHeight)
	}

	g := &Grid{
		rows:        rows,
		cols:        cols,
		tiles:       make([]Tile, 0, rows*cols),
		validLeft:   append([]bool(nil), validLeft...),
		validRight:  append([]bool(nil), validRight...),
		clockHeight: clockHeight,
		firstLeft:   -1,
		lastRight:   -1,
	}
	for r, row := range tiles {
		if len(row) != cols {
			return nil, errors.New(errors.ErrCodeMalformedGrid, "tile row %d has %d columns, want %d", r, len(row), cols)
		}
		for c, t := range row {
			if int(t) >= numTiles {
				return nil, errors.New(errors.ErrCodeMalformedGrid, "tile (%d, %d) has unknown type %d", r, c, t)
			}
		}
		g.tiles = append(g.tiles, row...)
	}

	for c := 0; c < cols; c++ {
		if g.validLeft[c] {
			g.firstLeft = c
			break
		}
	}
	for c := cols - 1; c >= 0; c-- {
		if g.validRight[c] {
			g.lastRight = c
			break
		}
	}
	if g.firstLeft < 0 {
		return nil, errors.New(errors.ErrCodeMalformedGrid, "no column is a valid left edge")
	}
	if g.lastRight < 0 {
		return nil, errors.New(errors.ErrCodeMalformedGrid, "no column is a valid right edge")
	}
	return g, nil
}

// Rows returns the number of tile rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of tile columns.
func (g *Grid) Cols() int { return g.cols }

// TileAt returns the tile at (row, col). Out-of-range coordinates return
// an [errors.ErrCodeInvalidInput] error.
func (g *Grid) TileAt(row, col int) (Tile, error) {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return Null, errors.New(errors.ErrCodeInvalidInput, "tile (%d, %d) outside %dx%d grid", row, col, g.rows, g.cols)
	}
	return g.tiles[row*g.cols+col], nil
}

// at is TileAt without bounds checking.
func (g *Grid) at(row, col int) Tile {
	return g.tiles[row*g.cols+col]
}

// IsValidLeft reports whether a region may have col as its left column.
func (g *Grid) IsValidLeft(col int) bool {
	return col >= 0 && col < g.cols && g.validLeft[col]
}

// IsValidRight reports whether a region may have col as its right column.
func (g *Grid) IsValidRight(col int) bool {
	return col >= 0 && col < g.cols && g.validRight[col]
}

// ClockRegionHeight returns the clock region height and whether the grid is
// partitioned into clock regions at all.
func (g *Grid) ClockRegionHeight() (int, bool) {
	return g.clockHeight, g.clockHeight > 0
}

// BandHeight is the vertical placement granularity: the clock region
// height, or 1 for grids without clock regions.
func (g *Grid) BandHeight() int {
	if g.clockHeight > 0 {
		return g.clockHeight
	}
	return 1
}

// Bands returns how many whole bands of BandHeight rows fit in the grid.
func (g *Grid) Bands() int {
	return g.rows / g.BandHeight()
}

// FirstValidLeft returns the lowest valid left column.
func (g *Grid) FirstValidLeft() int { return g.firstLeft }

// LastValidRight returns the highest valid right column.
func (g *Grid) LastValidRight() int { return g.lastRight }

// ValidLeftCols returns the valid left columns in increasing order.
func (g *Grid) ValidLeftCols() []int {
	return maskCols(g.validLeft)
}

// ValidRightCols returns the valid right columns in increasing order.
func (g *Grid) ValidRightCols() []int {
	return maskCols(g.validRight)
}

func maskCols(mask []bool) []int {
	var cols []int
	for c, ok := range mask {
		if ok {
			cols = append(cols, c)
		}
	}
	return cols
}

// Contains reports whether r is a non-empty rectangle fully inside the grid.
func (g *Grid) Contains(r Rect) bool {
	return r.Valid() && r.Col >= 0 && r.Row >= 0 &&
		r.Col < g.cols && r.Row < g.rows &&
		r.Width <= g.cols-r.Col && r.Height <= g.rows-r.Row
}

// Aligned reports whether r starts on a band boundary and spans whole bands.
// Every rectangle is aligned on a grid without clock regions.
func (g *Grid) Aligned(r Rect) bool {
	h := g.BandHeight()
	return r.Row%h == 0 && r.Height%h == 0
}

// FromStrings builds a grid from a compact notation: one string of tile
// codes per row, and each mask as a string of '0' and '1'. It is handy in
// tests and examples.
//
//	g, err := fpga.FromStrings([]string{"CCB", "CFD"}, "100", "001", 0)
func FromStrings(rows []string, validLeft, validRight string, clockHeight int) (*Grid, error) {
	tiles := make([][]Tile, len(rows))
	for r, row := range rows {
		tiles[r] = make([]Tile, 0, len(row))
		for i := 0; i < len(row); i++ {
			t, err := ParseTile(row[i : i+1])
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeMalformedGrid, err, "row %d", r)
			}
			tiles[r] = append(tiles[r], t)
		}
	}
	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	}
	left, err := parseMask(validLeft)
	if err != nil {
		return nil, err
	}
	right, err := parseMask(validRight)
	if err != nil {
		return nil, err
	}
	return NewGrid(len(rows), cols, tiles, left, right, clockHeight)
}

func parseMask(s string) ([]bool, error) {
	m := make([]bool, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '1':
			m[i] = true
		case '0':
		default:
			return nil, errors.New(errors.ErrCodeMalformedGrid, "mask %q has invalid character %q", s, s[i])
		}
	}
	return m, nil
}
