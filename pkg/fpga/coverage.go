package fpga

import (
	"fmt"

	"github.com/matzehuels/floorplan/pkg/errors"
)

// Counts tallies covered tiles by type.
type Counts struct {
	CLB       int `json:"clb"`
	BRAM      int `json:"bram"`
	DSP       int `json:"dsp"`
	Forbidden int `json:"forbidden"`
	Null      int `json:"null"`
}

// Add returns the element-wise sum of c and o.
func (c Counts) Add(o Counts) Counts {
	return Counts{
		CLB:       c.CLB + o.CLB,
		BRAM:      c.BRAM + o.BRAM,
		DSP:       c.DSP + o.DSP,
		Forbidden: c.Forbidden + o.Forbidden,
		Null:      c.Null + o.Null,
	}
}

// Of returns the count for a single tile type.
func (c Counts) Of(t Tile) int {
	switch t {
	case CLB:
		return c.CLB
	case BRAM:
		return c.BRAM
	case DSP:
		return c.DSP
	case Forbidden:
		return c.Forbidden
	default:
		return c.Null
	}
}

func (c *Counts) inc(t Tile) {
	switch t {
	case CLB:
		c.CLB++
	case BRAM:
		c.BRAM++
	case DSP:
		c.DSP++
	case Forbidden:
		c.Forbidden++
	default:
		c.Null++
	}
}

// Demand is the number of tiles of each resource type a region needs.
type Demand struct {
	CLB  int `json:"clb"`
	BRAM int `json:"bram"`
	DSP  int `json:"dsp"`
}

// Valid reports whether every component is non-negative.
func (d Demand) Valid() bool {
	return d.CLB >= 0 && d.BRAM >= 0 && d.DSP >= 0
}

func (d Demand) String() string {
	return fmt.Sprintf("CLB=%d BRAM=%d DSP=%d", d.CLB, d.BRAM, d.DSP)
}

// Coverage tallies the tiles inside r. The rectangle must lie inside g.
func Coverage(g *Grid, r Rect) (Counts, error) {
	if !g.Contains(r) {
		return Counts{}, errors.New(errors.ErrCodeInvalidInput, "rectangle %v outside %dx%d grid", r, g.rows, g.cols)
	}
	var c Counts
	for row := r.Row; row <= r.EndRow(); row++ {
		for col := r.Col; col <= r.EndCol(); col++ {
			c.inc(g.at(row, col))
		}
	}
	return c, nil
}

// HasForbidden reports whether any Forbidden tile is covered.
func HasForbidden(c Counts) bool {
	return c.Forbidden > 0
}

// MeetsDemand reports whether the covered CLB, BRAM and DSP tiles are each
// at least the demanded amount.
func MeetsDemand(c Counts, d Demand) bool {
	return c.CLB >= d.CLB && c.BRAM >= d.BRAM && c.DSP >= d.DSP
}

// CoverageIndex holds 2-D prefix sums of every tile type so rectangle
// counts cost O(1). It is read-only once built and safe for concurrent use.
type CoverageIndex struct {
	grid *Grid
	// sums[t][(row)*(cols+1)+col] counts tiles of type t in [0,row) x [0,col).
	sums [numTiles][]int
}

// NewCoverageIndex builds the prefix sums for g in O(rows × cols).
func NewCoverageIndex(g *Grid) *CoverageIndex {
	w := g.cols + 1
	idx := &CoverageIndex{grid: g}
	for t := range idx.sums {
		idx.sums[t] = make([]int, (g.rows+1)*w)
	}
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			tile := g.at(r, c)
			for t := range idx.sums {
				s := idx.sums[t]
				v := s[r*w+c+1] + s[(r+1)*w+c] - s[r*w+c]
				if Tile(t) == tile {
					v++
				}
				s[(r+1)*w+c+1] = v
			}
		}
	}
	return idx
}

// Grid returns the grid the index was built from.
func (idx *CoverageIndex) Grid() *Grid { return idx.grid }

// Coverage returns the same counts as [Coverage] for r.
func (idx *CoverageIndex) Coverage(r Rect) (Counts, error) {
	if !idx.grid.Contains(r) {
		return Counts{}, errors.New(errors.ErrCodeInvalidInput, "rectangle %v outside %dx%d grid", r, idx.grid.rows, idx.grid.cols)
	}
	return Counts{
		CLB:       idx.sum(CLB, r),
		BRAM:      idx.sum(BRAM, r),
		DSP:       idx.sum(DSP, r),
		Forbidden: idx.sum(Forbidden, r),
		Null:      idx.sum(Null, r),
	}, nil
}

func (idx *CoverageIndex) sum(t Tile, r Rect) int {
	w := idx.grid.cols + 1
	s := idx.sums[t]
	r0, r1 := r.Row, r.EndRow()+1
	c0, c1 := r.Col, r.EndCol()+1
	return s[r1*w+c1] - s[r0*w+c1] - s[r1*w+c0] + s[r0*w+c0]
}
