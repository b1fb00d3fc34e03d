package fpga

import (
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/floorplan/pkg/errors"
)

// buildGrid builds a grid from compact strings: one string per row of tile
// codes, and masks written as runs of '0'/'1'.
func buildGrid(t *testing.T, rows []string, left, right string, th int) *Grid {
	t.Helper()
	g, err := gridFromStrings(rows, left, right, th)
	if err != nil {
		t.Fatalf("NewGrid() error: %v", err)
	}
	return g
}

func gridFromStrings(rows []string, left, right string, th int) (*Grid, error) {
	return FromStrings(rows, left, right, th)
}

func TestNewGrid(t *testing.T) {
	g := buildGrid(t, []string{"CBD", "F-C"}, "110", "011", 0)

	if g.Rows() != 2 || g.Cols() != 3 {
		t.Fatalf("dims = %dx%d, want 2x3", g.Rows(), g.Cols())
	}

	tile, err := g.TileAt(1, 0)
	if err != nil {
		t.Fatalf("TileAt() error: %v", err)
	}
	if tile != Forbidden {
		t.Errorf("TileAt(1, 0) = %v, want forbidden", tile)
	}

	if g.FirstValidLeft() != 0 {
		t.Errorf("FirstValidLeft() = %d, want 0", g.FirstValidLeft())
	}
	if g.LastValidRight() != 2 {
		t.Errorf("LastValidRight() = %d, want 2", g.LastValidRight())
	}
	if _, ok := g.ClockRegionHeight(); ok {
		t.Error("ClockRegionHeight() reported clock regions on a plain grid")
	}
	if g.BandHeight() != 1 || g.Bands() != 2 {
		t.Errorf("BandHeight/Bands = %d/%d, want 1/2", g.BandHeight(), g.Bands())
	}
}

func TestNewGridMalformed(t *testing.T) {
	tests := []struct {
		name  string
		rows  []string
		left  string
		right string
		th    int
	}{
		{"no valid left", []string{"CC"}, "00", "11", 0},
		{"no valid right", []string{"CC"}, "11", "00", 0},
		{"ragged rows", []string{"CC", "C"}, "11", "11", 0},
		{"short left mask", []string{"CC"}, "1", "11", 0},
		{"long right mask", []string{"CC"}, "11", "111", 0},
		{"negative clock region", []string{"CC"}, "11", "11", -1},
		{"empty grid", nil, "", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gridFromStrings(tt.rows, tt.left, tt.right, tt.th)
			if err == nil {
				t.Fatal("NewGrid() error = nil, want malformed grid")
			}
			if !errors.Is(err, errors.ErrCodeMalformedGrid) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeMalformedGrid)
			}
		})
	}
}

func TestNewGridRowCountMismatch(t *testing.T) {
	tiles := [][]Tile{{CLB, CLB}}
	_, err := NewGrid(2, 2, tiles, []bool{true, true}, []bool{true, true}, 0)
	if !errors.Is(err, errors.ErrCodeMalformedGrid) {
		t.Fatalf("NewGrid() error = %v, want malformed grid", err)
	}
}

func TestGridCopiesInput(t *testing.T) {
	tiles := [][]Tile{{CLB, BRAM}}
	left := []bool{true, false}
	g, err := NewGrid(1, 2, tiles, left, []bool{false, true}, 0)
	if err != nil {
		t.Fatalf("NewGrid() error: %v", err)
	}

	tiles[0][0] = Forbidden
	left[1] = true

	if tile, _ := g.TileAt(0, 0); tile != CLB {
		t.Errorf("grid changed after caller mutated tiles: %v", tile)
	}
	if g.IsValidLeft(1) {
		t.Error("grid changed after caller mutated the left mask")
	}
}

func TestTileAtBounds(t *testing.T) {
	g := buildGrid(t, []string{"CC", "CC"}, "10", "01", 0)

	for _, rc := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		if _, err := g.TileAt(rc[0], rc[1]); err == nil {
			t.Errorf("TileAt(%d, %d) error = nil, want out of range", rc[0], rc[1])
		}
	}
	if g.IsValidLeft(-1) || g.IsValidLeft(5) || g.IsValidRight(2) {
		t.Error("mask lookups outside the grid should be false")
	}
}

func TestClockRegions(t *testing.T) {
	rows := strings.Split("CC,CC,CC,CC,CC", ",")
	g := buildGrid(t, rows, "10", "01", 2)

	th, ok := g.ClockRegionHeight()
	if !ok || th != 2 {
		t.Fatalf("ClockRegionHeight() = %d, %v, want 2, true", th, ok)
	}
	if g.Bands() != 2 {
		t.Errorf("Bands() = %d, want 2 (the fifth row is a partial band)", g.Bands())
	}

	tests := []struct {
		r    Rect
		want bool
	}{
		{Rect{Col: 0, Row: 0, Width: 1, Height: 2}, true},
		{Rect{Col: 0, Row: 2, Width: 2, Height: 2}, true},
		{Rect{Col: 0, Row: 1, Width: 1, Height: 2}, false},
		{Rect{Col: 0, Row: 0, Width: 1, Height: 3}, false},
	}
	for _, tt := range tests {
		if got := g.Aligned(tt.r); got != tt.want {
			t.Errorf("Aligned(%v) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestClockRegionTallerThanGrid(t *testing.T) {
	g := buildGrid(t, []string{"CC", "CC"}, "10", "01", 3)
	if g.Bands() != 0 {
		t.Errorf("Bands() = %d, want 0", g.Bands())
	}
}

func TestContains(t *testing.T) {
	g := buildGrid(t, []string{"CC", "CC", "CC"}, "10", "01", 0)

	tests := []struct {
		name string
		r    Rect
		want bool
	}{
		{"whole grid", Rect{Col: 0, Row: 0, Width: 2, Height: 3}, true},
		{"last tile", Rect{Col: 1, Row: 2, Width: 1, Height: 1}, true},
		{"too wide", Rect{Col: 1, Row: 0, Width: 2, Height: 1}, false},
		{"too tall", Rect{Col: 0, Row: 1, Width: 1, Height: 3}, false},
		{"negative origin", Rect{Col: -1, Row: 0, Width: 1, Height: 1}, false},
		{"origin outside", Rect{Col: 2, Row: 0, Width: 1, Height: 1}, false},
		{"empty", Rect{Col: 0, Row: 0, Width: 0, Height: 1}, false},
		{"huge height", Rect{Col: 0, Row: 2, Width: 1, Height: math.MaxInt}, false},
		{"huge width", Rect{Col: 1, Row: 0, Width: math.MaxInt, Height: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.Contains(tt.r); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.r, got, tt.want)
			}
		})
	}
}

func TestValidCols(t *testing.T) {
	g := buildGrid(t, []string{"CCCC"}, "1010", "0101", 0)

	left := g.ValidLeftCols()
	right := g.ValidRightCols()
	if len(left) != 2 || left[0] != 0 || left[1] != 2 {
		t.Errorf("ValidLeftCols() = %v, want [0 2]", left)
	}
	if len(right) != 2 || right[0] != 1 || right[1] != 3 {
		t.Errorf("ValidRightCols() = %v, want [1 3]", right)
	}
}

func TestParseTile(t *testing.T) {
	for _, tile := range Tiles() {
		got, err := ParseTile(string(tile.Code()))
		if err != nil {
			t.Fatalf("ParseTile(%q) error: %v", tile.Code(), err)
		}
		if got != tile {
			t.Errorf("ParseTile(%q) = %v, want %v", tile.Code(), got, tile)
		}
	}

	for _, bad := range []string{"", "X", "CC", "c"} {
		if _, err := ParseTile(bad); !errors.Is(err, errors.ErrCodeParse) {
			t.Errorf("ParseTile(%q) error = %v, want parse error", bad, err)
		}
	}
}

func TestFromStringsRejectsBadInput(t *testing.T) {
	if _, err := FromStrings([]string{"CX"}, "10", "01", 0); !errors.Is(err, errors.ErrCodeMalformedGrid) {
		t.Errorf("bad tile: error = %v, want malformed grid", err)
	}
	if _, err := FromStrings([]string{"CC"}, "1x", "01", 0); !errors.Is(err, errors.ErrCodeMalformedGrid) {
		t.Errorf("bad mask: error = %v, want malformed grid", err)
	}
}
