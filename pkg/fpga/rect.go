package fpga

import "fmt"

// Rect is an axis-aligned footprint on the grid, 0-based.
type Rect struct {
	Col    int `json:"col"`
	Row    int `json:"row"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// EndCol returns the last covered column (inclusive).
func (r Rect) EndCol() int { return r.Col + r.Width - 1 }

// EndRow returns the last covered row (inclusive).
func (r Rect) EndRow() int { return r.Row + r.Height - 1 }

// Area returns the number of tiles covered.
func (r Rect) Area() int { return r.Width * r.Height }

// Valid reports whether the rectangle has positive extent.
func (r Rect) Valid() bool { return r.Width > 0 && r.Height > 0 }

// Overlaps reports whether r and o share at least one tile.
func (r Rect) Overlaps(o Rect) bool {
	return r.Col <= o.EndCol() && o.Col <= r.EndCol() &&
		r.Row <= o.EndRow() && o.Row <= r.EndRow()
}

func (r Rect) String() string {
	return fmt.Sprintf("[col %d, row %d, %dx%d]", r.Col, r.Row, r.Width, r.Height)
}
