// Package problem holds a floorplanning problem instance and its solution.
//
// A [Problem] is built once (usually by the codec in pkg/io) and then
// handed, read-only, to a placement strategy and to the scorer. Nothing in
// this package keeps state between problems, so independent problems can be
// solved concurrently.
package problem

import (
	"fmt"

	"github.com/matzehuels/floorplan/pkg/errors"
	"github.com/matzehuels/floorplan/pkg/fpga"
)

// Kind tags a region as static or partially reconfigurable.
type Kind uint8

const (
	// KindUnspecified is used by plain problems that carry no kind.
	KindUnspecified Kind = iota
	// KindStatic marks a static region.
	KindStatic
	// KindReconfigurable marks a partially reconfigurable region.
	KindReconfigurable
)

// ParseKind converts the single-letter code used in problem files.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "S":
		return KindStatic, nil
	case "P":
		return KindReconfigurable, nil
	}
	return KindUnspecified, errors.New(errors.ErrCodeParse, "unknown region kind %q (want P or S)", s)
}

// Code returns the file code of the kind, or "" for KindUnspecified.
func (k Kind) Code() string {
	switch k {
	case KindStatic:
		return "S"
	case KindReconfigurable:
		return "P"
	}
	return ""
}

func (k Kind) String() string {
	switch k {
	case KindStatic:
		return "static"
	case KindReconfigurable:
		return "reconfigurable"
	}
	return "unspecified"
}

// IOPort is a fixed fabric location a region connects to. Coordinates are
// 0-based.
type IOPort struct {
	Col   int `json:"col"`
	Row   int `json:"row"`
	Wires int `json:"wires"`
}

// Region is one block to floorplan.
type Region struct {
	ID     int         `json:"id"`
	Demand fpga.Demand `json:"demand"`
	Kind   Kind        `json:"kind,omitempty"`
	IOs    []IOPort    `json:"ios,omitempty"`
}

// CommMatrix holds wire counts between regions: Comm[i][j] wires from
// region i to region j. It is not assumed to be symmetric.
type CommMatrix [][]int

// Wires returns the wire count from i to j.
func (m CommMatrix) Wires(i, j int) int {
	return m[i][j]
}

// Weights are the scoring constants of a problem.
type Weights struct {
	P     int `json:"p"`
	Aw    int `json:"aw"`
	Ww    int `json:"ww"`
	CLBw  int `json:"clbw"`
	BRAMw int `json:"bramw"`
	DSPw  int `json:"dspw"`
}

// TileCost returns the area weight of a tile type. Forbidden and null
// tiles cost nothing.
func (w Weights) TileCost(t fpga.Tile) int {
	switch t {
	case fpga.CLB:
		return w.CLBw
	case fpga.BRAM:
		return w.BRAMw
	case fpga.DSP:
		return w.DSPw
	}
	return 0
}

// AreaCost returns the weighted area of the given counts.
func (w Weights) AreaCost(c fpga.Counts) int {
	return c.CLB*w.CLBw + c.BRAM*w.BRAMw + c.DSP*w.DSPw
}

// Problem is a complete floorplanning instance.
type Problem struct {
	ID      int        `json:"id"`
	Weights Weights    `json:"weights"`
	Grid    *fpga.Grid `json:"-"`
	Regions []Region   `json:"regions"`
	Comm    CommMatrix `json:"comm"`
}

// N returns the number of regions.
func (p *Problem) N() int { return len(p.Regions) }

// Extended reports whether the problem uses the clock-region format.
func (p *Problem) Extended() bool {
	_, ok := p.Grid.ClockRegionHeight()
	return ok
}

// Validate checks the invariants strategies and the scorer rely on:
// a grid is present, region ids run 0..N-1 in order, demands are
// non-negative, I/O ports lie inside the grid and the communication
// matrix is N×N with non-negative entries.
func (p *Problem) Validate() error {
	if p == nil {
		return errors.New(errors.ErrCodeMalformedProblem, "problem is nil")
	}
	if p.Grid == nil {
		return errors.New(errors.ErrCodeMalformedGrid, "problem %d has no grid", p.ID)
	}
	n := len(p.Regions)
	for i, r := range p.Regions {
		if r.ID != i {
			return errors.New(errors.ErrCodeMalformedProblem, "region at index %d has id %d", i, r.ID)
		}
		if !r.Demand.Valid() {
			return errors.New(errors.ErrCodeMalformedProblem, "region %d has negative demand (%v)", i, r.Demand)
		}
		for k, io := range r.IOs {
			if io.Col < 0 || io.Col >= p.Grid.Cols() || io.Row < 0 || io.Row >= p.Grid.Rows() {
				return errors.New(errors.ErrCodeMalformedProblem, "region %d I/O %d at (%d, %d) outside grid", i, k, io.Col, io.Row)
			}
			if io.Wires < 0 {
				return errors.New(errors.ErrCodeMalformedProblem, "region %d I/O %d has negative wire count", i, k)
			}
		}
	}
	if len(p.Comm) != n {
		return errors.New(errors.ErrCodeMalformedProblem, "communication matrix has %d rows, want %d", len(p.Comm), n)
	}
	for i, row := range p.Comm {
		if len(row) != n {
			return errors.New(errors.ErrCodeMalformedProblem, "communication matrix row %d has %d entries, want %d", i, len(row), n)
		}
		for j, v := range row {
			if v < 0 {
				return errors.New(errors.ErrCodeMalformedProblem, "communication matrix entry (%d, %d) is negative", i, j)
			}
		}
	}
	return nil
}

func (p *Problem) String() string {
	return fmt.Sprintf("problem %d (%dx%d grid, %d regions)", p.ID, p.Grid.Rows(), p.Grid.Cols(), len(p.Regions))
}
