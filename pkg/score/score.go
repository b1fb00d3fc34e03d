// Package score evaluates a completed floorplan.
//
// The objective is
//
//	value = P − Aw·area − Ww·wirelength
//
// where area is the weighted count of CLB, BRAM and DSP tiles covered by all
// regions and wirelength sums, over every (i, j) entry of the communication
// matrix, the wire count times the Manhattan distance between the two region
// centres. The scorer depends only on the solution, so every strategy is
// judged by the same function.
package score

import (
	"math"

	"github.com/matzehuels/floorplan/pkg/errors"
	"github.com/matzehuels/floorplan/pkg/fpga"
	"github.com/matzehuels/floorplan/pkg/problem"
)

// Breakdown is a scored solution.
type Breakdown struct {
	// Covered is the total tile coverage of all regions.
	Covered fpga.Counts `json:"covered"`
	// Area is the weighted covered area.
	Area int `json:"area"`
	// Wirelength is the weighted centre-to-centre distance.
	Wirelength float64 `json:"wirelength"`
	// Value is P − Aw·Area − Ww·Wirelength.
	Value float64 `json:"value"`
}

// Center returns the real-valued centre of r.
func Center(r fpga.Rect) (x, y float64) {
	return float64(r.Col) + float64(r.Width)/2, float64(r.Row) + float64(r.Height)/2
}

// Distance returns the Manhattan distance between the centres of a and b.
func Distance(a, b fpga.Rect) float64 {
	ax, ay := Center(a)
	bx, by := Center(b)
	return math.Abs(ax-bx) + math.Abs(ay-by)
}

// Area returns the per-type coverage of all placements and its weighted sum.
func Area(g *fpga.Grid, w problem.Weights, placements []fpga.Rect) (fpga.Counts, int, error) {
	var total fpga.Counts
	for i, r := range placements {
		c, err := fpga.Coverage(g, r)
		if err != nil {
			return fpga.Counts{}, 0, errors.Wrap(errors.ErrCodeUnscorable, err, "region %d", i)
		}
		total = total.Add(c)
	}
	return total, w.AreaCost(total), nil
}

// Wirelength sums comm[i][j] × distance(i, j) over every ordered pair, as
// the matrix is written. A symmetric matrix therefore counts each
// connection once per direction.
func Wirelength(comm problem.CommMatrix, placements []fpga.Rect) float64 {
	var total float64
	for i := range placements {
		for j := range placements {
			if i == j {
				continue
			}
			if wires := comm.Wires(i, j); wires != 0 {
				total += float64(wires) * Distance(placements[i], placements[j])
			}
		}
	}
	return total
}

// Score evaluates sol for p. The empty (failed) solution cannot be scored
// and yields an [errors.ErrCodeUnscorable] error, as does a solution whose
// size does not match the problem. Score does not modify sol.
func Score(p *problem.Problem, sol problem.Solution) (Breakdown, error) {
	if sol.Failed() {
		return Breakdown{}, errors.New(errors.ErrCodeUnscorable, "problem %d: empty solution cannot be scored", p.ID)
	}
	if len(sol.Placements) != p.N() {
		return Breakdown{}, errors.New(errors.ErrCodeUnscorable, "problem %d: %d placements for %d regions", p.ID, len(sol.Placements), p.N())
	}
	if err := p.Validate(); err != nil {
		return Breakdown{}, err
	}

	covered, area, err := Area(p.Grid, p.Weights, sol.Placements)
	if err != nil {
		return Breakdown{}, err
	}
	wl := Wirelength(p.Comm, sol.Placements)
	w := p.Weights
	return Breakdown{
		Covered:    covered,
		Area:       area,
		Wirelength: wl,
		Value:      float64(w.P) - float64(w.Aw)*float64(area) - float64(w.Ww)*wl,
	}, nil
}
