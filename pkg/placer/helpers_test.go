package placer

import (
	"testing"

	"github.com/matzehuels/floorplan/pkg/fpga"
	"github.com/matzehuels/floorplan/pkg/problem"
)

// newProblem builds a problem from compact grid strings and demands. The
// communication matrix is all zeros.
func newProblem(t *testing.T, rows []string, left, right string, th int, demands ...fpga.Demand) *problem.Problem {
	t.Helper()
	g, err := fpga.FromStrings(rows, left, right, th)
	if err != nil {
		t.Fatalf("FromStrings() error: %v", err)
	}
	p := &problem.Problem{
		ID:      1,
		Weights: problem.Weights{P: 10000, Aw: 1, Ww: 1, CLBw: 1, BRAMw: 1, DSPw: 1},
		Grid:    g,
		Regions: make([]problem.Region, len(demands)),
		Comm:    make(problem.CommMatrix, len(demands)),
	}
	for i, d := range demands {
		p.Regions[i] = problem.Region{ID: i, Demand: d}
		p.Comm[i] = make([]int, len(demands))
	}
	return p
}

// assertValid checks the no-overlap and feasibility properties.
func assertValid(t *testing.T, p *problem.Problem, sol problem.Solution) {
	t.Helper()
	if sol.Failed() {
		return
	}
	if len(sol.Placements) != p.N() {
		t.Fatalf("got %d placements for %d regions", len(sol.Placements), p.N())
	}
	for i, r := range sol.Placements {
		c, err := fpga.Coverage(p.Grid, r)
		if err != nil {
			t.Fatalf("region %d: %v", i, err)
		}
		if c.Forbidden != 0 {
			t.Errorf("region %d covers %d forbidden tiles", i, c.Forbidden)
		}
		if !fpga.MeetsDemand(c, p.Regions[i].Demand) {
			t.Errorf("region %d: coverage %+v misses demand %v", i, c, p.Regions[i].Demand)
		}
		for j := i + 1; j < len(sol.Placements); j++ {
			if r.Overlaps(sol.Placements[j]) {
				t.Errorf("regions %d and %d overlap: %v %v", i, j, r, sol.Placements[j])
			}
		}
	}
}
