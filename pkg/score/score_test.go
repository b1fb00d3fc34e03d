package score

import (
	"math"
	"testing"

	"github.com/matzehuels/floorplan/pkg/errors"
	"github.com/matzehuels/floorplan/pkg/fpga"
	"github.com/matzehuels/floorplan/pkg/problem"
)

func scoringProblem(t *testing.T) *problem.Problem {
	t.Helper()
	g, err := fpga.FromStrings([]string{
		"CCBD",
		"CCBD",
		"C-FC",
	}, "1100", "0011", 0)
	if err != nil {
		t.Fatalf("FromStrings() error: %v", err)
	}
	return &problem.Problem{
		ID:      4,
		Weights: problem.Weights{P: 1000, Aw: 2, Ww: 3, CLBw: 1, BRAMw: 5, DSPw: 10},
		Grid:    g,
		Regions: []problem.Region{{ID: 0}, {ID: 1}},
		Comm:    problem.CommMatrix{{0, 2}, {1, 0}},
	}
}

func TestCenter(t *testing.T) {
	x, y := Center(fpga.Rect{Col: 1, Row: 2, Width: 3, Height: 1})
	if x != 2.5 || y != 2.5 {
		t.Errorf("Center() = (%v, %v), want (2.5, 2.5)", x, y)
	}
}

func TestScore(t *testing.T) {
	p := scoringProblem(t)
	sol := problem.Solution{ProblemID: 4, Placements: []fpga.Rect{
		{Col: 0, Row: 0, Width: 4, Height: 1}, // CCBD, centre (2, 0.5)
		{Col: 1, Row: 1, Width: 2, Height: 1}, // CB, centre (2, 1.5)
	}}

	got, err := Score(p, sol)
	if err != nil {
		t.Fatalf("Score() error: %v", err)
	}

	wantCovered := fpga.Counts{CLB: 3, BRAM: 2, DSP: 1}
	if got.Covered != wantCovered {
		t.Errorf("Covered = %+v, want %+v", got.Covered, wantCovered)
	}
	// 3·1 + 2·5 + 1·10
	if got.Area != 23 {
		t.Errorf("Area = %d, want 23", got.Area)
	}
	// (2 + 1) wires × distance 1.0, both matrix entries counted.
	if got.Wirelength != 3 {
		t.Errorf("Wirelength = %v, want 3", got.Wirelength)
	}
	if want := 1000.0 - 2*23 - 3*3; got.Value != want {
		t.Errorf("Value = %v, want %v", got.Value, want)
	}
}

func TestWirelengthHalfTiles(t *testing.T) {
	a := fpga.Rect{Col: 0, Row: 0, Width: 1, Height: 1} // (0.5, 0.5)
	b := fpga.Rect{Col: 2, Row: 1, Width: 2, Height: 3} // (3, 2.5)
	comm := problem.CommMatrix{{0, 4}, {0, 0}}

	got := Wirelength(comm, []fpga.Rect{a, b})
	if want := 4 * (2.5 + 2.0); math.Abs(got-want) > 1e-9 {
		t.Errorf("Wirelength() = %v, want %v", got, want)
	}
}

func TestWirelengthAsymmetric(t *testing.T) {
	rects := []fpga.Rect{
		{Col: 0, Row: 0, Width: 1, Height: 1},
		{Col: 0, Row: 3, Width: 1, Height: 1},
	}
	upper := Wirelength(problem.CommMatrix{{0, 5}, {0, 0}}, rects)
	lower := Wirelength(problem.CommMatrix{{0, 0}, {5, 0}}, rects)
	both := Wirelength(problem.CommMatrix{{0, 5}, {5, 0}}, rects)

	if upper != 15 || lower != 15 {
		t.Errorf("one-sided matrices = %v, %v, want 15", upper, lower)
	}
	if both != 30 {
		t.Errorf("symmetric matrix = %v, want 30 (each direction counted)", both)
	}
}

func TestWirelengthIgnoresDiagonal(t *testing.T) {
	rects := []fpga.Rect{{Col: 0, Row: 0, Width: 1, Height: 1}}
	if got := Wirelength(problem.CommMatrix{{9}}, rects); got != 0 {
		t.Errorf("Wirelength() = %v, want 0", got)
	}
}

func TestScoreEmptySolution(t *testing.T) {
	p := scoringProblem(t)
	_, err := Score(p, problem.Empty(4))
	if !errors.Is(err, errors.ErrCodeUnscorable) {
		t.Errorf("Score(empty) error = %v, want unscorable", err)
	}
}

func TestScoreWrongSize(t *testing.T) {
	p := scoringProblem(t)
	sol := problem.Solution{Placements: []fpga.Rect{{Col: 0, Row: 0, Width: 1, Height: 1}}}
	if _, err := Score(p, sol); !errors.Is(err, errors.ErrCodeUnscorable) {
		t.Errorf("Score() error = %v, want unscorable", err)
	}
}

func TestScoreOutsideGrid(t *testing.T) {
	p := scoringProblem(t)
	for _, r := range []fpga.Rect{
		{Col: 3, Row: 0, Width: 2, Height: 1},
		{Col: 0, Row: 2, Width: 1, Height: math.MaxInt},
	} {
		sol := problem.Solution{Placements: []fpga.Rect{{Col: 0, Row: 0, Width: 1, Height: 1}, r}}
		if _, err := Score(p, sol); !errors.Is(err, errors.ErrCodeUnscorable) {
			t.Errorf("Score() with %v error = %v, want unscorable", r, err)
		}
	}
}

func TestScorePure(t *testing.T) {
	p := scoringProblem(t)
	sol := problem.Solution{ProblemID: 4, Placements: []fpga.Rect{
		{Col: 0, Row: 0, Width: 2, Height: 1},
		{Col: 2, Row: 1, Width: 2, Height: 1},
	}}
	before := sol.Clone()

	first, err := Score(p, sol)
	if err != nil {
		t.Fatalf("Score() error: %v", err)
	}
	second, _ := Score(p, sol)

	if first != second {
		t.Errorf("Score() not repeatable: %+v vs %+v", first, second)
	}
	if !sol.Equal(before) {
		t.Error("Score() modified the solution")
	}
}
