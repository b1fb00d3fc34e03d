package placer

import (
	"context"
	"math"
	"testing"

	"github.com/matzehuels/floorplan/pkg/errors"
	"github.com/matzehuels/floorplan/pkg/fpga"
	"github.com/matzehuels/floorplan/pkg/problem"
)

func TestVerify(t *testing.T) {
	p := newProblem(t, []string{
		"CCBC",
		"CFCC",
		"CCCC",
		"CCCC",
	}, "1010", "0101", 2,
		fpga.Demand{CLB: 2},
		fpga.Demand{CLB: 2},
	)

	tests := []struct {
		name  string
		rects []fpga.Rect
		kinds []ViolationKind
	}{
		{
			name:  "valid",
			rects: []fpga.Rect{{Col: 0, Row: 2, Width: 2, Height: 2}, {Col: 2, Row: 2, Width: 2, Height: 2}},
		},
		{
			name:  "wrong count",
			rects: []fpga.Rect{{Col: 0, Row: 2, Width: 2, Height: 2}},
			kinds: []ViolationKind{ViolationCount},
		},
		{
			name:  "outside grid",
			rects: []fpga.Rect{{Col: 2, Row: 2, Width: 4, Height: 2}, {Col: 0, Row: 2, Width: 2, Height: 2}},
			kinds: []ViolationKind{ViolationBounds},
		},
		{
			name:  "height runs off the grid",
			rects: []fpga.Rect{{Col: 0, Row: 2, Width: 2, Height: 2}, {Col: 2, Row: 2, Width: 2, Height: math.MaxInt}},
			kinds: []ViolationKind{ViolationBounds},
		},
		{
			name:  "bad edges",
			rects: []fpga.Rect{{Col: 1, Row: 2, Width: 2, Height: 2}, {Col: 0, Row: 0, Width: 4, Height: 2}},
			kinds: []ViolationKind{ViolationLeftEdge, ViolationRightEdge, ViolationForbidden},
		},
		{
			name:  "misaligned",
			rects: []fpga.Rect{{Col: 0, Row: 1, Width: 2, Height: 2}, {Col: 2, Row: 2, Width: 2, Height: 2}},
			kinds: []ViolationKind{ViolationAlignment, ViolationForbidden},
		},
		{
			name:  "valid over a bram tile",
			rects: []fpga.Rect{{Col: 2, Row: 0, Width: 2, Height: 2}, {Col: 0, Row: 2, Width: 2, Height: 2}},
		},
		{
			name:  "overlap",
			rects: []fpga.Rect{{Col: 0, Row: 2, Width: 4, Height: 2}, {Col: 2, Row: 2, Width: 2, Height: 2}},
			kinds: []ViolationKind{ViolationOverlap},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vs := Verify(p, problem.Solution{ProblemID: 1, Placements: tt.rects})
			got := make(map[ViolationKind]bool)
			for _, v := range vs {
				got[v.Kind] = true
			}
			if len(got) != len(tt.kinds) {
				t.Errorf("violations = %v, want kinds %v", vs, tt.kinds)
			}
			for _, k := range tt.kinds {
				if !got[k] {
					t.Errorf("missing %s violation in %v", k, vs)
				}
			}
		})
	}
}

func TestVerifyDemand(t *testing.T) {
	p := newProblem(t, []string{"CB"}, "10", "01", 0, fpga.Demand{DSP: 1})
	vs := Verify(p, problem.Solution{Placements: []fpga.Rect{{Col: 0, Row: 0, Width: 2, Height: 1}}})
	if len(vs) != 1 || vs[0].Kind != ViolationDemand {
		t.Errorf("Verify() = %v, want one demand violation", vs)
	}
}

func TestVerifyEmptySolution(t *testing.T) {
	p := newProblem(t, []string{"C"}, "1", "1", 0, fpga.Demand{CLB: 1})
	if vs := Verify(p, problem.Empty(1)); len(vs) != 0 {
		t.Errorf("Verify(empty) = %v, want none", vs)
	}
}

// brokenStrategy claims success with overlapping placements.
type brokenStrategy struct{}

func (brokenStrategy) Name() string { return "broken" }

func (brokenStrategy) Place(_ context.Context, p *problem.Problem) Outcome {
	rects := make([]fpga.Rect, p.N())
	for i := range rects {
		rects[i] = fpga.Rect{Col: 0, Row: 0, Width: 1, Height: 1}
	}
	return Success(rects)
}

// shortStrategy claims success but forgets regions.
type shortStrategy struct{}

func (shortStrategy) Name() string { return "short" }

func (shortStrategy) Place(context.Context, *problem.Problem) Outcome {
	return Success(nil)
}

func TestSolveRejectsInvalidStrategyOutput(t *testing.T) {
	p := newProblem(t, []string{"CC", "CC"}, "11", "11", 0, fpga.Demand{CLB: 1}, fpga.Demand{CLB: 1})

	for _, s := range []Strategy{brokenStrategy{}, shortStrategy{}} {
		t.Run(s.Name(), func(t *testing.T) {
			_, _, err := Solve(context.Background(), s, p)
			if !errors.Is(err, errors.ErrCodeInternal) {
				t.Errorf("Solve() error = %v, want internal error", err)
			}
		})
	}
}

func TestSolveRejectsMalformedProblem(t *testing.T) {
	p := newProblem(t, []string{"C"}, "1", "1", 0, fpga.Demand{CLB: 1})
	p.Comm = nil

	sol, inf, err := Solve(context.Background(), Greedy{}, p)
	if !errors.Is(err, errors.ErrCodeMalformedProblem) {
		t.Fatalf("Solve() error = %v, want malformed problem", err)
	}
	if inf != nil || len(sol.Placements) != 0 {
		t.Error("malformed problem must not produce an outcome")
	}
}

func TestInfeasibleErrorCode(t *testing.T) {
	out := Infeasible(3, ReasonDemand, "need %d more", 2)
	if got := out.Infeasible.Error(); got != "region 3: demand_unmet: need 2 more" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(out.Infeasible, errors.ErrCodeInfeasible) {
		t.Error("InfeasibleError should carry INFEASIBLE_PLACEMENT")
	}
	if !out.Solution(9).Failed() || out.Solution(9).ProblemID != 9 {
		t.Error("infeasible outcome should map to the empty solution")
	}
}

func TestRegistry(t *testing.T) {
	names := Names()
	if len(names) != 2 || names[0] != StrategyGreedy || names[1] != StrategySearch {
		t.Errorf("Names() = %v", names)
	}

	s, err := New("")
	if err != nil || s.Name() != DefaultStrategy {
		t.Errorf("New(\"\") = %v, %v, want default", s, err)
	}

	s, err = New(StrategySearch, WithMaxNodes(5))
	if err != nil {
		t.Fatalf("New(search) error: %v", err)
	}
	if s.(Search).MaxNodes != 5 {
		t.Errorf("MaxNodes = %d, want 5", s.(Search).MaxNodes)
	}

	s, _ = New(StrategySearch)
	if s.(Search).MaxNodes != DefaultMaxNodes {
		t.Errorf("default MaxNodes = %d, want %d", s.(Search).MaxNodes, DefaultMaxNodes)
	}

	if _, err := New("annealing"); !errors.Is(err, errors.ErrCodeInvalidStrategy) {
		t.Errorf("New(unknown) error = %v, want invalid strategy", err)
	}
}
