package placer

import (
	"context"
	"testing"

	"github.com/matzehuels/floorplan/pkg/fpga"
	"github.com/matzehuels/floorplan/pkg/problem"
)

func TestGreedySingleTile(t *testing.T) {
	p := newProblem(t, []string{"C"}, "1", "1", 0, fpga.Demand{CLB: 1})

	sol, inf, err := Solve(context.Background(), Greedy{}, p)
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if inf != nil {
		t.Fatalf("Solve() infeasible: %v", inf)
	}
	want := fpga.Rect{Col: 0, Row: 0, Width: 1, Height: 1}
	if len(sol.Placements) != 1 || sol.Placements[0] != want {
		t.Errorf("placements = %v, want [%v]", sol.Placements, want)
	}
}

func TestGreedyRowsAndSpan(t *testing.T) {
	p := newProblem(t, []string{
		"-CCB-",
		"-CDC-",
		"-BBC-",
	}, "01100", "00011", 0,
		fpga.Demand{CLB: 2, BRAM: 1},
		fpga.Demand{DSP: 1},
		fpga.Demand{BRAM: 2},
	)

	out := Greedy{}.Place(context.Background(), p)
	if !out.OK() {
		t.Fatalf("Place() infeasible: %v", out.Infeasible)
	}
	for n, r := range out.Placements {
		want := fpga.Rect{Col: 1, Row: n, Width: 4, Height: 1}
		if r != want {
			t.Errorf("region %d = %v, want %v", n, r, want)
		}
	}
	assertValid(t, p, out.Solution(p.ID))
}

func TestGreedyTooManyRegions(t *testing.T) {
	p := newProblem(t, []string{"CC", "CC"}, "10", "01", 0,
		fpga.Demand{CLB: 1}, fpga.Demand{CLB: 1}, fpga.Demand{CLB: 1})

	sol, inf, err := Solve(context.Background(), Greedy{}, p)
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if !sol.Failed() {
		t.Errorf("Solve() = %v, want empty solution", sol.Placements)
	}
	if inf == nil || inf.Region != 2 || inf.Reason != ReasonRowsExhausted {
		t.Errorf("infeasible = %v, want region 2 rows exhausted", inf)
	}
}

func TestGreedyForbiddenFailsEverything(t *testing.T) {
	p := newProblem(t, []string{
		"CCC",
		"CFC",
		"CCC",
	}, "100", "001", 0,
		fpga.Demand{CLB: 1}, fpga.Demand{CLB: 1}, fpga.Demand{CLB: 1})

	sol, inf, err := Solve(context.Background(), Greedy{}, p)
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if !sol.Failed() {
		t.Errorf("Solve() kept %d placements after a forbidden tile", len(sol.Placements))
	}
	if inf == nil || inf.Region != 1 || inf.Reason != ReasonForbidden {
		t.Errorf("infeasible = %v, want region 1 forbidden", inf)
	}
}

func TestGreedyUnmetDemand(t *testing.T) {
	tests := []struct {
		name   string
		demand fpga.Demand
	}{
		{"clb", fpga.Demand{CLB: 3}},
		{"bram", fpga.Demand{BRAM: 1}},
		{"dsp", fpga.Demand{DSP: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newProblem(t, []string{"CC", "CC"}, "10", "01", 0, fpga.Demand{CLB: 1}, tt.demand)
			sol, inf, err := Solve(context.Background(), Greedy{}, p)
			if err != nil {
				t.Fatalf("Solve() error: %v", err)
			}
			if !sol.Failed() {
				t.Error("Solve() returned placements for an unmet demand")
			}
			if inf == nil || inf.Region != 1 || inf.Reason != ReasonDemand {
				t.Errorf("infeasible = %v, want region 1 demand", inf)
			}
		})
	}
}

func TestGreedyClockRegions(t *testing.T) {
	p := newProblem(t, []string{
		"CB",
		"CB",
		"CC",
		"DC",
		"CC",
	}, "10", "01", 2,
		fpga.Demand{BRAM: 2},
		fpga.Demand{CLB: 3, DSP: 1},
	)

	out := Greedy{}.Place(context.Background(), p)
	if !out.OK() {
		t.Fatalf("Place() infeasible: %v", out.Infeasible)
	}
	want := []fpga.Rect{
		{Col: 0, Row: 0, Width: 2, Height: 2},
		{Col: 0, Row: 2, Width: 2, Height: 2},
	}
	for i := range want {
		if out.Placements[i] != want[i] {
			t.Errorf("region %d = %v, want %v", i, out.Placements[i], want[i])
		}
	}
}

func TestGreedyClockRegionsExhausted(t *testing.T) {
	// Five rows hold only two whole clock regions of height 2.
	p := newProblem(t, []string{"C", "C", "C", "C", "C"}, "1", "1", 2,
		fpga.Demand{}, fpga.Demand{}, fpga.Demand{})

	out := Greedy{}.Place(context.Background(), p)
	if out.OK() {
		t.Fatal("Place() succeeded with three regions and two clock regions")
	}
	if out.Infeasible.Region != 2 || out.Infeasible.Reason != ReasonRowsExhausted {
		t.Errorf("infeasible = %v, want region 2 rows exhausted", out.Infeasible)
	}
}

func TestGreedyClockRegionTallerThanGrid(t *testing.T) {
	p := newProblem(t, []string{"CC", "CC"}, "10", "01", 3, fpga.Demand{CLB: 1})

	sol, inf, err := Solve(context.Background(), Greedy{}, p)
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if !sol.Failed() {
		t.Errorf("Solve() = %v, want empty solution", sol.Placements)
	}
	if inf == nil || inf.Region != 0 || inf.Reason != ReasonRowsExhausted {
		t.Errorf("infeasible = %v, want region 0 rows exhausted", inf)
	}

	empty := newProblem(t, []string{"CC", "CC"}, "10", "01", 3)
	if _, inf, err := Solve(context.Background(), Greedy{}, empty); err != nil || inf != nil {
		t.Errorf("Solve() with no regions = %v, %v, want success", inf, err)
	}
}

func TestGreedyEmptySpan(t *testing.T) {
	p := newProblem(t, []string{"CC"}, "01", "10", 0, fpga.Demand{})

	out := Greedy{}.Place(context.Background(), p)
	if out.OK() || out.Infeasible.Reason != ReasonEmptySpan {
		t.Errorf("Place() = %+v, want empty span", out)
	}
}

func TestGreedyIgnoresKindAndIO(t *testing.T) {
	p := newProblem(t, []string{"CC", "CC"}, "10", "01", 0, fpga.Demand{CLB: 1}, fpga.Demand{CLB: 2})
	base := Greedy{}.Place(context.Background(), p)

	p.Regions[0].Kind = problem.KindStatic
	p.Regions[1].Kind = problem.KindReconfigurable
	p.Regions[1].IOs = []problem.IOPort{{Col: 1, Row: 0, Wires: 8}}
	tagged := Greedy{}.Place(context.Background(), p)

	if !base.Solution(1).Equal(tagged.Solution(1)) {
		t.Errorf("kind and I/O changed the greedy result: %v vs %v", base.Placements, tagged.Placements)
	}
}

func TestGreedyDeterministic(t *testing.T) {
	p := newProblem(t, []string{"CBD", "CCD", "BBC"}, "100", "001", 0,
		fpga.Demand{CLB: 1, BRAM: 1}, fpga.Demand{DSP: 1}, fpga.Demand{BRAM: 2})

	first, _, err := Solve(context.Background(), Greedy{}, p)
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, _, err := Solve(context.Background(), Greedy{}, p)
		if err != nil {
			t.Fatalf("Solve() error: %v", err)
		}
		if !again.Equal(first) {
			t.Fatalf("run %d: %v, want %v", i, again.Placements, first.Placements)
		}
	}
}

func TestGreedyNoRegions(t *testing.T) {
	p := newProblem(t, []string{"C"}, "1", "1", 0)
	sol, inf, err := Solve(context.Background(), Greedy{}, p)
	if err != nil || inf != nil {
		t.Fatalf("Solve() = %v, %v", inf, err)
	}
	if len(sol.Placements) != 0 {
		t.Errorf("placements = %v, want none", sol.Placements)
	}
}
