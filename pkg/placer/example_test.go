package placer_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/floorplan/pkg/fpga"
	"github.com/matzehuels/floorplan/pkg/placer"
	"github.com/matzehuels/floorplan/pkg/problem"
)

func ExampleSolve() {
	g, _ := fpga.FromStrings([]string{
		"CCB",
		"CDC",
	}, "100", "001", 0)

	p := &problem.Problem{
		ID:   1,
		Grid: g,
		Regions: []problem.Region{
			{ID: 0, Demand: fpga.Demand{CLB: 2, BRAM: 1}},
			{ID: 1, Demand: fpga.Demand{DSP: 1}},
		},
		Comm: problem.CommMatrix{{0, 1}, {1, 0}},
	}

	strategy, _ := placer.New(placer.StrategyGreedy)
	sol, infeasible, err := placer.Solve(context.Background(), strategy, p)
	if err != nil {
		panic(err)
	}
	fmt.Println("infeasible:", infeasible != nil)
	for id, r := range sol.Placements {
		fmt.Println(id, r)
	}
	// Output:
	// infeasible: false
	// 0 [col 0, row 0, 3x1]
	// 1 [col 0, row 1, 3x1]
}

func ExampleSolve_infeasible() {
	g, _ := fpga.FromStrings([]string{"CFC"}, "100", "001", 0)
	p := &problem.Problem{
		ID:      2,
		Grid:    g,
		Regions: []problem.Region{{ID: 0, Demand: fpga.Demand{CLB: 1}}},
		Comm:    problem.CommMatrix{{0}},
	}

	sol, infeasible, _ := placer.Solve(context.Background(), placer.Greedy{}, p)
	fmt.Println("failed:", sol.Failed())
	fmt.Println(infeasible.Reason)
	// Output:
	// failed: true
	// forbidden_tile
}
