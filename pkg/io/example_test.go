package io_test

import (
	"context"
	"os"
	"strings"

	"github.com/matzehuels/floorplan/pkg/io"
	"github.com/matzehuels/floorplan/pkg/placer"
)

func ExampleWriteSolution() {
	const text = `1
1000 1 1
1 1 1
2 3
C C B
C C B
1 0 0
0 0 1
2
2 1 0
1 0 0
0 1
1 0
`
	p, err := io.ReadProblem(strings.NewReader(text))
	if err != nil {
		panic(err)
	}
	sol, _, err := placer.Solve(context.Background(), placer.Greedy{}, p)
	if err != nil {
		panic(err)
	}
	_ = io.WriteSolution(os.Stdout, sol)
	// Output:
	// 1
	// 1 1 3 1
	// 1 2 3 1
}
