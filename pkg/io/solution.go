package io

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/floorplan/pkg/errors"
	"github.com/matzehuels/floorplan/pkg/fpga"
	"github.com/matzehuels/floorplan/pkg/problem"
)

// WriteSolution writes the problem id followed by one 1-based
// "col row width height" line per placement. A failed solution is just
// the id line.
func WriteSolution(w io.Writer, sol problem.Solution) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, sol.ProblemID)
	for _, r := range sol.Placements {
		fmt.Fprintln(bw, r.Col+1, r.Row+1, r.Width, r.Height)
	}
	return bw.Flush()
}

// ReadSolution parses a solution written by WriteSolution, converting
// coordinates back to 0-based.
func ReadSolution(r io.Reader) (problem.Solution, error) {
	lr := newLineReader(r)
	id, err := lr.ints("problem id", 1)
	if err != nil {
		return problem.Solution{}, err
	}
	sol := problem.Empty(id[0])
	for {
		fields, ok, err := lr.tryNext()
		if err != nil {
			return problem.Solution{}, err
		}
		if !ok {
			return sol, nil
		}
		what := fmt.Sprintf("placement %d", len(sol.Placements))
		v, err := lr.parseInts(what, fields, 4)
		if err != nil {
			return problem.Solution{}, err
		}
		rect := fpga.Rect{Col: v[0] - 1, Row: v[1] - 1, Width: v[2], Height: v[3]}
		if rect.Col < 0 || rect.Row < 0 || !rect.Valid() {
			return problem.Solution{}, errors.New(errors.ErrCodeParse, "line %d: %s: invalid rectangle %d %d %d %d", lr.line, what, v[0], v[1], v[2], v[3])
		}
		sol.Placements = append(sol.Placements, rect)
	}
}

// ReadSolutionFile parses the solution stored at path.
func ReadSolutionFile(path string) (problem.Solution, error) {
	f, err := os.Open(path)
	if err != nil {
		return problem.Solution{}, openError(path, err)
	}
	defer f.Close()
	return ReadSolution(f)
}

// WriteSolutionFile writes sol to path, creating or truncating it.
func WriteSolutionFile(path string, sol problem.Solution) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	if err := WriteSolution(f, sol); err != nil {
		f.Close()
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return f.Close()
}

func openError(path string, err error) error {
	if os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	return errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
}
