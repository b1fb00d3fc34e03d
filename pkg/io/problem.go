package io

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/floorplan/pkg/errors"
	"github.com/matzehuels/floorplan/pkg/fpga"
	"github.com/matzehuels/floorplan/pkg/problem"
)

// ReadProblem parses a problem in either the plain or the extended format.
// The extended format is recognised by a single integer (the clock region
// height) on the line after the grid size.
func ReadProblem(r io.Reader) (*problem.Problem, error) {
	lr := newLineReader(r)

	id, err := lr.ints("problem id", 1)
	if err != nil {
		return nil, err
	}
	pw, err := lr.ints("P Aw Ww", 3)
	if err != nil {
		return nil, err
	}
	tw, err := lr.ints("CLBw BRAMw DSPw", 3)
	if err != nil {
		return nil, err
	}
	dims, err := lr.ints("R C", 2)
	if err != nil {
		return nil, err
	}
	rows, cols := dims[0], dims[1]
	if rows <= 0 || cols <= 0 {
		return nil, errors.New(errors.ErrCodeParse, "line %d: grid size %dx%d must be positive", lr.line, rows, cols)
	}

	th, err := readClockHeight(lr)
	if err != nil {
		return nil, err
	}

	tiles := make([][]fpga.Tile, rows)
	for row := range tiles {
		if tiles[row], err = readTileRow(lr, row, cols); err != nil {
			return nil, err
		}
	}
	left, err := lr.flags("valid-left mask", cols)
	if err != nil {
		return nil, err
	}
	right, err := lr.flags("valid-right mask", cols)
	if err != nil {
		return nil, err
	}
	grid, err := fpga.NewGrid(rows, cols, tiles, left, right, th)
	if err != nil {
		return nil, err
	}

	nv, err := lr.ints("region count", 1)
	if err != nil {
		return nil, err
	}
	n := nv[0]
	if n < 0 {
		return nil, errors.New(errors.ErrCodeParse, "line %d: negative region count %d", lr.line, n)
	}

	regions := make([]problem.Region, n)
	for i := range regions {
		if th > 0 {
			regions[i], err = readExtendedRegion(lr, i, rows, cols)
		} else {
			regions[i], err = readPlainRegion(lr, i)
		}
		if err != nil {
			return nil, err
		}
	}

	comm := make(problem.CommMatrix, n)
	for i := range comm {
		if comm[i], err = lr.ints(fmt.Sprintf("communication row %d", i+1), n); err != nil {
			return nil, err
		}
	}
	if line, ok := lr.rest(); !ok {
		return nil, errors.New(errors.ErrCodeParse, "line %d: unexpected content after communication matrix", line)
	}

	p := &problem.Problem{
		ID:      id[0],
		Weights: problem.Weights{P: pw[0], Aw: pw[1], Ww: pw[2], CLBw: tw[0], BRAMw: tw[1], DSPw: tw[2]},
		Grid:    grid,
		Regions: regions,
		Comm:    comm,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// readClockHeight consumes the optional clock region height line. It
// returns 0 for the plain format and leaves the first tile row unread.
func readClockHeight(lr *lineReader) (int, error) {
	fields, err := lr.next("clock region height or first tile row")
	if err != nil {
		return 0, err
	}
	if len(fields) == 1 {
		if th, err := strconv.Atoi(fields[0]); err == nil {
			if th <= 0 {
				return 0, errors.New(errors.ErrCodeParse, "line %d: clock region height %d must be positive", lr.line, th)
			}
			return th, nil
		}
	}
	lr.unread(fields)
	return 0, nil
}

// readTileRow reads one grid row. Tiles are normally separated by spaces,
// but a single run of C codes is accepted too.
func readTileRow(lr *lineReader, row, cols int) ([]fpga.Tile, error) {
	fields, err := lr.next(fmt.Sprintf("tile row %d", row+1))
	if err != nil {
		return nil, err
	}
	if len(fields) == 1 && cols > 1 && len(fields[0]) == cols {
		fields = strings.Split(fields[0], "")
	}
	if len(fields) != cols {
		return nil, errors.New(errors.ErrCodeParse, "line %d: tile row %d has %d tiles, want %d", lr.line, row+1, len(fields), cols)
	}
	tiles := make([]fpga.Tile, cols)
	for c, f := range fields {
		t, err := fpga.ParseTile(f)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeParse, err, "line %d: column %d", lr.line, c+1)
		}
		tiles[c] = t
	}
	return tiles, nil
}

func readPlainRegion(lr *lineReader, id int) (problem.Region, error) {
	v, err := lr.ints(fmt.Sprintf("region %d resources", id), 3)
	if err != nil {
		return problem.Region{}, err
	}
	return problem.Region{ID: id, Demand: fpga.Demand{CLB: v[0], BRAM: v[1], DSP: v[2]}}, nil
}

func readExtendedRegion(lr *lineReader, id, rows, cols int) (problem.Region, error) {
	what := fmt.Sprintf("region %d header", id)
	fields, err := lr.next(what)
	if err != nil {
		return problem.Region{}, err
	}
	if len(fields) != 5 {
		return problem.Region{}, errors.New(errors.ErrCodeParse, "line %d: %s: got %d values, want 5 (kind CLB BRAM DSP numIo)", lr.line, what, len(fields))
	}
	kind, err := problem.ParseKind(fields[0])
	if err != nil {
		return problem.Region{}, errors.Wrap(errors.ErrCodeParse, err, "line %d", lr.line)
	}
	v, err := lr.parseInts(what, fields[1:], 4)
	if err != nil {
		return problem.Region{}, err
	}
	if v[3] < 0 {
		return problem.Region{}, errors.New(errors.ErrCodeParse, "line %d: %s: negative I/O count %d", lr.line, what, v[3])
	}

	region := problem.Region{
		ID:     id,
		Kind:   kind,
		Demand: fpga.Demand{CLB: v[0], BRAM: v[1], DSP: v[2]},
	}
	for k := 0; k < v[3]; k++ {
		port, err := lr.ints(fmt.Sprintf("region %d I/O %d", id, k+1), 3)
		if err != nil {
			return problem.Region{}, err
		}
		col, row := port[0], port[1]
		if col < 1 || col > cols || row < 1 || row > rows {
			return problem.Region{}, errors.New(errors.ErrCodeParse, "line %d: I/O at column %d row %d outside %dx%d grid", lr.line, col, row, rows, cols)
		}
		region.IOs = append(region.IOs, problem.IOPort{Col: col - 1, Row: row - 1, Wires: port[2]})
	}
	return region, nil
}

// ReadProblemFile parses the problem stored at path.
func ReadProblemFile(path string) (*problem.Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, openError(path, err)
	}
	defer f.Close()
	return ReadProblem(f)
}

// WriteProblem writes p in the format ReadProblem accepts: extended when
// the grid has clock regions, plain otherwise.
func WriteProblem(w io.Writer, p *problem.Problem) error {
	bw := bufio.NewWriter(w)
	g := p.Grid
	wt := p.Weights

	fmt.Fprintln(bw, p.ID)
	fmt.Fprintln(bw, wt.P, wt.Aw, wt.Ww)
	fmt.Fprintln(bw, wt.CLBw, wt.BRAMw, wt.DSPw)
	fmt.Fprintln(bw, g.Rows(), g.Cols())
	th, extended := g.ClockRegionHeight()
	if extended {
		fmt.Fprintln(bw, th)
	}

	codes := make([]string, g.Cols())
	for r := 0; r < g.Rows(); r++ {
		for c := range codes {
			t, _ := g.TileAt(r, c)
			codes[c] = string(t.Code())
		}
		fmt.Fprintln(bw, strings.Join(codes, " "))
	}
	writeMask(bw, g.Cols(), g.IsValidLeft)
	writeMask(bw, g.Cols(), g.IsValidRight)

	fmt.Fprintln(bw, p.N())
	for _, r := range p.Regions {
		d := r.Demand
		if !extended {
			fmt.Fprintln(bw, d.CLB, d.BRAM, d.DSP)
			continue
		}
		kind := r.Kind.Code()
		if kind == "" {
			kind = problem.KindReconfigurable.Code()
		}
		fmt.Fprintln(bw, kind, d.CLB, d.BRAM, d.DSP, len(r.IOs))
		for _, port := range r.IOs {
			fmt.Fprintln(bw, port.Col+1, port.Row+1, port.Wires)
		}
	}
	for _, row := range p.Comm {
		vals := make([]string, len(row))
		for j, v := range row {
			vals[j] = strconv.Itoa(v)
		}
		fmt.Fprintln(bw, strings.Join(vals, " "))
	}
	return bw.Flush()
}

func writeMask(w io.Writer, n int, valid func(int) bool) {
	vals := make([]string, n)
	for c := range vals {
		vals[c] = "0"
		if valid(c) {
			vals[c] = "1"
		}
	}
	fmt.Fprintln(w, strings.Join(vals, " "))
}
