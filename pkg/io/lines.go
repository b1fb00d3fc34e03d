package io

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/matzehuels/floorplan/pkg/errors"
)

// maxLineSize bounds a single input line; wide grids produce long rows.
const maxLineSize = 16 << 20

// lineReader yields whitespace-separated tokens line by line, skipping
// blank lines and tracking the 1-based line number for error messages.
type lineReader struct {
	sc      *bufio.Scanner
	line    int
	pending []string
	hasPend bool
}

func newLineReader(r io.Reader) *lineReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &lineReader{sc: sc}
}

// next returns the tokens of the next non-blank line.
func (lr *lineReader) next(what string) ([]string, error) {
	fields, ok, err := lr.tryNext()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "reading %s", what)
	}
	if !ok {
		return nil, errors.New(errors.ErrCodeParse, "line %d: unexpected end of input, expected %s", lr.line+1, what)
	}
	return fields, nil
}

// tryNext is like next but reports end of input as ok=false instead of
// an error.
func (lr *lineReader) tryNext() ([]string, bool, error) {
	if lr.hasPend {
		lr.hasPend = false
		return lr.pending, true, nil
	}
	for lr.sc.Scan() {
		lr.line++
		if fields := strings.Fields(lr.sc.Text()); len(fields) > 0 {
			return fields, true, nil
		}
	}
	if err := lr.sc.Err(); err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeParse, err, "line %d", lr.line+1)
	}
	return nil, false, nil
}

// unread pushes tokens back so the next call to next returns them again.
func (lr *lineReader) unread(tokens []string) {
	lr.pending = tokens
	lr.hasPend = true
}

// ints reads a line of exactly n integers.
func (lr *lineReader) ints(what string, n int) ([]int, error) {
	fields, err := lr.next(what)
	if err != nil {
		return nil, err
	}
	return lr.parseInts(what, fields, n)
}

func (lr *lineReader) parseInts(what string, fields []string, n int) ([]int, error) {
	if len(fields) != n {
		return nil, errors.New(errors.ErrCodeParse, "line %d: %s: got %d values, want %d", lr.line, what, len(fields), n)
	}
	out := make([]int, n)
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, errors.New(errors.ErrCodeParse, "line %d: %s: %q is not an integer", lr.line, what, f)
		}
		out[i] = v
	}
	return out, nil
}

// flags reads a line of n 0/1 values.
func (lr *lineReader) flags(what string, n int) ([]bool, error) {
	vals, err := lr.ints(what, n)
	if err != nil {
		return nil, err
	}
	out := make([]bool, n)
	for i, v := range vals {
		switch v {
		case 0:
		case 1:
			out[i] = true
		default:
			return nil, errors.New(errors.ErrCodeParse, "line %d: %s: value %d at column %d is not 0 or 1", lr.line, what, v, i+1)
		}
	}
	return out, nil
}

// rest reports whether only blank lines remain.
func (lr *lineReader) rest() (int, bool) {
	_, ok, err := lr.tryNext()
	return lr.line, !ok && err == nil
}
